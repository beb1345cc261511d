package report

import (
	"slices"

	"prep-meter/internal/models"
)

// OtherSubject collects study time that no slot attributes to a subject.
const OtherSubject = "Other"

// subjectTimeDistribution splits study hours by subject. It sums to the
// total study hours of the range.
func subjectTimeDistribution(days []day) []NamedValue {
	minutes := make(map[string]int)
	for _, d := range days {
		for _, s := range d.study {
			name := OtherSubject
			if slices.Contains(models.Subjects, s.subject) {
				name = string(s.subject)
			}
			minutes[name] += s.minutes()
		}
	}

	out := []NamedValue{}
	for _, name := range []string{string(models.Physics), string(models.Chemistry), string(models.Math), OtherSubject} {
		if m, ok := minutes[name]; ok && m > 0 {
			out = append(out, NamedValue{Name: name, Value: toHours(m)})
		}
	}
	return out
}

func questionTypeDistribution(days []day) []QuestionTypeRow {
	counts := make(map[models.Subject]*TierCounts)
	for _, d := range days {
		for _, q := range d.item.QuestionsSolved {
			c, ok := counts[q.Subject]
			if !ok {
				c = &TierCounts{}
				counts[q.Subject] = c
			}
			c.add(q.Type, q.Count)
		}
	}

	out := []QuestionTypeRow{}
	for _, s := range models.Subjects {
		if c, ok := counts[s]; ok && c.Total() > 0 {
			out = append(out, QuestionTypeRow{Name: string(s), TierCounts: *c})
		}
	}
	return out
}

// doubtDistribution lists doubt counts per subject followed by counts per
// clearing status.
func doubtDistribution(doubts []models.Doubt) []NamedValue {
	bySubject := make(map[models.Subject]int)
	byStatus := make(map[models.DoubtStatus]int)
	for _, d := range doubts {
		bySubject[d.Subject]++
		byStatus[d.Status]++
	}

	out := []NamedValue{}
	for _, s := range models.Subjects {
		if n := bySubject[s]; n > 0 {
			out = append(out, NamedValue{Name: string(s), Value: float64(n)})
		}
	}
	for _, s := range []models.DoubtStatus{models.DoubtCleared, models.DoubtConfusing} {
		if n := byStatus[s]; n > 0 {
			out = append(out, NamedValue{Name: string(s), Value: float64(n)})
		}
	}
	return out
}

func lectureCategoryDistribution(lectures []models.Lecture) []NamedValue {
	counts := make(map[string]int)
	for _, l := range lectures {
		category := l.Category
		if category == "" {
			category = "Other"
		}
		counts[category]++
	}

	out := make([]NamedValue, 0, len(counts))
	for name, n := range counts {
		out = append(out, NamedValue{Name: name, Value: float64(n)})
	}
	slices.SortFunc(out, byValueDesc)
	return out
}

// coachingSubjectDistribution sums coaching lecture hours per subject.
func coachingSubjectDistribution(lectures []heldLecture) []NamedValue {
	minutes := make(map[models.Subject]int)
	for _, lec := range lectures {
		iv, _ := timeline{}.place(lec.StartTime, lec.EndTime)
		minutes[lec.Subject] += iv.minutes()
	}

	out := []NamedValue{}
	for _, s := range models.Subjects {
		if m := minutes[s]; m > 0 {
			out = append(out, NamedValue{Name: string(s), Value: toHours(m)})
		}
	}
	return out
}
