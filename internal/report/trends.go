package report

import (
	"prep-meter/internal/models"
)

func dailyPerformanceTrend(days []day) []DailyPerformancePoint {
	out := []DailyPerformancePoint{}
	for _, d := range days {
		if d.plan == nil && d.coaching == nil {
			continue
		}
		questions := 0
		for _, q := range d.item.QuestionsSolved {
			questions += q.Count
		}
		out = append(out, DailyPerformancePoint{
			Date:          d.item.Date,
			StudyHours:    d.item.StudyHours,
			CoachingHours: d.item.CoachingHours,
			Questions:     questions,
			Efficiency:    d.item.Efficiency,
		})
	}
	return out
}

// syllabusCoverageTrend counts, per date, the distinct chapters studied so far.
// When a syllabus tree is available only its chapters that have left
// "Not Started" count. Dates adding nothing new are omitted.
func syllabusCoverageTrend(days []day, syllabus models.Syllabus, keys Keyer) []CoveragePoint {
	var eligible map[string]bool
	if !syllabus.IsEmpty() {
		eligible = make(map[string]bool)
		for _, sc := range syllabus.Chapters() {
			if sc.Chapter.Status != models.TopicNotStarted && sc.Chapter.Status != "" {
				eligible[keys.Chapter(sc.Chapter.Name)] = true
			}
		}
	}

	out := []CoveragePoint{}
	studied := make(map[string]bool)
	for _, d := range days {
		added := false
		for _, name := range d.item.TopicsStudied {
			key := keys.Chapter(name)
			if studied[key] || (eligible != nil && !eligible[key]) {
				continue
			}
			studied[key] = true
			added = true
		}
		if added {
			out = append(out, CoveragePoint{Date: d.item.Date, Count: len(studied)})
		}
	}
	return out
}

func syllabusProgress(syllabus models.Syllabus) []SubjectProgress {
	bySubject := make(map[models.Subject]*SubjectProgress)
	for _, sc := range syllabus.Chapters() {
		p, ok := bySubject[sc.Subject]
		if !ok {
			p = &SubjectProgress{Subject: sc.Subject}
			bySubject[sc.Subject] = p
		}
		p.Total++
		switch sc.Chapter.Status {
		case models.TopicCompleted:
			p.Completed++
		case models.TopicInProgress:
			p.InProgress++
		case models.TopicRevise:
			p.Revise++
		default:
			p.NotStarted++
		}
	}

	out := []SubjectProgress{}
	for _, s := range models.Subjects {
		if p, ok := bySubject[s]; ok {
			out = append(out, *p)
		}
	}
	return out
}

// testTrends returns the chronological score series and the matching
// negative-marks scatter. Tests without a positive total are skipped.
func testTrends(tests []models.TestResult) ([]TestPoint, []NegativeMarksPoint) {
	points := []TestPoint{}
	negatives := []NegativeMarksPoint{}
	for _, t := range chronologicalTests(tests) {
		score, pct, ok := testScore(t)
		if !ok {
			continue
		}
		negative := t.NegativeMarks.Total()
		points = append(points, TestPoint{
			Date:       t.Date,
			Name:       t.Name,
			Score:      score,
			TotalMarks: t.TotalMarks,
			Percentage: pct,
			Negative:   negative,
		})
		negatives = append(negatives, NegativeMarksPoint{Negative: negative, Percentage: pct})
	}
	return points, negatives
}

// subjectWiseTestPerformance averages marks per subject over the tests that
// cover it, either through the syllabus or with marks for it. Subjects no test
// covers are left out.
func subjectWiseTestPerformance(tests []models.TestResult) []SubjectScore {
	out := []SubjectScore{}
	for _, s := range models.Subjects {
		var marks []float64
		for _, t := range tests {
			if testCovers(t, s) {
				marks = append(marks, t.Marks.For(s))
			}
		}
		if avg := mean(marks); avg != nil {
			out = append(out, SubjectScore{Name: s, AvgScore: *avg})
		}
	}
	return out
}

func testCovers(t models.TestResult, s models.Subject) bool {
	if t.Marks.For(s) != 0 {
		return true
	}
	for _, item := range t.Syllabus {
		if models.Subject(item.Subject) == s {
			return true
		}
	}
	return false
}

// wellnessTrend covers dates with a wellness log or a mood recorded on the
// plan. The wellness log's mood takes precedence.
func wellnessTrend(days []day) []WellnessPoint {
	out := []WellnessPoint{}
	for _, d := range days {
		var mood, sleep *float64
		if w := d.item.Wellness; w != nil {
			mood, sleep = ptr(float64(w.Mood)), ptr(w.SleepHours)
		} else if d.plan != nil && d.plan.DailyMood != nil {
			mood = ptr(float64(*d.plan.DailyMood))
		}
		if mood == nil && sleep == nil {
			continue
		}
		out = append(out, WellnessPoint{Date: d.item.Date, Mood: mood, Sleep: sleep, Efficiency: d.item.Efficiency})
	}
	return out
}

func motivationVsCoaching(days []day) []MotivationPoint {
	out := []MotivationPoint{}
	for _, d := range days {
		if d.coaching == nil {
			continue
		}
		var motivation *float64
		if validRating(d.coaching.Motivation) {
			motivation = ptr(float64(d.coaching.Motivation))
		}
		out = append(out, MotivationPoint{Date: d.item.Date, Motivation: motivation, Hours: d.item.CoachingHours})
	}
	return out
}
