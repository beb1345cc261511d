package report

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"prep-meter/internal/models"
)

// doubtWindowDays is how many days after a lecture a cleared doubt on the
// same subject is still credited to that lecture's teacher.
const doubtWindowDays = 3

type heldLecture struct {
	date string
	models.LectureActivity
}

// lecturesHeld lists lecture activities in chronological order.
func lecturesHeld(logs []models.CoachingLog) []heldLecture {
	sorted := slices.Clone(logs)
	slices.SortStableFunc(sorted, func(a, b models.CoachingLog) int { return cmp.Compare(a.Date, b.Date) })

	var out []heldLecture
	for _, l := range sorted {
		for _, lec := range l.Lectures() {
			out = append(out, heldLecture{date: l.Date, LectureActivity: lec})
		}
	}
	return out
}

func teacherMetrics(lectures []heldLecture, doubts []models.Doubt, roster []string, keys Keyer) map[string]*TeacherMetric {
	metrics := make(map[string]*TeacherMetric)
	for _, lec := range lectures {
		key := keys.Teacher(lec.Teacher)
		if key == "" {
			continue
		}
		m, ok := metrics[key]
		if !ok {
			m = &TeacherMetric{Ratings: []int{}}
			metrics[key] = m
		}
		m.ClassCount++
		iv, _ := timeline{}.place(lec.StartTime, lec.EndTime)
		m.TotalHours += toHours(iv.minutes())
		if validRating(lec.Rating) {
			m.Ratings = append(m.Ratings, lec.Rating)
		}
	}

	for _, m := range metrics {
		ratings := make([]float64, len(m.Ratings))
		for i, r := range m.Ratings {
			ratings[i] = float64(r)
		}
		m.AvgRating = mean(ratings)
	}

	for _, d := range doubts {
		if d.Status != models.DoubtCleared {
			continue
		}
		if key, ok := attributeDoubt(d, lectures, roster, keys); ok {
			if m, tracked := metrics[key]; tracked {
				m.DoubtsCleared++
			}
		}
	}
	return metrics
}

// attributeDoubt picks the teacher a cleared doubt most likely came from.
// Doubts carry no teacher link: a teacher named in the doubt's context wins,
// otherwise the latest same-subject lecture within doubtWindowDays before it.
func attributeDoubt(d models.Doubt, lectures []heldLecture, roster []string, keys Keyer) (string, bool) {
	if d.Context != "" {
		ctx := strings.ToLower(d.Context)
		names := slices.Clone(roster)
		for _, lec := range lectures {
			names = append(names, lec.Teacher)
		}
		slices.Sort(names)
		for _, name := range slices.Compact(names) {
			if name != "" && strings.Contains(ctx, strings.ToLower(name)) {
				return keys.Teacher(name), true
			}
		}
	}

	doubtDay, err := time.Parse(time.DateOnly, d.Date)
	if err != nil {
		return "", false
	}
	var best *heldLecture
	for i := range lectures {
		lec := &lectures[i]
		if lec.Subject != d.Subject || keys.Teacher(lec.Teacher) == "" {
			continue
		}
		lecDay, err := time.Parse(time.DateOnly, lec.date)
		if err != nil {
			continue
		}
		gap := doubtDay.Sub(lecDay)
		if gap < 0 || gap > doubtWindowDays*24*time.Hour {
			continue
		}
		if best == nil || lec.date > best.date {
			best = lec
		}
	}
	if best == nil {
		return "", false
	}
	return keys.Teacher(best.Teacher), true
}

func validRating(r int) bool { return r >= 1 && r <= 5 }

func teacherLectureCount(metrics map[string]*TeacherMetric) []LectureCount {
	out := make([]LectureCount, 0, len(metrics))
	for name, m := range metrics {
		out = append(out, LectureCount{Name: name, Count: m.ClassCount})
	}
	slices.SortFunc(out, func(a, b LectureCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

func teacherRatingDistribution(metrics map[string]*TeacherMetric) []RatingHistogram {
	out := make([]RatingHistogram, 0, len(metrics))
	for _, name := range sortedKeys(metrics) {
		h := RatingHistogram{Name: name}
		for _, r := range metrics[name].Ratings {
			switch r {
			case 1:
				h.One++
			case 2:
				h.Two++
			case 3:
				h.Three++
			case 4:
				h.Four++
			case 5:
				h.Five++
			}
		}
		out = append(out, h)
	}
	return out
}

// homeworkCompletionRate is the share of lectures with homework for which a
// completed plan task on or after the lecture day mentions the homework or
// the lecture's chapter. Nil when no lecture assigned homework.
func homeworkCompletionRate(lectures []heldLecture, plans []models.DailyPlan) *float64 {
	assigned, done := 0, 0
	for _, lec := range lectures {
		homework := strings.ToLower(strings.TrimSpace(lec.Homework))
		if homework == "" {
			continue
		}
		assigned++
		chapter := strings.ToLower(strings.TrimSpace(lec.Chapter))
		if homeworkDone(plans, lec.date, homework, chapter) {
			done++
		}
	}
	if assigned == 0 {
		return nil
	}
	return ptr(float64(done) / float64(assigned) * 100)
}

func homeworkDone(plans []models.DailyPlan, from, homework, chapter string) bool {
	for _, p := range plans {
		if p.Date < from {
			continue
		}
		for _, task := range p.Tasks {
			if task.Status != models.StatusCompleted {
				continue
			}
			text := strings.ToLower(task.Text)
			if strings.Contains(text, homework) || (chapter != "" && strings.Contains(text, chapter)) {
				return true
			}
		}
	}
	return false
}
