package report

import (
	"cmp"
	"slices"

	"prep-meter/internal/models"
)

// rankingSize caps the weakest/strongest chapter lists.
const rankingSize = 5

type chapterTable struct {
	keys    Keyer
	subject map[string]models.Subject
	metrics map[string]*ChapterMetric
	minutes map[string]int
}

func newChapterTable(keys Keyer, syllabus models.Syllabus) *chapterTable {
	t := &chapterTable{
		keys:    keys,
		subject: make(map[string]models.Subject),
		metrics: make(map[string]*ChapterMetric),
		minutes: make(map[string]int),
	}
	for _, sc := range syllabus.Chapters() {
		if _, ok := t.subject[keys.Chapter(sc.Chapter.Name)]; !ok {
			t.subject[keys.Chapter(sc.Chapter.Name)] = sc.Subject
		}
	}
	return t
}

func (t *chapterTable) get(name string, subject models.Subject) (string, *ChapterMetric) {
	key := t.keys.Chapter(name)
	m, ok := t.metrics[key]
	if !ok {
		if s, known := t.subject[key]; known {
			subject = s
		}
		m = &ChapterMetric{Subject: subject, Tests: []ChapterTest{}}
		t.metrics[key] = m
	}
	if m.Subject == "" {
		m.Subject = subject
	}
	return key, m
}

// chapterMetrics folds question logs, study time and test syllabi into one
// entry per chapter.
func chapterMetrics(days []day, tests []models.TestResult, syllabus models.Syllabus, keys Keyer) map[string]*ChapterMetric {
	t := newChapterTable(keys, syllabus)

	for _, d := range days {
		for _, q := range d.item.QuestionsSolved {
			if q.Chapter == "" {
				continue
			}
			_, m := t.get(q.Chapter, q.Subject)
			m.Questions.add(q.Type, q.Count)
		}
		for _, s := range d.study {
			if s.chapter == "" {
				continue
			}
			key, _ := t.get(s.chapter, s.subject)
			t.minutes[key] += s.minutes()
		}
	}

	for _, test := range chronologicalTests(tests) {
		score, pct, scored := testScore(test)
		seen := make(map[string]bool)
		for _, item := range test.Syllabus {
			if item.Chapter == "" {
				continue
			}
			key, m := t.get(item.Chapter, models.Subject(item.Subject))
			if !scored || seen[key] {
				continue
			}
			seen[key] = true
			m.Tests = append(m.Tests, ChapterTest{
				ID:           test.ID,
				Name:         test.Name,
				Score:        score,
				TotalMarks:   test.TotalMarks,
				Date:         test.Date,
				ScorePercent: pct,
			})
		}
	}

	for key, m := range t.metrics {
		m.TotalQuestions = m.Questions.Total()
		m.Hours = toHours(t.minutes[key])
		pcts := make([]float64, len(m.Tests))
		for i, ct := range m.Tests {
			pcts[i] = ct.ScorePercent
		}
		m.AvgTestScore = mean(pcts)
	}
	return t.metrics
}

// testScore returns the net score clamped to the declared total and its
// percentage. Tests without a positive total cannot be scored.
func testScore(t models.TestResult) (score, pct float64, ok bool) {
	if t.TotalMarks <= 0 {
		return 0, 0, false
	}
	score = min(t.Marks.Total(), t.TotalMarks)
	return score, score / t.TotalMarks * 100, true
}

func chronologicalTests(tests []models.TestResult) []models.TestResult {
	out := slices.Clone(tests)
	slices.SortStableFunc(out, func(a, b models.TestResult) int {
		if c := cmp.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// rankChapters orders tested chapters by average score, ascending for the
// weakest list and descending for the strongest. Ties go by name.
func rankChapters(metrics map[string]*ChapterMetric, ascending bool) []RankedChapter {
	ranked := []RankedChapter{}
	for name, m := range metrics {
		if m.AvgTestScore == nil {
			continue
		}
		ranked = append(ranked, RankedChapter{Name: name, AvgScore: *m.AvgTestScore, Subject: m.Subject})
	}
	slices.SortFunc(ranked, func(a, b RankedChapter) int {
		c := cmp.Compare(a.AvgScore, b.AvgScore)
		if !ascending {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if len(ranked) > rankingSize {
		ranked = ranked[:rankingSize]
	}
	return ranked
}

// chapterSeries groups one chapter measure by subject. Chapters without a
// value, and subjects left empty, are omitted.
func chapterSeries(metrics map[string]*ChapterMetric, value func(*ChapterMetric) (float64, bool)) []SubjectSeries {
	out := []SubjectSeries{}
	for _, subject := range models.Subjects {
		data := []NamedValue{}
		for _, name := range sortedKeys(metrics) {
			m := metrics[name]
			if m.Subject != subject {
				continue
			}
			if v, ok := value(m); ok {
				data = append(data, NamedValue{Name: name, Value: v})
			}
		}
		if len(data) == 0 {
			continue
		}
		slices.SortFunc(data, byValueDesc)
		out = append(out, SubjectSeries{Subject: subject, Data: data})
	}
	return out
}

func chapterHours(m *ChapterMetric) (float64, bool) { return m.Hours, m.Hours > 0 }

func chapterQuestions(m *ChapterMetric) (float64, bool) {
	return float64(m.TotalQuestions), m.TotalQuestions > 0
}

func chapterTestScore(m *ChapterMetric) (float64, bool) {
	if m.AvgTestScore == nil {
		return 0, false
	}
	return *m.AvgTestScore, true
}
