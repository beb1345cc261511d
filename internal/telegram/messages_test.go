package telegram

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prep-meter/internal/models"
	"prep-meter/internal/report"
)

func f64(v float64) *float64 { return &v }

func TestFormatReport(t *testing.T) {
	questions, longest, current := 120, 4, 2
	bestDate := "2024-01-03"
	data := &report.ReportData{
		Title:                   "Study Report",
		DateRange:               "2024-01-01 to 2024-01-07",
		TotalStudyHours:         f64(12.5),
		TotalCoachingHours:      f64(8),
		TotalQuestionsSolved:    &questions,
		AvgEfficiency:           f64(0.625),
		SubjectTimeDistribution: []report.NamedValue{{Name: "Physics", Value: 7.5}, {Name: "Math", Value: 5}},
		WeakestChapters:         []report.RankedChapter{{Name: "Rotation <hard>", AvgScore: 32, Subject: models.Physics}},
		DailyBreakdown:          []report.DailyBreakdownItem{{Date: "2024-01-01"}},
		LongestStudyStreak:      &longest,
		CurrentStudyStreak:      &current,
		PersonalBestStudyHours:  f64(4.5),
		PersonalBestDate:        &bestDate,
		ChallengeProgress: []report.ChallengeProgress{
			{Title: "Solve 500", Type: models.ChallengeQuestionsSolved, Unit: "questions", Goal: 500, Current: 120, Percent: 24, Status: models.ChallengeActive},
			{Type: models.ChallengeStudyHours, Unit: "hours", Goal: 10, Current: 12.5, Percent: 100, Status: models.ChallengeCompleted},
		},
	}

	text := FormatReport("📈 <b>Week 1 report</b>", data, []string{"first", "second"})
	assert.Contains(t, text, "2024-01-01 to 2024-01-07")
	assert.Contains(t, text, "Self study: 12h 30m")
	assert.Contains(t, text, "Coaching: 8h")
	assert.Contains(t, text, "Efficiency: 62%")
	assert.Contains(t, text, "Questions: 120")
	assert.Contains(t, text, "Tests: -")
	assert.Contains(t, text, "⚛️ Physics: 7h 30m")
	assert.Contains(t, text, "Rotation &lt;hard&gt;: 32%")
	assert.Contains(t, text, "first\nsecond")
	assert.Contains(t, text, "Streak: 2 days, longest 4")
	assert.Contains(t, text, "Best day: 4h 30m on 2024-01-03")
	assert.Contains(t, text, "⏳ Solve 500: 120/500 questions (24%)")
	assert.Contains(t, text, "✅ study_hours: 12.5/10 hours (100%)")
}

func TestFormatReport_Empty(t *testing.T) {
	text := FormatReport("heading", &report.ReportData{DateRange: "2024-01-01 to 2024-01-01"}, nil)
	assert.Contains(t, text, "No records")
	assert.NotContains(t, text, "Insights")
}

func TestFormatDay(t *testing.T) {
	item := report.DailyBreakdownItem{
		Date:          "2024-01-03",
		StudyHours:    2,
		CoachingHours: 2,
		BreakHours:    12,
		Efficiency:    f64(2.0 / 14),
		TopicsStudied: []string{"Optics"},
		Wellness:      &models.WellnessLog{Date: "2024-01-03", Mood: 4, SleepHours: 7},
		Schedule: []report.ReportHourlySlot{
			{HourlySlot: models.HourlySlot{StartTime: "08:00", EndTime: "10:00", Status: models.StatusCompleted}, ActivityName: "Optics", ActivityType: report.ActivityTopic},
			{HourlySlot: models.HourlySlot{StartTime: "10:00", EndTime: "11:00", Status: models.StatusPending}, ActivityName: "Free", ActivityType: report.ActivityFree},
		},
		QuestionsSolved: []models.QuestionsSolvedLog{{Count: 20}, {Count: 5}},
	}

	text := FormatDay(item)
	assert.Contains(t, text, "Breaks: 12h")
	assert.Contains(t, text, "Efficiency: 14%")
	assert.Contains(t, text, "🙂 Mood 4/5")
	assert.Contains(t, text, "✅ 08:00-10:00 Optics")
	assert.Contains(t, text, "⬜ 10:00-11:00 Free")
	assert.Contains(t, text, "Questions solved: 25")
}

func TestFormatTeachersAndChapters(t *testing.T) {
	empty := &report.ReportData{DateRange: "2024-01-01 to 2024-01-30"}
	assert.Contains(t, FormatTeachers(empty), "No coaching lectures")
	assert.Contains(t, FormatChapters(empty), "No scored tests")

	data := &report.ReportData{
		DateRange: "2024-01-01 to 2024-01-30",
		TeacherMetrics: map[string]*report.TeacherMetric{
			"Mr. Sharma": {Ratings: []int{4, 5}, AvgRating: f64(4.5), ClassCount: 2, TotalHours: 4, DoubtsCleared: 1},
		},
		TeacherLectureCount:    []report.LectureCount{{Name: "Mr. Sharma", Count: 2}},
		HomeworkCompletionRate: f64(50),
		WeakestChapters:        []report.RankedChapter{{Name: "Rotation", AvgScore: 30, Subject: models.Physics}},
		StrongestChapters:      []report.RankedChapter{{Name: "Limits", AvgScore: 90, Subject: models.Math}},
	}
	teachers := FormatTeachers(data)
	assert.Contains(t, teachers, "2 classes, 4h, ⭐ 4.5, 1 doubts cleared")
	assert.Contains(t, teachers, "Homework followed up: 50%")

	chapters := FormatChapters(data)
	assert.Contains(t, chapters, "1. ⚛️ Rotation: 30%")
	assert.Contains(t, chapters, "1. 📐 Limits: 90%")
}

func TestParseWellness(t *testing.T) {
	entry, err := ParseWellness("mood=4 sleep=7.5 note=Mock went well, revise optics", "2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, models.WellnessLog{Date: "2024-01-03", Mood: 4, SleepHours: 7.5, Journal: "Mock went well, revise optics"}, entry)

	entry, err = ParseWellness("sleep=6 MOOD=2", "2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Mood)

	_, err = ParseWellness("mood=6 sleep=7", "2024-01-03")
	assert.ErrorContains(t, err, "mood")
	_, err = ParseWellness("mood=3 sleep=lots", "2024-01-03")
	assert.ErrorContains(t, err, "sleep")
	_, err = ParseWellness("mood=3", "2024-01-03")
	assert.ErrorContains(t, err, "required")
}

func TestFitMessage(t *testing.T) {
	short := "hello"
	assert.Equal(t, short, fitMessage(short))

	long := strings.Repeat("é", maxMessageRunes+10)
	assert.Equal(t, maxMessageRunes, utf8.RuneCountInString(fitMessage(long)))
}
