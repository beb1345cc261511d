package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prep-meter/internal/models"
)

func TestBuildRollups_ResolvesSlotLinks(t *testing.T) {
	p := plan("2024-01-05", "06:00", "23:00",
		[]models.PlannedTopic{{ID: "t1", Subject: models.Math, ChapterName: "Matrices", SubtopicNames: []string{"Inverse", "Rank"}}},
		slot("1", "07:00", "08:00", "t1", models.StatusCompleted),
		slot("2", "08:00", "09:00", "task1", models.StatusCompleted),
		slot("3", "09:00", "10:00", "vid1", models.StatusCompleted),
		slot("4", "10:00", "11:00", "lec1", models.StatusPending),
		slot("5", "11:00", "12:00", "activity:Formula sheet", models.StatusIncomplete),
		slot("6", "12:00", "13:00", "deleted-topic", models.StatusCompleted),
		slot("7", "13:00", "14:00", "", models.StatusPending),
		slot("8", "14:00", "15:00", "test1", models.StatusPending),
	)
	p.Tasks = []models.DailyPlanTask{{ID: "task1", Text: "Revise formulas", Status: models.StatusCompleted}}

	f := Filtered{
		Range: singleDay("2024-01-05"),
		Plans: []models.DailyPlan{p},
		CoachingLogs: []models.CoachingLog{coachingLog("2024-01-05", 4,
			lecture("lec1", "Mr. Iyer", models.Physics, "Optics", "16:00", "18:00", 4),
			models.TestActivity{ID: "test1", TestName: "Sunday Mock", StartTime: "18:00", EndTime: "19:00"},
		)},
		AllLectures: []models.Lecture{{ID: "vid1", Title: "Rotational Dynamics L3", Subject: models.Physics, Chapter: "Rotation"}},
	}

	items := BuildRollups(f)
	require.Len(t, items, 1)
	sched := items[0].Schedule
	require.Len(t, sched, 8)

	want := []struct {
		kind ActivityType
		name string
	}{
		{ActivityTopic, "Matrices: Inverse, Rank"},
		{ActivityTask, "Revise formulas"},
		{ActivityLecture, "Rotational Dynamics L3"},
		{ActivityCoaching, "Optics (Mr. Iyer)"},
		{ActivityCustom, "Formula sheet"},
		{ActivityFree, "Free"},
		{ActivityFree, "Free"},
		{ActivityCoaching, "Sunday Mock"},
	}
	for i, w := range want {
		assert.Equal(t, w.kind, sched[i].ActivityType, "slot %d", i)
		assert.Equal(t, w.name, sched[i].ActivityName, "slot %d", i)
	}

	assert.Equal(t, 3.0, items[0].StudyHours)
	assert.Equal(t, 3.0, items[0].CoachingHours)
	assert.Equal(t, []string{"Matrices", "Rotation"}, items[0].TopicsStudied)
	assert.Len(t, items[0].CoachingActivities, 2)
}

func TestBuildRollups_LinkedTestResultName(t *testing.T) {
	f := Filtered{
		Range: singleDay("2024-01-06"),
		Plans: []models.DailyPlan{plan("2024-01-06", "06:00", "22:00", nil, slot("1", "10:00", "13:00", "act", models.StatusCompleted))},
		CoachingLogs: []models.CoachingLog{coachingLog("2024-01-06", 3,
			models.TestActivity{ID: "act", TestResultID: strPtr("r1"), TestName: "custom", StartTime: "10:00", EndTime: "13:00"},
		)},
		Tests: []models.TestResult{{ID: "r1", Name: "AITS Part Test 2", Date: "2024-01-06", TotalMarks: 300}},
	}

	items := BuildRollups(f)
	require.Len(t, items, 1)
	assert.Equal(t, "AITS Part Test 2", items[0].Schedule[0].ActivityName)
	assert.Equal(t, 0.0, items[0].StudyHours)
	assert.Equal(t, 3.0, items[0].CoachingHours)
	assert.Equal(t, 13.0, items[0].BreakHours)
	require.NotNil(t, items[0].Efficiency)
	assert.Equal(t, 0.0, *items[0].Efficiency)
}

func TestBuildRollups_DatesFromEveryCollection(t *testing.T) {
	f := Filtered{
		Range:        DateRange{Start: "2024-01-01", End: "2024-01-31"},
		CoachingLogs: []models.CoachingLog{coachingLog("2024-01-09", 4, lecture("l", "A", models.Physics, "Optics", "16:00", "18:00", 4))},
		WellnessLogs: []models.WellnessLog{{Date: "2024-01-03", Mood: 3, SleepHours: 7}},
		Doubts:       []models.Doubt{{ID: "d", Subject: models.Math, Date: "2024-01-20", Status: models.DoubtConfusing}},
		Tests:        []models.TestResult{{ID: "t", Date: "2024-01-15", TotalMarks: 100}},
	}

	items := BuildRollups(f)
	dates := make([]string, len(items))
	for i, it := range items {
		dates[i] = it.Date
	}
	assert.Equal(t, []string{"2024-01-03", "2024-01-09", "2024-01-15", "2024-01-20"}, dates)

	coachingOnly := items[1]
	assert.Equal(t, 2.0, coachingOnly.CoachingHours)
	assert.Equal(t, 0.0, coachingOnly.BreakHours)
	assert.Nil(t, coachingOnly.Efficiency)
	assert.Nil(t, coachingOnly.Wellness)
	require.NotNil(t, items[0].Wellness)
	assert.Equal(t, 3, items[0].Wellness.Mood)
	assert.NotNil(t, coachingOnly.Schedule)
	assert.NotNil(t, coachingOnly.QuestionsSolved)
}

func TestHourlyHeatmap(t *testing.T) {
	in := Input{
		Range: DateRange{Start: "2024-02-01", End: "2024-02-02"},
		Plans: []models.DailyPlan{
			plan("2024-02-01", "06:00", "02:00",
				[]models.PlannedTopic{topic("t", models.Physics, "Optics")},
				slot("1", "08:30", "10:00", "t", models.StatusCompleted),
				slot("2", "23:30", "00:30", "t", models.StatusCompleted)),
		},
		WellnessLogs: []models.WellnessLog{{Date: "2024-02-02", Mood: 4, SleepHours: 8}},
	}

	data := Build(in)
	require.Len(t, data.HourlyActivityHeatmap, 24)
	assert.Equal(t, []string{"2024-02-01", "2024-02-02"}, data.ActivityHeatmapLabels)

	value := func(hour, col int) *float64 { return data.HourlyActivityHeatmap[hour].Values[col] }
	assert.Equal(t, "08", data.HourlyActivityHeatmap[8].Hour)
	assert.Equal(t, 0.5, *value(8, 0))
	assert.Equal(t, 1.0, *value(9, 0))
	assert.Equal(t, 0.0, *value(10, 0))
	assert.Equal(t, 0.5, *value(23, 0))
	assert.Equal(t, 0.5, *value(0, 0))
	for h := range 24 {
		assert.Nil(t, value(h, 1), "hour %d of a date without schedule", h)
	}
}
