package report

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prep-meter/internal/models"
)

func TestBuild_SingleStudySlot(t *testing.T) {
	in := Input{
		Range: singleDay("2024-01-01"),
		Plans: []models.DailyPlan{
			plan("2024-01-01", "06:00", "22:00",
				[]models.PlannedTopic{topic("t1", models.Physics, "Kinematics")},
				slot("s1", "09:00", "11:00", "t1", models.StatusCompleted)),
		},
	}

	data := Build(in)
	require.Len(t, data.DailyBreakdown, 1)
	day := data.DailyBreakdown[0]
	assert.Equal(t, 2.0, day.StudyHours)
	assert.Equal(t, 0.0, day.CoachingHours)
	assert.Equal(t, 14.0, day.BreakHours)
	assert.Equal(t, []string{"Kinematics"}, day.TopicsStudied)
	require.NotNil(t, day.Efficiency)
	assert.InDelta(t, 0.125, *day.Efficiency, 1e-9)

	require.NotNil(t, data.TotalStudyHours)
	assert.Equal(t, 2.0, *data.TotalStudyHours)
	assert.Nil(t, data.TotalCoachingHours)
	assert.Equal(t, 2.0, data.ChapterMetrics["Kinematics"].Hours)
	assert.Nil(t, data.ChapterMetrics["Kinematics"].AvgTestScore)
}

func TestBuild_SlotCrossingWakeUp(t *testing.T) {
	in := Input{
		Range: singleDay("2024-01-01"),
		Plans: []models.DailyPlan{
			plan("2024-01-01", "06:30", "22:30",
				[]models.PlannedTopic{topic("t1", models.Physics, "Kinematics")},
				slot("s1", "06:00", "07:00", "t1", models.StatusCompleted)),
		},
	}

	day := Build(in).DailyBreakdown[0]
	assert.Equal(t, 1.0, day.StudyHours)
	assert.Equal(t, 15.5, day.BreakHours)
}

func TestBuild_FullDayHoursAddUp(t *testing.T) {
	slots := make([]models.HourlySlot, 24)
	for h := range slots {
		slots[h] = slot(fmt.Sprintf("s%d", h), fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:00", h+1), "t1", models.StatusCompleted)
	}
	in := Input{
		Range: singleDay("2024-01-01"),
		Plans: []models.DailyPlan{
			plan("2024-01-01", "06:30", "06:30",
				[]models.PlannedTopic{topic("t1", models.Math, "Limits")}, slots...),
		},
	}

	day := Build(in).DailyBreakdown[0]
	assert.Equal(t, 24.0, day.StudyHours)
	assert.Equal(t, 0.0, day.CoachingHours)
	assert.Equal(t, 0.0, day.BreakHours)
	assert.Equal(t, 24.0, day.StudyHours+day.CoachingHours+day.BreakHours)
}

func TestBuild_ChapterAverageAcrossTests(t *testing.T) {
	in := Input{
		Range: DateRange{Start: "2024-02-01", End: "2024-02-28"},
		Tests: []models.TestResult{
			testResult("a", "2024-02-03", 60, 100, "Thermodynamics"),
			testResult("b", "2024-02-10", 160, 200, "Thermodynamics", "Optics"),
		},
	}

	data := Build(in)
	thermo := data.ChapterMetrics["Thermodynamics"]
	require.NotNil(t, thermo)
	require.NotNil(t, thermo.AvgTestScore)
	assert.InDelta(t, 70.0, *thermo.AvgTestScore, 1e-9)
	assert.Len(t, thermo.Tests, 2)
	assert.Equal(t, models.Physics, thermo.Subject)

	require.Len(t, data.WeakestChapters, 2)
	assert.Equal(t, "Thermodynamics", data.WeakestChapters[0].Name)
	assert.Equal(t, "Optics", data.StrongestChapters[0].Name)
	require.NotNil(t, data.TestsTakenCount)
	assert.Equal(t, 2, *data.TestsTakenCount)
}

func TestBuild_TeacherRatings(t *testing.T) {
	in := Input{
		Range: DateRange{Start: "2024-03-01", End: "2024-03-31"},
		CoachingLogs: []models.CoachingLog{
			coachingLog("2024-03-01", 4, lecture("l1", "Mr. Sharma", models.Physics, "Optics", "16:00", "18:00", 4)),
			coachingLog("2024-03-02", 3,
				lecture("l2", "Mr. Sharma", models.Physics, "Optics", "16:00", "17:30", 5),
				lecture("l3", "Mr. Sharma", models.Physics, "Waves", "17:30", "18:00", 3)),
		},
	}

	data := Build(in)
	m := data.TeacherMetrics["Mr. Sharma"]
	require.NotNil(t, m)
	assert.Equal(t, []int{4, 5, 3}, m.Ratings)
	require.NotNil(t, m.AvgRating)
	assert.Equal(t, 4.0, *m.AvgRating)
	assert.Equal(t, 3, m.ClassCount)
	assert.InDelta(t, 4.0, m.TotalHours, 1e-9)

	require.Len(t, data.TeacherRatingDistribution, 1)
	h := data.TeacherRatingDistribution[0]
	assert.Equal(t, RatingHistogram{Name: "Mr. Sharma", Three: 1, Four: 1, Five: 1}, h)
}

func TestBuild_EmptyInputs(t *testing.T) {
	data := Build(Input{Range: DateRange{Start: "2024-01-01", End: "2024-01-31"}})

	assert.Nil(t, data.TotalStudyHours)
	assert.Nil(t, data.TotalCoachingHours)
	assert.Nil(t, data.TotalQuestionsSolved)
	assert.Nil(t, data.TestsTakenCount)
	assert.Nil(t, data.AvgMood)
	assert.Nil(t, data.AvgSleep)
	assert.Nil(t, data.AvgEfficiency)
	assert.Nil(t, data.HomeworkCompletionRate)

	raw, err := json.Marshal(data)
	require.NoError(t, err)
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))

	for name, value := range fields {
		switch name {
		case "title", "dateRange":
			continue
		}
		switch string(value) {
		case "null", "[]", "{}":
		default:
			t.Errorf("field %s = %s, want null or empty", name, value)
		}
	}
	assert.Contains(t, fields, "hourlyActivityHeatmap")
	assert.Contains(t, fields, "dailyBreakdown")
}

func TestBuild_RangeInclusivity(t *testing.T) {
	in := Input{
		Range: DateRange{Start: "2024-01-10", End: "2024-01-12"},
		WellnessLogs: []models.WellnessLog{
			{Date: "2024-01-09", Mood: 1, SleepHours: 4},
			{Date: "2024-01-10", Mood: 4, SleepHours: 8},
			{Date: "2024-01-12", Mood: 2, SleepHours: 6},
			{Date: "2024-01-13", Mood: 5, SleepHours: 10},
		},
	}

	data := Build(in)
	require.Len(t, data.DailyBreakdown, 2)
	assert.Equal(t, "2024-01-10", data.DailyBreakdown[0].Date)
	assert.Equal(t, "2024-01-12", data.DailyBreakdown[1].Date)
	require.NotNil(t, data.AvgMood)
	assert.Equal(t, 3.0, *data.AvgMood)
	require.NotNil(t, data.AvgSleep)
	assert.Equal(t, 7.0, *data.AvgSleep)
	assert.Len(t, data.WellnessTrend, 2)
}

func TestBuild_InvertedRangeIsEmpty(t *testing.T) {
	in := Input{
		Range:        DateRange{Start: "2024-01-12", End: "2024-01-10"},
		WellnessLogs: []models.WellnessLog{{Date: "2024-01-11", Mood: 3, SleepHours: 7}},
		Tests:        []models.TestResult{testResult("a", "2024-01-11", 50, 100, "Optics")},
	}

	data := Build(in)
	assert.Empty(t, data.DailyBreakdown)
	assert.Empty(t, data.TestsTaken)
	assert.Empty(t, data.ChapterMetrics)
	assert.Nil(t, data.AvgMood)
}

func TestBuild_HoursConservation(t *testing.T) {
	in := Input{
		Range: singleDay("2024-04-01"),
		Plans: []models.DailyPlan{
			plan("2024-04-01", "06:00", "06:00",
				[]models.PlannedTopic{topic("t1", models.Math, "Limits")},
				slot("s1", "06:00", "14:00", "t1", models.StatusCompleted),
				slot("s2", "14:00", "20:00", "c1", models.StatusCompleted),
				slot("s3", "20:00", "06:00", "", models.StatusPending)),
		},
		CoachingLogs: []models.CoachingLog{
			coachingLog("2024-04-01", 5, lecture("c1", "Ms. Rao", models.Math, "Limits", "14:00", "20:00", 5)),
		},
	}

	day := Build(in).DailyBreakdown[0]
	assert.InDelta(t, 24.0, day.StudyHours+day.CoachingHours+day.BreakHours, 1e-9)
	assert.Equal(t, 8.0, day.StudyHours)
	assert.Equal(t, 6.0, day.CoachingHours)
	assert.Equal(t, 10.0, day.BreakHours)
}

func TestBuild_EfficiencyBoundAndDistributionTotal(t *testing.T) {
	in := Input{
		Range: DateRange{Start: "2024-05-01", End: "2024-05-03"},
		Plans: []models.DailyPlan{
			plan("2024-05-01", "07:00", "23:00",
				[]models.PlannedTopic{topic("p", models.Physics, "Optics"), topic("c", models.Chemistry, "Mole Concept")},
				slot("1", "08:00", "10:30", "p", models.StatusCompleted),
				slot("2", "11:00", "12:00", "c", models.StatusCompleted),
				slot("3", "13:00", "14:00", "activity:Mock revision", models.StatusCompleted)),
			plan("2024-05-02", "06:00", "01:00", nil,
				slot("1", "23:00", "01:00", "activity:Night reading", models.StatusCompleted)),
			plan("2024-05-03", "", "", nil,
				slot("1", "09:00", "10:00", "", models.StatusCompleted)),
		},
		CoachingLogs: []models.CoachingLog{
			coachingLog("2024-05-01", 0, models.OtherActivity{ID: "o", Description: "Seminar", StartTime: "10:00", EndTime: "11:30"}),
		},
	}

	data := Build(in)
	for _, d := range data.DailyBreakdown {
		if d.Efficiency != nil {
			assert.GreaterOrEqual(t, *d.Efficiency, 0.0)
			assert.LessOrEqual(t, *d.Efficiency, 1.0)
		}
	}
	assert.Nil(t, data.DailyBreakdown[2].Efficiency)

	require.NotNil(t, data.TotalStudyHours)
	sum := 0.0
	for _, nv := range data.SubjectTimeDistribution {
		sum += nv.Value
	}
	assert.InDelta(t, *data.TotalStudyHours, sum, 1e-9)
	assert.InDelta(t, 6.5, sum, 1e-9)
	assert.Equal(t, []NamedValue{
		{Name: "Physics", Value: 2.5},
		{Name: "Chemistry", Value: 1},
		{Name: "Other", Value: 3},
	}, data.SubjectTimeDistribution)
}

func TestBuild_Deterministic(t *testing.T) {
	in := Input{
		Range: DateRange{Start: "2024-06-01", End: "2024-06-30"},
		Plans: []models.DailyPlan{
			plan("2024-06-02", "06:00", "22:00",
				[]models.PlannedTopic{topic("a", models.Physics, "Optics"), topic("b", models.Math, "Vectors")},
				slot("1", "08:00", "09:00", "a", models.StatusCompleted),
				slot("2", "09:00", "10:00", "b", models.StatusCompleted)),
		},
		CoachingLogs: []models.CoachingLog{
			coachingLog("2024-06-03", 4,
				lecture("x", "A", models.Physics, "Optics", "10:00", "11:00", 4),
				lecture("y", "B", models.Math, "Vectors", "11:00", "12:00", 2)),
		},
		Tests: []models.TestResult{
			testResult("t1", "2024-06-05", 40, 100, "Optics", "Vectors"),
			testResult("t2", "2024-06-05", 70, 100, "Vectors"),
		},
		Doubts: []models.Doubt{
			{ID: "d1", Subject: models.Math, Date: "2024-06-04", Status: models.DoubtCleared},
		},
		Lectures: []models.Lecture{
			{ID: "v1", Category: "Theory", DateAdded: "2024-06-01T10:00:00Z"},
			{ID: "v2", Category: "Concepts", DateAdded: "2024-06-02T10:00:00Z"},
		},
	}

	first, second := Build(in), Build(in)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("reports differ (-first +second):\n%s", diff)
	}

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	tests := []models.TestResult{
		testResult("b", "2024-06-09", 70, 100, "Vectors"),
		testResult("a", "2024-06-05", 40, 100, "Optics"),
	}
	Build(Input{Range: DateRange{Start: "2024-06-01", End: "2024-06-30"}, Tests: tests})
	assert.Equal(t, "b", tests[0].ID)
	assert.Equal(t, "a", tests[1].ID)
}

func TestBuild_TrendsAndDistributions(t *testing.T) {
	mood := 2
	p := plan("2024-07-02", "06:00", "22:00", nil)
	p.DailyMood = &mood
	p.QuestionsSolved = []models.QuestionsSolvedLog{
		{ID: "q1", Subject: models.Physics, Chapter: "Optics", Count: 10, Type: models.TierBasic},
		{ID: "q2", Subject: models.Physics, Chapter: "Optics", Count: 4, Type: models.TierAdvanced},
		{ID: "q3", Subject: models.Math, Chapter: "Vectors", Count: 6, Type: models.TierMains},
	}

	in := Input{
		Range: DateRange{Start: "2024-07-01", End: "2024-07-07"},
		Plans: []models.DailyPlan{p},
		CoachingLogs: []models.CoachingLog{
			coachingLog("2024-07-01", 9, lecture("l", "A", models.Chemistry, "Bonding", "16:00", "17:30", 0)),
		},
		Doubts: []models.Doubt{
			{ID: "1", Subject: models.Physics, Date: "2024-07-03", Status: models.DoubtConfusing},
			{ID: "2", Subject: models.Physics, Date: "2024-07-03", Status: models.DoubtCleared},
			{ID: "3", Subject: models.Math, Date: "2024-07-04", Status: models.DoubtCleared},
		},
	}

	data := Build(in)
	require.NotNil(t, data.TotalQuestionsSolved)
	assert.Equal(t, 20, *data.TotalQuestionsSolved)
	assert.Equal(t, []QuestionTypeRow{
		{Name: "Physics", TierCounts: TierCounts{Basic: 10, Advanced: 4}},
		{Name: "Math", TierCounts: TierCounts{Mains: 6}},
	}, data.QuestionTypeDistribution)
	assert.Equal(t, []NamedValue{
		{Name: "Physics", Value: 2},
		{Name: "Math", Value: 1},
		{Name: "Cleared", Value: 2},
		{Name: "Still Confusing", Value: 1},
	}, data.DoubtDistribution)
	assert.Equal(t, []NamedValue{{Name: "Chemistry", Value: 1.5}}, data.CoachingSubjectDistribution)

	require.Len(t, data.MotivationVsCoaching, 1)
	assert.Nil(t, data.MotivationVsCoaching[0].Motivation)
	assert.Equal(t, 1.5, data.MotivationVsCoaching[0].Hours)

	require.Len(t, data.WellnessTrend, 1)
	assert.Equal(t, 2.0, *data.WellnessTrend[0].Mood)
	assert.Nil(t, data.WellnessTrend[0].Sleep)

	assert.Len(t, data.DailyPerformanceTrend, 2)
	assert.Len(t, data.DailyHoursBreakdown, 4)
	assert.Empty(t, data.TeacherMetrics["A"].Ratings)
	assert.Nil(t, data.TeacherMetrics["A"].AvgRating)
}

func TestBuild_SyllabusCoverage(t *testing.T) {
	syllabus := models.Syllabus{
		Physics: models.PhysicsSubject{Name: "Physics", Chapters: []models.Chapter{
			{Name: "Optics", Status: models.TopicCompleted},
			{Name: "Waves", Status: models.TopicNotStarted},
		}},
		Chemistry: models.ChemistrySubject{Name: "Chemistry", Sections: []models.ChemistrySection{
			{Name: "Organic Chemistry", Chapters: []models.Chapter{{Name: "Isomerism", Status: models.TopicInProgress}}},
		}},
	}
	in := Input{
		Range:    DateRange{Start: "2024-08-01", End: "2024-08-05"},
		Syllabus: syllabus,
		Plans: []models.DailyPlan{
			plan("2024-08-01", "06:00", "22:00", []models.PlannedTopic{topic("a", models.Physics, "Optics")},
				slot("1", "08:00", "09:00", "a", models.StatusCompleted)),
			plan("2024-08-02", "06:00", "22:00", []models.PlannedTopic{topic("b", models.Physics, "Waves")},
				slot("1", "08:00", "09:00", "b", models.StatusCompleted)),
			plan("2024-08-03", "06:00", "22:00",
				[]models.PlannedTopic{topic("c", models.Chemistry, "Isomerism"), topic("d", models.Physics, "Optics")},
				slot("1", "08:00", "09:00", "c", models.StatusCompleted),
				slot("2", "09:00", "10:00", "d", models.StatusCompleted)),
		},
	}

	data := Build(in)
	assert.Equal(t, []CoveragePoint{
		{Date: "2024-08-01", Count: 1},
		{Date: "2024-08-03", Count: 2},
	}, data.SyllabusCoverageTrend)
	assert.Equal(t, []SubjectProgress{
		{Subject: models.Physics, Total: 2, Completed: 1, NotStarted: 1},
		{Subject: models.Chemistry, Total: 1, InProgress: 1},
	}, data.SyllabusProgress)
	assert.Equal(t, models.Chemistry, data.ChapterMetrics["Isomerism"].Subject)
}
