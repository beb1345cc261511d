package report

import "prep-meter/internal/models"

// ActivityType classifies a schedule slot after its link is resolved.
type ActivityType string

const (
	ActivityTopic    ActivityType = "topic"
	ActivityTask     ActivityType = "task"
	ActivityCustom   ActivityType = "activity"
	ActivityFree     ActivityType = "free"
	ActivityLecture  ActivityType = "lecture"
	ActivityCoaching ActivityType = "coaching"
)

type ReportHourlySlot struct {
	models.HourlySlot
	ActivityName string       `json:"activityName"`
	ActivityType ActivityType `json:"activityType"`
}

type DailyBreakdownItem struct {
	Date               string                      `json:"date"`
	StudyHours         float64                     `json:"studyHours"`
	CoachingHours      float64                     `json:"coachingHours"`
	BreakHours         float64                     `json:"breakHours"`
	Efficiency         *float64                    `json:"efficiency"`
	TopicsStudied      []string                    `json:"topicsStudied"`
	Schedule           []ReportHourlySlot          `json:"schedule"`
	Wellness           *models.WellnessLog         `json:"wellness"`
	QuestionsSolved    []models.QuestionsSolvedLog `json:"questionsSolved"`
	CoachingActivities []models.CoachingActivity   `json:"coachingActivities"`
}

type TierCounts struct {
	Basic    int `json:"Basic"`
	Mains    int `json:"Mains"`
	Advanced int `json:"Advanced"`
}

func (c *TierCounts) add(tier models.QuestionTier, n int) {
	switch tier {
	case models.TierBasic:
		c.Basic += n
	case models.TierMains:
		c.Mains += n
	case models.TierAdvanced:
		c.Advanced += n
	}
}

func (c TierCounts) Total() int { return c.Basic + c.Mains + c.Advanced }

type ChapterTest struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Score        float64 `json:"score"`
	TotalMarks   float64 `json:"totalMarks"`
	Date         string  `json:"date"`
	ScorePercent float64 `json:"scorePercent"`
}

type ChapterMetric struct {
	Subject        models.Subject `json:"subject"`
	Questions      TierCounts     `json:"questions"`
	TotalQuestions int            `json:"totalQuestions"`
	Hours          float64        `json:"hours"`
	Tests          []ChapterTest  `json:"tests"`
	AvgTestScore   *float64       `json:"avgTestScore"`
}

type TeacherMetric struct {
	Ratings       []int    `json:"ratings"`
	AvgRating     *float64 `json:"avgRating"`
	ClassCount    int      `json:"classCount"`
	TotalHours    float64  `json:"totalHours"`
	DoubtsCleared int      `json:"doubtsCleared"`
}

type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type DailyPerformancePoint struct {
	Date          string   `json:"date"`
	StudyHours    float64  `json:"studyHours"`
	CoachingHours float64  `json:"coachingHours"`
	Questions     int      `json:"questions"`
	Efficiency    *float64 `json:"efficiency"`
}

type QuestionTypeRow struct {
	Name string `json:"name"`
	TierCounts
}

type HeatmapRow struct {
	Hour   string     `json:"hour"`
	Values []*float64 `json:"values"`
}

type DailyHours struct {
	Date      string  `json:"date"`
	SelfStudy float64 `json:"selfStudy"`
	Coaching  float64 `json:"coaching"`
	Breaks    float64 `json:"breaks"`
}

type TestPoint struct {
	Date       string  `json:"date"`
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
	TotalMarks float64 `json:"totalMarks"`
	Percentage float64 `json:"percentage"`
	Negative   float64 `json:"negative"`
}

type SubjectScore struct {
	Name     models.Subject `json:"name"`
	AvgScore float64        `json:"avgScore"`
}

type NegativeMarksPoint struct {
	Negative   float64 `json:"negative"`
	Percentage float64 `json:"percentage"`
}

type RankedChapter struct {
	Name     string         `json:"name"`
	AvgScore float64        `json:"avgScore"`
	Subject  models.Subject `json:"subject"`
}

type CoveragePoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type SubjectSeries struct {
	Subject models.Subject `json:"subject"`
	Data    []NamedValue   `json:"data"`
}

type WellnessPoint struct {
	Date       string   `json:"date"`
	Mood       *float64 `json:"mood"`
	Sleep      *float64 `json:"sleep"`
	Efficiency *float64 `json:"efficiency"`
}

type LectureCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RatingHistogram always carries all five buckets.
type RatingHistogram struct {
	Name  string `json:"name"`
	One   int    `json:"1"`
	Two   int    `json:"2"`
	Three int    `json:"3"`
	Four  int    `json:"4"`
	Five  int    `json:"5"`
}

type MotivationPoint struct {
	Date       string   `json:"date"`
	Motivation *float64 `json:"motivation"`
	Hours      float64  `json:"hours"`
}

type SubjectProgress struct {
	Subject    models.Subject `json:"subject"`
	Total      int            `json:"total"`
	Completed  int            `json:"completed"`
	InProgress int            `json:"inProgress"`
	Revise     int            `json:"revise"`
	NotStarted int            `json:"notStarted"`
}

// ChallengeProgress is a challenge re-measured against the daily records in
// range. Partial marks a challenge whose window reaches outside the range,
// so Current only counts the overlapping days.
type ChallengeProgress struct {
	ID        string                 `json:"id"`
	Title     string                 `json:"title"`
	Type      models.ChallengeType   `json:"type"`
	Unit      string                 `json:"unit"`
	Goal      float64                `json:"goal"`
	Current   float64                `json:"current"`
	Percent   float64                `json:"percent"`
	StartDate string                 `json:"startDate"`
	EndDate   string                 `json:"endDate"`
	Status    models.ChallengeStatus `json:"status"`
	Partial   bool                   `json:"partial"`
}

// ReportData is the snapshot handed to renderers. Every field is always
// present: scalars without data are null, collections are empty.
type ReportData struct {
	Title     string `json:"title"`
	DateRange string `json:"dateRange"`

	TotalStudyHours      *float64 `json:"totalStudyHours"`
	TotalCoachingHours   *float64 `json:"totalCoachingHours"`
	TotalQuestionsSolved *int     `json:"totalQuestionsSolved"`
	TestsTakenCount      *int     `json:"testsTakenCount"`
	AvgMood              *float64 `json:"avgMood"`
	AvgSleep             *float64 `json:"avgSleep"`
	AvgEfficiency        *float64 `json:"avgEfficiency"`

	LongestStudyStreak     *int                `json:"longestStudyStreak"`
	CurrentStudyStreak     *int                `json:"currentStudyStreak"`
	PersonalBestStudyHours *float64            `json:"personalBestStudyHours"`
	PersonalBestDate       *string             `json:"personalBestDate"`
	ChallengeProgress      []ChallengeProgress `json:"challengeProgress"`

	DailyPerformanceTrend    []DailyPerformancePoint `json:"dailyPerformanceTrend"`
	SubjectTimeDistribution  []NamedValue            `json:"subjectTimeDistribution"`
	QuestionTypeDistribution []QuestionTypeRow       `json:"questionTypeDistribution"`

	HourlyActivityHeatmap []HeatmapRow `json:"hourlyActivityHeatmap"`
	ActivityHeatmapLabels []string     `json:"activityHeatmapLabels"`
	DailyHoursBreakdown   []DailyHours `json:"dailyHoursBreakdown"`

	TestPerformanceTrend       []TestPoint          `json:"testPerformanceTrend"`
	SubjectWiseTestPerformance []SubjectScore       `json:"subjectWiseTestPerformance"`
	NegativeMarksAnalysis      []NegativeMarksPoint `json:"negativeMarksAnalysis"`
	WeakestChapters            []RankedChapter      `json:"weakestChapters"`
	StrongestChapters          []RankedChapter      `json:"strongestChapters"`

	SyllabusCoverageTrend  []CoveragePoint           `json:"syllabusCoverageTrend"`
	SyllabusProgress       []SubjectProgress         `json:"syllabusProgress"`
	ChapterMetrics         map[string]*ChapterMetric `json:"chapterMetrics"`
	ChapterTimeMetrics     []SubjectSeries           `json:"chapterTimeMetrics"`
	ChapterQuestionMetrics []SubjectSeries           `json:"chapterQuestionMetrics"`
	ChapterTestMetrics     []SubjectSeries           `json:"chapterTestMetrics"`

	TeacherMetrics              map[string]*TeacherMetric `json:"teacherMetrics"`
	HomeworkCompletionRate      *float64                  `json:"homeworkCompletionRate"`
	WellnessTrend               []WellnessPoint           `json:"wellnessTrend"`
	DoubtDistribution           []NamedValue              `json:"doubtDistribution"`
	TeacherLectureCount         []LectureCount            `json:"teacherLectureCount"`
	TeacherRatingDistribution   []RatingHistogram         `json:"teacherRatingDistribution"`
	CoachingSubjectDistribution []NamedValue              `json:"coachingSubjectDistribution"`
	LectureCategoryDistribution []NamedValue              `json:"lectureCategoryDistribution"`
	MotivationVsCoaching        []MotivationPoint         `json:"motivationVsCoaching"`

	DailyBreakdown []DailyBreakdownItem `json:"dailyBreakdown"`
	TestsTaken     []models.TestResult  `json:"testsTaken"`
}
