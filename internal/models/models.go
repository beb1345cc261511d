package models

type Subject string

const (
	Physics   Subject = "Physics"
	Chemistry Subject = "Chemistry"
	Math      Subject = "Math"
)

// Subjects lists subjects in display order.
var Subjects = []Subject{Physics, Chemistry, Math}

type Status string

const (
	StatusPending    Status = "Pending"
	StatusCompleted  Status = "Completed"
	StatusIncomplete Status = "Incomplete"
)

type QuestionTier string

const (
	TierBasic    QuestionTier = "Basic"
	TierMains    QuestionTier = "Mains"
	TierAdvanced QuestionTier = "Advanced"
)

type PlannedTopic struct {
	ID            string   `json:"id" validate:"required"`
	Subject       Subject  `json:"subject" validate:"oneof=Physics Chemistry Math"`
	ChapterName   string   `json:"chapterName" validate:"required"`
	IsFullChapter bool     `json:"isFullChapter"`
	SubtopicNames []string `json:"subtopicNames"`
	Note          string   `json:"note"`
	Status        Status   `json:"status" validate:"oneof=Pending Completed Incomplete"`
	IsCarriedOver bool     `json:"isCarriedOver,omitempty"`
}

// HourlySlot links a block of the day to a planned topic, task, lecture or
// coaching activity through PlannedTopicID.
type HourlySlot struct {
	ID             string   `json:"id"`
	StartTime      string   `json:"startTime" validate:"required,clock"`
	EndTime        string   `json:"endTime" validate:"required,clock"`
	PlannedTopicID *string  `json:"plannedTopicId"`
	Subject        *Subject `json:"subject"`
	Status         Status   `json:"status" validate:"oneof=Pending Completed Incomplete"`
}

type DailyPlanTask struct {
	ID            string `json:"id" validate:"required"`
	Text          string `json:"text"`
	Status        Status `json:"status" validate:"oneof=Pending Completed Incomplete"`
	IsCarriedOver bool   `json:"isCarriedOver,omitempty"`
}

type QuestionsSolvedLog struct {
	ID      string       `json:"id"`
	Subject Subject      `json:"subject" validate:"oneof=Physics Chemistry Math"`
	Chapter string       `json:"chapter" validate:"required"`
	Count   int          `json:"count" validate:"gte=0"`
	Type    QuestionTier `json:"type" validate:"oneof=Basic Mains Advanced"`
}

type SubjectPlans struct {
	Physics   []PlannedTopic `json:"Physics" validate:"dive"`
	Chemistry []PlannedTopic `json:"Chemistry" validate:"dive"`
	Math      []PlannedTopic `json:"Math" validate:"dive"`
}

// All returns the planned topics of every subject in display order.
func (sp SubjectPlans) All() []PlannedTopic {
	all := make([]PlannedTopic, 0, len(sp.Physics)+len(sp.Chemistry)+len(sp.Math))
	all = append(all, sp.Physics...)
	all = append(all, sp.Chemistry...)
	return append(all, sp.Math...)
}

type DailyPlan struct {
	Date            string               `json:"date" validate:"required,date"`
	SubjectPlans    SubjectPlans         `json:"subjectPlans"`
	Schedule        []HourlySlot         `json:"schedule" validate:"dive"`
	Tasks           []DailyPlanTask      `json:"tasks" validate:"dive"`
	IsReviewed      bool                 `json:"isReviewed"`
	WakeUpTime      string               `json:"wakeUpTime" validate:"omitempty,clock"`
	SleepTime       string               `json:"sleepTime" validate:"omitempty,clock"`
	DailyMood       *int                 `json:"dailyMood" validate:"omitempty,min=1,max=5"`
	QuestionsSolved []QuestionsSolvedLog `json:"questionsSolved" validate:"dive"`
}

type TestType string

const (
	TestMains    TestType = "JEE Mains"
	TestAdvanced TestType = "JEE Advanced"
	TestBoard    TestType = "Board"
)

type TestSyllabusItem struct {
	Subject string `json:"subject"`
	Chapter string `json:"chapter"`
}

// SubjectMarks holds one number per subject, as used for marks and negative marks.
type SubjectMarks struct {
	Physics   float64 `json:"physics"`
	Chemistry float64 `json:"chemistry"`
	Math      float64 `json:"math"`
}

func (m SubjectMarks) Total() float64 {
	return m.Physics + m.Chemistry + m.Math
}

func (m SubjectMarks) For(s Subject) float64 {
	switch s {
	case Physics:
		return m.Physics
	case Chemistry:
		return m.Chemistry
	case Math:
		return m.Math
	}
	return 0
}

type TestResult struct {
	ID             string             `json:"id" validate:"required"`
	Name           string             `json:"name" validate:"required"`
	Date           string             `json:"date" validate:"required,date"`
	Type           TestType           `json:"type"`
	Marks          SubjectMarks       `json:"marks"`
	NegativeMarks  SubjectMarks       `json:"negativeMarks"`
	TotalMarks     float64            `json:"totalMarks" validate:"gte=0"`
	Syllabus       []TestSyllabusItem `json:"syllabus"`
	CustomSyllabus string             `json:"customSyllabus"`
	AnalysisDone   bool               `json:"analysisDone"`
	Feedback       string             `json:"feedback"`
	Learnings      string             `json:"learnings"`
	ClassRank      *int               `json:"classRank,omitempty"`
	TestScope      string             `json:"testScope,omitempty"`
}

type WellnessLog struct {
	Date       string  `json:"date" validate:"required,date"`
	Mood       int     `json:"mood" validate:"min=1,max=5"`
	SleepHours float64 `json:"sleepHours" validate:"gte=0,lte=24"`
	Journal    string  `json:"journal,omitempty"`
}

type DoubtStatus string

const (
	DoubtCleared   DoubtStatus = "Cleared"
	DoubtConfusing DoubtStatus = "Still Confusing"
)

type Doubt struct {
	ID          string      `json:"id" validate:"required"`
	Subject     Subject     `json:"subject" validate:"oneof=Physics Chemistry Math"`
	Topic       string      `json:"topic"`
	Description string      `json:"description"`
	Date        string      `json:"date" validate:"required,date"`
	Status      DoubtStatus `json:"status" validate:"oneof=Cleared 'Still Confusing'"`
	Context     string      `json:"context,omitempty"`
}

type Lecture struct {
	ID        string  `json:"id" validate:"required"`
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	VideoID   string  `json:"videoId"`
	Subject   Subject `json:"subject" validate:"oneof=Physics Chemistry Math"`
	Chapter   string  `json:"chapter"`
	Category  string  `json:"category"`
	DateAdded string  `json:"dateAdded"`
}

// AddedOn returns the calendar date part of DateAdded.
func (l Lecture) AddedOn() string {
	return datePart(l.DateAdded)
}

// datePart trims an ISO timestamp to its YYYY-MM-DD prefix.
func datePart(ts string) string {
	if len(ts) < 10 {
		return ts
	}
	return ts[:10]
}

// UpcomingTest is a scheduled test with no result yet. Coaching test
// activities may link to one before the result is logged.
type UpcomingTest struct {
	ID             string             `json:"id" validate:"required"`
	Name           string             `json:"name" validate:"required"`
	Date           string             `json:"date" validate:"required,date"`
	Time           string             `json:"time" validate:"omitempty,clock"`
	Type           TestType           `json:"type"`
	TotalMarks     float64            `json:"totalMarks" validate:"gte=0"`
	TargetMarks    float64            `json:"targetMarks" validate:"gte=0"`
	Syllabus       []TestSyllabusItem `json:"syllabus"`
	CustomSyllabus string             `json:"customSyllabus"`
	TestScope      string             `json:"testScope,omitempty"`
}

type ChallengeType string

const (
	ChallengeStudyHours      ChallengeType = "study_hours"
	ChallengeCompletedTopics ChallengeType = "completed_topics"
	ChallengeQuestionsSolved ChallengeType = "questions_solved"
)

type ChallengeStatus string

const (
	ChallengeActive    ChallengeStatus = "active"
	ChallengeCompleted ChallengeStatus = "completed"
	ChallengeFailed    ChallengeStatus = "failed"
)

// StudyChallenge is a goal over a run of days. Current and Status are the
// values the app last saved; reports recompute both from daily records.
type StudyChallenge struct {
	ID           string          `json:"id" validate:"required"`
	Title        string          `json:"title"`
	Type         ChallengeType   `json:"type" validate:"oneof=study_hours completed_topics questions_solved"`
	Goal         float64         `json:"goal" validate:"gt=0"`
	Current      float64         `json:"current"`
	Unit         string          `json:"unit"`
	DurationDays int             `json:"durationDays" validate:"gte=0"`
	StartDate    string          `json:"startDate" validate:"required"`
	EndDate      string          `json:"endDate" validate:"required"`
	Status       ChallengeStatus `json:"status"`
}

// Window returns the first and last calendar dates of the challenge.
func (c StudyChallenge) Window() (start, end string) {
	return datePart(c.StartDate), datePart(c.EndDate)
}
