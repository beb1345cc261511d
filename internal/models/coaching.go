package models

import (
	"encoding/json"
	"fmt"
)

type ActivityKind string

const (
	KindLecture ActivityKind = "lecture"
	KindTest    ActivityKind = "test"
	KindOther   ActivityKind = "other"
)

// CoachingActivity is one of LectureActivity, TestActivity or OtherActivity.
// The set is closed: only types in this package implement it.
type CoachingActivity interface {
	Kind() ActivityKind
	ActivityID() string
	Span() (start, end string)
	coachingActivity()
}

type LectureActivity struct {
	ID              string   `json:"id"`
	StartTime       string   `json:"startTime" validate:"required,clock"`
	EndTime         string   `json:"endTime" validate:"required,clock"`
	Subject         Subject  `json:"subject" validate:"oneof=Physics Chemistry Math"`
	Teacher         string   `json:"teacher" validate:"required"`
	Category        string   `json:"category"`
	Chapter         string   `json:"chapter"`
	SubtopicsTaught []string `json:"subtopicsTaught"`
	Remarks         string   `json:"remarks"`
	Rating          int      `json:"rating" validate:"min=0,max=5"`
	Homework        string   `json:"homework"`
	Doubts          string   `json:"doubts"`
}

type TestActivity struct {
	ID             string  `json:"id"`
	UpcomingTestID *string `json:"upcomingTestId"`
	TestResultID   *string `json:"testResultId"`
	TestName       string  `json:"testName"`
	StartTime      string  `json:"startTime" validate:"required,clock"`
	EndTime        string  `json:"endTime" validate:"required,clock"`
}

type OtherActivity struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	StartTime   string `json:"startTime" validate:"required,clock"`
	EndTime     string `json:"endTime" validate:"required,clock"`
}

func (LectureActivity) Kind() ActivityKind { return KindLecture }
func (TestActivity) Kind() ActivityKind    { return KindTest }
func (OtherActivity) Kind() ActivityKind   { return KindOther }

func (a LectureActivity) ActivityID() string { return a.ID }
func (a TestActivity) ActivityID() string    { return a.ID }
func (a OtherActivity) ActivityID() string   { return a.ID }

func (a LectureActivity) Span() (string, string) { return a.StartTime, a.EndTime }
func (a TestActivity) Span() (string, string)    { return a.StartTime, a.EndTime }
func (a OtherActivity) Span() (string, string)   { return a.StartTime, a.EndTime }

func (LectureActivity) coachingActivity() {}
func (TestActivity) coachingActivity()    {}
func (OtherActivity) coachingActivity()   {}

func (a LectureActivity) MarshalJSON() ([]byte, error) {
	type plain LectureActivity
	return json.Marshal(struct {
		Type ActivityKind `json:"type"`
		plain
	}{KindLecture, plain(a)})
}

func (a TestActivity) MarshalJSON() ([]byte, error) {
	type plain TestActivity
	return json.Marshal(struct {
		Type ActivityKind `json:"type"`
		plain
	}{KindTest, plain(a)})
}

func (a OtherActivity) MarshalJSON() ([]byte, error) {
	type plain OtherActivity
	return json.Marshal(struct {
		Type ActivityKind `json:"type"`
		plain
	}{KindOther, plain(a)})
}

// DecodeActivity decodes one coaching activity, dispatching on its "type" field.
func DecodeActivity(data []byte) (CoachingActivity, error) {
	var head struct {
		Type ActivityKind `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode activity kind: %w", err)
	}

	switch head.Type {
	case KindLecture:
		var a LectureActivity
		err := json.Unmarshal(data, &a)
		return a, err
	case KindTest:
		var a TestActivity
		err := json.Unmarshal(data, &a)
		return a, err
	case KindOther:
		var a OtherActivity
		err := json.Unmarshal(data, &a)
		return a, err
	default:
		return nil, fmt.Errorf("unknown coaching activity type %q", head.Type)
	}
}

type CoachingLog struct {
	Date       string             `json:"date" validate:"required,date"`
	Activities []CoachingActivity `json:"activities" validate:"dive"`
	Motivation int                `json:"motivation"`
}

func (l *CoachingLog) UnmarshalJSON(data []byte) error {
	var raw struct {
		Date       string            `json:"date"`
		Activities []json.RawMessage `json:"activities"`
		Motivation int               `json:"motivation"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	activities := make([]CoachingActivity, 0, len(raw.Activities))
	for i, msg := range raw.Activities {
		a, err := DecodeActivity(msg)
		if err != nil {
			return fmt.Errorf("coaching log %s activity %d: %w", raw.Date, i, err)
		}
		activities = append(activities, a)
	}

	l.Date = raw.Date
	l.Activities = activities
	l.Motivation = raw.Motivation
	return nil
}

// Lectures returns the lecture activities of the log in order.
func (l CoachingLog) Lectures() []LectureActivity {
	var out []LectureActivity
	for _, a := range l.Activities {
		if lec, ok := a.(LectureActivity); ok {
			out = append(out, lec)
		}
	}
	return out
}
