// Package report turns a user's raw study records into a ReportData snapshot.
//
// The pipeline runs in four stages: Select narrows every collection to the
// requested date range, BuildRollups merges each day's records into one
// DailyBreakdownItem, the dimension aggregators fold rollups into chapter,
// teacher, time and distribution tables, and Build assembles the snapshot.
// Nothing here performs I/O or mutates its input.
package report

import "prep-meter/internal/models"

// DateRange is an inclusive window of YYYY-MM-DD dates.
type DateRange struct {
	Start string `json:"startDate"`
	End   string `json:"endDate"`
}

// Contains reports whether date lies in the range. Inverted or empty ranges
// contain nothing.
func (r DateRange) Contains(date string) bool {
	if r.Start == "" || r.End == "" || r.Start > r.End {
		return false
	}
	return date >= r.Start && date <= r.End
}

// Overlaps reports whether the inclusive window start..end shares a date with
// the range.
func (r DateRange) Overlaps(start, end string) bool {
	if r.Start == "" || r.End == "" || r.Start > r.End || start > end {
		return false
	}
	return start <= r.End && end >= r.Start
}

func (r DateRange) String() string {
	return r.Start + " to " + r.End
}

// Input bundles everything a report is computed from.
type Input struct {
	Title        string
	Range        DateRange
	Plans        []models.DailyPlan
	CoachingLogs []models.CoachingLog
	Tests        []models.TestResult
	WellnessLogs []models.WellnessLog
	Doubts       []models.Doubt
	Lectures     []models.Lecture
	Syllabus     models.Syllabus
	Teachers     []string

	// UpcomingTests name coaching tests that have no result yet.
	UpcomingTests []models.UpcomingTest
	Challenges    []models.StudyChallenge

	// Keys resolves chapter and teacher identity. Nil means exact names.
	Keys Keyer
}

// Filtered holds the collections of an Input restricted to its range.
// AllLectures and UpcomingTests stay unfiltered for schedule link lookups.
// Challenges keeps those whose window overlaps the range.
type Filtered struct {
	Range         DateRange
	Plans         []models.DailyPlan
	CoachingLogs  []models.CoachingLog
	Tests         []models.TestResult
	WellnessLogs  []models.WellnessLog
	Doubts        []models.Doubt
	Lectures      []models.Lecture
	AllLectures   []models.Lecture
	UpcomingTests []models.UpcomingTest
	Challenges    []models.StudyChallenge
}

// Select keeps the records dated within in.Range, preserving order.
func Select(in Input) Filtered {
	r := in.Range
	f := Filtered{
		Range:         r,
		Plans:         filter(in.Plans, r, func(p models.DailyPlan) string { return p.Date }),
		CoachingLogs:  filter(in.CoachingLogs, r, func(l models.CoachingLog) string { return l.Date }),
		Tests:         filter(in.Tests, r, func(t models.TestResult) string { return t.Date }),
		WellnessLogs:  filter(in.WellnessLogs, r, func(w models.WellnessLog) string { return w.Date }),
		Doubts:        filter(in.Doubts, r, func(d models.Doubt) string { return d.Date }),
		Lectures:      filter(in.Lectures, r, models.Lecture.AddedOn),
		AllLectures:   in.Lectures,
		UpcomingTests: in.UpcomingTests,
		Challenges:    []models.StudyChallenge{},
	}
	for _, c := range in.Challenges {
		if start, end := c.Window(); r.Overlaps(start, end) {
			f.Challenges = append(f.Challenges, c)
		}
	}
	return f
}

func filter[T any](items []T, r DateRange, date func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if r.Contains(date(item)) {
			out = append(out, item)
		}
	}
	return out
}
