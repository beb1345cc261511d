package report

import (
	"fmt"
	"slices"
	"strings"

	"prep-meter/internal/models"
)

// CustomActivityPrefix marks a slot link that names a free-form activity
// rather than pointing at a record.
const CustomActivityPrefix = "activity:"

const freeSlotName = "Free"

// studySpan is a completed self-study slot.
type studySpan struct {
	interval
	subject models.Subject
	chapter string
	kind    ActivityType
}

// day is the internal rollup: the public item plus what the aggregators
// need that the item does not expose.
type day struct {
	item        DailyBreakdownItem
	plan        *models.DailyPlan
	coaching    *models.CoachingLog
	study       []studySpan
	coachSpans  []interval
	hasSchedule bool
}

// BuildRollups produces one DailyBreakdownItem per distinct date present in
// the filtered collections, in date order.
func BuildRollups(f Filtered) []DailyBreakdownItem {
	days := buildDays(f)
	items := make([]DailyBreakdownItem, len(days))
	for i, d := range days {
		items[i] = d.item
	}
	return items
}

func buildDays(f Filtered) []day {
	plans := indexByDate(f.Plans, func(p models.DailyPlan) string { return p.Date })
	logs := indexByDate(f.CoachingLogs, func(l models.CoachingLog) string { return l.Date })
	wellness := indexByDate(f.WellnessLogs, func(w models.WellnessLog) string { return w.Date })

	lectures := make(map[string]models.Lecture, len(f.AllLectures))
	for _, l := range f.AllLectures {
		lectures[l.ID] = l
	}
	tests := make(map[string]models.TestResult, len(f.Tests))
	for _, t := range f.Tests {
		tests[t.ID] = t
	}
	upcoming := make(map[string]models.UpcomingTest, len(f.UpcomingTests))
	for _, t := range f.UpcomingTests {
		upcoming[t.ID] = t
	}

	dates := distinctDates(f)
	days := make([]day, 0, len(dates))
	for _, date := range dates {
		d := day{plan: plans[date], coaching: logs[date]}
		r := newResolver(d.plan, d.coaching, lectures, tests, upcoming)
		d.build(date, r, wellness[date])
		days = append(days, d)
	}
	return days
}

func (d *day) build(date string, r resolver, wellness *models.WellnessLog) {
	item := DailyBreakdownItem{
		Date:               date,
		TopicsStudied:      []string{},
		Schedule:           []ReportHourlySlot{},
		Wellness:           wellness,
		QuestionsSolved:    []models.QuestionsSolvedLog{},
		CoachingActivities: []models.CoachingActivity{},
	}

	var tl timeline
	if d.plan != nil {
		tl = newTimeline(d.plan.WakeUpTime, d.plan.SleepTime)
		item.QuestionsSolved = append(item.QuestionsSolved, d.plan.QuestionsSolved...)
	}

	studyMinutes := 0
	if d.plan != nil {
		seen := make(map[string]bool)
		for _, slot := range d.plan.Schedule {
			d.hasSchedule = true
			res := r.resolve(slot)
			item.Schedule = append(item.Schedule, res.slot)

			if slot.Status != models.StatusCompleted || !res.isStudy() {
				continue
			}
			iv, ok := tl.place(slot.StartTime, slot.EndTime)
			if !ok {
				continue
			}
			d.study = append(d.study, studySpan{interval: iv, subject: res.subject, chapter: res.chapter, kind: res.slot.ActivityType})
			studyMinutes += iv.minutes()
			if res.chapter != "" && !seen[res.chapter] {
				seen[res.chapter] = true
				item.TopicsStudied = append(item.TopicsStudied, res.chapter)
			}
		}
	}

	coachingMinutes := 0
	if d.coaching != nil {
		item.CoachingActivities = append(item.CoachingActivities, d.coaching.Activities...)
		for _, a := range d.coaching.Activities {
			d.hasSchedule = true
			iv, ok := tl.place(a.Span())
			if !ok {
				continue
			}
			d.coachSpans = append(d.coachSpans, iv)
			coachingMinutes += iv.minutes()
		}
	}

	breakMinutes := 0
	if tl.hasWin {
		busy := make([]interval, 0, len(d.study)+len(d.coachSpans))
		for _, s := range d.study {
			busy = append(busy, s.interval)
		}
		busy = append(busy, d.coachSpans...)
		breakMinutes = tl.window.minutes() - coveredMinutes(busy, tl.window)
	}

	item.StudyHours = toHours(studyMinutes)
	item.CoachingHours = toHours(coachingMinutes)
	item.BreakHours = toHours(breakMinutes)
	if denom := studyMinutes + breakMinutes; denom > 0 {
		item.Efficiency = ptr(float64(studyMinutes) / float64(denom))
	}
	d.item = item
}

type resolved struct {
	slot    ReportHourlySlot
	subject models.Subject
	chapter string
}

func (r resolved) isStudy() bool {
	switch r.slot.ActivityType {
	case ActivityTopic, ActivityTask, ActivityCustom, ActivityLecture:
		return true
	case ActivityCoaching, ActivityFree:
		return false
	}
	return false
}

// resolver looks up the record a schedule slot links to.
type resolver struct {
	topics   map[string]models.PlannedTopic
	tasks    map[string]models.DailyPlanTask
	coaching map[string]models.CoachingActivity
	lectures map[string]models.Lecture
	tests    map[string]models.TestResult
	upcoming map[string]models.UpcomingTest
}

func newResolver(plan *models.DailyPlan, log *models.CoachingLog, lectures map[string]models.Lecture,
	tests map[string]models.TestResult, upcoming map[string]models.UpcomingTest) resolver {
	r := resolver{
		topics:   make(map[string]models.PlannedTopic),
		tasks:    make(map[string]models.DailyPlanTask),
		coaching: make(map[string]models.CoachingActivity),
		lectures: lectures,
		tests:    tests,
		upcoming: upcoming,
	}
	if plan != nil {
		for _, t := range plan.SubjectPlans.All() {
			r.topics[t.ID] = t
		}
		for _, t := range plan.Tasks {
			r.tasks[t.ID] = t
		}
	}
	if log != nil {
		for _, a := range log.Activities {
			r.coaching[a.ActivityID()] = a
		}
	}
	return r
}

func (r resolver) resolve(slot models.HourlySlot) resolved {
	out := resolved{slot: ReportHourlySlot{HourlySlot: slot, ActivityName: freeSlotName, ActivityType: ActivityFree}}
	if slot.Subject != nil {
		out.subject = *slot.Subject
	}
	if slot.PlannedTopicID == nil || *slot.PlannedTopicID == "" {
		return out
	}
	link := *slot.PlannedTopicID

	if t, ok := r.topics[link]; ok {
		out.slot.ActivityType, out.slot.ActivityName = ActivityTopic, topicName(t)
		out.subject, out.chapter = t.Subject, t.ChapterName
		return out
	}
	if t, ok := r.tasks[link]; ok {
		out.slot.ActivityType, out.slot.ActivityName = ActivityTask, t.Text
		return out
	}
	if l, ok := r.lectures[link]; ok {
		out.slot.ActivityType, out.slot.ActivityName = ActivityLecture, l.Title
		out.subject, out.chapter = l.Subject, l.Chapter
		return out
	}
	if a, ok := r.coaching[link]; ok {
		out.slot.ActivityType, out.slot.ActivityName = ActivityCoaching, r.coachingName(a)
		return out
	}
	if label, ok := strings.CutPrefix(link, CustomActivityPrefix); ok && label != "" {
		out.slot.ActivityType, out.slot.ActivityName = ActivityCustom, label
	}
	return out
}

func topicName(t models.PlannedTopic) string {
	if t.IsFullChapter || len(t.SubtopicNames) == 0 {
		return t.ChapterName
	}
	return fmt.Sprintf("%s: %s", t.ChapterName, strings.Join(t.SubtopicNames, ", "))
}

func (r resolver) coachingName(a models.CoachingActivity) string {
	switch act := a.(type) {
	case models.LectureActivity:
		if act.Chapter == "" {
			return fmt.Sprintf("%s lecture (%s)", act.Subject, act.Teacher)
		}
		return fmt.Sprintf("%s (%s)", act.Chapter, act.Teacher)
	case models.TestActivity:
		if act.TestResultID != nil {
			if t, ok := r.tests[*act.TestResultID]; ok {
				return t.Name
			}
		}
		if act.UpcomingTestID != nil {
			if t, ok := r.upcoming[*act.UpcomingTestID]; ok {
				return t.Name
			}
		}
		if act.TestName == "" {
			return "Coaching test"
		}
		return act.TestName
	case models.OtherActivity:
		return act.Description
	}
	return "Coaching"
}

func distinctDates(f Filtered) []string {
	set := make(map[string]struct{})
	for _, p := range f.Plans {
		set[p.Date] = struct{}{}
	}
	for _, l := range f.CoachingLogs {
		set[l.Date] = struct{}{}
	}
	for _, w := range f.WellnessLogs {
		set[w.Date] = struct{}{}
	}
	for _, t := range f.Tests {
		set[t.Date] = struct{}{}
	}
	for _, d := range f.Doubts {
		set[d.Date] = struct{}{}
	}

	dates := make([]string, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	slices.Sort(dates)
	return dates
}

// indexByDate keeps the first record per date.
func indexByDate[T any](items []T, date func(T) string) map[string]*T {
	idx := make(map[string]*T, len(items))
	for i := range items {
		if _, dup := idx[date(items[i])]; !dup {
			idx[date(items[i])] = &items[i]
		}
	}
	return idx
}
