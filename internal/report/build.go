package report

import "prep-meter/internal/models"

// DefaultTitle is used when Input.Title is empty.
const DefaultTitle = "Study Report"

// Build computes the report snapshot for in. It never fails: missing records
// show up as nulls and empty collections.
func Build(in Input) *ReportData {
	keys := keysOf(in)
	f := Select(in)
	days := buildDays(f)
	lectures := lecturesHeld(f.CoachingLogs)

	chapters := chapterMetrics(days, f.Tests, in.Syllabus, keys)
	teachers := teacherMetrics(lectures, f.Doubts, in.Teachers, keys)
	heatmap, labels := hourlyHeatmap(days)
	testTrend, negatives := testTrends(f.Tests)

	title := in.Title
	if title == "" {
		title = DefaultTitle
	}

	data := &ReportData{
		Title:     title,
		DateRange: f.Range.String(),

		DailyPerformanceTrend:    dailyPerformanceTrend(days),
		SubjectTimeDistribution:  subjectTimeDistribution(days),
		QuestionTypeDistribution: questionTypeDistribution(days),

		HourlyActivityHeatmap: heatmap,
		ActivityHeatmapLabels: labels,
		DailyHoursBreakdown:   dailyHoursBreakdown(days),

		TestPerformanceTrend:       testTrend,
		SubjectWiseTestPerformance: subjectWiseTestPerformance(f.Tests),
		NegativeMarksAnalysis:      negatives,
		WeakestChapters:            rankChapters(chapters, true),
		StrongestChapters:          rankChapters(chapters, false),

		SyllabusCoverageTrend:  syllabusCoverageTrend(days, in.Syllabus, keys),
		SyllabusProgress:       syllabusProgress(in.Syllabus),
		ChapterMetrics:         chapters,
		ChapterTimeMetrics:     chapterSeries(chapters, chapterHours),
		ChapterQuestionMetrics: chapterSeries(chapters, chapterQuestions),
		ChapterTestMetrics:     chapterSeries(chapters, chapterTestScore),

		TeacherMetrics:              teachers,
		HomeworkCompletionRate:      homeworkCompletionRate(lectures, f.Plans),
		WellnessTrend:               wellnessTrend(days),
		DoubtDistribution:           doubtDistribution(f.Doubts),
		TeacherLectureCount:         teacherLectureCount(teachers),
		TeacherRatingDistribution:   teacherRatingDistribution(teachers),
		CoachingSubjectDistribution: coachingSubjectDistribution(lectures),
		LectureCategoryDistribution: lectureCategoryDistribution(f.Lectures),
		MotivationVsCoaching:        motivationVsCoaching(days),

		ChallengeProgress: challengeProgress(f.Challenges, days, f.Range),

		DailyBreakdown: make([]DailyBreakdownItem, len(days)),
		TestsTaken:     append([]models.TestResult{}, f.Tests...),
	}
	for i, d := range days {
		data.DailyBreakdown[i] = d.item
	}
	assignKPIs(data, days, f)
	assignStreaks(data, days, f)
	return data
}

// assignKPIs fills the headline numbers. Each stays nil when the records it
// is computed from are absent from the range.
func assignKPIs(data *ReportData, days []day, f Filtered) {
	var study, coaching float64
	questions, questionLogs := 0, 0
	var efficiencies []float64
	for _, d := range days {
		study += d.item.StudyHours
		coaching += d.item.CoachingHours
		for _, q := range d.item.QuestionsSolved {
			questions += q.Count
			questionLogs++
		}
		if d.item.Efficiency != nil {
			efficiencies = append(efficiencies, *d.item.Efficiency)
		}
	}

	if len(f.Plans) > 0 {
		data.TotalStudyHours = ptr(study)
	}
	if len(f.CoachingLogs) > 0 {
		data.TotalCoachingHours = ptr(coaching)
	}
	if questionLogs > 0 {
		data.TotalQuestionsSolved = ptr(questions)
	}
	if len(f.Tests) > 0 {
		data.TestsTakenCount = ptr(len(f.Tests))
	}
	data.AvgEfficiency = mean(efficiencies)

	moods := make([]float64, len(f.WellnessLogs))
	sleeps := make([]float64, len(f.WellnessLogs))
	for i, w := range f.WellnessLogs {
		moods[i] = float64(w.Mood)
		sleeps[i] = w.SleepHours
	}
	data.AvgMood = mean(moods)
	data.AvgSleep = mean(sleeps)
}
