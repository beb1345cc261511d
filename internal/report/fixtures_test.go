package report

import "prep-meter/internal/models"

func strPtr(s string) *string { return &s }

func subjectPtr(s models.Subject) *models.Subject { return &s }

func slot(id, start, end, link string, status models.Status) models.HourlySlot {
	s := models.HourlySlot{ID: id, StartTime: start, EndTime: end, Status: status}
	if link != "" {
		s.PlannedTopicID = strPtr(link)
	}
	return s
}

func topic(id string, subject models.Subject, chapter string) models.PlannedTopic {
	return models.PlannedTopic{ID: id, Subject: subject, ChapterName: chapter, IsFullChapter: true, Status: models.StatusCompleted}
}

func plan(date, wake, sleep string, topics []models.PlannedTopic, slots ...models.HourlySlot) models.DailyPlan {
	p := models.DailyPlan{Date: date, WakeUpTime: wake, SleepTime: sleep, Schedule: slots}
	for _, t := range topics {
		switch t.Subject {
		case models.Physics:
			p.SubjectPlans.Physics = append(p.SubjectPlans.Physics, t)
		case models.Chemistry:
			p.SubjectPlans.Chemistry = append(p.SubjectPlans.Chemistry, t)
		case models.Math:
			p.SubjectPlans.Math = append(p.SubjectPlans.Math, t)
		}
	}
	return p
}

func lecture(id, teacher string, subject models.Subject, chapter, start, end string, rating int) models.LectureActivity {
	return models.LectureActivity{
		ID:        id,
		StartTime: start,
		EndTime:   end,
		Subject:   subject,
		Teacher:   teacher,
		Chapter:   chapter,
		Rating:    rating,
	}
}

func coachingLog(date string, motivation int, activities ...models.CoachingActivity) models.CoachingLog {
	return models.CoachingLog{Date: date, Motivation: motivation, Activities: activities}
}

func testResult(id, date string, scored, total float64, chapters ...string) models.TestResult {
	t := models.TestResult{ID: id, Name: "Test " + id, Date: date, TotalMarks: total}
	t.Marks.Physics = scored
	for _, ch := range chapters {
		t.Syllabus = append(t.Syllabus, models.TestSyllabusItem{Subject: string(models.Physics), Chapter: ch})
	}
	return t
}

func singleDay(date string) DateRange { return DateRange{Start: date, End: date} }
