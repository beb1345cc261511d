package report

import (
	"time"

	"prep-meter/internal/models"
)

// assignStreaks fills the streak and personal best KPIs. A study day is a
// rollup with study time; a date missing from the rollups breaks a streak.
// All four stay nil when no plan falls in range.
func assignStreaks(data *ReportData, days []day, f Filtered) {
	if len(f.Plans) == 0 {
		return
	}

	longest, run := 0, 0
	var prev time.Time
	var bestDay *day
	for i := range days {
		d := &days[i]
		if d.item.StudyHours <= 0 {
			run = 0
			continue
		}
		date, err := time.Parse(time.DateOnly, d.item.Date)
		if err != nil {
			run = 0
			continue
		}
		if run > 0 && date.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		prev = date
		longest = max(longest, run)

		if bestDay == nil || d.item.StudyHours > bestDay.item.StudyHours {
			bestDay = d
		}
	}

	current := 0
	if run > 0 && prev.Format(time.DateOnly) == f.Range.End {
		current = run
	}
	data.LongestStudyStreak = ptr(longest)
	data.CurrentStudyStreak = ptr(current)
	if bestDay != nil {
		data.PersonalBestStudyHours = ptr(bestDay.item.StudyHours)
		data.PersonalBestDate = ptr(bestDay.item.Date)
	}
}

// challengeProgress measures each challenge over the rollups inside both its
// window and the range. A challenge fails only when the range covers its
// whole window without reaching the goal.
func challengeProgress(challenges []models.StudyChallenge, days []day, r DateRange) []ChallengeProgress {
	out := make([]ChallengeProgress, 0, len(challenges))
	for _, c := range challenges {
		start, end := c.Window()
		current := 0.0
		for _, d := range days {
			if d.item.Date < start || d.item.Date > end {
				continue
			}
			current += challengeMeasure(c.Type, d)
		}

		p := ChallengeProgress{
			ID:        c.ID,
			Title:     c.Title,
			Type:      c.Type,
			Unit:      c.Unit,
			Goal:      c.Goal,
			Current:   current,
			StartDate: start,
			EndDate:   end,
			Status:    models.ChallengeActive,
			Partial:   start < r.Start || end > r.End,
		}
		if c.Goal > 0 {
			p.Percent = min(100, current/c.Goal*100)
		}
		switch {
		case current >= c.Goal:
			p.Status = models.ChallengeCompleted
		case !p.Partial:
			p.Status = models.ChallengeFailed
		}
		out = append(out, p)
	}
	return out
}

func challengeMeasure(kind models.ChallengeType, d day) float64 {
	switch kind {
	case models.ChallengeStudyHours:
		return d.item.StudyHours
	case models.ChallengeQuestionsSolved:
		n := 0
		for _, q := range d.item.QuestionsSolved {
			n += q.Count
		}
		return float64(n)
	case models.ChallengeCompletedTopics:
		if d.plan == nil {
			return 0
		}
		n := 0
		for _, t := range d.plan.SubjectPlans.All() {
			if t.Status == models.StatusCompleted {
				n++
			}
		}
		return float64(n)
	}
	return 0
}
