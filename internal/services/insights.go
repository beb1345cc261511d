package services

import (
	"fmt"

	"prep-meter/internal/models"
	"prep-meter/internal/report"
	"prep-meter/internal/utils"
)

const noInsights = "📊 Not enough data to analyse yet. Keep logging your days!"

// streakWorthMention is the shortest running streak the insights call out.
const streakWorthMention = 3

// Insights turns a snapshot into a few short remarks for the digests.
func Insights(data *report.ReportData) []string {
	var insights []string

	if data.AvgEfficiency != nil {
		eff := *data.AvgEfficiency * 100
		switch {
		case eff < 50:
			insights = append(insights, fmt.Sprintf("💪 Efficiency %.0f%%: breaks took more time than study", eff))
		case eff > 80:
			insights = append(insights, fmt.Sprintf("🎯 Efficiency %.0f%%: excellent focus, keep it up", eff))
		default:
			insights = append(insights, fmt.Sprintf("📈 Efficiency %.0f%%: good progress, room to grow", eff))
		}
	}

	if len(data.WeakestChapters) > 0 {
		weakest := data.WeakestChapters[0]
		if weakest.AvgScore < 40 {
			insights = append(insights, fmt.Sprintf(
				"⚠️ %s %s needs attention: %.0f%% average in tests",
				utils.SubjectEmoji(weakest.Subject), weakest.Name, weakest.AvgScore,
			))
		}
	}

	if data.AvgSleep != nil && *data.AvgSleep < 6 {
		insights = append(insights, fmt.Sprintf("😴 Average sleep is only %.1f h. Rest matters before exams", *data.AvgSleep))
	}

	if data.AvgMood != nil {
		switch {
		case *data.AvgMood < 2.5:
			insights = append(insights, "🔋 Mood has been low. Check your load and sleep")
		case *data.AvgMood >= 4:
			insights = append(insights, "⚡ Great mood this period!")
		}
	}

	for _, d := range data.DoubtDistribution {
		if d.Name == string(models.DoubtConfusing) && d.Value > 0 {
			insights = append(insights, fmt.Sprintf("❓ %.0f doubts are still confusing. Take them to your teachers", d.Value))
		}
	}

	if data.HomeworkCompletionRate != nil && *data.HomeworkCompletionRate < 50 {
		insights = append(insights, fmt.Sprintf("📝 Only %.0f%% of coaching homework was followed up", *data.HomeworkCompletionRate))
	}

	if data.CurrentStudyStreak != nil && *data.CurrentStudyStreak >= streakWorthMention {
		insights = append(insights, fmt.Sprintf("🔥 %d days of study in a row. Don't break the chain", *data.CurrentStudyStreak))
	}

	for _, c := range data.ChallengeProgress {
		if c.Status == models.ChallengeActive && c.Percent >= 75 {
			insights = append(insights, fmt.Sprintf("🎯 %s is %.0f%% done. Almost there", challengeName(c), c.Percent))
		}
	}

	if len(insights) == 0 {
		return []string{noInsights}
	}
	return insights
}

func challengeName(c report.ChallengeProgress) string {
	if c.Title != "" {
		return c.Title
	}
	return string(c.Type)
}
