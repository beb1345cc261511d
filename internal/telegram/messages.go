package telegram

import (
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"unicode/utf8"

	"prep-meter/internal/models"
	"prep-meter/internal/report"
	"prep-meter/internal/utils"
)

// maxMessageRunes is Telegram's limit for one text message.
const maxMessageRunes = 4096

const helpMessage = `📚 <b>Commands</b>

<b>Reports:</b>
/today - today's study and coaching
/day YYYY-MM-DD - one day in detail
/week - this week's report with insights
/report FROM TO - report for any date range
Example: /report 2024-01-01 2024-01-31

<b>Coaching and chapters (last 30 days):</b>
/teachers - classes, ratings and doubts per teacher
/chapters - weakest and strongest chapters

<b>Wellness:</b>
/wellness mood=[1-5] sleep=[hours] note=[text]
Example: /wellness mood=4 sleep=7.5 note=Focused day`

func hoursOrDash(h *float64) string {
	if h == nil {
		return "-"
	}
	return utils.FormatHours(*h)
}

func percentOrDash(fraction *float64, scale float64) string {
	if fraction == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", *fraction*scale)
}

func numberOrDash(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

// FormatReport renders the headline numbers of a snapshot.
func FormatReport(heading string, data *report.ReportData, insights []string) string {
	var b strings.Builder
	b.WriteString(heading + "\n")
	fmt.Fprintf(&b, "📅 %s\n\n", html.EscapeString(data.DateRange))

	if len(data.DailyBreakdown) == 0 {
		b.WriteString("📭 No records in this period.\n")
	} else {
		fmt.Fprintf(&b, "⏱ Self study: %s\n", hoursOrDash(data.TotalStudyHours))
		fmt.Fprintf(&b, "🏫 Coaching: %s\n", hoursOrDash(data.TotalCoachingHours))
		fmt.Fprintf(&b, "⚡ Efficiency: %s\n", percentOrDash(data.AvgEfficiency, 100))
		fmt.Fprintf(&b, "✍️ Questions: %s\n", intOrDash(data.TotalQuestionsSolved))
		fmt.Fprintf(&b, "📝 Tests: %s\n", intOrDash(data.TestsTakenCount))
		fmt.Fprintf(&b, "😊 Mood: %s  😴 Sleep: %s\n",
			numberOrDash(data.AvgMood, "%.1f/5"), numberOrDash(data.AvgSleep, "%.1f h"))
		if data.LongestStudyStreak != nil {
			fmt.Fprintf(&b, "🔥 Streak: %s days, longest %d\n", intOrDash(data.CurrentStudyStreak), *data.LongestStudyStreak)
		}
		if data.PersonalBestStudyHours != nil && data.PersonalBestDate != nil {
			fmt.Fprintf(&b, "🏅 Best day: %s on %s\n", utils.FormatHours(*data.PersonalBestStudyHours), *data.PersonalBestDate)
		}
	}

	if len(data.SubjectTimeDistribution) > 0 {
		b.WriteString("\n<b>Study by subject:</b>\n")
		for _, s := range data.SubjectTimeDistribution {
			fmt.Fprintf(&b, "%s %s: %s\n",
				utils.SubjectEmoji(models.Subject(s.Name)), html.EscapeString(s.Name), utils.FormatHours(s.Value))
		}
	}

	if len(data.WeakestChapters) > 0 {
		b.WriteString("\n<b>Weakest chapters:</b>\n")
		for _, c := range data.WeakestChapters[:min(3, len(data.WeakestChapters))] {
			fmt.Fprintf(&b, "%s %s: %.0f%%\n", utils.SubjectEmoji(c.Subject), html.EscapeString(c.Name), c.AvgScore)
		}
	}

	if len(data.ChallengeProgress) > 0 {
		b.WriteString("\n<b>🎯 Challenges:</b>\n")
		for _, c := range data.ChallengeProgress {
			title := c.Title
			if title == "" {
				title = string(c.Type)
			}
			fmt.Fprintf(&b, "%s %s: %s/%s %s (%.0f%%)\n", challengeMark(c.Status), html.EscapeString(title),
				strconv.FormatFloat(c.Current, 'f', -1, 64), strconv.FormatFloat(c.Goal, 'f', -1, 64),
				html.EscapeString(c.Unit), c.Percent)
		}
	}

	if len(insights) > 0 {
		b.WriteString("\n<b>💡 Insights:</b>\n")
		b.WriteString(strings.Join(insights, "\n"))
		b.WriteString("\n")
	}

	return fitMessage(b.String())
}

func challengeMark(status models.ChallengeStatus) string {
	switch status {
	case models.ChallengeCompleted:
		return "✅"
	case models.ChallengeFailed:
		return "❌"
	default:
		return "⏳"
	}
}

func slotMark(status models.Status) string {
	switch status {
	case models.StatusCompleted:
		return "✅"
	case models.StatusIncomplete:
		return "❌"
	default:
		return "⬜"
	}
}

// FormatDay renders one day's rollup with its schedule.
func FormatDay(item report.DailyBreakdownItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 <b>%s</b>\n\n", item.Date)
	fmt.Fprintf(&b, "⏱ Study: %s  🏫 Coaching: %s  ☕ Breaks: %s\n",
		utils.FormatHours(item.StudyHours), utils.FormatHours(item.CoachingHours), utils.FormatHours(item.BreakHours))
	fmt.Fprintf(&b, "⚡ Efficiency: %s\n", percentOrDash(item.Efficiency, 100))

	if item.Wellness != nil {
		fmt.Fprintf(&b, "%s Mood %d/5, sleep %.1f h\n",
			utils.MoodEmoji(item.Wellness.Mood), item.Wellness.Mood, item.Wellness.SleepHours)
	}

	if len(item.TopicsStudied) > 0 {
		escaped := make([]string, len(item.TopicsStudied))
		for i, t := range item.TopicsStudied {
			escaped[i] = html.EscapeString(t)
		}
		fmt.Fprintf(&b, "📖 Topics: %s\n", strings.Join(escaped, ", "))
	}

	if len(item.Schedule) > 0 {
		b.WriteString("\n<b>Schedule:</b>\n")
		for _, s := range item.Schedule {
			fmt.Fprintf(&b, "%s %s-%s %s\n", slotMark(s.Status), s.StartTime, s.EndTime, html.EscapeString(s.ActivityName))
		}
	}

	questions := 0
	for _, q := range item.QuestionsSolved {
		questions += q.Count
	}
	if questions > 0 {
		fmt.Fprintf(&b, "\n✍️ Questions solved: %d\n", questions)
	}

	return fitMessage(b.String())
}

// FormatTeachers lists teachers busiest first.
func FormatTeachers(data *report.ReportData) string {
	if len(data.TeacherLectureCount) == 0 {
		return "📭 No coaching lectures logged in " + html.EscapeString(data.DateRange)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏫 <b>Teachers</b>\n📅 %s\n\n", html.EscapeString(data.DateRange))
	for _, lc := range data.TeacherLectureCount {
		m := data.TeacherMetrics[lc.Name]
		if m == nil {
			continue
		}
		fmt.Fprintf(&b, "<b>%s</b>\n   %d classes, %s, ⭐ %s, %d doubts cleared\n",
			html.EscapeString(lc.Name), m.ClassCount, utils.FormatHours(m.TotalHours),
			numberOrDash(m.AvgRating, "%.1f"), m.DoubtsCleared)
	}
	if data.HomeworkCompletionRate != nil {
		fmt.Fprintf(&b, "\n📝 Homework followed up: %.0f%%\n", *data.HomeworkCompletionRate)
	}
	return fitMessage(b.String())
}

// FormatChapters lists the weakest and strongest tested chapters.
func FormatChapters(data *report.ReportData) string {
	if len(data.WeakestChapters) == 0 {
		return "📭 No scored tests with a chapter syllabus in " + html.EscapeString(data.DateRange)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📚 <b>Chapters by test score</b>\n📅 %s\n", html.EscapeString(data.DateRange))
	write := func(title string, chapters []report.RankedChapter) {
		fmt.Fprintf(&b, "\n<b>%s</b>\n", title)
		for i, c := range chapters {
			fmt.Fprintf(&b, "%d. %s %s: %.0f%%\n", i+1, utils.SubjectEmoji(c.Subject), html.EscapeString(c.Name), c.AvgScore)
		}
	}
	write("⚠️ Weakest", data.WeakestChapters)
	write("🏆 Strongest", data.StrongestChapters)
	return fitMessage(b.String())
}

// ParseWellness reads "mood=N sleep=H note=free text" arguments. The note
// runs to the end of the line.
func ParseWellness(args, date string) (models.WellnessLog, error) {
	entry := models.WellnessLog{Date: date}

	if before, note, found := strings.Cut(args, "note="); found {
		entry.Journal = strings.TrimSpace(note)
		args = before
	}

	var hasMood, hasSleep bool
	for _, pair := range strings.Fields(args) {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "mood":
			mood, err := strconv.Atoi(value)
			if err != nil || mood < 1 || mood > 5 {
				return entry, errors.New("mood must be a whole number from 1 to 5")
			}
			entry.Mood, hasMood = mood, true
		case "sleep":
			sleep, err := strconv.ParseFloat(value, 64)
			if err != nil || sleep < 0 || sleep > 24 {
				return entry, errors.New("sleep must be hours between 0 and 24")
			}
			entry.SleepHours, hasSleep = sleep, true
		}
	}

	if !hasMood || !hasSleep {
		return entry, errors.New("both mood and sleep are required")
	}
	return entry, nil
}

func fitMessage(text string) string {
	if utf8.RuneCountInString(text) <= maxMessageRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxMessageRunes-2]) + "\n…"
}
