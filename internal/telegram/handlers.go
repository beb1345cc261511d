package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"prep-meter/internal/report"
	"prep-meter/internal/services"
	"prep-meter/internal/utils"
)

// recentDays is the window /teachers and /chapters look back over.
const recentDays = 30

func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	b.reply("🎯 <b>Prep Meter</b>\n\nYour study tracker reports are ready.\n\n" + helpMessage)
}

func (b *Bot) handleHelp(ctx context.Context, msg *tgbotapi.Message) {
	b.reply(helpMessage)
}

func (b *Bot) today() time.Time {
	return time.Now().In(b.location)
}

func (b *Bot) failed(what string, err error) {
	b.logger.Error(what, zap.Error(err))
	b.reply("❌ " + what)
}

func (b *Bot) handleToday(ctx context.Context, msg *tgbotapi.Message) {
	date := b.today().Format(utils.DateLayout)
	b.sendDay(ctx, date)
}

func (b *Bot) handleDay(ctx context.Context, msg *tgbotapi.Message) {
	args := commandArgs(msg)
	if len(args) != 1 {
		b.reply("❌ Format: /day YYYY-MM-DD")
		return
	}
	if _, err := utils.ParseDate(args[0]); err != nil {
		b.reply("❌ " + html.EscapeString(err.Error()))
		return
	}
	b.sendDay(ctx, args[0])
}

func (b *Bot) sendDay(ctx context.Context, date string) {
	data, err := b.services.Report.Day(ctx, date)
	if err != nil {
		b.failed("Failed to build the day report", err)
		return
	}
	if len(data.DailyBreakdown) == 0 {
		b.reply(fmt.Sprintf("📭 Nothing logged for %s", date))
		return
	}
	b.reply(FormatDay(data.DailyBreakdown[0]))
}

func (b *Bot) handleWeek(ctx context.Context, msg *tgbotapi.Message) {
	now := b.today()
	data, err := b.services.Report.Weekly(ctx, now)
	if err != nil {
		b.failed("Failed to build the weekly report", err)
		return
	}
	_, week := now.ISOWeek()
	b.reply(FormatReport(fmt.Sprintf("📈 <b>Week %d report</b>", week), data, services.Insights(data)))
}

func (b *Bot) handleReport(ctx context.Context, msg *tgbotapi.Message) {
	args := commandArgs(msg)
	if len(args) != 2 {
		b.reply("❌ Format: /report FROM TO (dates as YYYY-MM-DD)")
		return
	}
	for _, arg := range args {
		if _, err := utils.ParseDate(arg); err != nil {
			b.reply("❌ " + html.EscapeString(err.Error()))
			return
		}
	}

	data, err := b.services.Report.Generate(ctx, args[0], args[1])
	if err != nil {
		b.failed("Failed to build the report", err)
		return
	}
	b.reply(FormatReport("📊 <b>"+html.EscapeString(data.Title)+"</b>", data, services.Insights(data)))
}

func (b *Bot) handleWellness(ctx context.Context, msg *tgbotapi.Message) {
	date := b.today().Format(utils.DateLayout)
	entry, err := ParseWellness(msg.CommandArguments(), date)
	if err != nil {
		b.reply("❌ " + err.Error() + "\n\nExample: /wellness mood=4 sleep=7.5 note=Focused day")
		return
	}

	if err := b.services.Wellness.Log(ctx, entry); err != nil {
		if errors.Is(err, services.ErrInvalidWellness) {
			b.reply("❌ " + html.EscapeString(err.Error()))
			return
		}
		b.failed("Failed to save wellness", err)
		return
	}

	text := fmt.Sprintf("✅ Wellness saved for %s\n\n%s Mood: %d/5\n😴 Sleep: %.1f h\n",
		date, utils.MoodEmoji(entry.Mood), entry.Mood, entry.SleepHours)
	if entry.Journal != "" {
		text += "📝 " + html.EscapeString(entry.Journal) + "\n"
	}
	b.reply(text)
}

func (b *Bot) recent(ctx context.Context) (*report.ReportData, error) {
	now := b.today()
	start := now.AddDate(0, 0, -(recentDays - 1)).Format(utils.DateLayout)
	return b.services.Report.Generate(ctx, start, now.Format(utils.DateLayout))
}

func (b *Bot) handleTeachers(ctx context.Context, msg *tgbotapi.Message) {
	data, err := b.recent(ctx)
	if err != nil {
		b.failed("Failed to build teacher metrics", err)
		return
	}
	b.reply(FormatTeachers(data))
}

func (b *Bot) handleChapters(ctx context.Context, msg *tgbotapi.Message) {
	data, err := b.recent(ctx)
	if err != nil {
		b.failed("Failed to build chapter metrics", err)
		return
	}
	b.reply(FormatChapters(data))
}
