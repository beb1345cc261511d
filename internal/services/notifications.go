package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"prep-meter/internal/report"
	"prep-meter/internal/utils"
)

// NotificationSender delivers digests to the user.
type NotificationSender interface {
	SendMessage(text string) error
	SendReport(heading string, data *report.ReportData, insights []string) error
}

type NotificationService struct {
	sender   NotificationSender
	reports  *ReportService
	wellness *WellnessService
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

func NewNotificationService(sender NotificationSender, reports *ReportService, wellness *WellnessService, loc *time.Location, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		sender:   sender,
		reports:  reports,
		wellness: wellness,
		location: loc,
		logger:   logger,
		now:      time.Now,
	}
}

func (ns *NotificationService) today() string {
	return ns.now().In(ns.location).Format(utils.DateLayout)
}

// SendDailySummary sends the snapshot of the current date.
func (ns *NotificationService) SendDailySummary(ctx context.Context) error {
	today := ns.today()
	data, err := ns.reports.Day(ctx, today)
	if err != nil {
		return fmt.Errorf("daily summary: %w", err)
	}

	if len(data.DailyBreakdown) == 0 {
		return ns.send(fmt.Sprintf("📭 Nothing logged for %s yet. Tomorrow is a new day! 🌅", today))
	}
	heading := fmt.Sprintf("📊 <b>Daily summary %s</b>", today)
	if err := ns.sender.SendReport(heading, data, Insights(data)); err != nil {
		return fmt.Errorf("send daily summary: %w", err)
	}
	ns.logger.Info("daily summary sent", zap.String("date", today))
	return nil
}

// SendWeeklyReport sends the snapshot of the current ISO week.
func (ns *NotificationService) SendWeeklyReport(ctx context.Context) error {
	now := ns.now().In(ns.location)
	data, err := ns.reports.Weekly(ctx, now)
	if err != nil {
		return fmt.Errorf("weekly report: %w", err)
	}

	_, week := now.ISOWeek()
	heading := fmt.Sprintf("📈 <b>Week %d report</b>", week)
	if err := ns.sender.SendReport(heading, data, Insights(data)); err != nil {
		return fmt.Errorf("send weekly report: %w", err)
	}
	ns.logger.Info("weekly report sent", zap.Int("week", week))
	return nil
}

// SendWellnessReminder nudges the user unless today's wellness entry exists.
func (ns *NotificationService) SendWellnessReminder(ctx context.Context) error {
	today := ns.today()
	logged, err := ns.wellness.Logged(ctx, today)
	if err != nil {
		return fmt.Errorf("wellness reminder: %w", err)
	}
	if logged {
		ns.logger.Debug("wellness already logged", zap.String("date", today))
		return nil
	}
	return ns.send("📝 Don't forget to log how you feel today!\n" +
		"Use: /wellness mood=1-5 sleep=hours note=...")
}

func (ns *NotificationService) send(text string) error {
	if err := ns.sender.SendMessage(text); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
