package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"prep-meter/internal/config"
	"prep-meter/internal/database"
	"prep-meter/internal/services"
	"prep-meter/internal/telegram"
)

// jobTimeout bounds one scheduled digest.
const jobTimeout = 2 * time.Minute

type Application struct {
	config     *config.Config
	db         *database.Database
	bot        *telegram.Bot
	services   *services.ServiceManager
	cron       *cron.Cron
	logger     *zap.Logger
	cancelFunc context.CancelFunc
	ctx        context.Context
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Application, error) {
	db, err := database.New(ctx, cfg.Database.Path, logger.Named("database"))
	if err != nil {
		return nil, err
	}

	loc := cfg.Location()
	serviceManager := services.NewServiceManager(db, cfg.Report.Title, loc, logger)
	bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.ChatID, serviceManager, loc, logger.Named("telegram"))
	if err != nil {
		db.Close()
		return nil, err
	}

	serviceManager.SetNotificationSender(bot)
	ctx, cancel := context.WithCancel(ctx)

	app := &Application{
		config:     cfg,
		db:         db,
		bot:        bot,
		services:   serviceManager,
		cron:       cron.New(cron.WithLocation(loc)),
		logger:     logger,
		cancelFunc: cancel,
		ctx:        ctx,
	}

	if err := app.setupCronJobs(); err != nil {
		cancel()
		db.Close()
		return nil, err
	}

	return app, nil
}

func (a *Application) Start() error {
	a.logger.Info("starting application")

	go a.bot.Start(a.ctx)
	a.cron.Start()

	if err := a.bot.SendMessage("🎯 <b>Prep Meter</b> is running. Use /help to see the commands."); err != nil {
		a.logger.Warn("welcome message failed", zap.Error(err))
	}

	a.logger.Info("application started",
		zap.String("bot", a.bot.GetUsername()),
		zap.String("timezone", a.config.Report.Timezone))
	return nil
}

func (a *Application) Stop() error {
	a.logger.Info("stopping application")

	a.cancelFunc()
	<-a.cron.Stop().Done()

	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	a.logger.Info("application stopped")
	return nil
}

func (a *Application) setupCronJobs() error {
	jobs := []struct {
		name string
		spec string
		run  func(context.Context) error
	}{
		{"daily summary", a.config.Report.DailySummary, a.services.Notification.SendDailySummary},
		{"weekly report", a.config.Report.WeeklyReport, a.services.Notification.SendWeeklyReport},
		{"wellness reminder", a.config.Report.WellnessReminder, a.services.Notification.SendWellnessReminder},
	}

	for _, job := range jobs {
		_, err := a.cron.AddFunc(job.spec, func() {
			ctx, cancel := context.WithTimeout(a.ctx, jobTimeout)
			defer cancel()
			if err := job.run(ctx); err != nil {
				a.logger.Error("scheduled job failed", zap.String("job", job.name), zap.Error(err))
			}
		})
		if err != nil {
			return fmt.Errorf("schedule %s %q: %w", job.name, job.spec, err)
		}
		a.logger.Debug("job scheduled", zap.String("job", job.name), zap.String("spec", job.spec))
	}
	return nil
}
