package services

import (
	"time"

	"go.uber.org/zap"

	"prep-meter/internal/database"
)

type ServiceManager struct {
	Notification *NotificationService
	Report       *ReportService
	Wellness     *WellnessService
	Import       *ImportService
	repository   *database.Repository
	location     *time.Location
	logger       *zap.Logger
}

func NewServiceManager(db *database.Database, title string, loc *time.Location, logger *zap.Logger) *ServiceManager {
	repo := database.NewRepository(db)

	return &ServiceManager{
		Notification: nil,
		Report:       NewReportService(repo, title, loc, logger.Named("report")),
		Wellness:     NewWellnessService(repo, logger.Named("wellness")),
		Import:       NewImportService(repo, logger.Named("import")),
		repository:   repo,
		location:     loc,
		logger:       logger,
	}
}

func (sm *ServiceManager) Repository() *database.Repository {
	return sm.repository
}

func (sm *ServiceManager) SetNotificationSender(sender NotificationSender) {
	sm.Notification = NewNotificationService(sender, sm.Report, sm.Wellness, sm.location, sm.logger.Named("notify"))
}
