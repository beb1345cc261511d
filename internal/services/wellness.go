package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"prep-meter/internal/database"
	"prep-meter/internal/models"
)

var ErrInvalidWellness = errors.New("invalid wellness log")

type WellnessService struct {
	repository *database.Repository
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewWellnessService(repo *database.Repository, logger *zap.Logger) *WellnessService {
	return &WellnessService{
		repository: repo,
		validate:   newValidator(),
		logger:     logger,
	}
}

// Log records the day's mood (1-5) and sleep hours, replacing any earlier
// entry for the same date.
func (ws *WellnessService) Log(ctx context.Context, entry models.WellnessLog) error {
	if err := ws.validate.Struct(entry); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWellness, describeValidation(err))
	}
	if err := ws.repository.SaveWellness(ctx, entry); err != nil {
		return err
	}
	ws.logger.Info("wellness logged",
		zap.String("date", entry.Date),
		zap.Int("mood", entry.Mood),
		zap.Float64("sleep", entry.SleepHours))
	return nil
}

// Logged reports whether a wellness entry exists for date.
func (ws *WellnessService) Logged(ctx context.Context, date string) (bool, error) {
	_, err := ws.repository.GetWellness(ctx, date)
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}
