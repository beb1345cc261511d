package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"prep-meter/internal/database"
	"prep-meter/internal/models"
	"prep-meter/internal/report"
	"prep-meter/internal/utils"
)

type ReportService struct {
	repository *database.Repository
	title      string
	location   *time.Location
	logger     *zap.Logger

	mu      sync.Mutex
	lastKey uint64
	last    *report.ReportData
}

func NewReportService(repo *database.Repository, title string, loc *time.Location, logger *zap.Logger) *ReportService {
	return &ReportService{
		repository: repo,
		title:      title,
		location:   loc,
		logger:     logger,
	}
}

// Generate builds the snapshot for the inclusive range. An inverted range is
// not an error; it yields an empty snapshot. The result is shared with later
// callers asking for identical records and must not be modified.
func (rs *ReportService) Generate(ctx context.Context, start, end string) (*report.ReportData, error) {
	if _, err := utils.ParseDate(start); err != nil {
		return nil, err
	}
	if _, err := utils.ParseDate(end); err != nil {
		return nil, err
	}

	in, err := rs.load(ctx, start, end)
	if err != nil {
		return nil, err
	}

	key, err := inputKey(in)
	if err != nil {
		return nil, err
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.last != nil && rs.lastKey == key {
		rs.logger.Debug("report served from memo", zap.String("range", in.Range.String()))
		return rs.last, nil
	}

	began := time.Now()
	data := report.Build(in)
	rs.logger.Info("report built",
		zap.String("range", data.DateRange),
		zap.Int("days", len(data.DailyBreakdown)),
		zap.Duration("took", time.Since(began)))

	rs.last, rs.lastKey = data, key
	return data, nil
}

// Day builds the snapshot of a single date.
func (rs *ReportService) Day(ctx context.Context, date string) (*report.ReportData, error) {
	return rs.Generate(ctx, date, date)
}

// Today builds the snapshot of the current date in the report timezone.
func (rs *ReportService) Today(ctx context.Context) (*report.ReportData, error) {
	return rs.Day(ctx, utils.Today(rs.location))
}

// Weekly builds the snapshot of the ISO week containing now.
func (rs *ReportService) Weekly(ctx context.Context, now time.Time) (*report.ReportData, error) {
	start, end := utils.WeekBounds(now.In(rs.location))
	return rs.Generate(ctx, start, end)
}

func (rs *ReportService) load(ctx context.Context, start, end string) (report.Input, error) {
	in := report.Input{
		Title: rs.title,
		Range: report.DateRange{Start: start, End: end},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		in.Plans, err = rs.repository.GetPlansBetween(gctx, start, end)
		return err
	})
	g.Go(func() (err error) {
		in.CoachingLogs, err = rs.repository.GetCoachingLogsBetween(gctx, start, end)
		return err
	})
	g.Go(func() (err error) {
		in.Tests, err = rs.repository.GetTestsBetween(gctx, start, end)
		return err
	})
	g.Go(func() (err error) {
		in.WellnessLogs, err = rs.repository.GetWellnessBetween(gctx, start, end)
		return err
	})
	g.Go(func() (err error) {
		in.Doubts, err = rs.repository.GetDoubtsBetween(gctx, start, end)
		return err
	})
	g.Go(func() (err error) {
		in.Lectures, err = rs.repository.GetLectures(gctx)
		return err
	})
	g.Go(func() (err error) {
		in.Syllabus, err = rs.repository.GetSyllabus(gctx)
		return err
	})
	g.Go(func() (err error) {
		in.Teachers, err = rs.repository.GetTeachers(gctx)
		return err
	})
	g.Go(func() (err error) {
		in.UpcomingTests, err = rs.repository.GetUpcomingTests(gctx)
		return err
	})
	g.Go(func() (err error) {
		in.Challenges, err = rs.repository.GetChallengesBetween(gctx, start, end)
		return err
	})

	if err := g.Wait(); err != nil {
		return report.Input{}, fmt.Errorf("load records for %s to %s: %w", start, end, err)
	}
	return in, nil
}

// inputKey fingerprints everything a snapshot is computed from.
func inputKey(in report.Input) (uint64, error) {
	h := xxhash.New()
	payload := struct {
		Title         string
		Range         report.DateRange
		Plans         []models.DailyPlan
		CoachingLogs  []models.CoachingLog
		Tests         []models.TestResult
		WellnessLogs  []models.WellnessLog
		Doubts        []models.Doubt
		Lectures      []models.Lecture
		Syllabus      models.Syllabus
		Teachers      []string
		UpcomingTests []models.UpcomingTest
		Challenges    []models.StudyChallenge
	}{in.Title, in.Range, in.Plans, in.CoachingLogs, in.Tests, in.WellnessLogs, in.Doubts, in.Lectures, in.Syllabus, in.Teachers,
		in.UpcomingTests, in.Challenges}
	if err := json.NewEncoder(h).Encode(payload); err != nil {
		return 0, fmt.Errorf("fingerprint report input: %w", err)
	}
	return h.Sum64(), nil
}
