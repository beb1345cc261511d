package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"prep-meter/internal/models"
)

type Repository struct {
	Db *Database
}

func NewRepository(db *Database) *Repository {
	return &Repository{Db: db}
}

// Counts is how many records of each kind fall in a date range.
type Counts struct {
	Plans        int
	CoachingLogs int
	Tests        int
	WellnessLogs int
	Doubts       int
}

func (c Counts) Total() int {
	return c.Plans + c.CoachingLogs + c.Tests + c.WellnessLogs + c.Doubts
}

func (r *Repository) upsertJSON(ctx context.Context, query string, v any, args ...any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	_, err = r.Db.db.ExecContext(ctx, query, append(args, string(payload))...)
	return err
}

// queryJSON decodes the single payload column of every row the query returns.
func queryJSON[T any](ctx context.Context, db *sql.DB, query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(payload), &v); err != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Daily plan repository methods
func (r *Repository) SavePlan(ctx context.Context, plan models.DailyPlan) error {
	err := r.upsertJSON(ctx, `
		INSERT INTO daily_plans (date, payload) VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
	`, plan, plan.Date)
	if err != nil {
		return fmt.Errorf("save plan %s: %w", plan.Date, err)
	}
	return nil
}

func (r *Repository) GetPlan(ctx context.Context, date string) (*models.DailyPlan, error) {
	plans, err := queryJSON[models.DailyPlan](ctx, r.Db.db,
		`SELECT payload FROM daily_plans WHERE date = ?`, date)
	if err != nil {
		return nil, fmt.Errorf("get plan %s: %w", date, err)
	}
	if len(plans) == 0 {
		return nil, ErrNotFound
	}
	return &plans[0], nil
}

func (r *Repository) GetPlansBetween(ctx context.Context, start, end string) ([]models.DailyPlan, error) {
	plans, err := queryJSON[models.DailyPlan](ctx, r.Db.db, `
		SELECT payload FROM daily_plans
		WHERE date BETWEEN ? AND ?
		ORDER BY date
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("get plans: %w", err)
	}
	return plans, nil
}

// Coaching log repository methods
func (r *Repository) SaveCoachingLog(ctx context.Context, log models.CoachingLog) error {
	err := r.upsertJSON(ctx, `
		INSERT INTO coaching_logs (date, payload) VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
	`, log, log.Date)
	if err != nil {
		return fmt.Errorf("save coaching log %s: %w", log.Date, err)
	}
	return nil
}

func (r *Repository) GetCoachingLogsBetween(ctx context.Context, start, end string) ([]models.CoachingLog, error) {
	logs, err := queryJSON[models.CoachingLog](ctx, r.Db.db, `
		SELECT payload FROM coaching_logs
		WHERE date BETWEEN ? AND ?
		ORDER BY date
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("get coaching logs: %w", err)
	}
	return logs, nil
}

// Test result repository methods
func (r *Repository) SaveTest(ctx context.Context, test models.TestResult) error {
	err := r.upsertJSON(ctx, `
		INSERT INTO tests (id, date, payload) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET date = excluded.date, payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
	`, test, test.ID, test.Date)
	if err != nil {
		return fmt.Errorf("save test %s: %w", test.ID, err)
	}
	return nil
}

func (r *Repository) GetTestsBetween(ctx context.Context, start, end string) ([]models.TestResult, error) {
	tests, err := queryJSON[models.TestResult](ctx, r.Db.db, `
		SELECT payload FROM tests
		WHERE date BETWEEN ? AND ?
		ORDER BY date, id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("get tests: %w", err)
	}
	return tests, nil
}

// Wellness repository methods
func (r *Repository) SaveWellness(ctx context.Context, w models.WellnessLog) error {
	_, err := r.Db.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO wellness_logs (date, mood, sleep_hours, journal)
		VALUES (?, ?, ?, ?)
	`, w.Date, w.Mood, w.SleepHours, w.Journal)
	if err != nil {
		return fmt.Errorf("save wellness %s: %w", w.Date, err)
	}
	return nil
}

func (r *Repository) GetWellness(ctx context.Context, date string) (*models.WellnessLog, error) {
	var w models.WellnessLog
	err := r.Db.db.QueryRowContext(ctx, `
		SELECT date, mood, sleep_hours, journal
		FROM wellness_logs
		WHERE date = ?
	`, date).Scan(&w.Date, &w.Mood, &w.SleepHours, &w.Journal)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get wellness %s: %w", date, err)
	}
	return &w, nil
}

func (r *Repository) GetWellnessBetween(ctx context.Context, start, end string) ([]models.WellnessLog, error) {
	rows, err := r.Db.db.QueryContext(ctx, `
		SELECT date, mood, sleep_hours, journal
		FROM wellness_logs
		WHERE date BETWEEN ? AND ?
		ORDER BY date
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("get wellness logs: %w", err)
	}
	defer rows.Close()

	var logs []models.WellnessLog
	for rows.Next() {
		var w models.WellnessLog
		if err := rows.Scan(&w.Date, &w.Mood, &w.SleepHours, &w.Journal); err != nil {
			return nil, err
		}
		logs = append(logs, w)
	}
	return logs, rows.Err()
}

// Doubt repository methods
func (r *Repository) SaveDoubt(ctx context.Context, d models.Doubt) error {
	_, err := r.Db.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO doubts (id, subject, topic, description, date, status, context)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.Subject, d.Topic, d.Description, d.Date, d.Status, d.Context)
	if err != nil {
		return fmt.Errorf("save doubt %s: %w", d.ID, err)
	}
	return nil
}

func (r *Repository) GetDoubtsBetween(ctx context.Context, start, end string) ([]models.Doubt, error) {
	rows, err := r.Db.db.QueryContext(ctx, `
		SELECT id, subject, topic, description, date, status, context
		FROM doubts
		WHERE date BETWEEN ? AND ?
		ORDER BY date, id
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("get doubts: %w", err)
	}
	defer rows.Close()

	var doubts []models.Doubt
	for rows.Next() {
		var d models.Doubt
		if err := rows.Scan(&d.ID, &d.Subject, &d.Topic, &d.Description, &d.Date, &d.Status, &d.Context); err != nil {
			return nil, err
		}
		doubts = append(doubts, d)
	}
	return doubts, rows.Err()
}

// Lecture library repository methods
func (r *Repository) SaveLecture(ctx context.Context, l models.Lecture) error {
	err := r.upsertJSON(ctx, `
		INSERT INTO lectures (id, date_added, payload) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET date_added = excluded.date_added, payload = excluded.payload
	`, l, l.ID, l.DateAdded)
	if err != nil {
		return fmt.Errorf("save lecture %s: %w", l.ID, err)
	}
	return nil
}

// GetLectures returns the whole library. Slots may link to lectures added
// on any date.
func (r *Repository) GetLectures(ctx context.Context) ([]models.Lecture, error) {
	lectures, err := queryJSON[models.Lecture](ctx, r.Db.db,
		`SELECT payload FROM lectures ORDER BY date_added, id`)
	if err != nil {
		return nil, fmt.Errorf("get lectures: %w", err)
	}
	return lectures, nil
}

func (r *Repository) SaveUpcomingTest(ctx context.Context, t models.UpcomingTest) error {
	err := r.upsertJSON(ctx, `
		INSERT INTO upcoming_tests (id, date, payload) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET date = excluded.date, payload = excluded.payload
	`, t, t.ID, t.Date)
	if err != nil {
		return fmt.Errorf("save upcoming test %s: %w", t.ID, err)
	}
	return nil
}

// GetUpcomingTests returns every scheduled test. Coaching activities dated
// anywhere may link to one.
func (r *Repository) GetUpcomingTests(ctx context.Context) ([]models.UpcomingTest, error) {
	tests, err := queryJSON[models.UpcomingTest](ctx, r.Db.db,
		`SELECT payload FROM upcoming_tests ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("get upcoming tests: %w", err)
	}
	return tests, nil
}

func (r *Repository) SaveChallenge(ctx context.Context, c models.StudyChallenge) error {
	start, end := c.Window()
	err := r.upsertJSON(ctx, `
		INSERT INTO challenges (id, start_date, end_date, payload) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET start_date = excluded.start_date, end_date = excluded.end_date, payload = excluded.payload
	`, c, c.ID, start, end)
	if err != nil {
		return fmt.Errorf("save challenge %s: %w", c.ID, err)
	}
	return nil
}

// GetChallengesBetween returns challenges whose window overlaps start..end.
func (r *Repository) GetChallengesBetween(ctx context.Context, start, end string) ([]models.StudyChallenge, error) {
	challenges, err := queryJSON[models.StudyChallenge](ctx, r.Db.db,
		`SELECT payload FROM challenges WHERE start_date <= ? AND end_date >= ? ORDER BY start_date, id`, end, start)
	if err != nil {
		return nil, fmt.Errorf("get challenges: %w", err)
	}
	return challenges, nil
}

// Teacher roster repository methods
func (r *Repository) AddTeacher(ctx context.Context, name string) error {
	_, err := r.Db.db.ExecContext(ctx, `INSERT OR IGNORE INTO teachers (name) VALUES (?)`, name)
	if err != nil {
		return fmt.Errorf("add teacher %q: %w", name, err)
	}
	return nil
}

func (r *Repository) GetTeachers(ctx context.Context) ([]string, error) {
	rows, err := r.Db.db.QueryContext(ctx, `SELECT name FROM teachers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("get teachers: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Syllabus repository methods
func (r *Repository) SaveSyllabus(ctx context.Context, s models.Syllabus) error {
	err := r.upsertJSON(ctx, `
		INSERT INTO syllabus (id, payload) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP
	`, s, 1)
	if err != nil {
		return fmt.Errorf("save syllabus: %w", err)
	}
	return nil
}

// GetSyllabus returns the empty tree when none has been stored.
func (r *Repository) GetSyllabus(ctx context.Context) (models.Syllabus, error) {
	trees, err := queryJSON[models.Syllabus](ctx, r.Db.db, `SELECT payload FROM syllabus WHERE id = 1`)
	if err != nil {
		return models.Syllabus{}, fmt.Errorf("get syllabus: %w", err)
	}
	if len(trees) == 0 {
		return models.Syllabus{}, nil
	}
	return trees[0], nil
}

// Analytics repository methods
func (r *Repository) GetCounts(ctx context.Context, start, end string) (Counts, error) {
	var c Counts
	err := r.Db.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM daily_plans WHERE date BETWEEN ?1 AND ?2),
			(SELECT COUNT(*) FROM coaching_logs WHERE date BETWEEN ?1 AND ?2),
			(SELECT COUNT(*) FROM tests WHERE date BETWEEN ?1 AND ?2),
			(SELECT COUNT(*) FROM wellness_logs WHERE date BETWEEN ?1 AND ?2),
			(SELECT COUNT(*) FROM doubts WHERE date BETWEEN ?1 AND ?2)
	`, start, end).Scan(&c.Plans, &c.CoachingLogs, &c.Tests, &c.WellnessLogs, &c.Doubts)
	if err != nil {
		return Counts{}, fmt.Errorf("count records: %w", err)
	}
	return c, nil
}
