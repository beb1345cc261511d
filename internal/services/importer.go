package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"prep-meter/internal/database"
	"prep-meter/internal/models"
	"prep-meter/internal/utils"
)

// UserExport is the JSON document the study tracker app exports for a user.
// Fields the reports never read are ignored on decode.
type UserExport struct {
	Topics       models.Syllabus      `json:"topics"`
	Tests        []models.TestResult  `json:"tests"`
	DailyPlans   []models.DailyPlan   `json:"dailyPlans"`
	Lectures     []models.Lecture     `json:"lectures"`
	WellnessLogs []models.WellnessLog `json:"wellnessLogs"`
	Doubts       []models.Doubt       `json:"doubts"`
	Teachers     []string             `json:"teachers"`
	CoachingLogs []models.CoachingLog `json:"coachingLogs"`

	UpcomingTests []models.UpcomingTest   `json:"upcomingTests"`
	Challenges    []models.StudyChallenge `json:"challenges"`
}

// ImportStats counts what an import stored. Rejected records are described
// in Errors and skipped; the rest of the document is still imported.
type ImportStats struct {
	Plans         int
	CoachingLogs  int
	Tests         int
	WellnessLogs  int
	Doubts        int
	Lectures      int
	Teachers      int
	UpcomingTests int
	Challenges    int
	Syllabus      bool
	Errors        []string
}

func (s ImportStats) Stored() int {
	return s.Plans + s.CoachingLogs + s.Tests + s.WellnessLogs + s.Doubts + s.Lectures + s.Teachers +
		s.UpcomingTests + s.Challenges
}

type ImportService struct {
	repository *database.Repository
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewImportService(repo *database.Repository, logger *zap.Logger) *ImportService {
	return &ImportService{
		repository: repo,
		validate:   newValidator(),
		logger:     logger,
	}
}

func (is *ImportService) Import(ctx context.Context, r io.Reader) (ImportStats, error) {
	var export UserExport
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return ImportStats{}, fmt.Errorf("decode export: %w", err)
	}

	var stats ImportStats
	reject := func(kind, key string, err error) {
		stats.Errors = append(stats.Errors, fmt.Sprintf("%s %s: %v", kind, key, describeValidation(err)))
	}

	for _, plan := range export.DailyPlans {
		fillPlanIDs(&plan)
		if err := is.validate.Struct(plan); err != nil {
			reject("plan", plan.Date, err)
			continue
		}
		if err := is.repository.SavePlan(ctx, plan); err != nil {
			return stats, err
		}
		stats.Plans++
	}

	for _, log := range export.CoachingLogs {
		log.Activities = withActivityIDs(log.Activities)
		if err := is.validate.Struct(log); err != nil {
			reject("coaching log", log.Date, err)
			continue
		}
		if err := is.repository.SaveCoachingLog(ctx, log); err != nil {
			return stats, err
		}
		stats.CoachingLogs++
	}

	for _, test := range export.Tests {
		fillID(&test.ID)
		if err := is.validate.Struct(test); err != nil {
			reject("test", test.Name, err)
			continue
		}
		if err := is.repository.SaveTest(ctx, test); err != nil {
			return stats, err
		}
		stats.Tests++
	}

	for _, w := range export.WellnessLogs {
		if err := is.validate.Struct(w); err != nil {
			reject("wellness log", w.Date, err)
			continue
		}
		if err := is.repository.SaveWellness(ctx, w); err != nil {
			return stats, err
		}
		stats.WellnessLogs++
	}

	for _, d := range export.Doubts {
		fillID(&d.ID)
		if err := is.validate.Struct(d); err != nil {
			reject("doubt", d.ID, err)
			continue
		}
		if err := is.repository.SaveDoubt(ctx, d); err != nil {
			return stats, err
		}
		stats.Doubts++
	}

	for _, l := range export.Lectures {
		fillID(&l.ID)
		if err := is.validate.Struct(l); err != nil {
			reject("lecture", l.ID, err)
			continue
		}
		if err := is.repository.SaveLecture(ctx, l); err != nil {
			return stats, err
		}
		stats.Lectures++
	}

	for _, name := range export.Teachers {
		if name == "" {
			continue
		}
		if err := is.repository.AddTeacher(ctx, name); err != nil {
			return stats, err
		}
		stats.Teachers++
	}

	for _, t := range export.UpcomingTests {
		fillID(&t.ID)
		if err := is.validate.Struct(t); err != nil {
			reject("upcoming test", t.Name, err)
			continue
		}
		if err := is.repository.SaveUpcomingTest(ctx, t); err != nil {
			return stats, err
		}
		stats.UpcomingTests++
	}

	for _, c := range export.Challenges {
		fillID(&c.ID)
		if err := is.validate.Struct(c); err != nil {
			reject("challenge", c.ID, err)
			continue
		}
		if start, end := c.Window(); !validWindow(start, end) {
			stats.Errors = append(stats.Errors, fmt.Sprintf("challenge %s: invalid window %s to %s", c.ID, start, end))
			continue
		}
		if err := is.repository.SaveChallenge(ctx, c); err != nil {
			return stats, err
		}
		stats.Challenges++
	}

	if !export.Topics.IsEmpty() {
		if err := is.repository.SaveSyllabus(ctx, export.Topics); err != nil {
			return stats, err
		}
		stats.Syllabus = true
	}

	is.logger.Info("import finished",
		zap.Int("stored", stats.Stored()),
		zap.Int("rejected", len(stats.Errors)))
	return stats, nil
}

func validWindow(start, end string) bool {
	if _, err := utils.ParseDate(start); err != nil {
		return false
	}
	if _, err := utils.ParseDate(end); err != nil {
		return false
	}
	return start <= end
}

func fillID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// fillPlanIDs gives every nested record of a plan an id. Slot links refer to
// topic and task ids, so existing ids are never replaced.
func fillPlanIDs(plan *models.DailyPlan) {
	for _, topics := range []*[]models.PlannedTopic{&plan.SubjectPlans.Physics, &plan.SubjectPlans.Chemistry, &plan.SubjectPlans.Math} {
		*topics = append([]models.PlannedTopic(nil), (*topics)...)
		for i := range *topics {
			fillID(&(*topics)[i].ID)
		}
	}
	plan.Tasks = append([]models.DailyPlanTask(nil), plan.Tasks...)
	for i := range plan.Tasks {
		fillID(&plan.Tasks[i].ID)
	}
	plan.Schedule = append([]models.HourlySlot(nil), plan.Schedule...)
	for i := range plan.Schedule {
		fillID(&plan.Schedule[i].ID)
	}
	plan.QuestionsSolved = append([]models.QuestionsSolvedLog(nil), plan.QuestionsSolved...)
	for i := range plan.QuestionsSolved {
		fillID(&plan.QuestionsSolved[i].ID)
	}
}

func withActivityIDs(activities []models.CoachingActivity) []models.CoachingActivity {
	out := make([]models.CoachingActivity, len(activities))
	for i, a := range activities {
		switch v := a.(type) {
		case models.LectureActivity:
			fillID(&v.ID)
			out[i] = v
		case models.TestActivity:
			fillID(&v.ID)
			out[i] = v
		case models.OtherActivity:
			fillID(&v.ID)
			out[i] = v
		}
	}
	return out
}
