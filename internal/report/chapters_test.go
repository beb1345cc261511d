package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prep-meter/internal/models"
)

func TestTestScore(t *testing.T) {
	score, pct, ok := testScore(testResult("a", "2024-01-01", 150, 300))
	assert.True(t, ok)
	assert.Equal(t, 150.0, score)
	assert.Equal(t, 50.0, pct)

	score, pct, ok = testScore(testResult("b", "2024-01-01", 320, 300))
	assert.True(t, ok)
	assert.Equal(t, 300.0, score)
	assert.Equal(t, 100.0, pct)

	_, _, ok = testScore(testResult("c", "2024-01-01", 20, 0))
	assert.False(t, ok)
}

func TestRankChapters(t *testing.T) {
	metrics := map[string]*ChapterMetric{
		"Optics":   {Subject: models.Physics, AvgTestScore: ptr(40.0)},
		"Waves":    {Subject: models.Physics, AvgTestScore: ptr(40.0)},
		"Limits":   {Subject: models.Math, AvgTestScore: ptr(90.0)},
		"Mole":     {Subject: models.Chemistry, AvgTestScore: ptr(55.0)},
		"Vectors":  {Subject: models.Math, AvgTestScore: ptr(70.0)},
		"Matrices": {Subject: models.Math, AvgTestScore: ptr(65.0)},
		"Untested": {Subject: models.Math},
	}

	weakest := rankChapters(metrics, true)
	require.Len(t, weakest, rankingSize)
	names := make([]string, len(weakest))
	for i, r := range weakest {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"Optics", "Waves", "Mole", "Matrices", "Vectors"}, names)

	strongest := rankChapters(metrics, false)
	require.Len(t, strongest, rankingSize)
	assert.Equal(t, "Limits", strongest[0].Name)
	assert.Equal(t, models.Math, strongest[0].Subject)
	assert.Equal(t, "Optics", strongest[4].Name)

	assert.Empty(t, rankChapters(map[string]*ChapterMetric{"Untested": {}}, true))
}

func TestChapterMetrics_SkipsUnscorableTests(t *testing.T) {
	tests := []models.TestResult{
		testResult("1", "2024-01-02", 80, 100, "Optics"),
		testResult("2", "2024-01-01", 30, 0, "Optics", "Waves"),
	}
	metrics := chapterMetrics(nil, tests, models.Syllabus{}, NameKeys{})

	require.Contains(t, metrics, "Waves")
	assert.Nil(t, metrics["Waves"].AvgTestScore)
	assert.Empty(t, metrics["Waves"].Tests)

	require.Len(t, metrics["Optics"].Tests, 1)
	assert.Equal(t, 80.0, *metrics["Optics"].AvgTestScore)
}
