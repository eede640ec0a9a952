package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"surveypulse/internal/config"
	"surveypulse/internal/model"
)

func sqliteConfig() *config.Config {
	cfg := config.Default()
	cfg.Store.Driver = config.StoreSQLite
	cfg.Store.SQLitePath = ":memory:"
	cfg.Redis.Addr = ""
	cfg.AI.OpenAIKey = ""
	cfg.AI.GeminiKey = ""
	return cfg
}

func TestNew_SQLiteWithoutRedis(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, sqliteConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer a.Close(ctx)

	assert.False(t, a.GenerationService.Enabled())

	survey, err := a.SurveyService.Create(ctx, &model.CreateSurveyRequest{
		Title: "Wiring",
		Questions: []model.Question{
			{Text: "Score", Type: model.QuestionTypeRating, Required: true},
		},
	})
	require.NoError(t, err)

	_, err = a.ResponseService.Submit(ctx, survey.ID, &model.SubmitResponseRequest{
		Responses: map[string]any{"Score": 4},
	})
	require.NoError(t, err)

	report, err := a.AnalyticsService.Report(ctx, survey.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalResponses)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNew_UnreachableRedisDegrades(t *testing.T) {
	cfg := sqliteConfig()
	cfg.Redis.Addr = "127.0.0.1:1"

	ctx := context.Background()
	a, err := New(ctx, cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer a.Close(ctx)

	summary, err := a.AnalyticsService.Summary(ctx, "missing")
	assert.Nil(t, summary)
	assert.Error(t, err)
}

func TestClose_Idempotent(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, sqliteConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, a.Close(ctx))
	require.NoError(t, a.Close(ctx))
}
