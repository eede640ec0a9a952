package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveypulse/internal/model"
)

func seedSurvey(repo *fakeSurveyRepo, active bool) *model.Survey {
	s := &model.Survey{
		ID:       "s1",
		Title:    "Coffee feedback",
		IsActive: active,
		Questions: []model.Question{
			{Text: "Rate us", Type: model.QuestionTypeRating, Required: true},
			{Text: "Favorite drink", Type: model.QuestionTypeMultipleChoice, Options: []string{"Latte", "Mocha"}},
			{Text: "Comments", Type: model.QuestionTypeText},
		},
		CreatedAt: time.Now().Add(-30 * 24 * time.Hour),
	}
	repo.put(s)
	return s
}

func TestResponseService_Submit(t *testing.T) {
	ctx := context.Background()
	surveys := newFakeSurveyRepo()
	seedSurvey(surveys, true)
	responses := &fakeResponseRepo{}
	analyticsCache := newFakeAnalyticsCache()
	svc := NewResponseService(surveys, responses, analyticsCache, nil)

	rec, err := svc.Submit(ctx, "s1", &model.SubmitResponseRequest{
		Responses: map[string]any{"Rate us": 4.0, "Favorite drink": "Latte", "Unknown": "kept"},
	})
	require.NoError(t, err)
	assert.Equal(t, "r1", rec.ID)
	assert.Equal(t, "kept", rec.Responses["Unknown"])
	assert.False(t, rec.SubmittedAt.IsZero())
	assert.Equal(t, []string{"s1"}, analyticsCache.invalidated)
}

func TestResponseService_Get(t *testing.T) {
	ctx := context.Background()
	surveys := newFakeSurveyRepo()
	seedSurvey(surveys, true)
	svc := NewResponseService(surveys, &fakeResponseRepo{}, nil, nil)

	rec, err := svc.Submit(ctx, "s1", &model.SubmitResponseRequest{
		Responses: map[string]any{"Rate us": 4.0, "Favorite drink": "Latte"},
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "s1", rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Latte", got.Responses["Favorite drink"])

	_, err = svc.Get(ctx, "s1", "missing")
	assert.ErrorIs(t, err, ErrResponseNotFound)

	_, err = svc.Get(ctx, "other", rec.ID)
	assert.ErrorIs(t, err, ErrResponseNotFound)
}

func TestResponseService_SubmitRejected(t *testing.T) {
	ctx := context.Background()

	t.Run("missing survey", func(t *testing.T) {
		svc := NewResponseService(newFakeSurveyRepo(), &fakeResponseRepo{}, nil, nil)
		_, err := svc.Submit(ctx, "nope", &model.SubmitResponseRequest{})
		assert.ErrorIs(t, err, ErrSurveyNotFound)
	})

	t.Run("inactive survey", func(t *testing.T) {
		surveys := newFakeSurveyRepo()
		seedSurvey(surveys, false)
		svc := NewResponseService(surveys, &fakeResponseRepo{}, nil, nil)
		_, err := svc.Submit(ctx, "s1", &model.SubmitResponseRequest{Responses: map[string]any{"Rate us": 3}})
		assert.ErrorIs(t, err, ErrSurveyInactive)
	})

	for name, answers := range map[string]map[string]any{
		"absent": {"Comments": "hi"},
		"nil":    {"Rate us": nil},
		"blank":  {"Rate us": "   "},
	} {
		t.Run("required "+name, func(t *testing.T) {
			surveys := newFakeSurveyRepo()
			seedSurvey(surveys, true)
			responses := &fakeResponseRepo{}
			svc := NewResponseService(surveys, responses, nil, nil)

			_, err := svc.Submit(ctx, "s1", &model.SubmitResponseRequest{Responses: answers})
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.Empty(t, responses.responses)
		})
	}
}

func TestResponseService_LiveDashboardPush(t *testing.T) {
	ctx := context.Background()
	surveys := newFakeSurveyRepo()
	seedSurvey(surveys, true)
	responses := &fakeResponseRepo{}
	analyticsCache := newFakeAnalyticsCache()
	hub := &fakeBroadcaster{subscribers: map[string]bool{"s1": true}}

	svc := NewResponseService(surveys, responses, analyticsCache, nil)
	svc.SetBroadcaster(hub)
	svc.SetAnalyticsService(NewAnalyticsService(surveys, responses, analyticsCache, nil, nil))

	_, err := svc.Submit(ctx, "s1", &model.SubmitResponseRequest{Responses: map[string]any{"Rate us": 5}})
	require.NoError(t, err)

	require.Len(t, hub.sent, 2)
	assert.Equal(t, MsgResponseSubmitted, hub.sent[0].msgType)
	assert.Equal(t, MsgAnalyticsUpdate, hub.sent[1].msgType)

	report, ok := hub.sent[1].payload.(*model.AnalyticsReport)
	require.True(t, ok)
	assert.Equal(t, 1, report.TotalResponses)
	assert.Equal(t, 1, report.Analytics["Rate us"].ResponseCount)
}

func TestResponseService_NoPushWithoutSubscribers(t *testing.T) {
	surveys := newFakeSurveyRepo()
	seedSurvey(surveys, true)
	responses := &fakeResponseRepo{}
	hub := &fakeBroadcaster{}

	svc := NewResponseService(surveys, responses, nil, nil)
	svc.SetBroadcaster(hub)
	svc.SetAnalyticsService(NewAnalyticsService(surveys, responses, nil, nil, nil))

	_, err := svc.Submit(context.Background(), "s1", &model.SubmitResponseRequest{Responses: map[string]any{"Rate us": 5}})
	require.NoError(t, err)
	assert.Empty(t, hub.sent)
	assert.Zero(t, responses.listCalls(), "analytics are not recomputed for nobody")
}

func TestResponseService_ExportCSV(t *testing.T) {
	ctx := context.Background()
	surveys := newFakeSurveyRepo()
	seedSurvey(surveys, true)
	responses := &fakeResponseRepo{}
	svc := NewResponseService(surveys, responses, nil, nil)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	responses.responses = []model.ResponseRecord{
		{SurveyID: "s1", SubmittedAt: at, Responses: map[string]any{"Rate us": 4.0, "Comments": "Great, \"really\""}},
		{SurveyID: "s1", SubmittedAt: at.Add(time.Hour), Responses: map[string]any{"Rate us": "5", "Favorite drink": "Mocha"}},
	}

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, "s1", &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"submitted_at", "Rate us", "Favorite drink", "Comments"},
		{"2026-03-01T12:00:00Z", "4", "", "Great, \"really\""},
		{"2026-03-01T13:00:00Z", "5", "Mocha", ""},
	}, rows)

	assert.ErrorIs(t, svc.ExportCSV(ctx, "missing", &buf), ErrSurveyNotFound)
}
