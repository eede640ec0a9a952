package analytics

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"surveypulse/internal/model"
)

func sampleSurvey() *model.Survey {
	return &model.Survey{
		ID:    "s1",
		Title: "Product feedback",
		Questions: []model.Question{
			{Text: "Rate us", Type: model.QuestionTypeRating, Required: true},
			{Text: "Favourite colour", Type: model.QuestionTypeMultipleChoice, Options: []string{"Red", "Blue"}},
			{Text: "Would you recommend us?", Type: model.QuestionTypeYesNo},
			{Text: "How many seats?", Type: model.QuestionTypeNumber},
			{Text: "Anything else?", Type: model.QuestionTypeText},
			{Text: "Voice note", Type: model.QuestionTypeAudio},
			{Text: "Never answered", Type: model.QuestionTypeText},
		},
	}
}

func sampleResponses() []model.ResponseRecord {
	return []model.ResponseRecord{
		{ID: "r1", Responses: map[string]any{
			"Rate us": 5, "Favourite colour": "Red", "Would you recommend us?": "Yes",
			"How many seats?": "12", "Anything else?": "Great service", "Voice note": "clip-1",
			"Never answered": nil,
		}},
		{ID: "r2", Responses: map[string]any{
			"Rate us": "3", "Favourite colour": "Blue", "Would you recommend us?": "No",
			"How many seats?": 4, "Anything else?": "  ", "Voice note": "clip-2",
		}},
		{ID: "r3", Responses: map[string]any{
			"Rate us": "abc", "Favourite colour": "Red", "Unrelated key": "ignored",
		}},
	}
}

func TestAnalyzeNoResponses(t *testing.T) {
	got := NewAnalyzer(nil).Analyze(sampleSurvey(), nil)

	assert.Equal(t, 0, got.TotalResponses)
	assert.Empty(t, got.Analytics)

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_responses":0,"analytics":{}}`, string(b))
}

func TestAnalyzeDispatchesByType(t *testing.T) {
	got := NewAnalyzer(nil).Analyze(sampleSurvey(), sampleResponses())

	require.Equal(t, 3, got.TotalResponses)
	require.Len(t, got.Analytics, 7)

	rating := got.Analytics["Rate us"]
	assert.Equal(t, model.QuestionTypeRating, rating.Type)
	assert.Equal(t, 3, rating.ResponseCount)
	rs, ok := rating.Data.(model.RatingSummary)
	require.True(t, ok)
	assert.Equal(t, 2, rs.ValidResponses)
	assert.Equal(t, 4.0, rs.Average)

	colour := got.Analytics["Favourite colour"]
	cs, ok := colour.Data.(model.ChoiceSummary)
	require.True(t, ok)
	assert.Equal(t, map[string]int{"Red": 2, "Blue": 1}, cs.Responses)

	yesNo := got.Analytics["Would you recommend us?"]
	assert.Equal(t, model.QuestionTypeYesNo, yesNo.Type)
	assert.Equal(t, 2, yesNo.ResponseCount)

	seats := got.Analytics["How many seats?"]
	ns, ok := seats.Data.(model.NumericSummary)
	require.True(t, ok)
	assert.Equal(t, 8.0, ns.Range)

	text := got.Analytics["Anything else?"]
	assert.Equal(t, 2, text.ResponseCount, "blank answers still count as given")
	ts, ok := text.Data.(model.TextSummary)
	require.True(t, ok)
	assert.Equal(t, 1, ts.TotalResponses)

	audio := got.Analytics["Voice note"]
	assert.Equal(t, model.Marker("2 answers"), audio.Data)
	assert.Equal(t, 2, audio.ResponseCount)

	never := got.Analytics["Never answered"]
	assert.Equal(t, model.QuestionAnalytics{
		Type:          model.QuestionTypeText,
		ResponseCount: 0,
		Data:          model.MarkerNoResponses,
	}, never)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	a := NewAnalyzer(nil)
	survey := sampleSurvey()
	responses := sampleResponses()

	first := a.Analyze(survey, responses)
	second := a.Analyze(survey, responses)
	assert.True(t, cmp.Equal(first, second), cmp.Diff(first, second))

	b1, err := json.Marshal(first)
	require.NoError(t, err)
	b2, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(b1), string(b2))
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	survey := sampleSurvey()
	responses := sampleResponses()
	beforeSurvey := sampleSurvey()
	beforeResponses := sampleResponses()

	NewAnalyzer(nil).Analyze(survey, responses)

	assert.Empty(t, cmp.Diff(beforeSurvey, survey))
	assert.Empty(t, cmp.Diff(beforeResponses, responses))
}

type explodingAnswer struct{}

func (explodingAnswer) MarshalJSON() ([]byte, error) { panic("boom") }

func TestAnalyzeKeepsPartialResultsOnPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	survey := &model.Survey{
		ID: "s2",
		Questions: []model.Question{
			{Text: "Q1", Type: model.QuestionTypeRating},
			{Text: "Q2", Type: model.QuestionTypeText},
			{Text: "Q3", Type: model.QuestionTypeRating},
		},
	}
	responses := []model.ResponseRecord{
		{Responses: map[string]any{"Q1": 4, "Q2": explodingAnswer{}, "Q3": 2}},
		{Responses: map[string]any{"Q1": 2}},
	}

	got := NewAnalyzer(zap.New(core)).Analyze(survey, responses)

	assert.Equal(t, 2, got.TotalResponses)
	assert.Contains(t, got.Analytics, "Q1")
	assert.NotContains(t, got.Analytics, "Q2")
	assert.NotContains(t, got.Analytics, "Q3")
	assert.Equal(t, 1, logs.Len())
}

func TestAnalyticsRoundTripJSON(t *testing.T) {
	got := NewAnalyzer(nil).Analyze(sampleSurvey(), sampleResponses())

	b, err := json.Marshal(got)
	require.NoError(t, err)

	var decoded model.SurveyAnalytics
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Empty(t, cmp.Diff(got, &decoded))
}
