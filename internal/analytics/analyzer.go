// Package analytics computes per-question summaries of survey responses.
//
// Everything here is a pure function of its inputs: nothing is cached, no I/O
// is performed and the inputs are never modified, so one Analyzer may serve
// any number of surveys concurrently.
package analytics

import (
	"fmt"

	"go.uber.org/zap"

	"surveypulse/internal/model"
)

// Analyzer dispatches each survey question to the aggregator for its type
type Analyzer struct {
	logger *zap.Logger
}

// NewAnalyzer creates an analyzer. A nil logger discards output.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{logger: logger}
}

// Analyze summarizes responses for every question of the survey. A failure
// while summarizing one question is logged and ends the pass; the entries
// computed before it are still returned.
func (a *Analyzer) Analyze(survey *model.Survey, responses []model.ResponseRecord) *model.SurveyAnalytics {
	result := &model.SurveyAnalytics{
		TotalResponses: len(responses),
		Analytics:      make(map[string]model.QuestionAnalytics),
	}
	if len(responses) == 0 || survey == nil {
		return result
	}

	for _, q := range survey.Questions {
		entry, err := a.analyzeQuestion(q, responses)
		if err != nil {
			a.logger.Error("analytics aborted",
				zap.String("surveyId", survey.ID),
				zap.String("question", q.Text),
				zap.Error(err))
			break
		}
		result.Analytics[q.Text] = entry
	}
	return result
}

func (a *Analyzer) analyzeQuestion(q model.Question, responses []model.ResponseRecord) (entry model.QuestionAnalytics, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("summarize %q: %v", q.Text, r)
		}
	}()

	answers := collect(q.Text, responses)
	if len(answers) == 0 {
		return model.QuestionAnalytics{
			Type:          q.Type,
			ResponseCount: 0,
			Data:          model.MarkerNoResponses,
		}, nil
	}

	return model.QuestionAnalytics{
		Type:          q.Type,
		ResponseCount: len(answers),
		Data:          Summarize(q.Type, answers),
	}, nil
}

// Summarize routes answers to the aggregator for the question type
func Summarize(t model.QuestionType, answers []any) model.Summary {
	switch t {
	case model.QuestionTypeRating:
		return Rating(answers)
	case model.QuestionTypeNumber:
		return Numeric(answers)
	case model.QuestionTypeMultipleChoice, model.QuestionTypeYesNo:
		return Choice(answers)
	case model.QuestionTypeText:
		return Text(answers)
	case model.QuestionTypeAudio:
		return countMarker(answers)
	}
	// QuestionType values are validated on decode; only hand-built surveys
	// reach this point.
	return countMarker(answers)
}

func countMarker(answers []any) model.Marker {
	return model.Marker(fmt.Sprintf("%d answers", len(answers)))
}

// collect gathers the non-nil answers to one question, in response order
func collect(questionText string, responses []model.ResponseRecord) []any {
	answers := make([]any, 0, len(responses))
	for i := range responses {
		if v, ok := responses[i].Answer(questionText); ok {
			answers = append(answers, v)
		}
	}
	return answers
}
