package model

import (
	"strings"
	"time"
)

// ResponseRecord is one respondent submission. Answers are keyed by question
// text and are untyped: string, number, bool or absent.
type ResponseRecord struct {
	ID          string            `json:"id" bson:"_id,omitempty"`
	SurveyID    string            `json:"survey_id" bson:"surveyId"`
	Responses   map[string]any    `json:"responses" bson:"responses"`
	AudioData   map[string]string `json:"audio_data,omitempty" bson:"audioData,omitempty"` // question text -> base64 payload
	SubmittedAt time.Time         `json:"submitted_at" bson:"submittedAt"`
}

// Answer returns the raw answer for a question and whether one was given.
// A nil answer counts as absent.
func (r *ResponseRecord) Answer(questionText string) (any, bool) {
	v, ok := r.Responses[questionText]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Answered reports whether the question has a non-blank answer
func (r *ResponseRecord) Answered(questionText string) bool {
	v, ok := r.Answer(questionText)
	if !ok {
		return false
	}
	if s, isStr := v.(string); isStr {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// SubmitResponseRequest is the body of a response submission
type SubmitResponseRequest struct {
	Responses map[string]any    `json:"responses"`
	AudioData map[string]string `json:"audio_data,omitempty"`
}
