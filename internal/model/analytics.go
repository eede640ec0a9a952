package model

import (
	"encoding/json"
	"fmt"
)

// Analytics markers used in place of a summary
const (
	MarkerNoResponses    Marker = "No responses"
	MarkerNoValidRatings Marker = "No valid ratings"
	MarkerNoValidNumbers Marker = "No valid numbers"
)

// Summary is the type-specific data of one question's analytics. The set of
// implementations is closed: RatingSummary, NumericSummary, ChoiceSummary,
// TextSummary and Marker.
type Summary interface {
	summary()
}

// Marker is a plain-text placeholder summary
type Marker string

// RatingSummary summarizes rating answers
type RatingSummary struct {
	Average        float64        `json:"average"`
	Median         float64        `json:"median"`
	Min            float64        `json:"min"`
	Max            float64        `json:"max"`
	Distribution   map[string]int `json:"distribution"` // exact value -> count
	ValidResponses int            `json:"valid_responses"`
}

// NumericSummary summarizes number answers
type NumericSummary struct {
	RatingSummary
	Range float64 `json:"range"`
}

// ChoiceSummary summarizes multiple_choice and yes_no answers
type ChoiceSummary struct {
	Responses   map[string]int     `json:"responses"`
	Percentages map[string]float64 `json:"percentages"`
	MostCommon  *ChoiceCount       `json:"most_common"`
}

// ChoiceCount is an (answer, count) pair, encoded as a two-element array
type ChoiceCount struct {
	Answer string
	Count  int
}

func (c ChoiceCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Answer, c.Count})
}

func (c *ChoiceCount) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("choice count: expected [answer, count], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &c.Answer); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &c.Count)
}

// TextSummary summarizes free-text answers
type TextSummary struct {
	TotalResponses   int      `json:"total_responses"`
	AverageWordCount float64  `json:"average_word_count"`
	SampleResponses  []string `json:"sample_responses"`
	LongestResponse  string   `json:"longest_response"`
	ShortestResponse string   `json:"shortest_response"`
}

func (Marker) summary()         {}
func (RatingSummary) summary()  {}
func (NumericSummary) summary() {}
func (ChoiceSummary) summary()  {}
func (TextSummary) summary()    {}

// QuestionAnalytics is the analytics entry for one question
type QuestionAnalytics struct {
	Type          QuestionType `json:"type"`
	ResponseCount int          `json:"response_count"`
	Data          Summary      `json:"data"`
}

// UnmarshalJSON restores the concrete Summary from the declared type, so
// cached analytics decode back into the same variant they were built from.
func (q *QuestionAnalytics) UnmarshalJSON(b []byte) error {
	var raw struct {
		Type          QuestionType    `json:"type"`
		ResponseCount int             `json:"response_count"`
		Data          json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	q.Type = raw.Type
	q.ResponseCount = raw.ResponseCount

	var marker string
	if err := json.Unmarshal(raw.Data, &marker); err == nil {
		q.Data = Marker(marker)
		return nil
	}

	switch raw.Type {
	case QuestionTypeRating:
		var s RatingSummary
		if err := json.Unmarshal(raw.Data, &s); err != nil {
			return err
		}
		q.Data = s
	case QuestionTypeNumber:
		var s NumericSummary
		if err := json.Unmarshal(raw.Data, &s); err != nil {
			return err
		}
		q.Data = s
	case QuestionTypeMultipleChoice, QuestionTypeYesNo:
		var s ChoiceSummary
		if err := json.Unmarshal(raw.Data, &s); err != nil {
			return err
		}
		q.Data = s
	case QuestionTypeText:
		var s TextSummary
		if err := json.Unmarshal(raw.Data, &s); err != nil {
			return err
		}
		q.Data = s
	default:
		return fmt.Errorf("analytics for %s question carries structured data", raw.Type)
	}
	return nil
}

// SurveyAnalytics is the analyzer output for one survey
type SurveyAnalytics struct {
	TotalResponses int                          `json:"total_responses"`
	Analytics      map[string]QuestionAnalytics `json:"analytics"`
}

// AnalyticsReport is the analytics endpoint payload
type AnalyticsReport struct {
	SurveyID string `json:"survey_id"`
	Title    string `json:"title"`
	SurveyAnalytics
}
