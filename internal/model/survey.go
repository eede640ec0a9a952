package model

import "time"

// Survey is a persistent questionnaire created by a host
type Survey struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Questions   []Question `json:"questions" bson:"questions"`
	IsActive    bool       `json:"is_active" bson:"isActive"`
	CreatedAt   time.Time  `json:"created_at" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updatedAt"`
}

// Question returns the question with the given text, or nil
func (s *Survey) Question(text string) *Question {
	for i := range s.Questions {
		if s.Questions[i].Text == text {
			return &s.Questions[i]
		}
	}
	return nil
}

// SurveySummary is the dashboard card for one survey
type SurveySummary struct {
	SurveyID          string    `json:"survey_id"`
	Title             string    `json:"title"`
	TotalQuestions    int       `json:"total_questions"`
	TotalResponses    int       `json:"total_responses"`
	RecentResponses7d int       `json:"recent_responses_7d"`
	CompletionRate    float64   `json:"completion_rate"`
	CreatedAt         time.Time `json:"created_at"`
	IsActive          bool      `json:"is_active"`
}

// CreateSurveyRequest is the body of a survey creation request
type CreateSurveyRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// UpdateSurveyRequest changes only the fields that are present
type UpdateSurveyRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Questions   []Question `json:"questions,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
}
