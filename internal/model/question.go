package model

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// QuestionType defines the answer shape of a question
type QuestionType string

const (
	QuestionTypeText           QuestionType = "text"            // Free text
	QuestionTypeMultipleChoice QuestionType = "multiple_choice" // One of Options
	QuestionTypeRating         QuestionType = "rating"          // Numeric scale
	QuestionTypeYesNo          QuestionType = "yes_no"
	QuestionTypeNumber         QuestionType = "number"
	QuestionTypeAudio          QuestionType = "audio" // Stored, never aggregated
)

// QuestionTypes lists every storable question type
var QuestionTypes = []QuestionType{
	QuestionTypeText,
	QuestionTypeMultipleChoice,
	QuestionTypeRating,
	QuestionTypeYesNo,
	QuestionTypeNumber,
	QuestionTypeAudio,
}

// GeneratableTypes are the types the AI pipeline may emit
var GeneratableTypes = []QuestionType{
	QuestionTypeText,
	QuestionTypeMultipleChoice,
	QuestionTypeRating,
	QuestionTypeYesNo,
	QuestionTypeNumber,
}

// ParseQuestionType returns the QuestionType named by s
func ParseQuestionType(s string) (QuestionType, error) {
	for _, t := range QuestionTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown question type %q", s)
}

// Generatable reports whether the AI pipeline is allowed to emit t
func (t QuestionType) Generatable() bool {
	for _, g := range GeneratableTypes {
		if g == t {
			return true
		}
	}
	return false
}

// UnmarshalText rejects unknown types at the JSON boundary.
func (t *QuestionType) UnmarshalText(b []byte) error {
	parsed, err := ParseQuestionType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalBSONValue stores the type as a plain string.
func (t QuestionType) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(string(t))
}

// UnmarshalBSONValue rejects unknown types read back from MongoDB.
func (t *QuestionType) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	s, ok := bson.RawValue{Type: bt, Value: data}.StringValueOK()
	if !ok {
		return fmt.Errorf("question type: expected string, got %s", bt)
	}
	parsed, err := ParseQuestionType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Question is a stored survey question, identified by its text
type Question struct {
	Text     string       `json:"text" bson:"text"`
	Type     QuestionType `json:"type" bson:"type"`
	Options  []string     `json:"options" bson:"options"` // multiple_choice only
	Required bool         `json:"required" bson:"required"`
}

// GeneratedQuestion is a question produced by the AI pipeline. It becomes a
// Question only once the caller accepts it into a survey.
type GeneratedQuestion struct {
	Text     string       `json:"text" jsonschema:"required,description=The question text"`
	Type     QuestionType `json:"type" jsonschema:"required,enum=text,enum=multiple_choice,enum=rating,enum=yes_no,enum=number"`
	Options  []string     `json:"options" jsonschema:"required,description=Choices for multiple_choice; empty otherwise"`
	Required bool         `json:"required" jsonschema:"required"`
}

// ToQuestion converts an accepted generated question
func (g GeneratedQuestion) ToQuestion() Question {
	return Question{Text: g.Text, Type: g.Type, Options: g.Options, Required: g.Required}
}
