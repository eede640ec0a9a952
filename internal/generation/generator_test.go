package generation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"surveypulse/internal/model"
)

func newTestGenerator(fake *fakeCompleter, opts ...Option) *Generator {
	return NewGenerator(NewClient(twoAttempts(fake), zap.NewNop()), zap.NewNop(), opts...)
}

func TestGenerator_Success(t *testing.T) {
	fake := &fakeCompleter{replies: map[string]string{"gpt-4o-mini": `Here are your questions:
[
  {"text": "How satisfied are you?", "type": "rating", "options": [], "required": true},
  {"text": "Which drink?", "type": "multiple_choice", "options": ["Latte", "Espresso"]},
  {"text": "Tell us more", "type": "essay", "required": false},
  {"text": "Extra", "type": "text"}
]`}}
	g := newTestGenerator(fake)

	res := g.Generate(context.Background(), "coffee shop", 3)
	require.True(t, res.Success)
	assert.Empty(t, res.Error)
	assert.Equal(t, "gpt-4o-mini", res.Model)
	assert.Equal(t, 3, res.Count)
	require.Len(t, res.Questions, 3)

	assert.Equal(t, model.QuestionTypeRating, res.Questions[0].Type)
	assert.Equal(t, []string{"Latte", "Espresso"}, res.Questions[1].Options)
	assert.True(t, res.Questions[1].Required)
	assert.Equal(t, model.QuestionTypeText, res.Questions[2].Type)
	assert.False(t, res.Questions[2].Required)
}

func TestGenerator_ParseFailureFallsBackToSyntheticQuestion(t *testing.T) {
	raw := "I'm sorry, I can only answer in prose. " + strings.Repeat("blah ", 100)
	fake := &fakeCompleter{replies: map[string]string{"gpt-4o-mini": raw}}
	g := newTestGenerator(fake)

	res := g.Generate(context.Background(), "gym membership", 5)
	assert.False(t, res.Success)
	assert.Equal(t, ErrMsgParse, res.Error)
	require.Len(t, res.Questions, 1)
	assert.Equal(t, model.GeneratedQuestion{
		Text:     "Question about: gym membership",
		Type:     model.QuestionTypeText,
		Options:  []string{},
		Required: true,
	}, res.Questions[0])
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, 200, utf8.RuneCountInString(res.RawOutput))
	assert.True(t, strings.HasPrefix(raw, res.RawOutput))
}

func TestGenerator_BlankReplyFallsBackToSyntheticQuestion(t *testing.T) {
	for _, raw := range []string{"", "   "} {
		fake := &fakeCompleter{replies: map[string]string{"gpt-4o-mini": raw, "gpt-4.1-nano": raw}}
		g := newTestGenerator(fake)

		res := g.Generate(context.Background(), "coffee shop", 5)
		assert.False(t, res.Success)
		assert.Equal(t, ErrMsgParse, res.Error)
		require.Len(t, res.Questions, 1)
		assert.Equal(t, "Question about: coffee shop", res.Questions[0].Text)
		assert.Equal(t, model.QuestionTypeText, res.Questions[0].Type)
		assert.Equal(t, []string{"gpt-4o-mini"}, fake.models())
	}
}

func TestGenerator_ChainFailure(t *testing.T) {
	fake := &fakeCompleter{errs: map[string]error{
		"gpt-4o-mini":  errors.New("timeout"),
		"gpt-4.1-nano": errors.New("quota exceeded"),
	}}
	g := newTestGenerator(fake)

	res := g.Generate(context.Background(), "anything", 5)
	assert.False(t, res.Success)
	assert.Empty(t, res.Questions)
	assert.NotNil(t, res.Questions)
	assert.Zero(t, res.Count)
	assert.Contains(t, res.Error, "Both primary and fallback model calls failed")
	assert.Contains(t, res.Error, "quota exceeded")
}

func TestGenerator_EmptyArrayIsSuccess(t *testing.T) {
	fake := &fakeCompleter{replies: map[string]string{"gpt-4o-mini": "[]"}}
	res := newTestGenerator(fake).Generate(context.Background(), "x", 5)

	assert.True(t, res.Success)
	assert.Empty(t, res.Questions)
	assert.Zero(t, res.Count)
}

func TestGenerator_Disabled(t *testing.T) {
	g := NewGenerator(NewClient(nil, nil), nil)
	assert.False(t, g.Enabled())

	res := g.Generate(context.Background(), "x", 5)
	assert.False(t, res.Success)
	assert.Equal(t, ErrMsgDisabled, res.Error)
	assert.Empty(t, res.Questions)
}

func TestGenerator_StructuredOutput(t *testing.T) {
	fake := &fakeCompleter{replies: map[string]string{
		"gpt-4o-mini": `{"questions":[{"text":"Would you return?","type":"yes_no","options":[],"required":true}]}`,
	}}
	g := newTestGenerator(fake, WithStructuredOutput())

	res := g.Generate(context.Background(), "hotel stay", 1)
	require.True(t, res.Success)
	require.Len(t, res.Questions, 1)
	assert.Equal(t, model.QuestionTypeYesNo, res.Questions[0].Type)

	require.Len(t, fake.calls, 1)
	assert.NotNil(t, fake.calls[0].Schema, "schema is sent to the backend")
}

func TestQuestionSchema(t *testing.T) {
	schema := QuestionSchema()
	require.NotNil(t, schema)

	questions, ok := schema.Properties.Get("questions")
	require.True(t, ok)
	require.NotNil(t, questions.Items)

	typ, ok := questions.Items.Properties.Get("type")
	require.True(t, ok)
	assert.Len(t, typ.Enum, len(model.GeneratableTypes))
	assert.Contains(t, questions.Items.Required, "text")
}
