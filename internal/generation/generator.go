// Package generation turns a natural-language prompt into validated survey
// questions using an unreliable text-generation service.
//
// The pipeline is BuildMessages -> Client (ordered model fallback) ->
// Extractor -> Validate. Every path ends in a well-formed
// model.GenerationResult; nothing here returns an error to the caller.
package generation

import (
	"context"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
	"go.uber.org/zap"

	"surveypulse/internal/model"
)

// Failure messages surfaced in GenerationResult.Error
const (
	ErrMsgParse    = "Failed to parse AI response"
	ErrMsgDisabled = "AI question generation is not configured"
)

// Generator runs the question-generation pipeline
type Generator struct {
	client    *Client
	extractor Extractor
	schema    *jsonschema.Schema
	logger    *zap.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithStructuredOutput requests a JSON-schema constrained reply and reads it
// with EnvelopeExtractor instead of scanning for brackets.
func WithStructuredOutput() Option {
	return func(g *Generator) {
		g.schema = QuestionSchema()
		g.extractor = EnvelopeExtractor{}
	}
}

// WithExtractor overrides the extractor
func WithExtractor(e Extractor) Option {
	return func(g *Generator) { g.extractor = e }
}

// NewGenerator creates a pipeline over client
func NewGenerator(client *Client, logger *zap.Logger, opts ...Option) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Generator{
		client:    client,
		extractor: BracketExtractor{},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Enabled reports whether a model backend is configured
func (g *Generator) Enabled() bool {
	return g.client != nil && g.client.Enabled()
}

// Generate produces up to questionCount questions for prompt
func (g *Generator) Generate(ctx context.Context, prompt string, questionCount int) *model.GenerationResult {
	if !g.Enabled() {
		return &model.GenerationResult{Success: false, Questions: []model.GeneratedQuestion{}, Error: ErrMsgDisabled}
	}

	reply, err := g.client.Complete(ctx, BuildMessages(prompt, questionCount), g.schema)
	if err != nil {
		return &model.GenerationResult{
			Success:   false,
			Questions: []model.GeneratedQuestion{},
			Error:     err.Error(),
		}
	}
	g.logger.Info("AI raw output",
		zap.String("model", reply.Model),
		zap.String("output", truncate(reply.Text, rawSnippetLen)))

	elems, err := g.extractor.Extract(reply.Text)
	if err != nil {
		var pf *ParseFailure
		snippet := truncate(reply.Text, rawSnippetLen)
		if errors.As(err, &pf) {
			snippet = pf.Snippet
		}
		g.logger.Warn("unparseable model output", zap.String("model", reply.Model), zap.Error(err))
		return &model.GenerationResult{
			Success:   false,
			Questions: []model.GeneratedQuestion{fallbackQuestion(prompt)},
			Count:     1,
			Error:     ErrMsgParse,
			RawOutput: snippet,
			Model:     reply.Model,
		}
	}

	questions := Validate(elems, questionCount)
	if dropped := len(elems) - len(questions); dropped > 0 {
		g.logger.Debug("discarded generated elements", zap.Int("dropped", dropped), zap.Int("parsed", len(elems)))
	}
	return &model.GenerationResult{
		Success:   true,
		Questions: questions,
		Count:     len(questions),
		Model:     reply.Model,
	}
}

func fallbackQuestion(prompt string) model.GeneratedQuestion {
	return model.GeneratedQuestion{
		Text:     fmt.Sprintf("Question about: %s", prompt),
		Type:     model.QuestionTypeText,
		Options:  []string{},
		Required: true,
	}
}

// QuestionSchema is the response schema used in structured-output mode
func QuestionSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	return r.Reflect(&struct {
		Questions []model.GeneratedQuestion `json:"questions" jsonschema:"required"`
	}{})
}
