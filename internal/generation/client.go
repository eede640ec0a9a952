package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"go.uber.org/zap"
)

// CompletionRequest is one call to a chat-style text-generation model
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float32
	// Schema, when set, asks the backend for structured JSON output.
	// Backends without structured output ignore it.
	Schema *jsonschema.Schema
}

// Completer calls a text-generation backend and returns the reply text
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Attempt is one step of the model fallback chain
type Attempt struct {
	Name        string // used in logs and failure messages
	Backend     Completer
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// AttemptError is the failure of a single attempt
type AttemptError struct {
	Attempt string
	Model   string
	Err     error
}

func (e *AttemptError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Attempt, e.Model, e.Err)
}

func (e *AttemptError) Unwrap() error { return e.Err }

// ChainError reports that every attempt failed. It carries each underlying
// failure in attempt order.
type ChainError struct {
	Failures []*AttemptError
}

func (e *ChainError) Error() string {
	if len(e.Failures) == 0 {
		return "no model attempts configured"
	}
	msgs := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		msgs[i] = f.Error()
	}
	if len(e.Failures) == 2 {
		return "Both primary and fallback model calls failed: " + strings.Join(msgs, ", ")
	}
	return fmt.Sprintf("All %d model calls failed: %s", len(e.Failures), strings.Join(msgs, ", "))
}

// Unwrap exposes every attempt failure to errors.Is and errors.As
func (e *ChainError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// Reply is a successful completion
type Reply struct {
	Text    string
	Model   string
	Attempt string
}

// Client runs the attempt chain: each attempt is tried only after the
// previous one failed, and the first success ends the chain.
type Client struct {
	attempts []Attempt
	logger   *zap.Logger
}

// NewClient creates a client over an ordered attempt list
func NewClient(attempts []Attempt, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{attempts: attempts, logger: logger}
}

// Enabled reports whether any attempt is configured
func (c *Client) Enabled() bool {
	return len(c.attempts) > 0
}

// Complete sends the messages down the chain. A cancelled ctx stops the chain
// before the next attempt; the error is then a *ChainError whose last failure
// wraps ctx.Err().
func (c *Client) Complete(ctx context.Context, messages []Message, schema *jsonschema.Schema) (*Reply, error) {
	chainErr := &ChainError{}
	for i, a := range c.attempts {
		if err := ctx.Err(); err != nil {
			chainErr.Failures = append(chainErr.Failures, &AttemptError{Attempt: a.Name, Model: a.Model, Err: err})
			break
		}

		text, err := c.try(ctx, a, messages, schema)
		if err == nil {
			if i > 0 {
				c.logger.Info("fallback model succeeded", zap.String("attempt", a.Name), zap.String("model", a.Model))
			}
			return &Reply{Text: text, Model: a.Model, Attempt: a.Name}, nil
		}

		failure := &AttemptError{Attempt: a.Name, Model: a.Model, Err: err}
		chainErr.Failures = append(chainErr.Failures, failure)
		if i < len(c.attempts)-1 {
			c.logger.Warn("model call failed, falling back",
				zap.String("attempt", a.Name),
				zap.String("model", a.Model),
				zap.String("next", c.attempts[i+1].Model),
				zap.Error(err))
		}
	}

	c.logger.Error("all model calls failed", zap.Error(chainErr))
	return nil, chainErr
}

func (c *Client) try(ctx context.Context, a Attempt, messages []Message, schema *jsonschema.Schema) (text string, err error) {
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("backend panic: %v", r)
		}
	}()

	text, err = a.Backend.Complete(ctx, CompletionRequest{
		Model:       a.Model,
		Messages:    messages,
		MaxTokens:   a.MaxTokens,
		Temperature: a.Temperature,
		Schema:      schema,
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
		return "", err
	}
	return text, nil
}
