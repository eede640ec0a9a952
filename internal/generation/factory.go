package generation

import (
	"context"

	"go.uber.org/zap"

	"surveypulse/internal/config"
)

// AttemptsFromConfig builds the fallback chain: OpenAI primary and fallback
// when an OpenAI key is set, then Gemini when a Gemini key is set.
func AttemptsFromConfig(ctx context.Context, cfg *config.AIConfig, logger *zap.Logger) []Attempt {
	var attempts []Attempt
	base := Attempt{
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Timeout:     cfg.Timeout(),
	}

	if cfg.OpenAIKey != "" {
		backend := NewOpenAIBackend(cfg.OpenAIKey, cfg.OpenAIBaseURL)

		primary := base
		primary.Name, primary.Backend, primary.Model = "primary", backend, cfg.Models.Primary
		attempts = append(attempts, primary)

		if cfg.Models.Fallback != "" {
			fallback := base
			fallback.Name, fallback.Backend, fallback.Model = "fallback", backend, cfg.Models.Fallback
			attempts = append(attempts, fallback)
		}
	}

	if cfg.GeminiKey != "" && cfg.Models.Gemini != "" {
		backend, err := NewGeminiBackend(ctx, cfg.GeminiKey)
		if err != nil {
			logger.Warn("gemini backend unavailable", zap.Error(err))
		} else {
			gemini := base
			gemini.Name, gemini.Backend, gemini.Model = "gemini", backend, cfg.Models.Gemini
			attempts = append(attempts, gemini)
		}
	}
	return attempts
}

// NewFromConfig assembles a Generator from configuration
func NewFromConfig(ctx context.Context, cfg *config.AIConfig, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	var opts []Option
	if cfg.StructuredOutput {
		opts = append(opts, WithStructuredOutput())
	}
	return NewGenerator(NewClient(AttemptsFromConfig(ctx, cfg, logger), logger), logger, opts...)
}
