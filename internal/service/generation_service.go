package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"surveypulse/internal/cache"
	"surveypulse/internal/config"
	"surveypulse/internal/model"
)

const defaultQuestionCount = 5

// QuestionGenerator produces survey questions from a prompt
type QuestionGenerator interface {
	Generate(ctx context.Context, prompt string, questionCount int) *model.GenerationResult
	Enabled() bool
}

// GenerationService guards the generation pipeline with request validation
// and a per-host rate limit
type GenerationService struct {
	generator QuestionGenerator
	quota     cache.QuotaCache
	cfg       *config.AIConfig
	logger    *zap.Logger
}

// NewGenerationService creates a new generation service
func NewGenerationService(generator QuestionGenerator, quota cache.QuotaCache, cfg *config.AIConfig, logger *zap.Logger) *GenerationService {
	if quota == nil {
		quota = cache.NewNopQuotaCache()
	}
	if cfg == nil {
		cfg = config.DefaultAIConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerationService{
		generator: generator,
		quota:     quota,
		cfg:       cfg,
		logger:    logger,
	}
}

// Generate validates req and runs the pipeline. Pipeline failures are
// reported inside the result; only bad requests and rate limiting are errors.
func (s *GenerationService) Generate(ctx context.Context, hostID string, req *model.GenerateRequest) (*model.GenerationResult, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, fmt.Errorf("%w: prompt is required", ErrInvalidRequest)
	}
	count := s.clampCount(req.QuestionCount)

	allowed, err := s.quota.Allow(ctx, "generate:"+hostID, s.cfg.RateLimitPerMinute, time.Minute)
	if err != nil {
		s.logger.Warn("rate limit check failed", zap.String("hostId", hostID), zap.Error(err))
	} else if !allowed {
		return nil, ErrRateLimited
	}

	s.logger.Info("generating questions",
		zap.String("hostId", hostID),
		zap.Int("count", count),
		zap.Int("promptLength", len(prompt)))

	result := s.generator.Generate(ctx, prompt, count)
	result.Prompt = prompt
	return result, nil
}

// Enabled reports whether a model backend is configured
func (s *GenerationService) Enabled() bool {
	return s.generator.Enabled()
}

func (s *GenerationService) clampCount(n int) int {
	if n == 0 {
		n = defaultQuestionCount
	}
	return max(1, min(n, s.cfg.MaxQuestionCount))
}
