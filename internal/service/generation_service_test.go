package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveypulse/internal/config"
	"surveypulse/internal/model"
)

func TestGenerationService_Generate(t *testing.T) {
	gen := &fakeGenerator{enabled: true}
	quota := &fakeQuota{allowed: true}
	svc := NewGenerationService(gen, quota, config.DefaultAIConfig(), nil)

	res, err := svc.Generate(context.Background(), "host_1", &model.GenerateRequest{Prompt: "  gym habits  ", QuestionCount: 3})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "gym habits", res.Prompt)
	assert.Equal(t, "gym habits", gen.prompt)
	assert.Equal(t, 3, gen.count)
	assert.Equal(t, []string{"generate:host_1"}, quota.keys)
}

func TestGenerationService_ClampsCount(t *testing.T) {
	cfg := config.DefaultAIConfig()
	cfg.MaxQuestionCount = 10

	tests := []struct {
		requested, want int
	}{
		{0, 5},
		{-4, 1},
		{1, 1},
		{10, 10},
		{500, 10},
	}
	for _, tt := range tests {
		gen := &fakeGenerator{enabled: true}
		svc := NewGenerationService(gen, nil, cfg, nil)

		res, err := svc.Generate(context.Background(), "h", &model.GenerateRequest{Prompt: "x", QuestionCount: tt.requested})
		require.NoError(t, err)
		assert.Equal(t, tt.want, gen.count, "requested %d", tt.requested)
		assert.Equal(t, tt.want, res.Count)
	}
}

func TestGenerationService_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("empty prompt", func(t *testing.T) {
		gen := &fakeGenerator{enabled: true}
		svc := NewGenerationService(gen, nil, nil, nil)
		_, err := svc.Generate(ctx, "h", &model.GenerateRequest{Prompt: " \n "})
		assert.ErrorIs(t, err, ErrInvalidRequest)
		assert.Empty(t, gen.prompt)
	})

	t.Run("rate limited", func(t *testing.T) {
		gen := &fakeGenerator{enabled: true}
		svc := NewGenerationService(gen, &fakeQuota{allowed: false}, nil, nil)
		_, err := svc.Generate(ctx, "h", &model.GenerateRequest{Prompt: "x"})
		assert.ErrorIs(t, err, ErrRateLimited)
		assert.Empty(t, gen.prompt)
	})

	t.Run("quota backend down fails open", func(t *testing.T) {
		gen := &fakeGenerator{enabled: true}
		svc := NewGenerationService(gen, &fakeQuota{err: errors.New("redis down")}, nil, nil)
		res, err := svc.Generate(ctx, "h", &model.GenerateRequest{Prompt: "x"})
		require.NoError(t, err)
		assert.True(t, res.Success)
	})
}
