package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"surveypulse/internal/cache"
	"surveypulse/internal/model"
	"surveypulse/internal/repository"
)

// SurveyService handles survey CRUD operations
type SurveyService struct {
	surveyRepo     repository.SurveyRepo
	analyticsCache cache.AnalyticsCache
	logger         *zap.Logger
}

// NewSurveyService creates a new survey service
func NewSurveyService(surveyRepo repository.SurveyRepo, analyticsCache cache.AnalyticsCache, logger *zap.Logger) *SurveyService {
	if analyticsCache == nil {
		analyticsCache = cache.NewNopAnalyticsCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SurveyService{
		surveyRepo:     surveyRepo,
		analyticsCache: analyticsCache,
		logger:         logger,
	}
}

// Create validates and stores a new, active survey
func (s *SurveyService) Create(ctx context.Context, req *model.CreateSurveyRequest) (*model.Survey, error) {
	survey := &model.Survey{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Questions:   append([]model.Question(nil), req.Questions...),
		IsActive:    true,
	}
	if err := normalizeSurvey(survey); err != nil {
		return nil, err
	}

	if _, err := s.surveyRepo.Create(ctx, survey); err != nil {
		return nil, fmt.Errorf("create survey: %w", err)
	}
	s.logger.Info("survey created", zap.String("surveyId", survey.ID), zap.Int("questions", len(survey.Questions)))
	return survey, nil
}

// GetByID retrieves a survey by ID
func (s *SurveyService) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	survey, err := s.surveyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}
	return survey, nil
}

// List returns active surveys, or all of them when includeInactive is set
func (s *SurveyService) List(ctx context.Context, includeInactive bool) ([]*model.Survey, error) {
	return s.surveyRepo.List(ctx, includeInactive)
}

// Update applies the fields present in req
func (s *SurveyService) Update(ctx context.Context, id string, req *model.UpdateSurveyRequest) (*model.Survey, error) {
	survey, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		survey.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		survey.Description = strings.TrimSpace(*req.Description)
	}
	questionsChanged := req.Questions != nil
	if questionsChanged {
		survey.Questions = append([]model.Question(nil), req.Questions...)
	}
	if req.IsActive != nil {
		survey.IsActive = *req.IsActive
	}
	if err := normalizeSurvey(survey); err != nil {
		return nil, err
	}

	if err := s.save(ctx, survey); err != nil {
		return nil, err
	}
	if questionsChanged {
		if err := s.analyticsCache.Invalidate(ctx, id); err != nil {
			s.logger.Warn("analytics cache invalidation failed", zap.String("surveyId", id), zap.Error(err))
		}
	}
	return survey, nil
}

// Delete deactivates a survey; its responses are kept
func (s *SurveyService) Delete(ctx context.Context, id string) error {
	survey, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !survey.IsActive {
		return nil
	}
	survey.IsActive = false
	if err := s.save(ctx, survey); err != nil {
		return err
	}
	s.logger.Info("survey deactivated", zap.String("surveyId", id))
	return nil
}

func (s *SurveyService) save(ctx context.Context, survey *model.Survey) error {
	err := s.surveyRepo.Update(ctx, survey)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSurveyNotFound
	}
	if err != nil {
		return fmt.Errorf("update survey: %w", err)
	}
	return nil
}

// normalizeSurvey trims question fields and rejects surveys that cannot be
// answered or analyzed
func normalizeSurvey(survey *model.Survey) error {
	if survey.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidSurvey)
	}
	if len(survey.Questions) == 0 {
		return fmt.Errorf("%w: at least one question is required", ErrInvalidSurvey)
	}

	seen := make(map[string]bool, len(survey.Questions))
	for i := range survey.Questions {
		q := &survey.Questions[i]
		q.Text = strings.TrimSpace(q.Text)
		if q.Text == "" {
			return fmt.Errorf("%w: question %d has no text", ErrInvalidSurvey, i+1)
		}
		if seen[q.Text] {
			return fmt.Errorf("%w: duplicate question %q", ErrInvalidSurvey, q.Text)
		}
		seen[q.Text] = true

		if _, err := model.ParseQuestionType(string(q.Type)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSurvey, err)
		}

		if q.Type != model.QuestionTypeMultipleChoice {
			q.Options = []string{}
			continue
		}
		options := make([]string, 0, len(q.Options))
		for _, o := range q.Options {
			if o = strings.TrimSpace(o); o != "" {
				options = append(options, o)
			}
		}
		if len(options) < 2 {
			return fmt.Errorf("%w: multiple choice question %q needs at least two options", ErrInvalidSurvey, q.Text)
		}
		q.Options = options
	}
	return nil
}
