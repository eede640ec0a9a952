package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"surveypulse/internal/analytics"
	"surveypulse/internal/cache"
	"surveypulse/internal/model"
	"surveypulse/internal/repository"
)

// recentWindow is the lookback for SurveySummary.RecentResponses7d
const recentWindow = 7 * 24 * time.Hour

// AnalyticsService serves survey analytics and dashboard summaries
type AnalyticsService struct {
	surveyRepo     repository.SurveyRepo
	responseRepo   repository.ResponseRepo
	analyticsCache cache.AnalyticsCache
	analyzer       *analytics.Analyzer
	logger         *zap.Logger
	now            func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	surveyRepo repository.SurveyRepo,
	responseRepo repository.ResponseRepo,
	analyticsCache cache.AnalyticsCache,
	analyzer *analytics.Analyzer,
	logger *zap.Logger,
) *AnalyticsService {
	if analyticsCache == nil {
		analyticsCache = cache.NewNopAnalyticsCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if analyzer == nil {
		analyzer = analytics.NewAnalyzer(logger)
	}
	return &AnalyticsService{
		surveyRepo:     surveyRepo,
		responseRepo:   responseRepo,
		analyticsCache: analyticsCache,
		analyzer:       analyzer,
		logger:         logger,
		now:            time.Now,
	}
}

// Report returns per-question analytics for a survey, from cache when the
// cached entry was built from the current number of responses
func (s *AnalyticsService) Report(ctx context.Context, surveyID string) (*model.AnalyticsReport, error) {
	var (
		survey *model.Survey
		count  int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		survey, err = s.surveyRepo.GetByID(gctx, surveyID)
		return err
	})
	g.Go(func() error {
		var err error
		count, err = s.responseRepo.CountBySurvey(gctx, surveyID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load survey %s: %w", surveyID, err)
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}

	cached, err := s.analyticsCache.Get(ctx, surveyID, count)
	if err != nil {
		s.logger.Warn("analytics cache read failed", zap.String("surveyId", surveyID), zap.Error(err))
	}
	if cached != nil {
		return newReport(survey, cached), nil
	}

	return s.compute(ctx, survey)
}

// Refresh recomputes and caches analytics for an already loaded survey
func (s *AnalyticsService) Refresh(ctx context.Context, survey *model.Survey) (*model.AnalyticsReport, error) {
	return s.compute(ctx, survey)
}

func (s *AnalyticsService) compute(ctx context.Context, survey *model.Survey) (*model.AnalyticsReport, error) {
	responses, err := s.responseRepo.ListBySurvey(ctx, survey.ID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}

	start := time.Now()
	result := s.analyzer.Analyze(survey, responses)
	s.logger.Debug("analytics computed",
		zap.String("surveyId", survey.ID),
		zap.Int("responses", len(responses)),
		zap.Duration("took", time.Since(start)))

	if err := s.analyticsCache.Set(ctx, survey.ID, int64(len(responses)), result); err != nil {
		s.logger.Warn("analytics cache write failed", zap.String("surveyId", survey.ID), zap.Error(err))
	}
	return newReport(survey, result), nil
}

// Summary returns the dashboard card for a survey
func (s *AnalyticsService) Summary(ctx context.Context, surveyID string) (*model.SurveySummary, error) {
	var (
		survey    *model.Survey
		responses []model.ResponseRecord
		recent    int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		survey, err = s.surveyRepo.GetByID(gctx, surveyID)
		return err
	})
	g.Go(func() error {
		var err error
		responses, err = s.responseRepo.ListBySurvey(gctx, surveyID)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.responseRepo.CountSince(gctx, surveyID, s.now().Add(-recentWindow))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load survey %s: %w", surveyID, err)
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}

	return &model.SurveySummary{
		SurveyID:          survey.ID,
		Title:             survey.Title,
		TotalQuestions:    len(survey.Questions),
		TotalResponses:    len(responses),
		RecentResponses7d: int(recent),
		CompletionRate:    CompletionRate(survey, responses),
		CreatedAt:         survey.CreatedAt,
		IsActive:          survey.IsActive,
	}, nil
}

// CompletionRate is the percentage of responses that answer every required
// question, to one decimal. It is 0 with no responses and 100 when nothing is
// required.
func CompletionRate(survey *model.Survey, responses []model.ResponseRecord) float64 {
	if len(responses) == 0 {
		return 0
	}
	var required []string
	for _, q := range survey.Questions {
		if q.Required {
			required = append(required, q.Text)
		}
	}
	if len(required) == 0 {
		return 100
	}

	complete := 0
	for i := range responses {
		if answeredAll(&responses[i], required) {
			complete++
		}
	}
	return analytics.Round(float64(complete)/float64(len(responses))*100, 1)
}

func answeredAll(r *model.ResponseRecord, questions []string) bool {
	for _, text := range questions {
		if !r.Answered(text) {
			return false
		}
	}
	return true
}

func newReport(survey *model.Survey, result *model.SurveyAnalytics) *model.AnalyticsReport {
	return &model.AnalyticsReport{
		SurveyID:        survey.ID,
		Title:           survey.Title,
		SurveyAnalytics: *result,
	}
}
