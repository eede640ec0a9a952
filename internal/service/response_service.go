package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"surveypulse/internal/analytics"
	"surveypulse/internal/cache"
	"surveypulse/internal/model"
	"surveypulse/internal/repository"
)

// ResponseService accepts respondent submissions and exports them
type ResponseService struct {
	surveyRepo     repository.SurveyRepo
	responseRepo   repository.ResponseRepo
	analyticsCache cache.AnalyticsCache
	analyticsSvc   *AnalyticsService
	broadcaster    Broadcaster
	logger         *zap.Logger
}

// NewResponseService creates a new response service
func NewResponseService(
	surveyRepo repository.SurveyRepo,
	responseRepo repository.ResponseRepo,
	analyticsCache cache.AnalyticsCache,
	logger *zap.Logger,
) *ResponseService {
	if analyticsCache == nil {
		analyticsCache = cache.NewNopAnalyticsCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResponseService{
		surveyRepo:     surveyRepo,
		responseRepo:   responseRepo,
		analyticsCache: analyticsCache,
		logger:         logger,
	}
}

// SetAnalyticsService enables live analytics pushes after each submission
func (s *ResponseService) SetAnalyticsService(a *AnalyticsService) {
	s.analyticsSvc = a
}

// SetBroadcaster sets the WebSocket broadcaster
func (s *ResponseService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit stores one response. Every required question must have a non-blank
// answer; keys that match no question are kept but never analyzed.
func (s *ResponseService) Submit(ctx context.Context, surveyID string, req *model.SubmitResponseRequest) (*model.ResponseRecord, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}
	if !survey.IsActive {
		return nil, ErrSurveyInactive
	}

	record := &model.ResponseRecord{
		SurveyID:    surveyID,
		Responses:   req.Responses,
		AudioData:   req.AudioData,
		SubmittedAt: time.Now().UTC(),
	}
	if record.Responses == nil {
		record.Responses = map[string]any{}
	}
	for _, q := range survey.Questions {
		if q.Required && !record.Answered(q.Text) {
			return nil, fmt.Errorf("%w: missing answer for required question %q", ErrInvalidRequest, q.Text)
		}
	}

	if err := s.responseRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("store response: %w", err)
	}
	s.logger.Info("response submitted", zap.String("surveyId", surveyID), zap.String("responseId", record.ID))

	if err := s.analyticsCache.Invalidate(ctx, surveyID); err != nil {
		s.logger.Warn("analytics cache invalidation failed", zap.String("surveyId", surveyID), zap.Error(err))
	}
	s.notify(ctx, survey, record)
	return record, nil
}

// notify pushes the submission, and fresh analytics, to open dashboards
func (s *ResponseService) notify(ctx context.Context, survey *model.Survey, record *model.ResponseRecord) {
	if s.broadcaster == nil || !s.broadcaster.HasSubscribers(survey.ID) {
		return
	}
	s.broadcaster.BroadcastToSurvey(survey.ID, MsgResponseSubmitted, map[string]interface{}{
		"survey_id":    survey.ID,
		"response_id":  record.ID,
		"submitted_at": record.SubmittedAt,
	})

	if s.analyticsSvc == nil {
		return
	}
	report, err := s.analyticsSvc.Refresh(ctx, survey)
	if err != nil {
		s.logger.Warn("live analytics refresh failed", zap.String("surveyId", survey.ID), zap.Error(err))
		return
	}
	s.broadcaster.BroadcastToSurvey(survey.ID, MsgAnalyticsUpdate, report)
}

// List returns a survey's responses, oldest first
func (s *ResponseService) List(ctx context.Context, surveyID string) ([]model.ResponseRecord, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}
	return s.responseRepo.ListBySurvey(ctx, surveyID)
}

// Get returns one response of a survey
func (s *ResponseService) Get(ctx context.Context, surveyID, responseID string) (*model.ResponseRecord, error) {
	record, err := s.responseRepo.GetByID(ctx, surveyID, responseID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrResponseNotFound
	}
	return record, nil
}

// ExportCSV writes one row per response: submission time followed by the
// answer to each question in survey order
func (s *ResponseService) ExportCSV(ctx context.Context, surveyID string, w io.Writer) error {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return err
	}
	if survey == nil {
		return ErrSurveyNotFound
	}
	responses, err := s.responseRepo.ListBySurvey(ctx, surveyID)
	if err != nil {
		return fmt.Errorf("list responses: %w", err)
	}

	cw := csv.NewWriter(w)
	header := make([]string, 0, len(survey.Questions)+1)
	header = append(header, "submitted_at")
	for _, q := range survey.Questions {
		header = append(header, q.Text)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range responses {
		r := &responses[i]
		row := make([]string, 0, len(header))
		row = append(row, r.SubmittedAt.UTC().Format(time.RFC3339))
		for _, q := range survey.Questions {
			v, _ := r.Answer(q.Text)
			row = append(row, analytics.DisplayString(v))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
