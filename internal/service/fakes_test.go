package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"surveypulse/internal/model"
	"surveypulse/internal/repository"
)

type fakeSurveyRepo struct {
	mu      sync.Mutex
	surveys map[string]*model.Survey
	nextID  int
	err     error
}

func newFakeSurveyRepo() *fakeSurveyRepo {
	return &fakeSurveyRepo{surveys: map[string]*model.Survey{}}
}

func (r *fakeSurveyRepo) Create(_ context.Context, s *model.Survey) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return "", r.err
	}
	r.nextID++
	s.ID = fmt.Sprintf("s%d", r.nextID)
	s.CreatedAt = time.Now().UTC()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	r.surveys[s.ID] = &cp
	return s.ID, nil
}

func (r *fakeSurveyRepo) GetByID(_ context.Context, id string) (*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	s, ok := r.surveys[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSurveyRepo) List(_ context.Context, includeInactive bool) ([]*model.Survey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Survey{}
	for _, s := range r.surveys {
		if includeInactive || s.IsActive {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSurveyRepo) Update(_ context.Context, s *model.Survey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.surveys[s.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *s
	r.surveys[s.ID] = &cp
	return nil
}

// put stores a survey as is, bypassing validation
func (r *fakeSurveyRepo) put(s *model.Survey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.surveys[s.ID] = &cp
}

type fakeResponseRepo struct {
	mu        sync.Mutex
	responses []model.ResponseRecord
	lists     int
}

func (r *fakeResponseRepo) Create(_ context.Context, rec *model.ResponseRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = fmt.Sprintf("r%d", len(r.responses)+1)
	r.responses = append(r.responses, *rec)
	return nil
}

func (r *fakeResponseRepo) GetByID(_ context.Context, surveyID, id string) (*model.ResponseRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.responses {
		if rec.ID == id && rec.SurveyID == surveyID {
			out := rec
			return &out, nil
		}
	}
	return nil, nil
}

func (r *fakeResponseRepo) ListBySurvey(_ context.Context, surveyID string) ([]model.ResponseRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
	out := []model.ResponseRecord{}
	for _, rec := range r.responses {
		if rec.SurveyID == surveyID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeResponseRepo) CountBySurvey(ctx context.Context, surveyID string) (int64, error) {
	return r.CountSince(ctx, surveyID, time.Time{})
}

func (r *fakeResponseRepo) CountSince(_ context.Context, surveyID string, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, rec := range r.responses {
		if rec.SurveyID == surveyID && !rec.SubmittedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakeResponseRepo) listCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lists
}

type cacheEntry struct {
	version   int64
	analytics *model.SurveyAnalytics
}

type fakeAnalyticsCache struct {
	mu          sync.Mutex
	entries     map[string]cacheEntry
	invalidated []string
}

func newFakeAnalyticsCache() *fakeAnalyticsCache {
	return &fakeAnalyticsCache{entries: map[string]cacheEntry{}}
}

func (c *fakeAnalyticsCache) Get(_ context.Context, surveyID string, version int64) (*model.SurveyAnalytics, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[surveyID]
	if !ok || e.version != version {
		return nil, nil
	}
	return e.analytics, nil
}

func (c *fakeAnalyticsCache) Set(_ context.Context, surveyID string, version int64, a *model.SurveyAnalytics) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[surveyID] = cacheEntry{version: version, analytics: a}
	return nil
}

func (c *fakeAnalyticsCache) Invalidate(_ context.Context, surveyID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, surveyID)
	c.invalidated = append(c.invalidated, surveyID)
	return nil
}

type broadcast struct {
	surveyID string
	msgType  string
	payload  interface{}
}

type fakeBroadcaster struct {
	mu          sync.Mutex
	subscribers map[string]bool
	sent        []broadcast
}

func (b *fakeBroadcaster) BroadcastToSurvey(surveyID, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, broadcast{surveyID, msgType, payload})
}

func (b *fakeBroadcaster) HasSubscribers(surveyID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.subscribers[surveyID]
}

type fakeQuota struct {
	allowed bool
	err     error
	keys    []string
}

func (q *fakeQuota) Allow(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	q.keys = append(q.keys, key)
	return q.allowed, q.err
}

type fakeGenerator struct {
	enabled bool
	prompt  string
	count   int
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string, count int) *model.GenerationResult {
	g.prompt, g.count = prompt, count
	qs := make([]model.GeneratedQuestion, count)
	for i := range qs {
		qs[i] = model.GeneratedQuestion{Text: fmt.Sprintf("Q%d", i+1), Type: model.QuestionTypeText, Options: []string{}, Required: true}
	}
	return &model.GenerationResult{Success: true, Questions: qs, Count: count, Model: "fake"}
}

func (g *fakeGenerator) Enabled() bool { return g.enabled }
