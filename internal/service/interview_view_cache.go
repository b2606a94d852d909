package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ai-interviewer/internal/cache"
	"ai-interviewer/internal/domain"
	"ai-interviewer/internal/dto"
	"ai-interviewer/internal/logger"

	"go.uber.org/zap"
)

// ErrInterviewViewNotCached is returned on a cache miss.
var ErrInterviewViewNotCached = errors.New("interview view not found in cache")

// InterviewViewCache stores the candidate-safe view of immutable interviews.
type InterviewViewCache interface {
	Put(ctx context.Context, view *dto.CandidateInterviewResponse) error
	Get(ctx context.Context, interviewID string) (*dto.CandidateInterviewResponse, error)
}

type interviewViewCache struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewInterviewViewCache returns a no-op cache when c is nil.
func NewInterviewViewCache(c domain.Cache, ttl time.Duration) InterviewViewCache {
	if c == nil {
		logger.Get().Warn("InterviewViewCache initialized with nil cache. Service will be no-op.")
		return &noopInterviewViewCache{}
	}
	return &interviewViewCache{cache: c, ttl: ttl}
}

func (s *interviewViewCache) Put(ctx context.Context, view *dto.CandidateInterviewResponse) error {
	if view == nil {
		return domain.NewInvalidInputError("cannot cache nil interview view")
	}

	key := cache.InterviewCandidateViewKey(view.ID)
	data, err := json.Marshal(view)
	if err != nil {
		return domain.NewInternalError("failed to marshal interview view for caching", err)
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		return domain.NewInternalError(fmt.Sprintf("failed to set interview view to cache for key %s", key), err)
	}
	logger.Get().Debug("Cached interview view", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

func (s *interviewViewCache) Get(ctx context.Context, interviewID string) (*dto.CandidateInterviewResponse, error) {
	key := cache.InterviewCandidateViewKey(interviewID)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, ErrInterviewViewNotCached
		}
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get interview view from cache for key %s", key), err)
	}
	if data == "" {
		return nil, ErrInterviewViewNotCached
	}

	var view dto.CandidateInterviewResponse
	if err := json.Unmarshal([]byte(data), &view); err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal interview view from cache for key %s", key), err)
	}
	return &view, nil
}

type noopInterviewViewCache struct{}

func (noopInterviewViewCache) Put(ctx context.Context, view *dto.CandidateInterviewResponse) error {
	return nil
}

func (noopInterviewViewCache) Get(ctx context.Context, interviewID string) (*dto.CandidateInterviewResponse, error) {
	return nil, ErrInterviewViewNotCached
}
