package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tenang/internal/cache"
	"tenang/internal/domain"
	"tenang/internal/dto"
	"tenang/internal/logger"
	"tenang/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ContentService serves published self-help content filtered by the
// reader's latest stress category.
type ContentService interface {
	ListArticles(ctx context.Context, state domain.RecommendedState) (*dto.ContentListResponse, error)
	ListAudio(ctx context.Context, state domain.RecommendedState) (*dto.ContentListResponse, error)
	InvalidateCache(ctx context.Context) error
}

type contentServiceImpl struct {
	contentRepo repository.ContentRepository
	cache       domain.Cache
	cacheTTL    time.Duration
	group       singleflight.Group
}

// NewContentService creates a new instance of ContentService.
func NewContentService(contentRepo repository.ContentRepository, cacheClient domain.Cache, cacheTTL time.Duration) ContentService {
	return &contentServiceImpl{
		contentRepo: contentRepo,
		cache:       cacheClient,
		cacheTTL:    cacheTTL,
	}
}

func (s *contentServiceImpl) ListArticles(ctx context.Context, state domain.RecommendedState) (*dto.ContentListResponse, error) {
	return s.list(ctx, domain.ContentArticle, state)
}

func (s *contentServiceImpl) ListAudio(ctx context.Context, state domain.RecommendedState) (*dto.ContentListResponse, error) {
	return s.list(ctx, domain.ContentAudio, state)
}

// list reads through the cache. Concurrent misses for the same key are
// collapsed into one database query via singleflight.
func (s *contentServiceImpl) list(ctx context.Context, kind domain.ContentKind, state domain.RecommendedState) (*dto.ContentListResponse, error) {
	if !state.IsValid() {
		state = domain.RecommendedAll
	}
	key := cache.GenerateCacheKey("content", string(kind), string(state))

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			var resp dto.ContentListResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
			logger.Get().Warn("Failed to unmarshal cached content, falling back to DB", zap.String("key", key), zap.Error(err))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Content cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		contents, err := s.contentRepo.ListPublishedByState(ctx, kind, state)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s content: %w", kind, err)
		}
		resp := &dto.ContentListResponse{State: string(state), Items: make([]dto.ContentItem, 0, len(contents))}
		for _, c := range contents {
			resp.Items = append(resp.Items, toContentItem(c))
		}

		if s.cache != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
					logger.Get().Warn("Content cache write failed", zap.String("key", key), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.ContentListResponse), nil
}

// InvalidateCache drops every cached content list. Called after seeding or
// admin edits so readers see fresh data without waiting for TTL expiry.
func (s *contentServiceImpl) InvalidateCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	states := []domain.RecommendedState{domain.RecommendedLow, domain.RecommendedMedium, domain.RecommendedHigh, domain.RecommendedAll}
	kinds := []domain.ContentKind{domain.ContentArticle, domain.ContentAudio}
	for _, kind := range kinds {
		for _, state := range states {
			key := cache.GenerateCacheKey("content", string(kind), string(state))
			if err := s.cache.Delete(ctx, key); err != nil && !errors.Is(err, domain.ErrCacheMiss) {
				return fmt.Errorf("failed to invalidate content cache key %s: %w", key, err)
			}
		}
	}
	return nil
}

func toContentItem(c *domain.Content) dto.ContentItem {
	return dto.ContentItem{
		ID:             c.ID,
		Kind:           string(c.Kind),
		Title:          c.Title,
		Slug:           c.Slug,
		Body:           c.Body,
		MediaURL:       c.MediaURL,
		Tags:           c.Tags,
		RecommendedFor: string(c.RecommendedFor),
	}
}
