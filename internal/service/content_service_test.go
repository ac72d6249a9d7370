package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"tenang/internal/adapter"
	"tenang/internal/domain"
	"tenang/internal/dto"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockContentRepo struct {
	ListPublishedByStateFunc func(ctx context.Context, kind domain.ContentKind, state domain.RecommendedState) ([]*domain.Content, error)

	listCalls int
}

func (m *mockContentRepo) ListPublishedByState(ctx context.Context, kind domain.ContentKind, state domain.RecommendedState) ([]*domain.Content, error) {
	m.listCalls++
	if m.ListPublishedByStateFunc != nil {
		return m.ListPublishedByStateFunc(ctx, kind, state)
	}
	return nil, nil
}

func sampleArticles() []*domain.Content {
	return []*domain.Content{
		{
			ID:             "c1",
			Kind:           domain.ContentArticle,
			Title:          "Box Breathing Basics",
			Slug:           "box-breathing-basics",
			Body:           "Breathe in for four counts...",
			Tags:           []string{"breathing", "beginner"},
			RecommendedFor: domain.RecommendedHigh,
			Published:      true,
		},
		{
			ID:             "c2",
			Kind:           domain.ContentArticle,
			Title:          "Evening Wind-Down Routine",
			Slug:           "evening-wind-down",
			Body:           "A short routine before sleep...",
			RecommendedFor: domain.RecommendedAll,
			Published:      true,
		},
	}
}

func TestContentServiceCacheMissThenHit(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	repo := &mockContentRepo{
		ListPublishedByStateFunc: func(ctx context.Context, kind domain.ContentKind, state domain.RecommendedState) ([]*domain.Content, error) {
			assert.Equal(t, domain.ContentArticle, kind)
			assert.Equal(t, domain.RecommendedHigh, state)
			return sampleArticles(), nil
		},
	}
	svc := NewContentService(repo, cacheAdapter, 10*time.Minute)

	key := "tenang:content:article:high"
	expected := &dto.ContentListResponse{
		State: "high",
		Items: []dto.ContentItem{
			{ID: "c1", Kind: "article", Title: "Box Breathing Basics", Slug: "box-breathing-basics", Body: "Breathe in for four counts...", Tags: []string{"breathing", "beginner"}, RecommendedFor: "high"},
			{ID: "c2", Kind: "article", Title: "Evening Wind-Down Routine", Slug: "evening-wind-down", Body: "A short routine before sleep...", RecommendedFor: "all"},
		},
	}
	payload, err := json.Marshal(expected)
	require.NoError(t, err)

	// First call misses and populates the cache.
	redisMock.ExpectGet(key).RedisNil()
	redisMock.ExpectSet(key, string(payload), 10*time.Minute).SetVal("OK")

	resp, err := svc.ListArticles(context.Background(), domain.RecommendedHigh)
	require.NoError(t, err)
	assert.Equal(t, expected, resp)
	assert.Equal(t, 1, repo.listCalls)

	// Second call is served from the cache.
	redisMock.ExpectGet(key).SetVal(string(payload))

	resp, err = svc.ListArticles(context.Background(), domain.RecommendedHigh)
	require.NoError(t, err)
	assert.Equal(t, expected, resp)
	assert.Equal(t, 1, repo.listCalls)

	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestContentServiceUnknownStateFallsBackToAll(t *testing.T) {
	repo := &mockContentRepo{
		ListPublishedByStateFunc: func(ctx context.Context, kind domain.ContentKind, state domain.RecommendedState) ([]*domain.Content, error) {
			assert.Equal(t, domain.RecommendedAll, state)
			return nil, nil
		},
	}
	svc := NewContentService(repo, nil, time.Minute)

	resp, err := svc.ListAudio(context.Background(), domain.RecommendedState("berat"))
	require.NoError(t, err)
	assert.Equal(t, "all", resp.State)
	assert.Empty(t, resp.Items)
}

func TestContentServiceWorksWithoutCache(t *testing.T) {
	repo := &mockContentRepo{
		ListPublishedByStateFunc: func(ctx context.Context, kind domain.ContentKind, state domain.RecommendedState) ([]*domain.Content, error) {
			return sampleArticles(), nil
		},
	}
	svc := NewContentService(repo, nil, time.Minute)

	resp, err := svc.ListArticles(context.Background(), domain.RecommendedHigh)
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
}

func TestContentServiceInvalidateCache(t *testing.T) {
	redisClient, redisMock := redismock.NewClientMock()
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	svc := NewContentService(&mockContentRepo{}, cacheAdapter, time.Minute)

	for _, kind := range []string{"article", "audio"} {
		for _, state := range []string{"low", "medium", "high", "all"} {
			redisMock.ExpectDel("tenang:content:" + kind + ":" + state).SetVal(1)
		}
	}

	require.NoError(t, svc.InvalidateCache(context.Background()))
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
