package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tenang/internal/domain"
	"tenang/internal/dto"
	"tenang/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockQuizRepo struct {
	InsertFunc                 func(ctx context.Context, quiz *domain.DailyQuiz) error
	GetLatestByUserAndDateFunc func(ctx context.Context, userID, date string) (*domain.DailyQuiz, error)
	HasQuizSinceFunc           func(ctx context.Context, userID string, since time.Time) (bool, error)
	GetHistoryFunc             func(ctx context.Context, userID string, limit int) ([]*domain.DailyQuiz, error)
	GetStatsSinceFunc          func(ctx context.Context, userID, fromDate string) ([]*domain.DailyQuiz, error)
	GetAllByDateFunc           func(ctx context.Context, date string, limit int) ([]*domain.DailyQuiz, error)
	CountByCategoryOnDateFunc  func(ctx context.Context, date string, category domain.Category) (int64, error)

	insertCalls int
}

func (m *mockQuizRepo) Insert(ctx context.Context, quiz *domain.DailyQuiz) error {
	m.insertCalls++
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, quiz)
	}
	return nil
}

func (m *mockQuizRepo) GetLatestByUserAndDate(ctx context.Context, userID, date string) (*domain.DailyQuiz, error) {
	if m.GetLatestByUserAndDateFunc != nil {
		return m.GetLatestByUserAndDateFunc(ctx, userID, date)
	}
	return nil, nil
}

func (m *mockQuizRepo) HasQuizSince(ctx context.Context, userID string, since time.Time) (bool, error) {
	if m.HasQuizSinceFunc != nil {
		return m.HasQuizSinceFunc(ctx, userID, since)
	}
	return false, nil
}

func (m *mockQuizRepo) GetHistory(ctx context.Context, userID string, limit int) ([]*domain.DailyQuiz, error) {
	if m.GetHistoryFunc != nil {
		return m.GetHistoryFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockQuizRepo) GetStatsSince(ctx context.Context, userID, fromDate string) ([]*domain.DailyQuiz, error) {
	if m.GetStatsSinceFunc != nil {
		return m.GetStatsSinceFunc(ctx, userID, fromDate)
	}
	return nil, nil
}

func (m *mockQuizRepo) GetAllByDate(ctx context.Context, date string, limit int) ([]*domain.DailyQuiz, error) {
	if m.GetAllByDateFunc != nil {
		return m.GetAllByDateFunc(ctx, date, limit)
	}
	return nil, nil
}

func (m *mockQuizRepo) CountByCategoryOnDate(ctx context.Context, date string, category domain.Category) (int64, error) {
	if m.CountByCategoryOnDateFunc != nil {
		return m.CountByCategoryOnDateFunc(ctx, date, category)
	}
	return 0, nil
}

func newTestQuizService(repo *mockQuizRepo, now time.Time) *quizServiceImpl {
	return &quizServiceImpl{
		quizRepo:  repo,
		validator: validation.NewValidator(),
		now:       func() time.Time { return now },
	}
}

func TestQuizServiceGetQuestions(t *testing.T) {
	svc := newTestQuizService(&mockQuizRepo{}, time.Now())
	resp := svc.GetQuestions(context.Background())
	require.Len(t, resp.Questions, 10)
	assert.Equal(t, 1, resp.Questions[0].ID)
	assert.Equal(t, 10, resp.Questions[9].ID)
}

func TestQuizServiceSubmit(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	t.Run("high score routes to consultation", func(t *testing.T) {
		var saved *domain.DailyQuiz
		repo := &mockQuizRepo{
			InsertFunc: func(ctx context.Context, quiz *domain.DailyQuiz) error {
				saved = quiz
				return nil
			},
		}
		svc := newTestQuizService(repo, now)

		// Reverse-scored questions answered 0, the rest 4: every item
		// contributes its maximum.
		answers := []int{4, 4, 4, 0, 0, 4, 0, 0, 4, 4}
		resp, err := svc.Submit(context.Background(), "user1", &dto.SubmitQuizRequest{Answers: answers})
		require.NoError(t, err)

		assert.Equal(t, 40, resp.Score)
		assert.Equal(t, "high", resp.Category)
		assert.Equal(t, "/consultation", resp.RedirectTo)
		assert.Len(t, resp.Recommendations, 3)

		require.NotNil(t, saved)
		assert.Equal(t, "user1", saved.UserID)
		assert.Equal(t, "2025-06-15", saved.Date)
		assert.Equal(t, answers, saved.Answers)
	})

	t.Run("low score routes to journal", func(t *testing.T) {
		repo := &mockQuizRepo{}
		svc := newTestQuizService(repo, now)

		answers := []int{0, 0, 0, 4, 4, 0, 4, 4, 0, 0}
		resp, err := svc.Submit(context.Background(), "user1", &dto.SubmitQuizRequest{Answers: answers})
		require.NoError(t, err)
		assert.Equal(t, 0, resp.Score)
		assert.Equal(t, "low", resp.Category)
		assert.Equal(t, "/journal", resp.RedirectTo)
	})

	t.Run("validation failure does not persist", func(t *testing.T) {
		repo := &mockQuizRepo{}
		svc := newTestQuizService(repo, now)

		_, err := svc.Submit(context.Background(), "user1", &dto.SubmitQuizRequest{Answers: []int{1, 2, 3}})
		require.Error(t, err)
		var validationErrs domain.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
		assert.Zero(t, repo.insertCalls)
	})

	t.Run("missing user does not persist", func(t *testing.T) {
		repo := &mockQuizRepo{}
		svc := newTestQuizService(repo, now)

		_, err := svc.Submit(context.Background(), "", &dto.SubmitQuizRequest{Answers: make([]int, 10)})
		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
		assert.Zero(t, repo.insertCalls)
	})

	t.Run("persistence failure surfaces as save failed", func(t *testing.T) {
		repo := &mockQuizRepo{
			InsertFunc: func(ctx context.Context, quiz *domain.DailyQuiz) error {
				return errors.New("ORA-12170: connect timeout")
			},
		}
		svc := newTestQuizService(repo, now)

		_, err := svc.Submit(context.Background(), "user1", &dto.SubmitQuizRequest{Answers: make([]int, 10)})
		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeSaveFailed, domainErr.Code)
		assert.Equal(t, "Failed to save. Please try again.", domainErr.Message)
	})

	t.Run("second submission on the same day is allowed", func(t *testing.T) {
		repo := &mockQuizRepo{}
		svc := newTestQuizService(repo, now)

		for i := 0; i < 2; i++ {
			_, err := svc.Submit(context.Background(), "user1", &dto.SubmitQuizRequest{Answers: make([]int, 10)})
			require.NoError(t, err)
		}
		assert.Equal(t, 2, repo.insertCalls)
	})
}

func TestQuizServiceGetToday(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	t.Run("not taken", func(t *testing.T) {
		repo := &mockQuizRepo{
			GetLatestByUserAndDateFunc: func(ctx context.Context, userID, date string) (*domain.DailyQuiz, error) {
				assert.Equal(t, "2025-06-15", date)
				return nil, nil
			},
		}
		svc := newTestQuizService(repo, now)
		resp, err := svc.GetToday(context.Background(), "user1")
		require.NoError(t, err)
		assert.False(t, resp.Taken)
		assert.Nil(t, resp.Quiz)
	})

	t.Run("taken", func(t *testing.T) {
		repo := &mockQuizRepo{
			GetLatestByUserAndDateFunc: func(ctx context.Context, userID, date string) (*domain.DailyQuiz, error) {
				return &domain.DailyQuiz{ID: "q1", UserID: userID, Date: date, Score: 30, Category: domain.CategoryHigh}, nil
			},
		}
		svc := newTestQuizService(repo, now)
		resp, err := svc.GetToday(context.Background(), "user1")
		require.NoError(t, err)
		assert.True(t, resp.Taken)
		require.NotNil(t, resp.Quiz)
		assert.Equal(t, 30, resp.Quiz.Score)
		assert.Equal(t, "/consultation", resp.Quiz.RedirectTo)
	})
}

func TestQuizServiceGetStats(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	repo := &mockQuizRepo{
		GetStatsSinceFunc: func(ctx context.Context, userID, fromDate string) ([]*domain.DailyQuiz, error) {
			assert.Equal(t, "2025-06-08", fromDate)
			// Ascending date and submission order, matching the repository,
			// with two check-ins on the 14th.
			return []*domain.DailyQuiz{
				{Date: "2025-06-12", Score: 20, Category: domain.CategoryMedium},
				{Date: "2025-06-14", Score: 12, Category: domain.CategoryLow},
				{Date: "2025-06-14", Score: 28, Category: domain.CategoryHigh},
				{Date: "2025-06-15", Score: 10, Category: domain.CategoryLow},
			}, nil
		},
	}
	svc := newTestQuizService(repo, now)

	resp, err := svc.GetStats(context.Background(), "user1", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Days)
	require.Len(t, resp.Points, 3)

	// Oldest first, and the 14th keeps only its latest score.
	assert.Equal(t, "2025-06-12", resp.Points[0].Date)
	assert.Equal(t, "2025-06-14", resp.Points[1].Date)
	assert.Equal(t, 28, resp.Points[1].Score)
	assert.Equal(t, "high", resp.Points[1].Category)
	assert.Equal(t, "2025-06-15", resp.Points[2].Date)
}

func TestQuizServiceGetHistoryLimits(t *testing.T) {
	var gotLimit int
	repo := &mockQuizRepo{
		GetHistoryFunc: func(ctx context.Context, userID string, limit int) ([]*domain.DailyQuiz, error) {
			gotLimit = limit
			return nil, nil
		},
	}
	svc := newTestQuizService(repo, time.Now())

	_, err := svc.GetHistory(context.Background(), "user1", 0)
	require.NoError(t, err)
	assert.Equal(t, defaultHistoryLimit, gotLimit)

	_, err = svc.GetHistory(context.Background(), "user1", 500)
	require.NoError(t, err)
	assert.Equal(t, maxHistoryLimit, gotLimit)
}
