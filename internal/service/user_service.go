package service

import (
	"context"
	"time"

	"tenang/internal/domain"
	"tenang/internal/dto"
	"tenang/internal/repository"

	"golang.org/x/sync/errgroup"
)

// UserService covers user profile reads and the admin views.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error)
	GetDashboard(ctx context.Context, date string) (*dto.AdminDashboardResponse, error)
	ListQuizzesByDate(ctx context.Context, date string, limit int) (*dto.AdminQuizListResponse, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepository
	quizRepo repository.DailyQuizRepository
	now      func() time.Time
}

const defaultAdminListLimit = 100

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo repository.UserRepository, quizRepo repository.DailyQuizRepository) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		quizRepo: quizRepo,
		now:      time.Now,
	}
}

// GetProfile returns the authenticated user's profile.
func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user not found")
	}
	return &dto.UserProfileResponse{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name.String,
		Role:            user.Role,
		ProfilePhotoURL: user.ProfilePhotoURL.String,
		CreatedAt:       user.CreatedAt,
	}, nil
}

// GetDashboard aggregates one day's quizzes by category. The three counts
// are independent queries, so they run concurrently.
func (s *userServiceImpl) GetDashboard(ctx context.Context, date string) (*dto.AdminDashboardResponse, error) {
	if date == "" {
		date = s.now().Format("2006-01-02")
	}

	var low, medium, high int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.quizRepo.CountByCategoryOnDate(gctx, date, domain.CategoryLow)
		low = n
		return err
	})
	g.Go(func() error {
		n, err := s.quizRepo.CountByCategoryOnDate(gctx, date, domain.CategoryMedium)
		medium = n
		return err
	})
	g.Go(func() error {
		n, err := s.quizRepo.CountByCategoryOnDate(gctx, date, domain.CategoryHigh)
		high = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.AdminDashboardResponse{
		Date:   date,
		Low:    low,
		Medium: medium,
		High:   high,
		Total:  low + medium + high,
	}, nil
}

// ListQuizzesByDate lists every quiz taken on a day, newest first.
func (s *userServiceImpl) ListQuizzesByDate(ctx context.Context, date string, limit int) (*dto.AdminQuizListResponse, error) {
	if date == "" {
		date = s.now().Format("2006-01-02")
	}
	if limit <= 0 || limit > defaultAdminListLimit {
		limit = defaultAdminListLimit
	}
	quizzes, err := s.quizRepo.GetAllByDate(ctx, date, limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.AdminQuizListResponse{Quizzes: make([]dto.AdminQuizItem, 0, len(quizzes))}
	for _, q := range quizzes {
		resp.Quizzes = append(resp.Quizzes, dto.AdminQuizItem{
			ID:        q.ID,
			UserID:    q.UserID,
			Date:      q.Date,
			Score:     q.Score,
			Category:  string(q.Category),
			CreatedAt: q.CreatedAt,
		})
	}
	return resp, nil
}
