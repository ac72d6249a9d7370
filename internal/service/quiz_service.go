package service

import (
	"context"
	"time"

	"tenang/internal/domain"
	"tenang/internal/dto"
	"tenang/internal/logger"
	"tenang/internal/repository"
	"tenang/internal/validation"

	"go.uber.org/zap"
)

// QuizService defines the interface for the daily stress check-in.
type QuizService interface {
	GetQuestions(ctx context.Context) *dto.QuestionsResponse
	Submit(ctx context.Context, userID string, req *dto.SubmitQuizRequest) (*dto.QuizResultResponse, error)
	GetToday(ctx context.Context, userID string) (*dto.TodayQuizResponse, error)
	GetHistory(ctx context.Context, userID string, limit int) (*dto.QuizHistoryResponse, error)
	GetStats(ctx context.Context, userID string, days int) (*dto.QuizStatsResponse, error)
}

type quizServiceImpl struct {
	quizRepo  repository.DailyQuizRepository
	validator *validation.Validator
	now       func() time.Time
}

const (
	defaultHistoryLimit = 30
	maxHistoryLimit     = 100
	defaultStatsDays    = 30
)

// NewQuizService creates a new instance of QuizService.
func NewQuizService(quizRepo repository.DailyQuizRepository) QuizService {
	return &quizServiceImpl{
		quizRepo:  quizRepo,
		validator: validation.NewValidator(),
		now:       time.Now,
	}
}

// GetQuestions returns the check-in questionnaire in presentation order.
func (s *quizServiceImpl) GetQuestions(ctx context.Context) *dto.QuestionsResponse {
	questions := domain.Questions()
	resp := &dto.QuestionsResponse{Questions: make([]dto.QuestionResponse, 0, len(questions))}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, dto.QuestionResponse{
			ID:   q.ID,
			Text: q.Text,
		})
	}
	return resp
}

// Submit validates, scores and persists a check-in, then returns the result
// with recommendations and the route the client should navigate to.
func (s *quizServiceImpl) Submit(ctx context.Context, userID string, req *dto.SubmitQuizRequest) (*dto.QuizResultResponse, error) {
	if userID == "" {
		return nil, domain.NewUnauthorizedError("quiz submission requires an authenticated user")
	}
	if errs := s.validator.ValidateQuizAnswers(req.Answers); len(errs) > 0 {
		return nil, errs
	}

	quiz, err := domain.NewDailyQuiz(userID, req.Answers, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.quizRepo.Insert(ctx, quiz); err != nil {
		logger.Get().Error("Failed to insert daily quiz",
			zap.String("userID", userID),
			zap.Error(err))
		return nil, domain.NewSaveFailedError(err)
	}

	logger.Get().Info("Quiz submitted",
		zap.String("userID", userID),
		zap.Int("score", quiz.Score),
		zap.String("category", string(quiz.Category)))

	return &dto.QuizResultResponse{
		ID:              quiz.ID,
		Score:           quiz.Score,
		Category:        string(quiz.Category),
		Recommendations: domain.Recommendations(quiz.Category),
		RedirectTo:      domain.RedirectTarget(quiz.Category),
	}, nil
}

// GetToday reports whether the user already checked in today and, if so,
// returns the most recent result for the day.
func (s *quizServiceImpl) GetToday(ctx context.Context, userID string) (*dto.TodayQuizResponse, error) {
	today := s.now().Format("2006-01-02")
	quiz, err := s.quizRepo.GetLatestByUserAndDate(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return &dto.TodayQuizResponse{Taken: false}, nil
	}
	return &dto.TodayQuizResponse{
		Taken: true,
		Quiz: &dto.QuizResultResponse{
			ID:              quiz.ID,
			Score:           quiz.Score,
			Category:        string(quiz.Category),
			Recommendations: domain.Recommendations(quiz.Category),
			RedirectTo:      domain.RedirectTarget(quiz.Category),
		},
	}, nil
}

// GetHistory returns the user's check-ins, newest first.
func (s *quizServiceImpl) GetHistory(ctx context.Context, userID string, limit int) (*dto.QuizHistoryResponse, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	quizzes, err := s.quizRepo.GetHistory(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.QuizHistoryResponse{Quizzes: make([]dto.QuizHistoryItem, 0, len(quizzes))}
	for _, q := range quizzes {
		resp.Quizzes = append(resp.Quizzes, toHistoryItem(q))
	}
	return resp, nil
}

// GetStats aggregates scores per calendar day over the trailing window.
// Days with multiple check-ins contribute their latest score.
func (s *quizServiceImpl) GetStats(ctx context.Context, userID string, days int) (*dto.QuizStatsResponse, error) {
	if days <= 0 {
		days = defaultStatsDays
	}
	fromDate := s.now().AddDate(0, 0, -days).Format("2006-01-02")
	quizzes, err := s.quizRepo.GetStatsSince(ctx, userID, fromDate)
	if err != nil {
		return nil, err
	}

	// Rows come back in ascending date and submission order, so a later
	// row on the same day overwrites the earlier one.
	idx := make(map[string]int, len(quizzes))
	points := make([]dto.QuizStatsPoint, 0, len(quizzes))
	for _, q := range quizzes {
		point := dto.QuizStatsPoint{
			Date:     q.Date,
			Score:    q.Score,
			Category: string(q.Category),
		}
		if i, ok := idx[q.Date]; ok {
			points[i] = point
			continue
		}
		idx[q.Date] = len(points)
		points = append(points, point)
	}
	return &dto.QuizStatsResponse{Days: days, Points: points}, nil
}

func toHistoryItem(q *domain.DailyQuiz) dto.QuizHistoryItem {
	return dto.QuizHistoryItem{
		ID:        q.ID,
		Date:      q.Date,
		Score:     q.Score,
		Category:  string(q.Category),
		CreatedAt: q.CreatedAt,
	}
}
