package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tenang/internal/domain"
	"tenang/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// DailyQuizRepository defines the interface for scored quiz persistence.
// The table is append-only: there is no update or delete, and no uniqueness
// constraint on (user, date). Readers that want "the" quiz for a day always
// order by created_at and take the newest row.
type DailyQuizRepository interface {
	Insert(ctx context.Context, quiz *domain.DailyQuiz) error
	GetLatestByUserAndDate(ctx context.Context, userID, date string) (*domain.DailyQuiz, error)
	HasQuizSince(ctx context.Context, userID string, since time.Time) (bool, error)
	GetHistory(ctx context.Context, userID string, limit int) ([]*domain.DailyQuiz, error)
	GetStatsSince(ctx context.Context, userID, fromDate string) ([]*domain.DailyQuiz, error)
	GetAllByDate(ctx context.Context, date string, limit int) ([]*domain.DailyQuiz, error)
	CountByCategoryOnDate(ctx context.Context, date string, category domain.Category) (int64, error)
}

type sqlxDailyQuizRepository struct {
	db *sqlx.DB
}

// NewSQLXDailyQuizRepository creates a new instance of sqlxDailyQuizRepository.
func NewSQLXDailyQuizRepository(db *sqlx.DB) DailyQuizRepository {
	return &sqlxDailyQuizRepository{db: db}
}

func toDomainDailyQuiz(m *models.DailyQuiz) *domain.DailyQuiz {
	if m == nil {
		return nil
	}
	return &domain.DailyQuiz{
		ID:        m.ID,
		UserID:    m.UserID,
		Date:      m.QuizDate,
		Answers:   []int(m.Answers),
		Score:     m.Score,
		Category:  domain.Category(m.Category),
		CreatedAt: m.CreatedAt,
	}
}

func fromDomainDailyQuiz(q *domain.DailyQuiz) *models.DailyQuiz {
	if q == nil {
		return nil
	}
	return &models.DailyQuiz{
		ID:        q.ID,
		UserID:    q.UserID,
		QuizDate:  q.Date,
		Answers:   models.IntSlice(q.Answers),
		Score:     q.Score,
		Category:  string(q.Category),
		CreatedAt: q.CreatedAt,
	}
}

// Insert appends a new scored quiz row.
func (r *sqlxDailyQuizRepository) Insert(ctx context.Context, quiz *domain.DailyQuiz) error {
	query := `INSERT INTO daily_quizzes (id, user_id, quiz_date, answers, score, category, created_at)
	          VALUES (:ID, :USER_ID, :QUIZ_DATE, :ANSWERS, :SCORE, :CATEGORY, :CREATED_AT)`

	if _, err := r.db.NamedExecContext(ctx, query, fromDomainDailyQuiz(quiz)); err != nil {
		return fmt.Errorf("failed to insert daily quiz: %w", err)
	}
	return nil
}

// GetLatestByUserAndDate returns the most recent quiz a user submitted on a
// calendar day, or nil, nil when the user has not taken the quiz that day.
func (r *sqlxDailyQuizRepository) GetLatestByUserAndDate(ctx context.Context, userID, date string) (*domain.DailyQuiz, error) {
	var quiz models.DailyQuiz
	query := `SELECT * FROM daily_quizzes
	          WHERE user_id = :user_id AND quiz_date = :quiz_date
	          ORDER BY created_at DESC
	          FETCH FIRST 1 ROWS ONLY`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetLatestByUserAndDate: %w", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, &quiz, map[string]interface{}{"user_id": userID, "quiz_date": date})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest quiz by date: %w", err)
	}
	return toDomainDailyQuiz(&quiz), nil
}

// HasQuizSince reports whether the user submitted any quiz at or after the
// given instant. The access gate's rolling-window validity check runs
// through here on every gated request.
func (r *sqlxDailyQuizRepository) HasQuizSince(ctx context.Context, userID string, since time.Time) (bool, error) {
	var count int64
	query := `SELECT COUNT(*) FROM daily_quizzes
	          WHERE user_id = :user_id AND created_at >= :since`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return false, fmt.Errorf("failed to prepare query for HasQuizSince: %w", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, &count, map[string]interface{}{"user_id": userID, "since": since})
	if err != nil {
		return false, fmt.Errorf("failed to check quiz validity: %w", err)
	}
	return count > 0, nil
}

// GetHistory returns the user's quiz history, newest first.
func (r *sqlxDailyQuizRepository) GetHistory(ctx context.Context, userID string, limit int) ([]*domain.DailyQuiz, error) {
	var rows []models.DailyQuiz
	query := `SELECT * FROM daily_quizzes
	          WHERE user_id = :user_id
	          ORDER BY created_at DESC
	          FETCH FIRST :lim ROWS ONLY`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetHistory: %w", err)
	}
	defer stmt.Close()

	err = stmt.SelectContext(ctx, &rows, map[string]interface{}{"user_id": userID, "lim": limit})
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz history: %w", err)
	}

	quizzes := make([]*domain.DailyQuiz, len(rows))
	for i := range rows {
		quizzes[i] = toDomainDailyQuiz(&rows[i])
	}
	return quizzes, nil
}

// GetStatsSince returns quizzes from fromDate onward in ascending date order,
// the shape chart rendering wants.
func (r *sqlxDailyQuizRepository) GetStatsSince(ctx context.Context, userID, fromDate string) ([]*domain.DailyQuiz, error) {
	var rows []models.DailyQuiz
	query := `SELECT * FROM daily_quizzes
	          WHERE user_id = :user_id AND quiz_date >= :from_date
	          ORDER BY quiz_date ASC, created_at ASC`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetStatsSince: %w", err)
	}
	defer stmt.Close()

	err = stmt.SelectContext(ctx, &rows, map[string]interface{}{"user_id": userID, "from_date": fromDate})
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz stats: %w", err)
	}

	quizzes := make([]*domain.DailyQuiz, len(rows))
	for i := range rows {
		quizzes[i] = toDomainDailyQuiz(&rows[i])
	}
	return quizzes, nil
}

// GetAllByDate returns every user's quizzes for a calendar day, newest first.
// Admin dashboard only.
func (r *sqlxDailyQuizRepository) GetAllByDate(ctx context.Context, date string, limit int) ([]*domain.DailyQuiz, error) {
	var rows []models.DailyQuiz
	query := `SELECT * FROM daily_quizzes
	          WHERE quiz_date = :quiz_date
	          ORDER BY created_at DESC
	          FETCH FIRST :lim ROWS ONLY`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetAllByDate: %w", err)
	}
	defer stmt.Close()

	err = stmt.SelectContext(ctx, &rows, map[string]interface{}{"quiz_date": date, "lim": limit})
	if err != nil {
		return nil, fmt.Errorf("failed to get quizzes by date: %w", err)
	}

	quizzes := make([]*domain.DailyQuiz, len(rows))
	for i := range rows {
		quizzes[i] = toDomainDailyQuiz(&rows[i])
	}
	return quizzes, nil
}

// CountByCategoryOnDate counts how many quizzes landed in a category on a
// calendar day. Admin dashboard only.
func (r *sqlxDailyQuizRepository) CountByCategoryOnDate(ctx context.Context, date string, category domain.Category) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM daily_quizzes
	          WHERE quiz_date = :quiz_date AND category = :category`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare query for CountByCategoryOnDate: %w", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, &count, map[string]interface{}{"quiz_date": date, "category": string(category)})
	if err != nil {
		return 0, fmt.Errorf("failed to count quizzes by category: %w", err)
	}
	return count, nil
}
