package repository

import (
	"context"
	"testing"
	"time"

	"tenang/internal/domain"
	"tenang/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupQuizTestDB creates a new sqlx.DB instance and sqlmock for daily quiz repository testing.
func setupQuizTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

// --- Tests for converter functions ---

func TestToDomainDailyQuiz(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	model := &models.DailyQuiz{
		ID:        "quiz1",
		UserID:    "user1",
		QuizDate:  "2025-03-14",
		Answers:   models.IntSlice{0, 1, 2, 3, 4, 0, 1, 2, 3, 4},
		Score:     18,
		Category:  "medium",
		CreatedAt: now,
	}

	quiz := toDomainDailyQuiz(model)
	require.NotNil(t, quiz)
	assert.Equal(t, model.ID, quiz.ID)
	assert.Equal(t, model.QuizDate, quiz.Date)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 0, 1, 2, 3, 4}, quiz.Answers)
	assert.Equal(t, domain.CategoryMedium, quiz.Category)

	assert.Nil(t, toDomainDailyQuiz(nil))
}

func TestFromDomainDailyQuiz(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	quiz := &domain.DailyQuiz{
		ID:        "quiz1",
		UserID:    "user1",
		Date:      "2025-03-14",
		Answers:   []int{4, 4, 4, 0, 0, 4, 0, 0, 4, 4},
		Score:     40,
		Category:  domain.CategoryHigh,
		CreatedAt: now,
	}

	model := fromDomainDailyQuiz(quiz)
	require.NotNil(t, model)
	assert.Equal(t, quiz.Date, model.QuizDate)
	assert.Equal(t, "high", model.Category)
	assert.Equal(t, models.IntSlice(quiz.Answers), model.Answers)

	assert.Nil(t, fromDomainDailyQuiz(nil))
}

// --- Tests against sqlmock ---

func TestSQLXDailyQuizRepository_Insert(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewSQLXDailyQuizRepository(db)

	quiz := &domain.DailyQuiz{
		ID:        "01HV0000000000000000000000",
		UserID:    "user1",
		Date:      "2025-03-14",
		Answers:   []int{0, 0, 0, 4, 4, 0, 4, 4, 0, 0},
		Score:     0,
		Category:  domain.CategoryLow,
		CreatedAt: time.Now(),
	}

	mock.ExpectExec(`INSERT INTO daily_quizzes`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Insert(context.Background(), quiz)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXDailyQuizRepository_Insert_Error(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewSQLXDailyQuizRepository(db)

	mock.ExpectExec(`INSERT INTO daily_quizzes`).
		WillReturnError(assert.AnError)

	err := repo.Insert(context.Background(), &domain.DailyQuiz{ID: "q1", UserID: "u1"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXDailyQuizRepository_HasQuizSince(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewSQLXDailyQuizRepository(db)
	since := time.Now().Add(-24 * time.Hour)

	t.Run("quiz within window", func(t *testing.T) {
		mock.ExpectPrepare(`SELECT COUNT\(\*\) FROM daily_quizzes`).
			ExpectQuery().
			WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))

		valid, err := repo.HasQuizSince(context.Background(), "user1", since)
		assert.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("no quiz within window", func(t *testing.T) {
		mock.ExpectPrepare(`SELECT COUNT\(\*\) FROM daily_quizzes`).
			ExpectQuery().
			WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))

		valid, err := repo.HasQuizSince(context.Background(), "user1", since)
		assert.NoError(t, err)
		assert.False(t, valid)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXDailyQuizRepository_GetLatestByUserAndDate(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewSQLXDailyQuizRepository(db)
	now := time.Now()

	t.Run("row found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"ID", "USER_ID", "QUIZ_DATE", "ANSWERS", "SCORE", "CATEGORY", "CREATED_AT"}).
			AddRow("quiz1", "user1", "2025-03-14", "[0,1,2,3,4,0,1,2,3,4]", 18, "medium", now)

		mock.ExpectPrepare(`SELECT \* FROM daily_quizzes`).
			ExpectQuery().
			WillReturnRows(rows)

		quiz, err := repo.GetLatestByUserAndDate(context.Background(), "user1", "2025-03-14")
		require.NoError(t, err)
		require.NotNil(t, quiz)
		assert.Equal(t, 18, quiz.Score)
		assert.Equal(t, domain.CategoryMedium, quiz.Category)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 0, 1, 2, 3, 4}, quiz.Answers)
	})

	t.Run("no row is nil, nil", func(t *testing.T) {
		mock.ExpectPrepare(`SELECT \* FROM daily_quizzes`).
			ExpectQuery().
			WillReturnRows(sqlmock.NewRows([]string{"ID"}))

		quiz, err := repo.GetLatestByUserAndDate(context.Background(), "user1", "2025-03-15")
		assert.NoError(t, err)
		assert.Nil(t, quiz)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXDailyQuizRepository_CountByCategoryOnDate(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewSQLXDailyQuizRepository(db)

	mock.ExpectPrepare(`SELECT COUNT\(\*\) FROM daily_quizzes`).
		ExpectQuery().
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(7))

	count, err := repo.CountByCategoryOnDate(context.Background(), "2025-03-14", domain.CategoryHigh)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
