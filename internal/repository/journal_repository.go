package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tenang/internal/domain"
	"tenang/internal/repository/models"
	"tenang/internal/util"

	"github.com/jmoiron/sqlx"
)

// JournalRepository defines the interface for journal persistence. Journals
// differ from quizzes: one row per user per day, updated in place.
type JournalRepository interface {
	Create(ctx context.Context, journal *domain.Journal) error
	Update(ctx context.Context, journal *domain.Journal) error
	GetByUserAndDate(ctx context.Context, userID, date string) (*domain.Journal, error)
	GetHistory(ctx context.Context, userID string, limit int) ([]*domain.Journal, error)
}

type sqlxJournalRepository struct {
	db *sqlx.DB
}

// NewSQLXJournalRepository creates a new instance of sqlxJournalRepository.
func NewSQLXJournalRepository(db *sqlx.DB) JournalRepository {
	return &sqlxJournalRepository{db: db}
}

func toDomainJournal(m *models.Journal) *domain.Journal {
	if m == nil {
		return nil
	}
	return &domain.Journal{
		ID:        m.ID,
		UserID:    m.UserID,
		Date:      m.EntryDate,
		Title:     m.Title.String,
		Content:   m.Content,
		Mood:      m.Mood,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromDomainJournal(j *domain.Journal) *models.Journal {
	if j == nil {
		return nil
	}
	return &models.Journal{
		ID:        j.ID,
		UserID:    j.UserID,
		EntryDate: j.Date,
		Title:     util.StringToNullString(j.Title),
		Content:   j.Content,
		Mood:      j.Mood,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// Create inserts a new journal entry.
func (r *sqlxJournalRepository) Create(ctx context.Context, journal *domain.Journal) error {
	query := `INSERT INTO journals (id, user_id, entry_date, title, content, mood, created_at, updated_at)
	          VALUES (:id, :user_id, :entry_date, :title, :content, :mood, :created_at, :updated_at)`

	now := time.Now()
	journal.CreatedAt = now
	journal.UpdatedAt = now

	if _, err := r.db.NamedExecContext(ctx, query, fromDomainJournal(journal)); err != nil {
		return fmt.Errorf("failed to create journal: %w", err)
	}
	return nil
}

// Update rewrites the title, content and mood of an existing entry.
func (r *sqlxJournalRepository) Update(ctx context.Context, journal *domain.Journal) error {
	journal.UpdatedAt = time.Now()

	query := `UPDATE journals SET
	            title = :title,
	            content = :content,
	            mood = :mood,
	            updated_at = :updated_at
	          WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, fromDomainJournal(journal))
	if err != nil {
		return fmt.Errorf("failed to update journal: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// GetByUserAndDate returns the journal entry for a calendar day, or nil, nil.
func (r *sqlxJournalRepository) GetByUserAndDate(ctx context.Context, userID, date string) (*domain.Journal, error) {
	var journal models.Journal
	query := `SELECT * FROM journals WHERE user_id = :user_id AND entry_date = :entry_date`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetByUserAndDate: %w", err)
	}
	defer stmt.Close()

	err = stmt.GetContext(ctx, &journal, map[string]interface{}{"user_id": userID, "entry_date": date})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get journal by date: %w", err)
	}
	return toDomainJournal(&journal), nil
}

// GetHistory returns the user's journal entries, newest first.
func (r *sqlxJournalRepository) GetHistory(ctx context.Context, userID string, limit int) ([]*domain.Journal, error) {
	var rows []models.Journal
	query := `SELECT * FROM journals
	          WHERE user_id = :user_id
	          ORDER BY entry_date DESC
	          FETCH FIRST :lim ROWS ONLY`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetHistory: %w", err)
	}
	defer stmt.Close()

	err = stmt.SelectContext(ctx, &rows, map[string]interface{}{"user_id": userID, "lim": limit})
	if err != nil {
		return nil, fmt.Errorf("failed to get journal history: %w", err)
	}

	journals := make([]*domain.Journal, len(rows))
	for i := range rows {
		journals[i] = toDomainJournal(&rows[i])
	}
	return journals, nil
}
