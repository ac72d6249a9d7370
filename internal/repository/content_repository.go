package repository

import (
	"context"
	"fmt"

	"tenang/internal/domain"
	"tenang/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// ContentRepository defines read access to the managed articles and audio
// tracks shown on the recommendation pages.
type ContentRepository interface {
	ListPublishedByState(ctx context.Context, kind domain.ContentKind, state domain.RecommendedState) ([]*domain.Content, error)
}

type sqlxContentRepository struct {
	db *sqlx.DB
}

// NewSQLXContentRepository creates a new instance of sqlxContentRepository.
func NewSQLXContentRepository(db *sqlx.DB) ContentRepository {
	return &sqlxContentRepository{db: db}
}

func toDomainContent(m *models.Content) *domain.Content {
	if m == nil {
		return nil
	}
	return &domain.Content{
		ID:             m.ID,
		Kind:           domain.ContentKind(m.Kind),
		Title:          m.Title,
		Slug:           m.Slug,
		Body:           m.Body.String,
		MediaURL:       m.MediaURL.String,
		Tags:           []string(m.Tags),
		RecommendedFor: domain.RecommendedState(m.RecommendedFor),
		Published:      m.Published,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// ListPublishedByState returns published content of the given kind tagged
// for the given stress state. Content tagged "all" is always included, and
// the "all" state itself means no state filter at all.
func (r *sqlxContentRepository) ListPublishedByState(ctx context.Context, kind domain.ContentKind, state domain.RecommendedState) ([]*domain.Content, error) {
	var rows []models.Content
	query := `SELECT * FROM contents
	          WHERE kind = :kind
	            AND published = 1
	            AND recommended_for IN (:state, 'all')
	          ORDER BY updated_at DESC`
	if state == domain.RecommendedAll {
		query = `SELECT * FROM contents
		          WHERE kind = :kind
		            AND published = 1
		          ORDER BY updated_at DESC`
	}

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for ListPublishedByState: %w", err)
	}
	defer stmt.Close()

	args := map[string]interface{}{"kind": string(kind)}
	if state != domain.RecommendedAll {
		args["state"] = string(state)
	}
	err = stmt.SelectContext(ctx, &rows, args)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	contents := make([]*domain.Content, len(rows))
	for i := range rows {
		contents[i] = toDomainContent(&rows[i])
	}
	return contents, nil
}
