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

func setupContentTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func contentRows(t *testing.T, slugs ...string) *sqlmock.Rows {
	t.Helper()
	rows := sqlmock.NewRows([]string{"ID", "KIND", "TITLE", "SLUG", "BODY", "MEDIA_URL", "TAGS", "RECOMMENDED_FOR", "PUBLISHED", "CREATED_AT", "UPDATED_AT"})
	now := time.Now()
	for _, slug := range slugs {
		rows.AddRow("c_"+slug, "article", "Title "+slug, slug, "body", "", `["stress"]`, "high", true, now, now)
	}
	return rows
}

func TestToDomainContent(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	model := &models.Content{
		ID:             "content1",
		Kind:           "audio",
		Title:          "Breathing exercise",
		Slug:           "breathing-exercise",
		Tags:           models.StringSlice{"breathing", "calm"},
		RecommendedFor: "medium",
		Published:      true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	content := toDomainContent(model)
	require.NotNil(t, content)
	assert.Equal(t, domain.ContentAudio, content.Kind)
	assert.Equal(t, []string{"breathing", "calm"}, content.Tags)
	assert.Equal(t, domain.RecommendedMedium, content.RecommendedFor)

	assert.Nil(t, toDomainContent(nil))
}

func TestSQLXContentRepository_ListPublishedByState(t *testing.T) {
	db, mock := setupContentTestDB(t)
	defer db.Close()
	repo := NewSQLXContentRepository(db)

	t.Run("concrete state filters by state plus all", func(t *testing.T) {
		mock.ExpectPrepare(`recommended_for IN \(.+, 'all'\)`).
			ExpectQuery().
			WillReturnRows(contentRows(t, "grounding-techniques"))

		contents, err := repo.ListPublishedByState(context.Background(), domain.ContentArticle, domain.RecommendedHigh)
		require.NoError(t, err)
		require.Len(t, contents, 1)
		assert.Equal(t, "grounding-techniques", contents[0].Slug)
	})

	t.Run("all state drops the state filter", func(t *testing.T) {
		mock.ExpectPrepare(`AND published = 1\s+ORDER BY updated_at DESC`).
			ExpectQuery().
			WillReturnRows(contentRows(t, "grounding-techniques", "sleep-hygiene"))

		contents, err := repo.ListPublishedByState(context.Background(), domain.ContentArticle, domain.RecommendedAll)
		require.NoError(t, err)
		assert.Len(t, contents, 2)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
