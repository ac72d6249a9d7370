package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"tenang/internal/config"
	"tenang/internal/database"
	"tenang/internal/domain"
	"tenang/internal/logger"
	"tenang/internal/repository"
	"tenang/internal/repository/models"
	"tenang/internal/util"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const defaultSeedFile = "configs/seed_data/initial_contents.json"

type seedContent struct {
	Kind           string   `json:"kind"`
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	Body           string   `json:"body,omitempty"`
	MediaURL       string   `json:"media_url,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	RecommendedFor string   `json:"recommended_for"`
}

func main() {
	seedFile := flag.String("file", defaultSeedFile, "path to the content seed file")
	adminEmail := flag.String("admin-email", os.Getenv("SEED_ADMIN_EMAIL"), "email for the bootstrap admin account")
	adminPassword := flag.String("admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "password for the bootstrap admin account")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting initial data seeding process...")
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if *adminEmail != "" && *adminPassword != "" {
		if err := seedAdmin(ctx, db, *adminEmail, *adminPassword); err != nil {
			log.Fatal("Failed to seed admin account", zap.Error(err))
		}
		log.Info("Admin account ready", zap.String("email", *adminEmail))
	} else {
		log.Info("Skipping admin account seeding: no credentials provided")
	}

	count, err := seedContents(ctx, db, *seedFile)
	if err != nil {
		log.Fatal("Failed to seed contents", zap.Error(err))
	}
	log.Info("Content seeding complete", zap.Int("inserted", count))
}

func seedAdmin(ctx context.Context, db *sqlx.DB, email, password string) error {
	userRepo := repository.NewSQLXUserRepository(db)

	existing, err := userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}
	if existing != nil {
		if existing.Role == string(domain.RoleAdmin) {
			return nil
		}
		existing.Role = string(domain.RoleAdmin)
		existing.UpdatedAt = time.Now()
		return userRepo.UpdateUser(ctx, existing)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	return userRepo.CreateUser(ctx, &models.User{
		ID:           util.NewULID(),
		Email:        email,
		Name:         util.StringToNullString("Administrator"),
		PasswordHash: util.StringToNullString(string(hash)),
		Role:         string(domain.RoleAdmin),
	})
}

func seedContents(ctx context.Context, db *sqlx.DB, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	var seeds []seedContent
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return 0, fmt.Errorf("failed to parse seed file: %w", err)
	}

	insertQuery := `INSERT INTO contents (
		id, kind, title, slug, body, media_url, tags, recommended_for, published, created_at, updated_at
	) VALUES (
		:id, :kind, :title, :slug, :body, :media_url, :tags, :recommended_for, :published, :created_at, :updated_at
	)`
	existsQuery := `SELECT COUNT(*) FROM contents WHERE slug = :slug`

	inserted := 0
	for _, seed := range seeds {
		stmt, err := db.PrepareNamedContext(ctx, existsQuery)
		if err != nil {
			return inserted, fmt.Errorf("failed to prepare exists query: %w", err)
		}
		var count int
		err = stmt.GetContext(ctx, &count, map[string]interface{}{"slug": seed.Slug})
		stmt.Close()
		if err != nil {
			return inserted, fmt.Errorf("failed to check existing slug %s: %w", seed.Slug, err)
		}
		if count > 0 {
			continue
		}

		now := time.Now()
		row := models.Content{
			ID:             util.NewULID(),
			Kind:           seed.Kind,
			Title:          seed.Title,
			Slug:           seed.Slug,
			Body:           util.StringToNullString(seed.Body),
			MediaURL:       util.StringToNullString(seed.MediaURL),
			Tags:           models.StringSlice(seed.Tags),
			RecommendedFor: seed.RecommendedFor,
			Published:      true,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if _, err := db.NamedExecContext(ctx, insertQuery, row); err != nil {
			return inserted, fmt.Errorf("failed to insert content %s: %w", seed.Slug, err)
		}
		inserted++
	}
	return inserted, nil
}
