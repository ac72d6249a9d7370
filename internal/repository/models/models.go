package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// IntSlice stores an integer array as a JSON string column. Quiz answers are
// ten small integers, so a VARCHAR2 JSON payload is plenty.
type IntSlice []int

// Value implements the driver.Valuer interface
func (s IntSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *IntSlice) Scan(value interface{}) error {
	if value == nil {
		*s = IntSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("IntSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = IntSlice{}
		return nil
	}

	return json.Unmarshal(bytesToParse, s)
}

// StringSlice stores a string array as a JSON string column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}

	return json.Unmarshal(bytesToParse, s)
}

// User represents a user in the system.
type User struct {
	ID                    string         `db:"ID"`                      // ULID
	Email                 string         `db:"EMAIL"`                   // Unique login identifier
	Name                  sql.NullString `db:"NAME"`                    // Display name
	PasswordHash          sql.NullString `db:"PASSWORD_HASH"`           // bcrypt hash; NULL for OAuth-only accounts
	GoogleID              sql.NullString `db:"GOOGLE_ID"`               // Google's unique identifier, if linked
	Role                  string         `db:"ROLE"`                    // "user" or "admin"
	ProfilePhotoURL       sql.NullString `db:"PROFILE_PHOTO_URL"`       // URL of the user's profile picture
	EncryptedAccessToken  sql.NullString `db:"ENCRYPTED_ACCESS_TOKEN"`  // Encrypted Google OAuth access token
	EncryptedRefreshToken sql.NullString `db:"ENCRYPTED_REFRESH_TOKEN"` // Encrypted Google OAuth refresh token
	TokenExpiresAt        sql.NullTime   `db:"TOKEN_EXPIRES_AT"`        // Expiry time for the access token
	CreatedAt             time.Time      `db:"CREATED_AT"`
	UpdatedAt             time.Time      `db:"UPDATED_AT"`
	DeletedAt             sql.NullTime   `db:"DELETED_AT"` // Soft deletion marker
}

// DailyQuiz is one scored PSS-10 submission. Append-only: rows are never
// updated or deleted in the normal flow, and a user can have several rows on
// the same quiz date.
type DailyQuiz struct {
	ID        string    `db:"ID"`        // ULID
	UserID    string    `db:"USER_ID"`   // Foreign key to users
	QuizDate  string    `db:"QUIZ_DATE"` // Calendar day, YYYY-MM-DD
	Answers   IntSlice  `db:"ANSWERS"`   // Ten answers, each 0-4
	Score     int       `db:"SCORE"`     // 0-40
	Category  string    `db:"CATEGORY"`  // low / medium / high
	CreatedAt time.Time `db:"CREATED_AT"`
}

// Journal is a daily journal entry, one row per user per day.
type Journal struct {
	ID        string         `db:"ID"` // ULID
	UserID    string         `db:"USER_ID"`
	EntryDate string         `db:"ENTRY_DATE"` // Calendar day, YYYY-MM-DD
	Title     sql.NullString `db:"TITLE"`
	Content   string         `db:"CONTENT"`
	Mood      int            `db:"MOOD"` // 1-5
	CreatedAt time.Time      `db:"CREATED_AT"`
	UpdatedAt time.Time      `db:"UPDATED_AT"`
}

// Content is an article or audio track served on the recommendation pages.
type Content struct {
	ID             string         `db:"ID"`   // ULID
	Kind           string         `db:"KIND"` // "article" or "audio"
	Title          string         `db:"TITLE"`
	Slug           string         `db:"SLUG"`
	Body           sql.NullString `db:"BODY"`      // Article text
	MediaURL       sql.NullString `db:"MEDIA_URL"` // Audio file location
	Tags           StringSlice    `db:"TAGS"`
	RecommendedFor string         `db:"RECOMMENDED_FOR"` // low / medium / high / all
	Published      bool           `db:"PUBLISHED"`
	CreatedAt      time.Time      `db:"CREATED_AT"`
	UpdatedAt      time.Time      `db:"UPDATED_AT"`
}
