package domain

import "time"

const (
	MinMood = 1
	MaxMood = 5
)

// Journal is a daily journal entry. Unlike quizzes, journals are one row per
// user per day: saving again on the same day updates the existing entry.
type Journal struct {
	ID        string
	UserID    string
	Date      string // calendar day, YYYY-MM-DD
	Title     string
	Content   string
	Mood      int // 1-5
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the journal entry before persistence.
func (j *Journal) Validate() error {
	var errs ValidationErrors
	if j.Content == "" {
		errs = append(errs, NewMissingFieldError("content"))
	}
	if j.Mood < MinMood || j.Mood > MaxMood {
		errs = append(errs, NewOutOfRangeError("mood", j.Mood, MinMood, MaxMood))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
