package validation

import (
	"fmt"
	"regexp"
	"strings"

	"tenang/internal/domain"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateQuizAnswers checks a submitted answer set before any scoring or
// persistence happens. Rules run in order and the first failure wins:
// the answers must be present (a non-array JSON value never reaches here,
// the body decoder rejects it), exactly ten long, and every element must sit
// in [0,4]. Range errors name the 1-based question position.
func (v *Validator) ValidateQuizAnswers(answers []int) domain.ValidationErrors {
	if answers == nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("answers")}
	}

	if len(answers) != domain.AnswerCount {
		return domain.ValidationErrors{domain.ValidationError{
			Code:    domain.CodeInvalidAnswer,
			Field:   "answers",
			Message: fmt.Sprintf("quiz must have exactly %d answers, got %d", domain.AnswerCount, len(answers)),
		}}
	}

	for i, answer := range answers {
		if answer < domain.MinAnswerValue || answer > domain.MaxAnswerValue {
			return domain.ValidationErrors{domain.NewOutOfRangeError(
				fmt.Sprintf("answers[%d]", i+1),
				answer,
				domain.MinAnswerValue,
				domain.MaxAnswerValue,
			)}
		}
	}

	return nil
}

// ValidateRegistration validates a registration request.
func (v *Validator) ValidateRegistration(email, password string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(email) == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	} else if !isValidEmail(email) {
		errors = append(errors, domain.NewInvalidFormatError("email", email))
	}

	if password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	} else if len(password) < 6 {
		errors = append(errors, domain.NewOutOfRangeError("password length", len(password), 6, 72))
	}

	return errors
}

// ValidateJournalEntry validates a journal save request.
func (v *Validator) ValidateJournalEntry(content string, mood int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(content) == "" {
		errors = append(errors, domain.NewMissingFieldError("content"))
	}
	if mood < domain.MinMood || mood > domain.MaxMood {
		errors = append(errors, domain.NewOutOfRangeError("mood", mood, domain.MinMood, domain.MaxMood))
	}

	return errors
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
