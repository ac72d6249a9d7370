package validation

import (
	"testing"

	"tenang/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestValidateQuizAnswers(t *testing.T) {
	v := NewValidator()

	t.Run("valid answers", func(t *testing.T) {
		errs := v.ValidateQuizAnswers([]int{0, 1, 2, 3, 4, 0, 1, 2, 3, 4})
		assert.Empty(t, errs)
	})

	t.Run("missing answers", func(t *testing.T) {
		errs := v.ValidateQuizAnswers(nil)
		assert.Len(t, errs, 1)
		assert.Equal(t, domain.CodeMissingField, errs[0].Code)
	})

	t.Run("wrong length", func(t *testing.T) {
		errs := v.ValidateQuizAnswers([]int{1, 2, 3})
		assert.Len(t, errs, 1)
		assert.Equal(t, domain.CodeInvalidAnswer, errs[0].Code)
		assert.Contains(t, errs[0].Message, "exactly 10")
	})

	t.Run("element above range names 1-based position", func(t *testing.T) {
		errs := v.ValidateQuizAnswers([]int{0, 0, 5, 0, 0, 0, 0, 0, 0, 0})
		assert.Len(t, errs, 1)
		assert.Equal(t, domain.CodeOutOfRange, errs[0].Code)
		assert.Equal(t, "answers[3]", errs[0].Field)
	})

	t.Run("element below range", func(t *testing.T) {
		errs := v.ValidateQuizAnswers([]int{0, 0, 0, 0, 0, 0, 0, 0, 0, -1})
		assert.Len(t, errs, 1)
		assert.Equal(t, "answers[10]", errs[0].Field)
	})

	t.Run("first failure wins", func(t *testing.T) {
		// Wrong length and an out-of-range value: only the length error is reported.
		errs := v.ValidateQuizAnswers([]int{9, 9, 9})
		assert.Len(t, errs, 1)
		assert.Equal(t, domain.CodeInvalidAnswer, errs[0].Code)
	})

	t.Run("boundary values are accepted", func(t *testing.T) {
		errs := v.ValidateQuizAnswers([]int{0, 4, 0, 4, 0, 4, 0, 4, 0, 4})
		assert.Empty(t, errs)
	})
}

func TestValidateRegistration(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		email     string
		password  string
		wantCodes []domain.ErrorCode
	}{
		{"valid", "user@example.com", "secret123", nil},
		{"missing email", "", "secret123", []domain.ErrorCode{domain.CodeMissingField}},
		{"bad email format", "not-an-email", "secret123", []domain.ErrorCode{domain.CodeInvalidFormat}},
		{"short password", "user@example.com", "abc", []domain.ErrorCode{domain.CodeOutOfRange}},
		{"both invalid", "", "", []domain.ErrorCode{domain.CodeMissingField, domain.CodeMissingField}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateRegistration(tt.email, tt.password)
			assert.Len(t, errs, len(tt.wantCodes))
			for i, code := range tt.wantCodes {
				assert.Equal(t, code, errs[i].Code)
			}
		})
	}
}

func TestValidateJournalEntry(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateJournalEntry("today was fine", 3))

	errs := v.ValidateJournalEntry("   ", 3)
	assert.Len(t, errs, 1)
	assert.Equal(t, "content", errs[0].Field)

	errs = v.ValidateJournalEntry("content", 0)
	assert.Len(t, errs, 1)
	assert.Equal(t, domain.CodeOutOfRange, errs[0].Code)

	errs = v.ValidateJournalEntry("", 6)
	assert.Len(t, errs, 2)
}
