package domain

import (
	"fmt"
	"time"
)

// The daily quiz is the PSS-10 (Perceived Stress Scale): ten questions
// answered on a 0-4 scale. Questions 4, 5, 7 and 8 are positively worded, so
// their raw answers are inverted (4 - value) before summation.

const (
	AnswerCount    = 10
	MinAnswerValue = 0
	MaxAnswerValue = 4

	MinScore = 0
	MaxScore = AnswerCount * MaxAnswerValue
)

// Category classifies a total score into a stress level.
type Category string

const (
	CategoryLow    Category = "low"    // score 0-13
	CategoryMedium Category = "medium" // score 14-26
	CategoryHigh   Category = "high"   // score 27-40
)

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryLow, CategoryMedium, CategoryHigh:
		return true
	}
	return false
}

// reverseScored is the single source of truth for which question IDs are
// inverted during scoring. Question IDs are 1-based.
var reverseScored = map[int]bool{
	4: true,
	5: true,
	7: true,
	8: true,
}

// IsReverseScored reports whether the question with the given 1-based ID is
// inverted during scoring.
func IsReverseScored(questionID int) bool {
	return reverseScored[questionID]
}

// QuizQuestion is static reference data for one PSS-10 item.
type QuizQuestion struct {
	ID            int    `json:"id"`
	Text          string `json:"text"`
	ReverseScored bool   `json:"reverse_scored"`
}

var quizQuestions = []QuizQuestion{
	{1, "In the last month, how often have you been upset because of something that happened unexpectedly?", false},
	{2, "In the last month, how often have you felt that you were unable to control the important things in your life?", false},
	{3, "In the last month, how often have you felt nervous and stressed?", false},
	{4, "In the last month, how often have you felt confident about your ability to handle your personal problems?", true},
	{5, "In the last month, how often have you felt that things were going your way?", true},
	{6, "In the last month, how often have you found that you could not cope with all the things that you had to do?", false},
	{7, "In the last month, how often have you been able to control irritations in your life?", true},
	{8, "In the last month, how often have you felt that you were on top of things?", true},
	{9, "In the last month, how often have you been angered because of things that were outside of your control?", false},
	{10, "In the last month, how often have you felt difficulties were piling up so high that you could not overcome them?", false},
}

// Questions returns the ten PSS-10 questions in order.
func Questions() []QuizQuestion {
	out := make([]QuizQuestion, len(quizQuestions))
	copy(out, quizQuestions)
	return out
}

// AnswerScore returns the contribution of a single answer, applying reverse
// scoring when the question calls for it. questionID is 1-based.
func AnswerScore(questionID, answer int) int {
	if IsReverseScored(questionID) {
		return MaxAnswerValue - answer
	}
	return answer
}

// Score computes the total PSS-10 score from ten answers in question order.
// The validator enforces answer shape before this is reached; the length
// check here is an invariant guard, not a normal-path outcome.
func Score(answers []int) (int, error) {
	if len(answers) != AnswerCount {
		return 0, NewInvalidInputError(fmt.Sprintf("quiz must have exactly %d answers", AnswerCount))
	}
	total := 0
	for i, answer := range answers {
		total += AnswerScore(i+1, answer)
	}
	return total, nil
}

// Categorize maps a total score onto a category. The bands are closed and
// non-overlapping: [0,13] low, [14,26] medium, [27,40] high.
func Categorize(score int) Category {
	switch {
	case score >= 27:
		return CategoryHigh
	case score >= 14:
		return CategoryMedium
	default:
		return CategoryLow
	}
}

var recommendations = map[Category][]string{
	CategoryLow: {
		"Practice deep breathing relaxation",
		"Read mental health tips and articles",
		"Keep writing your daily journal",
	},
	CategoryMedium: {
		"Practice mindfulness (meditation, deep breathing, positive affirmations)",
		"Read mental health tips and articles",
		"Consider consulting a mental health professional",
	},
	CategoryHigh: {
		"Practice mindfulness (meditation, deep breathing, positive affirmations)",
		"Read mental health tips and articles",
		"Seek professional help as soon as possible",
	},
}

// Recommendations returns the fixed, ordered recommendation list for a
// category. The high list ends with the seek-professional-help entry, which
// consumers render with special emphasis.
func Recommendations(category Category) []string {
	recs, ok := recommendations[category]
	if !ok {
		return nil
	}
	out := make([]string, len(recs))
	copy(out, recs)
	return out
}

// Route paths the scoring outcome maps onto.
const (
	ConsultationRoute = "/consultation"
	JournalRoute      = "/journal"
	QuizRoute         = "/quiz"
	LoginRoute        = "/login"
)

// RedirectTarget returns where a user should be sent after completing the
// quiz: high-stress users go to the consultation flow, everyone else to the
// journal flow.
func RedirectTarget(category Category) string {
	if category == CategoryHigh {
		return ConsultationRoute
	}
	return JournalRoute
}

// DailyQuiz is one submitted, scored quiz. Rows are append-only: a user may
// submit more than once per day and readers always pick the most recent row
// by CreatedAt rather than assuming a single row exists.
type DailyQuiz struct {
	ID        string
	UserID    string
	Date      string // calendar day, YYYY-MM-DD
	Answers   []int
	Score     int
	Category  Category
	CreatedAt time.Time
}

// NewDailyQuiz scores the answers and builds a DailyQuiz for persistence.
// Answers must already have passed validation.
func NewDailyQuiz(userID string, answers []int, now time.Time) (*DailyQuiz, error) {
	score, err := Score(answers)
	if err != nil {
		return nil, err
	}
	return &DailyQuiz{
		UserID:    userID,
		Date:      now.Format("2006-01-02"),
		Answers:   answers,
		Score:     score,
		Category:  Categorize(score),
		CreatedAt: now,
	}, nil
}
