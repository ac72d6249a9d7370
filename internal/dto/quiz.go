package dto

import "time"

// QuestionResponse is one PSS-10 question as served to the quiz page.
// The reverse-scoring flag stays server side; clients never need it.
type QuestionResponse struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// QuestionsResponse lists the ten questions in order.
type QuestionsResponse struct {
	Questions []QuestionResponse `json:"questions"`
}

// SubmitQuizRequest is the submission entry point payload.
// @Description Request body for submitting the daily quiz
type SubmitQuizRequest struct {
	Answers []int `json:"answers"`
}

// QuizResultResponse is returned after a successful submission.
// @Description Scored quiz result
type QuizResultResponse struct {
	ID              string   `json:"id"`
	Score           int      `json:"score"`
	Category        string   `json:"category"`
	Recommendations []string `json:"recommendations"`
	RedirectTo      string   `json:"redirect_to"`
}

// QuizHistoryItem is one entry in a user's quiz history.
type QuizHistoryItem struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Score     int       `json:"score"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// QuizHistoryResponse lists past quizzes, newest first.
type QuizHistoryResponse struct {
	Quizzes []QuizHistoryItem `json:"quizzes"`
}

// TodayQuizResponse reports whether the user already took today's quiz and,
// if so, the most recent result.
type TodayQuizResponse struct {
	Taken bool                `json:"taken"`
	Quiz  *QuizResultResponse `json:"quiz,omitempty"`
}

// QuizStatsPoint is one day's data point for the stats chart.
type QuizStatsPoint struct {
	Date     string `json:"date"`
	Score    int    `json:"score"`
	Category string `json:"category"`
}

// QuizStatsResponse is the trailing-window stats series, oldest first.
type QuizStatsResponse struct {
	Days   int              `json:"days"`
	Points []QuizStatsPoint `json:"points"`
}
