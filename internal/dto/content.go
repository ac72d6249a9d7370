package dto

import "time"

// ContentItem is one article or audio track in a recommendation list.
type ContentItem struct {
	ID             string   `json:"id"`
	Kind           string   `json:"kind"`
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	Body           string   `json:"body,omitempty"`
	MediaURL       string   `json:"media_url,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	RecommendedFor string   `json:"recommended_for"`
}

// ContentListResponse lists recommended content for a stress state.
type ContentListResponse struct {
	State string        `json:"state"`
	Items []ContentItem `json:"items"`
}

// AdminQuizItem is one scored quiz in the admin views.
type AdminQuizItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	Score     int       `json:"score"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminQuizListResponse lists quizzes for the admin dashboard.
type AdminQuizListResponse struct {
	Quizzes []AdminQuizItem `json:"quizzes"`
}

// AdminDashboardResponse aggregates today's quizzes by category.
type AdminDashboardResponse struct {
	Date   string `json:"date"`
	Low    int64  `json:"low"`
	Medium int64  `json:"medium"`
	High   int64  `json:"high"`
	Total  int64  `json:"total"`
}
