package dto

import "time"

// SaveJournalRequest creates or updates today's journal entry.
// @Description Request body for saving a journal entry
type SaveJournalRequest struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
	Mood    int    `json:"mood"` // 1-5
}

// JournalResponse is one journal entry.
type JournalResponse struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	Mood      int       `json:"mood"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaveJournalResponse reports the saved entry and whether it was an update.
type SaveJournalResponse struct {
	Journal JournalResponse `json:"journal"`
	Updated bool            `json:"updated"`
}

// JournalHistoryResponse lists past entries, newest first.
type JournalHistoryResponse struct {
	Journals []JournalResponse `json:"journals"`
}
