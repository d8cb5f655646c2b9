package model

import (
	"time"

	"shukuma/webapp/internal/domain"
)

type JournalEntry struct {
	ID        string      `json:"_id"`
	UserID    string      `json:"userId"`
	Date      time.Time   `json:"date"`
	Title     string      `json:"title,omitempty"`
	Content   string      `json:"content"`
	Mood      domain.Mood `json:"mood,omitempty"`
	Tags      []string    `json:"tags,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// JournalRequest is used for both create and update; Date defaults to today when empty.
type JournalRequest struct {
	Date    string      `json:"date"` // YYYY-MM-DD or RFC 3339
	Title   string      `json:"title"`
	Content string      `json:"content" binding:"required"`
	Mood    domain.Mood `json:"mood" binding:"omitempty,oneof=great good okay bad terrible"`
	Tags    []string    `json:"tags"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type JournalPage struct {
	Journals   []JournalEntry `json:"journals"`
	Pagination Pagination     `json:"pagination"`
}
