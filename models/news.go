package models

import "time"

// NewsItem is a published article. Date is the display string shown on the
// card (e.g. "15 Gen 2024"), distinct from the record timestamps.
type NewsItem struct {
	ID        int       `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Excerpt   string    `json:"excerpt" db:"excerpt"`
	Content   *string   `json:"content,omitempty" db:"content"`
	Date      string    `json:"date" db:"date"`
	Category  string    `json:"category" db:"category"`
	ImageKey  *string   `json:"-" db:"image_key"`
	ImageURL  *string   `json:"image_url,omitempty" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
