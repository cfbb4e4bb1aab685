package models

import "time"

// NewsletterSubscriber is a confirmed mailing list entry. Email is unique.
type NewsletterSubscriber struct {
	ID        int       `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
