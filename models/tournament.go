package models

import (
	"time"

	"github.com/fnitalia/community-hub/schedule"
)

// Tournament is a time-boxed event. Status is never stored: it is derived
// from the [StartTime, EndTime) window on every read.
type Tournament struct {
	ID              int             `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	Game            string          `json:"game" db:"game"`
	StartTime       time.Time       `json:"start_time" db:"start_time"`
	EndTime         time.Time       `json:"end_time" db:"end_time"`
	PrizePool       string          `json:"prize_pool" db:"prize_pool"`
	RegistrationURL *string         `json:"registration_url,omitempty" db:"registration_url"`
	LiveURL         *string         `json:"live_url,omitempty" db:"live_url"`
	ImageKey        *string         `json:"-" db:"image_key"`
	ImageURL        *string         `json:"image_url,omitempty" db:"-"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	Status          schedule.Status `json:"status" db:"-"`
}

// Window returns the tournament's time window.
func (t Tournament) Window() schedule.Window {
	return schedule.Window{Start: t.StartTime, End: t.EndTime}
}

// DurationMinutes is derived for display; the window is authoritative.
func (t Tournament) DurationMinutes() int {
	return int(t.Window().Duration() / time.Minute)
}
