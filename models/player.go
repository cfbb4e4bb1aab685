package models

import "time"

// Player is a leaderboard entry. KD and Earnings are admin-entered display
// strings ("2.4", "€12.500"), not computed aggregates. PowerRank orders the
// public leaderboard.
type Player struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Nickname    string    `json:"nickname" db:"nickname"`
	Role        string    `json:"role" db:"role"`
	Team        string    `json:"team" db:"team"`
	ImageKey    *string   `json:"-" db:"image_key"`
	ImageURL    *string   `json:"image_url,omitempty" db:"-"`
	Wins        int       `json:"wins" db:"wins"`
	KD          string    `json:"kd" db:"kd"`
	Tournaments int       `json:"tournaments" db:"tournaments"`
	PowerRank   int       `json:"pr" db:"power_rank"`
	Earnings    string    `json:"earnings" db:"earnings"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
