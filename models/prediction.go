package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ResponseMap holds a submission's answers keyed by field label, stored as JSONB.
type ResponseMap map[string]string

func (m ResponseMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *ResponseMap) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	case nil:
		*m = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into ResponseMap", src)
	}
}

// Prediction is one user submission to a campaign. The generated ID is the
// stable identity used for admin edit/delete.
type Prediction struct {
	ID          int         `json:"id" db:"id"`
	CampaignID  int         `json:"campaign_id" db:"campaign_id"`
	Username    string      `json:"username" db:"username"`
	TwitchID    string      `json:"twitch_id" db:"twitch_id"`
	Responses   ResponseMap `json:"responses" db:"responses"`
	SubmittedAt time.Time   `json:"submitted_at" db:"submitted_at"`
}
