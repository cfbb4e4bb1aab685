package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fnitalia/community-hub/schedule"
)

// FieldType enumerates the input kinds an admin can put on a prediction form.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
)

// FieldDescriptor specifies one input of a prediction submission form.
// Label doubles as the response key, so it must be unique within a campaign.
type FieldDescriptor struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// FieldSchema is the ordered field list of a campaign, stored as JSONB.
type FieldSchema []FieldDescriptor

func (fs FieldSchema) Value() (driver.Value, error) {
	return json.Marshal(fs)
}

func (fs *FieldSchema) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, fs)
	case string:
		return json.Unmarshal([]byte(v), fs)
	case nil:
		*fs = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into FieldSchema", src)
	}
}

// Validate checks the schema definition itself: at least one field, unique
// non-empty labels, known types, and options present exactly when the field
// is a select.
func (fs FieldSchema) Validate() map[string]string {
	problems := make(map[string]string)
	if len(fs) == 0 {
		problems["fields"] = "at least one field is required"
		return problems
	}

	seen := make(map[string]bool, len(fs))
	for i, f := range fs {
		key := fmt.Sprintf("fields[%d]", i)
		label := strings.TrimSpace(f.Label)
		if label == "" {
			problems[key] = "label is required"
			continue
		}
		if seen[label] {
			problems[key] = fmt.Sprintf("duplicate label %q", label)
			continue
		}
		seen[label] = true

		switch f.Type {
		case FieldText, FieldTextarea:
			if len(f.Options) > 0 {
				problems[key] = fmt.Sprintf("options are only valid for %s fields", FieldSelect)
			}
		case FieldSelect:
			if len(f.Options) == 0 {
				problems[key] = "select field must declare at least one option"
			}
		default:
			problems[key] = fmt.Sprintf("unknown field type %q", f.Type)
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return problems
}

// ValidateResponses checks a candidate submission against the schema:
// required fields must have a non-empty response, select responses must be
// one of the declared options, and responses may not name undeclared fields.
func (fs FieldSchema) ValidateResponses(responses map[string]string) map[string]string {
	problems := make(map[string]string)
	declared := make(map[string]FieldDescriptor, len(fs))

	for _, f := range fs {
		declared[f.Label] = f
		value := strings.TrimSpace(responses[f.Label])
		if f.Required && value == "" {
			problems[f.Label] = "response is required"
			continue
		}
		if f.Type == FieldSelect && value != "" && !containsOption(f.Options, value) {
			problems[f.Label] = fmt.Sprintf("%q is not one of the declared options", value)
		}
	}

	for label := range responses {
		if _, ok := declared[label]; !ok {
			problems[label] = "no such field in this campaign"
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return problems
}

func containsOption(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

// PredictionCampaign is a time-boxed window during which submissions for a
// tournament are accepted. TournamentName is denormalized for display.
type PredictionCampaign struct {
	ID             int         `json:"id" db:"id"`
	TournamentID   int         `json:"tournament_id" db:"tournament_id"`
	TournamentName string      `json:"tournament_name" db:"tournament_name"`
	StartTime      time.Time   `json:"start_time" db:"start_time"`
	EndTime        time.Time   `json:"end_time" db:"end_time"`
	Fields         FieldSchema `json:"fields" db:"fields"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
}

// Window returns the campaign's submission window.
func (c PredictionCampaign) Window() schedule.Window {
	return schedule.Window{Start: c.StartTime, End: c.EndTime}
}

// IsActive reports whether the campaign accepts submissions at now,
// i.e. now lies in [StartTime, EndTime).
func (c PredictionCampaign) IsActive(now time.Time) bool {
	return schedule.IsLive(now, c.Window())
}
