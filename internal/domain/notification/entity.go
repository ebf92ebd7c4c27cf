package notification

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type represents notification type
type Type string

const (
	TypeNewMatch   Type = "new_match"   // Both: their like was reciprocated
	TypeMatchEnded Type = "match_ended" // Remaining party: counterpart unmatched or blocked
)

// Notification represents a queued user notification. Rows are written
// inside the same transaction as the match state change they describe,
// so a committed match always has its notifications on disk.
type Notification struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	UserID    uuid.UUID       `db:"user_id" json:"user_id"`
	Type      Type            `db:"type" json:"type"`
	Title     string          `db:"title" json:"title"`
	Body      sql.NullString  `db:"body" json:"body,omitempty"`
	Data      json.RawMessage `db:"data" json:"data,omitempty"`
	IsRead    bool            `db:"is_read" json:"is_read"`
	ReadAt    sql.NullTime    `db:"read_at" json:"read_at,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// NotificationData links a notification to the entities it concerns
type NotificationData struct {
	MatchID       *uuid.UUID `json:"match_id,omitempty"`
	CounterpartID *uuid.UUID `json:"counterpart_id,omitempty"`
	EndedBy       *uuid.UUID `json:"ended_by,omitempty"`
}

// SetData encodes data to JSON
func (n *Notification) SetData(data *NotificationData) {
	if data != nil {
		n.Data, _ = json.Marshal(data)
	}
}

// GetData decodes data from JSON
func (n *Notification) GetData() *NotificationData {
	if n.Data == nil {
		return &NotificationData{}
	}
	var data NotificationData
	_ = json.Unmarshal(n.Data, &data)
	return &data
}
