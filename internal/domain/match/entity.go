package match

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Status represents match lifecycle state (matches match_status enum)
type Status string

const (
	StatusActive    Status = "active"
	StatusUnmatched Status = "unmatched"
	StatusBlocked   Status = "blocked"
)

// Match represents a confirmed mutual positive swipe. There is exactly one
// row per unordered user pair; UserLowID < UserHighID by byte order of the
// UUIDs, which makes concurrent creation attempts from both sides target
// the same row.
type Match struct {
	ID         uuid.UUID     `db:"id"`
	UserLowID  uuid.UUID     `db:"user_low_id"`
	UserHighID uuid.UUID     `db:"user_high_id"`
	Status     Status        `db:"status"`
	MatchedAt  time.Time     `db:"matched_at"`
	EndedAt    sql.NullTime  `db:"ended_at"`
	EndedBy    uuid.NullUUID `db:"ended_by"`
}

// IsActive returns true while neither side has unmatched or blocked
func (m *Match) IsActive() bool {
	return m.Status == StatusActive
}

// HasParticipant reports whether the given user is one of the two sides
func (m *Match) HasParticipant(userID uuid.UUID) bool {
	return m.UserLowID == userID || m.UserHighID == userID
}

// Counterpart returns the other participant's ID
func (m *Match) Counterpart(userID uuid.UUID) (uuid.UUID, bool) {
	if m.UserLowID == userID {
		return m.UserHighID, true
	}
	if m.UserHighID == userID {
		return m.UserLowID, true
	}
	return uuid.Nil, false
}

// CanonicalPair orders two user IDs so that (low, high) is identical no
// matter which side initiated
func CanonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) < 0 {
		return a, b
	}
	return b, a
}

// Score is the compatibility score computed once at match creation,
// stored one-to-one with the match
type Score struct {
	MatchID uuid.UUID `db:"match_id"`
	Value   int       `db:"score"`
	Factors Factors   `db:"factors"`
}

// Factors is the per-factor breakdown persisted as JSONB
type Factors map[string]int

// Value implements driver.Valuer for JSONB storage
func (f Factors) Value() (driver.Value, error) {
	return json.Marshal(f)
}

// Scan implements sql.Scanner for JSONB storage
func (f *Factors) Scan(src interface{}) error {
	b, ok := src.([]byte)
	if !ok {
		*f = Factors{}
		return nil
	}
	return json.Unmarshal(b, f)
}
