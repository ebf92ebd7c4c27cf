package block

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Block represents a directional user-to-user block. A blocking B does
// not imply B blocks A.
type Block struct {
	ID          uuid.UUID    `db:"id"`
	BlockerID   uuid.UUID    `db:"blocker_id"`
	BlockedID   uuid.UUID    `db:"blocked_id"`
	CreatedAt   time.Time    `db:"created_at"`
	ExpiresAt   sql.NullTime `db:"expires_at"`
	UnblockedAt sql.NullTime `db:"unblocked_at"`
}

// IsActive reports whether the block is currently in force
func (b *Block) IsActive(now time.Time) bool {
	if b.UnblockedAt.Valid {
		return false
	}
	if b.ExpiresAt.Valid && !b.ExpiresAt.Time.After(now) {
		return false
	}
	return true
}
