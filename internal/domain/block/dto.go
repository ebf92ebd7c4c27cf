package block

import (
	"time"

	"github.com/google/uuid"
)

// BlockedUserResponse is the API shape of one block row
type BlockedUserResponse struct {
	BlockedID uuid.UUID  `json:"blocked_id"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// BlockedUserFromEntity converts a block entity
func BlockedUserFromEntity(b *Block) *BlockedUserResponse {
	resp := &BlockedUserResponse{
		BlockedID: b.BlockedID,
		CreatedAt: b.CreatedAt,
	}
	if b.ExpiresAt.Valid {
		t := b.ExpiresAt.Time
		resp.ExpiresAt = &t
	}
	return resp
}
