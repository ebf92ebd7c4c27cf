package block

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/heartlink/heartlink-api/internal/pkg/database"
)

// Repository defines block data access. Writes join the transaction
// carried in ctx when one is present.
type Repository interface {
	// Upsert creates the directional block or re-activates an existing
	// row for the ordered pair
	Upsert(ctx context.Context, b *Block) error
	// Unblock marks the block inactive; reports whether a row changed
	Unblock(ctx context.Context, blockerID, blockedID uuid.UUID) (bool, error)
	// IsBlockedEither reports whether an active block exists between the
	// two users in either direction
	IsBlockedEither(ctx context.Context, a, b uuid.UUID) (bool, error)
	ListByBlocker(ctx context.Context, blockerID uuid.UUID) ([]*Block, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates block repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, b *Block) error {
	query := `
		INSERT INTO user_blocks (id, blocker_id, blocked_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (blocker_id, blocked_id) DO UPDATE SET
			created_at = EXCLUDED.created_at,
			expires_at = EXCLUDED.expires_at,
			unblocked_at = NULL
	`
	_, err := database.Ext(ctx, r.db).ExecContext(ctx, query, b.ID, b.BlockerID, b.BlockedID, b.CreatedAt, b.ExpiresAt)
	if err != nil {
		return fmt.Errorf("upsert block: %w", err)
	}
	return nil
}

func (r *repository) Unblock(ctx context.Context, blockerID, blockedID uuid.UUID) (bool, error) {
	query := `
		UPDATE user_blocks
		SET unblocked_at = NOW()
		WHERE blocker_id = $1 AND blocked_id = $2 AND unblocked_at IS NULL
	`
	result, err := database.Ext(ctx, r.db).ExecContext(ctx, query, blockerID, blockedID)
	if err != nil {
		return false, fmt.Errorf("unblock: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unblock: %w", err)
	}
	return affected > 0, nil
}

func (r *repository) IsBlockedEither(ctx context.Context, a, b uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM user_blocks
			WHERE ((blocker_id = $1 AND blocked_id = $2) OR (blocker_id = $2 AND blocked_id = $1))
			  AND unblocked_at IS NULL
			  AND (expires_at IS NULL OR expires_at > NOW())
		)
	`
	var exists bool
	err := sqlx.GetContext(ctx, database.Ext(ctx, r.db), &exists, query, a, b)
	if err != nil {
		return false, fmt.Errorf("check block: %w", err)
	}
	return exists, nil
}

func (r *repository) ListByBlocker(ctx context.Context, blockerID uuid.UUID) ([]*Block, error) {
	query := `
		SELECT id, blocker_id, blocked_id, created_at, expires_at, unblocked_at
		FROM user_blocks
		WHERE blocker_id = $1 AND unblocked_at IS NULL
		ORDER BY created_at DESC
	`
	var blocks []*Block
	err := sqlx.SelectContext(ctx, database.Ext(ctx, r.db), &blocks, query, blockerID)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	return blocks, nil
}
