package swipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/heartlink/heartlink-api/internal/pkg/database"
)

// Repository defines swipe ledger data access. Writes join the
// transaction carried in ctx when one is present.
type Repository interface {
	// Create appends one swipe row. The unique (actor, target) index is
	// the duplicate check; a violation surfaces as ErrDuplicateSwipe so
	// races never leak a raw constraint error.
	Create(ctx context.Context, s *Swipe) error
	HasPositiveSwipe(ctx context.Context, actorID, targetID uuid.UUID) (bool, error)
	ListTargetIDs(ctx context.Context, actorID uuid.UUID) ([]uuid.UUID, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates swipe repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const uniqueViolation = "23505"

func (r *repository) Create(ctx context.Context, s *Swipe) error {
	query := `
		INSERT INTO swipes (id, actor_id, target_id, action, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := database.Ext(ctx, r.db).ExecContext(ctx, query, s.ID, s.ActorID, s.TargetID, s.Action, s.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateSwipe
		}
		return fmt.Errorf("insert swipe: %w", err)
	}
	return nil
}

func (r *repository) HasPositiveSwipe(ctx context.Context, actorID, targetID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM swipes
			WHERE actor_id = $1 AND target_id = $2 AND action IN ('like', 'super_like')
		)
	`
	var exists bool
	err := sqlx.GetContext(ctx, database.Ext(ctx, r.db), &exists, query, actorID, targetID)
	if err != nil {
		return false, fmt.Errorf("check positive swipe: %w", err)
	}
	return exists, nil
}

func (r *repository) ListTargetIDs(ctx context.Context, actorID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT target_id FROM swipes WHERE actor_id = $1`

	var ids []uuid.UUID
	err := sqlx.SelectContext(ctx, database.Ext(ctx, r.db), &ids, query, actorID)
	if err != nil {
		return nil, fmt.Errorf("list swiped targets: %w", err)
	}
	return ids, nil
}
