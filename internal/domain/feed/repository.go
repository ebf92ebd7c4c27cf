package feed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/heartlink/heartlink-api/internal/domain/user"
)

// Repository defines read-only feed data access. The feed never writes.
type Repository interface {
	// ExcludedIDs returns every user ID that must not appear in the
	// given user's feed: self, swiped targets, blocks in either
	// direction, and matched counterparts regardless of match status.
	ExcludedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// ListCandidates returns active, complete profiles within the
	// viewer's age preference, minus the excluded set. Reverse-direction
	// preference checks and ranking happen in the service.
	ListCandidates(ctx context.Context, viewer *user.User, excluded []uuid.UUID, limit int) ([]*user.User, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates feed repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ExcludedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	// Matched counterparts are excluded for any status: once a pair has
	// matched they are never shown to each other again, even after
	// unmatch or unblock.
	query := `
		SELECT $1::uuid
		UNION
		SELECT target_id FROM swipes WHERE actor_id = $1
		UNION
		SELECT blocked_id FROM user_blocks
		WHERE blocker_id = $1 AND unblocked_at IS NULL AND (expires_at IS NULL OR expires_at > NOW())
		UNION
		SELECT blocker_id FROM user_blocks
		WHERE blocked_id = $1 AND unblocked_at IS NULL AND (expires_at IS NULL OR expires_at > NOW())
		UNION
		SELECT user_high_id FROM matches WHERE user_low_id = $1
		UNION
		SELECT user_low_id FROM matches WHERE user_high_id = $1
	`
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("list excluded ids: %w", err)
	}
	return ids, nil
}

func (r *repository) ListCandidates(ctx context.Context, viewer *user.User, excluded []uuid.UUID, limit int) ([]*user.User, error) {
	if limit <= 0 {
		limit = 500
	}

	minAge, maxAge := viewer.AgeRange()

	excludedStrs := make([]string, 0, len(excluded))
	for _, id := range excluded {
		excludedStrs = append(excludedStrs, id.String())
	}

	query := `
		SELECT id, status, gender, birth_date,
		       COALESCE(interests, '{}') AS interests,
		       profile_complete, last_active_at,
		       COALESCE(pref_min_age, 0) AS pref_min_age,
		       COALESCE(pref_max_age, 0) AS pref_max_age,
		       COALESCE(pref_interested_in, '{}') AS pref_interested_in
		FROM profiles
		WHERE status = 'active'
		  AND profile_complete
		  AND id <> ALL($1::uuid[])
		  AND date_part('year', age(NOW(), birth_date)) BETWEEN $2 AND $3
		ORDER BY last_active_at DESC
		LIMIT $4
	`
	var candidates []*user.User
	err := r.db.SelectContext(ctx, &candidates, query, pq.Array(excludedStrs), minAge, maxAge, limit)
	if err != nil {
		return nil, fmt.Errorf("list feed candidates: %w", err)
	}
	return candidates, nil
}
