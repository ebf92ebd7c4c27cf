package match

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/heartlink/heartlink-api/internal/pkg/database"
)

// Repository defines match data access. Mutating methods join the
// transaction carried in ctx when one is present.
type Repository interface {
	// CreateIfAbsent inserts the canonical row for the pair and reports
	// whether this call performed the insert. When the row already exists
	// (concurrent reciprocal swipe or historical match) the existing row
	// is returned with created=false.
	CreateIfAbsent(ctx context.Context, lowID, highID uuid.UUID, matchedAt time.Time) (*Match, bool, error)
	CreateScore(ctx context.Context, score *Score) error
	GetByID(ctx context.Context, id uuid.UUID) (*Match, error)
	GetScore(ctx context.Context, matchID uuid.UUID) (*Score, error)
	// End transitions an active match to the given terminal status.
	// Returns false when the match was not active.
	End(ctx context.Context, matchID uuid.UUID, status Status, endedBy uuid.UUID, endedAt time.Time) (bool, error)
	// EndActiveByPair transitions the pair's active match, if any, to the
	// given terminal status. Returns nil when no active match exists.
	EndActiveByPair(ctx context.Context, lowID, highID uuid.UUID, status Status, endedBy uuid.UUID, endedAt time.Time) (*Match, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*MatchWithScore, error)
}

// MatchWithScore joins a match row with its stored score
type MatchWithScore struct {
	Match
	ScoreValue   sql.NullInt64 `db:"score"`
	ScoreFactors Factors       `db:"factors"`
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates match repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateIfAbsent(ctx context.Context, lowID, highID uuid.UUID, matchedAt time.Time) (*Match, bool, error) {
	ext := database.Ext(ctx, r.db)

	insert := `
		INSERT INTO matches (id, user_low_id, user_high_id, status, matched_at)
		VALUES ($1, $2, $3, 'active', $4)
		ON CONFLICT (user_low_id, user_high_id) DO NOTHING
		RETURNING id, user_low_id, user_high_id, status, matched_at, ended_at, ended_by
	`

	var m Match
	err := sqlx.GetContext(ctx, ext, &m, insert, uuid.New(), lowID, highID, matchedAt)
	if err == nil {
		return &m, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("insert match: %w", err)
	}

	// Conflict: the other side of the race won, or the pair matched
	// before. Observe the existing row.
	query := `
		SELECT id, user_low_id, user_high_id, status, matched_at, ended_at, ended_by
		FROM matches
		WHERE user_low_id = $1 AND user_high_id = $2
	`
	if err := sqlx.GetContext(ctx, ext, &m, query, lowID, highID); err != nil {
		return nil, false, fmt.Errorf("read existing match: %w", err)
	}
	return &m, false, nil
}

func (r *repository) CreateScore(ctx context.Context, score *Score) error {
	query := `
		INSERT INTO match_scores (match_id, score, factors)
		VALUES ($1, $2, $3)
	`
	_, err := database.Ext(ctx, r.db).ExecContext(ctx, query, score.MatchID, score.Value, score.Factors)
	if err != nil {
		return fmt.Errorf("insert match score: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Match, error) {
	query := `
		SELECT id, user_low_id, user_high_id, status, matched_at, ended_at, ended_by
		FROM matches
		WHERE id = $1
	`
	var m Match
	err := sqlx.GetContext(ctx, database.Ext(ctx, r.db), &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("get match: %w", err)
	}
	return &m, nil
}

func (r *repository) GetScore(ctx context.Context, matchID uuid.UUID) (*Score, error) {
	query := `SELECT match_id, score, factors FROM match_scores WHERE match_id = $1`

	var s Score
	err := sqlx.GetContext(ctx, database.Ext(ctx, r.db), &s, query, matchID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get match score: %w", err)
	}
	return &s, nil
}

func (r *repository) End(ctx context.Context, matchID uuid.UUID, status Status, endedBy uuid.UUID, endedAt time.Time) (bool, error) {
	query := `
		UPDATE matches
		SET status = $2, ended_at = $3, ended_by = $4
		WHERE id = $1 AND status = 'active'
	`
	result, err := database.Ext(ctx, r.db).ExecContext(ctx, query, matchID, status, endedAt, endedBy)
	if err != nil {
		return false, fmt.Errorf("end match: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("end match: %w", err)
	}
	return affected > 0, nil
}

func (r *repository) EndActiveByPair(ctx context.Context, lowID, highID uuid.UUID, status Status, endedBy uuid.UUID, endedAt time.Time) (*Match, error) {
	query := `
		UPDATE matches
		SET status = $3, ended_at = $4, ended_by = $5
		WHERE user_low_id = $1 AND user_high_id = $2 AND status = 'active'
		RETURNING id, user_low_id, user_high_id, status, matched_at, ended_at, ended_by
	`
	var m Match
	err := sqlx.GetContext(ctx, database.Ext(ctx, r.db), &m, query, lowID, highID, status, endedAt, endedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("end match by pair: %w", err)
	}
	return &m, nil
}

func (r *repository) ListActiveByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*MatchWithScore, error) {
	query := `
		SELECT m.id, m.user_low_id, m.user_high_id, m.status, m.matched_at, m.ended_at, m.ended_by,
		       s.score AS score, COALESCE(s.factors, '{}') AS factors
		FROM matches m
		LEFT JOIN match_scores s ON s.match_id = m.id
		WHERE (m.user_low_id = $1 OR m.user_high_id = $1) AND m.status = 'active'
		ORDER BY m.matched_at DESC, m.id DESC
		LIMIT $2 OFFSET $3
	`
	var matches []*MatchWithScore
	err := sqlx.SelectContext(ctx, database.Ext(ctx, r.db), &matches, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list active matches: %w", err)
	}
	return matches, nil
}
