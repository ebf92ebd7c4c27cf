package block

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/heartlink/heartlink-api/internal/domain/match"
	"github.com/heartlink/heartlink-api/internal/pkg/database"
)

// MatchEnder closes the pair's active match when a block is created
type MatchEnder interface {
	EndForBlock(ctx context.Context, blockerID, blockedID uuid.UUID) (*match.Match, error)
}

// ExclusionInvalidator drops cached exclusion sets after a block change
type ExclusionInvalidator interface {
	Invalidate(ctx context.Context, userIDs ...uuid.UUID)
}

// Service handles user block business logic
type Service struct {
	repo       Repository
	matches    MatchEnder
	exclusions ExclusionInvalidator
	tx         database.TxRunner
	now        func() time.Time
}

// NewService creates block service
func NewService(repo Repository, matches MatchEnder, exclusions ExclusionInvalidator, tx database.TxRunner) *Service {
	return &Service{
		repo:       repo,
		matches:    matches,
		exclusions: exclusions,
		tx:         tx,
		now:        time.Now,
	}
}

// Block blocks a user. When an active match exists between the pair it is
// transitioned to blocked in the same transaction, and only the blocked
// party is notified of the ended match.
func (s *Service) Block(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	if blockerID == blockedID {
		return ErrCannotBlockSelf
	}

	b := &Block{
		ID:        uuid.New(),
		BlockerID: blockerID,
		BlockedID: blockedID,
		CreatedAt: s.now().UTC(),
	}

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Upsert(ctx, b); err != nil {
			return err
		}
		_, err := s.matches.EndForBlock(ctx, blockerID, blockedID)
		return err
	})
	if err != nil {
		return err
	}

	s.exclusions.Invalidate(ctx, blockerID, blockedID)

	log.Info().
		Str("blocker_id", blockerID.String()).
		Str("blocked_id", blockedID.String()).
		Msg("User blocked")

	return nil
}

// Unblock removes a block if present. Idempotent: unblocking a pair that
// is not blocked is a no-op. An ended match is never resurrected.
func (s *Service) Unblock(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	changed, err := s.repo.Unblock(ctx, blockerID, blockedID)
	if err != nil {
		return err
	}
	if changed {
		s.exclusions.Invalidate(ctx, blockerID, blockedID)
	}
	return nil
}

// IsBlockedEither reports whether an active block exists between the two
// users in either direction
func (s *Service) IsBlockedEither(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return s.repo.IsBlockedEither(ctx, a, b)
}

// ListBlocked returns all users blocked by the given user
func (s *Service) ListBlocked(ctx context.Context, blockerID uuid.UUID) ([]*Block, error) {
	return s.repo.ListByBlocker(ctx, blockerID)
}
