package swipe

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/heartlink/heartlink-api/internal/domain/match"
	"github.com/heartlink/heartlink-api/internal/domain/user"
	"github.com/heartlink/heartlink-api/internal/pkg/database"
)

// BlockChecker answers whether a block exists between two users in
// either direction
type BlockChecker interface {
	IsBlockedEither(ctx context.Context, a, b uuid.UUID) (bool, error)
}

// Matchmaker runs the match state machine after a positive swipe. It is
// invoked inside the swipe transaction so a crash can never record a
// like without its match check.
type Matchmaker interface {
	OnPositiveSwipe(ctx context.Context, actor, target *user.User) (*match.Match, bool, error)
}

// ExclusionInvalidator drops cached exclusion sets after a swipe lands
type ExclusionInvalidator interface {
	Invalidate(ctx context.Context, userIDs ...uuid.UUID)
}

// SwipeResult is the outcome of recording one swipe
type SwipeResult struct {
	Swipe   *Swipe
	Matched bool
	Match   *match.Match
}

// Service implements the swipe ledger
type Service struct {
	repo       Repository
	users      user.Repository
	blocks     BlockChecker
	matches    Matchmaker
	exclusions ExclusionInvalidator
	tx         database.TxRunner
	now        func() time.Time
}

// NewService creates swipe service
func NewService(repo Repository, users user.Repository, blocks BlockChecker, matches Matchmaker, exclusions ExclusionInvalidator, tx database.TxRunner) *Service {
	return &Service{
		repo:       repo,
		users:      users,
		blocks:     blocks,
		matches:    matches,
		exclusions: exclusions,
		tx:         tx,
		now:        time.Now,
	}
}

// Swipe validates and appends one decision, and runs match detection for
// positive actions in the same transaction.
//
// Profile lookups here are fail-closed: a swipe against a user whose
// profile cannot be resolved is rejected rather than recorded on stale
// assumptions. The feed is the only best-effort consumer of profiles.
func (s *Service) Swipe(ctx context.Context, actorID, targetID uuid.UUID, action Action) (*SwipeResult, error) {
	if actorID == uuid.Nil || targetID == uuid.Nil || actorID == targetID {
		return nil, ErrInvalidSwipe
	}

	actor, err := s.resolveParticipant(ctx, actorID)
	if err != nil {
		return nil, err
	}
	target, err := s.resolveParticipant(ctx, targetID)
	if err != nil {
		return nil, err
	}

	blocked, err := s.blocks.IsBlockedEither(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrBlocked
	}

	result := &SwipeResult{
		Swipe: &Swipe{
			ID:        uuid.New(),
			ActorID:   actorID,
			TargetID:  targetID,
			Action:    action,
			CreatedAt: s.now().UTC(),
		},
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, result.Swipe); err != nil {
			return err
		}

		if !action.IsPositive() {
			return nil
		}

		m, _, err := s.matches.OnPositiveSwipe(ctx, actor, target)
		if err != nil {
			return err
		}
		if m != nil && m.IsActive() {
			result.Matched = true
			result.Match = m
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Invalidate only after commit so a concurrent feed read cannot
	// re-cache the pre-swipe exclusion set. A new match excludes the
	// target's side as well.
	if result.Matched {
		s.exclusions.Invalidate(ctx, actorID, targetID)
	} else {
		s.exclusions.Invalidate(ctx, actorID)
	}

	log.Debug().
		Str("actor_id", actorID.String()).
		Str("target_id", targetID.String()).
		Str("action", string(action)).
		Bool("matched", result.Matched).
		Msg("Swipe recorded")

	return result, nil
}

// resolveParticipant fetches a profile and enforces that it may swipe.
// A profile that cannot be found is indistinguishable from one the
// profile store failed to serve, so both surface as unavailable.
func (s *Service) resolveParticipant(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrProfileUnavailable
		}
		return nil, err
	}
	if !u.IsActive() {
		return nil, ErrInvalidSwipe
	}
	return u, nil
}
