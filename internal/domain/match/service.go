package match

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/heartlink/heartlink-api/internal/domain/user"
	"github.com/heartlink/heartlink-api/internal/pkg/database"
)

// SwipeChecker answers whether a positive swipe exists for an ordered pair
type SwipeChecker interface {
	HasPositiveSwipe(ctx context.Context, actorID, targetID uuid.UUID) (bool, error)
}

// Notifier durably queues match lifecycle notifications. Implementations
// must write inside the transaction carried in ctx so the events commit
// atomically with the state change.
type Notifier interface {
	NotifyNewMatch(ctx context.Context, matchID, userA, userB uuid.UUID) error
	NotifyMatchEnded(ctx context.Context, matchID, recipientID, endedBy uuid.UUID) error
}

// ExclusionInvalidator drops cached exclusion sets after a state change
type ExclusionInvalidator interface {
	Invalidate(ctx context.Context, userIDs ...uuid.UUID)
}

// Service implements the match state machine
type Service struct {
	repo       Repository
	swipes     SwipeChecker
	notifier   Notifier
	exclusions ExclusionInvalidator
	tx         database.TxRunner
	now        func() time.Time
}

// NewService creates match service
func NewService(repo Repository, swipes SwipeChecker, notifier Notifier, exclusions ExclusionInvalidator, tx database.TxRunner) *Service {
	return &Service{
		repo:       repo,
		swipes:     swipes,
		notifier:   notifier,
		exclusions: exclusions,
		tx:         tx,
		now:        time.Now,
	}
}

// OnPositiveSwipe runs the detect-and-create sequence after a like or
// super-like has been recorded. It must be invoked inside the same
// transaction as the swipe insert.
//
// Both sides of a reciprocal swipe may run this concurrently; the
// canonical (low, high) ordering plus the unique pair index make both
// attempts target the same row, and only the attempt that performed the
// insert emits side effects (score row, notifications).
func (s *Service) OnPositiveSwipe(ctx context.Context, actor, target *user.User) (*Match, bool, error) {
	reciprocal, err := s.swipes.HasPositiveSwipe(ctx, target.ID, actor.ID)
	if err != nil {
		return nil, false, fmt.Errorf("check reciprocal swipe: %w", err)
	}
	if !reciprocal {
		return nil, false, nil
	}

	lowID, highID := CanonicalPair(actor.ID, target.ID)
	now := s.now().UTC()

	m, created, err := s.repo.CreateIfAbsent(ctx, lowID, highID, now)
	if err != nil {
		return nil, false, ErrMatchCreation
	}
	if !created {
		// Lost the race or the pair matched before; the winner owns the
		// side effects.
		return m, false, nil
	}

	value, factors := ComputeScore(
		ScoreInput{Age: actor.Age(now), Interests: actor.Interests},
		ScoreInput{Age: target.Age(now), Interests: target.Interests},
	)
	if err := s.repo.CreateScore(ctx, &Score{MatchID: m.ID, Value: value, Factors: factors}); err != nil {
		return nil, false, ErrMatchCreation
	}

	if err := s.notifier.NotifyNewMatch(ctx, m.ID, actor.ID, target.ID); err != nil {
		return nil, false, ErrMatchCreation
	}

	// Cache invalidation is the caller's job once the surrounding swipe
	// transaction commits; dropping the keys here would let a concurrent
	// feed read re-cache the pre-match state.

	log.Info().
		Str("match_id", m.ID.String()).
		Str("user_low_id", m.UserLowID.String()).
		Str("user_high_id", m.UserHighID.String()).
		Int("score", value).
		Msg("Match created")

	return m, true, nil
}

// Unmatch ends an active match on behalf of one of its participants and
// notifies the other side
func (s *Service) Unmatch(ctx context.Context, requesterID, matchID uuid.UUID) (*Match, error) {
	var ended *Match

	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		m, err := s.repo.GetByID(ctx, matchID)
		if err != nil {
			return err
		}

		counterpart, ok := m.Counterpart(requesterID)
		if !ok {
			return ErrNotParticipant
		}

		endedAt := s.now().UTC()
		ok, err = s.repo.End(ctx, m.ID, StatusUnmatched, requesterID, endedAt)
		if err != nil {
			return err
		}
		if !ok {
			return ErrMatchNotActive
		}

		if err := s.notifier.NotifyMatchEnded(ctx, m.ID, counterpart, requesterID); err != nil {
			return err
		}

		m.Status = StatusUnmatched
		m.EndedAt = sql.NullTime{Time: endedAt, Valid: true}
		m.EndedBy = uuid.NullUUID{UUID: requesterID, Valid: true}
		ended = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.exclusions.Invalidate(ctx, ended.UserLowID, ended.UserHighID)

	return ended, nil
}

// EndForBlock transitions the pair's active match, if any, to blocked.
// Called by the block service inside the block-creation transaction; only
// the blocked party is notified.
func (s *Service) EndForBlock(ctx context.Context, blockerID, blockedID uuid.UUID) (*Match, error) {
	lowID, highID := CanonicalPair(blockerID, blockedID)

	m, err := s.repo.EndActiveByPair(ctx, lowID, highID, StatusBlocked, blockerID, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}

	if err := s.notifier.NotifyMatchEnded(ctx, m.ID, blockedID, blockerID); err != nil {
		return nil, err
	}

	return m, nil
}

// GetForUser returns a match with its score, guarded to participants
func (s *Service) GetForUser(ctx context.Context, requesterID, matchID uuid.UUID) (*Match, *Score, error) {
	m, err := s.repo.GetByID(ctx, matchID)
	if err != nil {
		return nil, nil, err
	}
	if !m.HasParticipant(requesterID) {
		return nil, nil, ErrNotParticipant
	}

	score, err := s.repo.GetScore(ctx, matchID)
	if err != nil {
		return nil, nil, err
	}

	return m, score, nil
}

// ListForUser returns the user's active matches, newest first
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*MatchWithScore, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListActiveByUser(ctx, userID, limit, offset)
}
