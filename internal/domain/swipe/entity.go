package swipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Action represents a swipe decision (matches swipe_action enum)
type Action string

const (
	ActionLike      Action = "like"
	ActionPass      Action = "pass"
	ActionSuperLike Action = "super_like"
)

// ParseAction normalizes and validates a swipe action value
func ParseAction(input string) (Action, bool) {
	switch Action(strings.ToLower(strings.TrimSpace(input))) {
	case ActionLike:
		return ActionLike, true
	case ActionPass:
		return ActionPass, true
	case ActionSuperLike:
		return ActionSuperLike, true
	default:
		return "", false
	}
}

// IsPositive reports whether the action counts toward a match
func (a Action) IsPositive() bool {
	return a == ActionLike || a == ActionSuperLike
}

// Swipe is one immutable decision by one user about another. At most one
// row exists per ordered (actor, target) pair.
type Swipe struct {
	ID        uuid.UUID `db:"id"`
	ActorID   uuid.UUID `db:"actor_id"`
	TargetID  uuid.UUID `db:"target_id"`
	Action    Action    `db:"action"`
	CreatedAt time.Time `db:"created_at"`
}
