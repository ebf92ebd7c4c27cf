package swipe

import (
	"time"

	"github.com/google/uuid"
)

// SwipeRequest is the payload of POST /swipes
type SwipeRequest struct {
	TargetID string `json:"target_id" validate:"required,uuid"`
	Action   string `json:"action" validate:"required,swipe_action"`
}

// SwipeResponse is the outcome returned to the swiping user
type SwipeResponse struct {
	SwipeID   uuid.UUID  `json:"swipe_id"`
	Action    Action     `json:"action"`
	CreatedAt time.Time  `json:"created_at"`
	Matched   bool       `json:"matched"`
	MatchID   *uuid.UUID `json:"match_id,omitempty"`
}

// SwipeResponseFromResult converts a service result
func SwipeResponseFromResult(result *SwipeResult) *SwipeResponse {
	resp := &SwipeResponse{
		SwipeID:   result.Swipe.ID,
		Action:    result.Swipe.Action,
		CreatedAt: result.Swipe.CreatedAt,
		Matched:   result.Matched,
	}
	if result.Match != nil {
		id := result.Match.ID
		resp.MatchID = &id
	}
	return resp
}
