package feed

import (
	"time"

	"github.com/google/uuid"
)

// CandidateResponse is a single feed entry
type CandidateResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	Age          int       `json:"age"`
	Gender       string    `json:"gender"`
	Interests    []string  `json:"interests"`
	Score        int       `json:"score"`
	LastActiveAt time.Time `json:"last_active_at"`
}

// CandidateResponseFromEntity converts a ranked candidate to response
func CandidateResponseFromEntity(c *Candidate, now time.Time) *CandidateResponse {
	return &CandidateResponse{
		UserID:       c.User.ID,
		Age:          c.User.Age(now),
		Gender:       string(c.User.Gender),
		Interests:    c.User.Interests,
		Score:        c.Score,
		LastActiveAt: c.User.LastActiveAt,
	}
}
