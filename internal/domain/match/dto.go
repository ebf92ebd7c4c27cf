package match

import (
	"time"

	"github.com/google/uuid"
)

// MatchResponse is the API shape of a match from one participant's
// perspective
type MatchResponse struct {
	ID            uuid.UUID  `json:"id"`
	CounterpartID uuid.UUID  `json:"counterpart_id"`
	Status        Status     `json:"status"`
	MatchedAt     time.Time  `json:"matched_at"`
	EndedAt       *time.Time `json:"ended_at,omitempty"`
	EndedBy       *uuid.UUID `json:"ended_by,omitempty"`
	Score         *int       `json:"score,omitempty"`
	Factors       Factors    `json:"factors,omitempty"`
}

// MatchResponseFromEntity converts a match entity for the given viewer
func MatchResponseFromEntity(m *Match, viewerID uuid.UUID, score *Score) *MatchResponse {
	counterpart, _ := m.Counterpart(viewerID)

	resp := &MatchResponse{
		ID:            m.ID,
		CounterpartID: counterpart,
		Status:        m.Status,
		MatchedAt:     m.MatchedAt,
	}

	if m.EndedAt.Valid {
		t := m.EndedAt.Time
		resp.EndedAt = &t
	}
	if m.EndedBy.Valid {
		id := m.EndedBy.UUID
		resp.EndedBy = &id
	}
	if score != nil {
		v := score.Value
		resp.Score = &v
		resp.Factors = score.Factors
	}

	return resp
}

// MatchResponseFromJoined converts a match row joined with its score
func MatchResponseFromJoined(m *MatchWithScore, viewerID uuid.UUID) *MatchResponse {
	var score *Score
	if m.ScoreValue.Valid {
		score = &Score{MatchID: m.ID, Value: int(m.ScoreValue.Int64), Factors: m.ScoreFactors}
	}
	return MatchResponseFromEntity(&m.Match, viewerID, score)
}
