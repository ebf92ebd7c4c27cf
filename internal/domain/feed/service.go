package feed

import (
	"bytes"
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/heartlink/heartlink-api/internal/domain/match"
	"github.com/heartlink/heartlink-api/internal/domain/user"
)

// Candidate is a feed entry: a profile plus the compatibility score it
// would receive against the viewer if the pair matched.
type Candidate struct {
	User  *user.User
	Score int
}

// Service assembles a viewer's feed: exclusion set, candidate pool,
// both-direction preference filtering, then compatibility ranking.
type Service struct {
	repo         Repository
	users        user.Repository
	cache        *ExclusionCache
	poolSize     int
	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

// NewService creates feed service
func NewService(repo Repository, users user.Repository, cache *ExclusionCache, poolSize, defaultLimit, maxLimit int) *Service {
	return &Service{
		repo:         repo,
		users:        users,
		cache:        cache,
		poolSize:     poolSize,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		now:          time.Now,
	}
}

// ExcludedIDs returns the viewer's exclusion set, serving from cache
// when present and rebuilding from the database otherwise.
func (s *Service) ExcludedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if ids, ok := s.cache.Get(ctx, userID); ok {
		return ids, nil
	}
	ids, err := s.repo.ExcludedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, userID, ids)
	return ids, nil
}

// GetFeed returns up to limit ranked candidates for the viewer, skipping
// offset entries. Candidates are ordered by compatibility score
// descending, then recency of activity, then ID for a stable order.
func (s *Service) GetFeed(ctx context.Context, viewerID uuid.UUID, limit, offset int) ([]*Candidate, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	// The viewer's own profile must load; without it there is nothing
	// to filter or score against.
	viewer, err := s.users.GetActiveByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	excluded, err := s.ExcludedIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	pool, err := s.repo.ListCandidates(ctx, viewer, excluded, s.poolSize)
	if err != nil {
		return nil, err
	}

	now := s.now()
	viewerAge := viewer.Age(now)
	candidates := make([]*Candidate, 0, len(pool))
	for _, c := range pool {
		if !mutualPreferenceMatch(viewer, c, viewerAge, now) {
			continue
		}
		score, _ := match.ComputeScore(
			match.ScoreInput{Age: viewerAge, Interests: viewer.Interests},
			match.ScoreInput{Age: c.Age(now), Interests: c.Interests},
		)
		candidates = append(candidates, &Candidate{User: c, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if !candidates[i].User.LastActiveAt.Equal(candidates[j].User.LastActiveAt) {
			return candidates[i].User.LastActiveAt.After(candidates[j].User.LastActiveAt)
		}
		a, b := candidates[i].User.ID, candidates[j].User.ID
		return bytes.Compare(a[:], b[:]) < 0
	})

	if offset >= len(candidates) {
		return []*Candidate{}, nil
	}
	end := offset + limit
	if end > len(candidates) {
		end = len(candidates)
	}
	return candidates[offset:end], nil
}

// mutualPreferenceMatch checks that viewer and candidate each fall within
// the other's age range and gender interest. The SQL pool already applied
// the viewer's age range; the reverse direction is checked here.
func mutualPreferenceMatch(viewer, candidate *user.User, viewerAge int, now time.Time) bool {
	candidateAge := candidate.Age(now)

	vMin, vMax := viewer.AgeRange()
	if candidateAge < vMin || candidateAge > vMax {
		return false
	}
	cMin, cMax := candidate.AgeRange()
	if viewerAge < cMin || viewerAge > cMax {
		return false
	}
	return viewer.WantsGender(candidate.Gender) && candidate.WantsGender(viewer.Gender)
}
