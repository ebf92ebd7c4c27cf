package match

import "strings"

// Scoring weights. The score is a static weighted blend of shared
// interests and age proximity, computed once at match creation.
const (
	scoreBase              = 50
	scorePerSharedInterest = 6
	scoreInterestCap       = 30
	scoreAgeClose          = 20 // age difference <= 5 years
	scoreAgeNear           = 10 // age difference <= 10 years
	scoreMax               = 100
)

// ScoreInput carries the profile attributes the scorer depends on
type ScoreInput struct {
	Age       int
	Interests []string
}

// ComputeScore returns a deterministic 0-100 compatibility score for two
// users from their shared interests and age proximity
func ComputeScore(a, b ScoreInput) (int, Factors) {
	shared := sharedInterestCount(a.Interests, b.Interests)
	interestPoints := shared * scorePerSharedInterest
	if interestPoints > scoreInterestCap {
		interestPoints = scoreInterestCap
	}

	agePoints := 0
	ageDiff := a.Age - b.Age
	if ageDiff < 0 {
		ageDiff = -ageDiff
	}
	switch {
	case ageDiff <= 5:
		agePoints = scoreAgeClose
	case ageDiff <= 10:
		agePoints = scoreAgeNear
	}

	value := scoreBase + interestPoints + agePoints
	if value > scoreMax {
		value = scoreMax
	}

	factors := Factors{
		"base":             scoreBase,
		"shared_interests": interestPoints,
		"age_proximity":    agePoints,
	}

	return value, factors
}

// sharedInterestCount counts the case-insensitive intersection of two
// interest sets
func sharedInterestCount(a, b []string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(a))
	for _, interest := range a {
		key := strings.ToLower(strings.TrimSpace(interest))
		if key != "" {
			set[key] = struct{}{}
		}
	}

	count := 0
	seen := make(map[string]struct{}, len(b))
	for _, interest := range b {
		key := strings.ToLower(strings.TrimSpace(interest))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := set[key]; ok {
			count++
		}
	}

	return count
}
