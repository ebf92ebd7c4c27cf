package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name string
		a    ScoreInput
		b    ScoreInput
		want int
	}{
		{
			name: "no shared interests, far apart in age",
			a:    ScoreInput{Age: 20, Interests: []string{"hiking"}},
			b:    ScoreInput{Age: 45, Interests: []string{"chess"}},
			want: 50,
		},
		{
			name: "one shared interest, close in age",
			a:    ScoreInput{Age: 29, Interests: []string{"hiking", "jazz"}},
			b:    ScoreInput{Age: 31, Interests: []string{"jazz", "chess"}},
			want: 76,
		},
		{
			name: "interest points capped at five shared",
			a:    ScoreInput{Age: 30, Interests: []string{"a", "b", "c", "d", "e", "f", "g"}},
			b:    ScoreInput{Age: 30, Interests: []string{"a", "b", "c", "d", "e", "f", "g"}},
			want: 100,
		},
		{
			name: "near age band",
			a:    ScoreInput{Age: 25, Interests: nil},
			b:    ScoreInput{Age: 33, Interests: nil},
			want: 60,
		},
		{
			name: "age boundary at five years",
			a:    ScoreInput{Age: 25, Interests: nil},
			b:    ScoreInput{Age: 30, Interests: nil},
			want: 70,
		},
		{
			name: "interests match case-insensitively",
			a:    ScoreInput{Age: 30, Interests: []string{"Jazz", " hiking "}},
			b:    ScoreInput{Age: 30, Interests: []string{"jazz", "HIKING"}},
			want: 82,
		},
		{
			name: "duplicate interests counted once",
			a:    ScoreInput{Age: 30, Interests: []string{"jazz", "jazz", "jazz"}},
			b:    ScoreInput{Age: 30, Interests: []string{"jazz", "jazz"}},
			want: 76,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, factors := ComputeScore(tt.a, tt.b)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, factors["base"]+factors["shared_interests"]+factors["age_proximity"],
				"factors must sum to the score when below the cap")
		})
	}
}

func TestComputeScoreSymmetry(t *testing.T) {
	a := ScoreInput{Age: 24, Interests: []string{"hiking", "jazz", "cooking"}}
	b := ScoreInput{Age: 36, Interests: []string{"cooking", "travel"}}

	ab, _ := ComputeScore(a, b)
	ba, _ := ComputeScore(b, a)
	assert.Equal(t, ab, ba)
}

func TestComputeScoreFactorsBreakdown(t *testing.T) {
	_, factors := ComputeScore(
		ScoreInput{Age: 29, Interests: []string{"jazz"}},
		ScoreInput{Age: 31, Interests: []string{"jazz"}},
	)

	assert.Equal(t, 50, factors["base"])
	assert.Equal(t, 6, factors["shared_interests"])
	assert.Equal(t, 20, factors["age_proximity"])
}
