package match

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalPair(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	low1, high1 := CanonicalPair(a, b)
	low2, high2 := CanonicalPair(b, a)

	assert.Equal(t, low1, low2)
	assert.Equal(t, high1, high2)
	assert.Equal(t, a, low1)
	assert.Equal(t, b, high1)
}

func TestMatchCounterpart(t *testing.T) {
	low := uuid.New()
	high := uuid.New()
	m := &Match{ID: uuid.New(), UserLowID: low, UserHighID: high, Status: StatusActive}

	got, ok := m.Counterpart(low)
	assert.True(t, ok)
	assert.Equal(t, high, got)

	got, ok = m.Counterpart(high)
	assert.True(t, ok)
	assert.Equal(t, low, got)

	_, ok = m.Counterpart(uuid.New())
	assert.False(t, ok)

	assert.True(t, m.HasParticipant(low))
	assert.False(t, m.HasParticipant(uuid.New()))
}
