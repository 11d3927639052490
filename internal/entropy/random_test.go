package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededStreamsAreDeterministic(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float(), b.Float())
		assert.Equal(t, a.Intn(100), b.Intn(100))
	}
}

func TestZeroSeedStillSeeds(t *testing.T) {
	s := New(0)
	v := s.Float()
	assert.GreaterOrEqual(t, v, 0.0)
	assert.Less(t, v, 1.0)
}

func TestNilSourceFailsEveryRoll(t *testing.T) {
	var s *Source
	assert.Equal(t, 1.0, s.Float())
	assert.False(t, s.Roll(0.99))
	assert.Zero(t, s.Intn(100))
}

func TestRollBounds(t *testing.T) {
	s := New(1)
	assert.True(t, s.Roll(1.0))
	assert.False(t, s.Roll(0.0))
}
