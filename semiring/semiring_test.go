package semiring_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/synforest/semiring"
)

func TestLogProb_MulIsSum(t *testing.T) {
	var s semiring.LogProb
	assert.InDelta(t, -3.0, float64(s.Mul(-1, -2)), 1e-9)
	assert.Equal(t, semiring.Weight(0), s.One())
}

func TestLogProb_AddIsLogSumExp(t *testing.T) {
	var s semiring.LogProb
	got := s.Add(math.Log(0.3), math.Log(0.7))
	assert.InDelta(t, math.Log(1.0), float64(got), 1e-9)
}

func TestLogProb_ZeroIsIdentity(t *testing.T) {
	var s semiring.LogProb
	a := semiring.Weight(-2.5)
	assert.Equal(t, a, s.Add(a, s.Zero()))
}

func TestTropical_AddIsMax(t *testing.T) {
	var s semiring.Tropical
	assert.Equal(t, semiring.Weight(-1), s.Add(-1, -5))
}

func TestTropical_MulIsSum(t *testing.T) {
	var s semiring.Tropical
	assert.Equal(t, semiring.Weight(-3), s.Mul(-1, -2))
}

func TestBottleneck_MulIsMin(t *testing.T) {
	var s semiring.Bottleneck
	assert.Equal(t, semiring.Weight(0.2), s.Mul(0.2, 0.9))
}

func TestBottleneck_AddIsMax(t *testing.T) {
	var s semiring.Bottleneck
	assert.Equal(t, semiring.Weight(0.9), s.Add(0.2, 0.9))
}

func TestBottleneck_OneIsMulIdentity(t *testing.T) {
	var s semiring.Bottleneck
	assert.Equal(t, semiring.Weight(0.5), s.Mul(0.5, s.One()))
}
