package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	cases := []struct {
		part, whole int64
		want        float64
	}{
		{0, 0, 0},
		{5, 0, 0},
		{1, 4, 25},
		{3, 100, 3},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, percent(tc.part, tc.whole), 1e-9, "percent(%d, %d)", tc.part, tc.whole)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 80.01, round2(80.0123))
	assert.Equal(t, 33.33, round2(100.0/3))
	assert.Equal(t, 0.0, round2(0.001))
}

func TestClampProbability(t *testing.T) {
	assert.Equal(t, 0.0, clampProbability(-0.5))
	assert.Equal(t, 1.0, clampProbability(1.5))
	assert.Equal(t, 0.25, clampProbability(0.25))
}
