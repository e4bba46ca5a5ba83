package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeWindow_PushAndLen(t *testing.T) {
	w := newOutcomeWindow(5)
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, outcomeBucket{}, w.Sum())

	w.Push(outcomeBucket{Total: 3, Rejected: 1})
	w.Push(outcomeBucket{Total: 4})
	assert.Equal(t, 2, w.Len())
	assert.Equal(t, outcomeBucket{Total: 7, Rejected: 1}, w.Sum())
}

func TestOutcomeWindow_OverwritesOldest(t *testing.T) {
	w := newOutcomeWindow(3)
	for i := int64(1); i <= 5; i++ {
		w.Push(outcomeBucket{Total: i, Rejected: i})
	}
	// Only 3, 4 and 5 remain.
	assert.Equal(t, 3, w.Len())
	assert.Equal(t, outcomeBucket{Total: 12, Rejected: 12}, w.Sum())
}

func TestOutcomeWindow_DefaultCapacity(t *testing.T) {
	w := newOutcomeWindow(0)
	for i := 0; i < 65; i++ {
		w.Push(outcomeBucket{Total: 1})
	}
	assert.Equal(t, 60, w.Len())
	assert.Equal(t, int64(60), w.Sum().Total)
}
