package reputation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewDelta(t *testing.T) {
	assert.Equal(t, 5, ReviewDelta(5))
	assert.Equal(t, 2, ReviewDelta(4))
	assert.Equal(t, 0, ReviewDelta(3))
	assert.Equal(t, -2, ReviewDelta(2))
	assert.Equal(t, -3, ReviewDelta(1))

	// Out-of-range ratings fall through to zero.
	assert.Equal(t, 0, ReviewDelta(0))
	assert.Equal(t, 0, ReviewDelta(6))
	assert.Equal(t, 0, ReviewDelta(-1))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, Min, Clamp(-10))
	assert.Equal(t, Min, Clamp(Min))
	assert.Equal(t, 100, Clamp(100))
	assert.Equal(t, Max, Clamp(Max))
	assert.Equal(t, Max, Clamp(Max+50))
}
