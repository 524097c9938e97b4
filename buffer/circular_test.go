package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCircularSizing(t *testing.T) {
	assert := assert.New(t)

	c := NewCircularFloat(5)
	assert.Equal(4, c.BufSize)

	c = NewCircularFloat(8)
	assert.Equal(8, c.BufSize)
}

func TestCircularHalves(t *testing.T) {
	assert := assert.New(t)

	c := NewCircularFloat(4)

	// Not full yet - no iterators, no half means
	assert.NoError(c.Add(1.0))
	assert.Nil(c.FirstHalf())
	assert.Nil(c.SecondHalf())
	_, _, ok := c.HalfMeans()
	assert.False(ok)

	assert.NoError(c.Add(2.0))
	assert.NoError(c.Add(3.0))
	assert.NoError(c.Add(4.0))

	first, second, ok := c.HalfMeans()
	assert.True(ok)
	assert.InDelta(1.5, first, 1e-12)
	assert.InDelta(3.5, second, 1e-12)

	// Overwrite the oldest entry and re-check ordering
	assert.NoError(c.Add(5.0))
	first, second, ok = c.HalfMeans()
	assert.True(ok)
	assert.InDelta(2.5, first, 1e-12)
	assert.InDelta(4.5, second, 1e-12)

	assert.Equal(int64(5), c.TotalSeen)
	assert.Equal(4, c.Count)
}

func TestCircularMean(t *testing.T) {
	assert := assert.New(t)

	c := NewCircularFloat(4)
	assert.Equal(0.0, c.Mean())

	assert.NoError(c.Add(2.0))
	assert.NoError(c.Add(4.0))
	assert.InDelta(3.0, c.Mean(), 1e-12)

	assert.NoError(c.Add(4.0))
	assert.NoError(c.Add(4.0))
	assert.NoError(c.Add(4.0)) // wraps, evicting the 2.0
	assert.InDelta(4.0, c.Mean(), 1e-12)
}
