package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	require.NoError(t, c.AcquireMemory(50))
	assert.Equal(t, int64(50), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(40))
	assert.Equal(t, int64(90), c.MemoryUsage())

	// Limit exceeded, usage unchanged
	assert.ErrorIs(t, c.AcquireMemory(20), ErrMemoryLimitExceeded)
	assert.Equal(t, int64(90), c.MemoryUsage())

	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())

	require.NoError(t, c.AcquireMemory(20))
	assert.Equal(t, int64(60), c.MemoryUsage())
	assert.Equal(t, int64(90), c.PeakMemoryUsage())
	assert.Equal(t, int64(100), c.MemoryLimit())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 0})

	require.NoError(t, c.AcquireMemory(1000))
	assert.Equal(t, int64(1000), c.MemoryUsage())

	c.ReleaseMemory(500)
	assert.Equal(t, int64(500), c.MemoryUsage())
	assert.Equal(t, int64(1000), c.PeakMemoryUsage())
}

func TestController_NonPositive(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 10})

	require.NoError(t, c.AcquireMemory(0))
	require.NoError(t, c.AcquireMemory(-5))
	c.ReleaseMemory(0)
	assert.Zero(t, c.MemoryUsage())
}

func TestController_Nil(t *testing.T) {
	var c *Controller

	require.NoError(t, c.AcquireMemory(1<<40))
	c.ReleaseMemory(1 << 40)
	assert.Zero(t, c.MemoryUsage())
	assert.Zero(t, c.PeakMemoryUsage())
	assert.Zero(t, c.MemoryLimit())
}
