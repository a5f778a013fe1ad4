package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsAverageAndFPS(t *testing.T) {
	require.NoError(t, MetricsInitialize())
	MetricsReset()

	// 1/64s frames: the 65th frame pushes the accumulator past one second,
	// at which point 64 frames had been counted.
	for i := 0; i < 70; i++ {
		require.NoError(t, MetricsUpdate(1.0/64.0))
	}

	fps, avg := MetricsFrame()
	assert.InDelta(t, 15.625, avg, 1e-9)
	assert.Equal(t, float64(64), fps)
	assert.Equal(t, avg, MetricsFrameTime())
	assert.Equal(t, fps, MetricsFPS())
}

func TestClock(t *testing.T) {
	base := time.Unix(100, 0)
	now := base
	c := NewClock()
	c.now = func() time.Time { return now }

	c.Update()
	assert.Equal(t, 0.0, c.Elapsed(), "non-started clock does not move")

	c.Start()
	now = base.Add(1500 * time.Millisecond)
	c.Update()
	assert.InDelta(t, 1.5, c.Elapsed(), 1e-9)

	c.Stop()
	now = base.Add(3 * time.Second)
	c.Update()
	assert.InDelta(t, 1.5, c.Elapsed(), 1e-9)
}
