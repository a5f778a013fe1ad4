package core

import (
	"sync"

	"github.com/spaghettifunk/gulag/engine/containers"
)

const AVG_COUNT = 30

type MetricsState struct {
	// frame times in ms, the last AVG_COUNT frames
	samples            *containers.RingQueue[float64]
	MSavg              float64
	Frames             int32
	AccumulatedFrameMS float64
	FPS                float64
}

func newMetricsState() *MetricsState {
	return &MetricsState{
		samples: containers.NewRingQueue[float64](AVG_COUNT),
	}
}

var onceMetrics sync.Once
var metricsMu sync.Mutex
var metricsState *MetricsState = nil

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsMu.Lock()
		defer metricsMu.Unlock()
		metricsState = newMetricsState()
	})
	return nil
}

// MetricsUpdate records the duration, in seconds, of the frame that just ended.
func MetricsUpdate(frameElapsedTime float64) error {
	metricsMu.Lock()
	defer metricsMu.Unlock()

	if metricsState == nil {
		return ErrNotInitialized
	}

	// Calculate frame ms average
	frameMS := frameElapsedTime * 1000.0
	metricsState.samples.Push(frameMS)
	if metricsState.samples.IsFull() {
		sum := 0.0
		metricsState.samples.Each(func(ms float64) { sum += ms })
		metricsState.MSavg = sum / float64(AVG_COUNT)
	}

	// Calculate Frames per second.
	metricsState.AccumulatedFrameMS += frameMS
	if metricsState.AccumulatedFrameMS > 1000 {
		metricsState.FPS = float64(metricsState.Frames)
		metricsState.AccumulatedFrameMS -= 1000
		metricsState.Frames = 0
	}

	// Count all Frames.
	metricsState.Frames++
	return nil
}

func MetricsFPS() float64 {
	fps, _ := MetricsFrame()
	return fps
}

func MetricsFrameTime() float64 {
	_, avg := MetricsFrame()
	return avg
}

// MetricsFrame returns the frames per second and the average frame time in ms.
func MetricsFrame() (float64, float64) {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	if metricsState == nil {
		return 0, 0
	}
	return metricsState.FPS, metricsState.MSavg
}

// MetricsReset clears the collected samples without dropping the state.
func MetricsReset() {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	if metricsState != nil {
		metricsState = newMetricsState()
	}
}
