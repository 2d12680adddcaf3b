// Package timing provides frame-rate tracking for the capture loop.
package timing

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// defaultWindow is the number of recent frames averaged over.
const defaultWindow = 30

// Tracker estimates FPS from a rolling window of frame timestamps.
type Tracker struct {
	window int
	stamps []float64 // unix seconds
}

// NewTracker creates a Tracker averaging over the given window size.
// A non-positive window uses the default of 30 frames.
func NewTracker(window int) *Tracker {
	if window <= 0 {
		window = defaultWindow
	}
	return &Tracker{window: window}
}

// Update records a frame timestamp and returns the current FPS
// estimate, or 0 until at least two samples exist.
func (t *Tracker) Update(now time.Time) float64 {
	t.stamps = append(t.stamps, float64(now.UnixNano())/1e9)
	if len(t.stamps) > t.window {
		t.stamps = t.stamps[1:]
	}
	if len(t.stamps) < 2 {
		return 0
	}

	deltas := make([]float64, len(t.stamps)-1)
	for i := range deltas {
		deltas[i] = t.stamps[i+1] - t.stamps[i]
	}

	mean := stat.Mean(deltas, nil)
	if mean <= 0 {
		return 0
	}
	return 1 / mean
}
