package timing

import (
	"math"
	"testing"
	"time"
)

func TestUpdateReturnsZeroUntilTwoSamples(t *testing.T) {
	tr := NewTracker(30)

	if fps := tr.Update(time.Unix(100, 0)); fps != 0 {
		t.Errorf("first sample fps: got %v, want 0", fps)
	}
	if fps := tr.Update(time.Unix(101, 0)); fps == 0 {
		t.Error("second sample should produce an estimate")
	}
}

func TestUpdateSteadyRate(t *testing.T) {
	tr := NewTracker(30)

	start := time.Unix(1000, 0)
	var fps float64
	// 60 frames at exactly 30 fps.
	for i := 0; i < 60; i++ {
		fps = tr.Update(start.Add(time.Duration(i) * time.Second / 30))
	}

	if math.Abs(fps-30) > 0.1 {
		t.Errorf("steady 30fps stream: got %v", fps)
	}
}

func TestUpdateWindowForgetsOldFrames(t *testing.T) {
	tr := NewTracker(5)

	start := time.Unix(1000, 0)
	// Slow frames first, then fast ones that fill the window.
	now := start
	for i := 0; i < 5; i++ {
		now = now.Add(time.Second)
		tr.Update(now)
	}
	var fps float64
	for i := 0; i < 10; i++ {
		now = now.Add(time.Second / 60)
		fps = tr.Update(now)
	}

	if math.Abs(fps-60) > 1 {
		t.Errorf("window should only see fast frames: got %v", fps)
	}
}

func TestNewTrackerDefaultWindow(t *testing.T) {
	tr := NewTracker(0)
	if tr.window != 30 {
		t.Errorf("default window: got %d, want 30", tr.window)
	}
}
