package capture

import (
	"context"
	"testing"

	"gocv.io/x/gocv"

	"github.com/sideline-dev/sideline/internal/hud"
	"github.com/sideline-dev/sideline/internal/pose"
	"github.com/sideline-dev/sideline/internal/timing"
)

// fakeSource yields a fixed number of blank frames, then reports EOF.
type fakeSource struct {
	frames int
	read   int
}

func (s *fakeSource) Read(m *gocv.Mat) bool {
	if s.read >= s.frames {
		return false
	}
	s.read++
	filled := gocv.NewMatWithSize(120, 160, gocv.MatTypeCV8UC3)
	defer filled.Close()
	filled.CopyTo(m)
	return true
}

// fakeDisplay shows frames and returns a quit key after a set count.
type fakeDisplay struct {
	shown   int
	quitAt  int
	quitKey int
}

func (d *fakeDisplay) IMShow(img gocv.Mat) { d.shown++ }

func (d *fakeDisplay) WaitKey(delay int) int {
	if d.shown >= d.quitAt {
		return d.quitKey
	}
	return -1
}

func TestRunDrainsSource(t *testing.T) {
	l := &Loop{
		Source:    &fakeSource{frames: 5},
		Estimator: &pose.Stub{},
		Overlay:   hud.New(nil),
		FPS:       timing.NewTracker(0),
	}

	stats, err := l.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Frames != 5 {
		t.Errorf("frames: got %d, want 5", stats.Frames)
	}
	if stats.Reason != "source_closed" {
		t.Errorf("reason: got %q, want source_closed", stats.Reason)
	}
	if stats.Detected != 0 {
		t.Errorf("stub estimator should detect nothing, got %d", stats.Detected)
	}
}

func TestRunEmptySourceFails(t *testing.T) {
	l := &Loop{
		Source:    &fakeSource{frames: 0},
		Estimator: &pose.Stub{},
	}

	if _, err := l.Run(context.Background()); err == nil {
		t.Fatal("expected an error for a source with no frames")
	}
}

func TestRunStopsOnQuitKey(t *testing.T) {
	display := &fakeDisplay{quitAt: 3, quitKey: 'q'}
	l := &Loop{
		Source:    &fakeSource{frames: 100},
		Display:   display,
		Estimator: &pose.Stub{},
	}

	stats, err := l.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Reason != "keypress" {
		t.Errorf("reason: got %q, want keypress", stats.Reason)
	}
	if stats.Frames != 3 {
		t.Errorf("frames: got %d, want 3", stats.Frames)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := &Loop{
		Source:    &fakeSource{frames: 100},
		Estimator: &pose.Stub{},
	}

	stats, err := l.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Reason != "interrupt" {
		t.Errorf("reason: got %q, want interrupt", stats.Reason)
	}
	if stats.Frames != 0 {
		t.Errorf("cancelled before start, frames: got %d", stats.Frames)
	}
}
