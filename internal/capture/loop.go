package capture

import (
	"context"
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"github.com/sideline-dev/sideline/internal/hud"
	"github.com/sideline-dev/sideline/internal/log"
	"github.com/sideline-dev/sideline/internal/pose"
	"github.com/sideline-dev/sideline/internal/timing"
)

// Source produces frames. *gocv.VideoCapture satisfies it.
type Source interface {
	Read(m *gocv.Mat) bool
}

// Writer persists annotated frames. *gocv.VideoWriter satisfies it.
type Writer interface {
	Write(img gocv.Mat) error
}

// Display shows frames and polls for keypresses. *gocv.Window
// satisfies it.
type Display interface {
	IMShow(img gocv.Mat)
	WaitKey(delay int) int
}

// Stats summarizes a completed capture run.
type Stats struct {
	Frames   int
	Detected int
	Elapsed  time.Duration
	Reason   string
}

// Loop ties a frame source to pose estimation, the HUD, and optional
// display and recording. Writer and Display may be nil.
type Loop struct {
	Source    Source
	Writer    Writer
	Display   Display
	Estimator pose.Estimator
	Overlay   *hud.Overlay
	FPS       *timing.Tracker
	Events    *log.Logger

	// Now is the clock used for FPS tracking. Defaults to time.Now.
	Now func() time.Time
}

// Run processes frames until the source fails, the user presses q or
// Esc, or the context is cancelled. The returned stats are valid even
// when an error is returned.
func (l *Loop) Run(ctx context.Context) (Stats, error) {
	start := time.Now()
	now := l.Now
	if now == nil {
		now = time.Now
	}

	frame := gocv.NewMat()
	defer frame.Close()

	var stats Stats
	for {
		select {
		case <-ctx.Done():
			stats.Reason = "interrupt"
			stats.Elapsed = time.Since(start)
			return stats, nil
		default:
		}

		if ok := l.Source.Read(&frame); !ok || frame.Empty() {
			stats.Reason = "source_closed"
			stats.Elapsed = time.Since(start)
			if stats.Frames == 0 {
				return stats, fmt.Errorf("camera produced no frames")
			}
			return stats, nil
		}
		stats.Frames++

		res, err := l.Estimator.Detect(&frame)
		if err != nil {
			if l.Events != nil {
				_ = l.Events.Append(log.Event{Event: log.EventFrameDrop, Reason: err.Error()})
			}
			continue
		}
		if res.Detected() {
			stats.Detected++
		}

		fps := 0.0
		if l.FPS != nil {
			fps = l.FPS.Update(now())
		}
		if l.Overlay != nil {
			l.Overlay.Draw(&frame, res, fps)
		}

		if l.Writer != nil {
			if err := l.Writer.Write(frame); err != nil {
				stats.Reason = "write_failed"
				stats.Elapsed = time.Since(start)
				return stats, fmt.Errorf("writing frame %d: %w", stats.Frames, err)
			}
		}

		if l.Display != nil {
			l.Display.IMShow(frame)
			if key := l.Display.WaitKey(1); key == 'q' || key == 27 {
				stats.Reason = "keypress"
				stats.Elapsed = time.Since(start)
				return stats, nil
			}
		}
	}
}
