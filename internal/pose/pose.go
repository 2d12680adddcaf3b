// Package pose wraps pose-estimation backends behind a common
// Estimator interface and derives joint angles from the detected
// keypoints.
package pose

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Joint names used across detection, angles, and the HUD.
const (
	Nose          = "NOSE"
	LeftEye       = "LEFT_EYE"
	RightEye      = "RIGHT_EYE"
	LeftEar       = "LEFT_EAR"
	RightEar      = "RIGHT_EAR"
	LeftShoulder  = "LEFT_SHOULDER"
	RightShoulder = "RIGHT_SHOULDER"
	LeftElbow     = "LEFT_ELBOW"
	RightElbow    = "RIGHT_ELBOW"
	LeftWrist     = "LEFT_WRIST"
	RightWrist    = "RIGHT_WRIST"
	LeftHip       = "LEFT_HIP"
	RightHip      = "RIGHT_HIP"
)

// Result holds one frame's detection. Joints maps joint names to pixel
// coordinates; missing joints are absent from the map. Angles maps
// angle names (keyed by the vertex joint) to degrees. A zero Result
// means no person was detected.
type Result struct {
	Joints map[string]image.Point
	Angles map[string]float64
	Score  float64
}

// Detected reports whether a person was found in the frame.
func (r Result) Detected() bool {
	return len(r.Joints) > 0 && r.Score > 0
}

// Estimator analyzes frames for human pose keypoints.
type Estimator interface {
	// Detect returns the pose found in a BGR frame, or a zero Result
	// if no person is visible.
	Detect(frame *gocv.Mat) (Result, error)

	// Close releases any resources held by the estimator.
	Close() error
}

// Config selects and tunes the estimation backend.
type Config struct {
	Backend       string // "movenet" | "stub"
	ModelPath     string
	MinConfidence float64
}

// New builds the configured estimator. An empty backend or "stub"
// yields the no-op estimator.
func New(cfg Config) (Estimator, error) {
	switch cfg.Backend {
	case "", "stub":
		return Stub{}, nil
	case "movenet":
		return NewMoveNet(cfg.ModelPath, cfg.MinConfidence)
	default:
		return nil, fmt.Errorf("unknown pose backend %q", cfg.Backend)
	}
}
