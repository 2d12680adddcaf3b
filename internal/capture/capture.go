// Package capture opens camera devices and runs the frame loop that
// feeds pose estimation and the HUD.
package capture

import (
	"fmt"

	"gocv.io/x/gocv"
)

// OpenDevice opens the camera at the given index and requests the
// configured frame size. The device may negotiate a different size;
// callers should read back the actual dimensions.
func OpenDevice(index, width, height int) (*gocv.VideoCapture, error) {
	cam, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", index, err)
	}
	if !cam.IsOpened() {
		cam.Close()
		return nil, fmt.Errorf("camera %d is not available", index)
	}

	cam.Set(gocv.VideoCaptureFrameWidth, float64(width))
	cam.Set(gocv.VideoCaptureFrameHeight, float64(height))

	return cam, nil
}

// FrameSize reads back the negotiated capture dimensions.
func FrameSize(cam *gocv.VideoCapture) (width, height int) {
	return int(cam.Get(gocv.VideoCaptureFrameWidth)), int(cam.Get(gocv.VideoCaptureFrameHeight))
}

// NewWriter creates an mp4 video writer for annotated session footage.
func NewWriter(path string, width, height int, fps float64) (*gocv.VideoWriter, error) {
	w, err := gocv.VideoWriterFile(path, "mp4v", fps, width, height, true)
	if err != nil {
		return nil, fmt.Errorf("open video writer: %w", err)
	}
	if !w.IsOpened() {
		w.Close()
		return nil, fmt.Errorf("video writer rejected %s", path)
	}
	return w, nil
}

// Probe reports whether a camera exists at the given index.
func Probe(index int) bool {
	cam, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return false
	}
	defer cam.Close()
	return cam.IsOpened()
}
