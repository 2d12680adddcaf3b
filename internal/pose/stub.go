package pose

import "gocv.io/x/gocv"

// Stub is a no-op estimator used when no model is configured. It keeps
// the capture loop running with an empty pose on every frame.
type Stub struct{}

// Detect always reports no person.
func (Stub) Detect(*gocv.Mat) (Result, error) {
	return Result{}, nil
}

// Close is a no-op.
func (Stub) Close() error {
	return nil
}
