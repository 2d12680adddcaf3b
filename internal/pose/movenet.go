package pose

import (
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"
)

// movenetKeypoints is the model's output order. The first 13 entries
// map onto the named joints; knees and ankles are decoded but unused
// by the HUD.
var movenetKeypoints = []string{
	Nose, LeftEye, RightEye, LeftEar, RightEar,
	LeftShoulder, RightShoulder, LeftElbow, RightElbow,
	LeftWrist, RightWrist, LeftHip, RightHip,
	"LEFT_KNEE", "RIGHT_KNEE", "LEFT_ANKLE", "RIGHT_ANKLE",
}

// movenetInputSize is the square input resolution of the Thunder model.
const movenetInputSize = 256

// MoveNet runs a single-person MoveNet network through the OpenCV DNN
// module.
type MoveNet struct {
	net     gocv.Net
	minConf float64
}

// NewMoveNet loads the ONNX model at modelPath. Keypoints scoring
// below minConf are dropped from results.
func NewMoveNet(modelPath string, minConf float64) (*MoveNet, error) {
	if modelPath == "" {
		return nil, fmt.Errorf("pose model path not configured")
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("pose model: %w", err)
	}

	net := gocv.ReadNet(modelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("loading pose model %s: empty network", modelPath)
	}

	if minConf <= 0 {
		minConf = 0.5
	}

	return &MoveNet{net: net, minConf: minConf}, nil
}

// Detect resizes the frame to the model input, runs a forward pass,
// and scales the 17 keypoints back into frame coordinates.
func (m *MoveNet) Detect(frame *gocv.Mat) (Result, error) {
	if frame.Empty() {
		return Result{}, nil
	}

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(*frame, &resized, image.Pt(movenetInputSize, movenetInputSize), 0, 0, gocv.InterpolationLinear)

	blob := gocv.BlobFromImage(resized, 1.0, image.Pt(movenetInputSize, movenetInputSize),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	m.net.SetInput(blob, "")
	out := m.net.Forward("")
	defer out.Close()

	// Output shape is [1,1,17,3]: normalized (y, x, score) per keypoint.
	data, err := out.DataPtrFloat32()
	if err != nil {
		return Result{}, fmt.Errorf("reading model output: %w", err)
	}
	if len(data) < len(movenetKeypoints)*3 {
		return Result{}, fmt.Errorf("unexpected model output size %d", len(data))
	}

	w := frame.Cols()
	h := frame.Rows()
	joints := make(map[string]image.Point)
	var total float64

	for i, name := range movenetKeypoints {
		y := float64(data[i*3])
		x := float64(data[i*3+1])
		score := float64(data[i*3+2])
		total += score

		if score < m.minConf {
			continue
		}
		joints[name] = image.Pt(int(x*float64(w)), int(y*float64(h)))
	}

	score := total / float64(len(movenetKeypoints))
	if len(joints) == 0 {
		return Result{}, nil
	}

	return Result{
		Joints: joints,
		Angles: ComputeAngles(joints),
		Score:  score,
	}, nil
}

// Close releases the network.
func (m *MoveNet) Close() error {
	return m.net.Close()
}
