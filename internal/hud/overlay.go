// Package hud draws the heads-up display on captured frames: the
// exoskeleton, joint angle labels, FPS, pose status, and the session
// banner.
package hud

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"gocv.io/x/gocv"

	"github.com/sideline-dev/sideline/internal/pose"
	"github.com/sideline-dev/sideline/internal/session"
)

// Palette for the exoskeleton.
var (
	headColor     = color.RGBA{0, 255, 255, 0}   // cyan
	leftArmColor  = color.RGBA{100, 100, 255, 0} // light blue
	rightArmColor = color.RGBA{255, 0, 255, 0}   // magenta
	jointColor    = color.RGBA{0, 255, 0, 0}     // green
	handColor     = color.RGBA{255, 165, 0, 0}   // orange
	torsoColor    = color.RGBA{200, 200, 200, 0} // light gray
	textColor     = color.RGBA{255, 255, 255, 0}
	outlineColor  = color.RGBA{0, 0, 0, 0}
	bannerColor   = color.RGBA{255, 255, 0, 0} // yellow
	okColor       = color.RGBA{0, 255, 0, 0}
	lostColor     = color.RGBA{255, 0, 0, 0}
)

// Angle color thresholds in degrees.
const (
	flexedMax   = 80
	extendedMin = 160
)

// Drawing parameters.
const (
	jointRadius   = 6
	handRadius    = 10
	headRadius    = 8
	eyeRadius     = 4
	lineThickness = 3
	font          = gocv.FontHersheySimplex
)

// AngleColor maps an angle to its feedback color: green when flexed,
// blue when extended, yellow in between.
func AngleColor(deg float64) color.RGBA {
	switch {
	case deg < flexedMax:
		return color.RGBA{0, 255, 0, 0}
	case deg > extendedMin:
		return color.RGBA{0, 0, 255, 0}
	default:
		return color.RGBA{255, 255, 0, 0}
	}
}

// Overlay draws the HUD for one session. A nil session info omits the
// banner.
type Overlay struct {
	info *session.Info
}

// New creates an Overlay. info may be nil.
func New(info *session.Info) *Overlay {
	return &Overlay{info: info}
}

// Draw renders the complete HUD onto the frame in place.
func (o *Overlay) Draw(frame *gocv.Mat, res pose.Result, fps float64) {
	if res.Detected() {
		o.drawExoskeleton(frame, res)
	}
	o.drawInfo(frame, res, fps)
	if o.info != nil {
		o.drawBanner(frame)
	}
}

func (o *Overlay) drawExoskeleton(frame *gocv.Mat, res pose.Result) {
	j := res.Joints

	// Torso bar between the shoulders.
	o.line(frame, j, pose.LeftShoulder, pose.RightShoulder, torsoColor, 2)

	// Arms.
	o.line(frame, j, pose.LeftShoulder, pose.LeftElbow, leftArmColor, lineThickness)
	o.line(frame, j, pose.LeftElbow, pose.LeftWrist, leftArmColor, lineThickness)
	o.line(frame, j, pose.RightShoulder, pose.RightElbow, rightArmColor, lineThickness)
	o.line(frame, j, pose.RightElbow, pose.RightWrist, rightArmColor, lineThickness)

	// Neck lines from the nose to each shoulder.
	o.line(frame, j, pose.Nose, pose.LeftShoulder, headColor, 2)
	o.line(frame, j, pose.Nose, pose.RightShoulder, headColor, 2)

	// Joints.
	o.joint(frame, j, pose.LeftShoulder, jointColor, jointRadius)
	o.joint(frame, j, pose.RightShoulder, jointColor, jointRadius)
	o.joint(frame, j, pose.LeftElbow, jointColor, jointRadius)
	o.joint(frame, j, pose.RightElbow, jointColor, jointRadius)
	o.joint(frame, j, pose.LeftWrist, handColor, handRadius)
	o.joint(frame, j, pose.RightWrist, handColor, handRadius)
	o.joint(frame, j, pose.Nose, headColor, headRadius)
	o.joint(frame, j, pose.LeftEye, headColor, eyeRadius)
	o.joint(frame, j, pose.RightEye, headColor, eyeRadius)

	// Angle labels at elbows and shoulders.
	for _, name := range []string{pose.LeftElbow, pose.RightElbow, pose.LeftShoulder, pose.RightShoulder} {
		pt, okJoint := j[name]
		deg, okAngle := res.Angles[name]
		if !okJoint || !okAngle {
			continue
		}
		o.angleLabel(frame, pt, deg)
	}
}

func (o *Overlay) line(frame *gocv.Mat, joints map[string]image.Point, from, to string, c color.RGBA, thickness int) {
	p1, ok1 := joints[from]
	p2, ok2 := joints[to]
	if !ok1 || !ok2 {
		return
	}
	gocv.Line(frame, p1, p2, c, thickness)
}

func (o *Overlay) joint(frame *gocv.Mat, joints map[string]image.Point, name string, c color.RGBA, radius int) {
	pt, ok := joints[name]
	if !ok {
		return
	}
	gocv.Circle(frame, pt, radius, c, -1)
	// White outline for visibility against busy backgrounds.
	gocv.Circle(frame, pt, radius, textColor, 1)
}

func (o *Overlay) angleLabel(frame *gocv.Mat, pt image.Point, deg float64) {
	text := fmt.Sprintf("%d", int(deg+0.5))
	org := image.Pt(pt.X+15, pt.Y-15)

	gocv.PutText(frame, text, org, font, 0.6, outlineColor, 4)
	gocv.PutText(frame, text, org, font, 0.6, AngleColor(deg), 2)
}

// drawInfo renders FPS top-left and pose status top-right.
func (o *Overlay) drawInfo(frame *gocv.Mat, res pose.Result, fps float64) {
	fpsText := fmt.Sprintf("FPS: %.1f", fps)
	gocv.PutText(frame, fpsText, image.Pt(10, 30), font, 0.7, outlineColor, 3)
	gocv.PutText(frame, fpsText, image.Pt(10, 30), font, 0.7, textColor, 2)

	status := "POSE: LOST"
	statusColor := lostColor
	if res.Detected() {
		status = "POSE: OK"
		statusColor = okColor
	}

	size := gocv.GetTextSize(status, font, 0.7, 2)
	org := image.Pt(frame.Cols()-size.X-10, 30)
	gocv.PutText(frame, status, org, font, 0.7, outlineColor, 3)
	gocv.PutText(frame, status, org, font, 0.7, statusColor, 2)
}

// drawBanner renders the session context centered at the top of the
// frame over a translucent box.
func (o *Overlay) drawBanner(frame *gocv.Mat) {
	text := o.bannerText()

	const scale = 0.65
	const thickness = 2
	size := gocv.GetTextSize(text, font, scale, thickness)
	x := (frame.Cols() - size.X) / 2
	y := 60

	const pad = 10
	box := image.Rect(x-pad, y-size.Y-pad, x+size.X+pad, y+pad)

	// Translucent background.
	overlay := frame.Clone()
	gocv.Rectangle(&overlay, box, outlineColor, -1)
	gocv.AddWeighted(overlay, 0.6, *frame, 0.4, 0, frame)
	overlay.Close()

	gocv.Rectangle(frame, box, bannerColor, 2)
	gocv.PutText(frame, text, image.Pt(x, y), font, scale, outlineColor, thickness+2)
	gocv.PutText(frame, text, image.Pt(x, y), font, scale, bannerColor, thickness)
}

func (o *Overlay) bannerText() string {
	sport := strings.ToUpper(strings.ReplaceAll(o.info.Sport, "_", " "))
	player := fmt.Sprintf("%s #%d (%s)", o.info.Player.FullName, o.info.Player.Number, o.info.Player.Position)

	if o.info.Exercise != "" {
		return fmt.Sprintf("%s - %s - %s", sport, session.Title(o.info.Exercise), player)
	}
	return fmt.Sprintf("%s - %s", sport, player)
}
