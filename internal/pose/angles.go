package pose

import (
	"image"
	"math"
)

// Angle returns the angle in degrees at vertex b formed by a-b-c,
// clamped to [0, 180]. Returns false when either vector is degenerate.
func Angle(a, b, c image.Point) (float64, bool) {
	v1x := float64(a.X - b.X)
	v1y := float64(a.Y - b.Y)
	v2x := float64(c.X - b.X)
	v2y := float64(c.Y - b.Y)

	mag1 := math.Hypot(v1x, v1y)
	mag2 := math.Hypot(v2x, v2y)
	if mag1 < 1e-6 || mag2 < 1e-6 {
		return 0, false
	}

	cos := (v1x*v2x + v1y*v2y) / (mag1 * mag2)
	cos = math.Max(-1, math.Min(1, cos))

	return math.Acos(cos) * 180 / math.Pi, true
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b image.Point) image.Point {
	return image.Pt((a.X+b.X)/2, (a.Y+b.Y)/2)
}

// ComputeAngles derives elbow and shoulder angles from the joint map.
// Elbow angles use shoulder-elbow-wrist; shoulder angles use the
// shoulder midpoint as the torso reference. Angles whose joints are
// missing are omitted.
func ComputeAngles(joints map[string]image.Point) map[string]float64 {
	angles := make(map[string]float64)

	vertex := func(name, a, b, c string) {
		pa, okA := joints[a]
		pb, okB := joints[b]
		pc, okC := joints[c]
		if !okA || !okB || !okC {
			return
		}
		if deg, ok := Angle(pa, pb, pc); ok {
			angles[name] = deg
		}
	}

	vertex(LeftElbow, LeftShoulder, LeftElbow, LeftWrist)
	vertex(RightElbow, RightShoulder, RightElbow, RightWrist)

	ls, okL := joints[LeftShoulder]
	rs, okR := joints[RightShoulder]
	if okL && okR {
		torso := Midpoint(ls, rs)
		if le, ok := joints[LeftElbow]; ok {
			if deg, valid := Angle(torso, ls, le); valid {
				angles[LeftShoulder] = deg
			}
		}
		if re, ok := joints[RightElbow]; ok {
			if deg, valid := Angle(torso, rs, re); valid {
				angles[RightShoulder] = deg
			}
		}
	}

	return angles
}
