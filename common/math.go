package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// EaseOutExpo decelerates sharply: 0 at t=0, 1 at t=1.
func EaseOutExpo(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Normalize returns the unit vector of (x, y) and its original length. A zero
// vector stays zero.
func Normalize(x, y float64) (float64, float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0, 0
	}
	return x / l, y / l, l
}

// Forward returns the unit direction a yaw angle faces and the unit vector to
// its right.
func Forward(yaw float64) (fx, fy, rx, ry float64) {
	fx, fy = math.Cos(yaw), math.Sin(yaw)
	return fx, fy, -fy, fx
}
