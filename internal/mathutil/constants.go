package mathutil

import "math"

// Unit conversions used by the pitch model.
const (
	// FtPerSecToMPH converts feet per second to miles per hour.
	FtPerSecToMPH = 0.681818

	// Gravity in ft/s².
	Gravity = 32.174

	InchesPerFoot = 12.0

	TwoPi = 2 * math.Pi
)

// RPMToRadPerSec converts revolutions per minute to radians per second.
func RPMToRadPerSec(rpm float64) float64 {
	return rpm / 60 * TwoPi
}

// Smoothstep is the cubic Hermite ramp 3t²−2t³ with t clamped to [0,1].
func Smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

// Lerp blends a toward b by t.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
