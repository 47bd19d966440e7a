// Package trajectory derives constant-acceleration flight paths from pitch
// records and evaluates them in the scene frame.
//
// Scene frame: the rubber sits at Z=0 and home plate at Z=PlateZ, Y is
// height above the ground, X is positive toward the third-base side.
// Statcast measures x toward the catcher's right from behind the plate,
// y from the plate toward the mound and z up, so the mapping is
// (x, y, z) → (−x, z, y − 60.5).
package trajectory

import (
	"math"

	"pitch-renderer/internal/dataset"
	"pitch-renderer/internal/mathutil"
)

const (
	// PlateZ is the scene Z of the front of home plate.
	PlateZ = -60.5
)

// Kinematics is everything needed to place a ball at any flight time.
type Kinematics struct {
	Release      mathutil.Vec3 // ft
	Velocity     mathutil.Vec3 // ft/s
	Acceleration mathutil.Vec3 // ft/s²
	SpinRate     float64       // rpm
	SpinAxis     mathutil.Vec3 // unit
	SpeedMPH     float64       // display value, fixed at creation
}

// DefaultSpinAxis is used when the record carries no spin axis.
var DefaultSpinAxis = mathutil.Vec3{0, 0, 1}

// Derive extracts kinematic parameters from a record. Missing fields are
// zero, which yields a stationary ball at the origin.
func Derive(rec dataset.PitchRecord) Kinematics {
	k := Kinematics{
		Release: mathutil.Vec3{
			-rec.ReleasePosX.Or(0),
			rec.ReleasePosZ.Or(0),
			-rec.ReleaseExtension.Or(0),
		},
		Velocity: mathutil.Vec3{
			-rec.VX0.Or(0),
			rec.VZ0.Or(0),
			rec.VY0.Or(0),
		},
		Acceleration: mathutil.Vec3{
			-rec.AX.Or(0),
			rec.AZ.Or(0),
			rec.AY.Or(0),
		},
		SpinRate: SpinRate(rec),
		SpinAxis: DefaultSpinAxis,
		SpeedMPH: DisplaySpeed(rec),
	}
	if deg, ok := rec.SpinAxis.Get(); ok {
		k.SpinAxis = mathutil.AxisFromDegrees(deg)
	}
	return k
}

// DisplaySpeed returns the velocity shown for a ball in mph.
// release_speed is labeled ft/s by the source and converted; otherwise
// release_speed_mph is used as-is; otherwise the magnitude of the initial
// velocity vector is converted.
func DisplaySpeed(rec dataset.PitchRecord) float64 {
	if v, ok := rec.ReleaseSpeed.Get(); ok {
		return v * mathutil.FtPerSecToMPH
	}
	if v, ok := rec.ReleaseSpeedMPH.Get(); ok {
		return v
	}
	mag := math.Sqrt(sq(rec.VX0.Or(0)) + sq(rec.VY0.Or(0)) + sq(rec.VZ0.Or(0)))
	return mag * mathutil.FtPerSecToMPH
}

// SpinRate returns the first spin field present, in rpm.
func SpinRate(rec dataset.PitchRecord) float64 {
	return dataset.First(rec.Spin, rec.RPM, rec.ReleaseSpinRate).Or(0)
}

// Position evaluates release + v·t + ½·a·t² per axis.
func (k Kinematics) Position(t float64) mathutil.Vec3 {
	var p mathutil.Vec3
	for i := 0; i < 3; i++ {
		p[i] = k.Release[i] + k.Velocity[i]*t + 0.5*k.Acceleration[i]*t*t
	}
	return p
}

// SpinDelta returns the rotation increment for a frame of dt seconds as
// an axis and an angle in radians. The angle is zero when the ball has no
// spin.
func (k Kinematics) SpinDelta(dt float64) (mathutil.Vec3, float64) {
	if k.SpinRate <= 0 {
		return k.SpinAxis, 0
	}
	return k.SpinAxis, mathutil.RPMToRadPerSec(k.SpinRate) * dt
}

// Arrived reports whether a position has reached the plate plane.
func Arrived(p mathutil.Vec3) bool {
	return p[2] <= PlateZ
}

// PlateTime returns the first flight time at which the ball reaches the
// plate plane. ok is false when it never does.
func (k Kinematics) PlateTime() (float64, bool) {
	// ½a·t² + v·t + (z0 − plate) = 0
	a, b, c := 0.5*k.Acceleration[2], k.Velocity[2], k.Release[2]-PlateZ
	if c <= 0 {
		return 0, true
	}
	if math.Abs(a) < 1e-12 {
		if b >= 0 {
			return 0, false
		}
		return -c / b, true
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sd := math.Sqrt(disc)
	best, found := 0.0, false
	for _, t := range [2]float64{(-b - sd) / (2 * a), (-b + sd) / (2 * a)} {
		if t > 0 && (!found || t < best) {
			best, found = t, true
		}
	}
	return best, found
}

func sq(v float64) float64 { return v * v }
