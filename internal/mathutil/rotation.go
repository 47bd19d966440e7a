package mathutil

import "math"

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// AxisFromDegrees maps an angle in the horizontal plane to a unit vector
// (cos r, 0, sin r).
func AxisFromDegrees(deg float64) Vec3 {
	r := Deg2Rad(deg)
	return Vec3{math.Cos(r), 0, math.Sin(r)}.Normalize()
}
