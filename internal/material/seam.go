package material

import (
	"math"

	"pitch-renderer/internal/mathutil"
)

// Seam geometry in implicit-function space.
const (
	// SeamWaist shapes the figure-eight; 0.30–0.45 reads as a real ball.
	SeamWaist = 0.38
	// SeamWidth is the band half-width around the zero level set.
	SeamWidth = 0.2
	// SeamSoft feathers the band edge.
	SeamSoft = 0.010
)

// UVToAngles maps texture coordinates in [0,1] to spherical angles:
// theta in [-π, π], phi in [0, π].
func UVToAngles(u, v float64) (theta, phi float64) {
	return (u*2 - 1) * math.Pi, v * math.Pi
}

// Seam evaluates the figure-eight level set f = sin(φ)·sin(2θ) − s·cos(φ).
// The seam is the curve f = 0.
func Seam(theta, phi, s float64) float64 {
	return math.Sin(phi)*math.Sin(2*theta) - s*math.Cos(phi)
}

// BandMask is 1 inside |f| ≤ width−soft, 0 outside |f| ≥ width+soft and a
// decreasing cubic smoothstep in between.
func BandMask(f, width, soft float64) float64 {
	af := math.Abs(f)
	a := width - soft
	b := width + soft
	if af <= a {
		return 1
	}
	if af >= b {
		return 0
	}
	return 1 - mathutil.Smoothstep((af-a)/(b-a))
}
