package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"pitch-renderer/internal/mathutil"
)

// Camera is a perspective camera looking from Eye at Target.
type Camera struct {
	Eye    mathutil.Vec3
	Target mathutil.Vec3
	Up     mathutil.Vec3
	FOV    float64 // vertical, degrees
	Near   float64
	Far    float64
}

// DefaultView is the preset used for unknown or empty view names.
const DefaultView = "catcher"

// presets are the fixed camera position / look-target pairs.
var presets = map[string][2]mathutil.Vec3{
	"catcher": {{0, 2.6, -65}, {0, 2.5, 0}},
	"pitcher": {{0, 6.2, 5.5}, {0, 2.2, -60.5}},
	"rhh":     {{1.2, 4.1, -65}, {0, 1.5, 0}},
	"lhh":     {{-1.2, 4.1, -65}, {0, 1.5, 0}},
	"1b":      {{50, 4.8, -30}, {0, 5, -30}},
	"3b":      {{-50, 4.8, -30}, {0, 5, -30}},
}

// Views lists preset names in sorted order.
func Views() []string {
	names := make([]string, 0, len(presets))
	for k := range presets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Preset returns the camera for a view name. ok is false when the name is
// unknown, in which case the catcher view is returned.
func Preset(name string) (Camera, bool) {
	p, ok := presets[name]
	if !ok {
		p = presets[DefaultView]
	}
	return Camera{
		Eye:    p[0],
		Target: p[1],
		Up:     mathutil.Vec3{0, 1, 0},
		FOV:    60,
		Near:   0.1,
		Far:    2000,
	}, ok
}

// ViewProjection returns the combined world→clip matrix for an aspect ratio.
func (c Camera) ViewProjection(aspect float64) mgl64.Mat4 {
	view := mgl64.LookAtV(c.Eye.Mgl(), c.Target.Mgl(), c.Up.Mgl())
	proj := mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
	return proj.Mul4(view)
}
