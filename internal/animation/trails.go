package animation

import (
	"pitch-renderer/internal/material"
	"pitch-renderer/internal/mathutil"
	"pitch-renderer/internal/scene"
)

// TrailMaxAge is how long a trail marker survives, in clock seconds.
const TrailMaxAge = 9.5

// Marker is one trail dot.
type Marker struct {
	Tag       string // owning ball key
	Position  mathutil.Vec3
	SpawnedAt float64
	Node      scene.NodeID
}

// Trails spawns and ages trail markers.
type Trails struct {
	scene   *scene.Scene
	enabled bool
	markers []Marker
}

// NewTrails creates a disabled trail manager drawing into sc.
func NewTrails(sc *scene.Scene) *Trails {
	return &Trails{scene: sc}
}

// Enabled reports whether markers are being spawned.
func (t *Trails) Enabled() bool { return t.enabled }

// SetEnabled toggles spawning. Turning trails off removes every marker
// immediately; turning them on does not backfill history.
func (t *Trails) SetEnabled(on bool) {
	t.enabled = on
	if !on {
		t.Clear()
	}
}

// MaybeSpawn drops a marker at the ball's current displayed position when
// trails are enabled.
func (t *Trails) MaybeSpawn(b *Ball, now float64) bool {
	if !t.enabled {
		return false
	}
	n := t.scene.Node(b.Node)
	if n == nil {
		return false
	}
	pos := n.Position
	id := t.scene.Add(scene.Node{
		Kind:     scene.KindTrail,
		Tag:      b.Key,
		Position: pos,
		Radius:   scene.TrailDotRadius,
		Color:    material.TrailColor(b.PitchType),
		Visible:  true,
	})
	t.markers = append(t.markers, Marker{Tag: b.Key, Position: pos, SpawnedAt: now, Node: id})
	return true
}

// Cull removes markers older than TrailMaxAge.
func (t *Trails) Cull(now float64) int {
	return t.removeWhere(func(m Marker) bool { return now-m.SpawnedAt > TrailMaxAge })
}

// RemoveTag removes every marker owned by a ball key.
func (t *Trails) RemoveTag(tag string) int {
	return t.removeWhere(func(m Marker) bool { return m.Tag == tag })
}

// Clear removes every marker.
func (t *Trails) Clear() int {
	return t.removeWhere(func(Marker) bool { return true })
}

func (t *Trails) removeWhere(match func(Marker) bool) int {
	kept := t.markers[:0]
	removed := 0
	for _, m := range t.markers {
		if match(m) {
			t.scene.Remove(m.Node)
			removed++
			continue
		}
		kept = append(kept, m)
	}
	t.markers = kept
	return removed
}

// Len returns the number of live markers.
func (t *Trails) Len() int { return len(t.markers) }

// Each visits markers oldest first.
func (t *Trails) Each(fn func(Marker)) {
	for _, m := range t.markers {
		fn(m)
	}
}
