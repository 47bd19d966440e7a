package animation

import (
	"github.com/rs/zerolog"

	"pitch-renderer/internal/dataset"
	"pitch-renderer/internal/material"
	"pitch-renderer/internal/scene"
	"pitch-renderer/internal/trajectory"
)

// Ball is one displayed pitch.
type Ball struct {
	Key       string // "<pitchType> <zone>", unique among active balls
	PitchType string
	Kin       trajectory.Kinematics
	T0        float64 // clock time the flight began
	Node      scene.NodeID
	Arrived   bool
}

// Elapsed returns the flight time at clock time now, never negative.
func (b *Ball) Elapsed(now float64) float64 {
	if t := now - b.T0; t > 0 {
		return t
	}
	return 0
}

// Registry is the ordered set of active balls. Every ball owns exactly
// one scene node, present for as long as the ball is registered.
type Registry struct {
	scene     *scene.Scene
	trails    *Trails
	materials material.Provider
	log       zerolog.Logger

	balls []*Ball
}

// NewRegistry creates a registry drawing into sc. materials may be nil,
// in which case balls render with their accent color only.
func NewRegistry(sc *scene.Scene, trails *Trails, materials material.Provider, log zerolog.Logger) *Registry {
	return &Registry{scene: sc, trails: trails, materials: materials, log: log}
}

// Add derives kinematics for rec and registers a ball anchored at now.
// A key that is already active is left alone and reported as not added.
func (r *Registry) Add(key string, rec dataset.PitchRecord, now float64) (*Ball, bool) {
	if b := r.Get(key); b != nil {
		r.log.Debug().Str("key", key).Msg("ball already active")
		return b, false
	}

	kin := trajectory.Derive(rec)
	pitchType := dataset.TypeOf(key)

	node := scene.Node{
		Kind:     scene.KindBall,
		Tag:      key,
		Position: kin.Position(0),
		Radius:   scene.BallRadius,
		Color:    material.Accent(pitchType),
		Visible:  true,
	}
	if r.materials != nil {
		node.Material = r.materials.Material(pitchType)
	}

	b := &Ball{
		Key:       key,
		PitchType: pitchType,
		Kin:       kin,
		T0:        now,
		Node:      r.scene.Add(node),
	}
	r.balls = append(r.balls, b)

	r.log.Debug().
		Str("key", key).
		Float64("t0", now).
		Float64("mph", kin.SpeedMPH).
		Float64("rpm", kin.SpinRate).
		Msg("ball added")
	return b, true
}

// RemoveByKey removes every ball with the key, its mesh and its trail
// markers. Unknown keys are a no-op.
func (r *Registry) RemoveByKey(key string) int {
	return r.removeWhere(func(b *Ball) bool { return b.Key == key })
}

// RemoveType removes every ball of a pitch type.
func (r *Registry) RemoveType(pitchType string) int {
	return r.removeWhere(func(b *Ball) bool { return b.PitchType == pitchType })
}

func (r *Registry) removeWhere(match func(*Ball) bool) int {
	kept := r.balls[:0]
	removed := 0
	for _, b := range r.balls {
		if !match(b) {
			kept = append(kept, b)
			continue
		}
		r.scene.Remove(b.Node)
		r.trails.RemoveTag(b.Key)
		removed++
		r.log.Debug().Str("key", b.Key).Msg("ball removed")
	}
	for i := len(kept); i < len(r.balls); i++ {
		r.balls[i] = nil
	}
	r.balls = kept
	return removed
}

// Clear removes every ball and every trail marker.
func (r *Registry) Clear() {
	for _, b := range r.balls {
		r.scene.Remove(b.Node)
	}
	r.balls = nil
	r.trails.Clear()
}

// Replay restarts every flight at now and clears the trails. Balls keep
// their identity and their accumulated spin orientation.
func (r *Registry) Replay(now float64) {
	for _, b := range r.balls {
		b.T0 = now
		b.Arrived = false
		if n := r.scene.Node(b.Node); n != nil {
			n.Position = b.Kin.Position(0)
			n.Visible = true
		}
	}
	r.trails.Clear()
}

// Get returns the active ball with a key, or nil.
func (r *Registry) Get(key string) *Ball {
	for _, b := range r.balls {
		if b.Key == key {
			return b
		}
	}
	return nil
}

// Last returns the most recently added ball, or nil.
func (r *Registry) Last() *Ball {
	if len(r.balls) == 0 {
		return nil
	}
	return r.balls[len(r.balls)-1]
}

// Len returns the number of active balls.
func (r *Registry) Len() int { return len(r.balls) }

// Each visits balls in insertion order.
func (r *Registry) Each(fn func(*Ball)) {
	for _, b := range r.balls {
		fn(b)
	}
}

// Keys returns active keys in insertion order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.balls))
	for i, b := range r.balls {
		keys[i] = b.Key
	}
	return keys
}
