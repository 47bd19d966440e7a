// Package animation owns the live simulation: the ball registry, the trail
// markers and the per-frame step that advances them.
package animation

import (
	"github.com/rs/zerolog"

	"pitch-renderer/internal/material"
	"pitch-renderer/internal/scene"
	"pitch-renderer/internal/trajectory"
)

// State is one scene session's animation state. It is not safe for
// concurrent use; every mutation and Step happen on one goroutine.
type State struct {
	Scene   *scene.Scene
	Balls   *Registry
	Trails  *Trails
	Arrival trajectory.ArrivalPolicy
}

// NewState creates an empty session with its own scene.
func NewState(materials material.Provider, arrival trajectory.ArrivalPolicy, log zerolog.Logger) *State {
	sc := scene.New()
	trails := NewTrails(sc)
	return &State{
		Scene:   sc,
		Balls:   NewRegistry(sc, trails, materials, log),
		Trails:  trails,
		Arrival: arrival,
	}
}

// ManualClock is a simulation clock advanced explicitly, one frame at a
// time, so runs are reproducible.
type ManualClock struct {
	now float64
}

// Now returns the current clock time in seconds.
func (c *ManualClock) Now() float64 { return c.now }

// Advance moves the clock forward and returns the new time.
func (c *ManualClock) Advance(dt float64) float64 {
	if dt > 0 {
		c.now += dt
	}
	return c.now
}
