// Package scene is the display surface: an ordered set of renderable nodes
// that the simulation mutates and the rasterizer composites.
package scene

import (
	"image/color"

	"pitch-renderer/internal/material"
	"pitch-renderer/internal/mathutil"
)

// Field geometry in feet.
const (
	RubberHeight   = 1.05
	BallRadius     = 0.145
	TrailDotRadius = 0.04
)

// NodeID is a handle to a node owned by a Scene.
type NodeID uint64

// Kind distinguishes what a node draws.
type Kind uint8

const (
	KindBall Kind = iota
	KindTrail
)

// Node is one renderable sphere.
type Node struct {
	ID          NodeID
	Kind        Kind
	Tag         string // owning ball key
	Position    mathutil.Vec3
	Orientation mathutil.Quat
	Radius      float64
	Color       color.NRGBA        // flat color for unlit nodes
	Material    *material.Material // nil for unlit nodes
	Visible     bool
}

// Scene holds nodes in insertion order.
type Scene struct {
	nodes []*Node
	index map[NodeID]int
	next  NodeID
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{index: make(map[NodeID]int)}
}

// Add inserts a node and returns its handle. The ID field of n is ignored.
func (s *Scene) Add(n Node) NodeID {
	s.next++
	n.ID = s.next
	if n.Orientation == (mathutil.Quat{}) {
		n.Orientation = mathutil.QuatIdentity()
	}
	s.index[n.ID] = len(s.nodes)
	s.nodes = append(s.nodes, &n)
	return n.ID
}

// Remove deletes a node. Unknown handles are ignored.
func (s *Scene) Remove(id NodeID) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	delete(s.index, id)
	copy(s.nodes[i:], s.nodes[i+1:])
	s.nodes[len(s.nodes)-1] = nil
	s.nodes = s.nodes[:len(s.nodes)-1]
	for j := i; j < len(s.nodes); j++ {
		s.index[s.nodes[j].ID] = j
	}
	return true
}

// RemoveWhere deletes every node for which pred returns true
// and returns how many were removed.
func (s *Scene) RemoveWhere(pred func(*Node) bool) int {
	kept := s.nodes[:0]
	removed := 0
	for _, n := range s.nodes {
		if pred(n) {
			delete(s.index, n.ID)
			removed++
			continue
		}
		kept = append(kept, n)
	}
	for i := len(kept); i < len(s.nodes); i++ {
		s.nodes[i] = nil
	}
	s.nodes = kept
	for i, n := range s.nodes {
		s.index[n.ID] = i
	}
	return removed
}

// Node returns a mutable pointer to a node, or nil.
func (s *Scene) Node(id NodeID) *Node {
	i, ok := s.index[id]
	if !ok {
		return nil
	}
	return s.nodes[i]
}

// Has reports whether the node is present.
func (s *Scene) Has(id NodeID) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the node count.
func (s *Scene) Len() int { return len(s.nodes) }

// Count returns the number of nodes of a kind.
func (s *Scene) Count(k Kind) int {
	n := 0
	for _, node := range s.nodes {
		if node.Kind == k {
			n++
		}
	}
	return n
}

// Each visits nodes in insertion order.
func (s *Scene) Each(fn func(*Node)) {
	for _, n := range s.nodes {
		fn(n)
	}
}

// Snapshot copies the visible nodes so a frame can be composited while
// the simulation keeps mutating the scene.
func (s *Scene) Snapshot() []Node {
	out := make([]Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		if n.Visible {
			out = append(out, *n)
		}
	}
	return out
}
