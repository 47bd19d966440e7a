package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitch-renderer/internal/mathutil"
)

func TestScene_AddRemoveKeepsOrder(t *testing.T) {
	s := New()
	a := s.Add(Node{Tag: "FF 5", Visible: true})
	b := s.Add(Node{Tag: "SL 5", Kind: KindTrail, Visible: true})
	c := s.Add(Node{Tag: "CH 1"})

	require.Equal(t, 3, s.Len())
	assert.Equal(t, mathutil.QuatIdentity(), s.Node(a).Orientation)

	assert.True(t, s.Remove(b))
	assert.False(t, s.Remove(b), "second remove is a no-op")
	assert.False(t, s.Has(b))
	assert.Nil(t, s.Node(b))

	var tags []string
	s.Each(func(n *Node) { tags = append(tags, n.Tag) })
	assert.Equal(t, []string{"FF 5", "CH 1"}, tags)
	assert.Equal(t, "CH 1", s.Node(c).Tag)
}

func TestScene_RemoveWhere(t *testing.T) {
	s := New()
	for _, tag := range []string{"FF 5", "SL 5", "FF 5", "CH 2"} {
		s.Add(Node{Tag: tag, Kind: KindTrail})
	}
	keep := s.Add(Node{Tag: "CH 2"})

	n := s.RemoveWhere(func(n *Node) bool { return n.Tag == "FF 5" })
	assert.Equal(t, 2, n)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 2, s.Count(KindTrail))
	assert.Equal(t, "CH 2", s.Node(keep).Tag)
}

func TestScene_SnapshotIsCopyOfVisible(t *testing.T) {
	s := New()
	id := s.Add(Node{Tag: "FF 5", Visible: true})
	s.Add(Node{Tag: "hidden"})

	snap := s.Snapshot()
	require.Len(t, snap, 1)
	s.Node(id).Position = mathutil.Vec3{1, 2, 3}
	assert.Equal(t, mathutil.Vec3{}, snap[0].Position)
}

func TestPreset(t *testing.T) {
	cam, ok := Preset("pitcher")
	require.True(t, ok)
	assert.Equal(t, mathutil.Vec3{0, 6.2, 5.5}, cam.Eye)
	assert.Equal(t, mathutil.Vec3{0, 2.2, -60.5}, cam.Target)

	fallback, ok := Preset("blimp")
	assert.False(t, ok)
	assert.Equal(t, mathutil.Vec3{0, 2.6, -65}, fallback.Eye)

	assert.Equal(t, []string{"1b", "3b", "catcher", "lhh", "pitcher", "rhh"}, Views())
}

func TestViewProjection_TargetAtCenter(t *testing.T) {
	cam, _ := Preset("catcher")
	vp := cam.ViewProjection(16.0 / 9)
	clip := vp.Mul4x1(mgl64.Vec4{cam.Target[0], cam.Target[1], cam.Target[2], 1})
	assert.InDelta(t, 0, clip[0]/clip[3], 1e-9)
	assert.InDelta(t, 0, clip[1]/clip[3], 1e-9)
	assert.Positive(t, clip[3])
}
