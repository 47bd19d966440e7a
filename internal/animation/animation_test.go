package animation

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitch-renderer/internal/dataset"
	"pitch-renderer/internal/material"
	"pitch-renderer/internal/mathutil"
	"pitch-renderer/internal/scene"
	"pitch-renderer/internal/trajectory"
)

func records(t *testing.T) dataset.Pitcher {
	t.Helper()
	ds, err := dataset.Decode(strings.NewReader(`{"T":{"P":{
		"FF 5": {"release_speed": 140.8, "release_pos_x": -1.6, "release_pos_z": 5.9, "release_extension": 6.5,
		         "vx0": 6.2, "vy0": -139.0, "vz0": -5.1, "ax": -11.0, "ay": 29.5, "az": -14.0,
		         "release_spin_rate": 2385, "spin_axis": 205},
		"SL 5": {"release_speed_mph": 87.6, "release_pos_z": 5.7, "vx0": 1.1, "vy0": -127.0, "vz0": -2.0,
		         "ax": 4.0, "ay": 24.0, "az": -30.0, "release_spin_rate": 2510.4, "spin_axis": 80},
		"CH 1": {}
	}}}`))
	require.NoError(t, err)
	return ds["T"]["P"]
}

func newState(arrival trajectory.ArrivalPolicy) *State {
	return NewState(nil, arrival, zerolog.Nop())
}

func tagCount(st *State, tag string) int {
	n := 0
	st.Trails.Each(func(m Marker) {
		if m.Tag == tag {
			n++
		}
	})
	return n
}

func TestRegistry_MeshPresentIffRegistered(t *testing.T) {
	st := newState(trajectory.Freeze)
	p := records(t)

	ff, added := st.Balls.Add("FF 5", p["FF 5"], 0)
	require.True(t, added)
	sl, _ := st.Balls.Add("SL 5", p["SL 5"], 0)
	assert.True(t, st.Scene.Has(ff.Node))
	assert.Equal(t, 2, st.Scene.Count(scene.KindBall))

	again, added := st.Balls.Add("FF 5", p["FF 5"], 1)
	assert.False(t, added, "duplicate key is not added twice")
	assert.Same(t, ff, again)
	assert.Equal(t, 2, st.Balls.Len())

	assert.Equal(t, 1, st.Balls.RemoveByKey("FF 5"))
	assert.False(t, st.Scene.Has(ff.Node))
	assert.True(t, st.Scene.Has(sl.Node))
	assert.Equal(t, 0, st.Balls.RemoveByKey("FF 5"), "removing a missing key is a no-op")
	assert.Equal(t, []string{"SL 5"}, st.Balls.Keys())
}

func TestRegistry_SharesMaterialPerType(t *testing.T) {
	cache := material.NewCache(material.Options{Width: 8, Height: 4}, nil, zerolog.Nop())
	st := NewState(cache, trajectory.Freeze, zerolog.Nop())
	p := records(t)

	a, _ := st.Balls.Add("FF 5", p["FF 5"], 0)
	b, _ := st.Balls.Add("FF 1", p["CH 1"], 0)
	assert.Same(t, st.Scene.Node(a.Node).Material, st.Scene.Node(b.Node).Material)
	assert.Equal(t, int64(1), cache.Built())
}

func TestRemove_OnlyOwnTrailsVanish(t *testing.T) {
	st := newState(trajectory.Continue)
	st.Trails.SetEnabled(true)
	p := records(t)
	st.Balls.Add("FF 5", p["FF 5"], 0)
	st.Balls.Add("SL 5", p["SL 5"], 0)

	clock := &ManualClock{}
	for i := 0; i < 5; i++ {
		Step(st, clock.Advance(1.0/60), 1.0/60, Hooks{})
	}
	require.Equal(t, 5, tagCount(st, "FF 5"))
	require.Equal(t, 5, tagCount(st, "SL 5"))

	st.Balls.RemoveByKey("FF 5")
	assert.Equal(t, 0, tagCount(st, "FF 5"))
	assert.Equal(t, 5, tagCount(st, "SL 5"))
	assert.Equal(t, 5, st.Scene.Count(scene.KindTrail))
}

func TestTrails_CullAtMaxAge(t *testing.T) {
	st := newState(trajectory.Freeze)
	st.Trails.SetEnabled(true)
	b, _ := st.Balls.Add("CH 1", dataset.PitchRecord{}, 0)

	require.True(t, st.Trails.MaybeSpawn(b, 0))
	st.Trails.SetEnabled(false)
	st.Trails.SetEnabled(true)
	assert.Equal(t, 0, st.Trails.Len(), "disabling clears markers")

	st.Trails.MaybeSpawn(b, 0)
	st.Trails.MaybeSpawn(b, 5)
	assert.Equal(t, 0, st.Trails.Cull(9.4))
	assert.Equal(t, 2, st.Trails.Len())

	assert.Equal(t, 1, st.Trails.Cull(9.6))
	require.Equal(t, 1, st.Trails.Len())
	st.Trails.Each(func(m Marker) { assert.Equal(t, 5.0, m.SpawnedAt) })
	assert.Equal(t, 1, st.Scene.Count(scene.KindTrail))
}

func TestStep_TrailCulledAfterMaxAge(t *testing.T) {
	st := newState(trajectory.Freeze)
	st.Balls.Add("CH 1", dataset.PitchRecord{}, 0)

	st.Trails.SetEnabled(true)
	Step(st, 0, 0, Hooks{})
	require.Equal(t, 1, st.Trails.Len())

	// Stop spawning without clearing the t=0 marker.
	st.Trails.enabled = false
	Step(st, 9.4, 9.4, Hooks{})
	assert.Equal(t, 1, st.Trails.Len())
	Step(st, 9.6, 0.2, Hooks{})
	assert.Equal(t, 0, st.Trails.Len())
	assert.Equal(t, 0, st.Scene.Count(scene.KindTrail))
}

func TestTrails_DisabledSpawnsNothing(t *testing.T) {
	st := newState(trajectory.Freeze)
	b, _ := st.Balls.Add("CH 1", dataset.PitchRecord{}, 0)
	assert.False(t, st.Trails.MaybeSpawn(b, 0))
	assert.Equal(t, 0, st.Trails.Len())
}

func TestClear_IdempotentEmpty(t *testing.T) {
	st := newState(trajectory.Continue)
	st.Trails.SetEnabled(true)
	p := records(t)
	st.Balls.Add("FF 5", p["FF 5"], 0)
	st.Balls.Add("SL 5", p["SL 5"], 0)
	Step(st, 0.1, 0.1, Hooks{})

	for i := 0; i < 2; i++ {
		st.Balls.Clear()
		assert.Equal(t, 0, st.Balls.Len())
		assert.Equal(t, 0, st.Trails.Len())
		assert.Equal(t, 0, st.Scene.Len())
	}
	assert.True(t, st.Trails.Enabled(), "clear does not touch the toggle")
}

func TestRemoveType_ClearsGroup(t *testing.T) {
	st := newState(trajectory.Freeze)
	st.Balls.Add("FF 5", dataset.PitchRecord{}, 0)
	st.Balls.Add("FF 1", dataset.PitchRecord{}, 0)
	st.Balls.Add("SL 5", dataset.PitchRecord{}, 0)

	assert.Equal(t, 2, st.Balls.RemoveType("FF"))
	assert.Equal(t, []string{"SL 5"}, st.Balls.Keys())
	assert.Equal(t, 1, st.Scene.Len())
}

func TestReplay_ResetsFlightKeepsIdentity(t *testing.T) {
	st := newState(trajectory.Continue)
	st.Trails.SetEnabled(true)
	p := records(t)
	b, _ := st.Balls.Add("FF 5", p["FF 5"], 2)
	node := b.Node

	Step(st, 5, 3, Hooks{})
	assert.InDelta(t, 3.0, b.Elapsed(5), 1e-12)
	require.Positive(t, st.Trails.Len())

	st.Balls.Replay(5)
	assert.Equal(t, 0, st.Trails.Len())
	assert.Equal(t, 1, st.Balls.Len())
	assert.Same(t, b, st.Balls.Get("FF 5"))
	assert.Equal(t, node, b.Node)
	assert.Equal(t, 0.0, b.Elapsed(5))

	st.Trails.SetEnabled(false)
	Step(st, 5, 0, Hooks{})
	assert.Equal(t, b.Kin.Release, st.Scene.Node(node).Position)
}

func TestStep_PositionAndSpin(t *testing.T) {
	st := newState(trajectory.Continue)
	p := records(t)
	b, _ := st.Balls.Add("FF 5", p["FF 5"], 1)

	Step(st, 1.25, 1.0/60, Hooks{})
	n := st.Scene.Node(b.Node)
	assert.True(t, n.Position.ApproxEqual(b.Kin.Position(0.25), 1e-12))
	assert.NotEqual(t, mathutil.QuatIdentity(), n.Orientation)

	// A ball without spin keeps its orientation.
	c, _ := st.Balls.Add("CH 1", p["CH 1"], 1)
	Step(st, 1.5, 1.0/60, Hooks{})
	assert.Equal(t, mathutil.QuatIdentity(), st.Scene.Node(c.Node).Orientation)
}

func TestStep_ArrivalPolicies(t *testing.T) {
	p := records(t)
	// The fastball reaches the plate well before 1s.
	for _, tc := range []struct {
		policy  trajectory.ArrivalPolicy
		visible bool
		moves   bool
	}{
		{trajectory.Freeze, true, false},
		{trajectory.Hide, false, false},
		{trajectory.Continue, true, true},
	} {
		t.Run(tc.policy.String(), func(t *testing.T) {
			st := newState(tc.policy)
			b, _ := st.Balls.Add("FF 5", p["FF 5"], 0)
			Step(st, 0.2, 0.2, Hooks{})
			before := st.Scene.Node(b.Node).Position

			Step(st, 1.0, 0.8, Hooks{})
			n := st.Scene.Node(b.Node)
			assert.Equal(t, tc.visible, n.Visible)
			assert.Equal(t, tc.moves, n.Position != before)
			assert.Equal(t, tc.policy != trajectory.Continue, b.Arrived)
			assert.Equal(t, 1, st.Balls.Len(), "arrived balls stay registered")
		})
	}
}

func TestStep_ArrivedBallSpawnsNoTrail(t *testing.T) {
	st := newState(trajectory.Freeze)
	st.Trails.SetEnabled(true)
	st.Balls.Add("FF 5", records(t)["FF 5"], 0)
	Step(st, 1.0, 1.0, Hooks{})
	assert.Equal(t, 0, st.Trails.Len())
}

func TestStep_TelemetryAndHooks(t *testing.T) {
	st := newState(trajectory.Freeze)
	p := records(t)
	sink := NewChanSink(4)
	var order []string
	hooks := Hooks{
		Telemetry:      SinkFunc(func(Telemetry) { order = append(order, "telemetry") }),
		UpdateControls: func() { order = append(order, "controls") },
		Render:         func(float64) { order = append(order, "render") },
	}

	tel := Step(st, 0, 0, Hooks{Telemetry: sink})
	assert.Equal(t, Telemetry{Count: 0}, tel)
	assert.Equal(t, tel, <-sink)

	st.Balls.Add("FF 5", p["FF 5"], 0)
	st.Balls.Add("SL 5", p["SL 5"], 0)
	tel = Step(st, 0.1, 0.1, hooks)
	require.NotNil(t, tel.Last)
	assert.Equal(t, 2, tel.Count)
	assert.Equal(t, 87.6, tel.Last.SpeedDisplay)
	assert.Equal(t, 2510, tel.Last.Spin)
	assert.Equal(t, []string{"telemetry", "controls", "render"}, order)

	// Absent hooks never fail.
	assert.NotPanics(t, func() { Step(st, 0.2, 0.1, Hooks{}) })
}

func TestChanSink_DropsWhenFull(t *testing.T) {
	sink := NewChanSink(1)
	sink.Publish(Telemetry{Count: 1})
	sink.Publish(Telemetry{Count: 2})
	assert.Equal(t, 1, (<-sink).Count)
	assert.Empty(t, sink)
}

func TestManualClock(t *testing.T) {
	var c ManualClock
	assert.Equal(t, 0.5, c.Advance(0.5))
	assert.Equal(t, 0.5, c.Advance(-1))
	assert.Equal(t, 0.5, c.Now())
}
