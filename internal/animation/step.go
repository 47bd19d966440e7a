package animation

import (
	"pitch-renderer/internal/mathutil"
	"pitch-renderer/internal/trajectory"
)

// Hooks are the external collaborators a step notifies. Nil members are
// skipped.
type Hooks struct {
	Telemetry      Sink
	UpdateControls func()
	Render         func(now float64)
}

// Step advances every ball to clock time now, dt seconds after the
// previous step: position from the closed-form trajectory, a trail marker
// when enabled, then the spin increment. Balls that reached the plate are
// handled per the state's arrival policy. Expired markers are culled and
// telemetry is published before the render hooks run.
func Step(st *State, now, dt float64, hooks Hooks) Telemetry {
	st.Balls.Each(func(b *Ball) {
		n := st.Scene.Node(b.Node)
		if n == nil {
			return
		}

		pos := b.Kin.Position(b.Elapsed(now))
		if st.Arrival != trajectory.Continue && trajectory.Arrived(pos) {
			b.Arrived = true
			if st.Arrival == trajectory.Hide {
				n.Visible = false
			}
			return
		}

		n.Position = pos
		st.Trails.MaybeSpawn(b, now)

		if axis, angle := b.Kin.SpinDelta(dt); angle != 0 {
			n.Orientation = mathutil.RotateOnAxis(n.Orientation, axis, angle)
		}
	})

	st.Trails.Cull(now)

	tel := telemetryFor(st.Balls)
	if hooks.Telemetry != nil {
		hooks.Telemetry.Publish(tel)
	}
	if hooks.UpdateControls != nil {
		hooks.UpdateControls()
	}
	if hooks.Render != nil {
		hooks.Render(now)
	}
	return tel
}
