package metrics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitch-renderer/internal/animation"
	"pitch-renderer/internal/dataset"
)

func record(t *testing.T, js string) dataset.PitchRecord {
	t.Helper()
	ds, err := dataset.Decode(strings.NewReader(`{"T":{"P":{"FF 5":` + js + `}}}`))
	require.NoError(t, err)
	return ds["T"]["P"]["FF 5"]
}

func TestDerive_ExplicitFields(t *testing.T) {
	m := Derive(record(t, `{"mph": 95.1, "release_speed": 140, "spin": 2290, "ivb": 17.2, "hb_in": 8.5}`))
	assert.Equal(t, 95.1, m.MPH.Or(0))
	assert.Equal(t, 2290.0, m.Spin.Or(0))
	assert.Equal(t, 17.2, m.IVB.Or(0))
	assert.Equal(t, -8.5, m.HB.Or(0), "horizontal break sign is flipped")
}

func TestDerive_IVBFromGravity(t *testing.T) {
	m := Derive(record(t, `{"movement_vertical": -1.25, "time_to_plate": 0.42}`))
	want := 0.5*32.174*0.42*0.42*12 - 15.0
	assert.InDelta(t, want, m.IVB.Or(0), 1e-9)

	// No flight time: fall through to spin-only movement.
	m = Derive(record(t, `{"movement_vertical_ft": -1.25, "pfx_z": 14.0}`))
	assert.Equal(t, 14.0, m.IVB.Or(0))

	m = Derive(record(t, `{"total_vertical_break_in": 30, "tt": 0.4}`))
	assert.InDelta(t, 0.5*32.174*0.16*12-30, m.IVB.Or(0), 1e-9)
}

func TestDerive_HBFromFeet(t *testing.T) {
	m := Derive(record(t, `{"movement_horizontal_ft": 0.5}`))
	assert.Equal(t, -6.0, m.HB.Or(0))
	m = Derive(record(t, `{"pfx_x": -4, "movement_horizontal": 1}`))
	assert.Equal(t, 4.0, m.HB.Or(0))
}

func TestDerive_EmptyIsAbsent(t *testing.T) {
	r := Derive(dataset.PitchRecord{}).Readout()
	assert.Equal(t, Readout{Velo: "--", Spin: "--", IVB: "--", HB: "--"}, r)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "--", Format(dataset.None(), 1))
	assert.Equal(t, "95.1", Format(dataset.Some(95.14), 1))
	assert.Equal(t, "2290", Format(dataset.Some(2290.4), 1))
	assert.Equal(t, "18", Format(dataset.Some(17.6), 0))
	assert.Equal(t, "-999.6", Format(dataset.Some(-999.6), 1))
	assert.Equal(t, "-1001", Format(dataset.Some(-1000.6), 1))
}

func TestPanel_LiveOverridesStatic(t *testing.T) {
	var p Panel
	p.Publish(animation.Telemetry{})
	assert.Equal(t, "--", p.Readout().Velo)

	p.Select(record(t, `{"mph": 95.1, "spin": 2290, "ivb": 17.2, "pfx_x": 3}`))
	assert.Equal(t, "95.1", p.Readout().Velo)

	p.Publish(animation.Telemetry{Count: 1, Last: &animation.BallStats{SpeedDisplay: 96.0, Spin: 2385}})
	r := p.Readout()
	assert.Equal(t, Readout{Velo: "96.0", Spin: "2385", IVB: "17.2", HB: "-3.0"}, r)

	p.Deselect()
	_, ok := p.Selected()
	assert.False(t, ok)
	p.Publish(animation.Telemetry{})
	assert.Equal(t, "--", p.Readout().IVB)
}
