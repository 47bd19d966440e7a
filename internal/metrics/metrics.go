// Package metrics derives the readout values shown for a pitch: velocity,
// spin, induced vertical break and horizontal break. Each value is derived
// by an ordered list of rules over the record's optional fields; the first
// rule that yields a value wins and a metric with no rule satisfied is
// absent.
package metrics

import (
	"math"
	"strconv"

	"pitch-renderer/internal/dataset"
	"pitch-renderer/internal/mathutil"
)

// Metrics is the readout for one pitch. Absent values display as "--".
type Metrics struct {
	MPH  dataset.Num
	Spin dataset.Num
	IVB  dataset.Num // inches, positive = ride
	HB   dataset.Num // inches
}

// Rule is one derivation step.
type Rule func(dataset.PitchRecord) dataset.Num

// Apply returns the first rule result that is present.
func Apply(rec dataset.PitchRecord, rules []Rule) dataset.Num {
	for _, r := range rules {
		if v := r(rec); v.IsSet() {
			return v
		}
	}
	return dataset.None()
}

func field(get func(dataset.PitchRecord) dataset.Num) Rule { return get }

func scaled(get func(dataset.PitchRecord) dataset.Num, k float64) Rule {
	return func(rec dataset.PitchRecord) dataset.Num { return get(rec).Scale(k) }
}

// MPHRules derive the static velocity value.
var MPHRules = []Rule{
	field(func(r dataset.PitchRecord) dataset.Num { return r.MPH }),
	field(func(r dataset.PitchRecord) dataset.Num { return r.Velocity }),
	field(func(r dataset.PitchRecord) dataset.Num { return r.Vel }),
	field(func(r dataset.PitchRecord) dataset.Num { return r.ReleaseSpeed }),
}

// SpinRules derive spin rate in rpm.
var SpinRules = []Rule{
	field(func(r dataset.PitchRecord) dataset.Num { return r.Spin }),
	field(func(r dataset.PitchRecord) dataset.Num { return r.RPM }),
	field(func(r dataset.PitchRecord) dataset.Num { return r.ReleaseSpinRate }),
}

// IVBRules: explicit value, then gravity drop minus total drop, then
// spin-only vertical movement.
var IVBRules = []Rule{
	field(func(r dataset.PitchRecord) dataset.Num { return r.InducedVerticalBreak }),
	field(func(r dataset.PitchRecord) dataset.Num { return r.IVB }),
	field(func(r dataset.PitchRecord) dataset.Num { return r.IVBIn }),
	field(func(r dataset.PitchRecord) dataset.Num { return r.IVBInches }),
	gravityAdjustedIVB,
	field(func(r dataset.PitchRecord) dataset.Num { return r.PfxZ }),
	field(func(r dataset.PitchRecord) dataset.Num { return r.VZBreak }),
	field(func(r dataset.PitchRecord) dataset.Num { return r.VertBreak }),
}

// totalDropRules give total vertical movement in inches.
var totalDropRules = []Rule{
	scaled(func(r dataset.PitchRecord) dataset.Num { return r.MovementVertical }, mathutil.InchesPerFoot),
	scaled(func(r dataset.PitchRecord) dataset.Num { return r.MovementVerticalFt }, mathutil.InchesPerFoot),
	field(func(r dataset.PitchRecord) dataset.Num { return r.VerticalMovementIn }),
	field(func(r dataset.PitchRecord) dataset.Num { return r.TotalVerticalBreakIn }),
}

// HBRules give horizontal break before the sign flip.
var HBRules = []Rule{
	field(func(r dataset.PitchRecord) dataset.Num { return r.HB }),
	field(func(r dataset.PitchRecord) dataset.Num { return r.HBIn }),
	field(func(r dataset.PitchRecord) dataset.Num { return r.HBInches }),
	field(func(r dataset.PitchRecord) dataset.Num { return r.HorizontalBreak }),
	field(func(r dataset.PitchRecord) dataset.Num { return r.HBreak }),
	field(func(r dataset.PitchRecord) dataset.Num { return r.HorizontalBreakSnake }),
	field(func(r dataset.PitchRecord) dataset.Num { return r.PfxX }),
	scaled(func(r dataset.PitchRecord) dataset.Num { return r.MovementHorizontal }, mathutil.InchesPerFoot),
	scaled(func(r dataset.PitchRecord) dataset.Num { return r.MovementHorizontalFt }, mathutil.InchesPerFoot),
}

// gravityAdjustedIVB is the drop gravity alone would cause over the
// flight time minus the measured total drop.
func gravityAdjustedIVB(rec dataset.PitchRecord) dataset.Num {
	drop, ok := Apply(rec, totalDropRules).Get()
	if !ok {
		return dataset.None()
	}
	t, ok := dataset.First(rec.TimeToPlate, rec.TimeToPlateAlt, rec.TT).Get()
	if !ok {
		return dataset.None()
	}
	gravityDrop := 0.5 * mathutil.Gravity * t * t * mathutil.InchesPerFoot
	return dataset.Some(gravityDrop - math.Abs(drop))
}

// Derive computes every metric for a record.
func Derive(rec dataset.PitchRecord) Metrics {
	return Metrics{
		MPH:  Apply(rec, MPHRules),
		Spin: Apply(rec, SpinRules),
		IVB:  Apply(rec, IVBRules),
		HB:   Apply(rec, HBRules).Scale(-1),
	}
}

// Placeholder is shown for absent values.
const Placeholder = "--"

// Format renders a value with the given decimals; values of magnitude
// 1000 or more are rounded to an integer.
func Format(v dataset.Num, decimals int) string {
	f, ok := v.Get()
	if !ok {
		return Placeholder
	}
	if math.Abs(f) >= 1000 {
		return strconv.FormatFloat(math.Round(f), 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'f', decimals, 64)
}

// Readout is the formatted panel text.
type Readout struct {
	Velo string `json:"velo"`
	Spin string `json:"spin"`
	IVB  string `json:"ivb"`
	HB   string `json:"hb"`
}

// Readout formats every metric.
func (m Metrics) Readout() Readout {
	return Readout{
		Velo: Format(m.MPH, 1),
		Spin: Format(m.Spin, 0),
		IVB:  Format(m.IVB, 1),
		HB:   Format(m.HB, 1),
	}
}
