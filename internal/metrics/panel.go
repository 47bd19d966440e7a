package metrics

import (
	"pitch-renderer/internal/animation"
	"pitch-renderer/internal/dataset"
)

// Panel is the live metrics display. It remembers the most recently
// selected record and merges per-frame telemetry into it: live speed and
// spin override the record's, break metrics always come from the record.
type Panel struct {
	selected *dataset.PitchRecord
	current  Metrics
}

// Select makes rec the record the panel describes.
func (p *Panel) Select(rec dataset.PitchRecord) {
	p.selected = &rec
	p.current = Derive(rec)
}

// Deselect clears the panel.
func (p *Panel) Deselect() {
	p.selected = nil
	p.current = Metrics{}
}

// Selected returns the selected record, if any.
func (p *Panel) Selected() (dataset.PitchRecord, bool) {
	if p.selected == nil {
		return dataset.PitchRecord{}, false
	}
	return *p.selected, true
}

// Publish implements animation.Sink.
func (p *Panel) Publish(t animation.Telemetry) {
	var base Metrics
	if p.selected != nil {
		base = Derive(*p.selected)
	}
	if t.Last != nil {
		base.MPH = dataset.Some(t.Last.SpeedDisplay)
		base.Spin = dataset.Some(float64(t.Last.Spin))
	}
	p.current = base
}

// Metrics returns the values currently displayed.
func (p *Panel) Metrics() Metrics { return p.current }

// Readout returns the formatted display.
func (p *Panel) Readout() Readout { return p.current.Readout() }
