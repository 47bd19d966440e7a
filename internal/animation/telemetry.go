package animation

import "math"

// Telemetry is the per-frame readout published after each step.
type Telemetry struct {
	Count int        `json:"count"`
	Last  *BallStats `json:"last,omitempty"` // nil when no ball is active
}

// BallStats describes the most recently added ball.
type BallStats struct {
	SpeedDisplay float64 `json:"speedDisplay"` // mph, one decimal
	Spin         int     `json:"spin"`         // rpm
}

// Sink receives telemetry. Implementations must not block the step.
type Sink interface {
	Publish(Telemetry)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Telemetry)

func (f SinkFunc) Publish(t Telemetry) { f(t) }

// ChanSink delivers telemetry on a buffered channel, dropping frames the
// reader has not kept up with.
type ChanSink chan Telemetry

// NewChanSink creates a channel sink with the given buffer.
func NewChanSink(buffer int) ChanSink {
	return make(ChanSink, buffer)
}

func (c ChanSink) Publish(t Telemetry) {
	select {
	case c <- t:
	default:
	}
}

func telemetryFor(r *Registry) Telemetry {
	tel := Telemetry{Count: r.Len()}
	if last := r.Last(); last != nil {
		tel.Last = &BallStats{
			SpeedDisplay: math.Round(last.Kin.SpeedMPH*10) / 10,
			Spin:         int(math.Round(last.Kin.SpinRate)),
		}
	}
	return tel
}
