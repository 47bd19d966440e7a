package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"pitch-renderer/internal/animation"
	"pitch-renderer/internal/metrics"
)

// Manifest describes a rendered sequence.
type Manifest struct {
	Width  int             `json:"width"`
	Height int             `json:"height"`
	FPS    int             `json:"fps"`
	View   string          `json:"view"`
	Query  string          `json:"query"`
	Frames []ManifestEntry `json:"frames"`
	Failed int             `json:"failed"`
}

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Index     int                 `json:"index"`
	Time      float64             `json:"time"`
	Image     string              `json:"image"`
	Telemetry animation.Telemetry `json:"telemetry"`
	Readout   metrics.Readout     `json:"readout"`
	Error     string              `json:"error,omitempty"`
}

// AddFrames appends one entry per frame, pairing each with its result
// by index.
func (m *Manifest) AddFrames(frames []Frame, results []Result) {
	byIndex := make(map[int]Result, len(results))
	for _, r := range results {
		byIndex[r.Index] = r
	}
	for _, f := range frames {
		r, ok := byIndex[f.Index]
		e := ManifestEntry{
			Index:     f.Index,
			Time:      f.Time,
			Image:     FrameName(f.Index),
			Telemetry: f.Telemetry,
			Readout:   f.Readout,
		}
		switch {
		case !ok:
			e.Error = "not rendered"
		case !r.Success:
			e.Error = r.Error
		}
		if e.Error != "" {
			m.Failed++
		}
		m.Frames = append(m.Frames, e)
	}
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write %s: %w", path, err)
	}
	return nil
}
