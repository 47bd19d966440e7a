package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/rs/zerolog"

	"pitch-renderer/internal/animation"
	"pitch-renderer/internal/metrics"
	"pitch-renderer/internal/postprocess"
	"pitch-renderer/internal/raster"
	"pitch-renderer/internal/scene"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir   string
	Width       int
	Height      int
	Supersample int
	Workers     int
	Light       *raster.LightConfig
	Progress    time.Duration // progress log interval, default 2s
	Log         zerolog.Logger
}

// Frame is an immutable capture of the scene after one animation step.
type Frame struct {
	Index     int
	Time      float64
	Camera    scene.Camera
	Nodes     []scene.Node
	Telemetry animation.Telemetry
	Readout   metrics.Readout
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Index   int
	Image   string // path relative to OutputDir
	Success bool
	Error   string
}

// FrameName is the output file name for a frame index.
func FrameName(index int) string {
	return fmt.Sprintf("frame_%05d.webp", index)
}

// Run renders all frames using a worker pool. Results are in frame order.
func Run(cfg Config, frames []Frame) []Result {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	interval := cfg.Progress
	if interval <= 0 {
		interval = 2 * time.Second
	}

	total := len(frames)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					cfg.Log.Info().
						Int64("done", p).
						Int("total", total).
						Float64("fps", float64(p)/elapsed).
						Msg("rendering")
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range frameChan {
				results[idx] = processFrame(cfg, frames[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range frames {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	cfg.Log.Info().
		Int("frames", total).
		Dur("elapsed", time.Since(start)).
		Msg("render finished")
	return results
}

func processFrame(cfg Config, f Frame) Result {
	name := FrameName(f.Index)
	res := Result{Index: f.Index, Image: name}

	img := raster.RenderFrame(f.Nodes, f.Camera, raster.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		Light:       cfg.Light,
	})
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Width, cfg.Height)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		res.Error = err.Error()
		return res
	}

	outPath := filepath.Join(cfg.OutputDir, name)
	fh, err := os.Create(outPath)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer fh.Close()

	if err := nativewebp.Encode(fh, img, nil); err != nil {
		res.Error = fmt.Sprintf("WebP encode: %v", err)
		cfg.Log.Warn().Err(err).Str("path", outPath).Msg("frame encode failed")
		return res
	}

	res.Success = true
	return res
}
