package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pitch-renderer/internal/animation"
	"pitch-renderer/internal/batch"
	"pitch-renderer/internal/config"
	"pitch-renderer/internal/dataset"
	"pitch-renderer/internal/logging"
	"pitch-renderer/internal/material"
	"pitch-renderer/internal/session"
	"pitch-renderer/internal/texture"
	"pitch-renderer/internal/trajectory"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (json, yaml or toml)")
	dataFile := flag.String("data", "", "Pitch dataset JSON (default: pitch_data.json)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	textureDir := flag.String("textures", "", "Directory of <type>_albedo/<type>_bump override images")
	logLevel := flag.String("log-level", "", "trace, debug, info, warn or error")
	width := flag.Int("width", 0, "Frame width (default: 960)")
	height := flag.Int("height", 0, "Frame height (default: width*9/16)")
	fps := flag.Int("fps", 0, "Frames per simulated second (default: 30)")
	duration := flag.Float64("duration", 0, "Simulated seconds to render (default: 1)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	arrival := flag.String("arrival", "", "At the plate: freeze, hide or continue")
	query := flag.String("query", "", "View state: team=..&pitcher=..&view=..&trail=1")
	pitches := flag.String("pitches", "", "Comma-separated pitch keys to launch, e.g. \"FF 5,SL 9\"")
	groups := flag.String("groups", "", "Comma-separated pitch types to launch every zone of")
	replayAt := flag.Float64("replay-at", 0, "Replay every pitch at this simulated time")

	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		DataFile:   *dataFile,
		OutputDir:  *outputDir,
		TextureDir: *textureDir,
		LogLevel:   *logLevel,
		Width:      *width,
		Height:     *height,
		FPS:        *fps,
		Duration:   *duration,
		Workers:    *workers,
		Arrival:    *arrival,
		Query:      *query,
	})

	log := logging.Setup(cfg.LogLevel, nil)

	policy, err := trajectory.ParseArrivalPolicy(cfg.Arrival)
	if err != nil {
		log.Fatal().Err(err).Msg("bad arrival policy")
	}

	ds, err := dataset.Load(cfg.DataFile)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load dataset")
	}
	log.Info().Str("path", cfg.DataFile).Int("teams", len(ds)).Int("pitches", ds.Len()).Msg("dataset loaded")

	var overrides material.Overrides
	if cfg.TextureDir != "" {
		idx := texture.BuildIndex(cfg.TextureDir)
		overrides = texture.NewOverrides(idx, log)
		log.Info().Str("dir", cfg.TextureDir).Int("images", idx.Len()).Msg("texture overrides indexed")
	}
	materials := material.NewCache(material.Options{
		Width:  cfg.TextureWidth,
		Height: cfg.TextureHeight,
		Seed:   cfg.Seed,
	}, overrides, log)

	st := animation.NewState(materials, policy, log)
	sess := session.Open(ds, st, cfg.Query, log)
	if sess.Pitcher() == "" {
		log.Fatal().Msg("dataset has no pitchers")
	}

	// Build every material this pitcher can need before the clock starts.
	var types []string
	for _, g := range sess.Groups() {
		types = append(types, g.Type)
	}
	if err := materials.Warm(context.Background(), types, cfg.Workers); err != nil {
		log.Fatal().Err(err).Msg("material synthesis failed")
	}

	if err := launch(sess, *pitches, *groups); err != nil {
		log.Fatal().Err(err).Msg("cannot launch pitches")
	}

	frames := simulate(sess, cfg, *replayAt, log)

	q := sess.Query()
	log.Info().
		Str("team", q.Team).
		Str("pitcher", q.Pitcher).
		Str("view", q.View).
		Int("balls", st.Balls.Len()).
		Int("frames", len(frames)).
		Int("workers", cfg.Workers).
		Str("output", cfg.OutputDir).
		Msg("rendering")

	start := time.Now()
	results := batch.Run(batch.Config{
		OutputDir:   cfg.OutputDir,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
		Log:         log,
	}, frames)

	m := batch.Manifest{
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
		View:   q.View,
		Query:  q.Encode(),
	}
	m.AddFrames(frames, results)

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, m); err != nil {
		log.Warn().Err(err).Msg("manifest write failed")
	} else {
		log.Info().Str("path", manifestPath).Msg("manifest written")
	}

	log.Info().
		Int("rendered", len(results)-m.Failed).
		Int("failed", m.Failed).
		Dur("elapsed", time.Since(start)).
		Msg("done")

	if m.Failed > 0 {
		for _, r := range results {
			if !r.Success {
				log.Error().Int("frame", r.Index).Str("error", r.Error).Msg("frame failed")
			}
		}
		os.Exit(1)
	}
}

// launch turns on the requested pitches at t=0. With neither list given
// every pitch type of the selected pitcher is launched.
func launch(sess *session.Session, pitches, groups string) error {
	keys, types := splitList(pitches), splitList(groups)
	if len(keys) == 0 && len(types) == 0 {
		for _, g := range sess.Groups() {
			types = append(types, g.Type)
		}
	}
	for _, k := range keys {
		if err := sess.Toggle(k, true, 0); err != nil {
			return err
		}
	}
	for _, t := range types {
		if err := sess.ToggleGroup(t, true, 0); err != nil {
			return err
		}
	}
	return nil
}

// simulate steps the session on a fixed clock and captures one frame per
// step.
func simulate(sess *session.Session, cfg config.Config, replayAt float64, log zerolog.Logger) []batch.Frame {
	n := cfg.FrameCount()
	dt := 1 / float64(cfg.FPS)
	st := sess.State()
	panel := sess.Panel()

	var clock animation.ManualClock
	frames := make([]batch.Frame, 0, n)
	replayed := replayAt <= 0
	prev := 0.0

	for i := 0; i < n; i++ {
		now := clock.Now()
		if !replayed && now >= replayAt {
			sess.Replay(now)
			replayed = true
			log.Debug().Float64("t", now).Msg("replay")
		}

		tel := animation.Step(st, now, now-prev, animation.Hooks{Telemetry: panel})
		frames = append(frames, batch.Frame{
			Index:     i,
			Time:      now,
			Camera:    sess.Camera(),
			Nodes:     st.Scene.Snapshot(),
			Telemetry: tel,
			Readout:   panel.Readout(),
		})

		prev = now
		clock.Advance(dt)
	}
	return frames
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
