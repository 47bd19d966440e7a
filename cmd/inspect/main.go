package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"pitch-renderer/internal/dataset"
	"pitch-renderer/internal/metrics"
	"pitch-renderer/internal/trajectory"
)

type pitchRow struct {
	Key      string          `json:"key"`
	Readout  metrics.Readout `json:"readout"`
	Release  [3]float64      `json:"release"`
	Plate    *float64        `json:"plateTime,omitempty"` // seconds to reach the plate plane
	SpinAxis [3]float64      `json:"spinAxis"`
}

func main() {
	dataFile := flag.String("data", "pitch_data.json", "Pitch dataset JSON")
	team := flag.String("team", "", "Only this team")
	pitcher := flag.String("pitcher", "", "Only this pitcher (requires -team)")
	asJSON := flag.Bool("json", false, "Print JSON instead of a table")

	flag.Parse()

	ds, err := dataset.Load(*dataFile)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	teams := ds.Teams()
	if *team != "" {
		teams = []string{*team}
	}

	out := map[string]map[string][]pitchRow{}
	for _, t := range teams {
		pitchers := ds.Pitchers(t)
		if *pitcher != "" {
			pitchers = []string{*pitcher}
		}
		for _, name := range pitchers {
			p, ok := ds.Pitcher(t, name)
			if !ok {
				fmt.Fprintf(os.Stderr, "unknown pitcher %s/%s\n", t, name)
				continue
			}
			var rows []pitchRow
			for _, g := range dataset.Groups(p) {
				for _, z := range g.Zones {
					rows = append(rows, row(z))
				}
			}
			if out[t] == nil {
				out[t] = map[string][]pitchRow{}
			}
			out[t][name] = rows
		}
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Teams: %d, Pitches: %d\n", len(ds), ds.Len())
	for _, t := range teams {
		for _, name := range ds.Pitchers(t) {
			rows, ok := out[t][name]
			if !ok {
				continue
			}
			fmt.Printf("%s / %s (%d pitches)\n", t, name, len(rows))
			for _, r := range rows {
				plate := "--"
				if r.Plate != nil {
					plate = fmt.Sprintf("%.3fs", *r.Plate)
				}
				fmt.Printf("  %-5s velo=%-6s spin=%-5s ivb=%-6s hb=%-6s plate=%s\n",
					r.Key, r.Readout.Velo, r.Readout.Spin, r.Readout.IVB, r.Readout.HB, plate)
			}
		}
	}
}

func row(z dataset.Zone) pitchRow {
	kin := trajectory.Derive(z.Record)
	r := pitchRow{
		Key:      z.Key,
		Readout:  metrics.Derive(z.Record).Readout(),
		Release:  kin.Release,
		SpinAxis: kin.SpinAxis,
	}
	if t, ok := kin.PlateTime(); ok {
		r.Plate = &t
	}
	return r
}
