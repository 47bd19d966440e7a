package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pitch-renderer/internal/material"
	"pitch-renderer/internal/postprocess"
	"pitch-renderer/internal/raster"
	"pitch-renderer/internal/texture"
)

func main() {
	outDir := flag.String("output", "textures", "Output directory")
	format := flag.String("format", "png", "Image format: tga, webp or png")
	types := flag.String("types", "", "Comma-separated pitch types (default: every known type)")
	width := flag.Int("width", 1024, "Texture width")
	height := flag.Int("height", 0, "Texture height (default: width/2)")
	seed := flag.Uint64("seed", 1, "Pore noise seed")
	sheet := flag.Bool("sheet", false, "Also write albedo_sheet.<format> with every albedo side by side")

	flag.Parse()

	f, err := texture.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	list := material.PitchTypes()
	if *types != "" {
		list = nil
		for _, t := range strings.Split(*types, ",") {
			if t = strings.TrimSpace(t); t != "" {
				list = append(list, strings.ToUpper(t))
			}
		}
	}
	sort.Strings(list)

	opts := material.Options{Width: *width, Height: *height, Seed: *seed}

	errors := 0
	var albedos []*image.NRGBA
	for _, pt := range list {
		m := material.Synthesize(pt, opts)
		albedos = append(albedos, m.Albedo)
		paths, err := texture.Export(*outDir, pt, m.Albedo, m.Bump, f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERR %s: %v\n", pt, err)
			errors++
			continue
		}
		fmt.Printf("OK  %-3s -> %s\n", pt, strings.Join(paths, ", "))
	}

	if *sheet && len(albedos) > 0 {
		b := albedos[0].Bounds()
		img := postprocess.Sheet(albedos, 4, b.Dx()/4, b.Dy()/4, raster.Background)
		path := filepath.Join(*outDir, "albedo_sheet."+string(f))
		if err := writeImage(path, img, f); err != nil {
			fmt.Fprintf(os.Stderr, "ERR sheet: %v\n", err)
			errors++
		} else {
			fmt.Printf("OK  sheet -> %s\n", path)
		}
	}

	if errors > 0 {
		fmt.Printf("\nDone with %d error(s).\n", errors)
		os.Exit(1)
	}
	fmt.Printf("\nDone. %d pitch types written.\n", len(list))
}

func writeImage(path string, img image.Image, f texture.Format) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := texture.Encode(fh, img, f); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
