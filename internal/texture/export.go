package texture

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// Format is an export file format.
type Format string

const (
	FormatTGA  Format = "tga"
	FormatWebP Format = "webp"
	FormatPNG  Format = "png"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTGA, FormatWebP, FormatPNG:
		return f, nil
	}
	return "", fmt.Errorf("texture: unknown format %q", s)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatTGA:
		return tga.Encode(w, img)
	case FormatWebP:
		return nativewebp.Encode(w, img, nil)
	case FormatPNG:
		return png.Encode(w, img)
	}
	return fmt.Errorf("texture: unknown format %q", format)
}

// Export writes "<pitchType>_albedo.<ext>" and "<pitchType>_bump.<ext>"
// into dir and returns the written paths. The file names match what
// BuildIndex and Overrides read back.
func Export(dir, pitchType string, albedo, bump image.Image, format Format) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("texture: mkdir %s: %w", dir, err)
	}

	var paths []string
	for _, layer := range []struct {
		suffix string
		img    image.Image
	}{{"albedo", albedo}, {"bump", bump}} {
		if layer.img == nil {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", pitchType, layer.suffix, format))
		if err := writeFile(path, layer.img, format); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, img image.Image, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("texture: create %s: %w", path, err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("texture: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("texture: close %s: %w", path, err)
	}
	return nil
}
