package texture

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var imageExts = map[string]int{
	".tga":  3, // preferred: lossless with alpha
	".png":  2,
	".webp": 1,
	".jpg":  0,
	".jpeg": 0,
}

// Index maps lowercase texture stems to filesystem paths.
// Override files are named "<pitchtype>_albedo.<ext>" and
// "<pitchtype>_bump.<ext>"; when several extensions share a stem the
// lossless ones win.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex scans dir (non-recursively) for image files. A missing
// directory yields an empty index.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}
	if dir == "" {
		return idx
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		rank, ok := imageExts[ext]
		if !ok {
			continue
		}
		stem := strings.ToLower(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))

		existing, exists := idx.entries[stem]
		if !exists || rank > imageExts[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = filepath.Join(dir, e.Name())
		}
	}
	return idx
}

// ResolvePath returns the filesystem path for a stem, or ("", false).
func (idx *Index) ResolvePath(stem string) (string, bool) {
	path, ok := idx.entries[strings.ToLower(stem)]
	return path, ok
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Overrides serves per-pitch-type rasters from an Index. Decoded images
// are kept so each file is read once.
type Overrides struct {
	index *Index
	log   zerolog.Logger

	mu     sync.Mutex
	loaded map[string]*image.NRGBA
}

// NewOverrides wraps an index.
func NewOverrides(index *Index, log zerolog.Logger) *Overrides {
	return &Overrides{index: index, log: log, loaded: make(map[string]*image.NRGBA)}
}

// Lookup returns override rasters for a pitch type. ok is false when
// neither raster exists; a raster that fails to decode is logged and
// treated as missing.
func (o *Overrides) Lookup(pitchType string) (albedo, bump *image.NRGBA, ok bool) {
	albedo = o.load(pitchType + "_albedo")
	bump = o.load(pitchType + "_bump")
	return albedo, bump, albedo != nil || bump != nil
}

func (o *Overrides) load(stem string) *image.NRGBA {
	path, ok := o.index.ResolvePath(stem)
	if !ok {
		return nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if img, ok := o.loaded[path]; ok {
		return img
	}
	img, err := Load(path)
	if err != nil {
		o.log.Warn().Err(err).Str("path", path).Msg("override texture skipped")
	}
	o.loaded[path] = img
	return img
}
