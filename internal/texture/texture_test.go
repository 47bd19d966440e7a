package texture

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{201, 31, 36, 255}
			if (x+y)%2 == 0 {
				c = color.NRGBA{242, 242, 242, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestExport_PNGReadsBackThroughOverrides(t *testing.T) {
	dir := t.TempDir()
	albedo := checker(4, 2)

	paths, err := Export(dir, "FF", albedo, nil, FormatPNG)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "FF_albedo.png"), paths[0])

	idx := BuildIndex(dir)
	assert.Equal(t, 1, idx.Len())

	ovr := NewOverrides(idx, zerolog.Nop())
	a, b, ok := ovr.Lookup("FF")
	require.True(t, ok)
	assert.Nil(t, b)
	assert.Equal(t, albedo.Pix, a.Pix)

	_, _, ok = ovr.Lookup("SL")
	assert.False(t, ok)
}

func TestExport_AllFormatsWriteFiles(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []Format{FormatTGA, FormatWebP, FormatPNG} {
		paths, err := Export(dir, "SL", checker(8, 4), checker(8, 4), f)
		require.NoError(t, err, f)
		require.Len(t, paths, 2)
		for _, p := range paths {
			info, err := os.Stat(p)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		}
	}
}

func TestBuildIndex_PrefersLossless(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"CU_albedo.jpg", "CU_albedo.tga", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	idx := BuildIndex(dir)
	p, ok := idx.ResolvePath("cu_ALBEDO")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "CU_albedo.tga"), p)
	assert.Equal(t, 1, idx.Len())

	assert.Equal(t, 0, BuildIndex("").Len())
	assert.Equal(t, 0, BuildIndex(filepath.Join(dir, "missing")).Len())
}

func TestOverrides_UndecodableIsMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "KN_bump.png"), []byte("not a png"), 0644))

	ovr := NewOverrides(BuildIndex(dir), zerolog.Nop())
	_, _, ok := ovr.Lookup("KN")
	assert.False(t, ok)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("TGA")
	require.NoError(t, err)
	assert.Equal(t, FormatTGA, f)
	_, err = ParseFormat("bmp")
	assert.Error(t, err)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "texture: open")
}
