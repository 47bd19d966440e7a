// Package material synthesizes baseball surface textures: an albedo map
// with the red figure-eight seam and a bump map with leather pores and an
// embossed seam ridge.
package material

import (
	"hash/fnv"
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"pitch-renderer/internal/mathutil"
)

// Bump map parameters (8-bit height units).
const (
	bumpBase   = 128
	poreJitter = 18
	seamEmboss = 22
)

// Surface defaults shared by every pitch type.
const (
	DefaultBumpScale         = 0.040
	DefaultEmissiveIntensity = 0.012
)

// Options controls one synthesis run.
type Options struct {
	Width  int
	Height int
	Seed   uint64 // pore noise seed
}

// Material is the finished surface for one pitch type. Rasters are
// read-only once built and are shared by every ball of that type.
type Material struct {
	PitchType         string
	Albedo            *image.NRGBA
	Bump              *image.NRGBA
	Accent            color.NRGBA
	BumpScale         float64
	EmissiveIntensity float64
}

// Synthesize builds the albedo and bump rasters for a pitch type.
func Synthesize(pitchType string, opts Options) *Material {
	return assemble(pitchType, opts, nil, nil)
}

// assemble synthesizes whichever raster is not supplied.
func assemble(pitchType string, opts Options, albedo, bump *image.NRGBA) *Material {
	if opts.Width <= 0 {
		opts.Width = 1024
	}
	if opts.Height <= 0 {
		opts.Height = opts.Width / 2
	}
	if albedo == nil {
		albedo = Albedo(opts.Width, opts.Height, SeamWaist)
	}
	if bump == nil {
		rng := rand.New(rand.NewPCG(opts.Seed, typeSeed(pitchType)))
		bump = Bump(opts.Width, opts.Height, SeamWaist, rng)
	}

	return &Material{
		PitchType:         pitchType,
		Albedo:            albedo,
		Bump:              bump,
		Accent:            Accent(pitchType),
		BumpScale:         DefaultBumpScale,
		EmissiveIntensity: DefaultEmissiveIntensity,
	}
}

// Albedo renders the color raster: near-white leather with a faint
// vertical vignette, blended toward seam red by the band mask.
func Albedo(w, h int, waist float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	lr, lg, lb := float64(leather.R), float64(leather.G), float64(leather.B)
	sr, sg, sb := float64(seamRed.R), float64(seamRed.G), float64(seamRed.B)

	for y := 0; y < h; y++ {
		v := texCoord(y, h)
		vign := 1 - 0.05*math.Pow(2*math.Abs(v-0.5), 2)
		row := y * img.Stride
		for x := 0; x < w; x++ {
			theta, phi := UVToAngles(texCoord(x, w), v)
			m := BandMask(Seam(theta, phi, waist), SeamWidth, SeamSoft)

			r, g, b := lr*vign, lg*vign, lb*vign
			if m > 0 {
				r = mathutil.Lerp(r, sr, m)
				g = mathutil.Lerp(g, sg, m)
				b = mathutil.Lerp(b, sb, m)
			}

			i := row + x*4
			img.Pix[i] = uint8(r)
			img.Pix[i+1] = uint8(g)
			img.Pix[i+2] = uint8(b)
			img.Pix[i+3] = 255
		}
	}
	return img
}

// Bump renders the height raster: mid-grey leather with uniform pore
// jitter, raised along the seam.
func Bump(w, h int, waist float64, rng *rand.Rand) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		v := texCoord(y, h)
		row := y * img.Stride
		for x := 0; x < w; x++ {
			theta, phi := UVToAngles(texCoord(x, w), v)
			m := BandMask(Seam(theta, phi, waist), SeamWidth, SeamSoft)

			val := bumpBase + (rng.Float64()*2*poreJitter - poreJitter)
			val = math.Min(255, val+m*seamEmboss)

			i := row + x*4
			g := uint8(val)
			img.Pix[i] = g
			img.Pix[i+1] = g
			img.Pix[i+2] = g
			img.Pix[i+3] = 255
		}
	}
	return img
}

// texCoord maps pixel i of n to [0,1] inclusive at both ends.
func texCoord(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

func typeSeed(pitchType string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(pitchType))
	return h.Sum64()
}
