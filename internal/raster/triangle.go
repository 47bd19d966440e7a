package raster

import (
	"image"
	"image/color"
	"math"
)

// Vertex is a projected vertex: screen position, depth as 1/w, texture
// coordinates and a precomputed lighting scalar.
type Vertex struct {
	X, Y  float64
	Z     float64 // 1/w, larger is nearer
	U, V  float64
	Shade float64
}

// Surface describes how a lit triangle is colored. With no Albedo the
// Base color is used flat.
type Surface struct {
	Albedo    *image.NRGBA
	Bump      *image.NRGBA
	BumpScale float64
	Base      color.NRGBA
	Emissive  [3]float64 // linear RGB added after lighting
}

// bumpGain converts BumpScale into a shade multiplier around mid-grey.
const bumpGain = 6.0

// setup holds the per-triangle edge terms shared by both rasterizers.
type setup struct {
	minX, maxX, minY, maxY int
	x2, y2                 float64
	dy12, dx21, dy20, dx02 float64
	invDet                 float64
}

func prepare(fb *FrameBuffer, t *[3]Vertex) (setup, bool) {
	x0, y0 := t[0].X, t[0].Y
	x1, y1 := t[1].X, t[1].Y
	x2, y2 := t[2].X, t[2].Y

	s := setup{
		minX: int(math.Floor(math.Min(math.Min(x0, x1), x2))),
		maxX: int(math.Ceil(math.Max(math.Max(x0, x1), x2))),
		minY: int(math.Floor(math.Min(math.Min(y0, y1), y2))),
		maxY: int(math.Ceil(math.Max(math.Max(y0, y1), y2))),
	}
	if s.minX < 0 {
		s.minX = 0
	}
	if s.maxX >= fb.Width {
		s.maxX = fb.Width - 1
	}
	if s.minY < 0 {
		s.minY = 0
	}
	if s.maxY >= fb.Height {
		s.maxY = fb.Height - 1
	}
	if s.minX > s.maxX || s.minY > s.maxY {
		return s, false
	}

	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return s, false
	}
	s.invDet = 1.0 / det
	s.x2, s.y2 = x2, y2
	s.dy12 = y1 - y2
	s.dx21 = x2 - x1
	s.dy20 = y2 - y0
	s.dx02 = x0 - x2
	return s, true
}

// weights returns the barycentric coordinates of a pixel center.
func (s *setup) weights(sx, sy int) (w0, w1, w2 float64) {
	dsx := float64(sx) + 0.5 - s.x2
	dsy := float64(sy) + 0.5 - s.y2
	w0 = (s.dy12*dsx + s.dx21*dsy) * s.invDet
	w1 = (s.dy20*dsx + s.dx02*dsy) * s.invDet
	w2 = 1.0 - w0 - w1
	return
}

// RasterizeLit draws a shaded triangle with z-buffering, perspective
// correct texturing, bump-modulated Gouraud lighting, sRGB decoding and
// ACES tone mapping. Winding is irrelevant.
//
// This is the hot path; nothing in the pixel loop allocates.
func RasterizeLit(fb *FrameBuffer, t [3]Vertex, surf *Surface, lc *LightConfig) {
	s, ok := prepare(fb, &t)
	if !ok {
		return
	}

	textured := surf.Albedo != nil
	bumped := surf.Bump != nil && surf.BumpScale != 0
	baseR := srgbToLinear[surf.Base.R]
	baseG := srgbToLinear[surf.Base.G]
	baseB := srgbToLinear[surf.Base.B]

	for sy := s.minY; sy <= s.maxY; sy++ {
		rowOff := sy * fb.Width
		for sx := s.minX; sx <= s.maxX; sx++ {
			w0, w1, w2 := s.weights(sx, sy)
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*t[0].Z + w1*t[1].Z + w2*t[2].Z
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			shade := w0*t[0].Shade + w1*t[1].Shade + w2*t[2].Shade
			lr, lg, lb := baseR, baseG, baseB

			if textured || bumped {
				// Perspective-correct UV: interpolate u/w and v/w.
				invZ := 1.0 / z
				u := (w0*t[0].U*t[0].Z + w1*t[1].U*t[1].Z + w2*t[2].U*t[2].Z) * invZ
				v := (w0*t[0].V*t[0].Z + w1*t[1].V*t[1].Z + w2*t[2].V*t[2].Z) * invZ
				if textured {
					cr, cg, cb, ca := SampleTexture(surf.Albedo, u, v)
					if ca < 8 {
						continue
					}
					lr, lg, lb = srgbToLinear[cr], srgbToLinear[cg], srgbToLinear[cb]
				}
				if bumped {
					shade *= 1 + (SampleHeight(surf.Bump, u, v)-0.5)*surf.BumpScale*bumpGain
				}
			}
			fb.ZBuf[zIdx] = z

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = lc.encode(lr*shade + surf.Emissive[0])
			fb.Color[pxIdx+1] = lc.encode(lg*shade + surf.Emissive[1])
			fb.Color[pxIdx+2] = lc.encode(lb*shade + surf.Emissive[2])
			fb.Color[pxIdx+3] = 255
		}
	}
}

// RasterizeFlat draws an unlit, single-color triangle with z-buffering.
func RasterizeFlat(fb *FrameBuffer, t [3]Vertex, c color.NRGBA) {
	s, ok := prepare(fb, &t)
	if !ok {
		return
	}

	for sy := s.minY; sy <= s.maxY; sy++ {
		rowOff := sy * fb.Width
		for sx := s.minX; sx <= s.maxX; sx++ {
			w0, w1, w2 := s.weights(sx, sy)
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}
			z := w0*t[0].Z + w1*t[1].Z + w2*t[2].Z
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = z

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = c.R
			fb.Color[pxIdx+1] = c.G
			fb.Color[pxIdx+2] = c.B
			fb.Color[pxIdx+3] = 255
		}
	}
}
