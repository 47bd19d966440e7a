package raster

import "image"

// SampleTexture performs bilinear filtering with UV wrapping.
// Returns RGBA as uint8. Accesses tex.Pix directly for performance.
func SampleTexture(tex *image.NRGBA, u, v float64) (r, g, b, a uint8) {
	i00, i10, i01, i11, w00, w10, w01, w11 := taps(tex, u, v)
	pix := tex.Pix
	blend := func(c int) uint8 {
		f := float64(pix[i00+c])*w00 + float64(pix[i10+c])*w10 + float64(pix[i01+c])*w01 + float64(pix[i11+c])*w11
		return uint8(f + 0.5)
	}
	return blend(0), blend(1), blend(2), blend(3)
}

// SampleHeight reads a grey height raster bilinearly, returning [0,1].
func SampleHeight(tex *image.NRGBA, u, v float64) float64 {
	i00, i10, i01, i11, w00, w10, w01, w11 := taps(tex, u, v)
	pix := tex.Pix
	f := float64(pix[i00])*w00 + float64(pix[i10])*w10 + float64(pix[i01])*w01 + float64(pix[i11])*w11
	return f / 255
}

// taps returns the byte offsets and weights of the four texels around
// (u, v) after wrapping both coordinates into [0,1).
func taps(tex *image.NRGBA, u, v float64) (i00, i10, i01, i11 int, w00, w10, w01, w11 float64) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()

	u = u - float64(int(u))
	if u < 0 {
		u += 1.0
	}
	v = v - float64(int(v))
	if v < 0 {
		v += 1.0
	}

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1 := (x0 + 1) % w
	y1 := (y0 + 1) % h
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	stride := tex.Stride
	i00 = y0*stride + x0*4
	i10 = y0*stride + x1*4
	i01 = y1*stride + x0*4
	i11 = y1*stride + x1*4

	w00 = (1 - dx) * (1 - dy)
	w10 = dx * (1 - dy)
	w01 = (1 - dx) * dy
	w11 = dx * dy
	return
}
