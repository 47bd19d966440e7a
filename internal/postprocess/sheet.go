package postprocess

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Sheet lays images out left to right, top to bottom in cols columns of
// cellW×cellH cells, each image scaled to fill its cell, on a bg canvas.
func Sheet(imgs []*image.NRGBA, cols, cellW, cellH int, bg color.NRGBA) *image.NRGBA {
	if cols < 1 {
		cols = 1
	}
	rows := (len(imgs) + cols - 1) / cols
	if len(imgs) < cols {
		cols = len(imgs)
	}
	canvas := image.NewNRGBA(image.Rect(0, 0, cols*cellW, rows*cellH))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for i, img := range imgs {
		if img == nil {
			continue
		}
		x, y := (i%cols)*cellW, (i/cols)*cellH
		cell := image.Rect(x, y, x+cellW, y+cellH)
		draw.BiLinear.Scale(canvas, cell, img, img.Bounds(), draw.Src, nil)
	}
	return canvas
}
