package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"pitch-renderer/internal/mathutil"
	"pitch-renderer/internal/scene"
	"pitch-renderer/internal/trajectory"
)

// Field colors.
var (
	Background = color.NRGBA{0x14, 0x15, 0x17, 0xff}
	turfDark   = color.NRGBA{0x06, 0x15, 0x0e, 0xff}
	turfLight  = color.NRGBA{0x0a, 0x1f, 0x14, 0xff}
	chalk      = color.NRGBA{0xf0, 0xf0, 0xf0, 0xff}
)

// Ground extent in feet and tile size.
const (
	groundHalfWidth = 60.0
	groundNear      = -100.0
	groundFar       = 20.0
	tileSize        = 5.0
)

// Options control one frame render.
type Options struct {
	Width       int // output size before supersampling
	Height      int
	Supersample int
	Segments    int // ball sphere longitude segments, default 32
	Light       *LightConfig
}

// RenderFrame composites the field and every visible node as seen by cam.
// The returned image is Width·Supersample × Height·Supersample; callers
// downsample it to the output size.
func RenderFrame(nodes []scene.Node, cam scene.Camera, opts Options) *image.NRGBA {
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}
	w, h := opts.Width*ss, opts.Height*ss
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	lc := opts.Light
	if lc == nil {
		def := DefaultLightConfig()
		lc = &def
	}
	segs := opts.Segments
	if segs < 4 {
		segs = 32
	}

	fb := NewFrameBuffer(w, h, Background)
	p := newProjector(cam, w, h)

	drawGround(fb, p, lc)

	ball := newSphere(segs)
	dot := newSphere(8)
	for i := range nodes {
		n := &nodes[i]
		if !n.Visible {
			continue
		}
		switch n.Kind {
		case scene.KindBall:
			drawBall(fb, p, lc, ball, n)
		case scene.KindTrail:
			drawDot(fb, p, dot, n)
		}
	}

	return fb.Image()
}

// projector maps world points to framebuffer pixels.
type projector struct {
	vp   mgl64.Mat4
	w, h float64
	near float64
}

func newProjector(cam scene.Camera, w, h int) projector {
	near := cam.Near
	if near <= 0 {
		near = 1e-3
	}
	return projector{
		vp:   cam.ViewProjection(float64(w) / float64(h)),
		w:    float64(w),
		h:    float64(h),
		near: near,
	}
}

// project returns the screen vertex for p. ok is false when p is behind
// the near plane.
func (pr projector) project(p mathutil.Vec3) (v Vertex, ok bool) {
	c := pr.clip(p)
	if c[3] < pr.near {
		return Vertex{}, false
	}
	return pr.screen(c), true
}

func (pr projector) clip(p mathutil.Vec3) mgl64.Vec4 {
	return pr.vp.Mul4x1(mgl64.Vec4{p[0], p[1], p[2], 1})
}

func (pr projector) screen(c mgl64.Vec4) Vertex {
	inv := 1 / c[3]
	return Vertex{
		X: (c[0]*inv*0.5 + 0.5) * pr.w,
		Y: (0.5 - c[1]*inv*0.5) * pr.h,
		Z: inv,
	}
}

// clipNear cuts a convex clip-space polygon against w >= near
// (Sutherland-Hodgman against a single plane).
func clipNear(in []mgl64.Vec4, near float64) []mgl64.Vec4 {
	out := make([]mgl64.Vec4, 0, len(in)+1)
	for i, cur := range in {
		prev := in[(i+len(in)-1)%len(in)]
		dc, dp := cur[3]-near, prev[3]-near
		if (dc >= 0) != (dp >= 0) {
			t := dp / (dp - dc)
			out = append(out, prev.Add(cur.Sub(prev).Mul(t)))
		}
		if dc >= 0 {
			out = append(out, cur)
		}
	}
	return out
}

// drawPlanar draws a flat-lit convex polygon, clipped at the near plane
// so ground under the camera still reaches the bottom of the frame.
func drawPlanar(fb *FrameBuffer, pr projector, corners []mathutil.Vec3, shade float64, surf *Surface, lc *LightConfig) {
	cs := make([]mgl64.Vec4, len(corners))
	for i, c := range corners {
		cs[i] = pr.clip(c)
	}
	cs = clipNear(cs, pr.near)
	if len(cs) < 3 {
		return
	}
	first := pr.screen(cs[0])
	first.Shade = shade
	for i := 1; i+1 < len(cs); i++ {
		b, c := pr.screen(cs[i]), pr.screen(cs[i+1])
		b.Shade, c.Shade = shade, shade
		RasterizeLit(fb, [3]Vertex{first, b, c}, surf, lc)
	}
}

func drawGround(fb *FrameBuffer, pr projector, lc *LightConfig) {
	up := mathutil.Vec3{0, 1, 0}
	shade := lc.ComputeShade(up)
	dark := &Surface{Base: turfDark}
	light := &Surface{Base: turfLight}

	row := 0
	for z := groundNear; z < groundFar; z += tileSize {
		surf := dark
		if row%2 == 1 {
			surf = light
		}
		for x := -groundHalfWidth; x < groundHalfWidth; x += tileSize {
			drawPlanar(fb, pr, []mathutil.Vec3{
				{x, 0, z}, {x + tileSize, 0, z},
				{x + tileSize, 0, z + tileSize}, {x, 0, z + tileSize},
			}, shade, surf, lc)
		}
		row++
	}

	// Home plate: 17 in across, point toward the catcher.
	const half, y = 17.0 / 24, 0.01
	pz := trajectory.PlateZ
	plate := []mathutil.Vec3{
		{-half, y, pz}, {half, y, pz}, {half, y, pz - half}, {0, y, pz - 2*half}, {-half, y, pz - half},
	}
	white := &Surface{Base: chalk}
	drawPlanar(fb, pr, plate, shade, white, lc)

	// Pitching rubber, 24 × 6 in, front edge on Z=0.
	drawPlanar(fb, pr, []mathutil.Vec3{
		{-1, y, 0}, {1, y, 0}, {1, y, 0.5}, {-1, y, 0.5},
	}, shade, white, lc)
}

// sphere is a unit UV sphere: rows of segs+1 vertices from the top pole
// (v=0) to the bottom pole (v=1).
type sphere struct {
	normals []mathutil.Vec3
	uvs     [][2]float64
	tris    [][3]int
}

func newSphere(segs int) *sphere {
	rings := segs / 2
	s := &sphere{}
	for i := 0; i <= rings; i++ {
		v := float64(i) / float64(rings)
		phi := v * math.Pi
		for j := 0; j <= segs; j++ {
			u := float64(j) / float64(segs)
			theta := u * mathutil.TwoPi
			s.normals = append(s.normals, mathutil.Vec3{
				-math.Cos(theta) * math.Sin(phi),
				math.Cos(phi),
				math.Sin(theta) * math.Sin(phi),
			})
			s.uvs = append(s.uvs, [2]float64{u, v})
		}
	}
	stride := segs + 1
	for i := 0; i < rings; i++ {
		for j := 0; j < segs; j++ {
			a := i*stride + j
			b := a + stride
			s.tris = append(s.tris, [3]int{a, b, b + 1}, [3]int{a, b + 1, a + 1})
		}
	}
	return s
}

func drawBall(fb *FrameBuffer, pr projector, lc *LightConfig, mesh *sphere, n *scene.Node) {
	rot := mathutil.QuatToMat3(n.Orientation)
	surf := &Surface{Base: n.Color}
	if m := n.Material; m != nil {
		surf.Albedo = m.Albedo
		surf.Bump = m.Bump
		surf.BumpScale = m.BumpScale
		surf.Emissive = [3]float64{
			srgbToLinear[m.Accent.R] * m.EmissiveIntensity,
			srgbToLinear[m.Accent.G] * m.EmissiveIntensity,
			srgbToLinear[m.Accent.B] * m.EmissiveIntensity,
		}
	}

	verts := make([]Vertex, len(mesh.normals))
	visible := make([]bool, len(mesh.normals))
	for i, local := range mesh.normals {
		normal := rot.MulVec3(local)
		v, ok := pr.project(n.Position.Add(normal.Scale(n.Radius)))
		if !ok {
			continue
		}
		v.U, v.V = mesh.uvs[i][0], mesh.uvs[i][1]
		v.Shade = lc.ComputeShade(normal)
		verts[i] = v
		visible[i] = true
	}

	for _, t := range mesh.tris {
		if !visible[t[0]] || !visible[t[1]] || !visible[t[2]] {
			continue
		}
		RasterizeLit(fb, [3]Vertex{verts[t[0]], verts[t[1]], verts[t[2]]}, surf, lc)
	}
}

func drawDot(fb *FrameBuffer, pr projector, mesh *sphere, n *scene.Node) {
	verts := make([]Vertex, len(mesh.normals))
	for i, local := range mesh.normals {
		v, ok := pr.project(n.Position.Add(local.Scale(n.Radius)))
		if !ok {
			return
		}
		verts[i] = v
	}
	for _, t := range mesh.tris {
		RasterizeFlat(fb, [3]Vertex{verts[t[0]], verts[t[1]], verts[t[2]]}, n.Color)
	}
}
