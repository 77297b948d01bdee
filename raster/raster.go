// Package raster draws a built scene into a pixel image with gg.
//
// It is the reference presenter for scenes produced by the scene package:
// pushes map onto gg context state (transform, clip, opacity layers) and
// pictures are replayed through gg's recording raster backend.
//
//	s := root.BuildScene(scene.NewBuilder()).(*scene.Scene)
//	img, err := raster.Rasterize(s, 640, 480, raster.WithBackground(strata.Color{R: 1, G: 1, B: 1, A: 1}))
package raster

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
	ggraster "github.com/gogpu/gg/recording/backends/raster"
	"golang.org/x/image/draw"

	"github.com/phanxgames/strata"
	"github.com/phanxgames/strata/scene"
)

// Option configures Rasterize.
type Option func(*options)

type options struct {
	background  strata.Color
	shadowScale float64
}

func defaultOptions() options {
	return options{background: strata.ColorTransparent, shadowScale: 0.5}
}

// WithBackground clears the canvas to c before drawing.
func WithBackground(c strata.Color) Option {
	return func(o *options) { o.background = c }
}

// WithShadowScale sets how far, in pixels per unit of elevation, physical
// shapes cast their shadow down and to the right. The default is 0.5.
func WithShadowScale(s float64) Option {
	return func(o *options) { o.shadowScale = s }
}

// Rasterize draws s onto a new width x height canvas.
func Rasterize(s *scene.Scene, width, height int, opts ...Option) (image.Image, error) {
	ctx, err := render(s, width, height, opts)
	if err != nil {
		return nil, err
	}
	defer ctx.Close()
	return ctx.Image(), nil
}

// WritePNG rasterizes s and writes it to w as PNG.
func WritePNG(w io.Writer, s *scene.Scene, width, height int, opts ...Option) error {
	ctx, err := render(s, width, height, opts)
	if err != nil {
		return err
	}
	defer ctx.Close()
	return ctx.EncodePNG(w)
}

func render(s *scene.Scene, width, height int, opts []Option) (*gg.Context, error) {
	if s == nil {
		return nil, fmt.Errorf("raster: nil scene")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster: invalid canvas size %dx%d", width, height)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	ctx := gg.NewContext(width, height)
	if o.background.A > 0 {
		ctx.ClearWithColor(o.background.RGBA())
	}
	r := &renderer{ctx: ctx, opts: o}
	if err := r.node(s.Root()); err != nil {
		_ = ctx.Close()
		return nil, err
	}
	strata.Logger().Debug("scene rasterized",
		"width", width, "height", height, "pictures", r.pictures, "textures", r.textures)
	return ctx, nil
}

type renderer struct {
	ctx  *gg.Context
	opts options

	pictures int
	textures int
}

func (r *renderer) children(n *scene.Node) error {
	for _, child := range n.Children {
		if err := r.node(child); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) node(n *scene.Node) error {
	n = n.Resolve()
	ctx := r.ctx
	switch n.Kind {
	case scene.KindRoot:
		return r.children(n)

	case scene.KindOffset:
		ctx.Push()
		defer ctx.Pop()
		ctx.Translate(n.Offset.DX, n.Offset.DY)
		return r.children(n)

	case scene.KindTransform:
		ctx.Push()
		defer ctx.Pop()
		ctx.Transform(n.Transform.Affine())
		return r.children(n)

	case scene.KindClipRect:
		ctx.Push()
		defer ctx.Pop()
		ctx.ClipRect(n.Rect.Left, n.Rect.Top, n.Rect.Width(), n.Rect.Height())
		return r.children(n)

	case scene.KindClipRRect:
		ctx.Push()
		defer ctx.Pop()
		r.clipPath(n.RRect.Path())
		return r.children(n)

	case scene.KindClipPath:
		ctx.Push()
		defer ctx.Pop()
		r.clipPath(n.Path)
		return r.children(n)

	case scene.KindOpacity:
		ctx.Push()
		defer ctx.Pop()
		ctx.Translate(n.Offset.DX, n.Offset.DY)
		ctx.PushLayer(gg.BlendNormal, float64(n.Alpha)/255)
		defer ctx.PopLayer()
		return r.children(n)

	case scene.KindBackdropFilter:
		r.blurBackdrop(n.Filter)
		return r.children(n)

	case scene.KindPhysicalShape:
		ctx.Push()
		defer ctx.Pop()
		r.physicalShape(n)
		if n.Clip != strata.ClipNone {
			r.clipPath(n.Path)
		}
		return r.children(n)

	case scene.KindPicture:
		return r.picture(n)

	case scene.KindTexture:
		r.texture(n)
		return nil

	case scene.KindPerformanceOverlay:
		r.performanceOverlay(n)
		return nil
	}
	return fmt.Errorf("raster: unexpected %s node", n.Kind)
}

// tracePath appends p to the context's current path in user space.
func (r *renderer) tracePath(p *gg.Path) {
	r.ctx.ClearPath()
	p.Iterate(func(verb gg.PathVerb, c []float64) {
		switch verb {
		case gg.MoveTo:
			r.ctx.MoveTo(c[0], c[1])
		case gg.LineTo:
			r.ctx.LineTo(c[0], c[1])
		case gg.QuadTo:
			r.ctx.QuadraticTo(c[0], c[1], c[2], c[3])
		case gg.CubicTo:
			r.ctx.CubicTo(c[0], c[1], c[2], c[3], c[4], c[5])
		case gg.Close:
			r.ctx.ClosePath()
		}
	})
}

func (r *renderer) clipPath(p *gg.Path) {
	if p == nil {
		return
	}
	r.tracePath(p)
	r.ctx.Clip()
}

func (r *renderer) fillPath(p *gg.Path, c strata.Color) {
	r.tracePath(p)
	r.ctx.SetFillBrush(gg.Solid(c.RGBA()))
	_ = r.ctx.Fill()
}

// physicalShape paints the shadow offset by the elevation, then the shape.
func (r *renderer) physicalShape(n *scene.Node) {
	if n.Path == nil {
		return
	}
	if d := n.Elevation * r.opts.shadowScale; d > 0 && n.ShadowColor.A > 0 {
		r.ctx.Push()
		r.ctx.Translate(d, d)
		r.fillPath(n.Path, n.ShadowColor)
		r.ctx.Pop()
	}
	if n.Color.A > 0 {
		r.fillPath(n.Path, n.Color)
	}
}

func (r *renderer) picture(n *scene.Node) error {
	if n.Picture == nil {
		return nil
	}
	w, h := n.Picture.Width(), n.Picture.Height()
	if w <= 0 || h <= 0 {
		return nil
	}
	backend := ggraster.NewBackend()
	if err := n.Picture.Playback(backend); err != nil {
		return fmt.Errorf("raster: replay picture: %w", err)
	}
	r.pictures++
	r.ctx.DrawImageEx(gg.ImageBufFromImage(backend.Image()), gg.DrawImageOptions{
		X:         n.Offset.DX,
		Y:         n.Offset.DY,
		DstWidth:  float64(w),
		DstHeight: float64(h),
		Opacity:   1,
		BlendMode: gg.BlendNormal,
	})
	return nil
}

func (r *renderer) texture(n *scene.Node) {
	if n.Texture == nil || n.Rect.IsEmpty() {
		return
	}
	r.textures++
	r.ctx.DrawImageEx(gg.ImageBufFromImage(n.Texture), gg.DrawImageOptions{
		X:         n.Rect.Left,
		Y:         n.Rect.Top,
		DstWidth:  n.Rect.Width(),
		DstHeight: n.Rect.Height(),
		Opacity:   1,
		BlendMode: gg.BlendNormal,
	})
}

// performanceOverlay draws one bar per enabled statistics panel.
func (r *renderer) performanceOverlay(n *scene.Node) {
	rect := n.Rect
	if rect.IsEmpty() {
		return
	}
	r.fillPath(rect.Path(), strata.Color{A: 0.5})
	panels := 0
	for bit := strata.OverlayRasterizerStatistics; bit <= strata.OverlayVisualizeEngineStatistics; bit <<= 1 {
		if n.OptionsMask&bit != 0 {
			panels++
		}
	}
	if panels == 0 {
		return
	}
	h := rect.Height() / float64(panels)
	i := 0
	for bit := strata.OverlayRasterizerStatistics; bit <= strata.OverlayVisualizeEngineStatistics; bit <<= 1 {
		if n.OptionsMask&bit == 0 {
			continue
		}
		bar := strata.RectFromLTWH(rect.Left+2, rect.Top+float64(i)*h+2, rect.Width()-4, math.Max(h-4, 1))
		r.fillPath(bar.Path(), strata.Color{G: 0.8, A: 0.6})
		i++
	}
}

// blurBackdrop approximates a Gaussian blur of everything painted so far by
// scaling the canvas down and back up.
func (r *renderer) blurBackdrop(f strata.ImageFilter) {
	sigma := math.Max(f.SigmaX, f.SigmaY)
	if sigma <= 0 {
		return
	}
	src := r.ctx.Image()
	b := src.Bounds()
	factor := math.Max(1, sigma)
	sw := max(1, int(float64(b.Dx())/factor))
	sh := max(1, int(float64(b.Dy())/factor))

	small := image.NewRGBA(image.Rect(0, 0, sw, sh))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), src, b, draw.Src, nil)
	blurred := image.NewRGBA(b)
	draw.BiLinear.Scale(blurred, b, small, small.Bounds(), draw.Src, nil)

	r.ctx.Push()
	defer r.ctx.Pop()
	r.ctx.Identity()
	r.ctx.DrawImageEx(gg.ImageBufFromImage(blurred), gg.DrawImageOptions{
		X:         float64(b.Min.X),
		Y:         float64(b.Min.Y),
		Opacity:   1,
		BlendMode: gg.BlendNormal,
	})
}
