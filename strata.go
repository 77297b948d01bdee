package strata

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
)

// Offset is a 2D point or displacement. Layers use it for positions,
// translations and hit-test queries.
type Offset struct {
	DX, DY float64
}

// OffsetZero is the origin.
var OffsetZero = Offset{}

// Add returns o translated by other.
func (o Offset) Add(other Offset) Offset {
	return Offset{o.DX + other.DX, o.DY + other.DY}
}

// Sub returns o minus other.
func (o Offset) Sub(other Offset) Offset {
	return Offset{o.DX - other.DX, o.DY - other.DY}
}

// Scale returns o with both components multiplied by s.
func (o Offset) Scale(s float64) Offset {
	return Offset{o.DX * s, o.DY * s}
}

// IsZero reports whether o is the origin.
func (o Offset) IsZero() bool {
	return o.DX == 0 && o.DY == 0
}

// String formats o as Offset(dx, dy).
func (o Offset) String() string {
	return fmt.Sprintf("Offset(%.1f, %.1f)", o.DX, o.DY)
}

// Size is a width and height pair.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle given by its edges. The coordinate
// system has its origin at the top-left, with Y increasing downward.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectFromLTWH builds a rectangle from its top-left corner and size.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{left, top, left + width, top + height}
}

// RectFromOffsetSize builds a rectangle at o with size s.
func RectFromOffsetSize(o Offset, s Size) Rect {
	return RectFromLTWH(o.DX, o.DY, s.Width, s.Height)
}

// Width returns Right - Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() Offset { return Offset{r.Left, r.Top} }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// Contains reports whether p lies inside the rectangle. The left and top
// edges are inside, the right and bottom edges are not.
func (r Rect) Contains(p Offset) bool {
	return p.DX >= r.Left && p.DX < r.Right &&
		p.DY >= r.Top && p.DY < r.Bottom
}

// Shift returns r translated by o.
func (r Rect) Shift(o Offset) Rect {
	return Rect{r.Left + o.DX, r.Top + o.DY, r.Right + o.DX, r.Bottom + o.DY}
}

// Intersects reports whether r and other share a region of positive area.
func (r Rect) Intersects(other Rect) bool {
	return r.Left < other.Right && other.Left < r.Right &&
		r.Top < other.Bottom && other.Top < r.Bottom
}

// Path returns a closed rectangular path.
func (r Rect) Path() *gg.Path {
	p := gg.NewPath()
	p.Rectangle(r.Left, r.Top, r.Width(), r.Height())
	return p
}

// String formats r by its left, top, right and bottom edges.
func (r Rect) String() string {
	return fmt.Sprintf("Rect.fromLTRB(%.1f, %.1f, %.1f, %.1f)", r.Left, r.Top, r.Right, r.Bottom)
}

// RRect is a rectangle with a uniform corner radius.
type RRect struct {
	Rect   Rect
	Radius float64
}

// radius clamps the corner radius to half the shorter side.
func (rr RRect) radius() float64 {
	limit := math.Min(rr.Rect.Width(), rr.Rect.Height()) / 2
	if limit < 0 {
		return 0
	}
	return math.Max(0, math.Min(rr.Radius, limit))
}

// Contains reports whether p lies inside the rounded rectangle, excluding the
// areas cut away by the corners.
func (rr RRect) Contains(p Offset) bool {
	if !rr.Rect.Contains(p) {
		return false
	}
	r := rr.radius()
	if r == 0 {
		return true
	}
	cx := clamp(p.DX, rr.Rect.Left+r, rr.Rect.Right-r)
	cy := clamp(p.DY, rr.Rect.Top+r, rr.Rect.Bottom-r)
	dx, dy := p.DX-cx, p.DY-cy
	return dx*dx+dy*dy <= r*r
}

// Shift returns rr translated by o.
func (rr RRect) Shift(o Offset) RRect {
	return RRect{Rect: rr.Rect.Shift(o), Radius: rr.Radius}
}

// Path returns a closed rounded-rectangle path.
func (rr RRect) Path() *gg.Path {
	p := gg.NewPath()
	r := rr.radius()
	if r == 0 {
		p.Rectangle(rr.Rect.Left, rr.Rect.Top, rr.Rect.Width(), rr.Rect.Height())
		return p
	}
	p.RoundedRectangle(rr.Rect.Left, rr.Rect.Top, rr.Rect.Width(), rr.Rect.Height(), r)
	return p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorTransparent is fully transparent black.
var ColorTransparent = Color{}

// ColorBlack is opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// RGBA converts the color to the gg color type used by paths and pictures.
func (c Color) RGBA() gg.RGBA {
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Clip selects how a clipping layer treats the edge of its clip geometry.
type Clip uint8

const (
	ClipNone                   Clip = iota // no clipping
	ClipHardEdge                           // clip without anti-aliasing
	ClipAntiAlias                          // clip with anti-aliased edges
	ClipAntiAliasWithSaveLayer             // anti-aliased clip composited through an offscreen layer
)

// String returns the clip behavior's name.
func (c Clip) String() string {
	switch c {
	case ClipNone:
		return "none"
	case ClipHardEdge:
		return "hardEdge"
	case ClipAntiAlias:
		return "antiAlias"
	case ClipAntiAliasWithSaveLayer:
		return "antiAliasWithSaveLayer"
	default:
		return "unknown"
	}
}

// ImageFilter describes the filter a BackdropFilterLayer applies to the
// content already painted behind it. Only Gaussian blur is supported.
type ImageFilter struct {
	SigmaX, SigmaY float64
}

// Blur returns a Gaussian blur filter.
func Blur(sigmaX, sigmaY float64) ImageFilter {
	return ImageFilter{SigmaX: sigmaX, SigmaY: sigmaY}
}

// Texture is an externally rendered bitmap handed to a TextureLayer.
type Texture = image.Image
