package strata

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"
)

// Picture is an immutable list of recorded paint commands. PictureLayer
// hands it to the scene builder unchanged; presenters replay it through a
// recording.Backend.
type Picture = recording.Recording

// RecordPicture records the drawing performed by fn into a new Picture with
// the given canvas size.
func RecordPicture(width, height int, fn func(r *recording.Recorder)) *Picture {
	rec := recording.NewRecorder(width, height)
	if fn != nil {
		fn(rec)
	}
	return rec.FinishRecording()
}

// tracePath replays the elements of p onto the recorder's current path.
func tracePath(r *recording.Recorder, p *gg.Path) {
	p.Iterate(func(verb gg.PathVerb, c []float64) {
		switch verb {
		case gg.MoveTo:
			r.MoveTo(c[0], c[1])
		case gg.LineTo:
			r.LineTo(c[0], c[1])
		case gg.QuadTo:
			r.QuadraticTo(c[0], c[1], c[2], c[3])
		case gg.CubicTo:
			r.CubicTo(c[0], c[1], c[2], c[3], c[4], c[5])
		case gg.Close:
			r.ClosePath()
		}
	})
}

// outlinePicture records p stroked with the given color and width. The
// canvas covers the stroked bounds.
func outlinePicture(p *gg.Path, c Color, width float64) *Picture {
	bounds := p.BoundingBox()
	w := int(math.Ceil(bounds.Max.X + width))
	h := int(math.Ceil(bounds.Max.Y + width))
	return RecordPicture(max(w, 1), max(h, 1), func(r *recording.Recorder) {
		r.SetStrokeRGBA(c.R, c.G, c.B, c.A)
		r.SetLineWidth(width)
		tracePath(r, p)
		r.Stroke()
	})
}

// pathBounds returns the bounding rectangle of p.
func pathBounds(p *gg.Path) Rect {
	b := p.BoundingBox()
	return Rect{b.Min.X, b.Min.Y, b.Max.X, b.Max.Y}
}
