package strata

import (
	"math"
	"slices"

	"github.com/gogpu/gg"
)

// curveSegments is the number of line segments each Bezier curve is split
// into when a path is reduced to polygons for overlap tests.
const curveSegments = 16

// overlapEpsilon is the smallest gap between slab breaks or edges treated
// as having extent.
const overlapEpsilon = 1e-6

// RectPath returns a closed path tracing r.
func RectPath(r Rect) *gg.Path {
	return r.Path()
}

// RRectPath returns a closed path tracing rr.
func RRectPath(rr RRect) *gg.Path {
	return rr.Path()
}

// ShiftPath returns a translated copy of p, leaving p unmodified;
// a zero offset returns p itself.
func ShiftPath(p *gg.Path, o Offset) *gg.Path {
	if p == nil || o.IsZero() {
		return p
	}
	return p.Transform(gg.Translate(o.DX, o.DY))
}

// TransformPath returns p mapped through the affine part of m.
func TransformPath(p *gg.Path, m Matrix4) *gg.Path {
	if p == nil || m.IsIdentity() {
		return p
	}
	return p.Transform(m.Affine())
}

// pathContains reports whether o is inside p under the non-zero rule.
func pathContains(p *gg.Path, o Offset) bool {
	if p == nil {
		return false
	}
	return p.Contains(gg.Pt(o.DX, o.DY))
}

// polygon is one flattened closed subpath.
type polygon []gg.Point

// flattenPath splits p into closed polygons, one per subpath.
func flattenPath(p *gg.Path) []polygon {
	var polys []polygon
	var cur polygon
	var current gg.Point
	flush := func() {
		if len(cur) >= 3 {
			polys = append(polys, cur)
		}
		cur = nil
	}
	p.Iterate(func(verb gg.PathVerb, c []float64) {
		switch verb {
		case gg.MoveTo:
			flush()
			current = gg.Pt(c[0], c[1])
			cur = polygon{current}
		case gg.LineTo:
			current = gg.Pt(c[0], c[1])
			cur = append(cur, current)
		case gg.QuadTo:
			end := gg.Pt(c[2], c[3])
			q := gg.NewQuadBez(current, gg.Pt(c[0], c[1]), end)
			for i := 1; i <= curveSegments; i++ {
				cur = append(cur, q.Eval(float64(i)/curveSegments))
			}
			current = end
		case gg.CubicTo:
			end := gg.Pt(c[4], c[5])
			cb := gg.NewCubicBez(current, gg.Pt(c[0], c[1]), gg.Pt(c[2], c[3]), end)
			for i := 1; i <= curveSegments; i++ {
				cur = append(cur, cb.Eval(float64(i)/curveSegments))
			}
			current = end
		case gg.Close:
			flush()
		}
	})
	flush()
	return polys
}

// edge is one straight segment of a flattened path.
type edge struct{ a, b gg.Point }

func polygonEdges(polys []polygon) []edge {
	var edges []edge
	for _, poly := range polys {
		for i := range poly {
			edges = append(edges, edge{poly[i], poly[(i+1)%len(poly)]})
		}
	}
	return edges
}

// polygonPath rebuilds polys as a closed path so that containment tests
// agree with the flattened edges.
func polygonPath(polys []polygon) *gg.Path {
	p := gg.NewPath()
	for _, poly := range polys {
		p.MoveTo(poly[0].X, poly[0].Y)
		for _, pt := range poly[1:] {
			p.LineTo(pt.X, pt.Y)
		}
		p.Close()
	}
	return p
}

// crossingX returns the x coordinate where e and f meet, if they meet at a
// single point.
func crossingX(e, f edge) (float64, bool) {
	dx1, dy1 := e.b.X-e.a.X, e.b.Y-e.a.Y
	dx2, dy2 := f.b.X-f.a.X, f.b.Y-f.a.Y
	den := dx1*dy2 - dy1*dx2
	if math.Abs(den) < 1e-12 {
		return 0, false
	}
	ox, oy := f.a.X-e.a.X, f.a.Y-e.a.Y
	t := (ox*dy2 - oy*dx2) / den
	u := (ox*dy1 - oy*dx1) / den
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return e.a.X + t*dx1, true
}

// slabBreaks returns the sorted, distinct x coordinates of every vertex and
// every edge crossing. Between two neighbouring breaks no edges cross and
// no vertex lies, so the edges spanning that slab split it into trapezoids.
func slabBreaks(edges []edge) []float64 {
	xs := make([]float64, 0, 2*len(edges))
	for _, e := range edges {
		xs = append(xs, e.a.X)
	}
	for i := range edges {
		for j := i + 1; j < len(edges); j++ {
			if x, ok := crossingX(edges[i], edges[j]); ok {
				xs = append(xs, x)
			}
		}
	}
	slices.Sort(xs)
	out := xs[:0]
	for _, x := range xs {
		if len(out) == 0 || x-out[len(out)-1] > overlapEpsilon {
			out = append(out, x)
		}
	}
	return out
}

// pathsOverlap reports whether the filled regions of a and b intersect with
// positive area under the non-zero rule. Shapes that only touch along an
// edge or at a corner do not overlap; holes are honoured.
//
// Both paths are flattened and the plane is cut into vertical slabs at
// every vertex and edge crossing. Inside a slab each trapezoid between two
// neighbouring edges is wholly inside or wholly outside each shape, so
// testing one interior point per trapezoid is exact.
func pathsOverlap(a, b *gg.Path) bool {
	if a == nil || b == nil {
		return false
	}
	ba, bb := a.BoundingBox(), b.BoundingBox()
	if ba.Max.X <= bb.Min.X || bb.Max.X <= ba.Min.X ||
		ba.Max.Y <= bb.Min.Y || bb.Max.Y <= ba.Min.Y {
		return false
	}
	polysA, polysB := flattenPath(a), flattenPath(b)
	if len(polysA) == 0 || len(polysB) == 0 {
		return false
	}
	flatA, flatB := polygonPath(polysA), polygonPath(polysB)
	edges := append(polygonEdges(polysA), polygonEdges(polysB)...)

	breaks := slabBreaks(edges)
	var ys []float64
	for i := 1; i < len(breaks); i++ {
		x := (breaks[i-1] + breaks[i]) / 2
		ys = ys[:0]
		for _, e := range edges {
			if e.a.X == e.b.X || x < math.Min(e.a.X, e.b.X) || x > math.Max(e.a.X, e.b.X) {
				continue
			}
			t := (x - e.a.X) / (e.b.X - e.a.X)
			ys = append(ys, e.a.Y+t*(e.b.Y-e.a.Y))
		}
		slices.Sort(ys)
		for j := 1; j < len(ys); j++ {
			if ys[j]-ys[j-1] <= overlapEpsilon {
				continue
			}
			pt := gg.Pt(x, (ys[j-1]+ys[j])/2)
			if flatA.Contains(pt) && flatB.Contains(pt) {
				return true
			}
		}
	}
	return false
}
