package strata

import (
	"testing"

	"github.com/gogpu/gg"
)

// lShape traces a 100x100 square with its top-right 50x50 quadrant cut out.
func lShape() *gg.Path {
	p := gg.NewPath()
	p.MoveTo(0, 0)
	p.LineTo(50, 0)
	p.LineTo(50, 50)
	p.LineTo(100, 50)
	p.LineTo(100, 100)
	p.LineTo(0, 100)
	p.Close()
	return p
}

// ring traces a 100x100 square with a 60x60 hole cut out of its centre. The
// inner square winds the other way, so the hole is empty under the
// non-zero rule.
func ring() *gg.Path {
	p := gg.NewPath()
	p.MoveTo(0, 0)
	p.LineTo(100, 0)
	p.LineTo(100, 100)
	p.LineTo(0, 100)
	p.Close()
	p.MoveTo(20, 20)
	p.LineTo(20, 80)
	p.LineTo(80, 80)
	p.LineTo(80, 20)
	p.Close()
	return p
}

func TestPathsOverlap(t *testing.T) {
	square := func(l, t, w, h float64) *gg.Path { return RectPath(RectFromLTWH(l, t, w, h)) }

	tests := []struct {
		name string
		a, b *gg.Path
		want bool
	}{
		{"overlapping squares", square(0, 0, 50, 50), square(25, 25, 50, 50), true},
		{"contained", square(0, 0, 100, 100), square(10, 10, 5, 5), true},
		{"shared edge", square(0, 0, 50, 50), square(50, 0, 50, 50), false},
		{"shared corner", square(0, 0, 50, 50), square(50, 50, 50, 50), false},
		{"disjoint", square(0, 0, 10, 10), square(20, 20, 10, 10), false},
		{"concave notch", lShape(), square(60, 10, 30, 30), false},
		{"concave arm", lShape(), square(60, 60, 30, 30), true},
		{"concave pair", lShape(), ShiftPath(lShape(), Offset{10, 10}), true},
		{"identical concave", lShape(), lShape(), true},
		{"concave sharing the notch edge", lShape(), square(50, 0, 50, 50), false},
		{"inside a hole", ring(), square(40, 40, 10, 10), false},
		{"filling a hole exactly", ring(), square(20, 20, 60, 60), false},
		{"across a hole", ring(), square(10, 40, 20, 10), true},
		{"ring on ring", ring(), ShiftPath(ring(), Offset{5, 5}), true},
		{"circle and square corner", circlePath(50, 50, 10), square(0, 0, 41, 41), false},
		{"circle inside square", circlePath(50, 50, 10), square(45, 45, 10, 10), true},
		{"nil", nil, square(0, 0, 1, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pathsOverlap(tt.a, tt.b); got != tt.want {
				t.Errorf("pathsOverlap = %v, want %v", got, tt.want)
			}
			if got := pathsOverlap(tt.b, tt.a); got != tt.want {
				t.Errorf("pathsOverlap (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func circlePath(cx, cy, r float64) *gg.Path {
	p := gg.NewPath()
	p.Circle(cx, cy, r)
	return p
}

func TestPathContains(t *testing.T) {
	p := lShape()
	if !pathContains(p, Offset{25, 25}) {
		t.Error("(25,25) is inside the L")
	}
	if pathContains(p, Offset{75, 25}) {
		t.Error("(75,25) is in the notch")
	}
	if pathContains(ring(), Offset{50, 50}) {
		t.Error("(50,50) is in the ring's hole")
	}
	if pathContains(nil, OffsetZero) {
		t.Error("nil path contains nothing")
	}
}

func TestShiftPath(t *testing.T) {
	p := RectPath(RectFromLTWH(0, 0, 10, 10))
	if ShiftPath(p, OffsetZero) != p {
		t.Error("zero shift should return the same path")
	}
	shifted := ShiftPath(p, Offset{5, 5})
	if got := pathBounds(shifted); got != RectFromLTWH(5, 5, 10, 10) {
		t.Errorf("shifted bounds = %s", got)
	}
	if got := pathBounds(p); got != RectFromLTWH(0, 0, 10, 10) {
		t.Error("ShiftPath must not modify its input")
	}
}

func TestTransformPath(t *testing.T) {
	p := RectPath(RectFromLTWH(1, 1, 2, 2))
	got := pathBounds(TransformPath(p, Translation4(10, 0, 0).Multiply(Scale4(2, 2))))
	if got != RectFromLTWH(12, 2, 4, 4) {
		t.Errorf("transformed bounds = %s, want (12, 2, 4, 4)", got)
	}
}
