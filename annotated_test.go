package strata

import (
	"math"
	"slices"
	"testing"

	"github.com/gogpu/gg"
)

func TestFindInsideClip(t *testing.T) {
	root := newRoot(t)
	clip := NewClipRectLayer(RectFromLTWH(0, 0, 100, 100), ClipHardEdge)
	clip.Append(NewAnnotatedRegionLayer("tag", nil, OffsetZero))
	root.Append(clip)

	if v, ok := Find[string](root, Offset{50, 50}); !ok || v != "tag" {
		t.Errorf("Find(50,50) = %q, %v; want tag", v, ok)
	}
	if _, ok := Find[string](root, Offset{150, 50}); ok {
		t.Error("Find(150,50) should miss outside the clip")
	}
	// The right edge is outside.
	if _, ok := Find[string](root, Offset{100, 50}); ok {
		t.Error("Find(100,50) should miss on the right edge")
	}
}

func TestFindTopmostFirst(t *testing.T) {
	root := newRoot(t)
	root.Append(NewAnnotatedRegionLayer("bottom", nil, OffsetZero))
	root.Append(NewAnnotatedRegionLayer("top", nil, OffsetZero))

	if v, _ := Find[string](root, OffsetZero); v != "top" {
		t.Errorf("Find = %q, want top", v)
	}
	got := FindAll[string](root, OffsetZero)
	if !slices.Equal(got, []string{"top", "bottom"}) {
		t.Errorf("FindAll = %v, want [top bottom]", got)
	}
}

func TestFindDescendantBeforeAncestor(t *testing.T) {
	root := newRoot(t)
	outer := NewAnnotatedRegionLayer("outer", nil, OffsetZero)
	outer.Append(NewAnnotatedRegionLayer("inner", nil, OffsetZero))
	root.Append(outer)

	got := FindAll[string](root, OffsetZero)
	if !slices.Equal(got, []string{"inner", "outer"}) {
		t.Errorf("FindAll = %v, want [inner outer]", got)
	}
}

func TestFindFiltersByType(t *testing.T) {
	type cursor int
	root := newRoot(t)
	root.Append(NewAnnotatedRegionLayer(cursor(3), nil, OffsetZero))
	root.Append(NewAnnotatedRegionLayer("label", nil, OffsetZero))

	if v, ok := Find[cursor](root, OffsetZero); !ok || v != 3 {
		t.Errorf("Find[cursor] = %v, %v; want 3", v, ok)
	}
	if got := FindAll[int](root, OffsetZero); len(got) != 0 {
		t.Errorf("FindAll[int] = %v, want none", got)
	}
}

func TestAnnotatedRegionSizeAndOffset(t *testing.T) {
	root := newRoot(t)
	root.Append(NewAnnotatedRegionLayer("box", &Size{10, 10}, Offset{20, 20}))

	if _, ok := Find[string](root, Offset{25, 25}); !ok {
		t.Error("point inside the region should hit")
	}
	if _, ok := Find[string](root, Offset{5, 5}); ok {
		t.Error("point outside the region should miss")
	}
}

func TestFindThroughOffsetAndTransform(t *testing.T) {
	root := newRoot(t)
	off := NewOffsetLayer(Offset{100, 0})
	tr := NewTransformLayer(Scale4(2, 2), Offset{0, 50})
	tr.Append(NewAnnotatedRegionLayer("scaled", &Size{10, 10}, OffsetZero))
	off.Append(tr)
	root.Append(off)

	// Local (5,5) is painted at (100 + 10, 50 + 10).
	if _, ok := Find[string](root, Offset{110, 60}); !ok {
		t.Error("expected hit through offset and scale")
	}
	// Local (15,15) is outside the 10x10 region.
	if _, ok := Find[string](root, Offset{130, 80}); ok {
		t.Error("expected miss beyond the scaled region")
	}
}

func TestFindSingularTransformMisses(t *testing.T) {
	root := newRoot(t)
	tr := NewTransformLayer(Scale4(0, 1), OffsetZero)
	tr.Append(NewAnnotatedRegionLayer("flat", nil, OffsetZero))
	root.Append(tr)

	if _, ok := Find[string](root, OffsetZero); ok {
		t.Error("a singular transform should hide its subtree from hit testing")
	}
}

func TestFindRotatedTransform(t *testing.T) {
	root := newRoot(t)
	tr := NewTransformLayer(Rotation4Z(math.Pi/2), OffsetZero)
	tr.Append(NewAnnotatedRegionLayer("rotated", &Size{10, 5}, OffsetZero))
	root.Append(tr)

	// Local (8, 2) rotates to (-2, 8).
	if _, ok := Find[string](root, Offset{-2, 8}); !ok {
		t.Error("expected hit inside the rotated region")
	}
	if _, ok := Find[string](root, Offset{8, 2}); ok {
		t.Error("unrotated point should miss")
	}
}

func TestFindRRectCorners(t *testing.T) {
	root := newRoot(t)
	clip := NewClipRRectLayer(RRect{Rect: RectFromLTWH(0, 0, 100, 100), Radius: 20}, ClipAntiAlias)
	clip.Append(NewAnnotatedRegionLayer("round", nil, OffsetZero))
	root.Append(clip)

	if _, ok := Find[string](root, Offset{1, 1}); ok {
		t.Error("corner outside the radius should miss")
	}
	if _, ok := Find[string](root, Offset{20, 20}); !ok {
		t.Error("corner centre should hit")
	}
}

func TestFindClipPathAndPhysicalModel(t *testing.T) {
	tri := gg.NewPath()
	tri.MoveTo(0, 0)
	tri.LineTo(100, 0)
	tri.LineTo(0, 100)
	tri.Close()

	root := newRoot(t)
	cp := NewClipPathLayer(tri, ClipAntiAlias)
	cp.Append(NewAnnotatedRegionLayer("tri", nil, OffsetZero))
	root.Append(cp)

	if _, ok := Find[string](root, Offset{10, 10}); !ok {
		t.Error("inside the triangle should hit")
	}
	if _, ok := Find[string](root, Offset{90, 90}); ok {
		t.Error("outside the triangle should miss")
	}

	root2 := newRoot(t)
	pm := NewPhysicalModelLayer(RectPath(RectFromLTWH(0, 0, 10, 10)), ClipHardEdge, 2, ColorBlack, ColorBlack)
	pm.Append(NewAnnotatedRegionLayer("card", nil, OffsetZero))
	root2.Append(pm)
	if _, ok := Find[string](root2, Offset{5, 5}); !ok {
		t.Error("inside the physical shape should hit")
	}
	if _, ok := Find[string](root2, Offset{15, 5}); ok {
		t.Error("outside the physical shape should miss")
	}
}
