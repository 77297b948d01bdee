package strata

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenOffsetReachesTarget(t *testing.T) {
	l := NewOffsetLayer(Offset{10, 20})

	g := TweenOffset(l, Offset{100, 200}, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(l.Offset().DX-100) > 0.5 {
		t.Errorf("DX = %f, want ~100", l.Offset().DX)
	}
	if math.Abs(l.Offset().DY-200) > 0.5 {
		t.Errorf("DY = %f, want ~200", l.Offset().DY)
	}
}

func TestTweenOpacityInterpolates(t *testing.T) {
	l := NewOpacityLayer(255, OffsetZero)

	g := TweenOpacity(l, 0, 1.0, ease.Linear)

	g.Update(0.5)
	if g.Done {
		t.Fatal("should not be done at halfway")
	}
	if a := l.Alpha(); a < 120 || a > 135 {
		t.Errorf("Alpha = %d, want ~128 at halfway", a)
	}

	g.Update(0.5)
	if !g.Done {
		t.Fatal("should be done after full duration")
	}
	if l.Alpha() != 0 {
		t.Errorf("Alpha = %d, want 0", l.Alpha())
	}
}

func TestTweenElevationNeverNegative(t *testing.T) {
	l := NewPhysicalModelLayer(RectPath(RectFromLTWH(0, 0, 10, 10)), ClipHardEdge, 4, ColorBlack, ColorBlack)

	g := TweenElevation(l, 0, 0.5, ease.InOutBack)
	for !g.Done {
		g.Update(0.05)
		if l.Elevation() < 0 {
			t.Fatalf("elevation went negative: %f", l.Elevation())
		}
	}
	if math.Abs(l.Elevation()) > 0.01 {
		t.Errorf("Elevation = %f, want ~0", l.Elevation())
	}
}

func TestTweenTransformEndsAtTarget(t *testing.T) {
	l := NewTransformLayer(Identity4(), OffsetZero)

	g := TweenTransform(l, 2, math.Pi/2, 1.0, ease.Linear)
	g.Update(0.5)
	g.Update(0.5)

	want := Rotation4Z(math.Pi / 2).Multiply(Scale4(2, 2))
	if !l.Transform().ApproxEqual(want, 1e-3) {
		t.Errorf("Transform = %s, want %s", l.Transform(), want)
	}
}

func TestTweenLeaderOffsetMovesLeader(t *testing.T) {
	l := NewLeaderLayer(NewLayerLink(), OffsetZero)

	g := TweenLeaderOffset(l, Offset{30, 40}, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if got := l.Offset(); math.Abs(got.DX-30) > 0.01 || math.Abs(got.DY-40) > 0.01 {
		t.Errorf("Offset = %s, want (30, 40)", got)
	}
}

func TestTweenGroupDoneFlagTransition(t *testing.T) {
	l := NewOffsetLayer(OffsetZero)
	g := TweenOffset(l, Offset{50, 50}, 0.5, ease.Linear)

	if g.Done {
		t.Fatal("should not be Done at start")
	}

	g.Update(0.25)
	if g.Done {
		t.Fatal("should not be Done partway through")
	}

	g.Update(0.25)
	if !g.Done {
		t.Fatal("should be Done after full duration")
	}

	// Update after done is a no-op.
	g.Update(0.1)
	if !g.Done {
		t.Fatal("should remain Done")
	}
}

func TestTweenGroupMarksNeedsAddToScene(t *testing.T) {
	l := NewOffsetLayer(OffsetZero)
	l.needsAddToScene = false

	g := TweenOffset(l, Offset{100, 100}, 1.0, ease.Linear)
	g.Update(0.1)

	if !l.NeedsAddToScene() {
		t.Fatal("expected layer to need re-emission after TweenGroup update")
	}
}

func TestTweenGroupDisposedLayer(t *testing.T) {
	l := NewOffsetLayer(Offset{10, 20})

	g := TweenOffset(l, Offset{100, 200}, 1.0, ease.Linear)
	l.Dispose()

	g.Update(0.1)

	if !g.Done {
		t.Fatal("expected Done after disposed layer detected")
	}
	if l.Offset() != (Offset{10, 20}) {
		t.Errorf("offset changed to %s on disposed layer", l.Offset())
	}
}
