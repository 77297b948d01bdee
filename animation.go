package strata

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 values of one layer simultaneously. Create one
// with a convenience constructor (TweenOffset, TweenOpacity, TweenElevation,
// TweenTransform) and call Update(dt) each frame. Each step writes through
// the layer's setter, so the layer is marked for re-emission only when a
// value actually changes. If the layer is disposed, the group stops.
//
// There is no global animation manager; callers drive Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(vals [4]float64)
	target Layer
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values to the
// target layer. If the target has been disposed, Done is set and nothing is
// written.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.base().disposed {
		g.Done = true
		return
	}

	var vals [4]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(vals)
}

// TweenOffset animates an offset layer's translation to the given target.
func TweenOffset(l *OffsetLayer, to Offset, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := l.offset
	g := &TweenGroup{count: 2, target: l.self}
	g.tweens[0] = gween.New(float32(from.DX), float32(to.DX), duration, fn)
	g.tweens[1] = gween.New(float32(from.DY), float32(to.DY), duration, fn)
	g.apply = func(v [4]float64) { l.SetOffset(Offset{v[0], v[1]}) }
	return g
}

// TweenLeaderOffset animates where a leader paints its children. Followers
// of its link track the motion.
func TweenLeaderOffset(l *LeaderLayer, to Offset, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := l.offset
	g := &TweenGroup{count: 2, target: l}
	g.tweens[0] = gween.New(float32(from.DX), float32(to.DX), duration, fn)
	g.tweens[1] = gween.New(float32(from.DY), float32(to.DY), duration, fn)
	g.apply = func(v [4]float64) { l.SetOffset(Offset{v[0], v[1]}) }
	return g
}

// TweenOpacity animates an opacity layer's alpha to the target, rounding to
// the nearest integer step.
func TweenOpacity(l *OpacityLayer, to int, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: l}
	g.tweens[0] = gween.New(float32(l.alpha), float32(clampAlpha(to)), duration, fn)
	g.apply = func(v [4]float64) { l.SetAlpha(int(math.Round(v[0]))) }
	return g
}

// TweenElevation animates a physical model layer's elevation.
func TweenElevation(l *PhysicalModelLayer, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: l}
	g.tweens[0] = gween.New(float32(l.elevation), float32(to), duration, fn)
	g.apply = func(v [4]float64) { l.SetElevation(math.Max(0, v[0])) }
	return g
}

// TweenTransform animates a transform layer through scale and rotation
// about the origin, starting from the identity.
func TweenTransform(l *TransformLayer, toScale, toRadians float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: l}
	g.tweens[0] = gween.New(1, float32(toScale), duration, fn)
	g.tweens[1] = gween.New(0, float32(toRadians), duration, fn)
	g.apply = func(v [4]float64) {
		l.SetTransform(Rotation4Z(v[1]).Multiply(Scale4(v[0], v[0])))
	}
	return g
}
