package strata

import (
	"fmt"

	"github.com/gogpu/gg"
)

func checkClipBehavior(layer string, clip Clip) {
	if clip == ClipNone {
		panic(fmt.Sprintf("strata: %s requires a clip behavior other than none", layer))
	}
}

// addClipped emits c's children inside the clip pushed by push. While
// DebugOptions.DisableClipLayers is in force the children are emitted
// without the clip.
func addClipped(c *ContainerLayer, b SceneBuilder, layerOffset Offset, push func() EngineLayer) EngineLayer {
	if debugEnabled(debugOptions.DisableClipLayers) {
		c.AddChildrenToScene(b, layerOffset)
		return nil
	}
	engineLayer := push()
	c.AddChildrenToScene(b, layerOffset)
	b.Pop()
	return engineLayer
}

// ClipRectLayer clips its children to a rectangle.
type ClipRectLayer struct {
	ContainerLayer

	clipRect     Rect
	clipBehavior Clip
}

// NewClipRectLayer creates a rectangular clip. clip must not be ClipNone.
func NewClipRectLayer(clipRect Rect, clip Clip) *ClipRectLayer {
	checkClipBehavior("ClipRectLayer", clip)
	l := &ClipRectLayer{clipRect: clipRect, clipBehavior: clip}
	l.init(l)
	return l
}

// ClipRect returns the clip rectangle.
func (l *ClipRectLayer) ClipRect() Rect { return l.clipRect }

// ClipBehavior returns how the clip edge is rendered.
func (l *ClipRectLayer) ClipBehavior() Clip { return l.clipBehavior }

// SetClipRect changes the clip rectangle.
func (l *ClipRectLayer) SetClipRect(r Rect) {
	if r != l.clipRect {
		l.clipRect = r
		l.needsAddToScene = true
	}
}

// SetClipBehavior changes the edge treatment. clip must not be ClipNone.
func (l *ClipRectLayer) SetClipBehavior(clip Clip) {
	checkClipBehavior("ClipRectLayer", clip)
	if clip != l.clipBehavior {
		l.clipBehavior = clip
		l.needsAddToScene = true
	}
}

// AddToScene pushes the clip shifted by layerOffset and emits the children
// with the same offset.
func (l *ClipRectLayer) AddToScene(b SceneBuilder, layerOffset Offset) EngineLayer {
	return addClipped(&l.ContainerLayer, b, layerOffset, func() EngineLayer {
		return b.PushClipRect(l.clipRect.Shift(layerOffset), l.clipBehavior)
	})
}

func (l *ClipRectLayer) find(p Offset, q *query) bool {
	if !l.clipRect.Contains(p) {
		return false
	}
	return l.ContainerLayer.find(p, q)
}

func (l *ClipRectLayer) debugProperties() []string {
	return []string{fmt.Sprintf("clipRect: %s", l.clipRect), fmt.Sprintf("clipBehavior: %s", l.clipBehavior)}
}

// ClipRRectLayer clips its children to a rounded rectangle.
type ClipRRectLayer struct {
	ContainerLayer

	clipRRect    RRect
	clipBehavior Clip
}

// NewClipRRectLayer creates a rounded-rectangle clip. clip must not be
// ClipNone.
func NewClipRRectLayer(clipRRect RRect, clip Clip) *ClipRRectLayer {
	checkClipBehavior("ClipRRectLayer", clip)
	l := &ClipRRectLayer{clipRRect: clipRRect, clipBehavior: clip}
	l.init(l)
	return l
}

// ClipRRect returns the rounded clip rectangle.
func (l *ClipRRectLayer) ClipRRect() RRect { return l.clipRRect }

// ClipBehavior returns how the clip edge is rendered.
func (l *ClipRRectLayer) ClipBehavior() Clip { return l.clipBehavior }

// SetClipRRect changes the clip shape.
func (l *ClipRRectLayer) SetClipRRect(rr RRect) {
	if rr != l.clipRRect {
		l.clipRRect = rr
		l.needsAddToScene = true
	}
}

// SetClipBehavior changes the edge treatment. clip must not be ClipNone.
func (l *ClipRRectLayer) SetClipBehavior(clip Clip) {
	checkClipBehavior("ClipRRectLayer", clip)
	if clip != l.clipBehavior {
		l.clipBehavior = clip
		l.needsAddToScene = true
	}
}

// AddToScene pushes the clip shifted by layerOffset and emits the children
// with the same offset.
func (l *ClipRRectLayer) AddToScene(b SceneBuilder, layerOffset Offset) EngineLayer {
	return addClipped(&l.ContainerLayer, b, layerOffset, func() EngineLayer {
		return b.PushClipRRect(l.clipRRect.Shift(layerOffset), l.clipBehavior)
	})
}

func (l *ClipRRectLayer) find(p Offset, q *query) bool {
	if !l.clipRRect.Contains(p) {
		return false
	}
	return l.ContainerLayer.find(p, q)
}

func (l *ClipRRectLayer) debugProperties() []string {
	return []string{
		fmt.Sprintf("clipRRect: %s radius %.1f", l.clipRRect.Rect, l.clipRRect.Radius),
		fmt.Sprintf("clipBehavior: %s", l.clipBehavior),
	}
}

// ClipPathLayer clips its children to an arbitrary path, filled with the
// non-zero rule.
type ClipPathLayer struct {
	ContainerLayer

	clipPath     *gg.Path
	clipBehavior Clip
}

// NewClipPathLayer creates a path clip. clip must not be ClipNone.
func NewClipPathLayer(clipPath *gg.Path, clip Clip) *ClipPathLayer {
	if clipPath == nil {
		panic("strata: ClipPathLayer needs a clip path")
	}
	checkClipBehavior("ClipPathLayer", clip)
	l := &ClipPathLayer{clipPath: clipPath, clipBehavior: clip}
	l.init(l)
	return l
}

// ClipPath returns the clip path.
func (l *ClipPathLayer) ClipPath() *gg.Path { return l.clipPath }

// ClipBehavior returns how the clip edge is rendered.
func (l *ClipPathLayer) ClipBehavior() Clip { return l.clipBehavior }

// SetClipPath replaces the clip path. Paths are compared by identity.
func (l *ClipPathLayer) SetClipPath(p *gg.Path) {
	if p == nil {
		panic("strata: ClipPathLayer needs a clip path")
	}
	if p != l.clipPath {
		l.clipPath = p
		l.needsAddToScene = true
	}
}

// SetClipBehavior changes the edge treatment. clip must not be ClipNone.
func (l *ClipPathLayer) SetClipBehavior(clip Clip) {
	checkClipBehavior("ClipPathLayer", clip)
	if clip != l.clipBehavior {
		l.clipBehavior = clip
		l.needsAddToScene = true
	}
}

// AddToScene pushes the clip shifted by layerOffset and emits the children
// with the same offset.
func (l *ClipPathLayer) AddToScene(b SceneBuilder, layerOffset Offset) EngineLayer {
	return addClipped(&l.ContainerLayer, b, layerOffset, func() EngineLayer {
		return b.PushClipPath(ShiftPath(l.clipPath, layerOffset), l.clipBehavior)
	})
}

func (l *ClipPathLayer) find(p Offset, q *query) bool {
	if !pathContains(l.clipPath, p) {
		return false
	}
	return l.ContainerLayer.find(p, q)
}
