package strata

import (
	"fmt"

	"github.com/gogpu/gg"
)

// PhysicalModelLayer paints a shape at an elevation, casting a shadow onto
// what lies beneath, and optionally clips its children to that shape.
type PhysicalModelLayer struct {
	ContainerLayer

	clipPath     *gg.Path
	clipBehavior Clip
	elevation    float64
	color        Color
	shadowColor  Color
}

// NewPhysicalModelLayer creates a physical model layer. elevation must not
// be negative.
func NewPhysicalModelLayer(clipPath *gg.Path, clip Clip, elevation float64, color, shadowColor Color) *PhysicalModelLayer {
	if clipPath == nil {
		panic("strata: PhysicalModelLayer needs a clip path")
	}
	checkElevation(elevation)
	l := &PhysicalModelLayer{
		clipPath:     clipPath,
		clipBehavior: clip,
		elevation:    elevation,
		color:        color,
		shadowColor:  shadowColor,
	}
	l.init(l)
	return l
}

func checkElevation(e float64) {
	if e < 0 {
		panic(fmt.Sprintf("strata: elevation %g is negative", e))
	}
}

// ClipPath returns the shape of the model.
func (l *PhysicalModelLayer) ClipPath() *gg.Path { return l.clipPath }

// ClipBehavior returns how the shape clips its children.
func (l *PhysicalModelLayer) ClipBehavior() Clip { return l.clipBehavior }

// Elevation returns the height above the parent.
func (l *PhysicalModelLayer) Elevation() float64 { return l.elevation }

// Color returns the fill color.
func (l *PhysicalModelLayer) Color() Color { return l.color }

// ShadowColor returns the color of the cast shadow.
func (l *PhysicalModelLayer) ShadowColor() Color { return l.shadowColor }

// SetClipPath replaces the shape. Paths are compared by identity.
func (l *PhysicalModelLayer) SetClipPath(p *gg.Path) {
	if p == nil {
		panic("strata: PhysicalModelLayer needs a clip path")
	}
	if p != l.clipPath {
		l.clipPath = p
		l.needsAddToScene = true
	}
}

// SetClipBehavior changes how children are clipped. ClipNone paints the
// shape without clipping.
func (l *PhysicalModelLayer) SetClipBehavior(clip Clip) {
	if clip != l.clipBehavior {
		l.clipBehavior = clip
		l.needsAddToScene = true
	}
}

// SetElevation changes the elevation.
func (l *PhysicalModelLayer) SetElevation(e float64) {
	checkElevation(e)
	if e != l.elevation {
		l.elevation = e
		l.needsAddToScene = true
	}
}

// SetColor changes the fill color.
func (l *PhysicalModelLayer) SetColor(c Color) {
	if c != l.color {
		l.color = c
		l.needsAddToScene = true
	}
}

// SetShadowColor changes the shadow color.
func (l *PhysicalModelLayer) SetShadowColor(c Color) {
	if c != l.shadowColor {
		l.shadowColor = c
		l.needsAddToScene = true
	}
}

// AddToScene pushes the shape shifted by layerOffset and emits the children
// with the same offset. While DebugOptions.DisablePhysicalShapeLayers is in
// force only the children are emitted.
func (l *PhysicalModelLayer) AddToScene(b SceneBuilder, layerOffset Offset) EngineLayer {
	if debugEnabled(debugOptions.DisablePhysicalShapeLayers) {
		l.AddChildrenToScene(b, layerOffset)
		return nil
	}
	engineLayer := b.PushPhysicalShape(ShiftPath(l.clipPath, layerOffset),
		l.elevation, l.color, l.shadowColor, l.clipBehavior)
	l.AddChildrenToScene(b, layerOffset)
	b.Pop()
	return engineLayer
}

func (l *PhysicalModelLayer) find(p Offset, q *query) bool {
	if !pathContains(l.clipPath, p) {
		return false
	}
	return l.ContainerLayer.find(p, q)
}

// transformedClipPath maps the clip path through the transforms of every
// ancestor below the root. The root's own transform is shared by all
// physical layers, so leaving it out does not change which shapes overlap.
func (l *PhysicalModelLayer) transformedClipPath() *gg.Path {
	var chain []Layer
	for child := Layer(l); ; {
		parent := parentLayer(child)
		if parent == nil || parentLayer(parent) == nil {
			break
		}
		chain = append(chain, child)
		child = parent
	}
	m := Identity4()
	for i := len(chain) - 1; i >= 0; i-- {
		chain[i].Parent().ApplyTransform(chain[i], &m)
	}
	return TransformPath(l.clipPath, m)
}

// cumulativeElevation returns the elevation plus that of every physical
// model ancestor.
func (l *PhysicalModelLayer) cumulativeElevation() float64 {
	total := l.elevation
	for p := parentLayer(l); p != nil; p = parentLayer(p) {
		if pm, ok := p.(*PhysicalModelLayer); ok {
			total += pm.elevation
		}
	}
	return total
}

func (l *PhysicalModelLayer) debugProperties() []string {
	return []string{
		fmt.Sprintf("elevation: %g", l.elevation),
		fmt.Sprintf("color: %v", l.color),
	}
}
