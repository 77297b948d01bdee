package strata

import "fmt"

// OpacityLayer blends its children with a constant alpha.
type OpacityLayer struct {
	ContainerLayer

	alpha  int
	offset Offset
}

// NewOpacityLayer creates an opacity layer. alpha ranges from 0
// (transparent) to 255 (opaque); offset shifts the children.
func NewOpacityLayer(alpha int, offset Offset) *OpacityLayer {
	l := &OpacityLayer{alpha: clampAlpha(alpha), offset: offset}
	l.init(l)
	return l
}

func clampAlpha(a int) int {
	return max(0, min(255, a))
}

// Alpha returns the alpha in [0, 255].
func (l *OpacityLayer) Alpha() int { return l.alpha }

// Offset returns the offset applied to the children.
func (l *OpacityLayer) Offset() Offset { return l.offset }

// SetAlpha changes the alpha, clamped to [0, 255].
func (l *OpacityLayer) SetAlpha(alpha int) {
	alpha = clampAlpha(alpha)
	if alpha != l.alpha {
		l.alpha = alpha
		l.needsAddToScene = true
	}
}

// SetOffset changes the offset applied with the opacity.
func (l *OpacityLayer) SetOffset(o Offset) {
	if o != l.offset {
		l.offset = o
		l.needsAddToScene = true
	}
}

// AddToScene pushes the opacity at offset + layerOffset and emits the
// children with layerOffset. While DebugOptions.DisableOpacityLayers is in
// force only the children are emitted.
func (l *OpacityLayer) AddToScene(b SceneBuilder, layerOffset Offset) EngineLayer {
	if debugEnabled(debugOptions.DisableOpacityLayers) {
		l.AddChildrenToScene(b, layerOffset)
		return nil
	}
	engineLayer := b.PushOpacity(l.alpha, l.offset.Add(layerOffset))
	l.AddChildrenToScene(b, layerOffset)
	b.Pop()
	return engineLayer
}

func (l *OpacityLayer) debugProperties() []string {
	return []string{fmt.Sprintf("alpha: %d", l.alpha), fmt.Sprintf("offset: %s", l.offset)}
}

// BackdropFilterLayer applies a filter to everything painted before it,
// inside the current clip.
type BackdropFilterLayer struct {
	ContainerLayer

	filter ImageFilter
}

// NewBackdropFilterLayer creates a backdrop filter layer.
func NewBackdropFilterLayer(filter ImageFilter) *BackdropFilterLayer {
	l := &BackdropFilterLayer{filter: filter}
	l.init(l)
	return l
}

// Filter returns the filter applied to the backdrop.
func (l *BackdropFilterLayer) Filter() ImageFilter { return l.filter }

// SetFilter replaces the filter.
func (l *BackdropFilterLayer) SetFilter(f ImageFilter) {
	if f != l.filter {
		l.filter = f
		l.needsAddToScene = true
	}
}

// AddToScene pushes the filter and emits the children with layerOffset.
func (l *BackdropFilterLayer) AddToScene(b SceneBuilder, layerOffset Offset) EngineLayer {
	engineLayer := b.PushBackdropFilter(l.filter)
	l.AddChildrenToScene(b, layerOffset)
	b.Pop()
	return engineLayer
}

func (l *BackdropFilterLayer) debugProperties() []string {
	return []string{fmt.Sprintf("filter: blur(%g, %g)", l.filter.SigmaX, l.filter.SigmaY)}
}
