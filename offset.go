package strata

import "fmt"

// OffsetLayer translates its children. It is also the usual root of a layer
// tree; BuildScene is the per-frame entry point.
type OffsetLayer struct {
	ContainerLayer

	offset Offset
}

// NewOffsetLayer creates an offset layer translating by offset.
func NewOffsetLayer(offset Offset) *OffsetLayer {
	l := &OffsetLayer{offset: offset}
	l.init(l)
	return l
}

// Offset returns the translation applied to the children.
func (l *OffsetLayer) Offset() Offset { return l.offset }

// SetOffset changes the translation.
func (l *OffsetLayer) SetOffset(o Offset) {
	if o != l.offset {
		l.offset = o
		l.needsAddToScene = true
	}
}

// ApplyTransform translates m by the layer's offset.
func (l *OffsetLayer) ApplyTransform(child Layer, m *Matrix4) {
	m.Translate(l.offset.DX, l.offset.DY)
}

// AddToScene pushes the combined offset and emits the children through
// retained rendering.
func (l *OffsetLayer) AddToScene(b SceneBuilder, layerOffset Offset) EngineLayer {
	total := layerOffset.Add(l.offset)
	engineLayer := b.PushOffset(total.DX, total.DY)
	l.AddChildrenToScene(b, OffsetZero)
	b.Pop()
	return engineLayer
}

func (l *OffsetLayer) find(p Offset, q *query) bool {
	return l.ContainerLayer.find(p.Sub(l.offset), q)
}

func (l *OffsetLayer) debugProperties() []string {
	return []string{fmt.Sprintf("offset: %s", l.offset)}
}

// BuildScene emits the whole tree rooted at l into b and returns the built
// scene. With debug mode and DebugOptions.CheckElevations on, elevation
// conflicts are reported and outlined for this frame only.
func (l *OffsetLayer) BuildScene(b SceneBuilder) Scene {
	var temporary []*PictureLayer
	if debugEnabled(debugOptions.CheckElevations) {
		temporary = l.debugCheckElevations()
	}
	l.self.updateSubtreeNeedsAddToScene()
	l.self.AddToScene(b, OffsetZero)
	scene := b.Build()
	for _, overlay := range temporary {
		overlay.Remove()
	}
	return scene
}

// TransformLayer applies a matrix to its children, after the inherited
// offset.
type TransformLayer struct {
	OffsetLayer

	transform              Matrix4
	lastEffectiveTransform *Matrix4

	invertedTransform Matrix4
	inverseOK         bool
	inverseDirty      bool
}

// NewTransformLayer creates a transform layer. The children are painted
// through T(offset) * transform.
func NewTransformLayer(transform Matrix4, offset Offset) *TransformLayer {
	l := &TransformLayer{transform: transform, inverseDirty: true}
	l.offset = offset
	l.init(l)
	return l
}

// Transform returns the layer's matrix.
func (l *TransformLayer) Transform() Matrix4 { return l.transform }

// SetTransform replaces the layer's matrix.
func (l *TransformLayer) SetTransform(m Matrix4) {
	if m != l.transform {
		l.transform = m
		l.inverseDirty = true
		l.needsAddToScene = true
	}
}

// AddToScene pushes the effective transform, which folds the offset and
// layerOffset in front of the layer's matrix.
func (l *TransformLayer) AddToScene(b SceneBuilder, layerOffset Offset) EngineLayer {
	effective := l.transform
	if total := l.offset.Add(layerOffset); !total.IsZero() {
		effective = Translation4(total.DX, total.DY, 0).Multiply(l.transform)
	}
	l.lastEffectiveTransform = &effective
	engineLayer := b.PushTransform(effective)
	l.AddChildrenToScene(b, OffsetZero)
	b.Pop()
	return engineLayer
}

// ApplyTransform multiplies m by the transform used in the last scene
// build, or by the layer's own matrix if it has not been built yet.
func (l *TransformLayer) ApplyTransform(child Layer, m *Matrix4) {
	if l.lastEffectiveTransform != nil {
		*m = m.Multiply(*l.lastEffectiveTransform)
		return
	}
	*m = m.Multiply(Translation4(l.offset.DX, l.offset.DY, 0).Multiply(l.transform))
}

func (l *TransformLayer) find(p Offset, q *query) bool {
	if l.inverseDirty {
		l.invertedTransform, l.inverseOK = l.transform.withoutZ().TryInvert()
		l.inverseDirty = false
	}
	if !l.inverseOK {
		return false
	}
	local := l.invertedTransform.TransformPoint(p.Sub(l.offset))
	return l.ContainerLayer.find(local, q)
}

func (l *TransformLayer) debugProperties() []string {
	return []string{
		fmt.Sprintf("offset: %s", l.offset),
		fmt.Sprintf("transform: %s", l.transform),
	}
}
