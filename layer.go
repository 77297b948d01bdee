package strata

import (
	"fmt"
	"reflect"
)

// layerIDCounter is a plain counter; the layer tree is single-threaded.
var layerIDCounter uint32

func nextLayerID() uint32 {
	layerIDCounter++
	return layerIDCounter
}

// Layer is one node of the compositing tree. Layers are created detached,
// become part of a tree through ContainerLayer.Append and leave it through
// Remove. Only the types in this package implement Layer.
type Layer interface {
	// ID returns a process-unique identifier assigned at construction.
	ID() uint32
	// Parent returns the container holding this layer, or nil.
	Parent() Container
	NextSibling() Layer
	PreviousSibling() Layer

	// Owner returns the value passed to Attach, or nil while detached.
	Owner() any
	Attached() bool
	// Attach marks the layer and its subtree as part of a live tree owned
	// by owner. Appending to an attached container attaches implicitly.
	Attach(owner any)
	// Detach reverses Attach for the whole subtree.
	Detach()

	// Remove detaches the layer from its parent. No-op without a parent.
	Remove()
	// ReplaceWith puts newLayer at this layer's position under the same
	// parent and removes this layer. newLayer must be free.
	ReplaceWith(newLayer Layer)

	// AddToScene emits the layer's operations to b, shifted by layerOffset.
	// Containers that push return the builder's engine layer.
	AddToScene(b SceneBuilder, layerOffset Offset) EngineLayer

	NeedsAddToScene() bool
	// MarkNeedsAddToScene forces the layer to be re-emitted next frame.
	MarkNeedsAddToScene()
	SubtreeNeedsAddToScene() bool
	// EngineLayer returns the handle retained from the last scene build.
	EngineLayer() EngineLayer

	// DebugCreator returns the object tagged as having created this layer.
	DebugCreator() any
	SetDebugCreator(creator any)

	// Dispose releases the retained engine layer handle. For containers it
	// releases every descendant's handle too. The layer must not have a
	// parent.
	Dispose()

	String() string

	base() *layerBase
	attachTo(owner any)
	detachFrom()
	updateSubtreeNeedsAddToScene()
	alwaysNeedsAddToScene() bool
	find(p Offset, q *query) bool
}

// layerBase holds the bookkeeping shared by every layer. Concrete layers
// embed it (through ContainerLayer for containers) and set self to the
// outermost value so overridable hooks dispatch to the concrete type.
type layerBase struct {
	self Layer
	id   uint32

	parent      Container
	nextSibling Layer
	prevSibling Layer
	owner       any

	needsAddToScene        bool
	subtreeNeedsAddToScene bool
	engineLayer            EngineLayer

	debugCreator any
	disposed     bool
}

func (b *layerBase) init(self Layer) {
	b.self = self
	b.id = nextLayerID()
	b.needsAddToScene = true
}

func (b *layerBase) base() *layerBase { return b }

// ID returns the layer's process-unique identifier.
func (b *layerBase) ID() uint32 { return b.id }

// Parent returns the containing layer, or nil.
func (b *layerBase) Parent() Container { return b.parent }

// NextSibling returns the next child of the parent, or nil.
func (b *layerBase) NextSibling() Layer { return b.nextSibling }

// PreviousSibling returns the previous child of the parent, or nil.
func (b *layerBase) PreviousSibling() Layer { return b.prevSibling }

// Owner returns the owner the tree is attached to, or nil.
func (b *layerBase) Owner() any { return b.owner }

// Attached reports whether the layer has an owner.
func (b *layerBase) Attached() bool { return b.owner != nil }

// NeedsAddToScene reports whether the layer must be re-emitted on the next build.
func (b *layerBase) NeedsAddToScene() bool { return b.needsAddToScene }

// MarkNeedsAddToScene forces the layer to be re-emitted on the next build.
func (b *layerBase) MarkNeedsAddToScene() { b.needsAddToScene = true }

// SubtreeNeedsAddToScene reports whether the layer or any descendant needs re-emitting.
func (b *layerBase) SubtreeNeedsAddToScene() bool { return b.subtreeNeedsAddToScene }

// EngineLayer returns the handle retained from the last build, or nil.
func (b *layerBase) EngineLayer() EngineLayer { return b.engineLayer }

// DebugCreator returns the object recorded as having created the layer.
func (b *layerBase) DebugCreator() any { return b.debugCreator }

// SetDebugCreator records the object that created the layer for DescribeTree.
func (b *layerBase) SetDebugCreator(creator any) { b.debugCreator = creator }

// Attach attaches the subtree rooted at this layer to owner.
// It panics when the layer has a parent; attach the root instead.
func (b *layerBase) Attach(owner any) {
	if b.parent != nil {
		panic(fmt.Sprintf("strata: %s has parent %s; attach the root instead", b.self, b.parent))
	}
	b.self.attachTo(owner)
}

// Detach detaches the subtree rooted at this layer from its owner.
// It panics when the layer has a parent; detach the root instead.
func (b *layerBase) Detach() {
	if b.parent != nil {
		panic(fmt.Sprintf("strata: %s has parent %s; detach the root instead", b.self, b.parent))
	}
	b.self.detachFrom()
}

func (b *layerBase) attachTo(owner any) {
	if owner == nil {
		panic("strata: cannot attach with a nil owner")
	}
	if b.owner != nil {
		panic(fmt.Sprintf("strata: %s is already attached", b.self))
	}
	b.owner = owner
}

func (b *layerBase) detachFrom() {
	if b.owner == nil {
		panic(fmt.Sprintf("strata: %s is not attached", b.self))
	}
	b.owner = nil
}

func (b *layerBase) alwaysNeedsAddToScene() bool { return false }

func (b *layerBase) updateSubtreeNeedsAddToScene() {
	b.subtreeNeedsAddToScene = b.needsAddToScene || b.self.alwaysNeedsAddToScene()
}

func (b *layerBase) find(Offset, *query) bool { return false }

// Remove unlinks the layer from its parent. It is a no-op without a parent.
func (b *layerBase) Remove() {
	if b.parent != nil {
		b.parent.container().removeChild(b.self)
	}
}

// ReplaceWith puts newLayer in this layer's place under the same parent.
func (b *layerBase) ReplaceWith(newLayer Layer) {
	if newLayer == nil {
		panic("strata: cannot replace with a nil layer")
	}
	parent := b.parent
	if parent == nil {
		panic(fmt.Sprintf("strata: %s has no parent to replace it in", b.self))
	}
	nb := newLayer.base()
	if nb.parent != nil || nb.nextSibling != nil || nb.prevSibling != nil || nb.owner != nil {
		panic(fmt.Sprintf("strata: replacement %s is already part of a tree", newLayer))
	}
	if rootOf(b.self) == newLayer {
		panic("strata: replacing would create a cycle")
	}
	if globalDebug {
		debugCheckDisposed(newLayer, "ReplaceWith")
	}
	c := parent.container()

	nb.nextSibling = b.nextSibling
	if b.nextSibling != nil {
		b.nextSibling.base().prevSibling = newLayer
	}
	nb.prevSibling = b.prevSibling
	if b.prevSibling != nil {
		b.prevSibling.base().nextSibling = newLayer
	}
	c.adoptChild(newLayer)
	if c.firstChild == b.self {
		c.firstChild = newLayer
	}
	if c.lastChild == b.self {
		c.lastChild = newLayer
	}
	b.nextSibling = nil
	b.prevSibling = nil
	c.dropChild(b.self)
	if globalDebug {
		debugCheckSiblingChain(c)
	}
}

// Dispose releases the retained engine layer. It panics while the layer has a parent.
func (b *layerBase) Dispose() {
	if b.parent != nil {
		panic(fmt.Sprintf("strata: cannot dispose %s while it has a parent", b.self))
	}
	releaseTree(b.self)
}

// releaseTree drops the retained engine layer handles of l and every
// descendant.
func releaseTree(l Layer) {
	b := l.base()
	if b.engineLayer != nil {
		b.engineLayer.Dispose()
		b.engineLayer = nil
	}
	b.disposed = true
	if c, ok := l.(Container); ok {
		for child := c.FirstChild(); child != nil; child = child.NextSibling() {
			releaseTree(child)
		}
	}
}

// String returns the layer's type name and ID.
func (b *layerBase) String() string {
	return fmt.Sprintf("%s#%d", layerTypeName(b.self), b.id)
}

// layerTypeName returns the concrete type name without package or pointer
// decoration, keeping generic arguments.
func layerTypeName(l Layer) string {
	t := reflect.TypeOf(l)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// parentLayer returns l's parent as a Layer, or nil.
func parentLayer(l Layer) Layer {
	if p := l.Parent(); p != nil {
		return p
	}
	return nil
}

// rootOf returns the topmost ancestor of l, or l itself.
func rootOf(l Layer) Layer {
	for p := parentLayer(l); p != nil; p = parentLayer(p) {
		l = p
	}
	return l
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node Layer) bool {
	for p := node; p != nil; p = parentLayer(p) {
		if p == candidate {
			return true
		}
	}
	return false
}

// addToSceneWithRetainedRendering re-submits l's cached engine layer when
// nothing in its subtree changed, and re-emits it otherwise.
func addToSceneWithRetainedRendering(l Layer, b SceneBuilder) {
	lb := l.base()
	if !lb.subtreeNeedsAddToScene && lb.engineLayer != nil {
		Logger().Debug("retaining layer", "layer", lb.self)
		b.AddRetained(lb.engineLayer)
		return
	}
	lb.engineLayer = l.AddToScene(b, OffsetZero)
	lb.needsAddToScene = false
}
