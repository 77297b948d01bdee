package strata

import (
	"fmt"
	"iter"
)

// Container is a layer that owns an ordered list of children. Every
// container type in this package embeds ContainerLayer.
type Container interface {
	Layer

	FirstChild() Layer
	LastChild() Layer
	ChildCount() int
	Children() iter.Seq[Layer]
	DepthFirstIterateChildren() iter.Seq[Layer]

	// Append adds child as the last child.
	Append(child Layer)
	// RemoveAllChildren detaches every child at once.
	RemoveAllChildren()
	// AddChildrenToScene emits every child in paint order.
	AddChildrenToScene(b SceneBuilder, childOffset Offset)
	// ApplyTransform post-multiplies m by the transform this container
	// applies to child when painting it.
	ApplyTransform(child Layer, m *Matrix4)

	container() *ContainerLayer
}

// ContainerLayer is a layer with children and no effect of its own. Its
// children form a doubly linked list through their sibling pointers.
type ContainerLayer struct {
	layerBase

	firstChild Layer
	lastChild  Layer
	childCount int
}

// NewContainerLayer creates an empty, detached container.
func NewContainerLayer() *ContainerLayer {
	c := &ContainerLayer{}
	c.init(c)
	return c
}

func (c *ContainerLayer) container() *ContainerLayer { return c }

// asContainer returns the outermost layer embedding c.
func (c *ContainerLayer) asContainer() Container {
	return c.self.(Container)
}

// FirstChild returns the first child in paint order, or nil.
func (c *ContainerLayer) FirstChild() Layer { return c.firstChild }

// LastChild returns the last child in paint order, or nil.
func (c *ContainerLayer) LastChild() Layer { return c.lastChild }

// ChildCount returns the number of children.
func (c *ContainerLayer) ChildCount() int { return c.childCount }

// Children yields the direct children in paint order. The sequence must not
// be used while the child list is being edited.
func (c *ContainerLayer) Children() iter.Seq[Layer] {
	return func(yield func(Layer) bool) {
		for child := c.firstChild; child != nil; child = child.NextSibling() {
			if !yield(child) {
				return
			}
		}
	}
}

// DepthFirstIterateChildren yields every descendant in pre-order: each child
// before its own children, siblings left to right. The walk is recomputed
// each time the sequence is ranged over.
func (c *ContainerLayer) DepthFirstIterateChildren() iter.Seq[Layer] {
	return func(yield func(Layer) bool) {
		walkDescendants(c, yield)
	}
}

func walkDescendants(c *ContainerLayer, yield func(Layer) bool) bool {
	for child := c.firstChild; child != nil; child = child.NextSibling() {
		if !yield(child) {
			return false
		}
		if cc, ok := child.(Container); ok {
			if !walkDescendants(cc.container(), yield) {
				return false
			}
		}
	}
	return true
}

// Append adds child after the current last child. child must be free: no
// parent, no siblings, not attached, and not an ancestor of c. If c is
// attached, child's subtree is attached with the same owner.
func (c *ContainerLayer) Append(child Layer) {
	if child == nil {
		panic("strata: cannot append nil layer")
	}
	if globalDebug {
		debugCheckDisposed(c.self, "Append (parent)")
		debugCheckDisposed(child, "Append (child)")
	}
	cb := child.base()
	if cb.parent != nil {
		panic(fmt.Sprintf("strata: %s already has parent %s", child, cb.parent))
	}
	if cb.owner != nil {
		panic(fmt.Sprintf("strata: %s is attached and cannot be appended", child))
	}
	if cb.nextSibling != nil || cb.prevSibling != nil {
		panic(fmt.Sprintf("strata: %s still has siblings", child))
	}
	if isAncestor(child, c.self) {
		panic("strata: appending would create a cycle")
	}

	c.adoptChild(child)
	cb.prevSibling = c.lastChild
	if c.lastChild != nil {
		c.lastChild.base().nextSibling = child
	}
	c.lastChild = child
	if c.firstChild == nil {
		c.firstChild = child
	}

	if globalDebug {
		debugCheckSiblingChain(c)
		debugCheckTreeDepth(child)
		debugCheckChildCount(c)
	}
}

// adoptChild sets c as child's parent and propagates attachment. Sibling
// links are the caller's responsibility.
func (c *ContainerLayer) adoptChild(child Layer) {
	c.needsAddToScene = true
	child.base().parent = c.asContainer()
	c.childCount++
	if c.owner != nil {
		child.attachTo(c.owner)
	}
}

// dropChild clears child's parent and detaches it. Sibling links must
// already be cleared.
func (c *ContainerLayer) dropChild(child Layer) {
	c.needsAddToScene = true
	child.base().parent = nil
	c.childCount--
	if c.owner != nil {
		child.detachFrom()
	}
}

func (c *ContainerLayer) removeChild(child Layer) {
	cb := child.base()
	if cb.parent == nil || cb.parent.container() != c {
		panic(fmt.Sprintf("strata: %s is not a child of %s", child, c.self))
	}
	if globalDebug {
		debugCheckSiblingChain(c)
	}

	if cb.prevSibling == nil {
		c.firstChild = cb.nextSibling
	} else {
		cb.prevSibling.base().nextSibling = cb.nextSibling
	}
	if cb.nextSibling == nil {
		c.lastChild = cb.prevSibling
	} else {
		cb.nextSibling.base().prevSibling = cb.prevSibling
	}
	cb.nextSibling = nil
	cb.prevSibling = nil
	c.dropChild(child)

	if globalDebug {
		debugCheckSiblingChain(c)
	}
}

// RemoveAllChildren detaches every child and empties the list.
func (c *ContainerLayer) RemoveAllChildren() {
	child := c.firstChild
	for child != nil {
		cb := child.base()
		next := cb.nextSibling
		cb.prevSibling = nil
		cb.nextSibling = nil
		c.dropChild(child)
		child = next
	}
	c.firstChild = nil
	c.lastChild = nil
}

func (c *ContainerLayer) attachTo(owner any) {
	c.layerBase.attachTo(owner)
	for child := c.firstChild; child != nil; child = child.NextSibling() {
		child.attachTo(owner)
	}
}

func (c *ContainerLayer) detachFrom() {
	c.layerBase.detachFrom()
	for child := c.firstChild; child != nil; child = child.NextSibling() {
		child.detachFrom()
	}
}

func (c *ContainerLayer) updateSubtreeNeedsAddToScene() {
	c.layerBase.updateSubtreeNeedsAddToScene()
	for child := c.firstChild; child != nil; child = child.NextSibling() {
		child.updateSubtreeNeedsAddToScene()
		if child.SubtreeNeedsAddToScene() {
			c.subtreeNeedsAddToScene = true
		}
	}
}

// AddToScene emits the children shifted by layerOffset.
func (c *ContainerLayer) AddToScene(b SceneBuilder, layerOffset Offset) EngineLayer {
	c.AddChildrenToScene(b, layerOffset)
	return nil
}

// AddChildrenToScene emits every child in order. With a zero childOffset
// each child goes through retained rendering; otherwise the offset is
// folded into every child and nothing is retained.
func (c *ContainerLayer) AddChildrenToScene(b SceneBuilder, childOffset Offset) {
	for child := c.firstChild; child != nil; child = child.NextSibling() {
		if childOffset.IsZero() {
			addToSceneWithRetainedRendering(child, b)
		} else {
			child.AddToScene(b, childOffset)
		}
	}
}

// ApplyTransform leaves m unchanged; a plain container paints children in
// its own coordinate space. child may be nil when the caller wants the
// transform applied to all children.
func (c *ContainerLayer) ApplyTransform(child Layer, m *Matrix4) {}

// find asks the children topmost first.
func (c *ContainerLayer) find(p Offset, q *query) bool {
	for child := c.lastChild; child != nil; child = child.PreviousSibling() {
		if child.find(p, q) {
			return true
		}
	}
	return false
}
