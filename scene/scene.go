// Package scene provides a reference strata.SceneBuilder that records a
// frame's compositing operations as a tree of nodes.
//
// Each push opens a node and each leaf becomes a child of the innermost
// open node. Engine layers returned by pushes stay valid across frames, so
// a later frame can splice an unchanged subtree back in with AddRetained.
//
//	b := scene.NewBuilder()
//	s := root.BuildScene(b).(*scene.Scene)
//	s.Walk(func(n *scene.Node, depth int) bool {
//		fmt.Println(strings.Repeat("  ", depth), n.Kind)
//		return true
//	})
package scene

import (
	"fmt"
	"strings"

	"github.com/gogpu/gg"

	"github.com/phanxgames/strata"
)

// Kind identifies the operation a Node records.
type Kind uint8

const (
	KindRoot Kind = iota
	KindOffset
	KindTransform
	KindClipRect
	KindClipRRect
	KindClipPath
	KindOpacity
	KindBackdropFilter
	KindPhysicalShape
	KindPicture
	KindTexture
	KindPerformanceOverlay
	KindRetained
)

var kindNames = [...]string{
	KindRoot:               "root",
	KindOffset:             "offset",
	KindTransform:          "transform",
	KindClipRect:           "clipRect",
	KindClipRRect:          "clipRRect",
	KindClipPath:           "clipPath",
	KindOpacity:            "opacity",
	KindBackdropFilter:     "backdropFilter",
	KindPhysicalShape:      "physicalShape",
	KindPicture:            "picture",
	KindTexture:            "texture",
	KindPerformanceOverlay: "performanceOverlay",
	KindRetained:           "retained",
}

// String returns the node kind's name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsPush reports whether nodes of this kind are opened by a push and may
// have children.
func (k Kind) IsPush() bool {
	return k >= KindOffset && k <= KindPhysicalShape
}

// Node is one recorded operation. Only the fields relevant to Kind are set.
type Node struct {
	Kind Kind

	// Offset is the translation of an offset push, the offset of an opacity
	// push, or the position of a picture or texture.
	Offset strata.Offset
	// Transform is the matrix of a transform push.
	Transform strata.Matrix4
	// Rect is the clip rectangle, or the bounds of a texture or performance
	// overlay.
	Rect  strata.Rect
	RRect strata.RRect
	// Path is the clip path or physical shape.
	Path *gg.Path
	Clip strata.Clip

	Alpha       int
	Filter      strata.ImageFilter
	Elevation   float64
	Color       strata.Color
	ShadowColor strata.Color

	Picture        *strata.Picture
	IsComplexHint  bool
	WillChangeHint bool

	Texture     strata.Texture
	Freeze      bool
	OptionsMask int

	// Retained is the engine layer re-submitted by AddRetained.
	Retained *EngineLayer

	Children []*Node
}

// Resolve returns the node a retained node stands for, following chains of
// retained nodes. Other nodes resolve to themselves.
func (n *Node) Resolve() *Node {
	for n.Kind == KindRetained && n.Retained != nil {
		n = n.Retained.node
	}
	return n
}

// String describes the node and its parameters on one line.
func (n *Node) String() string {
	switch n.Kind {
	case KindOffset:
		return fmt.Sprintf("offset(%g, %g)", n.Offset.DX, n.Offset.DY)
	case KindTransform:
		return fmt.Sprintf("transform%s", n.Transform)
	case KindClipRect:
		return fmt.Sprintf("clipRect(%s, %s)", n.Rect, n.Clip)
	case KindClipRRect:
		return fmt.Sprintf("clipRRect(%s r=%g, %s)", n.RRect.Rect, n.RRect.Radius, n.Clip)
	case KindOpacity:
		return fmt.Sprintf("opacity(%d, %s)", n.Alpha, n.Offset)
	case KindBackdropFilter:
		return fmt.Sprintf("backdropFilter(blur %g, %g)", n.Filter.SigmaX, n.Filter.SigmaY)
	case KindPhysicalShape:
		return fmt.Sprintf("physicalShape(elevation %g, %s)", n.Elevation, n.Clip)
	case KindPicture:
		return fmt.Sprintf("picture(%s)", n.Offset)
	case KindTexture:
		return fmt.Sprintf("texture(%s)", n.Rect)
	case KindPerformanceOverlay:
		return fmt.Sprintf("performanceOverlay(%d, %s)", n.OptionsMask, n.Rect)
	default:
		return n.Kind.String()
	}
}

// EngineLayer is the handle returned by the builder's push methods. It
// refers to the pushed node and can be re-submitted in later frames until
// it is disposed.
type EngineLayer struct {
	node     *Node
	disposed bool
}

// Node returns the pushed node.
func (e *EngineLayer) Node() *Node { return e.node }

// Disposed reports whether Dispose was called.
func (e *EngineLayer) Disposed() bool { return e.disposed }

// Dispose releases the handle. Scenes built earlier keep their nodes.
func (e *EngineLayer) Dispose() { e.disposed = true }

// Stats counts the operations a builder received.
type Stats struct {
	Pushes   int
	Pops     int
	Pictures int
	Textures int
	Overlays int
	Retained int
	MaxDepth int
}

// Scene is a built frame: a tree of nodes rooted at a KindRoot node.
type Scene struct {
	root     *Node
	stats    Stats
	disposed bool
}

// Root returns the root node.
func (s *Scene) Root() *Node { return s.root }

// Stats returns the operation counts of the build that produced s.
func (s *Scene) Stats() Stats { return s.stats }

// Disposed reports whether Dispose was called.
func (s *Scene) Disposed() bool { return s.disposed }

// Dispose marks the scene as no longer presented.
func (s *Scene) Dispose() { s.disposed = true }

// Walk visits every node in paint order, pre-order, with retained nodes
// replaced by the subtree they stand for. Returning false from visit skips
// the node's children.
func (s *Scene) Walk(visit func(n *Node, depth int) bool) {
	walk(s.root, 0, visit)
}

func walk(n *Node, depth int, visit func(*Node, int) bool) {
	n = n.Resolve()
	if !visit(n, depth) {
		return
	}
	for _, child := range n.Children {
		walk(child, depth+1, visit)
	}
}

// Count returns the number of nodes of kind k reachable by Walk.
func (s *Scene) Count(k Kind) int {
	n := 0
	s.Walk(func(node *Node, _ int) bool {
		if node.Kind == k {
			n++
		}
		return true
	})
	return n
}

// String renders the expanded scene tree, one node per line.
func (s *Scene) String() string {
	var sb strings.Builder
	s.Walk(func(n *Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(n.String())
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}
