package scene

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/phanxgames/strata"
)

// Builder records compositing operations into a Scene. It implements
// strata.SceneBuilder. A Builder is single-use: after Build it must not be
// used again.
type Builder struct {
	root  *Node
	stack []*Node
	ops   []string
	stats Stats
	built bool
}

var _ strata.SceneBuilder = (*Builder)(nil)

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	root := &Node{Kind: KindRoot}
	return &Builder{root: root, stack: []*Node{root}}
}

// Depth returns the number of pushes not yet popped.
func (b *Builder) Depth() int { return len(b.stack) - 1 }

// Ops returns the names of the operations received so far, in order.
func (b *Builder) Ops() []string { return b.ops }

// Stats returns the operation counts so far.
func (b *Builder) Stats() Stats { return b.stats }

func (b *Builder) checkOpen(op string) {
	if b.built {
		panic(fmt.Sprintf("scene: %s after Build", op))
	}
}

func (b *Builder) top() *Node { return b.stack[len(b.stack)-1] }

func (b *Builder) push(op string, n *Node) strata.EngineLayer {
	b.checkOpen(op)
	b.ops = append(b.ops, op)
	parent := b.top()
	parent.Children = append(parent.Children, n)
	b.stack = append(b.stack, n)
	b.stats.Pushes++
	b.stats.MaxDepth = max(b.stats.MaxDepth, b.Depth())
	return &EngineLayer{node: n}
}

func (b *Builder) add(op string, n *Node) {
	b.checkOpen(op)
	b.ops = append(b.ops, op)
	parent := b.top()
	parent.Children = append(parent.Children, n)
}

// PushOffset opens a node translating its children by (dx, dy).
func (b *Builder) PushOffset(dx, dy float64) strata.EngineLayer {
	return b.push("pushOffset", &Node{Kind: KindOffset, Offset: strata.Offset{DX: dx, DY: dy}})
}

// PushTransform opens a node transforming its children by m.
func (b *Builder) PushTransform(m strata.Matrix4) strata.EngineLayer {
	return b.push("pushTransform", &Node{Kind: KindTransform, Transform: m})
}

// PushClipRect opens a node clipping its children to r.
func (b *Builder) PushClipRect(r strata.Rect, clip strata.Clip) strata.EngineLayer {
	return b.push("pushClipRect", &Node{Kind: KindClipRect, Rect: r, Clip: clip})
}

// PushClipRRect opens a node clipping its children to rr.
func (b *Builder) PushClipRRect(rr strata.RRect, clip strata.Clip) strata.EngineLayer {
	return b.push("pushClipRRect", &Node{Kind: KindClipRRect, RRect: rr, Clip: clip})
}

// PushClipPath opens a node clipping its children to p.
func (b *Builder) PushClipPath(p *gg.Path, clip strata.Clip) strata.EngineLayer {
	return b.push("pushClipPath", &Node{Kind: KindClipPath, Path: p, Clip: clip})
}

// PushOpacity opens a node blending its children at alpha.
func (b *Builder) PushOpacity(alpha int, offset strata.Offset) strata.EngineLayer {
	return b.push("pushOpacity", &Node{Kind: KindOpacity, Alpha: alpha, Offset: offset})
}

// PushBackdropFilter opens a node filtering what was painted behind it.
func (b *Builder) PushBackdropFilter(filter strata.ImageFilter) strata.EngineLayer {
	return b.push("pushBackdropFilter", &Node{Kind: KindBackdropFilter, Filter: filter})
}

// PushPhysicalShape opens a node that fills p and casts a shadow at elevation.
func (b *Builder) PushPhysicalShape(p *gg.Path, elevation float64, color, shadowColor strata.Color, clip strata.Clip) strata.EngineLayer {
	return b.push("pushPhysicalShape", &Node{
		Kind:        KindPhysicalShape,
		Path:        p,
		Elevation:   elevation,
		Color:       color,
		ShadowColor: shadowColor,
		Clip:        clip,
	})
}

// Pop closes the innermost push. It panics when nothing is open.
func (b *Builder) Pop() {
	b.checkOpen("pop")
	if b.Depth() == 0 {
		panic("scene: pop without a matching push")
	}
	b.ops = append(b.ops, "pop")
	b.stack = b.stack[:len(b.stack)-1]
	b.stats.Pops++
}

// AddPicture records a picture leaf at offset.
func (b *Builder) AddPicture(offset strata.Offset, picture *strata.Picture, isComplexHint, willChangeHint bool) {
	b.add("addPicture", &Node{
		Kind:           KindPicture,
		Offset:         offset,
		Picture:        picture,
		IsComplexHint:  isComplexHint,
		WillChangeHint: willChangeHint,
	})
	b.stats.Pictures++
}

// AddTexture records a texture leaf covering width x height at offset.
func (b *Builder) AddTexture(texture strata.Texture, offset strata.Offset, width, height float64, freeze bool) {
	b.add("addTexture", &Node{
		Kind:    KindTexture,
		Texture: texture,
		Offset:  offset,
		Rect:    strata.RectFromLTWH(offset.DX, offset.DY, width, height),
		Freeze:  freeze,
	})
	b.stats.Textures++
}

// AddPerformanceOverlay records a statistics overlay inside bounds.
func (b *Builder) AddPerformanceOverlay(optionsMask int, bounds strata.Rect) {
	b.add("addPerformanceOverlay", &Node{Kind: KindPerformanceOverlay, OptionsMask: optionsMask, Rect: bounds})
	b.stats.Overlays++
}

// AddRetained splices the subtree recorded for layer in an earlier build.
// It panics when layer was not produced by this package or was disposed.
func (b *Builder) AddRetained(layer strata.EngineLayer) {
	el, ok := layer.(*EngineLayer)
	if !ok || el == nil {
		panic(fmt.Sprintf("scene: cannot retain foreign engine layer %T", layer))
	}
	if el.disposed {
		panic("scene: cannot retain a disposed engine layer")
	}
	b.add("addRetained", &Node{Kind: KindRetained, Retained: el})
	b.stats.Retained++
}

// Build finishes the scene. It panics when a push was not popped.
func (b *Builder) Build() strata.Scene {
	b.checkOpen("build")
	if d := b.Depth(); d != 0 {
		panic(fmt.Sprintf("scene: build with %d unbalanced push(es)", d))
	}
	b.built = true
	return &Scene{root: b.root, stats: b.stats}
}
