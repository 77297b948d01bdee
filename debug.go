package strata

import (
	"fmt"
	"strings"
)

// globalDebug gates the checks that are too expensive for release frames:
// sibling-chain verification, disposed-layer checks, tree-size warnings and
// the elevation pass. Layers have no handle to a scene, so the flag is
// process-wide.
var globalDebug bool

// DebugOptions toggles individual diagnostics. They only take effect while
// debug mode is on.
type DebugOptions struct {
	// CheckElevations runs the elevation-ordering pass before each
	// OffsetLayer.BuildScene.
	CheckElevations bool
	// DisableClipLayers makes clip layers emit their children without
	// pushing a clip.
	DisableClipLayers bool
	// DisableOpacityLayers makes opacity layers emit their children without
	// pushing an opacity.
	DisableOpacityLayers bool
	// DisablePhysicalShapeLayers makes physical model layers emit their
	// children without pushing a shape.
	DisablePhysicalShapeLayers bool
}

var debugOptions DebugOptions

// SetDebugMode enables or disables debug mode. When enabled, sibling chains
// are verified after every structural edit, disposed layers panic when
// reused, tree depth and child count warnings are logged, and the
// DebugOptions take effect.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// DebugMode reports whether debug mode is on.
func DebugMode() bool {
	return globalDebug
}

// SetDebugOptions replaces the current debug options.
func SetDebugOptions(opts DebugOptions) {
	debugOptions = opts
}

// CurrentDebugOptions returns the current debug options.
func CurrentDebugOptions() DebugOptions {
	return debugOptions
}

// debugEnabled reports whether a debug option is in force.
func debugEnabled(opt bool) bool {
	return globalDebug && opt
}

// debugCheckDisposed panics when a disposed layer is used in a tree edit.
func debugCheckDisposed(l Layer, op string) {
	if l.base().disposed {
		panic(fmt.Sprintf("strata debug: %s on disposed layer %s", op, l))
	}
}

// debugCheckTreeDepth warns if the tree is deeper than the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(l Layer) {
	depth := 0
	for p := Layer(l); p != nil; p = parentLayer(p) {
		depth++
	}
	if depth > debugMaxTreeDepth {
		Logger().Warn("tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth, "layer", l.String())
	}
}

// debugCheckChildCount warns if a container has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(c *ContainerLayer) {
	if c.childCount > debugMaxChildCount {
		Logger().Warn("container child count exceeds threshold",
			"layer", c.self.String(), "children", c.childCount, "threshold", debugMaxChildCount)
	}
}

// debugCheckSiblingChain walks the child list in both directions and panics
// if the links, the cached count or the attachment state disagree.
func debugCheckSiblingChain(c *ContainerLayer) {
	n := 0
	var prev Layer
	for child := c.firstChild; child != nil; child = child.NextSibling() {
		if child.PreviousSibling() != prev {
			panic(fmt.Sprintf("strata debug: %s has a broken previous link", child))
		}
		if child.Attached() != c.Attached() {
			panic(fmt.Sprintf("strata debug: %s attachment differs from its parent", child))
		}
		prev = child
		n++
		if n > c.childCount {
			panic(fmt.Sprintf("strata debug: sibling chain of %s does not terminate", c.self))
		}
	}
	if prev != c.lastChild || n != c.childCount {
		panic(fmt.Sprintf("strata debug: sibling chain of %s does not end at its last child", c.self))
	}
}

// describer is implemented by layers that contribute properties to
// DescribeTree.
type describer interface {
	debugProperties() []string
}

// DescribeTree returns an indented, multi-line description of the subtree
// rooted at root.
func DescribeTree(root Layer) string {
	var sb strings.Builder
	describeLayer(&sb, root, "", "")
	return sb.String()
}

func describeLayer(sb *strings.Builder, l Layer, prefix, label string) {
	sb.WriteString(prefix)
	sb.WriteString(label)
	sb.WriteString(l.String())
	if !l.Attached() {
		sb.WriteString(" DETACHED")
	}
	sb.WriteByte('\n')
	if d, ok := l.(describer); ok {
		for _, prop := range d.debugProperties() {
			sb.WriteString(prefix)
			sb.WriteString("  ")
			sb.WriteString(prop)
			sb.WriteByte('\n')
		}
	}
	if creator := l.DebugCreator(); creator != nil {
		fmt.Fprintf(sb, "%s  creator: %v\n", prefix, creator)
	}
	c, ok := l.(Container)
	if !ok {
		return
	}
	i := 1
	for child := c.FirstChild(); child != nil; child = child.NextSibling() {
		describeLayer(sb, child, prefix+"  ", fmt.Sprintf("child %d: ", i))
		i++
	}
}
