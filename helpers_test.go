package strata

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gogpu/gg"
)

// fakeEngineLayer is the handle fakeBuilder returns from pushes.
type fakeEngineLayer struct {
	op       string
	disposed bool
}

func (e *fakeEngineLayer) Dispose() { e.disposed = true }

type fakeScene struct{ ops []string }

func (*fakeScene) Dispose() {}

// fakeBuilder logs every call and checks push/pop balance.
type fakeBuilder struct {
	ops        []string
	depth      int
	maxDepth   int
	transforms []Matrix4
	offsets    []Offset
	retained   []EngineLayer
	pictures   []Offset
	opacities  []int
	paths      []*gg.Path
	built      bool
}

func (b *fakeBuilder) push(op string) EngineLayer {
	b.ops = append(b.ops, op)
	b.depth++
	b.maxDepth = max(b.maxDepth, b.depth)
	return &fakeEngineLayer{op: op}
}

func (b *fakeBuilder) PushOffset(dx, dy float64) EngineLayer {
	b.offsets = append(b.offsets, Offset{dx, dy})
	return b.push("pushOffset")
}

func (b *fakeBuilder) PushTransform(m Matrix4) EngineLayer {
	b.transforms = append(b.transforms, m)
	return b.push("pushTransform")
}

func (b *fakeBuilder) PushClipRect(Rect, Clip) EngineLayer { return b.push("pushClipRect") }

func (b *fakeBuilder) PushClipRRect(RRect, Clip) EngineLayer { return b.push("pushClipRRect") }

func (b *fakeBuilder) PushClipPath(p *gg.Path, _ Clip) EngineLayer {
	b.paths = append(b.paths, p)
	return b.push("pushClipPath")
}

func (b *fakeBuilder) PushOpacity(alpha int, offset Offset) EngineLayer {
	b.opacities = append(b.opacities, alpha)
	b.offsets = append(b.offsets, offset)
	return b.push("pushOpacity")
}

func (b *fakeBuilder) PushBackdropFilter(ImageFilter) EngineLayer {
	return b.push("pushBackdropFilter")
}

func (b *fakeBuilder) PushPhysicalShape(p *gg.Path, _ float64, _, _ Color, _ Clip) EngineLayer {
	b.paths = append(b.paths, p)
	return b.push("pushPhysicalShape")
}

func (b *fakeBuilder) Pop() {
	if b.depth == 0 {
		panic("fakeBuilder: pop without push")
	}
	b.ops = append(b.ops, "pop")
	b.depth--
}

func (b *fakeBuilder) AddPicture(offset Offset, _ *Picture, _, _ bool) {
	b.pictures = append(b.pictures, offset)
	b.ops = append(b.ops, "addPicture")
}

func (b *fakeBuilder) AddTexture(Texture, Offset, float64, float64, bool) {
	b.ops = append(b.ops, "addTexture")
}

func (b *fakeBuilder) AddPerformanceOverlay(int, Rect) {
	b.ops = append(b.ops, "addPerformanceOverlay")
}

func (b *fakeBuilder) AddRetained(layer EngineLayer) {
	b.retained = append(b.retained, layer)
	b.ops = append(b.ops, "addRetained")
}

func (b *fakeBuilder) Build() Scene {
	if b.depth != 0 {
		panic(fmt.Sprintf("fakeBuilder: %d unbalanced pushes", b.depth))
	}
	b.built = true
	return &fakeScene{ops: b.ops}
}

func (b *fakeBuilder) count(op string) int {
	n := 0
	for _, o := range b.ops {
		if o == op {
			n++
		}
	}
	return n
}

// build runs one frame of root into a new fakeBuilder.
func build(t *testing.T, root *OffsetLayer) *fakeBuilder {
	t.Helper()
	b := &fakeBuilder{}
	root.BuildScene(b)
	if !b.built {
		t.Fatal("BuildScene did not call Build")
	}
	return b
}

// newRoot returns an attached root offset layer.
func newRoot(t *testing.T) *OffsetLayer {
	t.Helper()
	root := NewOffsetLayer(OffsetZero)
	root.Attach(t)
	return root
}

func newPicture(r Rect) *PictureLayer {
	l := NewPictureLayer(r)
	l.SetPicture(RecordPicture(int(r.Width()), int(r.Height()), nil))
	return l
}

// expectPanic fails the test unless fn panics with a message containing
// want.
func expectPanic(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q, got none", want)
		}
		if msg := fmt.Sprint(r); !strings.Contains(msg, want) {
			t.Errorf("panic message = %q, want it to contain %q", msg, want)
		}
	}()
	fn()
}

func withDebug(t *testing.T, opts DebugOptions) {
	t.Helper()
	SetDebugMode(true)
	SetDebugOptions(opts)
	t.Cleanup(func() {
		SetDebugMode(false)
		SetDebugOptions(DebugOptions{})
	})
}
