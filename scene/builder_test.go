package scene_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/strata"
	"github.com/phanxgames/strata/scene"
)

func buildTwice(t *testing.T, root *strata.OffsetLayer) (*scene.Scene, *scene.Scene, *scene.Builder) {
	t.Helper()
	first := root.BuildScene(scene.NewBuilder()).(*scene.Scene)
	b := scene.NewBuilder()
	second := root.BuildScene(b).(*scene.Scene)
	return first, second, b
}

func TestBuilderNestsLeavesInsidePushes(t *testing.T) {
	b := scene.NewBuilder()
	b.PushOffset(10, 20)
	b.PushClipRect(strata.RectFromLTWH(0, 0, 50, 50), strata.ClipHardEdge)
	b.AddPicture(strata.Offset{DX: 1, DY: 2}, strata.RecordPicture(4, 4, nil), false, false)
	b.Pop()
	b.AddPerformanceOverlay(strata.OverlayAll, strata.RectFromLTWH(0, 0, 10, 10))
	b.Pop()
	require.Equal(t, 0, b.Depth())

	s := b.Build().(*scene.Scene)
	root := s.Root()
	require.Len(t, root.Children, 1)
	offset := root.Children[0]
	assert.Equal(t, scene.KindOffset, offset.Kind)
	assert.Equal(t, strata.Offset{DX: 10, DY: 20}, offset.Offset)
	require.Len(t, offset.Children, 2)
	assert.Equal(t, scene.KindClipRect, offset.Children[0].Kind)
	assert.Equal(t, scene.KindPerformanceOverlay, offset.Children[1].Kind)
	require.Len(t, offset.Children[0].Children, 1)
	assert.Equal(t, scene.KindPicture, offset.Children[0].Children[0].Kind)

	assert.Equal(t, []string{
		"pushOffset", "pushClipRect", "addPicture", "pop", "addPerformanceOverlay", "pop",
	}, b.Ops())

	stats := s.Stats()
	assert.Equal(t, 2, stats.Pushes)
	assert.Equal(t, 2, stats.Pops)
	assert.Equal(t, 1, stats.Pictures)
	assert.Equal(t, 1, stats.Overlays)
	assert.Equal(t, 2, stats.MaxDepth)
}

func TestBuilderPopWithoutPushPanics(t *testing.T) {
	b := scene.NewBuilder()
	assert.Panics(t, func() { b.Pop() })
}

func TestBuilderUnbalancedBuildPanics(t *testing.T) {
	b := scene.NewBuilder()
	b.PushOpacity(128, strata.OffsetZero)
	assert.PanicsWithValue(t, "scene: build with 1 unbalanced push(es)", func() { b.Build() })
}

func TestBuilderUseAfterBuildPanics(t *testing.T) {
	b := scene.NewBuilder()
	b.Build()
	assert.Panics(t, func() { b.PushOffset(0, 0) })
}

type foreignLayer struct{}

func (foreignLayer) Dispose() {}

func TestBuilderRejectsForeignRetained(t *testing.T) {
	b := scene.NewBuilder()
	assert.Panics(t, func() { b.AddRetained(foreignLayer{}) })
}

func TestBuilderRejectsDisposedRetained(t *testing.T) {
	b := scene.NewBuilder()
	el := b.PushOffset(0, 0)
	b.Pop()
	el.Dispose()

	next := scene.NewBuilder()
	assert.Panics(t, func() { next.AddRetained(el) })
}

func TestSceneWalkExpandsRetained(t *testing.T) {
	root := strata.NewOffsetLayer(strata.OffsetZero)
	root.Attach(t)
	clip := strata.NewClipRectLayer(strata.RectFromLTWH(0, 0, 100, 100), strata.ClipHardEdge)
	pic := strata.NewPictureLayer(strata.RectFromLTWH(0, 0, 100, 100))
	pic.SetPicture(strata.RecordPicture(100, 100, nil))
	clip.Append(pic)
	root.Append(clip)

	first, second, b := buildTwice(t, root)

	assert.Equal(t, []string{"pushOffset", "addRetained", "pop"}, b.Ops())
	assert.Equal(t, 1, second.Stats().Retained)
	assert.Equal(t, 0, second.Stats().Pictures)

	// The expanded trees are identical.
	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, 1, second.Count(scene.KindPicture))
	assert.Equal(t, 0, second.Count(scene.KindRetained))
}

func TestSceneStringIndentsByDepth(t *testing.T) {
	b := scene.NewBuilder()
	b.PushTransform(strata.Translation4(5, 5, 0))
	b.AddTexture(nil, strata.Offset{DX: 1, DY: 1}, 10, 10, false)
	b.Pop()
	s := b.Build().(*scene.Scene)

	lines := strings.Split(strings.TrimSpace(s.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "root", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  transform"))
	assert.True(t, strings.HasPrefix(lines[2], "    texture("))
}

func TestWalkSkipsChildren(t *testing.T) {
	b := scene.NewBuilder()
	b.PushOffset(1, 1)
	b.AddPicture(strata.OffsetZero, strata.RecordPicture(1, 1, nil), false, false)
	b.Pop()
	s := b.Build().(*scene.Scene)

	var kinds []scene.Kind
	s.Walk(func(n *scene.Node, _ int) bool {
		kinds = append(kinds, n.Kind)
		return n.Kind != scene.KindOffset
	})
	assert.Equal(t, []scene.Kind{scene.KindRoot, scene.KindOffset}, kinds)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "physicalShape", scene.KindPhysicalShape.String())
	assert.Equal(t, "Kind(99)", scene.Kind(99).String())
	assert.True(t, scene.KindClipPath.IsPush())
	assert.False(t, scene.KindPicture.IsPush())
}
