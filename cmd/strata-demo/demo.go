package main

import (
	"image"
	"log/slog"

	"github.com/gogpu/gg/recording"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/strata"
	"github.com/phanxgames/strata/raster"
	"github.com/phanxgames/strata/scene"
)

var (
	backgroundColor = strata.Color{R: 0.1, G: 0.1, B: 0.15, A: 1}
	cardColor       = strata.Color{R: 0.92, G: 0.92, B: 0.95, A: 1}
	accentColor     = strata.Color{R: 0.95, G: 0.55, B: 0.2, A: 1}
	shadowColor     = strata.Color{A: 0.45}
)

// moverPath is the sequence of positions the anchor travels between.
var moverPath = []strata.Offset{
	{DX: 80, DY: 300},
	{DX: 420, DY: 280},
	{DX: 460, DY: 80},
	{DX: 140, DY: 120},
}

// demo owns the layer tree and the animation that drives it.
type demo struct {
	width, height int

	root   *strata.OffsetLayer
	mover  *strata.OffsetLayer
	leader *strata.LeaderLayer

	tween   *strata.TweenGroup
	nextHop int

	last    *scene.Scene
	lastOps []string
	frames  int
}

func newDemo(width, height int) *demo {
	d := &demo{width: width, height: height}
	d.root = strata.NewOffsetLayer(strata.OffsetZero)
	d.root.Attach(d)

	bg := strata.NewPictureLayer(strata.RectFromLTWH(0, 0, float64(width), float64(height)))
	bg.SetPicture(strata.RecordPicture(width, height, func(r *recording.Recorder) {
		r.SetFillRGBA(backgroundColor.R, backgroundColor.G, backgroundColor.B, backgroundColor.A)
		r.DrawRectangle(0, 0, float64(width), float64(height))
		r.Fill()
	}))
	d.root.Append(bg)

	stage := strata.NewClipRRectLayer(strata.RRect{
		Rect:   strata.RectFromLTWH(16, 16, float64(width-32), float64(height-32)),
		Radius: 12,
	}, strata.ClipAntiAlias)
	d.root.Append(stage)

	stage.Append(newCard("card-a", strata.RectFromLTWH(48, 48, 240, 160), 2))
	stage.Append(newCard("card-b", strata.RectFromLTWH(220, 150, 240, 160), 8))

	link := strata.NewLayerLink()
	d.mover = strata.NewOffsetLayer(moverPath[0])
	d.leader = strata.NewLeaderLayer(link, strata.OffsetZero)
	anchor := strata.NewAnnotatedRegionLayer("anchor", &strata.Size{Width: 16, Height: 16}, strata.Offset{DX: -8, DY: -8})
	anchorOffset := strata.NewOffsetLayer(strata.Offset{DX: -8, DY: -8})
	anchorOffset.Append(dotPicture(16, accentColor))
	anchor.Append(anchorOffset)
	d.leader.Append(anchor)
	d.mover.Append(d.leader)
	stage.Append(d.mover)

	// The tooltip lives in a different branch and tracks the anchor.
	follower := strata.NewFollowerLayer(link, false, strata.OffsetZero, strata.Offset{DX: 14, DY: -36})
	fade := strata.NewOpacityLayer(220, strata.OffsetZero)
	tip := strata.NewAnnotatedRegionLayer("tooltip", &strata.Size{Width: 120, Height: 28}, strata.OffsetZero)
	tip.Append(boxPicture(120, 28, cardColor))
	fade.Append(tip)
	follower.Append(fade)
	d.root.Append(follower)

	d.root.Append(strata.NewPerformanceOverlayLayer(
		strata.RectFromLTWH(float64(width-96), float64(height-48), 80, 32),
		strata.OverlayEngineStatistics|strata.OverlayRasterizerStatistics))

	d.startHop()
	return d
}

func newCard(name string, r strata.Rect, elevation float64) *strata.PhysicalModelLayer {
	card := strata.NewPhysicalModelLayer(strata.RRectPath(strata.RRect{Rect: r, Radius: 8}),
		strata.ClipAntiAlias, elevation, cardColor, shadowColor)
	region := strata.NewAnnotatedRegionLayer(name, nil, strata.OffsetZero)
	content := strata.NewOffsetLayer(r.TopLeft().Add(strata.Offset{DX: 16, DY: 16}))
	content.Append(boxPicture(r.Width()-32, 24, accentColor))
	region.Append(content)
	card.Append(region)
	return card
}

func boxPicture(w, h float64, c strata.Color) *strata.PictureLayer {
	l := strata.NewPictureLayer(strata.RectFromLTWH(0, 0, w, h))
	l.SetPicture(strata.RecordPicture(int(w), int(h), func(r *recording.Recorder) {
		r.SetFillRGBA(c.R, c.G, c.B, c.A)
		r.DrawRoundedRectangle(0, 0, w, h, 4)
		r.Fill()
	}))
	return l
}

func dotPicture(size float64, c strata.Color) *strata.PictureLayer {
	l := strata.NewPictureLayer(strata.RectFromLTWH(0, 0, size, size))
	l.SetPicture(strata.RecordPicture(int(size), int(size), func(r *recording.Recorder) {
		r.SetFillRGBA(c.R, c.G, c.B, c.A)
		r.DrawCircle(size/2, size/2, size/2)
		r.Fill()
	}))
	return l
}

func (d *demo) startHop() {
	d.nextHop = (d.nextHop + 1) % len(moverPath)
	d.tween = strata.TweenOffset(d.mover, moverPath[d.nextHop], 1.5, ease.InOutCubic)
}

// update advances the animation by dt seconds.
func (d *demo) update(dt float32) {
	d.tween.Update(dt)
	if d.tween.Done {
		d.startHop()
	}
}

// frame builds the current scene and rasterizes it.
func (d *demo) frame() (image.Image, error) {
	b := scene.NewBuilder()
	s := d.root.BuildScene(b).(*scene.Scene)
	if d.last != nil {
		d.last.Dispose()
	}
	d.last = s
	d.lastOps = b.Ops()
	d.frames++

	stats := s.Stats()
	slog.Debug("scene built", "frame", d.frames, "pushes", stats.Pushes,
		"pictures", stats.Pictures, "retained", stats.Retained)
	return raster.Rasterize(s, d.width, d.height, raster.WithBackground(strata.ColorBlack))
}

// click reports the annotation under (x, y), if any.
func (d *demo) click(x, y int) (string, bool) {
	name, ok := strata.Find[string](d.root, strata.Offset{DX: float64(x), DY: float64(y)})
	if ok {
		slog.Info("hit", "x", x, "y", y, "annotation", name)
	} else {
		slog.Info("miss", "x", x, "y", y)
	}
	return name, ok
}

// describe returns the layer tree dump.
func (d *demo) describe() string {
	return strata.DescribeTree(d.root)
}
