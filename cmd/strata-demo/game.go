package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// game presents the demo in an ebiten window. Each tick advances the
// animation, rebuilds the scene and uploads the rasterized frame.
type game struct {
	demo *demo

	frame   *ebiten.Image
	pressed bool
	showFPS bool
	err     error
}

func newGame(d *demo, showFPS bool) *game {
	return &game{demo: d, showFPS: showFPS}
}

func (g *game) Update() error {
	if g.err != nil {
		return g.err
	}
	g.demo.update(float32(1.0 / float64(ebiten.TPS())))

	// Report a click on the press edge only.
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if down && !g.pressed {
		g.demo.click(ebiten.CursorPosition())
	}
	g.pressed = down

	img, err := g.demo.frame()
	if err != nil {
		g.err = fmt.Errorf("render frame %d: %w", g.demo.frames, err)
		return g.err
	}
	if g.frame != nil {
		g.frame.Deallocate()
	}
	g.frame = ebiten.NewImageFromImage(img)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.frame != nil {
		screen.DrawImage(g.frame, nil)
	}
	if g.showFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.demo.width, g.demo.height
}
