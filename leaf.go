package strata

import "fmt"

// PictureLayer draws a recorded Picture.
type PictureLayer struct {
	layerBase

	canvasBounds   Rect
	picture        *Picture
	isComplexHint  bool
	willChangeHint bool
}

// NewPictureLayer creates a picture layer whose picture paints inside
// canvasBounds.
func NewPictureLayer(canvasBounds Rect) *PictureLayer {
	l := &PictureLayer{canvasBounds: canvasBounds}
	l.init(l)
	return l
}

// CanvasBounds returns the area the picture paints into.
func (l *PictureLayer) CanvasBounds() Rect { return l.canvasBounds }

// Picture returns the current picture, or nil.
func (l *PictureLayer) Picture() *Picture { return l.picture }

// SetPicture replaces the picture. The layer is always marked dirty, even
// when the same picture is set again.
func (l *PictureLayer) SetPicture(p *Picture) {
	l.needsAddToScene = true
	l.picture = p
}

// IsComplexHint reports whether the presenter should consider caching the
// picture.
func (l *PictureLayer) IsComplexHint() bool { return l.isComplexHint }

// SetComplexHint sets the caching hint.
func (l *PictureLayer) SetComplexHint(v bool) {
	if v != l.isComplexHint {
		l.isComplexHint = v
		l.needsAddToScene = true
	}
}

// WillChangeHint reports whether the picture is expected to change next
// frame.
func (l *PictureLayer) WillChangeHint() bool { return l.willChangeHint }

// SetWillChangeHint sets the change hint.
func (l *PictureLayer) SetWillChangeHint(v bool) {
	if v != l.willChangeHint {
		l.willChangeHint = v
		l.needsAddToScene = true
	}
}

// AddToScene adds the picture at layerOffset.
func (l *PictureLayer) AddToScene(b SceneBuilder, layerOffset Offset) EngineLayer {
	b.AddPicture(layerOffset, l.picture, l.isComplexHint, l.willChangeHint)
	return nil
}

func (l *PictureLayer) debugProperties() []string {
	return []string{fmt.Sprintf("paint bounds: %s", l.canvasBounds)}
}

// TextureLayer draws an externally rendered bitmap into a rectangle.
type TextureLayer struct {
	layerBase

	rect    Rect
	texture Texture
	freeze  bool
}

// NewTextureLayer creates a texture layer. When freeze is set the presenter
// keeps showing the frame it already has instead of sampling the texture
// again.
func NewTextureLayer(rect Rect, texture Texture, freeze bool) *TextureLayer {
	if texture == nil {
		panic("strata: TextureLayer needs a texture")
	}
	l := &TextureLayer{rect: rect, texture: texture, freeze: freeze}
	l.init(l)
	return l
}

// Rect returns the area the texture covers.
func (l *TextureLayer) Rect() Rect { return l.rect }

// Texture returns the texture handle.
func (l *TextureLayer) Texture() Texture { return l.texture }

// Freeze reports whether the presenter should keep showing the current frame.
func (l *TextureLayer) Freeze() bool { return l.freeze }

// AddToScene adds the texture covering rect shifted by layerOffset.
func (l *TextureLayer) AddToScene(b SceneBuilder, layerOffset Offset) EngineLayer {
	r := l.rect.Shift(layerOffset)
	b.AddTexture(l.texture, r.TopLeft(), r.Width(), r.Height(), l.freeze)
	return nil
}

func (l *TextureLayer) debugProperties() []string {
	return []string{fmt.Sprintf("rect: %s", l.rect), fmt.Sprintf("freeze: %t", l.freeze)}
}

// Performance overlay options. Each bit enables one statistics panel.
const (
	OverlayRasterizerStatistics = 1 << iota
	OverlayVisualizeRasterizerStatistics
	OverlayEngineStatistics
	OverlayVisualizeEngineStatistics

	OverlayAll = OverlayRasterizerStatistics | OverlayVisualizeRasterizerStatistics |
		OverlayEngineStatistics | OverlayVisualizeEngineStatistics
)

// PerformanceOverlayLayer asks the presenter to draw its frame statistics.
type PerformanceOverlayLayer struct {
	layerBase

	overlayRect Rect
	optionsMask int
}

// NewPerformanceOverlayLayer creates an overlay covering overlayRect with
// the panels selected by optionsMask.
func NewPerformanceOverlayLayer(overlayRect Rect, optionsMask int) *PerformanceOverlayLayer {
	l := &PerformanceOverlayLayer{overlayRect: overlayRect, optionsMask: optionsMask}
	l.init(l)
	return l
}

// OverlayRect returns the area the statistics are drawn in.
func (l *PerformanceOverlayLayer) OverlayRect() Rect { return l.overlayRect }

// OptionsMask returns the enabled Overlay* panels.
func (l *PerformanceOverlayLayer) OptionsMask() int { return l.optionsMask }

// SetOverlayRect moves the overlay.
func (l *PerformanceOverlayLayer) SetOverlayRect(r Rect) {
	if r != l.overlayRect {
		l.overlayRect = r
		l.needsAddToScene = true
	}
}

// AddToScene adds the overlay shifted by layerOffset.
func (l *PerformanceOverlayLayer) AddToScene(b SceneBuilder, layerOffset Offset) EngineLayer {
	b.AddPerformanceOverlay(l.optionsMask, l.overlayRect.Shift(layerOffset))
	return nil
}
