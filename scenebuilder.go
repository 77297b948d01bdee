package strata

import "github.com/gogpu/gg"

// EngineLayer is an opaque handle to the presentation-side representation
// of a pushed layer. A layer keeps the handle from its last scene build and
// passes it back through SceneBuilder.AddRetained when its subtree has not
// changed.
type EngineLayer interface {
	Dispose()
}

// Scene is the presentation-ready result of one SceneBuilder.Build call.
type Scene interface {
	Dispose()
}

// SceneBuilder receives one frame's compositing operations in paint order.
// Every Push call is matched by exactly one Pop; leaves (pictures, textures,
// overlays, retained layers) are added to the innermost open push.
type SceneBuilder interface {
	PushOffset(dx, dy float64) EngineLayer
	PushTransform(m Matrix4) EngineLayer
	PushClipRect(r Rect, clip Clip) EngineLayer
	PushClipRRect(rr RRect, clip Clip) EngineLayer
	PushClipPath(p *gg.Path, clip Clip) EngineLayer
	PushOpacity(alpha int, offset Offset) EngineLayer
	PushBackdropFilter(filter ImageFilter) EngineLayer
	PushPhysicalShape(p *gg.Path, elevation float64, color, shadowColor Color, clip Clip) EngineLayer
	Pop()

	AddPicture(offset Offset, picture *Picture, isComplexHint, willChangeHint bool)
	AddTexture(texture Texture, offset Offset, width, height float64, freeze bool)
	AddPerformanceOverlay(optionsMask int, bounds Rect)
	AddRetained(layer EngineLayer)

	Build() Scene
}
