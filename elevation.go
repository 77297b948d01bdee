package strata

import (
	"fmt"

	"github.com/gogpu/gg"
)

// conflictHighlightColor outlines layers involved in an elevation conflict.
var conflictHighlightColor = Color{R: float64(0xAA) / 255, A: 1}

// highlightConflictingLayer appends an outline of layer's clip path to
// layer. The overlay is tagged with layer as its creator.
func highlightConflictingLayer(layer *PhysicalModelLayer) *PictureLayer {
	overlay := NewPictureLayer(pathBounds(layer.clipPath))
	overlay.SetPicture(outlinePicture(layer.clipPath, conflictHighlightColor, layer.elevation+10))
	overlay.SetDebugCreator(layer)
	layer.Append(overlay)
	return overlay
}

// processConflictingPhysicalLayers reports that layer was painted after
// predecessor although predecessor sits higher, and outlines both.
func processConflictingPhysicalLayers(predecessor, layer *PhysicalModelLayer, predElevation, elevation float64) []*PictureLayer {
	ReportError(ErrorDetails{
		Err: &ElevationConflictError{
			Predecessor:          predecessor,
			Layer:                layer,
			PredecessorElevation: predElevation,
			LayerElevation:       elevation,
		},
		Context: "during compositing",
		Information: []string{
			"Attempted to composite layer",
			layer.String(),
			"after layer",
			predecessor.String(),
			"which occupies the same area at a higher elevation.",
		},
	})
	return []*PictureLayer{
		highlightConflictingLayer(predecessor),
		highlightConflictingLayer(layer),
	}
}

// debugCheckElevations compares every pair of physical model layers below
// c in paint order. A layer painted after an overlapping layer with a
// higher cumulative elevation is reported and both get a temporary outline.
// The returned overlays must be removed once the scene is built.
func (c *ContainerLayer) debugCheckElevations() []*PictureLayer {
	var layers []*PhysicalModelLayer
	for l := range c.DepthFirstIterateChildren() {
		if pm, ok := l.(*PhysicalModelLayer); ok {
			layers = append(layers, pm)
		}
	}

	elevations := make([]float64, len(layers))
	paths := make([]*gg.Path, len(layers))
	for i, pm := range layers {
		elevations[i] = pm.cumulativeElevation()
		paths[i] = pm.transformedClipPath()
	}

	var added []*PictureLayer
	for i, pm := range layers {
		if last := pm.lastChild; last != nil && last.DebugCreator() == pm {
			panic(fmt.Sprintf("strata debug: elevation check already visited %s or failed to remove its outline", pm))
		}
		for j := 0; j < i; j++ {
			if elevations[j] <= elevations[i] {
				continue
			}
			if pathsOverlap(paths[j], paths[i]) {
				added = append(added, processConflictingPhysicalLayers(layers[j], pm, elevations[j], elevations[i])...)
			}
		}
	}
	return added
}
