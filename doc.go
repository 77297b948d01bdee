// Package strata is a retained-mode compositing layer tree.
//
// A render tree hands strata already laid-out geometry and recorded
// pictures; strata keeps them in a tree of layers and, once per frame,
// flattens that tree into push/pop operations on a [SceneBuilder]. Subtrees
// that did not change since the previous frame are re-submitted through
// [SceneBuilder.AddRetained] instead of being walked again, so the cost of
// a frame follows the changed part of the tree rather than its size.
//
// # Layer tree
//
// Every node is a [Layer]. Containers embed [ContainerLayer] and own their
// children through a doubly linked sibling list:
//
//	root := strata.NewOffsetLayer(strata.OffsetZero)
//	root.Attach(owner)
//
//	clip := strata.NewClipRectLayer(strata.RectFromLTWH(0, 0, 100, 100), strata.ClipHardEdge)
//	root.Append(clip)
//
//	pic := strata.NewPictureLayer(strata.RectFromLTWH(0, 0, 100, 100))
//	pic.SetPicture(strata.RecordPicture(100, 100, func(r *recording.Recorder) {
//		r.SetFillRGBA(0.2, 0.6, 1, 1)
//		r.DrawRectangle(10, 10, 80, 80)
//		r.Fill()
//	}))
//	clip.Append(pic)
//
// Leaves are [PictureLayer], [TextureLayer] and [PerformanceOverlayLayer].
// Effects are [OffsetLayer], [TransformLayer], [ClipRectLayer],
// [ClipRRectLayer], [ClipPathLayer], [OpacityLayer], [BackdropFilterLayer],
// [PhysicalModelLayer] and [AnnotatedRegionLayer].
//
// Structural misuse, such as appending a layer that already has a parent,
// creating a cycle or attaching a second leader to a [LayerLink], panics
// with a "strata:" message. [SetDebugMode] adds the more expensive checks.
//
// # Building a scene
//
// The root offset layer drives a frame:
//
//	s := root.BuildScene(scene.NewBuilder())
//
// The [github.com/phanxgames/strata/scene] package provides a reference
// builder that records a scene tree, and
// [github.com/phanxgames/strata/raster] draws such a scene into an image.
//
// # Linked layers
//
// A [LeaderLayer] and any number of [FollowerLayer]s sharing a [LayerLink]
// let a subtree, such as a tooltip, follow another subtree's position from
// a different branch of the tree.
//
// # Hit testing
//
// [Find] and [FindAll] return the values of [AnnotatedRegionLayer]s under a
// point, topmost first, honoring clips and inverting transforms on the way
// down.
//
// # Diagnostics
//
// With debug mode and [DebugOptions.CheckElevations] on, BuildScene reports
// physical model layers painted out of elevation order through the
// [ErrorReporter] and outlines them in red for that frame. Logging goes
// through [log/slog]; see [SetLogger].
package strata
