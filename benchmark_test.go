package strata

import "testing"

// setupBenchTree creates an attached root with n clipped picture cards laid
// out on a grid. It returns the root and the pictures so benchmarks can
// dirty them.
func setupBenchTree(b *testing.B, n int) (*OffsetLayer, []*PictureLayer) {
	root := NewOffsetLayer(OffsetZero)
	root.Attach(b)
	pics := make([]*PictureLayer, 0, n)
	for i := 0; i < n; i++ {
		x := float64(i%100) * 40
		y := float64(i/100) * 40
		clip := NewClipRectLayer(RectFromLTWH(x, y, 32, 32), ClipHardEdge)
		pic := NewPictureLayer(RectFromLTWH(0, 0, 32, 32))
		pic.SetPicture(RecordPicture(32, 32, nil))
		clip.Append(pic)
		root.Append(clip)
		pics = append(pics, pic)
	}
	return root, pics
}

// --- Scene building benchmarks ---

func BenchmarkBuildScene_10000Cards_Static(b *testing.B) {
	root, _ := setupBenchTree(b, 10000)
	root.BuildScene(&fakeBuilder{}) // warmup

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		root.BuildScene(&fakeBuilder{})
	}
}

func BenchmarkBuildScene_10000Cards_Dirty(b *testing.B) {
	root, pics := setupBenchTree(b, 10000)
	root.BuildScene(&fakeBuilder{})

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, p := range pics {
			p.MarkNeedsAddToScene()
		}
		root.BuildScene(&fakeBuilder{})
	}
}

func BenchmarkFind_10000Cards(b *testing.B) {
	root, _ := setupBenchTree(b, 10000)
	for i, c := 0, root.FirstChild(); c != nil; i, c = i+1, c.NextSibling() {
		c.(*ClipRectLayer).Append(NewAnnotatedRegionLayer(i, nil, OffsetZero))
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Find[int](root, Offset{20, 20})
	}
}

func BenchmarkElevationCheck_200Cards(b *testing.B) {
	SetDebugMode(true)
	defer SetDebugMode(false)
	root := NewOffsetLayer(OffsetZero)
	for i := 0; i < 200; i++ {
		x := float64(i%20) * 30
		y := float64(i/20) * 30
		root.Append(NewPhysicalModelLayer(RectPath(RectFromLTWH(x, y, 32, 32)), ClipHardEdge, float64(i%5), ColorBlack, ColorBlack))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, overlay := range root.debugCheckElevations() {
			overlay.Remove()
		}
	}
}
