package dirty

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/edrender/pixel"
)

func TestNewGridFirstDiffIsEmpty(t *testing.T) {
	g := New()
	g.Begin()
	rects := g.Diff()
	if len(rects) != 0 {
		t.Fatalf("first diff on an untouched grid should be empty, got %d rects", len(rects))
	}
}

func TestMarkProducesDirtyRect(t *testing.T) {
	g := New()
	g.Begin()
	g.Mark(pixel.Rect{X: 0, Y: 0, W: 10, H: 10}, HashBytes([]byte("hello")))
	rects := g.Diff()
	if len(rects) == 0 {
		t.Fatal("expected at least one dirty rect after marking a cell")
	}
}

func TestIdenticalFramesProduceNoDirtyRects(t *testing.T) {
	g := New()

	g.Begin()
	g.Mark(pixel.Rect{X: 0, Y: 0, W: 10, H: 10}, HashBytes([]byte("same")))
	g.Diff()

	g.Begin()
	g.Mark(pixel.Rect{X: 0, Y: 0, W: 10, H: 10}, HashBytes([]byte("same")))
	rects := g.Diff()

	if len(rects) != 0 {
		t.Fatalf("identical consecutive frames should produce no dirty rects, got %d", len(rects))
	}
}

func TestChangedContentProducesDirtyRect(t *testing.T) {
	g := New()

	g.Begin()
	g.Mark(pixel.Rect{X: 0, Y: 0, W: 10, H: 10}, HashBytes([]byte("frame1")))
	g.Diff()

	g.Begin()
	g.Mark(pixel.Rect{X: 0, Y: 0, W: 10, H: 10}, HashBytes([]byte("frame2")))
	rects := g.Diff()

	if len(rects) == 0 {
		t.Fatal("changed cell content should produce a dirty rect")
	}
}

func TestInvalidateForcesFullRepaint(t *testing.T) {
	g := New()
	g.Begin()
	g.Diff()

	g.Invalidate()
	g.Begin()
	rects := g.Diff()
	if len(rects) == 0 {
		t.Fatal("Invalidate should force every cell to be reported dirty")
	}
}

func TestPushRectMergesOverlapping(t *testing.T) {
	var rects []pixel.Rect
	rects = pushRect(rects, pixel.Rect{X: 0, Y: 0, W: 10, H: 10})
	rects = pushRect(rects, pixel.Rect{X: 5, Y: 5, W: 10, H: 10})
	if len(rects) != 1 {
		t.Fatalf("overlapping rects should merge into one, got %d", len(rects))
	}
	want := pixel.Rect{X: 0, Y: 0, W: 15, H: 15}
	if rects[0] != want {
		t.Errorf("merged rect = %+v, want %+v", rects[0], want)
	}
}

func TestPushRectKeepsDisjointSeparate(t *testing.T) {
	var rects []pixel.Rect
	rects = pushRect(rects, pixel.Rect{X: 0, Y: 0, W: 10, H: 10})
	rects = pushRect(rects, pixel.Rect{X: 1000, Y: 1000, W: 10, H: 10})
	if len(rects) != 2 {
		t.Fatalf("disjoint rects should stay separate, got %d", len(rects))
	}
}

func TestDiffMergesMultipleMarkedCellsIntoExpectedRects(t *testing.T) {
	g := New()
	g.Begin()

	// Two marks in adjacent cells on the same row should merge into a
	// single wide rect; a third mark far away stays separate.
	g.Mark(pixel.Rect{X: 0, Y: 0, W: 1, H: 1}, HashBytes([]byte("a")))
	g.Mark(pixel.Rect{X: CellSize, Y: 0, W: 1, H: 1}, HashBytes([]byte("b")))
	g.Mark(pixel.Rect{X: 20 * CellSize, Y: 20 * CellSize, W: 1, H: 1}, HashBytes([]byte("c")))

	got := g.Diff()

	want := []pixel.Rect{
		{X: 0, Y: 0, W: 2 * CellSize, H: CellSize},
		{X: 20 * CellSize, Y: 20 * CellSize, W: CellSize, H: CellSize},
	}

	less := func(a, b pixel.Rect) bool {
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	}
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(less)); diff != "" {
		t.Errorf("Diff() mismatch (-want +got):\n%s", diff)
	}
}
