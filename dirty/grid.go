// Package dirty implements the per-frame damage tracker: it hashes every
// recorded command into a fixed grid of cells, diffs that grid against the
// previous frame's, and merges the changed cells into a small list of
// redraw rectangles. The algorithm — FNV-1a cell hashing, 1x1-rect
// diffing, backward-scan rect merging — is carried over unchanged from the
// original renderer's rencache.c; only the data types are idiomatic Go.
package dirty

import (
	"hash/fnv"

	"github.com/gogpu/edrender/pixel"
)

// Grid dimensions and cell size match RENCACHE_CELLS_X/Y and CELL_SIZE in
// the original: a 128x72 grid of 60px cells covers a 7680x4320 canvas,
// comfortably larger than any real display.
const (
	CellsX   = 128
	CellsY   = 72
	CellSize = 60
)

// hashInitial is FNV-1a's 32-bit offset basis, the same HASH_INITIAL the
// original used to seed both cells and cells_prev.
const hashInitial uint32 = 2166136261

// Grid tracks per-cell content hashes across two frames and produces the
// set of rectangles that changed between them.
type Grid struct {
	cells     [CellsX * CellsY]uint32
	cellsPrev [CellsX * CellsY]uint32
}

// New returns a Grid with every cell set to HASH_INITIAL, matching the
// original's rencache_init.
func New() *Grid {
	g := &Grid{}
	for i := range g.cells {
		g.cells[i] = hashInitial
		g.cellsPrev[i] = hashInitial
	}
	return g
}

// Invalidate forces every cell to mismatch on the next Diff, guaranteeing a
// full-surface repaint. rencache_invalidate achieved the same effect by
// memset-ing cells_prev to 0xff; here the sentinel is the same value named
// explicitly.
func (g *Grid) Invalidate() {
	for i := range g.cellsPrev {
		g.cellsPrev[i] = invalidSentinel
	}
}

// invalidSentinel marks a previous-frame cell as "definitely different".
// An untouched cell holds hashInitial, which differs from it; a marked
// cell matches it only if fnv1aFold happens to produce 0xffffffff.
const invalidSentinel uint32 = 0xffffffff

func cellIndex(x, y int) int {
	return x + y*CellsX
}

// Begin resets the live cell grid to HASH_INITIAL for a new frame's hash
// pass, mirroring the cells buffer rencache_begin_frame hands to
// rencache_end_frame.
func (g *Grid) Begin() {
	for i := range g.cells {
		g.cells[i] = hashInitial
	}
}

// Mark folds the 32-bit hash h into every cell overlapping rect, the same
// update_overlapping_cells loop from the original: FNV-1a combines the new
// hash into each touched cell's running value, so a cell's final hash
// depends on every command that touched it and the order they arrived in.
func (g *Grid) Mark(rect pixel.Rect, h uint32) {
	x1, y1 := rect.X/CellSize, rect.Y/CellSize
	x2, y2 := rect.Right()/CellSize, rect.Bottom()/CellSize
	x1, y1 = clampCell(x1, y1)
	x2, y2 = clampCell(x2, y2)
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			i := cellIndex(x, y)
			g.cells[i] = fnv1aFold(g.cells[i], h)
		}
	}
}

func clampCell(x, y int) (int, int) {
	if x < 0 {
		x = 0
	}
	if x >= CellsX {
		x = CellsX - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= CellsY {
		y = CellsY - 1
	}
	return x, y
}

// fnv1aFold combines one more 32-bit value into a running FNV-1a hash, the
// Go equivalent of the original's byte-wise `*h = (*h ^ *p++) * 16777619`
// loop applied to a whole uint32 at once.
func fnv1aFold(h, v uint32) uint32 {
	const prime = 16777619
	h = (h ^ (v & 0xff)) * prime
	h = (h ^ ((v >> 8) & 0xff)) * prime
	h = (h ^ ((v >> 16) & 0xff)) * prime
	h = (h ^ ((v >> 24) & 0xff)) * prime
	return h
}

// HashBytes runs stdlib FNV-1a over an arbitrary byte slice, seeded from
// the initial basis, for callers (package command's Record encoder) that
// need a single hash value to feed into Mark.
func HashBytes(b []byte) uint32 {
	h := fnv.New32a()
	h.Write(b)
	return h.Sum32()
}

// Diff compares the live grid against the previous frame's, pushes a 1x1
// cell-sized rect for every mismatch, merges overlapping/adjacent rects,
// and then swaps the live grid into place as the new "previous" — the
// three final steps of rencache_end_frame (diff, push_rect, swap).
func (g *Grid) Diff() []pixel.Rect {
	var rects []pixel.Rect
	for y := 0; y < CellsY; y++ {
		for x := 0; x < CellsX; x++ {
			i := cellIndex(x, y)
			if g.cells[i] != g.cellsPrev[i] {
				rects = pushRect(rects, pixel.Rect{
					X: x * CellSize, Y: y * CellSize,
					W: CellSize, H: CellSize,
				})
			}
		}
	}
	g.cellsPrev, g.cells = g.cells, g.cellsPrev
	return rects
}

// pushRect appends rect to rects, first scanning backward for an existing
// rect it overlaps and merging into that instead — push_rect's own
// backward scan, which keeps the rect list small without the cost of a
// full spatial index.
func pushRect(rects []pixel.Rect, rect pixel.Rect) []pixel.Rect {
	for i := len(rects) - 1; i >= 0; i-- {
		if rects[i].Overlaps(rect) {
			rects[i] = rects[i].Union(rect)
			return rects
		}
	}
	return append(rects, rect)
}
