package font

import (
	"image"
	"sync"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/f32"
	"golang.org/x/image/vector"
)

// glyphsetSize is the number of consecutive glyph indices grouped into one
// rasterized page, matching the original renderer's GLYPHSET_SIZE.
const glyphsetSize = 16

// GlyphBitmap is one rasterized glyph: an 8-bit coverage mask plus the
// placement and advance metrics needed to composite it onto a surface.
type GlyphBitmap struct {
	Mask *image.Alpha
	// Left, Top are the offsets from the pen position to the mask's
	// top-left corner.
	Left, Top int
	Advance   float64
	Empty     bool
}

type glyphSlot struct {
	loaded bool
	phases [subpixelPhases]GlyphBitmap
}

type glyphPage struct {
	mu    sync.Mutex
	slots [glyphsetSize]glyphSlot
}

// Atlas lazily rasterizes and caches a Face's glyph bitmaps, organized into
// fixed-size pages the same way the original renderer grouped glyphs into
// GlyphSets, so that loading one glyph warms its immediate neighbors'
// storage without rasterizing them eagerly.
type Atlas struct {
	face *Face

	mu    sync.RWMutex
	pages map[uint32]*glyphPage

	rastBuf sfnt.Buffer
}

func newAtlas(f *Face) *Atlas {
	return &Atlas{face: f, pages: make(map[uint32]*glyphPage)}
}

// Glyph returns the rasterized bitmap for gid at the given subpixel phase.
// phase is ignored (treated as 0) unless the Face's antialiasing mode is
// AntialiasSubpixel.
func (a *Atlas) Glyph(gid GlyphID, phase int) GlyphBitmap {
	if a.face.opts.antialiasing != AntialiasSubpixel {
		phase = 0
	} else {
		phase %= subpixelPhases
	}

	pageIdx := uint32(gid) / glyphsetSize
	slotIdx := int(uint32(gid) % glyphsetSize)

	page := a.page(pageIdx)
	page.mu.Lock()
	defer page.mu.Unlock()

	slot := &page.slots[slotIdx]
	if !slot.loaded {
		for p := 0; p < a.face.opts.antialiasing.phases(); p++ {
			slot.phases[p] = a.rasterize(gid, p)
		}
		slot.loaded = true
	}
	return slot.phases[phase]
}

func (a *Atlas) page(idx uint32) *glyphPage {
	a.mu.RLock()
	p, ok := a.pages[idx]
	a.mu.RUnlock()
	if ok {
		return p
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok = a.pages[idx]; ok {
		return p
	}
	p = &glyphPage{}
	a.pages[idx] = p
	return p
}

// rasterize loads gid's outline, applies the Face's style transform, offsets
// it by the subpixel phase, and fills it into a coverage mask. phase counts
// from 0 to subpixelPhases-1 and corresponds to the original renderer's
// per-third-of-a-pixel bitmap caching.
func (a *Atlas) rasterize(gid GlyphID, phase int) GlyphBitmap {
	sf, err := a.face.source.outlineFont()
	if err != nil {
		return GlyphBitmap{Empty: true}
	}

	ppem := a.face.ppem()
	segments, err := sf.LoadGlyph(&a.rastBuf, sfnt.GlyphIndex(gid), ppem, nil)
	advance := a.face.advance(gid)
	if err != nil || len(segments) == 0 {
		return GlyphBitmap{Empty: true, Advance: advance}
	}

	pts := segmentsToPoints(segments, a.face.opts.style, float32(a.face.unitsPerEm), 1)

	bounds := boundsOf(pts)
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return GlyphBitmap{Empty: true, Advance: advance}
	}

	// The phase shift moves every point right by phase/3 px; the one-pixel
	// padding in boundsOf leaves room for it.
	phaseShift := float32(phase) / float32(subpixelPhases)
	rast := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	ox, oy := float32(bounds.Min.X)-phaseShift, float32(bounds.Min.Y)

	walkSegments(segments, pts, func(op sfnt.SegmentOp, p [3]f32.Vec2) {
		switch op {
		case sfnt.SegmentOpMoveTo:
			rast.MoveTo(shift(p[0], ox, oy))
		case sfnt.SegmentOpLineTo:
			rast.LineTo(shift(p[0], ox, oy))
		case sfnt.SegmentOpQuadTo:
			rast.QuadTo(shift(p[0], ox, oy), shift(p[1], ox, oy))
		case sfnt.SegmentOpCubeTo:
			rast.CubeTo(shift(p[0], ox, oy), shift(p[1], ox, oy), shift(p[2], ox, oy))
		}
	})

	mask := image.NewAlpha(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	rast.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return GlyphBitmap{
		Mask:    mask,
		Left:    bounds.Min.X,
		Top:     bounds.Min.Y,
		Advance: advance,
	}
}

func shift(p f32.Vec2, ox, oy float32) f32.Vec2 {
	return f32.Vec2{p[0] - ox, p[1] - oy}
}

// segmentsToPoints converts every segment argument from 26.6 fixed-point
// pixels (LoadGlyph has already scaled the outline to the Face's ppem)
// into float device-space points, applying the style's synthetic
// transform first and then multiplying by scale; rasterize passes 1.
func segmentsToPoints(segs sfnt.Segments, style Style, unitsPerEm, scale float32) [][3]f32.Vec2 {
	pts := make([][3]f32.Vec2, len(segs))
	for i, seg := range segs {
		for j, arg := range seg.Args {
			x := float32(arg.X) / 64
			y := float32(arg.Y) / 64
			x, y = applyStyle(x, y, style, unitsPerEm)
			pts[i][j] = f32.Vec2{x * scale, -y * scale}
		}
	}
	return pts
}

// applyStyle approximates the original renderer's FreeType outline
// transforms. FT_Outline_Embolden/EmboldenXY offset every contour outward
// by a fixed number of font units; this stack has no outline stroker, so
// StyleBold/StyleSmooth are approximated by scaling the outline slightly
// about the origin, which thickens strokes without the exact corner
// behavior FreeType produces. StyleItalic applies the same shear matrix
// the original used (2^16 : 2^14 in 16.16 fixed point, i.e. a 0.25 slant).
func applyStyle(x, y float32, style Style, unitsPerEm float32) (float32, float32) {
	if style.Has(StyleBold) {
		const emboldenUnits = 1.0 / 32
		f := 1 + emboldenUnits
		x *= f
	}
	if style.Has(StyleSmooth) {
		const emboldenUnits = 1.0 / 32
		f := 1 + emboldenUnits
		x *= f
		y *= f
	}
	if style.Has(StyleItalic) {
		const shear = 0.25
		x += y * shear
	}
	return x, y
}

func walkSegments(segs sfnt.Segments, pts [][3]f32.Vec2, fn func(sfnt.SegmentOp, [3]f32.Vec2)) {
	for i, seg := range segs {
		fn(seg.Op, pts[i])
	}
}

func boundsOf(pts [][3]f32.Vec2) image.Rectangle {
	minX, minY := float32(1<<30), float32(1<<30)
	maxX, maxY := float32(-(1 << 30)), float32(-(1 << 30))
	any := false
	for _, p := range pts {
		for _, v := range p {
			if v[0] == 0 && v[1] == 0 {
				continue
			}
			any = true
			minX, minY = min32(minX, v[0]), min32(minY, v[1])
			maxX, maxY = max32(maxX, v[0]), max32(maxY, v[1])
		}
	}
	if !any {
		return image.Rectangle{}
	}
	const pad = 1
	return image.Rect(int(minX)-pad, int(minY)-pad, int(maxX)+pad+1, int(maxY)+pad+1)
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
