// Package command implements the per-frame recorded draw-command buffer:
// the append-only log rencache_begin_frame/end_frame plays back against
// the dirty-cell grid in package dirty. Unlike the original C buffer,
// which packed commands into a raw byte arena aligned to max_align_t, this
// is a plain growable slice of tagged Record values — Go gives us a
// sum-typed slice for free, so there is nothing to gain from replicating
// the manual alignment bookkeeping.
package command

import "github.com/gogpu/edrender/pixel"

// Type tags the kind of drawing operation a Record holds, mirroring the
// original renderer's CommandType enum.
type Type uint8

const (
	SetClip Type = iota
	DrawText
	DrawRect
	DrawPoly
	DrawCanvas
)

func (t Type) String() string {
	switch t {
	case SetClip:
		return "SetClip"
	case DrawText:
		return "DrawText"
	case DrawRect:
		return "DrawRect"
	case DrawPoly:
		return "DrawPoly"
	case DrawCanvas:
		return "DrawCanvas"
	default:
		return "Unknown"
	}
}

// Record is one recorded drawing operation. Rect is always the first field
// after the Type tag, both in the struct and in the bytes frame's
// hashRecord feeds to package dirty: every
// Record, regardless of Type, must report the screen-space rectangle it
// can possibly touch, the same role the original's leading Rect field
// played for push_rect/update_overlapping_cells.
type Record struct {
	Type Type
	Rect pixel.Rect

	// SetClip
	ClipRect pixel.Rect

	// DrawRect
	FillColor pixel.Color

	// DrawText
	Text      string
	TextX     float64
	TextY     float64
	TextColor pixel.Color
	FaceRef   uint32
	TabSize   int

	// DrawPoly
	Points    []pixel.Point
	PolyColor pixel.Color

	// DrawCanvas
	CanvasRef   uint32
	CanvasSrcX  int
	CanvasSrcY  int
	CanvasBlend bool
}
