package frame

import (
	"math/rand/v2"

	"github.com/gogpu/edrender/canvas"
	"github.com/gogpu/edrender/command"
	"github.com/gogpu/edrender/font"
	"github.com/gogpu/edrender/pixel"
)

// runPasses executes the hash pass (fold every command's effective rect
// into the dirty grid, releasing each DrawCanvas command's frame pin
// exactly once after taking its own retain for the redraw pass below),
// the diff pass (package dirty merges changed cells into rects), and the
// redraw pass (replay commands against the target's surface, once per
// dirty rect), returning the point-space rects that were actually
// repainted. The redraw pass's own retain keeps a COW-detached,
// pre-mutation source surface alive even though its frame pin was
// already released during the hash pass (spec §8 P3): the frame pin and
// the redraw-pass retain are counted separately, and the backing surface
// is freed only once both are gone.
func (t *Target) runPasses() []pixel.Rect {
	t.grid.Begin()

	readCanvases := make(map[uint32]*canvas.Canvas, len(t.canvasPins))
	clip := t.screenRect
	records := t.buf.Records()
	for _, rec := range records {
		if rec.Type == command.SetClip {
			clip = rec.ClipRect.Intersect(t.screenRect)
		}
		effective := rec.Rect.Intersect(clip)
		if !effective.Empty() {
			t.grid.Mark(effective, hashRecord(rec))
		}
		if rec.Type == command.DrawCanvas {
			if c, ok := t.canvasPins[rec.CanvasRef]; ok {
				readCanvases[rec.CanvasRef] = c.Retain()
			}
			t.releaseCanvasPin(rec.CanvasRef)
		}
	}

	rects := t.grid.Diff()

	dst := t.win.Surface()
	for _, r := range rects {
		t.replay(dst, r, readCanvases)
	}
	dst.SetClip(dst.Bounds())

	for _, c := range readCanvases {
		c.Destroy()
	}

	return rects
}

// replay re-walks every recorded command, tracking the running clip the
// same way the hash pass did, and executes each command whose effective
// rect overlaps dirtyRect against dst. SET_CLIP narrows dst's actual clip
// rect to the intersection of the running clip and dirtyRect, so draws
// stay confined to both, per spec §4.5's "SET_CLIP intersects its rect
// with the current rect being redrawn".
func (t *Target) replay(dst *pixel.Surface, dirtyRect pixel.Rect, canvases map[uint32]*canvas.Canvas) {
	dirtyPixel := t.win.ToPixelRect(dirtyRect)
	clip := t.screenRect

	for _, rec := range t.buf.Records() {
		if rec.Type == command.SetClip {
			clip = rec.ClipRect.Intersect(t.screenRect)
			continue
		}
		effective := rec.Rect.Intersect(clip)
		if effective.Empty() || !effective.Overlaps(dirtyRect) {
			continue
		}

		dst.SetClip(t.win.ToPixelRect(clip).Intersect(dirtyPixel))
		t.execute(dst, rec, canvases)
	}
}

func (t *Target) execute(dst *pixel.Surface, rec command.Record, canvases map[uint32]*canvas.Canvas) {
	switch rec.Type {
	case command.DrawRect:
		dst.FillRect(t.win.ToPixelRect(rec.Rect), rec.FillColor, false)

	case command.DrawText:
		g := t.facePins[rec.FaceRef]
		if g == nil {
			return
		}
		sx, sy := t.win.ScaleFactor()
		font.DrawRun(dst, g, rec.Text, rec.TextX*sx, rec.TextY*sy, rec.TextColor)

	case command.DrawPoly:
		sx, sy := t.win.ScaleFactor()
		pts := make([]pixel.Point, len(rec.Points))
		for i, p := range rec.Points {
			pts[i] = pixel.Point{X: p.X * sx, Y: p.Y * sy}
		}
		pixel.FillPolygon(dst, pts, rec.PolyColor)

	case command.DrawCanvas:
		c := canvases[rec.CanvasRef]
		if c == nil {
			return
		}
		mode := pixel.BlendReplace
		if rec.CanvasBlend {
			mode = pixel.BlendOver
		}
		sx, sy := t.win.ScaleFactor()
		dx := int(float64(rec.CanvasSrcX) * sx)
		dy := int(float64(rec.CanvasSrcY) * sy)
		dst.Blit(c.Surface(), nil, dx, dy, mode)
	}
}

// drawDebugOverlay paints a translucent, randomly colored rect over each
// just-redrawn dirty region, the diagnostic rencache.c's show_debug block
// provides for visualizing the invalidation engine's output; spec §6
// lists it as a real host-facing operation, not an excluded Non-goal.
func (t *Target) drawDebugOverlay(rects []pixel.Rect) {
	dst := t.win.Surface()
	for _, r := range rects {
		pr := t.win.ToPixelRect(r)
		dst.SetClip(pr)
		c := pixel.Color{
			R: uint8(rand.IntN(256)),
			G: uint8(rand.IntN(256)),
			B: uint8(rand.IntN(256)),
			A: 50,
		}
		dst.FillRect(pr, c, false)
	}
	dst.SetClip(dst.Bounds())
}
