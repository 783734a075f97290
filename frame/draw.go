package frame

import (
	"github.com/gogpu/edrender/canvas"
	"github.com/gogpu/edrender/command"
	"github.com/gogpu/edrender/font"
	"github.com/gogpu/edrender/pixel"
)

// SetClipRect installs rect, in points, as the running clip for every
// drawing call recorded after it this frame, until the next SetClipRect.
// It is itself recorded as a Record so the hash pass sees it in the same
// order the draw calls around it were issued.
func (t *Target) SetClipRect(rect pixel.Rect) error {
	if !t.isRecording() {
		return ErrNotRecording
	}
	t.buf.Push(command.Record{
		Type:     command.SetClip,
		Rect:     rect,
		ClipRect: rect,
	})
	return nil
}

// DrawRect records a filled rectangle.
func (t *Target) DrawRect(rect pixel.Rect, color pixel.Color) error {
	if !t.isRecording() {
		return ErrNotRecording
	}
	t.buf.Push(command.Record{
		Type:      command.DrawRect,
		Rect:      rect,
		FillColor: color,
	})
	return nil
}

// DrawText records a text run at baseline (x, y) and returns the run's
// advance width, measured immediately via g.GetWidth so the caller gets
// a usable return value without waiting for end_frame to actually draw
// anything — draw_text's x_end return value in the original is likewise
// computed during recording, not during the later SDL blit.
func (t *Target) DrawText(g *font.Group, text string, x, y float64, color pixel.Color) (float64, error) {
	if !t.isRecording() {
		return 0, ErrNotRecording
	}
	sx, _ := t.win.ScaleFactor()
	width := g.GetWidth(text, sx)
	faceRef := t.pinFace(g)
	t.buf.Push(command.Record{
		Type:      command.DrawText,
		Rect:      pixel.Rect{X: int(x), Y: int(y - g.Primary().Height()), W: int(width) + 1, H: int(g.Primary().Height()) + 1},
		Text:      text,
		TextX:     x,
		TextY:     y,
		TextColor: color,
		FaceRef:   faceRef,
	})
	return width, nil
}

// DrawPoly records a filled polygon and returns its bounding box, the
// same (x, y, w, h) tuple draw_poly returns to its caller in the original
// host binding.
func (t *Target) DrawPoly(points []pixel.Point, color pixel.Color) (pixel.Rect, error) {
	if !t.isRecording() {
		return pixel.Rect{}, ErrNotRecording
	}
	if len(points) > maxPolyPoints {
		return pixel.Rect{}, ErrPolyTooLarge
	}
	bbox := pixel.PolyBounds(points)
	cp := make([]pixel.Point, len(points))
	copy(cp, points)
	t.buf.Push(command.Record{
		Type:      command.DrawPoly,
		Rect:      bbox,
		Points:    cp,
		PolyColor: color,
	})
	return bbox, nil
}

// DrawCanvas records a blit of src at (x, y), pinning a retained handle
// to src for the duration of the frame — released during the hash pass
// once the command has been seen, matching the original's render_ref_count
// increment-at-record/decrement-at-hash lifecycle.
func (t *Target) DrawCanvas(src *canvas.Canvas, x, y int, blend bool) error {
	if !t.isRecording() {
		return ErrNotRecording
	}
	id := t.pinCanvas(src)
	t.buf.Push(command.Record{
		Type:        command.DrawCanvas,
		Rect:        pixel.Rect{X: x, Y: y, W: src.Width(), H: src.Height()},
		CanvasRef:   id,
		CanvasSrcX:  x,
		CanvasSrcY:  y,
		CanvasBlend: blend,
	})
	return nil
}

// ToCanvas snapshots rect (in points, scaled to the target's current
// pixel surface) into a new, independently-owned Canvas — the original's
// to_canvas, which reads back whatever has actually been presented so
// far rather than anything still pending in the command buffer.
func (t *Target) ToCanvas(rect pixel.Rect) (*canvas.Canvas, error) {
	px := t.win.ToPixelRect(rect)
	src := t.win.Surface()
	px = px.Intersect(src.Bounds())
	if px.Empty() {
		return canvas.New(1, 1, pixel.RGBA32, true)
	}
	c, err := canvas.New(px.W, px.H, pixel.RGBA32, true)
	if err != nil {
		return nil, err
	}
	c.Surface().Blit(src, &px, 0, 0, pixel.BlendReplace)
	return c, nil
}
