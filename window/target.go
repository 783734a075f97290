package window

import "github.com/gogpu/edrender/pixel"

// Target wraps one OSWindow with the cached pixel Surface the frame
// pipeline draws into, plus the point-to-pixel scale factors derived from
// comparing the window's logical and physical sizes. scale_x/scale_y are
// recomputed on every Resize, mirroring ren_get_scale_factor's dividing
// the framebuffer size by the window's point size on every resize event.
type Target struct {
	os      OSWindow
	surface *pixel.Surface

	pointW, pointH int
	scaleX, scaleY float64

	shown bool
}

// Create builds a Target around an already-open OSWindow, installing the
// spec's fixed minimum size and allocating the initial backing surface.
func Create(os OSWindow) (*Target, error) {
	os.SetMinimumSize(MinWidth, MinHeight)
	t := &Target{os: os}
	if err := t.Resize(); err != nil {
		return nil, err
	}
	return t, nil
}

// PointSize returns the window's logical content size, the coordinate
// system every drawing call in this module is expressed in.
func (t *Target) PointSize() (w, h int) { return t.pointW, t.pointH }

// ScaleFactor returns the current point-to-pixel scale factors.
func (t *Target) ScaleFactor() (x, y float64) { return t.scaleX, t.scaleY }

// Surface returns the backing pixel Surface, sized in physical pixels.
func (t *Target) Surface() *pixel.Surface { return t.surface }

// Resize re-queries the OSWindow's point and pixel sizes, recomputes the
// scale factors, and, if the pixel size changed, rebuilds the backing
// Surface at the new pixel dimensions. A rebuild replaces the value
// Surface returns, which is how the frame pipeline detects it and
// invalidates the dirty grid.
func (t *Target) Resize() error {
	pw, ph := t.os.PointSize()
	pxW, pxH := t.os.PixelSize()

	changed := t.surface == nil || t.surface.Width() != pxW || t.surface.Height() != pxH

	t.pointW, t.pointH = pw, ph
	if pw > 0 {
		t.scaleX = float64(pxW) / float64(pw)
	}
	if ph > 0 {
		t.scaleY = float64(pxH) / float64(ph)
	}

	if !changed {
		return nil
	}
	s, err := pixel.New(pxW, pxH, pixel.RGBA32, true)
	if err != nil {
		return err
	}
	t.surface = s
	return nil
}

// Resized reports whether the backing surface's pixel dimensions differ
// from (pxW, pxH), or whether no surface has been built yet.
func (t *Target) Resized(pxW, pxH int) bool {
	return t.surface == nil || t.surface.Width() != pxW || t.surface.Height() != pxH
}

// ToPixelRect scales a point-space rect to the physical pixel space of
// the backing Surface, the conversion spec.md places "at the very bottom
// of the pipeline".
func (t *Target) ToPixelRect(r pixel.Rect) pixel.Rect {
	return pixel.Rect{
		X: int(float64(r.X) * t.scaleX),
		Y: int(float64(r.Y) * t.scaleY),
		W: int(float64(r.W) * t.scaleX),
		H: int(float64(r.H) * t.scaleY),
	}
}

// Present uploads the given pixel-space rects to the display, showing the
// window for the first time on its initial call — the teacher's
// equivalent of the one-time Show call the original issues after the
// first successful end_frame.
func (t *Target) Present(rects []pixel.Rect) {
	t.os.Present(rects)
	if !t.shown {
		t.os.Show()
		t.shown = true
	}
}

// RefreshRate reports the display refresh rate in Hz, for pacing; it has
// no bearing on frame semantics.
func (t *Target) RefreshRate() int {
	return t.os.RefreshRate()
}
