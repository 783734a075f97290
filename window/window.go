// Package window obtains and resizes an OS-level target surface, tracks
// the pixel-vs-point scale factor, and presents dirty rects to the
// display. It is grounded on original_source/src/renwindow.c and
// renderer.c's ren_get_scale_factor/renwin_resize_surface/ren_update_rects,
// with the actual window-system plumbing (event loop, native handles,
// icon installation) kept out of scope per spec.md's own framing and
// expressed here as the OSWindow interface a host implements.
package window

import "github.com/gogpu/edrender/pixel"

// MinWidth and MinHeight are the minimum window size in points, installed
// by a host's OSWindow implementation at creation time.
const (
	MinWidth  = 240
	MinHeight = 180
)

// OSWindow is the host-implemented window-system plumbing this package
// consumes: opening a native window, querying its size in both logical
// points and physical pixels, and presenting pixel-rects to the screen.
// None of it is implemented by this module — a host embeds this package
// behind its own windowing toolkit (SDL, a platform's native APIs, a
// headless test double).
type OSWindow interface {
	// PointSize returns the window's logical content size.
	PointSize() (w, h int)

	// PixelSize returns the window's physical framebuffer size. On a
	// HiDPI display this is larger than PointSize by the scale factor.
	PixelSize() (w, h int)

	// SetMinimumSize installs a floor on interactive resizing, in points.
	SetMinimumSize(w, h int)

	// Show makes the window visible. Called exactly once, after the
	// first successful frame has been presented.
	Show()

	// Present uploads the listed pixel-space rects to the display.
	Present(rects []pixel.Rect)

	// RefreshRate reports the display's refresh rate in Hz, for pacing.
	RefreshRate() int
}
