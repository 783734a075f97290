package pixel

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	ximagedraw "golang.org/x/image/draw"

	"github.com/gogpu/edrender/rlog"
)

// Errors returned by Surface construction and mutation, grounded on the
// error kinds spec §4.1 describes for C1.
var (
	ErrInvalidDimensions = errors.New("pixel: width and height must be positive")
	ErrInvalidFormat     = errors.New("pixel: unknown pixel format")
	ErrOutOfMemory       = errors.New("pixel: allocation failed")
	ErrPitchTooSmall     = errors.New("pixel: pitch smaller than width*bytesPerPixel")
)

// ScaleMode selects the resampling filter used by Scale/BlitScaled.
type ScaleMode uint8

const (
	ScaleNearest ScaleMode = iota
	ScaleLinear
)

// BlendMode selects how Blit composites source pixels onto the
// destination: Over performs alpha compositing, Replace overwrites the
// destination bytes outright (used by set_pixels and canvas draw_canvas
// with blend=false).
type BlendMode uint8

const (
	BlendOver BlendMode = iota
	BlendReplace
)

// Surface is a mutable rectangular pixel buffer: the invariant from spec
// §3 is that pitch >= width*bytesPerPixel and that Clip is always a
// subset of the surface's own bounds.
type Surface struct {
	width, height int
	pitch         int
	format        Format
	pix           []byte
	clip          Rect
	borrowed      bool
}

// New allocates a zero-filled (transparent, unless transparent is false
// in which case opaque black) surface of the given format.
func New(width, height int, format Format, transparent bool) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.Valid() {
		return nil, ErrInvalidFormat
	}
	pitch := format.RowBytes(width)
	pix := make([]byte, pitch*height)
	s := &Surface{width: width, height: height, pitch: pitch, format: format, pix: pix}
	s.clip = Rect{0, 0, width, height}
	if !transparent && format.HasAlpha() {
		s.FillRect(s.clip, Color{A: 255}, true)
	}
	return s, nil
}

// NewFromBorrowed wraps caller-owned bytes without copying. The caller
// retains ownership; Destroy on a borrowed surface releases the Go
// reference only, it never mutates the backing array's lifetime.
func NewFromBorrowed(width, height int, format Format, pitch int, pix []byte) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.Valid() {
		return nil, ErrInvalidFormat
	}
	if pitch < format.RowBytes(width) {
		return nil, ErrPitchTooSmall
	}
	if len(pix) < pitch*height {
		return nil, ErrOutOfMemory
	}
	return &Surface{
		width: width, height: height, pitch: pitch, format: format,
		pix: pix, clip: Rect{0, 0, width, height}, borrowed: true,
	}, nil
}

// Destroy releases the surface's reference to its backing pixels.
// Safe to call multiple times.
func (s *Surface) Destroy() {
	s.pix = nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// Pitch returns the byte stride between rows.
func (s *Surface) Pitch() int { return s.pitch }

// Format returns the surface's pixel format.
func (s *Surface) Format() Format { return s.format }

// Bounds returns the full-surface rectangle, origin (0,0).
func (s *Surface) Bounds() Rect { return Rect{0, 0, s.width, s.height} }

// Pixels exposes the raw backing buffer. Callers must not retain it past
// the surface's lifetime, and must account for Pitch when walking rows.
func (s *Surface) Pixels() []byte { return s.pix }

// Clip returns the current clip rectangle.
func (s *Surface) Clip() Rect { return s.clip }

// SetClip intersects rect with the surface bounds and installs it as the
// active clip rectangle; every mutation below is restricted to it.
func (s *Surface) SetClip(rect Rect) {
	s.clip = rect.Intersect(s.Bounds())
}

// Duplicate returns a deep copy of s, with a reset (full-surface) clip
// rect — mirrors SDL_DuplicateSurface's clip-reset behavior used by
// canvas.copy's full_surface/!scaled path.
func (s *Surface) Duplicate() *Surface {
	cp := make([]byte, len(s.pix))
	copy(cp, s.pix)
	return &Surface{
		width: s.width, height: s.height, pitch: s.pitch,
		format: s.format, pix: cp, clip: Rect{0, 0, s.width, s.height},
	}
}

// Scale returns a new surface resampled to (newW, newH) using the given
// mode, backed by golang.org/x/image/draw's scalers.
func (s *Surface) Scale(newW, newH int, mode ScaleMode) (*Surface, error) {
	if newW <= 0 || newH <= 0 {
		return nil, ErrInvalidDimensions
	}
	dst, err := New(newW, newH, s.format, true)
	if err != nil {
		return nil, err
	}
	scaler := scalerFor(mode)
	scaler.Scale(dst.AsImage(), dst.Bounds().toImageRect(), s.AsImage(), s.Bounds().toImageRect(), ximagedraw.Src, nil)
	return dst, nil
}

func scalerFor(mode ScaleMode) ximagedraw.Scaler {
	if mode == ScaleNearest {
		return ximagedraw.NearestNeighbor
	}
	return ximagedraw.ApproxBiLinear
}

func (r Rect) toImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// FillRect fills rect (clipped to the current clip rect) with color. When
// replace is true, or color is fully opaque, bytes are written directly;
// otherwise source-over compositing (pixel.Blend) is used. An empty
// intersection, or alpha==0 without replace, is a silent no-op.
func (s *Surface) FillRect(rect Rect, c Color, replace bool) {
	if c.A == 0 && !replace {
		return
	}
	r := rect.Intersect(s.clip)
	if r.Empty() {
		return
	}
	opaque := replace || c.A == 255
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if opaque {
				s.setRaw(x, y, c)
			} else {
				s.setRaw(x, y, Blend(s.getRaw(x, y), c, 255))
			}
		}
	}
}

// Blit copies srcRect of src (or the whole surface if srcRect is nil) to
// dstRect's origin (sized to match srcRect) on s, honoring mode. A nil
// srcRect copies the full source; a nil src, or a non-positive source
// rect dimension, silently returns.
func (s *Surface) Blit(src *Surface, srcRect *Rect, dstX, dstY int, mode BlendMode) {
	s.BlitScaled(src, srcRect, dstX, dstY, 0, 0, mode, ScaleNearest)
}

// BlitScaled is Blit with optional resizing to (dstW, dstH); dstW/dstH<=0
// means "use the source rect's own size" (no scaling).
func (s *Surface) BlitScaled(src *Surface, srcRect *Rect, dstX, dstY, dstW, dstH int, mode BlendMode, scaleMode ScaleMode) {
	if src == nil {
		return
	}
	sr := src.Bounds()
	if srcRect != nil {
		sr = *srcRect
	}
	if sr.W <= 0 || sr.H <= 0 {
		return
	}
	sr = sr.Intersect(src.Bounds())
	if sr.Empty() {
		return
	}
	if dstW <= 0 {
		dstW = sr.W
	}
	if dstH <= 0 {
		dstH = sr.H
	}

	source := src
	if dstW != sr.W || dstH != sr.H {
		scaled, err := src.cropAndScale(sr, dstW, dstH, scaleMode)
		if err != nil {
			rlog.Get().Warn("pixel: blit scale failed, skipping draw", "error", err)
			return
		}
		source = scaled
		sr = source.Bounds()
	}

	dst := Rect{dstX, dstY, dstW, dstH}.Intersect(s.clip)
	if dst.Empty() {
		return
	}
	offX := dst.X - dstX
	offY := dst.Y - dstY
	for y := 0; y < dst.H; y++ {
		for x := 0; x < dst.W; x++ {
			sc := source.getRaw(sr.X+offX+x, sr.Y+offY+y)
			if mode == BlendReplace {
				s.setRaw(dst.X+x, dst.Y+y, sc)
			} else {
				s.setRaw(dst.X+x, dst.Y+y, Blend(s.getRaw(dst.X+x, dst.Y+y), sc, 255))
			}
		}
	}
}

func (s *Surface) cropAndScale(rect Rect, w, h int, mode ScaleMode) (*Surface, error) {
	cropped, err := New(rect.W, rect.H, s.format, true)
	if err != nil {
		return nil, err
	}
	for y := 0; y < rect.H; y++ {
		for x := 0; x < rect.W; x++ {
			cropped.setRaw(x, y, s.getRaw(rect.X+x, rect.Y+y))
		}
	}
	return cropped.Scale(w, h, mode)
}

// getRaw/setRaw perform pixel access that ignores the clip rect but checks
// the surface bounds: an out-of-range read returns Transparent and an
// out-of-range write is dropped.
func (s *Surface) getRaw(x, y int) Color {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return Transparent
	}
	i := y*s.pitch + x*s.format.BytesPerPixel()
	switch s.format {
	case RGB24:
		return Color{R: s.pix[i], G: s.pix[i+1], B: s.pix[i+2], A: 255}
	default:
		return Color{R: s.pix[i], G: s.pix[i+1], B: s.pix[i+2], A: s.pix[i+3]}
	}
}

func (s *Surface) setRaw(x, y int, c Color) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	i := y*s.pitch + x*s.format.BytesPerPixel()
	s.pix[i], s.pix[i+1], s.pix[i+2] = c.R, c.G, c.B
	if s.format.HasAlpha() {
		s.pix[i+3] = c.A
	}
}

// At returns the pixel at (x,y) as a color.NRGBA. Surface itself is not an
// image.Image (its Bounds returns a Rect); AsImage's adapter uses At,
// ColorModel, ImageBounds and Set to satisfy image.Image/draw.Image, for
// example as the source and destination of golang.org/x/image/draw.
func (s *Surface) At(x, y int) color.Color {
	c := s.getRaw(x, y)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// ColorModel returns color.NRGBAModel, the model At reports in.
func (s *Surface) ColorModel() color.Model { return color.NRGBAModel }

// ImageBounds returns the surface bounds as an image.Rectangle (named to
// avoid colliding with the Rect-returning Bounds method used throughout
// this package).
func (s *Surface) ImageBounds() image.Rectangle { return s.Bounds().toImageRect() }

// Set replaces the pixel at (x,y) outright.
func (s *Surface) Set(x, y int, c color.Color) {
	r, g, b, a := c.RGBA()
	s.setRaw(x, y, Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)})
}

var (
	_ image.Image = (*imageAdapter)(nil)
	_ draw.Image  = (*imageAdapter)(nil)
)

// imageAdapter satisfies image.Image/draw.Image's exact Bounds signature
// (image.Rectangle) since Surface itself defines a conflicting Bounds.
type imageAdapter struct{ s *Surface }

func (a *imageAdapter) ColorModel() color.Model  { return a.s.ColorModel() }
func (a *imageAdapter) Bounds() image.Rectangle  { return a.s.ImageBounds() }
func (a *imageAdapter) At(x, y int) color.Color  { return a.s.At(x, y) }
func (a *imageAdapter) Set(x, y int, c color.Color) { a.s.Set(x, y, c) }

// AsImage adapts s to the standard image.Image/draw.Image interfaces.
func (s *Surface) AsImage() draw.Image { return &imageAdapter{s: s} }

// GetPixels returns a packed RGBA32 little-endian copy of the (x,y,w,h)
// sub-rect, row-major with no row padding — the wire format for
// Canvas.GetPixels.
func (s *Surface) GetPixels(x, y, w, h int) []byte {
	out := make([]byte, w*h*4)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			c := s.getRaw(x+col, y+row)
			i := (row*w + col) * 4
			out[i], out[i+1], out[i+2], out[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return out
}

// SetPixels overwrites the (x,y,w,h) sub-rect from packed RGBA32 bytes,
// with no blending (a direct memory overwrite, per spec's CoW/overwrite
// contract for Canvas.SetPixels). Per spec §9 Open Questions, a byte
// slice shorter than w*h*4 is trusted the same way the original trusts
// its caller: bytes beyond len(data) are left unchanged rather than
// causing a panic.
func (s *Surface) SetPixels(data []byte, x, y, w, h int) {
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			i := (row*w + col) * 4
			if i+4 > len(data) {
				return
			}
			s.setRaw(x+col, y+row, Color{R: data[i], G: data[i+1], B: data[i+2], A: data[i+3]})
		}
	}
}

// BlendMask composites c through an 8-bit coverage mask at (x,y), clipped
// to the current clip rect. This is the primitive glyph rasterization
// blends onto: each mask byte is c's alpha scaled by that pixel's
// coverage, fed through the same source-over formula FillRect uses.
func (s *Surface) BlendMask(x, y int, mask []byte, maskW, maskH, maskStride int, c Color) {
	r := Rect{x, y, maskW, maskH}.Intersect(s.clip)
	if r.Empty() {
		return
	}
	offX, offY := r.X-x, r.Y-y
	for row := 0; row < r.H; row++ {
		mi := (offY+row)*maskStride + offX
		for col := 0; col < r.W; col++ {
			coverage := mask[mi+col]
			if coverage == 0 {
				continue
			}
			px, py := r.X+col, r.Y+row
			s.setRaw(px, py, Blend(s.getRaw(px, py), c, coverage))
		}
	}
}

// MapRGBA packs c into this surface's native byte order.
func (s *Surface) MapRGBA(c Color) []byte {
	switch s.format {
	case RGB24:
		return []byte{c.R, c.G, c.B}
	default:
		return []byte{c.R, c.G, c.B, c.A}
	}
}

// UnmapRGBA unpacks a native-order pixel back into a Color.
func (s *Surface) UnmapRGBA(raw []byte) Color {
	switch s.format {
	case RGB24:
		return Color{R: raw[0], G: raw[1], B: raw[2], A: 255}
	default:
		return Color{R: raw[0], G: raw[1], B: raw[2], A: raw[3]}
	}
}
