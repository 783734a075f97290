// Package pixel implements the mutable 2D pixel surface at the base of the
// rendering pipeline: pixel formats, rectangles, and a software Surface
// with clip-aware fill/blit operations.
package pixel

// Color is a 4-channel 8-bit-per-channel color. A=0 is fully transparent,
// A=255 is fully opaque.
type Color struct {
	R, G, B, A uint8
}

// Opaque returns a fully opaque color from 8-bit channels.
func Opaque(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

var (
	Transparent = Color{}
	Black       = Color{A: 255}
	White       = Color{R: 255, G: 255, B: 255, A: 255}
)

// Blend composes src over dst per color channel using the source-over
// formula of the draw_rect contract:
//
//	a   = src.a*alpha/255
//	out = (src*a*255 + dst*(65025 - a*255) + 32767) / 65025
//
// alpha is an additional 0-255 multiplier applied to src's own alpha
// (used by canvas draw_canvas composition); pass 255 for a plain
// source-over blend using src.A alone.
func Blend(dst, src Color, alpha uint8) Color {
	a := uint32(src.A) * uint32(alpha) / 255
	if a == 0 {
		return dst
	}
	if a == 255 {
		return src
	}
	ia := uint32(65025) - a*255
	return Color{
		R: uint8((uint32(src.R)*a*255 + uint32(dst.R)*ia + 32767) / 65025),
		G: uint8((uint32(src.G)*a*255 + uint32(dst.G)*ia + 32767) / 65025),
		B: uint8((uint32(src.B)*a*255 + uint32(dst.B)*ia + 32767) / 65025),
		A: blendAlphaChannel(dst.A, uint8(a)),
	}
}

func blendAlphaChannel(dstA, a uint8) uint8 {
	// out_a = src_a + dst_a*(1 - src_a); matches SDL's destination-alpha
	// behavior used by the C renderer when the destination itself carries
	// an alpha channel (canvases are RGBA32).
	ia := uint32(255) - uint32(a)
	return uint8(uint32(a) + uint32(dstA)*ia/255)
}
