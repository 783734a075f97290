package font

import (
	"math"

	"github.com/gogpu/edrender/pixel"
)

// DrawRun shapes text with g, rasterizes each resolved glyph through its
// Face's Atlas, and blends the coverage onto dst at baseline (x, y). It
// returns the horizontal extent of the run, the same value GetWidth would
// report, so callers can chain runs without re-measuring.
//
// Subpixel phase selection mirrors ren_draw_text: each glyph's phase is
// chosen from the fractional part of its pen position, so antialiasing
// mode AntialiasSubpixel only pays off when dst's device pixels are
// actually split into subpixel columns by the caller.
func DrawRun(dst *pixel.Surface, g *Group, text string, x, y float64, c pixel.Color) float64 {
	glyphs := g.Run(text)
	if len(glyphs) == 0 {
		return 0
	}

	origin := x
	pen := x
	runStart := x
	var lastRunStyle Style
	havePrevStyle := false

	for _, pg := range glyphs {
		penX := origin + pg.X
		penY := y + pg.Y

		if !pg.NotFound {
			phase := subpixelPhaseOf(penX, pg.Face.opts.antialiasing)
			bmp := pg.Face.atlas.Glyph(pg.GID, phase)
			if !bmp.Empty && bmp.Mask != nil {
				drawX := int(math.Floor(penX)) + bmp.Left
				drawY := int(math.Round(penY)) + bmp.Top
				dst.BlendMask(drawX, drawY, bmp.Mask.Pix, bmp.Mask.Rect.Dx(), bmp.Mask.Rect.Dy(), bmp.Mask.Stride, c)
			}
		}

		style := pg.Face.Style()
		if havePrevStyle && style != lastRunStyle {
			drawDecorations(dst, lastRunStyle, runStart, penX, y, pg.Face, c)
			runStart = penX
		}
		lastRunStyle = style
		havePrevStyle = true

		pen += pg.Advance
	}

	drawDecorations(dst, lastRunStyle, runStart, pen, y, g.Primary(), c)
	return pen - origin
}

func subpixelPhaseOf(penX float64, aa Antialiasing) int {
	if aa != AntialiasSubpixel {
		return 0
	}
	frac := penX - math.Floor(penX)
	return int(frac * subpixelPhases)
}

// drawDecorations draws the underline/strikethrough rules for a completed
// span of same-style glyphs, following the original renderer's approach of
// tracking a run's start and end pen position and drawing one rect per
// decoration rather than per glyph.
func drawDecorations(dst *pixel.Surface, style Style, x0, x1 float64, baseline float64, f *Face, c pixel.Color) {
	if f == nil || x1 <= x0 {
		return
	}
	thickness := int(math.Ceil(f.UnderlineThickness()))
	if thickness < 1 {
		thickness = 1
	}
	left := int(math.Floor(x0))
	width := int(math.Ceil(x1)) - left

	if style.Has(StyleUnderline) {
		y := int(math.Round(baseline)) + thickness
		dst.FillRect(pixel.Rect{X: left, Y: y, W: width, H: thickness}, c, false)
	}
	if style.Has(StyleStrikethrough) {
		y := int(math.Round(baseline - f.Height()/3))
		dst.FillRect(pixel.Rect{X: left, Y: y, W: width, H: thickness}, c, false)
	}
}
