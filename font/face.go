package font

import (
	"fmt"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Option configures a Face at Load or Copy time.
type Option func(*faceOptions)

type faceOptions struct {
	antialiasing Antialiasing
	hinting      Hinting
	style        Style
	tabSize      int
}

func defaultFaceOptions() faceOptions {
	return faceOptions{
		antialiasing: AntialiasGrayscale,
		hinting:      HintingFull,
		tabSize:      2,
	}
}

// WithAntialiasing sets the Face's rasterization mode.
func WithAntialiasing(a Antialiasing) Option {
	return func(o *faceOptions) { o.antialiasing = a }
}

// WithHinting sets the Face's grid-fitting mode.
func WithHinting(h Hinting) Option {
	return func(o *faceOptions) { o.hinting = h }
}

// WithStyle sets the synthetic style transforms and decorations applied to
// the Face's glyphs.
func WithStyle(s Style) Option {
	return func(o *faceOptions) { o.style = s }
}

// WithTabSize sets the tab width in multiples of the space advance.
func WithTabSize(n int) Option {
	return func(o *faceOptions) { o.tabSize = n }
}

// Face is a font loaded at a specific pixel size with a specific style and
// rendering configuration. It owns an Atlas of rasterized glyph bitmaps; a
// Group strings several Faces together into a fallback chain.
type Face struct {
	source *Source
	size   float64
	opts   faceOptions

	unitsPerEm   int32
	height       float64
	baseline     float64
	spaceAdvance float64
	tabAdvance   float64
	underline    float64

	atlas  *Atlas
	closed bool
}

// Load opens a Face from src at the given pixel size.
func Load(src *Source, size float64, opts ...Option) (*Face, error) {
	if src == nil {
		return nil, ErrNotLoaded
	}
	o := defaultFaceOptions()
	for _, opt := range opts {
		opt(&o)
	}

	f := &Face{source: src, size: size, opts: o}
	if err := f.computeMetrics(); err != nil {
		return nil, err
	}
	f.atlas = newAtlas(f)
	return f, nil
}

// Copy returns a new Face sharing this Face's Source, re-rendered at a
// different size and/or with overridden options. Options not passed are
// inherited from the receiver, mirroring ren_font_copy's "-1 means keep"
// convention for unspecified parameters.
func (f *Face) Copy(size float64, opts ...Option) (*Face, error) {
	if f.closed {
		return nil, ErrClosed
	}
	o := f.opts
	for _, opt := range opts {
		opt(&o)
	}
	cp := &Face{source: f.source, size: size, opts: o}
	if err := cp.computeMetrics(); err != nil {
		return nil, err
	}
	cp.atlas = newAtlas(cp)
	return cp, nil
}

// Close releases the Face's rasterized glyph cache. The underlying Source
// (and any sibling Faces built from it) is unaffected.
func (f *Face) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.atlas = nil
	return nil
}

// Size returns the Face's pixel size.
func (f *Face) Size() float64 { return f.size }

// Style returns the Face's synthetic style bitset.
func (f *Face) Style() Style { return f.opts.style }

// Antialiasing returns the Face's rasterization mode.
func (f *Face) Antialiasing() Antialiasing { return f.opts.antialiasing }

// Height returns the recommended line height in pixels.
func (f *Face) Height() float64 { return f.height }

// Baseline returns the distance from a line's top to its baseline, in
// pixels.
func (f *Face) Baseline() float64 { return f.baseline }

// SpaceAdvance returns the advance width of the space glyph in pixels.
func (f *Face) SpaceAdvance() float64 { return f.spaceAdvance }

// TabAdvance returns the advance width used for a tab stop in pixels.
func (f *Face) TabAdvance() float64 { return f.tabAdvance }

// UnderlineThickness returns the stroke width used for underline and
// strikethrough decorations, in pixels.
func (f *Face) UnderlineThickness() float64 { return f.underline }

// SetTabSize changes the tab width, in multiples of the space advance, and
// recomputes TabAdvance. n <= 0 is treated as 1.
func (f *Face) SetTabSize(n int) {
	if n <= 0 {
		n = 1
	}
	f.opts.tabSize = n
	f.tabAdvance = f.spaceAdvance * float64(n)
}

// ppem returns the Face's size as a 26.6 fixed-point pixels-per-em value.
func (f *Face) ppem() fixed.Int26_6 {
	return fixed.Int26_6(math.Round(f.size * 64))
}

func (f *Face) hinting() font.Hinting {
	switch f.opts.hinting {
	case HintingNone:
		return font.HintingNone
	case HintingSlight:
		return font.HintingVertical
	default:
		return font.HintingFull
	}
}

// computeMetrics loads face-wide metrics (height, baseline, space advance)
// from the underlying outline font, following ren_font_load's derivation:
// height and baseline are the font's own hhea-derived ascent/descent
// scaled to the requested size, and the tab advance defaults to twice the
// space glyph's advance.
func (f *Face) computeMetrics() error {
	sf, err := f.source.outlineFont()
	if err != nil {
		return err
	}
	f.unitsPerEm = int32(sf.UnitsPerEm())

	var buf sfnt.Buffer
	m, err := sf.Metrics(&buf, f.ppem(), f.hinting())
	if err != nil {
		return fmt.Errorf("font: metrics: %w", err)
	}
	f.height = fixed26ToFloat(m.Height)
	f.baseline = fixed26ToFloat(m.Ascent)
	if f.height <= 0 {
		f.height = fixed26ToFloat(m.Ascent - m.Descent)
	}
	f.underline = math.Ceil(f.height / 14.0)

	spaceGID, err := sf.GlyphIndex(&buf, ' ')
	if err == nil && spaceGID != 0 {
		adv, err := sf.GlyphAdvance(&buf, spaceGID, f.ppem(), f.hinting())
		if err == nil {
			f.spaceAdvance = fixed26ToFloat(adv)
		}
	}
	if f.spaceAdvance <= 0 {
		f.spaceAdvance = f.size / 2
	}
	size := f.opts.tabSize
	if size <= 0 {
		size = 2
	}
	f.tabAdvance = f.spaceAdvance * float64(size)
	return nil
}

// glyphIndex resolves a codepoint to a glyph index in this Face's font,
// returning (0, false) when the font has no glyph for it.
func (f *Face) glyphIndex(r rune) (GlyphID, bool) {
	sf, err := f.source.outlineFont()
	if err != nil {
		return 0, false
	}
	var buf sfnt.Buffer
	gid, err := sf.GlyphIndex(&buf, r)
	if err != nil || gid == 0 {
		return 0, false
	}
	return GlyphID(gid), true
}

// advance returns the advance width, in pixels, of gid in this Face.
func (f *Face) advance(gid GlyphID) float64 {
	sf, err := f.source.outlineFont()
	if err != nil {
		return f.spaceAdvance
	}
	var buf sfnt.Buffer
	adv, err := sf.GlyphAdvance(&buf, sfnt.GlyphIndex(gid), f.ppem(), f.hinting())
	if err != nil {
		return f.spaceAdvance
	}
	return fixed26ToFloat(adv)
}

func fixed26ToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
