package font

import (
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// shapedGlyph is one HarfBuzz-shaped glyph: a glyph index plus its pen
// offset and advance relative to the previous glyph in the run, and the
// rune index (into the shaped text's []rune) of the cluster that produced
// it.
type shapedGlyph struct {
	GID      GlyphID
	Cluster  int
	XOffset  float64
	YOffset  float64
	XAdvance float64
}

// shaper wraps go-text/typesetting's HarfBuzz shaping engine. It is the
// direct analogue of the original renderer's use of hb_shape against the
// primary font in a font group; fallback to other fonts happens afterward,
// per missing glyph, not by re-shaping.
type shaper struct {
	pool sync.Pool
}

func newShaper() *shaper {
	return &shaper{pool: sync.Pool{New: func() any { return &shaping.HarfbuzzShaper{} }}}
}

func (s *shaper) shape(text string, f *Face) []shapedGlyph {
	if text == "" {
		return nil
	}
	gf, err := f.source.shapingFont()
	if err != nil {
		return nil
	}
	face := gotext.NewFace(gf)
	runes := []rune(text)

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      face,
		Size:      fixed.Int26_6(f.size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.pool.Put(hb)

	return convertShaped(out.Glyphs)
}

func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func convertShaped(glyphs []shaping.Glyph) []shapedGlyph {
	if len(glyphs) == 0 {
		return nil
	}
	out := make([]shapedGlyph, len(glyphs))
	for i, g := range glyphs {
		out[i] = shapedGlyph{
			GID:      GlyphID(uint16(g.GlyphID)),
			Cluster:  g.TextIndex(),
			XOffset:  fixed26ToFloat(g.XOffset),
			YOffset:  fixed26ToFloat(g.YOffset),
			XAdvance: fixed26ToFloat(g.Advance),
		}
	}
	return out
}
