package font

import "golang.org/x/text/unicode/norm"

// notdefFallback is the substitution glyph drawn when no face in a Group's
// fallback chain has the requested codepoint, following the original
// renderer's final fallback to U+25A1 (WHITE SQUARE) before giving up and
// leaving a space-sized gap.
const notdefFallback = '□'

// PositionedGlyph is one glyph of a shaped run, resolved to the specific
// Face in a Group that will draw it and placed relative to the run's pen
// origin.
type PositionedGlyph struct {
	Face     *Face
	GID      GlyphID
	X, Y     float64
	Advance  float64
	Cluster  int
	Rune     rune
	NotFound bool
}

// Group is an ordered fallback chain of Faces: style variants of the same
// family, or entirely different families brought in to cover codepoints
// the primary Face lacks. It mirrors the original renderer's RenFontGroup;
// unlike that fixed-slot array, the chain has no length limit.
type Group struct {
	faces []*Face
	sh    *shaper
}

// NewGroup builds a Group with primary as its first, preferred Face and any
// further faces as fallbacks consulted in order.
func NewGroup(primary *Face, fallbacks ...*Face) (*Group, error) {
	if primary == nil {
		return nil, ErrEmptyGroup
	}
	g := &Group{faces: append([]*Face{primary}, fallbacks...), sh: newShaper()}
	return g, nil
}

// AddFallback appends f to the end of the fallback chain.
func (g *Group) AddFallback(f *Face) {
	g.faces = append(g.faces, f)
}

// Primary returns the Group's first, preferred Face.
func (g *Group) Primary() *Face {
	if len(g.faces) == 0 {
		return nil
	}
	return g.faces[0]
}

// SetTabSize sets the tab width, in multiples of the space advance, on
// every Face in the chain, matching ren_font_group_set_tab_size.
func (g *Group) SetTabSize(n int) {
	for _, f := range g.faces {
		f.SetTabSize(n)
	}
}

// Run shapes text with the Group's primary Face, then resolves each
// resulting glyph against the fallback chain: a glyph HarfBuzz could not
// find in the primary Face (GID 0) is looked up by codepoint in each
// fallback Face in turn, then finally substituted with U+25A1. This
// mirrors font_group_get_glyph, which re-looks-up missing glyphs directly
// rather than re-shaping with the fallback font.
func (g *Group) Run(text string) []PositionedGlyph {
	primary := g.Primary()
	if primary == nil || text == "" {
		return nil
	}

	// Normalize to NFC before shaping so two byte-distinct but
	// canonically-equivalent strings (e.g. precomposed vs. combining-mark
	// sequences) shape identically and report identical widths, the
	// grapheme/text-equality contract this module guarantees at its
	// measurement boundary.
	text = norm.NFC.String(text)

	shaped := g.sh.shape(text, primary)
	runes := []rune(text)
	out := make([]PositionedGlyph, 0, len(shaped))

	var pen float64
	for _, sg := range shaped {
		r := runeForCluster(runes, sg.Cluster)

		pg := PositionedGlyph{
			Face:    primary,
			GID:     sg.GID,
			X:       pen + sg.XOffset,
			Y:       sg.YOffset,
			Advance: sg.XAdvance,
			Cluster: sg.Cluster,
			Rune:    r,
		}

		if sg.GID == 0 && r != 0 {
			pg = g.resolveFallback(pg, r, pen)
		}

		if r == '\t' {
			pg.Advance = primary.TabAdvance()
		}

		out = append(out, pg)
		pen += pg.Advance
	}
	return out
}

// resolveFallback re-looks-up r in the Group's fallback chain, then in the
// notdef substitution glyph, preserving pen position but swapping in the
// resolving Face and its own advance for the rune.
func (g *Group) resolveFallback(pg PositionedGlyph, r rune, pen float64) PositionedGlyph {
	for _, f := range g.faces[1:] {
		if gid, ok := f.glyphIndex(r); ok {
			pg.Face = f
			pg.GID = gid
			pg.Advance = f.advance(gid)
			return pg
		}
	}
	if r > 0xFF && r != notdefFallback {
		if gid, ok := g.faces[0].glyphIndex(notdefFallback); ok {
			pg.Face = g.faces[0]
			pg.GID = gid
			pg.Advance = g.faces[0].advance(gid)
			return pg
		}
	}
	pg.NotFound = true
	pg.Advance = g.faces[0].SpaceAdvance()
	return pg
}

// GetWidth returns the total pen advance of text shaped with the Group,
// converted from the pixel space glyph metrics are measured in to point
// space by dividing by scale — the destination surface's pixels-per-point
// factor — per spec §4.2.3 step 4. Pass 1 for an unscaled (1:1 pixel to
// point) surface.
func (g *Group) GetWidth(text string, scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	var w float64
	for _, pg := range g.Run(text) {
		w += pg.Advance
	}
	return w / scale
}

func runeForCluster(runes []rune, cluster int) rune {
	if cluster < 0 || cluster >= len(runes) {
		return 0
	}
	return runes[cluster]
}
