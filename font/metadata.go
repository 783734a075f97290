package font

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Metadata describes the identifying strings and structural properties of
// a font file, read from its name table. Fields are empty when the font
// does not carry the corresponding entry.
type Metadata struct {
	Family            string
	Subfamily         string
	FullName          string
	PostScriptName    string
	TypographicFamily string
	Typographic       string
	Monospace         bool
}

// GetMetadata reads identifying metadata from src's name table, preferring
// the typographic family/subfamily entries (name IDs 16/17) over the
// legacy family/subfamily entries (1/2) when both are present, the same
// preference order the original renderer's font_get_metadata applied
// across the English-locale Macintosh and Windows platform records.
func GetMetadata(src *Source) (Metadata, error) {
	sf, err := src.outlineFont()
	if err != nil {
		return Metadata{}, err
	}

	var buf sfnt.Buffer
	md := Metadata{
		Family:            nameOrEmpty(sf, &buf, sfnt.NameIDFamily),
		Subfamily:         nameOrEmpty(sf, &buf, sfnt.NameIDSubfamily),
		FullName:          nameOrEmpty(sf, &buf, sfnt.NameIDFull),
		PostScriptName:    nameOrEmpty(sf, &buf, sfnt.NameIDPostScript),
		TypographicFamily: nameOrEmpty(sf, &buf, sfnt.NameIDTypographicFamily),
		Typographic:       nameOrEmpty(sf, &buf, sfnt.NameIDTypographicSubfamily),
	}
	if md.TypographicFamily != "" {
		md.Family = md.TypographicFamily
	}
	if md.Typographic != "" {
		md.Subfamily = md.Typographic
	}

	md.Monospace = isMonospace(sf, &buf)
	return md, nil
}

func nameOrEmpty(sf *opentype.Font, buf *sfnt.Buffer, id sfnt.NameID) string {
	s, err := sf.Name(buf, id)
	if err != nil {
		return ""
	}
	return s
}

// isMonospace approximates FT_IS_FIXED_WIDTH by comparing the advance
// widths of two glyphs of very different natural width ('i' and 'm'); in a
// fixed-pitch font these are equal, in a proportional font they are not.
// The font's "post" table fixed-pitch flag isn't exposed by this stack, so
// this heuristic is the documented substitute.
func isMonospace(sf *opentype.Font, buf *sfnt.Buffer) bool {
	narrow, err1 := sf.GlyphIndex(buf, 'i')
	wide, err2 := sf.GlyphIndex(buf, 'm')
	if err1 != nil || err2 != nil || narrow == 0 || wide == 0 {
		return false
	}
	const probePPEM = 64 << 6
	a1, err1 := sf.GlyphAdvance(buf, narrow, probePPEM, font.HintingNone)
	a2, err2 := sf.GlyphAdvance(buf, wide, probePPEM, font.HintingNone)
	if err1 != nil || err2 != nil {
		return false
	}
	return a1 == a2
}
