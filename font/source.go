package font

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/opentype"
)

// Source holds a font file's raw bytes and the two parsed representations
// built from them: a go-text Font used for HarfBuzz shaping (codepoints to
// positioned glyph indices), and an x/image opentype/sfnt Font used for
// outline extraction and metrics (a glyph index to its vector outline).
// Many Faces (different sizes, styles, or fallback slots) can share one
// Source without re-parsing or re-reading the file. This mirrors the
// stream-then-parse-once shape the original renderer used when it opened an
// FT_Face through an SDL_RWops: the bytes are read once up front, not
// re-read per glyph.
type Source struct {
	path string
	data []byte

	mu        sync.Mutex
	shapeFont *gotext.Font
	outlines  *opentype.Font
}

// NewSourceFromBytes wraps already-loaded font file bytes.
func NewSourceFromBytes(name string, data []byte) *Source {
	return &Source{path: name, data: data}
}

// LoadSource reads a font file from disk and wraps its bytes in a Source.
func LoadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("font: load source %q: %w", path, err)
	}
	return &Source{path: path, data: data}, nil
}

// Path returns the filesystem path this Source was loaded from, or the name
// it was constructed with for in-memory sources.
func (s *Source) Path() string {
	return s.path
}

// shapingFont parses the font bytes for shaping on first use and caches the
// result. *gotext.Font is documented as safe for concurrent use once built,
// so every Face sharing this Source can call shapingFont freely.
func (s *Source) shapingFont() (*gotext.Font, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shapeFont != nil {
		return s.shapeFont, nil
	}
	face, err := gotext.ParseTTF(bytes.NewReader(s.data))
	if err != nil {
		return nil, fmt.Errorf("font: parse %q: %w", s.path, err)
	}
	s.shapeFont = face.Font
	return s.shapeFont, nil
}

// outlineFont parses the font bytes for outline/metrics access on first use
// and caches the result. *opentype.Font (a type alias for sfnt.Font) is
// safe for concurrent reads once parsed; per-call state lives in the
// caller-supplied sfnt.Buffer, not in the Font itself.
func (s *Source) outlineFont() (*opentype.Font, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outlines != nil {
		return s.outlines, nil
	}
	f, err := opentype.Parse(s.data)
	if err != nil {
		return nil, fmt.Errorf("font: parse %q: %w", s.path, err)
	}
	s.outlines = f
	return s.outlines, nil
}
