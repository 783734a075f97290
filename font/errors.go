package font

import "errors"

var (
	// ErrNotLoaded is returned when an operation needs a parsed font but the
	// Source has not been opened yet.
	ErrNotLoaded = errors.New("font: source not loaded")

	// ErrNoGlyph names a glyph missing from a font. No function in this
	// package returns it: a missing glyph is resolved through the Group's
	// fallback chain, and rasterization reports it as an empty bitmap.
	ErrNoGlyph = errors.New("font: glyph not present")

	// ErrEmptyGroup is returned when an operation needs at least one Face
	// in a Group and none has been added.
	ErrEmptyGroup = errors.New("font: group has no faces")

	// ErrClosed is returned by Face.Copy after Close has been called. Other
	// Face methods do not check for a closed Face, and Source has no Close.
	ErrClosed = errors.New("font: use of closed font")
)
