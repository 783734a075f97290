package canvas

import "errors"

var (
	// ErrUnsupportedFormat names an image codec this module does not decode
	// or encode. The original could lean on SDL_image's broad format
	// support (including AVIF); this module sticks to what the Go standard
	// library decodes natively. No function in this package returns it:
	// LoadImage reports an undecodable format through the wrapped
	// image.Decode error, and SaveImage always encodes PNG.
	ErrUnsupportedFormat = errors.New("canvas: unsupported image format")

	// ErrClosed names use of a Canvas after Destroy. Canvas methods do not
	// check for a destroyed handle and do not return it.
	ErrClosed = errors.New("canvas: use of destroyed canvas")
)
