package frame

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/gogpu/edrender/command"
	"github.com/gogpu/edrender/dirty"
	"github.com/gogpu/edrender/pixel"
)

// hashBufPool reuses the scratch buffer hashRecord encodes a Record's
// fields into, so hashing a frame's worth of commands doesn't allocate
// per command.
var hashBufPool = sync.Pool{New: func() any { b := make([]byte, 0, 256); return &b }}

func getHashBuf() *[]byte {
	b := hashBufPool.Get().(*[]byte)
	*b = (*b)[:0]
	return b
}

func putHashBuf(b *[]byte) { hashBufPool.Put(b) }

// hashRecord computes the FNV-1a hash of rec's field contents, the Go
// stand-in for the original's hashing whatever raw bytes a command
// happened to occupy in its byte-arena buffer. Go's Record is a tagged
// struct with slice and string fields rather than a flat byte blob, so
// there is nothing to point a hash function at directly; this encodes
// the fields that affect what ends up on screen into a scratch buffer
// and hashes that instead, so two structurally identical commands hash
// identically and any visible difference changes the hash. DrawText and
// DrawCanvas records include their FaceRef/CanvasRef, which the Target
// assigns fresh in every frame, so those two kinds hash differently from
// frame to frame and re-dirty their cells on every EndFrame; the hash
// carries no canvas content version.
func hashRecord(rec command.Record) uint32 {
	buf := getHashBuf()
	defer putHashBuf(buf)

	*buf = append(*buf, byte(rec.Type))
	appendRect(buf, rec.Rect)

	switch rec.Type {
	case command.SetClip:
		appendRect(buf, rec.ClipRect)
	case command.DrawRect:
		appendColor(buf, rec.FillColor)
	case command.DrawText:
		*buf = append(*buf, rec.Text...)
		appendFloat(buf, rec.TextX)
		appendFloat(buf, rec.TextY)
		appendColor(buf, rec.TextColor)
		appendUint32(buf, rec.FaceRef)
		appendUint32(buf, uint32(rec.TabSize))
	case command.DrawPoly:
		for _, p := range rec.Points {
			appendFloat(buf, p.X)
			appendFloat(buf, p.Y)
		}
		appendColor(buf, rec.PolyColor)
	case command.DrawCanvas:
		appendUint32(buf, rec.CanvasRef)
		appendUint32(buf, uint32(rec.CanvasSrcX))
		appendUint32(buf, uint32(rec.CanvasSrcY))
		if rec.CanvasBlend {
			*buf = append(*buf, 1)
		} else {
			*buf = append(*buf, 0)
		}
	}

	return dirty.HashBytes(*buf)
}

func appendRect(buf *[]byte, r pixel.Rect) {
	appendUint32(buf, uint32(r.X))
	appendUint32(buf, uint32(r.Y))
	appendUint32(buf, uint32(r.W))
	appendUint32(buf, uint32(r.H))
}

func appendColor(buf *[]byte, c pixel.Color) {
	*buf = append(*buf, c.R, c.G, c.B, c.A)
}

func appendUint32(buf *[]byte, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	*buf = append(*buf, tmp[:]...)
}

func appendFloat(buf *[]byte, v float64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(v))
	*buf = append(*buf, tmp[:]...)
}
