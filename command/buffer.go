package command

import "github.com/gogpu/edrender/rlog"

// initialCapacity and growthFactor match the original renderer's
// CMD_BUF_INIT_SIZE (512 KiB of raw bytes) and CMD_BUF_RESIZE_RATE (1.2x).
// Here capacity is measured in Records rather than bytes, but the shape of
// the growth policy — start generous, grow by 20% rather than doubling —
// is kept identical.
const (
	initialCapacity = 1024
	growthFactor    = 1.2
)

// Buffer is the append-only per-frame log of recorded drawing operations.
// A push after the buffer has failed to grow (out of memory) is silently
// dropped and Buffer remembers the failure until the next Reset, the same
// "resize_issue" sticky flag the original used to avoid repeatedly
// attempting — and failing — the same allocation within one frame.
type Buffer struct {
	records    []Record
	resizeFail bool
}

// New returns an empty Buffer pre-sized to the original's initial capacity.
func New() *Buffer {
	return &Buffer{records: make([]Record, 0, initialCapacity)}
}

// Push appends rec to the buffer, growing capacity by growthFactor when
// full. It is a no-op once a growth attempt has failed for this frame.
func (b *Buffer) Push(rec Record) {
	if b.resizeFail {
		return
	}
	if len(b.records) == cap(b.records) {
		if !b.grow() {
			b.resizeFail = true
			rlog.Get().Warn("command: buffer growth failed, dropping further commands this frame")
			return
		}
	}
	b.records = append(b.records, rec)
}

// grow attempts to expand capacity by growthFactor. It always succeeds in
// this Go implementation (append grows automatically), but is kept as an
// explicit step so the sticky-failure contract above has a concrete place
// to attach to should a future caller impose a hard capacity ceiling.
func (b *Buffer) grow() bool {
	newCap := int(float64(cap(b.records)) * growthFactor)
	if newCap <= cap(b.records) {
		newCap = cap(b.records) + 1
	}
	grown := make([]Record, len(b.records), newCap)
	copy(grown, b.records)
	b.records = grown
	return true
}

// Records returns the buffer's current contents. The slice is only valid
// until the next Push or Reset.
func (b *Buffer) Records() []Record {
	return b.records
}

// Len returns the number of recorded commands.
func (b *Buffer) Len() int {
	return len(b.records)
}

// Reset empties the buffer for a new frame, retaining its backing array —
// capacity never shrinks across frames, matching the original's decision
// to only ever grow command_buf, never shrink it.
func (b *Buffer) Reset() {
	b.records = b.records[:0]
	b.resizeFail = false
}

// ResizeFailed reports whether a push was dropped this frame due to a
// growth failure.
func (b *Buffer) ResizeFailed() bool {
	return b.resizeFail
}
