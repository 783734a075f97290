package command

import (
	"testing"

	"github.com/gogpu/edrender/pixel"
)

func TestBufferPushAndReset(t *testing.T) {
	b := New()
	if b.Len() != 0 {
		t.Fatalf("new buffer should be empty, got len %d", b.Len())
	}
	b.Push(Record{Type: DrawRect, Rect: pixel.Rect{X: 0, Y: 0, W: 10, H: 10}})
	b.Push(Record{Type: SetClip, Rect: pixel.Rect{X: 0, Y: 0, W: 100, H: 100}})
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("Reset() should empty the buffer, got len %d", b.Len())
	}
	if b.ResizeFailed() {
		t.Fatal("ResizeFailed() should be false after Reset")
	}
}

func TestBufferGrowsBeyondInitialCapacity(t *testing.T) {
	b := New()
	for i := 0; i < initialCapacity+10; i++ {
		b.Push(Record{Type: DrawRect})
	}
	if b.Len() != initialCapacity+10 {
		t.Fatalf("Len() = %d, want %d", b.Len(), initialCapacity+10)
	}
	if b.ResizeFailed() {
		t.Fatal("growth should succeed without setting ResizeFailed")
	}
}

func TestBufferCapacityNeverShrinksOnReset(t *testing.T) {
	b := New()
	for i := 0; i < initialCapacity*2; i++ {
		b.Push(Record{Type: DrawRect})
	}
	grownCap := cap(b.records)
	b.Reset()
	if cap(b.records) < grownCap {
		t.Fatalf("capacity shrank on Reset: was %d, now %d", grownCap, cap(b.records))
	}
}
