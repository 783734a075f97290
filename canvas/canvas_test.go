package canvas

import (
	"testing"

	"github.com/gogpu/edrender/pixel"
)

func TestRetainSharesPixelsUntilWrite(t *testing.T) {
	c1, err := New(4, 4, pixel.RGBA32, true)
	if err != nil {
		t.Fatal(err)
	}
	c2 := c1.Retain()

	if c1.Surface() != c2.Surface() {
		t.Fatal("Retain should share the backing surface before any write")
	}

	c2.Clear(pixel.Opaque(255, 0, 0))

	if c1.Surface() == c2.Surface() {
		t.Fatal("writing through one handle should detach it via copy-on-write")
	}

	px := c1.GetPixels(0, 0, 1, 1)
	if px[0] != 0 || px[3] != 0 {
		t.Errorf("original handle's pixels should be unaffected by the retained handle's write, got %v", px)
	}
}

func TestDrawRectFillsOpaque(t *testing.T) {
	c, err := New(4, 4, pixel.RGBA32, true)
	if err != nil {
		t.Fatal(err)
	}
	c.DrawRect(pixel.Rect{X: 0, Y: 0, W: 4, H: 4}, pixel.Opaque(10, 20, 30), true)
	px := c.GetPixels(1, 1, 1, 1)
	if px[0] != 10 || px[1] != 20 || px[2] != 30 || px[3] != 255 {
		t.Errorf("GetPixels() = %v, want [10 20 30 255]", px)
	}
}

func TestCopyFullSizeDuplicatesIndependently(t *testing.T) {
	c, err := New(2, 2, pixel.RGBA32, true)
	if err != nil {
		t.Fatal(err)
	}
	c.DrawRect(pixel.Rect{X: 0, Y: 0, W: 2, H: 2}, pixel.Opaque(1, 2, 3), true)

	cp, err := c.Copy(pixel.Rect{}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	cp.Clear(pixel.Transparent)

	px := c.GetPixels(0, 0, 1, 1)
	if px[0] != 1 {
		t.Errorf("original should be unaffected by mutating the copy, got %v", px)
	}
}
