package window

import (
	"testing"

	"github.com/gogpu/edrender/pixel"
)

type fakeOSWindow struct {
	pointW, pointH int
	pixelW, pixelH int
	minW, minH     int
	shown          bool
	presented      []pixel.Rect
	refresh        int
}

func (f *fakeOSWindow) PointSize() (int, int)    { return f.pointW, f.pointH }
func (f *fakeOSWindow) PixelSize() (int, int)    { return f.pixelW, f.pixelH }
func (f *fakeOSWindow) SetMinimumSize(w, h int)  { f.minW, f.minH = w, h }
func (f *fakeOSWindow) Show()                    { f.shown = true }
func (f *fakeOSWindow) RefreshRate() int         { return f.refresh }
func (f *fakeOSWindow) Present(r []pixel.Rect)    { f.presented = r }

func TestCreateAppliesMinimumSizeAndScale(t *testing.T) {
	os := &fakeOSWindow{pointW: 800, pointH: 600, pixelW: 1600, pixelH: 1200, refresh: 60}
	tgt, err := Create(os)
	if err != nil {
		t.Fatal(err)
	}
	if os.minW != MinWidth || os.minH != MinHeight {
		t.Errorf("SetMinimumSize = (%d,%d), want (%d,%d)", os.minW, os.minH, MinWidth, MinHeight)
	}
	sx, sy := tgt.ScaleFactor()
	if sx != 2 || sy != 2 {
		t.Errorf("ScaleFactor = (%v,%v), want (2,2)", sx, sy)
	}
	if tgt.Surface().Width() != 1600 || tgt.Surface().Height() != 1200 {
		t.Errorf("surface size = (%d,%d), want (1600,1200)", tgt.Surface().Width(), tgt.Surface().Height())
	}
}

func TestResizeRebuildsSurfaceOnPixelSizeChange(t *testing.T) {
	os := &fakeOSWindow{pointW: 800, pointH: 600, pixelW: 800, pixelH: 600, refresh: 60}
	tgt, err := Create(os)
	if err != nil {
		t.Fatal(err)
	}
	before := tgt.Surface()

	os.pointW, os.pointH = 1000, 700
	os.pixelW, os.pixelH = 1000, 700
	if err := tgt.Resize(); err != nil {
		t.Fatal(err)
	}
	if tgt.Surface() == before {
		t.Fatal("Resize should rebuild the surface when pixel dimensions change")
	}
	if tgt.Surface().Width() != 1000 {
		t.Errorf("surface width = %d, want 1000", tgt.Surface().Width())
	}
}

func TestPresentShowsWindowOnlyOnce(t *testing.T) {
	os := &fakeOSWindow{pointW: 100, pointH: 100, pixelW: 100, pixelH: 100}
	tgt, err := Create(os)
	if err != nil {
		t.Fatal(err)
	}
	tgt.Present(nil)
	if !os.shown {
		t.Fatal("first Present should show the window")
	}
	os.shown = false
	tgt.Present(nil)
	if os.shown {
		t.Fatal("Present should only call Show once across the window's lifetime")
	}
}

func TestToPixelRectScales(t *testing.T) {
	os := &fakeOSWindow{pointW: 400, pointH: 300, pixelW: 800, pixelH: 600}
	tgt, err := Create(os)
	if err != nil {
		t.Fatal(err)
	}
	got := tgt.ToPixelRect(pixel.Rect{X: 10, Y: 20, W: 30, H: 40})
	want := pixel.Rect{X: 20, Y: 40, W: 60, H: 80}
	if got != want {
		t.Errorf("ToPixelRect = %+v, want %+v", got, want)
	}
}
