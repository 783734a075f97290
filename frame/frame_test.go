package frame

import (
	"testing"

	"github.com/gogpu/edrender/pixel"
	"github.com/gogpu/edrender/window"
)

type fakeOSWindow struct {
	w, h      int
	presented [][]pixel.Rect
	shown     bool
}

func (f *fakeOSWindow) PointSize() (int, int)   { return f.w, f.h }
func (f *fakeOSWindow) PixelSize() (int, int)   { return f.w, f.h }
func (f *fakeOSWindow) SetMinimumSize(w, h int) {}
func (f *fakeOSWindow) Show()                   { f.shown = true }
func (f *fakeOSWindow) RefreshRate() int        { return 60 }
func (f *fakeOSWindow) Present(r []pixel.Rect)  { f.presented = append(f.presented, r) }

func newTestTarget(t *testing.T, w, h int) (*Target, *fakeOSWindow) {
	t.Helper()
	os := &fakeOSWindow{w: w, h: h}
	win, err := window.Create(os)
	if err != nil {
		t.Fatal(err)
	}
	return NewTarget(win), os
}

func TestBeginEndFrameRoundTrip(t *testing.T) {
	tgt, os := newTestTarget(t, 100, 100)

	if err := BeginFrame(tgt); err != nil {
		t.Fatal(err)
	}
	if err := tgt.DrawRect(pixel.Rect{X: 0, Y: 0, W: 10, H: 10}, pixel.Opaque(255, 0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := EndFrame(tgt); err != nil {
		t.Fatal(err)
	}

	if len(os.presented) != 1 || len(os.presented[0]) == 0 {
		t.Fatalf("expected a non-empty present call, got %v", os.presented)
	}
	if !os.shown {
		t.Fatal("first end_frame should show the window")
	}
}

func TestBeginFrameRejectsDoubleRecording(t *testing.T) {
	tgt1, _ := newTestTarget(t, 50, 50)
	tgt2, _ := newTestTarget(t, 50, 50)

	if err := BeginFrame(tgt1); err != nil {
		t.Fatal(err)
	}
	defer EndFrame(tgt1)

	if err := BeginFrame(tgt2); err != ErrAlreadyRecording {
		t.Fatalf("expected ErrAlreadyRecording, got %v", err)
	}
}

func TestDrawOutsideRecordingFails(t *testing.T) {
	tgt, _ := newTestTarget(t, 50, 50)
	if err := tgt.DrawRect(pixel.Rect{X: 0, Y: 0, W: 1, H: 1}, pixel.White); err != ErrNotRecording {
		t.Fatalf("expected ErrNotRecording, got %v", err)
	}
}

func TestEndFrameRejectsWrongTarget(t *testing.T) {
	tgt1, _ := newTestTarget(t, 50, 50)
	tgt2, _ := newTestTarget(t, 50, 50)

	if err := BeginFrame(tgt1); err != nil {
		t.Fatal(err)
	}
	defer EndFrame(tgt1)

	if err := EndFrame(tgt2); err != ErrNotRecording {
		t.Fatalf("expected ErrNotRecording for a target that never began, got %v", err)
	}
}

func TestIdenticalFramesProduceNoSecondRedraw(t *testing.T) {
	tgt, os := newTestTarget(t, 60, 60)

	if err := BeginFrame(tgt); err != nil {
		t.Fatal(err)
	}
	tgt.DrawRect(pixel.Rect{X: 0, Y: 0, W: 20, H: 20}, pixel.Opaque(1, 2, 3))
	if err := EndFrame(tgt); err != nil {
		t.Fatal(err)
	}

	if err := BeginFrame(tgt); err != nil {
		t.Fatal(err)
	}
	tgt.DrawRect(pixel.Rect{X: 0, Y: 0, W: 20, H: 20}, pixel.Opaque(1, 2, 3))
	if err := EndFrame(tgt); err != nil {
		t.Fatal(err)
	}

	if len(os.presented[1]) != 0 {
		t.Errorf("repeating an identical draw should produce no dirty rects on the second frame, got %v", os.presented[1])
	}
}
