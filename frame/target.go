// Package frame orchestrates one window's per-frame recording cycle:
// BeginFrame opens a recording span, drawing calls append Records to a
// command.Buffer, and EndFrame walks that buffer twice — once to hash
// each command into package dirty's grid, once to redraw only the cells
// that changed — before handing the merged rects to package window for
// presentation. It is grounded on rencache.c's rencache_begin_frame/
// rencache_end_frame for the state machine and three-pass algorithm, and
// on recording/recorder.go's Recorder/Recording state-holding shape for
// how to structure that as a Go type instead of a set of free functions
// over static storage.
package frame

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/edrender/canvas"
	"github.com/gogpu/edrender/command"
	"github.com/gogpu/edrender/dirty"
	"github.com/gogpu/edrender/font"
	"github.com/gogpu/edrender/pixel"
	"github.com/gogpu/edrender/window"
)

// maxPolyPoints bounds a single DrawPoly call to the original's
// compile-time POLY_MAX_POINTS scratch-buffer size.
const maxPolyPoints = 1024

// Target is one window's complete recording state: the command buffer
// drawing calls append to, the dirty-cell grid that turns a frame's
// commands into a minimal redraw list, and the bookkeeping that pins
// Canvas and font.Group references for the duration of a frame while
// command.Record carries only uint32 IDs, so package command imports
// neither canvas nor font.
type Target struct {
	win *window.Target

	buf  *command.Buffer
	grid *dirty.Grid

	screenRect pixel.Rect // point space, current target size
	recording  bool
	firstFrame bool
	debug      bool

	canvasPins   map[uint32]*canvas.Canvas
	nextCanvasID uint32

	faceIDs     map[*font.Group]uint32
	facePins    map[uint32]*font.Group
	nextFaceID  uint32
}

// NewTarget builds a Target around an already-created window.Target.
func NewTarget(win *window.Target) *Target {
	pw, ph := win.PointSize()
	return &Target{
		win:        win,
		buf:        command.New(),
		grid:       dirty.New(),
		screenRect: pixel.Rect{W: pw, H: ph},
		firstFrame: true,
		canvasPins: make(map[uint32]*canvas.Canvas),
		faceIDs:    make(map[*font.Group]uint32),
		facePins:   make(map[uint32]*font.Group),
	}
}

// ShowDebug toggles the translucent random-rect overlay end_frame paints
// over the dirty regions it just redrew, mirroring rencache.c's
// show_debug/rand() block.
func (t *Target) ShowDebug(enabled bool) { t.debug = enabled }

// Size returns the target's current logical size in points.
func (t *Target) Size() (w, h int) { return t.screenRect.W, t.screenRect.H }

var (
	// latchMu serializes BeginFrame/EndFrame transitions; current is the
	// process-wide "current target" latch from spec §9's redesign note,
	// an atomic.Pointer guarded by a mutex rather than a bare package
	// variable so its lifetime and happens-before ordering are explicit.
	latchMu sync.Mutex
	current atomic.Pointer[Target]
)

// BeginFrame transitions t from Idle to Recording. It fails if any
// target — including t itself — is already recording, resizes t's
// window if needed (invalidating the dirty grid on any size change so
// the next redraw repaints everything), and resets the running clip to
// the full screen rect.
func BeginFrame(t *Target) error {
	latchMu.Lock()
	defer latchMu.Unlock()

	if current.Load() != nil {
		return ErrAlreadyRecording
	}
	before := t.win.Surface()
	if err := t.win.Resize(); err != nil {
		return err
	}
	pw, ph := t.win.PointSize()
	newRect := pixel.Rect{W: pw, H: ph}
	if newRect != t.screenRect || t.win.Surface() != before {
		t.screenRect = newRect
		t.grid.Invalidate()
	}

	t.recording = true
	current.Store(t)
	return nil
}

// EndFrame transitions t from Recording back to Idle, running the hash,
// diff, and redraw passes and presenting the result. It fails if t is not
// the target currently holding the latch.
func EndFrame(t *Target) error {
	latchMu.Lock()
	defer latchMu.Unlock()

	if !t.recording {
		return ErrNotRecording
	}
	if current.Load() != t {
		return ErrWrongTarget
	}

	rects := t.runPasses()
	if t.debug {
		t.drawDebugOverlay(rects)
	}

	pixelRects := make([]pixel.Rect, len(rects))
	for i, r := range rects {
		pixelRects[i] = t.win.ToPixelRect(r)
	}
	t.win.Present(pixelRects)

	t.buf.Reset()
	t.recording = false
	t.firstFrame = false
	t.facePins = make(map[uint32]*font.Group)
	t.faceIDs = make(map[*font.Group]uint32)
	current.Store(nil)
	return nil
}

// isRecording reports whether t is the target currently holding the latch
// — every drawing call below must check this before appending a Record.
func (t *Target) isRecording() bool {
	return t.recording && current.Load() == t
}

func (t *Target) pinCanvas(c *canvas.Canvas) uint32 {
	id := t.nextCanvasID
	t.nextCanvasID++
	t.canvasPins[id] = c.Retain()
	return id
}

func (t *Target) releaseCanvasPin(id uint32) {
	c, ok := t.canvasPins[id]
	if !ok {
		return
	}
	delete(t.canvasPins, id)
	c.Destroy()
}

func (t *Target) pinFace(g *font.Group) uint32 {
	if id, ok := t.faceIDs[g]; ok {
		return id
	}
	id := t.nextFaceID
	t.nextFaceID++
	t.faceIDs[g] = id
	t.facePins[id] = g
	return id
}
