// Command edrenderdemo exercises every public operation of this module's
// rendering pipeline end to end — canvases, fonts, the command buffer,
// the dirty-cell tracker, and the frame/window orchestration — against a
// headless, in-process OSWindow, then saves whatever ended up in the
// window's backing surface to a PNG file. It is not a real windowed
// application: the actual window-system event loop is out of scope here
// the same way a GUI shell is out of scope for the core library itself.
package main

import (
	"flag"
	"image/png"
	"log"
	"math"
	"os"

	"github.com/gogpu/edrender/canvas"
	"github.com/gogpu/edrender/font"
	"github.com/gogpu/edrender/frame"
	"github.com/gogpu/edrender/pixel"
	"github.com/gogpu/edrender/window"
)

// offscreenWindow is the demo's own OSWindow: a window.OSWindow that
// tracks a fixed point/pixel size and otherwise does nothing, since there
// is no real display to present to. A host embedding this module behind
// SDL, a native windowing API, or a test harness would implement the same
// interface around its own surface instead.
type offscreenWindow struct {
	w, h    int
	refresh int
	shown   bool
}

func (o *offscreenWindow) PointSize() (int, int)   { return o.w, o.h }
func (o *offscreenWindow) PixelSize() (int, int)   { return o.w, o.h }
func (o *offscreenWindow) SetMinimumSize(w, h int)  {}
func (o *offscreenWindow) RefreshRate() int         { return o.refresh }
func (o *offscreenWindow) Present(_ []pixel.Rect)   {}
func (o *offscreenWindow) Show() {
	o.shown = true
	log.Println("edrenderdemo: window shown")
}

func main() {
	var (
		width    = flag.Int("width", 800, "window width in points")
		height   = flag.Int("height", 600, "window height in points")
		output   = flag.String("output", "demo.png", "output PNG path")
		fontPath = flag.String("font", "", "optional TTF/OTF path for the text demo")
		text     = flag.String("text", "the quick brown fox", "text drawn by the text demo")
		debug    = flag.Bool("debug", false, "overlay the dirty-rect debug visualization")
	)
	flag.Parse()

	os_ := &offscreenWindow{w: *width, h: *height, refresh: 60}
	win, err := window.Create(os_)
	if err != nil {
		log.Fatalf("edrenderdemo: create window target: %v", err)
	}

	tgt := frame.NewTarget(win)
	tgt.ShowDebug(*debug)

	if err := frame.BeginFrame(tgt); err != nil {
		log.Fatalf("edrenderdemo: begin_frame: %v", err)
	}

	drawBackground(tgt, *width, *height)
	drawCanvasDemo(tgt)
	drawPolyDemo(tgt)
	if *fontPath != "" {
		drawTextDemo(tgt, *fontPath, *text)
	} else {
		log.Println("edrenderdemo: -font not set, skipping the text demo")
	}

	if err := frame.EndFrame(tgt); err != nil {
		log.Fatalf("edrenderdemo: end_frame: %v", err)
	}

	if err := savePNG(win, *output); err != nil {
		log.Fatalf("edrenderdemo: save output: %v", err)
	}
	log.Printf("edrenderdemo: wrote %s (%dx%d)\n", *output, *width, *height)
}

func drawBackground(tgt *frame.Target, w, h int) {
	steps := 20
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps)
		c := pixel.Opaque(
			uint8(30+t*80),
			uint8(40+t*60),
			uint8(90+t*60),
		)
		rowH := h/steps + 1
		tgt.DrawRect(pixel.Rect{X: 0, Y: i * rowH, W: w, H: rowH}, c)
	}
}

// drawCanvasDemo builds a small off-screen canvas, draws into it with the
// canvas package's own primitives, then blits it onto the frame target —
// exercising C3 and C6 together the way a text editor composites a
// minimap or a gutter icon onto the main surface.
func drawCanvasDemo(tgt *frame.Target) {
	c, err := canvas.New(120, 120, pixel.RGBA32, true)
	if err != nil {
		log.Printf("edrenderdemo: canvas.New: %v", err)
		return
	}
	c.Clear(pixel.Opaque(20, 20, 30))
	c.DrawRect(pixel.Rect{X: 10, Y: 10, W: 100, H: 100}, pixel.Opaque(240, 200, 60), true)

	dup := c.Retain()
	dup.DrawRect(pixel.Rect{X: 30, Y: 30, W: 60, H: 60}, pixel.Opaque(60, 140, 240), true)

	if err := tgt.DrawCanvas(c, 40, 40, false); err != nil {
		log.Printf("edrenderdemo: draw_canvas: %v", err)
	}
	if err := tgt.DrawCanvas(dup, 200, 40, true); err != nil {
		log.Printf("edrenderdemo: draw_canvas: %v", err)
	}
}

func drawPolyDemo(tgt *frame.Target) {
	const (
		cx, cy = 400.0, 300.0
		r      = 80.0
	)
	points := make([]pixel.Point, 6)
	for i := range points {
		a := float64(i) * math.Pi / 3
		points[i] = pixel.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	if _, err := tgt.DrawPoly(points, pixel.Opaque(220, 80, 80)); err != nil {
		log.Printf("edrenderdemo: draw_poly: %v", err)
	}
}

func drawTextDemo(tgt *frame.Target, fontPath, text string) {
	src, err := font.LoadSource(fontPath)
	if err != nil {
		log.Printf("edrenderdemo: load font: %v", err)
		return
	}
	face, err := font.Load(src, 18, font.WithAntialiasing(font.AntialiasGrayscale))
	if err != nil {
		log.Printf("edrenderdemo: load face: %v", err)
		return
	}
	group, err := font.NewGroup(face)
	if err != nil {
		log.Printf("edrenderdemo: new group: %v", err)
		return
	}
	if _, err := tgt.DrawText(group, text, 40, 500, pixel.White); err != nil {
		log.Printf("edrenderdemo: draw_text: %v", err)
	}
}

func savePNG(win *window.Target, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, win.Surface().AsImage())
}
