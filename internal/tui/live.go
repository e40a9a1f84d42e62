package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/attractors/internal/sim"
	"github.com/san-kum/attractors/internal/viz"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer prints controller frames to a plain terminal at a capped
// frame rate. It is used by headless commands that still want to show
// progress.
type LiveRenderer struct {
	w         io.Writer
	frameRate int
	lastFrame time.Time
	canvas    *viz.Canvas
	screenW   int
	screenH   int
}

func NewLiveRenderer(w io.Writer, frameRate, screenW, screenH int) *LiveRenderer {
	return &LiveRenderer{
		w:         w,
		frameRate: max(frameRate, 1),
		canvas:    viz.NewCanvas(width, height),
		screenW:   screenW,
		screenH:   screenH,
	}
}

// Draw renders segs unless the previous frame is too recent. It reports
// whether anything was written.
func (r *LiveRenderer) Draw(c *sim.Controller, segs []sim.Segment) bool {
	if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return false
	}
	r.lastFrame = time.Now()

	r.canvas.Clear()
	NewRaster(r.canvas, r.screenW, r.screenH).Draw(r.canvas, segs)

	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "  %s  %s  points=%d\n", c.Active(), c.State(), c.Len())
	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	for _, row := range strings.Split(strings.TrimSuffix(r.canvas.Render(), "\n"), "\n") {
		b.WriteString("  " + row + "\n")
	}
	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	fmt.Fprintf(&b, "  head=%s\n", c.Head())

	fmt.Fprint(r.w, b.String())
	return true
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.w, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.w, showCursor) }
