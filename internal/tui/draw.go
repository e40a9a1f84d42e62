package tui

import (
	"math"

	"github.com/san-kum/attractors/internal/sim"
	"github.com/san-kum/attractors/internal/viz"
)

// Raster maps screen-space segments onto a braille canvas, keeping the
// screen's aspect ratio and centering the picture.
type Raster struct {
	scale, offX, offY float64
	w, h              int
}

func NewRaster(canvas *viz.Canvas, screenW, screenH int) Raster {
	w, h := canvas.PixelSize()
	scale := math.Min(float64(w)/float64(screenW), float64(h)/float64(screenH))
	return Raster{
		scale: scale,
		offX:  (float64(w) - float64(screenW)*scale) / 2,
		offY:  (float64(h) - float64(screenH)*scale) / 2,
		w:     w,
		h:     h,
	}
}

// Point converts screen pixels to canvas sub-pixels.
func (r Raster) Point(x, y float64) (int, int, bool) {
	px := x*r.scale + r.offX
	py := y*r.scale + r.offY
	// Points projected from behind the camera can land arbitrarily far away.
	limit := float64(4 * max(r.w, r.h))
	if math.IsNaN(px) || math.IsNaN(py) || math.Abs(px) > limit || math.Abs(py) > limit {
		return 0, 0, false
	}
	return int(px), int(py), true
}

func (r Raster) inside(x, y int) bool { return x >= 0 && y >= 0 && x < r.w && y < r.h }

// Draw rasterizes segs oldest first, so newer segments win shared cells.
func (r Raster) Draw(canvas *viz.Canvas, segs []sim.Segment) {
	for _, s := range segs {
		x0, y0, ok0 := r.Point(s.X0, s.Y0)
		x1, y1, ok1 := r.Point(s.X1, s.Y1)
		if !ok0 || !ok1 || (!r.inside(x0, y0) && !r.inside(x1, y1)) {
			continue
		}
		canvas.DrawLine(x0, y0, x1, y1, s.Color)
	}
}
