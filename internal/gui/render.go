package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/attractors/internal/gui/widget"
	"github.com/san-kum/attractors/internal/sim"
	"github.com/san-kum/attractors/internal/viz"
)

func toColor(c viz.RGBA) rl.Color {
	c = c.Clamp()
	return rl.NewColor(uint8(c.R), uint8(c.G), uint8(c.B), uint8(c.A))
}

// drawTrail draws the last frame's segments oldest first, so the newest
// part of the trail ends up on top.
func (a *App) drawTrail() {
	for _, s := range a.segs {
		rl.DrawLineV(
			rl.NewVector2(float32(s.X0), float32(s.Y0)),
			rl.NewVector2(float32(s.X1), float32(s.Y1)),
			toColor(s.Color),
		)
	}
	if a.ShowHead && len(a.segs) > 0 {
		head := a.segs[len(a.segs)-1]
		rl.DrawCircleV(rl.NewVector2(float32(head.X1), float32(head.Y1)), 2, rl.White)
	}
}

func (a *App) drawSliders() {
	alpha := uint8(255)
	for i := range a.Sliders {
		if a.Sliders[i].Grabbed() {
			alpha = 50
		}
	}
	col := rl.NewColor(255, 255, 255, alpha)

	ranges := sim.ParamRanges()
	for i := range a.Sliders {
		s := &a.Sliders[i]
		v := a.Ctrl.Get(ranges[i].Param)
		x := float32(s.X)

		label := fmt.Sprintf("%s = %.2f", s.Label, v)
		if ranges[i].Param.Integral() {
			label = fmt.Sprintf("%s = %d", s.Label, int(v))
		}
		a.drawText(label, int(s.X)-30, int(s.Top)-20, 12, col)

		rl.DrawLineV(rl.NewVector2(x, float32(s.Bottom)), rl.NewVector2(x, float32(s.Top)), col)
		rl.DrawCircleV(rl.NewVector2(x, float32(s.Knob(v))), float32(s.Radius), col)
	}
}

// drawEditor shows the gradient preview strip above four channel columns,
// each with an initial handle on the left and a final handle on the right.
func (a *App) drawEditor() {
	e := a.Editor
	w := float64(a.Width)
	top, bottom := e.Top(), e.Bottom()

	// Preview strip with round ends.
	radius := 20.0
	length := 0.85 * w
	left := w/2 - length/2
	right := w/2 + length/2
	y := top / 2
	total := int(length + 2*radius)
	for i, c := range e.Gradient.Preview(total) {
		x := left - radius + float64(i)
		half := radius
		if x < left {
			half = math.Sqrt(radius*radius - (left-x)*(left-x))
		}
		if x > right {
			half = math.Sqrt(max(radius*radius-(x-right)*(x-right), 0))
		}
		rl.DrawLineV(rl.NewVector2(float32(x), float32(y-half)), rl.NewVector2(float32(x), float32(y+half)), toColor(c))
	}

	tops := [4]rl.Color{
		rl.NewColor(255, 0, 0, 255),
		rl.NewColor(0, 255, 0, 255),
		rl.NewColor(0, 0, 255, 255),
		rl.NewColor(255, 255, 255, 255),
	}
	bottoms := [4]rl.Color{
		rl.NewColor(0, 0, 0, 255),
		rl.NewColor(0, 0, 0, 255),
		rl.NewColor(0, 0, 0, 255),
		rl.NewColor(255, 255, 255, 0),
	}

	cw := e.ColumnWidth()
	hs := e.HandleSize()
	for i := range widget.Channels {
		cx := e.ColumnX(i)
		rl.DrawRectangleGradientV(int32(cx-cw/2), int32(top), int32(cw), int32(bottom-top), tops[i], bottoms[i])

		vi := e.Value(widget.Handle{Channel: i})
		vf := e.Value(widget.Handle{Channel: i, Final: true})
		yi, yf := e.HandleY(vi), e.HandleY(vf)
		l, r := cx-cw/2, cx+cw/2

		a.drawText(fmt.Sprintf("%3d", vi), int(l)-50, int(yi)-6, 12, rl.White)
		a.drawText(fmt.Sprintf("%-3d", vf), int(r)+27, int(yf)-6, 12, rl.White)

		rl.DrawTriangle(vec(l, yi), vec(l-hs, yi-hs/2), vec(l-hs, yi+hs/2), rl.White)
		rl.DrawTriangle(vec(r, yf), vec(r+hs, yf+hs/2), vec(r+hs, yf-hs/2), rl.White)
		rl.DrawLineV(vec(l, yi), vec(r, yi), rl.White)
		rl.DrawLineV(vec(l, yi+1), vec(r, yi+1), rl.Black)
		rl.DrawLineV(vec(l, yf), vec(r, yf), rl.White)
		rl.DrawLineV(vec(l, yf+1), vec(r, yf+1), rl.Black)
	}

	a.drawText("[C] RESUME", 30, int(a.Height)-40, 14, ColTextDim)
}

func vec(x, y float64) rl.Vector2 { return rl.NewVector2(float32(x), float32(y)) }
