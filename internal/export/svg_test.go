package export

import (
	"strings"
	"testing"

	"github.com/san-kum/attractors/internal/sim"
	"github.com/san-kum/attractors/internal/viz"
)

func TestSegmentsToSVG(t *testing.T) {
	segs := []sim.Segment{
		{X0: 1, Y0: 2, X1: 3, Y1: 4, Color: viz.RGBA{255, 255, 79, 196}},
		{X0: 3, Y0: 4, X1: 5, Y1: 6, Color: viz.RGBA{300, -1, 0, 255}},
	}
	svg := SegmentsToSVG(segs, 1280, 780, viz.RGBA{A: 255})

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("expected a complete svg document, got %q", svg)
	}
	if !strings.Contains(svg, `width="1280" height="780"`) {
		t.Error("expected screen size")
	}
	if !strings.Contains(svg, `fill="#000000"`) {
		t.Error("expected black background")
	}
	if n := strings.Count(svg, "<line "); n != 2 {
		t.Errorf("expected 2 lines, got %d", n)
	}
	if !strings.Contains(svg, `x1="1.00" y1="2.00" x2="3.00" y2="4.00" stroke="rgb(255,255,79)" stroke-opacity="0.769"`) {
		t.Errorf("expected first segment with its colour, got %q", svg)
	}
	if !strings.Contains(svg, `stroke="rgb(255,0,0)"`) {
		t.Error("expected out of range channels clamped")
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2) != "" {
		t.Error("expected empty output for nil canvas")
	}

	c := viz.NewCanvas(4, 2)
	c.Set(0, 0, viz.RGBA{255, 0, 0, 255})
	c.Set(7, 7, viz.RGBA{0, 0, 255, 255})
	svg := CanvasToSVG(c, 2)

	if !strings.Contains(svg, `width="16" height="16"`) {
		t.Errorf("expected 16x16 document, got %q", svg)
	}
	if n := strings.Count(svg, "<circle "); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, `fill="#ff0000"`) || !strings.Contains(svg, `fill="#0000ff"`) {
		t.Error("expected dots in their cell colours")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	if TrajectoryToSVG(nil, 100, 100, "#fff") != "" {
		t.Error("expected empty output for no points")
	}

	pts := []struct{ X, Y float64 }{{0, 0}, {1, 1}, {2, 0}}
	svg := TrajectoryToSVG(pts, 120, 60, "#750bff")

	if !strings.Contains(svg, `stroke="#750bff"`) {
		t.Error("expected stroke colour")
	}
	if n := strings.Count(svg, " L"); n != 2 {
		t.Errorf("expected 2 line commands, got %d", n)
	}
	// The range is padded by 10% on each side.
	if !strings.Contains(svg, `d="M10.0,55.0`) {
		t.Errorf("expected path to start inside the padding, got %q", svg)
	}
}
