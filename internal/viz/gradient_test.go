package viz

import (
	"strings"
	"testing"
)

var (
	yellow = RGBA{255, 255, 79, 196}
	purple = RGBA{117, 11, 255, 255}
)

func TestInterpolateEndpoints(t *testing.T) {
	for _, length := range []int{1, 2, 7, 1000, 5000} {
		if got := Interpolate(yellow, purple, 0, length); got != yellow {
			t.Errorf("length %d: expected %v at 0, got %v", length, yellow, got)
		}
		if got := Interpolate(yellow, purple, length, length); got != purple {
			t.Errorf("length %d: expected %v at end, got %v", length, purple, got)
		}
	}
}

func TestInterpolateTruncates(t *testing.T) {
	tests := []struct {
		name           string
		initial, final RGBA
		position, len  int
		expected       RGBA
	}{
		{"midpoint", RGBA{0, 0, 0, 0}, RGBA{255, 255, 255, 255}, 1, 2, RGBA{127, 127, 127, 127}},
		{"third", RGBA{0, 0, 0, 0}, RGBA{100, 10, 1, 0}, 1, 3, RGBA{33, 3, 0, 0}},
		// Descending channels truncate toward zero, not down.
		{"descending", RGBA{255, 255, 255, 255}, RGBA{0, 0, 0, 0}, 1, 2, RGBA{127, 127, 127, 127}},
		{"negative", RGBA{0, 0, 0, 0}, RGBA{-10, 0, 0, 0}, 1, 3, RGBA{-3, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpolate(tt.initial, tt.final, tt.position, tt.len)
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestInterpolateDoesNotClamp(t *testing.T) {
	got := Interpolate(RGBA{0, 0, 0, 0}, RGBA{200, 0, 0, 0}, 4, 2)
	if got.R != 400 {
		t.Errorf("expected R=400 past the end, got %d", got.R)
	}
	if got.Clamp().R != 255 {
		t.Errorf("expected clamped R=255, got %d", got.Clamp().R)
	}
}

func TestGradientPreview(t *testing.T) {
	g := Gradient{Initial: yellow, Final: purple}
	strip := g.Preview(400)

	if len(strip) != 400 {
		t.Fatalf("expected 400 colours, got %d", len(strip))
	}
	if strip[0] != yellow {
		t.Errorf("expected preview to start at %v, got %v", yellow, strip[0])
	}
	if strip[200] != g.At(200, 400) {
		t.Errorf("expected preview to match At, got %v", strip[200])
	}
}

func TestGradientFromChannels(t *testing.T) {
	g := GradientFromChannels([4]int{255, 255, 79, 196}, [4]int{117, 11, 255, 255})
	if g.Initial != yellow || g.Final != purple {
		t.Errorf("expected yellow to purple, got %v to %v", g.Initial, g.Final)
	}
}

func TestRGBAHex(t *testing.T) {
	black := RGBA{0, 0, 0, 255}

	if got := (RGBA{255, 0, 0, 255}).Hex(black); got != "#ff0000" {
		t.Errorf("expected opaque red #ff0000, got %s", got)
	}
	if got := (RGBA{255, 0, 0, 0}).Hex(black); got != "#000000" {
		t.Errorf("expected transparent red over black #000000, got %s", got)
	}
	if got := (RGBA{300, -5, 0, 255}).Hex(black); !strings.HasPrefix(got, "#ff00") {
		t.Errorf("expected out of range channels clamped, got %s", got)
	}
}

func TestRGBAColor(t *testing.T) {
	c := RGBA{117, 11, 255, 255}.Color()
	if c.R != 117 || c.G != 11 || c.B != 255 || c.A != 255 {
		t.Errorf("expected {117 11 255 255}, got %v", c)
	}
}
