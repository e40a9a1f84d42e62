package viz

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBA is a colour with 0-255 channels. Interpolation can leave the range
// when the position is outside [0, length]; values are not clamped.
type RGBA struct {
	R, G, B, A int
}

// Interpolate returns the colour at position along a linear run of length
// steps from initial to final. Each channel is truncated toward zero.
// Multiplying before dividing keeps both endpoints exact.
func Interpolate(initial, final RGBA, position, length int) RGBA {
	ch := func(i, f int) int {
		return int(float64(f-i)*float64(position)/float64(length) + float64(i))
	}
	return RGBA{
		R: ch(initial.R, final.R),
		G: ch(initial.G, final.G),
		B: ch(initial.B, final.B),
		A: ch(initial.A, final.A),
	}
}

// Gradient is a pair of endpoint colours.
type Gradient struct {
	Initial, Final RGBA
}

// At is Interpolate over the gradient's endpoints.
func (g Gradient) At(position, length int) RGBA {
	return Interpolate(g.Initial, g.Final, position, length)
}

// Preview returns length colours sampled across the whole gradient, as
// shown in the colour editor strip.
func (g Gradient) Preview(length int) []RGBA {
	out := make([]RGBA, length)
	for i := range out {
		out[i] = g.At(i, length)
	}
	return out
}

// Clamp returns c with every channel limited to 0-255.
func (c RGBA) Clamp() RGBA {
	cl := func(v int) int { return max(0, min(255, v)) }
	return RGBA{cl(c.R), cl(c.G), cl(c.B), cl(c.A)}
}

// Color converts to image/color, clamping first.
func (c RGBA) Color() color.RGBA {
	c = c.Clamp()
	return color.RGBA{R: uint8(c.R), G: uint8(c.G), B: uint8(c.B), A: uint8(c.A)}
}

// Hex returns the colour composited over bg by its alpha, as #rrggbb.
func (c RGBA) Hex(bg RGBA) string {
	c, bg = c.Clamp(), bg.Clamp()
	fg := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	back := colorful.Color{R: float64(bg.R) / 255, G: float64(bg.G) / 255, B: float64(bg.B) / 255}
	return back.BlendRgb(fg, float64(c.A)/255).Clamped().Hex()
}

// Clamp limits both endpoints to 0-255.
func (g Gradient) Clamp() Gradient { return Gradient{g.Initial.Clamp(), g.Final.Clamp()} }

// GradientFromChannels builds a gradient from two [r g b a] arrays.
func GradientFromChannels(initial, final [4]int) Gradient {
	return Gradient{
		Initial: RGBA{initial[0], initial[1], initial[2], initial[3]},
		Final:   RGBA{final[0], final[1], final[2], final[3]},
	}
}
