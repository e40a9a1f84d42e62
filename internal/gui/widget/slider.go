// Package widget holds the window-independent state of the gui host's
// mouse-driven controls: vertical sliders for the live parameters and the
// eight-handle gradient editor.
package widget

import "github.com/san-kum/attractors/internal/sim"

// Pointer is one frame of mouse state. DownX and DownY hold where the
// current press started.
type Pointer struct {
	X, Y         float64
	Down         bool
	DownX, DownY float64
}

// Slider is a vertical track mapping [Min, Max] onto [Bottom, Top].
type Slider struct {
	Label    string
	Min, Max float64
	X        float64
	Top      float64
	Bottom   float64
	Radius   float64

	grabbed bool
}

// Knob returns the screen y of v on the track.
func (s *Slider) Knob(v float64) float64 {
	return (s.Top-s.Bottom)/(s.Max-s.Min)*(v-s.Min) + s.Bottom
}

// ValueAt maps a screen y back to a value. Positions off the track
// report false.
func (s *Slider) ValueAt(y float64) (float64, bool) {
	if y > s.Bottom || y < s.Top {
		return 0, false
	}
	return (s.Max-s.Min)/(s.Top-s.Bottom)*(y-s.Bottom) + s.Min, true
}

func (s *Slider) hit(p Pointer) bool {
	return p.DownX > s.X-s.Radius && p.DownX < s.X+s.Radius && p.DownY > s.Top && p.DownY < s.Bottom
}

// Drag follows the pointer. A press that starts on the track grabs the
// slider until release; while grabbed the value under the pointer is
// returned.
func (s *Slider) Drag(p Pointer) (float64, bool) {
	if !p.Down {
		s.grabbed = false
		return 0, false
	}
	if !s.grabbed && !s.hit(p) {
		return 0, false
	}
	s.grabbed = true
	return s.ValueAt(p.Y)
}

func (s *Slider) Grabbed() bool { return s.grabbed }

const (
	sliderMargin = 80
	knobRadius   = 8
)

// Row lays one slider per parameter range evenly across a screen.
func Row(ranges []sim.Range, width, height float64) []Slider {
	spacing := width / float64(len(ranges)+1)
	out := make([]Slider, len(ranges))
	for i, r := range ranges {
		out[i] = Slider{
			Label:  r.Label,
			Min:    r.Min,
			Max:    r.Max,
			X:      spacing * float64(i+1),
			Top:    sliderMargin,
			Bottom: height - sliderMargin,
			Radius: knobRadius,
		}
	}
	return out
}
