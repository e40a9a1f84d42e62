// Package sonify turns the head of a trail into an ambient pad: a fixed
// chord of triangle oscillators through a low-pass filter and a stereo
// delay, with the filter opened by how high the head sits in the
// attractor's bounding box.
package sonify

import (
	"math"
	"sync"

	"github.com/san-kum/attractors/internal/analysis"
	"github.com/san-kum/attractors/internal/dynamo"
)

const (
	SampleRate = 44100
	BufferSize = 1024

	minCutoff = 300.0
	maxCutoff = 1200.0
	volume    = 0.252
)

// Gm7 add9: G2, Bb2, D3, F3, A3
var chord = []float64{98.00, 116.54, 146.83, 174.61, 220.00}

// Synth renders stereo samples. Render runs on the audio thread and
// SetDrive on the caller's, so the drive is guarded.
type Synth struct {
	mu    sync.Mutex
	drive float64

	smooth    float64
	time      float64
	filter    [2]float64
	delay     [2][]float64
	delayHead int
}

func NewSynth() *Synth {
	// 0.6 second delay
	n := int(float64(SampleRate) * 0.6)
	return &Synth{delay: [2][]float64{make([]float64, n), make([]float64, n)}}
}

// SetDrive sets the target filter opening in [0, 1].
func (s *Synth) SetDrive(v float64) {
	v = max(0, min(1, v))
	s.mu.Lock()
	s.drive = v
	s.mu.Unlock()
}

func (s *Synth) Drive() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drive
}

// Cutoff returns the current low-pass cutoff in Hz.
func (s *Synth) Cutoff() float64 { return minCutoff + s.smooth*(maxCutoff-minCutoff) }

// Drive maps the head's height inside b to [0, 1]. Flat or empty bounds
// give 0.5.
func Drive(head dynamo.Point3, b analysis.Bounds) float64 {
	size := b.Size().Z
	if b.Empty() || size <= 0 || math.IsNaN(head.Z) {
		return 0.5
	}
	return max(0, min(1, (head.Z-b.Min.Z)/size))
}

func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// lpf is a one pole low-pass filter.
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// Render fills left and right with the next len(left) samples.
func (s *Synth) Render(left, right []float32) {
	target := s.Drive()
	dt := 1.0 / float64(SampleRate)

	for i := range left {
		// Slow glide so the filter never jumps.
		s.smooth = s.smooth*0.9995 + target*0.0005
		cutoff := s.Cutoff()

		var l, r float64
		g := 1.0 / float64(len(chord))
		for j, f := range chord {
			lfo := math.Sin(s.time*0.2 + float64(j))
			l += triangle(s.time*f*0.999) * g * (0.7 + 0.3*lfo)
			r += triangle(s.time*f*1.001) * g * (0.7 + 0.3*lfo)
		}

		s.filter[0] = lpf(l, cutoff, dt, s.filter[0])
		s.filter[1] = lpf(r, cutoff, dt, s.filter[1])

		dl := s.delay[0][s.delayHead]
		dr := s.delay[1][s.delayHead]
		mixL := s.filter[0] + dl*0.3 + dr*0.1
		mixR := s.filter[1] + dr*0.3 + dl*0.1

		s.delay[0][s.delayHead] = mixL * 0.7
		s.delay[1][s.delayHead] = mixR * 0.7
		s.delayHead = (s.delayHead + 1) % len(s.delay[0])

		left[i] = float32(mixL * volume)
		if i < len(right) {
			right[i] = float32(mixR * volume)
		}
		s.time += dt
	}
}
