// Package audio plays a sonify.Synth through the default output device.
package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
	"github.com/san-kum/attractors/internal/sonify"
)

type Player struct {
	Synth  *sonify.Synth
	stream *portaudio.Stream
	active bool
}

func NewPlayer(s *sonify.Synth) *Player {
	return &Player{Synth: s}
}

func (p *Player) process(out [][]float32) {
	p.Synth.Render(out[0], out[1])
}

// Start opens an output-only stereo stream. Duplex streams often fail on
// Linux when the devices differ.
func (p *Player) Start() error {
	if p.active {
		return nil
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio init: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, sonify.SampleRate, sonify.BufferSize, p.process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio open: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio start: %w", err)
	}
	p.stream = stream
	p.active = true
	return nil
}

func (p *Player) Stop() {
	if !p.active {
		return
	}
	p.stream.Stop()
	p.stream.Close()
	portaudio.Terminate()
	p.stream = nil
	p.active = false
}

func (p *Player) Active() bool { return p.active }
