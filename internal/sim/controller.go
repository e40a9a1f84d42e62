package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/attractors/internal/analysis"
	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/integrators"
	"github.com/san-kum/attractors/internal/logging"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/trail"
	"github.com/san-kum/attractors/internal/viz"
)

// Controller drives one attractor at a time: it owns the live models of all
// six families, the trail of the active one and the render state.
//
// A Controller is not safe for concurrent use. Hosts call it from their
// frame loop only.
type Controller struct {
	models   [physics.Count]Model
	defaults Model
	active   physics.Family

	trail      *trail.Buffer
	integrator *integrators.Euler
	pipeline   *viz.Pipeline
	gradient   viz.Gradient
	perFrame   bool
	pad        dynamo.Point3

	state     State
	bounds    analysis.Bounds
	segments  []Segment
	observers []Observer
	logger    *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

func WithLogger(l *slog.Logger) Option   { return func(c *Controller) { c.logger = l } }
func WithObserver(o Observer) Option     { return func(c *Controller) { c.AddObserver(o) } }
func WithPad(p dynamo.Point3) Option     { return func(c *Controller) { c.pad = p } }
func WithGradient(g viz.Gradient) Option { return func(c *Controller) { c.gradient = g.Clamp() } }

// New builds the six models from cfg, selects cfg.Family and seeds its
// trail.
func New(cfg *config.Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start, err := cfg.StartFamily()
	if err != nil {
		return nil, err
	}

	c := &Controller{
		integrator: integrators.NewEuler(),
		pipeline: viz.NewPipeline(
			viz.NewFrustum(cfg.Frustum.Near, cfg.Frustum.Far, cfg.Frustum.FOV, cfg.AspectRatio()),
			cfg.Screen.Width, cfg.Screen.Height,
		),
		gradient: viz.GradientFromChannels(cfg.Gradient.Initial, cfg.Gradient.Final),
		perFrame: cfg.Render.RotationMode == config.RotationPerFrame,
		pad:      config.DefaultPad,
		logger:   logging.Discard(),
	}
	for _, f := range physics.Families() {
		c.models[f] = ModelFromConfig(f, cfg.FamilyConfig(f))
	}
	for _, opt := range opts {
		opt(c)
	}

	c.active = start
	c.defaults = c.models[start]
	c.trail = trail.New(c.defaults.MaxLength)
	c.seed()

	c.logger.Debug("controller ready", "family", start, "max_length", c.defaults.MaxLength, "per_frame", c.perFrame)
	return c, nil
}

func (c *Controller) seed() {
	m := c.models[c.active]
	c.trail.Seed(m.Initial, m.MaxLength, c.pad)
}

// AddObserver registers o for every integrated point.
func (c *Controller) AddObserver(o Observer) { c.observers = append(c.observers, o) }

// Step integrates one point from the newest trail point and appends it,
// evicting from the head past the active bound.
func (c *Controller) Step() dynamo.Point3 {
	m := &c.models[c.active]
	last, _ := c.trail.Last()
	next := c.integrator.Step(m.Family, last, m.Params, m.Dt)

	c.trail.SetMaxLength(m.MaxLength)
	c.trail.Append(next)

	for _, o := range c.observers {
		o.OnPoint(m.Family, next)
	}
	return next
}

// Run steps n times headless, stopping early when ctx is done.
func (c *Controller) Run(ctx context.Context, n int) (int, error) {
	for i := 0; i < n; i++ {
		if i%1024 == 0 {
			select {
			case <-ctx.Done():
				return i, ctx.Err()
			default:
			}
		}
		c.bounds.Observe(c.Step())
	}
	return n, nil
}

// Frame advances the simulation one frame and returns the segments to
// draw, oldest first. The slice is reused by the next call.
//
// While paused nothing is integrated or drawn and rotation holds still.
func (c *Controller) Frame() []Segment {
	if c.state == Paused {
		return nil
	}
	c.Step()

	m := &c.models[c.active]
	n := c.trail.Len()
	c.segments = c.segments[:0]

	var prev dynamo.Point3
	for i, p := range c.trail.All() {
		c.bounds.Observe(p)

		cur := c.pipeline.Transform(p, m.Midpoint, m.Rotation, m.Zoom)
		if !c.perFrame {
			m.Rotation.Advance()
		}

		if i > 0 {
			c.segments = append(c.segments, Segment{
				X0: prev.X, Y0: prev.Y,
				X1: cur.X, Y1: cur.Y,
				Color: c.gradient.At(i, n),
			})
		}
		prev = cur
	}
	if c.perFrame {
		m.Rotation.Advance()
	}

	return c.segments
}

// Reset drops the trail, restores the outgoing family from its default
// snapshot, then selects f and seeds it. The pause state is kept.
func (c *Controller) Reset(f physics.Family) error {
	if !f.Valid() {
		return fmt.Errorf("reset to %v: %w", f, dynamo.ErrUnknownFamily)
	}

	prev := c.active
	c.trail.Reset()
	c.models[prev] = c.defaults

	c.active = f
	c.defaults = c.models[f]
	c.seed()

	c.logger.Debug("family switched", "from", prev, "to", f)
	return nil
}

// Restart is Reset to the active family.
func (c *Controller) Restart() error { return c.Reset(c.active) }

func (c *Controller) Pause()       { c.state = Paused }
func (c *Controller) Resume()      { c.state = Running }
func (c *Controller) State() State { return c.state }

func (c *Controller) TogglePause() State {
	if c.state == Paused {
		c.state = Running
	} else {
		c.state = Paused
	}
	return c.state
}

func (c *Controller) Active() physics.Family { return c.active }

// Model returns a copy of the active live model.
func (c *Controller) Model() Model { return c.models[c.active] }

// Defaults returns the default snapshot of the active family.
func (c *Controller) Defaults() Model { return c.defaults }

func (c *Controller) Len() int { return c.trail.Len() }

// Points copies the trail, oldest first.
func (c *Controller) Points() []dynamo.Point3 { return c.trail.Points() }

// Head returns the newest trail point.
func (c *Controller) Head() dynamo.Point3 {
	p, _ := c.trail.Last()
	return p
}

// Bounds returns the box around every point drawn or stepped so far,
// across family switches.
func (c *Controller) Bounds() analysis.Bounds { return c.bounds }

func (c *Controller) Gradient() viz.Gradient { return c.gradient }

// SetGradient replaces the trail colours, clamped to 0-255.
func (c *Controller) SetGradient(g viz.Gradient) { c.gradient = g.Clamp() }

func (c *Controller) Pipeline() *viz.Pipeline { return c.pipeline }
