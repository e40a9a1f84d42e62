package sim

import (
	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/viz"
)

// State is the run state of a controller.
type State int

const (
	Running State = iota
	Paused
)

func (s State) String() string {
	if s == Paused {
		return "paused"
	}
	return "running"
}

// Model holds the live tunables of one family.
type Model struct {
	Family    physics.Family
	Dt        float64
	Zoom      float64
	Params    dynamo.Params
	Initial   dynamo.Point3
	Midpoint  dynamo.Point3
	Rotation  viz.Rotation
	MaxLength int
}

// ModelFromConfig builds the model of f from its merged configuration.
func ModelFromConfig(f physics.Family, fc config.FamilyConfig) Model {
	r := fc.Rotation
	return Model{
		Family:   f,
		Dt:       fc.Dt,
		Zoom:     fc.Zoom,
		Params:   fc.Params.Params(),
		Initial:  fc.Initial.Point(),
		Midpoint: fc.Midpoint.Point(),
		Rotation: viz.Rotation{
			AngleX: r.AngleX, AngleY: r.AngleY, AngleZ: r.AngleZ,
			DAngleX: r.DAngleX, DAngleY: r.DAngleY, DAngleZ: r.DAngleZ,
		},
		MaxLength: fc.MaxLength,
	}
}

// Segment is one coloured line between consecutive projected trail points,
// in screen pixels.
type Segment struct {
	X0, Y0, X1, Y1 float64
	Color          viz.RGBA
}

// Observer receives every integrated point.
type Observer interface {
	OnPoint(f physics.Family, p dynamo.Point3)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f physics.Family, p dynamo.Point3)

func (fn ObserverFunc) OnPoint(f physics.Family, p dynamo.Point3) { fn(f, p) }
