package integrators

import (
	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/physics"
)

// Euler is the fixed-step explicit Euler integrator.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

// Step advances p by one timestep: next = p + f(p, k) * dt.
func (e *Euler) Step(f physics.Family, p dynamo.Point3, k dynamo.Params, dt float64) dynamo.Point3 {
	dx := physics.Derive(f, p, k)
	return dynamo.Point3{
		X: p.X + dx.X*dt,
		Y: p.Y + dx.Y*dt,
		Z: p.Z + dx.Z*dt,
	}
}
