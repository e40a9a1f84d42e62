package physics

import "github.com/san-kum/attractors/internal/dynamo"

// lorenz calculates the Lorenz attractor derivatives with sigma=a, rho=b, beta=c.
func lorenz(p dynamo.Point3, k dynamo.Params) dynamo.Point3 {
	return dynamo.Point3{
		X: k.A * (p.Y - p.X),
		Y: p.X*(k.B-p.Z) - p.Y,
		Z: p.X*p.Y - k.C*p.Z,
	}
}
