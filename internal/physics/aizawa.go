package physics

import "github.com/san-kum/attractors/internal/dynamo"

// aizawa keeps the usual d=0.7, e=0.6, f=0.1 fixed; a, b and c are live.
func aizawa(p dynamo.Point3, k dynamo.Params) dynamo.Point3 {
	x, y, z := p.X, p.Y, p.Z
	return dynamo.Point3{
		X: (z-0.7)*x - k.C*y,
		Y: k.C*x + (z-0.7)*y,
		Z: 0.6 + k.B*z - (z*z*z)/3 - (x*x+y*y)*(1+k.A*z) + 0.1*z*x*x*x,
	}
}
