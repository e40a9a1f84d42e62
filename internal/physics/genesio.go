package physics

import "github.com/san-kum/attractors/internal/dynamo"

func genesio(p dynamo.Point3, k dynamo.Params) dynamo.Point3 {
	return dynamo.Point3{
		X: p.Y,
		Y: p.Z,
		Z: -k.C*p.X - k.B*p.Y - k.A*p.Z + p.X*p.X,
	}
}
