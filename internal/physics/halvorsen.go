package physics

import "github.com/san-kum/attractors/internal/dynamo"

func halvorsen(p dynamo.Point3, k dynamo.Params) dynamo.Point3 {
	a := k.A
	return dynamo.Point3{
		X: -a*p.X - 4*p.Y - 4*p.Z - p.Y*p.Y,
		Y: -a*p.Y - 4*p.Z - 4*p.X - p.Z*p.Z,
		Z: -a*p.Z - 4*p.X - 4*p.Y - p.X*p.X,
	}
}
