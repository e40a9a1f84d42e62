package physics

import "github.com/san-kum/attractors/internal/dynamo"

func luChen(p dynamo.Point3, k dynamo.Params) dynamo.Point3 {
	a, b, c := k.A, k.B, k.C
	return dynamo.Point3{
		X: -((a * b * p.X) / (a + b)) - p.Y*p.Z + c,
		Y: a*p.Y + p.X*p.Z,
		Z: b*p.Z + p.X*p.Y,
	}
}
