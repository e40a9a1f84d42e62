package physics

import (
	"math"

	"github.com/san-kum/attractors/internal/dynamo"
)

// banlue uses only a; b and c are ignored.
func banlue(p dynamo.Point3, k dynamo.Params) dynamo.Point3 {
	return dynamo.Point3{
		X: p.Y - p.X,
		Y: -p.Z * math.Tanh(p.X),
		Z: -k.A + p.X*p.Y + math.Abs(p.Y),
	}
}
