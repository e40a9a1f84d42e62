package dynamo

import (
	"fmt"
	"math"
)

// Point3 is one trajectory sample.
type Point3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Point3 methods.
func (p Point3) Add(o Point3) Point3    { return Point3{p.X + o.X, p.Y + o.Y, p.Z + o.Z} }
func (p Point3) Sub(o Point3) Point3    { return Point3{p.X - o.X, p.Y - o.Y, p.Z - o.Z} }
func (p Point3) Scale(s float64) Point3 { return Point3{p.X * s, p.Y * s, p.Z * s} }
func (p Point3) Norm() float64          { return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z) }
func (p Point3) String() string         { return fmt.Sprintf("(%.2f, %.2f, %.2f)", p.X, p.Y, p.Z) }
func (p Point3) Slice() []float64       { return []float64{p.X, p.Y, p.Z} }

// PointFromSlice builds a point from the first three values of s.
func PointFromSlice(s []float64) Point3 { return Point3{s[0], s[1], s[2]} }

// IsValid reports whether all three coordinates are finite.
func (p Point3) IsValid() bool {
	for _, v := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Params holds the family-specific coefficients. Their meaning depends on
// the active family; unused coefficients are ignored.
type Params struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}

// Map keys the coefficients by name, as used in logs.
func (k Params) Map() map[string]float64 {
	return map[string]float64{"a": k.A, "b": k.B, "c": k.C}
}
