package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/attractors/internal/dynamo"
)

// Bounds is the axis-aligned box around every observed point. The zero
// value is empty.
type Bounds struct {
	Min   dynamo.Point3 `json:"min"`
	Max   dynamo.Point3 `json:"max"`
	Count int           `json:"count"`
}

// NewBounds returns a box covering pts.
func NewBounds(pts ...dynamo.Point3) Bounds {
	var b Bounds
	for _, p := range pts {
		b.Observe(p)
	}
	return b
}

// Observe grows the box to include p. Non-finite points are ignored.
func (b *Bounds) Observe(p dynamo.Point3) {
	if !p.IsValid() {
		return
	}
	if b.Count == 0 {
		b.Min, b.Max = p, p
		b.Count = 1
		return
	}
	b.Min = dynamo.Point3{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
	b.Max = dynamo.Point3{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
	b.Count++
}

func (b Bounds) Empty() bool { return b.Count == 0 }

// Midpoint is the centre of the box, the value to use as a family's
// centering offset.
func (b Bounds) Midpoint() dynamo.Point3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

func (b Bounds) Size() dynamo.Point3 { return b.Max.Sub(b.Min) }

func (b Bounds) String() string {
	if b.Empty() {
		return "empty"
	}
	return fmt.Sprintf("min %s max %s mid %s", b.Min, b.Max, b.Midpoint())
}
