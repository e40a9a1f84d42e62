package viz

import (
	"math"

	"github.com/san-kum/attractors/internal/dynamo"
)

// RotateX rotates p about the X axis.
func RotateX(p dynamo.Point3, angle float64) dynamo.Point3 {
	if angle == 0 {
		return p
	}
	s, c := math.Sincos(angle)
	p.Y, p.Z = p.Y*c-p.Z*s, p.Y*s+p.Z*c
	return p
}

// RotateY rotates p about the Y axis.
func RotateY(p dynamo.Point3, angle float64) dynamo.Point3 {
	if angle == 0 {
		return p
	}
	s, c := math.Sincos(angle)
	p.X, p.Z = p.Z*s+p.X*c, p.Z*c-p.X*s
	return p
}

// RotateZ rotates p about the Z axis.
func RotateZ(p dynamo.Point3, angle float64) dynamo.Point3 {
	if angle == 0 {
		return p
	}
	s, c := math.Sincos(angle)
	p.X, p.Y = p.X*c-p.Y*s, p.X*s+p.Y*c
	return p
}

// Rotation is the current orientation of a trail and its per-step
// angular increment, in radians.
type Rotation struct {
	AngleX, AngleY, AngleZ    float64
	DAngleX, DAngleY, DAngleZ float64
}

// Apply rotates p about X, then Y, then Z by the current angles.
func (r Rotation) Apply(p dynamo.Point3) dynamo.Point3 {
	return RotateZ(RotateY(RotateX(p, r.AngleX), r.AngleY), r.AngleZ)
}

// Advance adds one increment to each angle, wrapping to [0, 2π) for
// non-negative angles.
func (r *Rotation) Advance() {
	r.AngleX = math.Mod(r.AngleX+r.DAngleX, 2*math.Pi)
	r.AngleY = math.Mod(r.AngleY+r.DAngleY, 2*math.Pi)
	r.AngleZ = math.Mod(r.AngleZ+r.DAngleZ, 2*math.Pi)
}

// Frustum is the perspective viewing volume.
type Frustum struct {
	Near, Far, Right, Top float64
}

// NewFrustum derives right and top from the field of view and aspect ratio.
func NewFrustum(near, far, fov, aspect float64) Frustum {
	r := near * math.Tan(fov/2)
	return Frustum{Near: near, Far: far, Right: r, Top: r / aspect}
}

// Project applies the perspective transform and homogenizes by -z.
func (f Frustum) Project(p dynamo.Point3) dynamo.Point3 {
	x := p.X * (f.Near / f.Right)
	y := p.Y * (f.Near / f.Top)
	z := -p.Z * (f.Far + p.Z + 2*f.Far*f.Near) / (f.Far - f.Near)
	w := -p.Z
	return dynamo.Point3{X: x / w, Y: y / w, Z: z / w}
}

// Fit maps projected coordinates into a width x height pixel space.
func (f Frustum) Fit(p dynamo.Point3, width, height float64) dynamo.Point3 {
	p.X = (p.X + f.Right) * (width / (2 * f.Right))
	p.Y = (p.Y + f.Top) * (height / (2 * f.Top))
	return p
}

// Pipeline carries a point from model space to screen pixels.
type Pipeline struct {
	Frustum       Frustum
	Width, Height float64
}

func NewPipeline(f Frustum, width, height int) *Pipeline {
	return &Pipeline{Frustum: f, Width: float64(width), Height: float64(height)}
}

// Transform centers p on midpoint, rotates it, pushes it away from the
// camera by 1/zoom², then projects and fits it to the screen.
func (pl *Pipeline) Transform(p, midpoint dynamo.Point3, rot Rotation, zoom float64) dynamo.Point3 {
	p = rot.Apply(p.Sub(midpoint))
	p.Z += 1 / (zoom * zoom)
	return pl.Frustum.Fit(pl.Frustum.Project(p), pl.Width, pl.Height)
}
