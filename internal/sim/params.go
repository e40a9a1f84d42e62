package sim

import (
	"context"
	"fmt"
	"strings"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/logging"
)

// Param names one tunable of the active model.
type Param int

const (
	ParamA Param = iota
	ParamB
	ParamC
	ParamZoom
	ParamDAngleX
	ParamDAngleY
	ParamDAngleZ
	ParamDt
	ParamMaxLength
)

// Range is the slider range of a Param.
type Range struct {
	Param    Param
	Label    string
	Min, Max float64
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 { return max(r.Min, min(r.Max, v)) }

var ranges = [...]Range{
	{ParamA, "a", -10, 30},
	{ParamB, "b", -5, 30},
	{ParamC, "c", -1, 30},
	{ParamZoom, "zoom", 0.1, 1},
	{ParamDAngleX, "Xrot", 0, 0.00001},
	{ParamDAngleY, "Yrot", 0, 0.00001},
	{ParamDAngleZ, "Zrot", 0, 0.00001},
	{ParamDt, "dt", 0.00001, 0.05},
	{ParamMaxLength, "length", 2, 5000},
}

func (p Param) Valid() bool    { return p >= 0 && int(p) < len(ranges) }
func (p Param) Range() Range   { return ranges[p] }
func (p Param) String() string { return ranges[p].Label }
func (p Param) Integral() bool { return p == ParamMaxLength }

// ParamRanges returns every tunable in slider order.
func ParamRanges() []Range {
	out := make([]Range, len(ranges))
	copy(out, ranges[:])
	return out
}

// ParseParam resolves a slider label, case-insensitively.
func ParseParam(name string) (Param, error) {
	name = strings.TrimSpace(name)
	for _, r := range ranges {
		if strings.EqualFold(r.Label, name) {
			return r.Param, nil
		}
	}
	return 0, fmt.Errorf("param %q: %w", name, dynamo.ErrParameterBounds)
}

// Get reads p from the active model.
func (c *Controller) Get(p Param) float64 {
	m := &c.models[c.active]
	switch p {
	case ParamA:
		return m.Params.A
	case ParamB:
		return m.Params.B
	case ParamC:
		return m.Params.C
	case ParamZoom:
		return m.Zoom
	case ParamDAngleX:
		return m.Rotation.DAngleX
	case ParamDAngleY:
		return m.Rotation.DAngleY
	case ParamDAngleZ:
		return m.Rotation.DAngleZ
	case ParamDt:
		return m.Dt
	case ParamMaxLength:
		return float64(m.MaxLength)
	}
	return 0
}

// Set writes p on the active model, clamped to its range, and returns the
// stored value. Changes apply from the next frame.
func (c *Controller) Set(p Param, v float64) float64 {
	if !p.Valid() {
		return 0
	}
	v = p.Range().Clamp(v)
	m := &c.models[c.active]
	switch p {
	case ParamA:
		m.Params.A = v
	case ParamB:
		m.Params.B = v
	case ParamC:
		m.Params.C = v
	case ParamZoom:
		m.Zoom = v
	case ParamDAngleX:
		m.Rotation.DAngleX = v
	case ParamDAngleY:
		m.Rotation.DAngleY = v
	case ParamDAngleZ:
		m.Rotation.DAngleZ = v
	case ParamDt:
		m.Dt = v
	case ParamMaxLength:
		m.MaxLength = int(v)
		c.trail.SetMaxLength(m.MaxLength)
		v = float64(m.MaxLength)
	}
	c.logger.Log(context.Background(), logging.LevelTrace, "param set", "family", m.Family, "param", p, "value", v)
	return v
}

// SetParam is Set by label. Out of range values are clamped, unknown
// labels return ErrParameterBounds.
func (c *Controller) SetParam(name string, v float64) (float64, error) {
	p, err := ParseParam(name)
	if err != nil {
		return 0, err
	}
	return c.Set(p, v), nil
}

func (c *Controller) SetA(v float64) float64    { return c.Set(ParamA, v) }
func (c *Controller) SetB(v float64) float64    { return c.Set(ParamB, v) }
func (c *Controller) SetC(v float64) float64    { return c.Set(ParamC, v) }
func (c *Controller) SetZoom(v float64) float64 { return c.Set(ParamZoom, v) }
func (c *Controller) SetDt(v float64) float64   { return c.Set(ParamDt, v) }

func (c *Controller) SetMaxLength(n int) int { return int(c.Set(ParamMaxLength, float64(n))) }

// SetRotationDelta sets the per-step increment of one axis; axis is 'x',
// 'y' or 'z'.
func (c *Controller) SetRotationDelta(axis byte, v float64) float64 {
	switch axis {
	case 'x', 'X':
		return c.Set(ParamDAngleX, v)
	case 'y', 'Y':
		return c.Set(ParamDAngleY, v)
	case 'z', 'Z':
		return c.Set(ParamDAngleZ, v)
	}
	return 0
}
