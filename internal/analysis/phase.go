package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/integrators"
	"github.com/san-kum/attractors/internal/physics"
)

// Axis selects one coordinate of a point.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string { return [...]string{"x", "y", "z"}[a] }

// Of returns the coordinate of p along a.
func (a Axis) Of(p dynamo.Point3) float64 {
	switch a {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

// ParseAxis reads a single axis name.
func ParseAxis(s string) (Axis, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	idx := strings.Index("xyz", s)
	if len(s) != 1 || idx < 0 {
		return 0, fmt.Errorf("axis %q: expected x, y or z", s)
	}
	return Axis(idx), nil
}

// ParseAxes reads a two letter plane name such as "xz".
func ParseAxes(s string) (Axis, Axis, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return 0, 0, fmt.Errorf("plane %q: expected two of x, y, z", s)
	}
	a, err := ParseAxis(s[:1])
	if err != nil {
		return 0, 0, fmt.Errorf("plane %q: %w", s, err)
	}
	b, err := ParseAxis(s[1:])
	if err != nil {
		return 0, 0, fmt.Errorf("plane %q: %w", s, err)
	}
	if a == b {
		return 0, 0, fmt.Errorf("plane %q: axes must differ", s)
	}
	return a, b, nil
}

// PhasePortrait2D holds a trajectory flattened onto two axes.
type PhasePortrait2D struct {
	XAxis, YAxis Axis
	Points       []struct{ X, Y float64 }
}

// PortraitFromPoints flattens an existing trajectory, for example a
// recorded run.
func PortraitFromPoints(points []dynamo.Point3, xa, ya Axis) *PhasePortrait2D {
	portrait := &PhasePortrait2D{
		XAxis:  xa,
		YAxis:  ya,
		Points: make([]struct{ X, Y float64 }, 0, len(points)),
	}
	for _, p := range points {
		portrait.Points = append(portrait.Points, struct{ X, Y float64 }{X: xa.Of(p), Y: ya.Of(p)})
	}
	return portrait
}

// GeneratePhasePortrait integrates steps points from x0 and flattens them.
func GeneratePhasePortrait(
	f physics.Family,
	k dynamo.Params,
	x0 dynamo.Point3,
	xa, ya Axis,
	dt float64,
	steps int,
) *PhasePortrait2D {
	integ := integrators.NewEuler()
	points := make([]dynamo.Point3, 0, steps)
	x := x0
	for i := 0; i < steps; i++ {
		x = integ.Step(f, x, k, dt)
		points = append(points, x)
	}
	return PortraitFromPoints(points, xa, ya)
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y
	for _, p := range portrait.Points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := blankCanvas(width, height)

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Draw axes if they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	return canvasString(canvas)
}

// PoincareSection records points when a trajectory crosses a plane
type PoincareSection struct {
	Points []struct{ X, Y float64 }
}

// GeneratePoincareSection records the (recordX, recordY) coordinates every
// time the cross coordinate rises through threshold.
func GeneratePoincareSection(
	f physics.Family,
	k dynamo.Params,
	x0 dynamo.Point3,
	cross Axis,
	threshold float64,
	recordX, recordY Axis,
	dt float64,
	steps int,
) *PoincareSection {
	section := &PoincareSection{}
	integ := integrators.NewEuler()

	x := x0
	prevVal := cross.Of(x)
	for i := 0; i < steps; i++ {
		prev := x
		x = integ.Step(f, x, k, dt)
		currVal := cross.Of(x)

		if prevVal < threshold && currVal >= threshold {
			// Interpolate onto the plane
			frac := (threshold - prevVal) / (currVal - prevVal)
			p := prev.Add(x.Sub(prev).Scale(frac))
			section.Points = append(section.Points, struct{ X, Y float64 }{
				X: recordX.Of(p),
				Y: recordY.Of(p),
			})
		}

		prevVal = currVal
	}

	return section
}

// PoincareSectionToASCII converts section data to ASCII plot
func PoincareSectionToASCII(section *PoincareSection, width, height int) string {
	if section == nil || len(section.Points) == 0 {
		return "No crossings detected"
	}
	return PhasePortraitToASCII(&PhasePortrait2D{Points: section.Points}, width, height)
}

func blankCanvas(width, height int) [][]rune {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}
	return canvas
}

func canvasString(canvas [][]rune) string {
	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
