package analysis

import (
	"fmt"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/integrators"
	"github.com/san-kum/attractors/internal/physics"
)

// BifurcationPoint holds the distinct local maxima of one coordinate for
// a single parameter value.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// SetParam returns k with the named parameter ("a", "b" or "c") replaced.
func SetParam(k dynamo.Params, name string, v float64) (dynamo.Params, error) {
	switch name {
	case "a":
		k.A = v
	case "b":
		k.B = v
	case "c":
		k.C = v
	default:
		return k, &dynamo.ParamError{Name: name, Value: v, Wrapped: dynamo.ErrParameterBounds}
	}
	return k, nil
}

// BifurcationDiagram sweeps a parameter and records the peaks of one
// coordinate after a transient, the way the Lorenz map is drawn.
//
// Parameters:
// - f, k: family and base parameters
// - paramName: which of a, b, c to sweep between paramMin and paramMax
// - paramSteps: number of parameter values to test
// - axis: which coordinate to record
// - dt, transient, record: step size and step counts
func BifurcationDiagram(
	f physics.Family,
	k dynamo.Params,
	paramName string,
	paramMin, paramMax float64,
	paramSteps int,
	axis Axis,
	x0 dynamo.Point3,
	dt float64,
	transient, record int,
) ([]BifurcationPoint, error) {
	if paramSteps <= 1 {
		paramSteps = 2 // Prevent division by zero
	}
	paramStep := (paramMax - paramMin) / float64(paramSteps-1)
	integ := integrators.NewEuler()

	results := make([]BifurcationPoint, 0, paramSteps)
	for i := 0; i < paramSteps; i++ {
		param := paramMin + float64(i)*paramStep
		kk, err := SetParam(k, paramName, param)
		if err != nil {
			return nil, fmt.Errorf("bifurcation: %w", err)
		}

		x := x0
		for j := 0; j < transient; j++ {
			x = integ.Step(f, x, kk, dt)
		}

		values := make([]float64, 0, 64)
		seen := make(map[int]bool)
		prev, curr := axis.Of(x), axis.Of(x)
		for j := 0; j < record; j++ {
			x = integ.Step(f, x, kk, dt)
			next := axis.Of(x)
			if curr > prev && curr >= next {
				// Quantize to find distinct values
				key := int(curr * 1000)
				if !seen[key] {
					seen[key] = true
					values = append(values, curr)
				}
			}
			prev, curr = curr, next
		}

		results = append(results, BifurcationPoint{Param: param, Values: values})
	}

	return results, nil
}

// BifurcationToASCII converts bifurcation data to ASCII art
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range data {
		for _, v := range p.Values {
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			minVal, maxVal = min(minVal, v), max(maxVal, v)
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := blankCanvas(width, height)
	for i, p := range data {
		col := min(i*width/len(data), width-1)
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	return canvasString(canvas)
}
