package analysis

import (
	"math"

	"github.com/san-kum/attractors/internal/dynamo"
	"github.com/san-kum/attractors/internal/integrators"
	"github.com/san-kum/attractors/internal/physics"
)

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method. A positive value indicates chaos.
//
// Algorithm:
// 1. Run two nearby trajectories with the Euler step
// 2. Measure their divergence after every step
// 3. λ ≈ (1/t) * ln(|δx(t)/δx(0)|), renormalizing δx when it grows
func LyapunovExponent(
	f physics.Family,
	k dynamo.Params,
	x0 dynamo.Point3,
	dt float64,
	steps int,
	perturbation float64,
) float64 {
	if steps <= 0 || dt <= 0 || perturbation <= 0 {
		return 0
	}

	integ := integrators.NewEuler()
	x := x0
	xp := x0.Add(dynamo.Point3{X: perturbation})
	d0 := perturbation

	sumLog := 0.0
	count := 0

	for i := 0; i < steps; i++ {
		x = integ.Step(f, x, k, dt)
		xp = integ.Step(f, xp, k, dt)

		sep := xp.Sub(x).Norm()
		if math.IsNaN(sep) || math.IsInf(sep, 0) {
			break
		}
		if sep > 0 {
			sumLog += math.Log(sep / d0)
			count++
			// Renormalize to keep the pair inside the linear regime
			xp = x.Add(xp.Sub(x).Scale(d0 / sep))
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * dt)
}
