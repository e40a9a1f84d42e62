// Package analysis provides offline tools for characterizing attractor
// trajectories.
//
//   - [Bounds]: observed bounding box and estimated midpoint
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [BifurcationDiagram]: parameter sweep of coordinate peaks
//   - [GeneratePhasePortrait]: 2D projection of a trajectory
//   - [GeneratePoincareSection]: crossings of an axis-aligned plane
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(physics.Lorenz, k, x0, 0.005, 20000, 1e-8)
//	if lambda > 0 {
//	    // System is chaotic
//	}
package analysis
