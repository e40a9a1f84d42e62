// Package physics provides the vector fields of the six supported strange
// attractor families.
//
// Each family is a pure function of the current point and the [dynamo.Params]
// coefficients, returning (dx/dt, dy/dt, dz/dt):
//
//   - [Lorenz]: butterfly attractor
//   - [Banlue]: tanh-coupled three-scroll system
//   - [Halvorsen]: cyclically symmetric attractor
//   - [Aizawa]: torus-like attractor with a central tube
//   - [LuChen]: Lü–Chen unified system
//   - [Genesio]: jerk system of Genesio and Tesi
//
// The set is closed. [Derive] dispatches over it with a single switch:
//
//	dx := physics.Derive(physics.Lorenz, p, dynamo.Params{A: 10, B: 28, C: 8.0 / 3.0})
package physics
