// Package dynamo provides the core value types shared by the attractor
// simulation.
//
//   - [Point3]: one trajectory sample in 3D space
//   - [Params]: the a, b, c coefficients of an attractor family
//
// The sentinel errors defined here are returned by the configuration and
// lookup layers; the numerical core itself never fails.
//
// # Thread Safety
//
// All types in this package are plain values and safe to copy. Nothing in
// the simulation above it is safe for concurrent use.
package dynamo
