// Package traj provides the single-particle trajectory integrator.
//
// The package defines the core types for advecting a particle through a
// steady-state 2D velocity field:
//
//   - [Position]: particle location in degrees latitude/longitude
//   - [Field]: point-sampling capability a velocity field must expose
//   - [Integrate]: forward-Euler stepping loop producing a [Result]
//
// # Integration Scheme
//
// Integration is explicit forward Euler with a fixed unit time step. At each
// step the field is sampled at the just-computed position and the velocity
// components are added directly to latitude and longitude:
//
//	lat[i+1] = lat[i] + v
//	lon[i+1] = lon[i] + u
//
// There is no cos(latitude) scaling of the longitude displacement, no
// wraparound at the date line, and no clamping at the poles. This matches the
// reference behavior exactly and must not be "fixed" without changing the
// contract.
//
// # Domain Exit
//
// A trajectory is free to leave the field's covered extent. A field that
// clamps lookups to its nearest edge value keeps the integration alive; when
// the field also implements [Bounded], each out-of-extent step is recorded as
// an advisory [DomainExit] warning on the result.
package traj
