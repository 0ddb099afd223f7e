// Package physics provides the closed-form mechanics used by every scenario.
//
// All functions are pure and deterministic. Gravitational acceleration is the
// fixed constant [G] (9.8 m/s²):
//
//   - [VectorComponents], [VectorResultant]: planar vector addition
//   - [Projectile], [FlightTime], [ProjectilePoint]: projectile kinematics
//   - [Dynamics]: block on a surface with static and kinetic friction
//   - [Energy], [FreeFall], [ImpactTime]: energy conservation in free fall
//
// # Non-finite Inputs
//
// Functions never panic or return errors. Out-of-range inputs such as a
// negative mass produce well-formed (if physically odd) results. NaN and Inf
// inputs propagate into at least one non-finite output field; callers that
// accept numbers from outside reject them first with [CheckFinite]:
//
//	if err := physics.CheckFinite("mass", mass); err != nil {
//	    return err
//	}
//	res := physics.Dynamics(mass, force, angle, muS, muK)
package physics
