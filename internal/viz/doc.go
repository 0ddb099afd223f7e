// Package viz draws the lab scenes in the terminal.
//
// Scenes are drawn onto a [Canvas] of braille cells, which gives each
// character cell a 2x4 grid of sub-pixels:
//
//   - [DrawVectors]: vectors A, B and the resultant R from a common origin
//   - [DrawTrajectory]: projectile flight against the ground line
//   - [DrawForces]: a block on a rough floor with its force arrows
//   - [DrawEnergy]: a drop tower beside PE, KE and total energy bars
//
// Scaling is guarded for degenerate inputs: a zero range or height counts
// as one metre, trajectory zoom is capped at [MaxTrajectoryScale], energy
// bars use [FallbackEnergy] when the total is not positive, and vectors use
// [FallbackVectorExtent] when every component is zero.
//
// Colours come from a [Theme]; [NewStyles] derives the lipgloss styles the
// TUI renders with.
package viz
