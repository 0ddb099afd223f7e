// Package integrators advances ordinary differential equations by fixed
// time steps. States are laid out positions first, then velocities.
package integrators

import (
	"fmt"
	"sort"
)

type State []float64

func (s State) Clone() State {
	out := make(State, len(s))
	copy(out, s)
	return out
}

// System returns dx/dt at state x and time t.
type System interface {
	Derive(x State, t float64) State
}

// SystemFunc adapts a function to System.
type SystemFunc func(x State, t float64) State

func (f SystemFunc) Derive(x State, t float64) State { return f(x, t) }

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

var registry = map[string]func() Integrator{
	"euler":  func() Integrator { return NewEuler() },
	"rk4":    func() Integrator { return NewRK4() },
	"verlet": func() Integrator { return NewVerlet() },
}

// Get returns a fresh integrator by name.
func Get(name string) (Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
