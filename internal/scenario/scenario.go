// Package scenario holds the four interactive lab scenarios. Each scenario
// owns its parameters and, when it animates, a clock driver whose timeline
// is the scenario itself.
package scenario

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/mechlab/internal/clock"
	"github.com/san-kum/mechlab/internal/physics"
)

var (
	ErrUnknownParam    = errors.New("scenario: unknown parameter")
	ErrUnknownScenario = errors.New("scenario: unknown scenario")
)

// Param describes one adjustable input. Min, Max and Step bound interactive
// adjustment only; Set accepts any finite value.
type Param struct {
	Name  string
	Label string
	Unit  string
	Min   float64
	Max   float64
	Step  float64
}

// Clamp limits v to the parameter's interactive range.
func (p Param) Clamp(v float64) float64 {
	return math.Max(p.Min, math.Min(p.Max, v))
}

// Reading is one labelled value shown to the learner.
type Reading struct {
	Label string
	Value float64
	Unit  string
}

func (r Reading) String() string {
	if r.Unit == "" {
		return fmt.Sprintf("%s: %.2f", r.Label, r.Value)
	}
	return fmt.Sprintf("%s: %.2f %s", r.Label, r.Value, r.Unit)
}

type Scenario interface {
	Name() string
	Title() string
	Params() []Param
	Get(name string) (float64, error)
	Set(name string, value float64) error
	// Clock returns nil for scenarios that do not animate.
	Clock() *clock.Driver
	// Reset rewinds the scenario to its initial moment.
	Reset()
	Readout() []Reading
}

// Quiz is implemented by scenarios that grade typed answers.
type Quiz interface {
	Expected() map[string]float64
}

// Apply sets every value in params on s. Unknown names are rejected before
// anything is changed.
func Apply(s Scenario, params map[string]float64) error {
	for name := range params {
		if _, err := s.Get(name); err != nil {
			return err
		}
	}
	for _, p := range s.Params() {
		v, ok := params[p.Name]
		if !ok {
			continue
		}
		if err := s.Set(p.Name, v); err != nil {
			return err
		}
	}
	return nil
}

// Adjust moves the named parameter by steps increments, clamped to its
// interactive range.
func Adjust(s Scenario, name string, steps int) error {
	for _, p := range s.Params() {
		if p.Name != name {
			continue
		}
		cur, err := s.Get(name)
		if err != nil {
			return err
		}
		next := p.Clamp(cur + float64(steps)*p.Step)
		// strip accumulated float noise from repeated steps
		next = math.Round(next*1e6) / 1e6
		return s.Set(name, next)
	}
	return fmt.Errorf("%q: %w", name, ErrUnknownParam)
}

func checkValue(name string, value float64) error {
	return physics.CheckFinite(name, value)
}

func unknown(name string) error {
	return fmt.Errorf("%q: %w", name, ErrUnknownParam)
}
