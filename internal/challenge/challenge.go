// Package challenge generates randomized friction problems for the forces
// scenario and grades the learner's answer.
package challenge

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/san-kum/mechlab/internal/answer"
	"github.com/san-kum/mechlab/internal/physics"
)

// Target is the quantity a challenge asks for.
type Target int

const (
	Normal Target = iota
	Friction
	Acceleration
)

var targets = []Target{Normal, Friction, Acceleration}

func (t Target) String() string {
	switch t {
	case Normal:
		return "normal"
	case Friction:
		return "friction"
	case Acceleration:
		return "acceleration"
	default:
		return fmt.Sprintf("target(%d)", int(t))
	}
}

// Prompt is the question shown for the target.
func (t Target) Prompt() string {
	switch t {
	case Normal:
		return "Calculate the normal force (N)"
	case Friction:
		return "Calculate the friction force (N)"
	default:
		return "Calculate the acceleration (m/s²)"
	}
}

// Source is the randomness a Generator draws from. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
	Float64() float64
}

// NewSeeded returns a deterministic PCG source.
func NewSeeded(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type Challenge struct {
	ID        string
	Mass      float64
	Force     float64
	Angle     float64
	MuStatic  float64
	MuKinetic float64
	Target    Target
	// Value is the correct answer.
	Value float64
}

type Feedback struct {
	Correct bool
	Message string
}

type Generator struct {
	src Source
}

// NewGenerator draws from src, or from a randomly seeded source when src is
// nil.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{src: src}
}

// Next draws mass, force, angle, kinetic friction and then the target, in
// that order.
func (g *Generator) Next() *Challenge {
	mass := float64(10 + g.src.IntN(50))
	force := float64(50 + g.src.IntN(200))
	angle := float64(g.src.IntN(60))
	muK := round2(g.src.Float64()*0.5 + 0.1)
	muS := round2(muK + 0.2)
	target := targets[g.src.IntN(len(targets))]

	res := physics.Dynamics(mass, force, angle, muS, muK)

	var value float64
	switch target {
	case Normal:
		value = res.Normal
	case Friction:
		value = math.Abs(res.Friction)
	case Acceleration:
		value = res.Acceleration
	}

	return &Challenge{
		ID:        uuid.NewString(),
		Mass:      mass,
		Force:     force,
		Angle:     angle,
		MuStatic:  muS,
		MuKinetic: muK,
		Target:    target,
		Value:     value,
	}
}

func (c *Challenge) Prompt() string { return c.Target.Prompt() }

// Tolerance is 5% of the answer with a floor of 0.1.
func (c *Challenge) Tolerance() float64 {
	return math.Max(0.1, math.Abs(c.Value)*0.05)
}

// Check grades text. ok is false when text is not a number, in which case
// no feedback is produced.
func (c *Challenge) Check(text string) (fb Feedback, ok bool) {
	v, ok := answer.Parse(text)
	if !ok {
		return Feedback{}, false
	}
	if math.Abs(v-c.Value) <= c.Tolerance() {
		return Feedback{Correct: true, Message: "Correct! Well done."}, true
	}
	return Feedback{Message: fmt.Sprintf("Incorrect. The value was %.2f", c.Value)}, true
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
