package scenario

import (
	"fmt"

	"github.com/san-kum/mechlab/internal/config"
)

type Registry struct {
	cfg       *config.Config
	order     []string
	scenarios map[string]func(*config.Config) Scenario
}

func NewRegistry(cfg *config.Config) *Registry {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	r := &Registry{
		cfg:       cfg,
		scenarios: make(map[string]func(*config.Config) Scenario),
	}

	r.register("vectors", func(c *config.Config) Scenario { return NewVectors(c.Vectors) })
	r.register("projectile", func(c *config.Config) Scenario { return NewProjectile(c.Projectile, c.Answers) })
	r.register("forces", func(c *config.Config) Scenario { return NewForces(c.Forces) })
	r.register("energy", func(c *config.Config) Scenario { return NewEnergy(c.Energy) })

	return r
}

func (r *Registry) register(name string, fn func(*config.Config) Scenario) {
	r.order = append(r.order, name)
	r.scenarios[name] = fn
}

// Get builds a fresh scenario from the registry's configuration.
func (r *Registry) Get(name string) (Scenario, error) {
	fn, ok := r.scenarios[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownScenario)
	}
	return fn(r.cfg), nil
}

// Names lists the scenarios in lesson order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
