package metrics

import "math"

// EnergyDrift is the largest relative deviation of a quantity from its
// first sample. On the closed-form free fall it stays at rounding level.
type EnergyDrift struct {
	name          string
	key           string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(key string) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		key:  key,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(t float64, s Sample) {
	energy, ok := s[e.key]
	if !ok {
		return
	}

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// Peak is the largest value observed for a quantity.
type Peak struct {
	key     string
	peak    float64
	samples int
}

func NewPeak(key string) *Peak {
	return &Peak{key: key}
}

func (p *Peak) Name() string { return "peak_" + p.key }

func (p *Peak) Observe(t float64, s Sample) {
	v, ok := s[p.key]
	if !ok {
		return
	}
	if p.samples == 0 || v > p.peak {
		p.peak = v
	}
	p.samples++
}

func (p *Peak) Value() float64 { return p.peak }

func (p *Peak) Reset() {
	p.peak = 0
	p.samples = 0
}
