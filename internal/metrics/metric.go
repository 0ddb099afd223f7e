// Package metrics summarizes a sampled scenario run.
package metrics

// Sample is one observation of named scenario quantities.
type Sample map[string]float64

type Metric interface {
	Name() string
	Observe(t float64, s Sample)
	Value() float64
	Reset()
}

// Set observes every metric in one call.
type Set []Metric

func (ms Set) Observe(t float64, s Sample) {
	for _, m := range ms {
		m.Observe(t, s)
	}
}

func (ms Set) Reset() {
	for _, m := range ms {
		m.Reset()
	}
}

// Values returns each metric's value by name.
func (ms Set) Values() map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
