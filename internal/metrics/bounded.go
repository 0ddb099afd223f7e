package metrics

// Bounded is the fraction of samples whose quantity stayed within
// [min, max]. A run with no samples counts as fully bounded.
type Bounded struct {
	key        string
	min, max   float64
	violations int
	samples    int
}

func NewBounded(key string, min, max float64) *Bounded {
	return &Bounded{key: key, min: min, max: max}
}

func (b *Bounded) Name() string { return "bounded_" + b.key }

func (b *Bounded) Observe(t float64, s Sample) {
	v, ok := s[b.key]
	if !ok {
		return
	}
	b.samples++
	if !(v >= b.min && v <= b.max) {
		b.violations++
	}
}

func (b *Bounded) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Bounded) Reset() {
	b.violations = 0
	b.samples = 0
}
