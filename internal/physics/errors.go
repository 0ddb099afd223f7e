package physics

import (
	"errors"
	"fmt"
	"math"
)

// ErrNonFinite indicates a NaN or infinite input at a validation boundary.
var ErrNonFinite = errors.New("physics: non-finite value")

// CheckFinite returns an error wrapping ErrNonFinite if any value is NaN or ±Inf.
func CheckFinite(name string, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s = %v: %w", name, v, ErrNonFinite)
		}
	}
	return nil
}
