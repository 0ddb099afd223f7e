// Package answer grades numeric answers typed by a learner against a
// computed value.
package answer

import (
	"math"
	"strconv"
	"strings"
)

// DefaultTolerancePercent is the relative tolerance used by the scenarios.
const DefaultTolerancePercent = 5.0

// nearZero is the magnitude below which a correct value is treated as zero
// and zeroBand the absolute band accepted around it.
const (
	nearZero = 1e-6
	zeroBand = 0.1
)

// Check reports whether text parses to a number within tolerancePercent of
// correct. Unparseable or non-finite input is never correct.
func Check(text string, correct, tolerancePercent float64) bool {
	user, ok := Parse(text)
	if !ok {
		return false
	}
	return Within(user, correct, tolerancePercent)
}

// Parse trims text and parses it as a finite float.
func Parse(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Within applies the grading rule to an already parsed value.
func Within(user, correct, tolerancePercent float64) bool {
	if math.Abs(correct) < nearZero {
		return math.Abs(user) < zeroBand
	}
	return math.Abs(user-correct) <= math.Abs(correct)*tolerancePercent/100
}
