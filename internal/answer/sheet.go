package answer

import (
	"fmt"
	"sort"
)

// Verdict is the grading state of a single answer field.
type Verdict int

const (
	Pending Verdict = iota
	Correct
	Incorrect
)

func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "pending"
	}
}

// Field is one entry on a Sheet.
type Field struct {
	Key     string
	Label   string
	Unit    string
	Text    string
	Verdict Verdict
}

// Sheet is an ordered set of answer fields graded together.
type Sheet struct {
	Tolerance float64
	fields    []Field
	index     map[string]int
}

// NewSheet creates a sheet with the given field keys and labels, in order.
func NewSheet(tolerance float64, fields ...Field) *Sheet {
	s := &Sheet{
		Tolerance: tolerance,
		fields:    make([]Field, len(fields)),
		index:     make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		f.Text = ""
		f.Verdict = Pending
		s.fields[i] = f
		s.index[f.Key] = i
	}
	return s
}

// Fields returns a copy of the fields in display order.
func (s *Sheet) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

func (s *Sheet) Field(key string) (Field, bool) {
	i, ok := s.index[key]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Set replaces the text of a field and marks it pending again.
func (s *Sheet) Set(key, text string) error {
	i, ok := s.index[key]
	if !ok {
		return fmt.Errorf("answer: unknown field %q", key)
	}
	s.fields[i].Text = text
	s.fields[i].Verdict = Pending
	return nil
}

// Clear empties every field.
func (s *Sheet) Clear() {
	for i := range s.fields {
		s.fields[i].Text = ""
		s.fields[i].Verdict = Pending
	}
}

// Grade checks every field against expected, keyed by field key. Fields with
// no expected value stay pending. The number of correct fields is returned.
func (s *Sheet) Grade(expected map[string]float64) int {
	correct := 0
	for i := range s.fields {
		want, ok := expected[s.fields[i].Key]
		if !ok {
			s.fields[i].Verdict = Pending
			continue
		}
		if Check(s.fields[i].Text, want, s.Tolerance) {
			s.fields[i].Verdict = Correct
			correct++
		} else {
			s.fields[i].Verdict = Incorrect
		}
	}
	return correct
}

// Verdicts returns the verdict of each field by key.
func (s *Sheet) Verdicts() map[string]Verdict {
	out := make(map[string]Verdict, len(s.fields))
	for _, f := range s.fields {
		out[f.Key] = f.Verdict
	}
	return out
}

// Keys returns the field keys sorted alphabetically.
func (s *Sheet) Keys() []string {
	keys := make([]string, 0, len(s.index))
	for k := range s.index {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
