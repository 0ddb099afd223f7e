package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		correct float64
		tol     float64
		want    bool
	}{
		{"exact", "10", 10, 5, true},
		{"inside tolerance", "10.4", 10, 5, true},
		{"on tolerance edge", "10.5", 10, 5, true},
		{"outside tolerance", "10.6", 10, 5, false},
		{"negative correct", "-5.3", -5.458, 5, true},
		{"wrong sign", "5.458", -5.458, 5, false},
		{"surrounding whitespace", "  8.68\t", 8.684, 5, true},
		{"empty", "", 10, 5, false},
		{"garbage", "abc", 10, 5, false},
		{"nan text", "NaN", 10, 5, false},
		{"inf text", "Inf", 10, 5, false},
		{"zero correct accepts small", "0.05", 0, 5, true},
		{"zero correct rejects band edge", "0.1", 0, 5, false},
		{"near zero correct", "-0.09", 1e-9, 5, true},
		{"zero tolerance exact", "3", 3, 0, true},
		{"zero tolerance off", "3.0001", 3, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Check(tt.text, tt.correct, tt.tol))
		})
	}
}

func TestCheckDefaultTolerance(t *testing.T) {
	assert.True(t, Check("1.443", 1.4430, DefaultTolerancePercent))
	assert.True(t, Check("1.5", 1.443, DefaultTolerancePercent))
	assert.False(t, Check("1.6", 1.443, DefaultTolerancePercent))
}

func TestParse(t *testing.T) {
	v, ok := Parse(" -2.5e1 ")
	require.True(t, ok)
	assert.Equal(t, -25.0, v)

	_, ok = Parse("+Inf")
	assert.False(t, ok)
}

func TestSheet(t *testing.T) {
	s := NewSheet(DefaultTolerancePercent,
		Field{Key: "pos_y", Label: "y(t)", Unit: "m"},
		Field{Key: "vel_y", Label: "vy(t)", Unit: "m/s"},
		Field{Key: "time_max", Label: "t_max", Unit: "s"},
	)

	require.NoError(t, s.Set("pos_y", "8.68"))
	require.NoError(t, s.Set("vel_y", "5"))
	assert.Error(t, s.Set("range", "1"))

	n := s.Grade(map[string]float64{"pos_y": 8.684, "vel_y": -5.458, "time_max": 1.443})
	assert.Equal(t, 1, n)

	v := s.Verdicts()
	assert.Equal(t, Correct, v["pos_y"])
	assert.Equal(t, Incorrect, v["vel_y"])
	assert.Equal(t, Incorrect, v["time_max"])

	require.NoError(t, s.Set("vel_y", "-5.4"))
	f, ok := s.Field("vel_y")
	require.True(t, ok)
	assert.Equal(t, Pending, f.Verdict)
	assert.Equal(t, Correct, s.Verdicts()["pos_y"])

	s.Clear()
	for _, f := range s.Fields() {
		assert.Empty(t, f.Text)
		assert.Equal(t, Pending, f.Verdict)
	}
	assert.Equal(t, []string{"pos_y", "time_max", "vel_y"}, s.Keys())
}

func TestSheetGradeMissingExpectation(t *testing.T) {
	s := NewSheet(5, Field{Key: "a"}, Field{Key: "b"})
	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("b", "2"))

	assert.Equal(t, 1, s.Grade(map[string]float64{"a": 1}))
	assert.Equal(t, Pending, s.Verdicts()["b"])
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "correct", Correct.String())
	assert.Equal(t, "incorrect", Incorrect.String())
}
