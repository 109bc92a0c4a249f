package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Large negative", -12345.678, -12345.68},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(1000.0, 1000.004, 0.01) {
		t.Errorf("WithinTolerance() expected values to be within tolerance")
	}
	if WithinTolerance(1000.0, 1000.02, 0.01) {
		t.Errorf("WithinTolerance() expected values to be outside tolerance")
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Ordinary", 12.5, true},
		{"NaN", math.NaN(), false},
		{"Positive infinity", math.Inf(1), false},
		{"Negative infinity", math.Inf(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsFinite(tt.input); result != tt.expected {
				t.Errorf("IsFinite(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSum(t *testing.T) {
	values := make([]float64, 10)
	for i := range values {
		values[i] = 0.1
	}
	if result := Sum(values...); result != 1.0 {
		t.Errorf("Sum() of ten 0.1 values = %v, expected exactly 1", result)
	}
	if result := Sum(); result != 0 {
		t.Errorf("Sum() of nothing = %v, expected 0", result)
	}
	if result := Sum(1800, -300.5); result != 1499.5 {
		t.Errorf("Sum() = %v, expected 1499.5", result)
	}
}
