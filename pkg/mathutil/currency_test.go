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
		{"Exactly one cent", 0.01, 0.01},
		{"Nearly two cents", 0.019, 0.02},
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

func TestIsPositive(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, false},
		{"Sub-cent positive", 0.005, false},
		{"Exactly tolerance", 0.01, false},
		{"Just above tolerance", 0.02, true},
		{"Large positive", 100.0, true},
		{"Negative", -100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsPositive(tt.input)
			if result != tt.expected {
				t.Errorf("IsPositive(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	if Min(1.5, 2.5) != 1.5 || Min(2.5, 1.5) != 1.5 {
		t.Errorf("Min returned the wrong value")
	}
	if Max(1.5, 2.5) != 2.5 || Max(2.5, 1.5) != 2.5 {
		t.Errorf("Max returned the wrong value")
	}
}

func TestPercentageOf(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"Half", 50, 100, 50},
		{"Zero total", 50, 0, 0},
		{"Over 100 percent", 150, 100, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PercentageOf(tt.value, tt.total)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("PercentageOf(%v, %v) = %v, expected %v", tt.value, tt.total, result, tt.expected)
			}
		})
	}
}
