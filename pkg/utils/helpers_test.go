package utils

import (
	"math"
	"testing"
)

func TestRowLabel(t *testing.T) {
	tests := []struct {
		name     string
		row      int
		expected string
	}{
		{name: "first row", row: 0, expected: "A"},
		{name: "last single letter", row: 25, expected: "Z"},
		{name: "first double letter", row: 26, expected: "AA"},
		{name: "second double letter", row: 27, expected: "AB"},
		{name: "end of AZ", row: 51, expected: "AZ"},
		{name: "negative", row: -1, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RowLabel(tt.row)
			if result != tt.expected {
				t.Errorf("RowLabel(%d) = %q, expected %q", tt.row, result, tt.expected)
			}
		})
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{input: 21.04, expected: 21.0},
		{input: 21.05, expected: 21.1},
		{input: -3.26, expected: -3.3},
		{input: 40, expected: 40},
	}

	for _, tt := range tests {
		result := Round1(tt.input)
		if math.Abs(result-tt.expected) > 1e-9 {
			t.Errorf("Round1(%v) = %v, expected %v", tt.input, result, tt.expected)
		}
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(3, 8, 40); got != 8 {
		t.Errorf("ClampInt(3, 8, 40) = %d, expected 8", got)
	}
	if got := ClampInt(55, 8, 40); got != 40 {
		t.Errorf("ClampInt(55, 8, 40) = %d, expected 40", got)
	}
	if got := ClampInt(20, 8, 40); got != 20 {
		t.Errorf("ClampInt(20, 8, 40) = %d, expected 20", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1.5) {
		t.Error("IsFinite(1.5) = false")
	}
	if IsFinite(math.NaN()) {
		t.Error("IsFinite(NaN) = true")
	}
	if IsFinite(math.Inf(-1)) {
		t.Error("IsFinite(-Inf) = true")
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name     string
		slice    []string
		item     string
		expected bool
	}{
		{
			name:     "found",
			slice:    []string{"a", "b", "c"},
			item:     "b",
			expected: true,
		},
		{
			name:     "not found",
			slice:    []string{"a", "b", "c"},
			item:     "d",
			expected: false,
		},
		{
			name:     "empty slice",
			slice:    []string{},
			item:     "a",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Contains(tt.slice, tt.item)
			if result != tt.expected {
				t.Errorf("Contains(%v, %q) = %v, expected %v", tt.slice, tt.item, result, tt.expected)
			}
		})
	}
}

func TestIndexOf(t *testing.T) {
	slice := []string{"rack-001", "rack-002", "rack-003"}
	if got := IndexOf(slice, "rack-002"); got != 1 {
		t.Errorf("IndexOf() = %d, expected 1", got)
	}
	if got := IndexOf(slice, "rack-999"); got != -1 {
		t.Errorf("IndexOf() = %d, expected -1", got)
	}
}
