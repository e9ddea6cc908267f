package utils

import (
	"math"
	"testing"
)

func TestDistanceMiles_ZeroForIdenticalPoints(t *testing.T) {
	if d := DistanceMiles(40.7128, -74.0060, 40.7128, -74.0060); d != 0 {
		t.Errorf("expected 0 for identical points, got %v", d)
	}
}

func TestDistanceMiles_Symmetric(t *testing.T) {
	a := DistanceMiles(40.7128, -74.0060, 34.0522, -118.2437)
	b := DistanceMiles(34.0522, -118.2437, 40.7128, -74.0060)
	if a != b {
		t.Errorf("expected symmetric distance, got %v and %v", a, b)
	}
	if a <= 0 {
		t.Errorf("expected positive distance, got %v", a)
	}
}

func TestDistanceMiles_OneDegreeLatitude(t *testing.T) {
	// one degree of latitude is ~69.09 miles
	d := DistanceMiles(40, -111, 41, -111)
	if math.Abs(d-69.09) > 0.1 {
		t.Errorf("expected ~69.09 miles, got %v", d)
	}
}

func TestDistanceMiles_RoundedToTwoDecimals(t *testing.T) {
	d := DistanceMiles(40.7128, -74.0060, 40.7306, -73.9352)
	if d*100 != math.Round(d*100) {
		t.Errorf("expected 2-decimal rounding, got %v", d)
	}
}

func TestRoundCoord(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{40.712776, 40.71},
		{-74.005974, -74.01},
		{0, 0},
		{1.005, 1.0}, // float64 representation of 1.005 is just below it
	}
	for _, tt := range tests {
		if got := RoundCoord(tt.in); got != tt.want {
			t.Errorf("RoundCoord(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
