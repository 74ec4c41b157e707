package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeMassStats(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	ms := ComputeMassStats(values)

	if math.Abs(ms.Mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", ms.Mean)
	}
	if math.Abs(ms.Total-55) > 0.001 {
		t.Errorf("total = %v, want 55", ms.Total)
	}
	// Sample standard deviation of 1..10
	if math.Abs(ms.Std-3.0277) > 0.001 {
		t.Errorf("std = %v, want ~3.0277", ms.Std)
	}
	if math.Abs(ms.P10-1.9) > 0.01 {
		t.Errorf("p10 = %v, want ~1.9", ms.P10)
	}
	if math.Abs(ms.P50-5.5) > 0.01 {
		t.Errorf("p50 = %v, want ~5.5", ms.P50)
	}
	if math.Abs(ms.P90-9.1) > 0.01 {
		t.Errorf("p90 = %v, want ~9.1", ms.P90)
	}

	// Input must not be reordered
	if values[0] != 10 {
		t.Error("ComputeMassStats sorted the caller's slice")
	}
}

func TestComputeMassStatsSmall(t *testing.T) {
	if ms := ComputeMassStats(nil); ms != (MassStats{}) {
		t.Errorf("empty input = %+v, want zero", ms)
	}

	ms := ComputeMassStats([]float64{4})
	if ms.Mean != 4 || ms.Std != 0 || ms.P50 != 4 || ms.Total != 4 {
		t.Errorf("single value = %+v", ms)
	}
}
