package analysis

import (
	"math"
	"testing"
)

func sine(n int, cycles, offset float64) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = offset + math.Sin(2*math.Pi*cycles*float64(i)/float64(n))
	}
	return data
}

func TestFFTLength(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{8, 5},
		{9, 5},
	}

	for _, tt := range tests {
		if got := len(FFT(make([]float64, tt.n))); got != tt.want {
			t.Errorf("n=%d: expected %d coefficients, got %d", tt.n, tt.want, got)
		}
	}
}

func TestPowerSpectrumRemovesMean(t *testing.T) {
	ps := PowerSpectrum(sine(64, 4, 10))
	if ps[0] > 1e-9 {
		t.Errorf("expected zero DC component, got %f", ps[0])
	}
	if ps[4] < 30 {
		t.Errorf("expected a peak at bin 4, got %f", ps[4])
	}
}

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		dt   float64
		want float64
	}{
		{"four cycles in 6.4 time units", sine(64, 4, 1), 0.1, 4 / 6.4},
		{"odd length", sine(45, 3, 0), 0.5, 3 / 22.5},
		{"constant", []float64{2, 2, 2, 2}, 0.1, 0},
		{"too short", []float64{1}, 0.1, 0},
		{"bad dt", sine(16, 2, 0), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := DominantFrequency(tt.data, tt.dt)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{1, 3, 1, 3}, 1)
	if s.Mean != 2 || s.Min != 1 || s.Max != 3 {
		t.Errorf("unexpected summary %+v", s)
	}
	if math.Abs(s.DominantHz-0.5) > 1e-9 {
		t.Errorf("expected Nyquist frequency 0.5, got %f", s.DominantHz)
	}
	if (Summarize(nil, 1) != Summary{}) {
		t.Error("expected zero summary for empty series")
	}
}
