package analysis

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// FFT returns the len(data)/2+1 non-negative frequency coefficients.
func FFT(data []float64) []complex128 {
	if len(data) == 0 {
		return nil
	}
	return fourier.NewFFT(len(data)).Coefficients(nil, data)
}

// PowerSpectrum returns coefficient magnitudes after removing the mean, so
// index 0 is zero and the spectrum reflects fluctuation only.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	mean := stat.Mean(data, nil)
	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	coeffs := FFT(centred)
	ps := make([]float64, len(coeffs))
	for i, c := range coeffs {
		ps[i] = cmplx.Abs(c)
	}
	return ps
}

// DominantFrequency returns the frequency with the largest magnitude for a
// series sampled every dt, skipping the zero frequency. A constant series
// returns (0, 0).
func DominantFrequency(data []float64, dt float64) (freq, magnitude float64) {
	if len(data) < 2 || dt <= 0 {
		return 0, 0
	}

	ps := PowerSpectrum(data)
	best := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	if best == 0 {
		return 0, 0
	}

	fft := fourier.NewFFT(len(data))
	return fft.Freq(best) / dt, ps[best]
}

type Summary struct {
	Mean        float64
	StdDev      float64
	Min         float64
	Max         float64
	DominantHz  float64
	DominantMag float64
}

func Summarize(data []float64, dt float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}
	s := Summary{Min: data[0], Max: data[0]}
	for _, v := range data {
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
	}
	s.Mean, s.StdDev = stat.MeanStdDev(data, nil)
	s.DominantHz, s.DominantMag = DominantFrequency(data, dt)
	return s
}
