// Package analysis characterises metric series recorded during a run.
//
//   - [FFT]: real Fourier coefficients of a series
//   - [PowerSpectrum]: coefficient magnitudes of the mean-removed series
//   - [DominantFrequency]: strongest non-zero frequency, in cycles per unit time
//   - [Summarize]: mean, spread and dominant frequency in one pass
//
// # Flicker
//
// A burning flame pulses at a characteristic frequency. Feeding the
// total density or reaction mass series into DominantFrequency recovers it:
//
//	freq, _ := analysis.DominantFrequency(result.Series["reaction_mass"], dt)
package analysis
