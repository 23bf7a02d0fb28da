// Package analysis offers spectral inspection of a run's order
// parameter trace. Pre-lock, the mean metronome beat (~1.1 Hz in the
// classic preset) dominates the spectrum.
package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns magnitudes for the positive-frequency half of
// the signal's FFT. Input is zero-padded to a power of two.
func PowerSpectrum(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the strongest non-DC frequency in hertz for
// a signal sampled at sampleRate Hz, or 0 for degenerate input.
func DominantFrequency(data []float64, sampleRate float64) float64 {
	if len(data) < 2 || sampleRate <= 0 {
		return 0
	}
	ps := PowerSpectrum(data)
	n := 1
	for n < len(data) {
		n *= 2
	}

	maxIdx := 0
	maxPower := 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	return float64(maxIdx) * sampleRate / float64(n)
}
