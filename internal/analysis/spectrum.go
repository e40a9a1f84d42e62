package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitudes of the first half of the real FFT
// of data after removing its mean. Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency of the strongest non-DC bin of
// a spectrum taken over n samples spaced dt apart, in cycles per unit of
// integration time.
func DominantFrequency(ps []float64, n int, dt float64) float64 {
	if len(ps) < 2 || n <= 0 || dt <= 0 {
		return 0
	}
	best := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[best] {
			best = i
		}
	}
	return float64(best) / (float64(n) * dt)
}
