package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum returns the one-sided power spectrum of series after removing
// its mean. Bin k corresponds to a period of len(series)/k frames.
func Spectrum(series []float64) []float64 {
	n := len(series)
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	centred := make([]float64, n)
	for i, v := range series {
		centred[i] = v - mean
	}

	coeffs := fft.FFTReal(centred)
	power := make([]float64, n/2+1)
	for k := range power {
		a := cmplx.Abs(coeffs[k])
		power[k] = a * a / float64(n)
	}
	return power
}

// Peak is the strongest non-DC bin of a spectrum.
type Peak struct {
	Bin    int
	Period float64
	Power  float64
	// Share is Power over the total non-DC power.
	Share float64
}

// DominantPeriod finds the strongest periodic component of series. A flat
// or too short series yields the zero Peak.
func DominantPeriod(series []float64) Peak {
	power := Spectrum(series)
	if len(power) < 2 {
		return Peak{}
	}

	var best Peak
	total := 0.0
	for k := 1; k < len(power); k++ {
		total += power[k]
		if power[k] > best.Power {
			best = Peak{Bin: k, Power: power[k]}
		}
	}
	if best.Bin == 0 || total == 0 || math.IsNaN(total) {
		return Peak{}
	}
	best.Period = float64(len(series)) / float64(best.Bin)
	best.Share = best.Power / total
	return best
}
