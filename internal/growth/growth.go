// Package growth evaluates weight and length readings against the WHO
// Child Growth Standards using the LMS method.
//
// Everything here is a pure function over its arguments and the static
// reference tables, so it is safe to call from any number of goroutines.
package growth

import (
	"errors"
	"fmt"
	"math"

	"heybabyy/internal/models"
)

var (
	// ErrNonPositiveMeasurement is returned for readings the LMS transform is undefined for
	ErrNonPositiveMeasurement = errors.New("measurement must be a positive number")
	ErrUnknownSex             = errors.New("unknown sex")
	ErrUnknownMeasurementType = errors.New("unknown measurement type")
)

// Box-Cox power below which the log form of the transform is used
const lZeroThreshold = 0.001

// LMSParams returns the reference parameters for a sex, age in months and
// measurement type. Tabulated ages are returned exactly, ages between two
// tabulated points are linearly interpolated and ages outside the table
// clamp to its first or last entry.
func LMSParams(sex models.Sex, ageMonths float64, kind models.MeasurementType) models.LMS {
	return tableFor(sex, kind).lookup(ageMonths)
}

// ZScore returns the number of standard deviations value lies from the
// age-matched median.
func ZScore(sex models.Sex, ageMonths, value float64, kind models.MeasurementType) (float64, error) {
	if !sex.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSex, sex)
	}
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMeasurementType, kind)
	}
	if !(value > 0) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s %v: %w", kind, value, ErrNonPositiveMeasurement)
	}

	p := LMSParams(sex, ageMonths, kind)
	if math.Abs(p.L) < lZeroThreshold {
		return math.Log(value/p.M) / p.S, nil
	}
	return (math.Pow(value/p.M, p.L) - 1) / (p.L * p.S), nil
}

// Abramowitz and Stegun formula 7.1.26
const (
	erfA1 = 0.254829592
	erfA2 = -0.284496736
	erfA3 = 1.421413741
	erfA4 = -1.453152027
	erfA5 = 1.061405429
	erfP  = 0.3275911
)

// ZScoreToPercentile maps a z-score through an approximation of the
// standard normal CDF and rounds to a whole percentile.
func ZScoreToPercentile(z float64) int {
	sign := 1.0
	if z < 0 {
		sign = -1
	}
	x := math.Abs(z) / math.Sqrt2
	t := 1 / (1 + erfP*x)
	y := 1 - (((((erfA5*t+erfA4)*t)+erfA3)*t+erfA2)*t+erfA1)*t*math.Exp(-x*x)

	return int(roundHalfUp(0.5 * (1 + sign*y) * 100))
}

// roundHalfUp rounds ties towards positive infinity
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// round2 rounds to two decimal places, ties towards positive infinity
func round2(x float64) float64 {
	return roundHalfUp(x*100) / 100
}
