package growth

import (
	"math"

	"heybabyy/internal/models"
)

// Reference percentiles and the z-scores they are drawn at. The anchors
// are the rounded inverse-normal values used by the growth charts.
var (
	curvePercentiles = [...]int{3, 15, 50, 85, 97}
	curveZScores     = [...]float64{-1.88, -1.04, 0, 1.04, 1.88}
)

// PercentileLines returns the 3rd, 15th, 50th, 85th and 97th percentile
// curves for each whole month from 0 to maxMonth inclusive. A negative
// maxMonth gives curves with no points.
func PercentileLines(sex models.Sex, kind models.MeasurementType, maxMonth int) []models.PercentileLine {
	lines := make([]models.PercentileLine, len(curvePercentiles))
	for i, percentile := range curvePercentiles {
		z := curveZScores[i]
		data := make([]models.CurvePoint, 0, max(maxMonth+1, 0))
		for month := 0; month <= maxMonth; month++ {
			p := LMSParams(sex, float64(month), kind)
			data = append(data, models.CurvePoint{Month: month, Value: round2(valueAt(p, z))})
		}
		lines[i] = models.PercentileLine{Percentile: percentile, Data: data}
	}
	return lines
}

// valueAt inverts the LMS transform for a given z-score
func valueAt(p models.LMS, z float64) float64 {
	if p.L != 0 {
		return p.M * math.Pow(1+p.L*p.S*z, 1/p.L)
	}
	return p.M * math.Exp(p.S*z)
}
