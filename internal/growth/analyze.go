package growth

import (
	"fmt"

	"heybabyy/internal/models"
)

type band struct {
	status  models.GrowthStatus
	color   string
	message string
}

// classify buckets a weight-for-age z-score. Bands are checked in order
// and do not overlap.
func classify(z float64) band {
	switch {
	case z < -3:
		return band{models.GrowthConcern, "red", "Severely underweight. Please consult your pediatrician immediately."}
	case z < -2:
		return band{models.GrowthConcern, "orange", "Underweight. Schedule a check-up with your pediatrician."}
	case z < -1:
		return band{models.GrowthMonitor, "yellow", "Slightly below average. Monitor closely and ensure adequate nutrition."}
	case z <= 1:
		return band{models.GrowthNormal, "green", "Healthy weight range. Keep up the good work."}
	case z <= 2:
		return band{models.GrowthMonitor, "yellow", "Above average weight. Monitor feeding patterns."}
	case z <= 3:
		return band{models.GrowthConcern, "orange", "Overweight. Consider consulting your pediatrician."}
	default:
		return band{models.GrowthConcern, "red", "Significantly overweight. Please consult your pediatrician."}
	}
}

// Analyze evaluates a weight reading and, when length is non-nil, a length
// reading taken at the same age. Status and percentile derive from weight.
func Analyze(sex models.Sex, ageMonths, weight float64, length *float64) (models.GrowthAnalysis, error) {
	weightZ, err := ZScore(sex, ageMonths, weight, models.MeasurementWeight)
	if err != nil {
		return models.GrowthAnalysis{}, fmt.Errorf("failed to score weight: %w", err)
	}

	b := classify(weightZ)
	analysis := models.GrowthAnalysis{
		ZScore:     round2(weightZ),
		Percentile: ZScoreToPercentile(weightZ),
		Status:     b.status,
		Message:    b.message,
		Color:      b.color,
	}

	if length != nil {
		lengthZ, err := ZScore(sex, ageMonths, *length, models.MeasurementLength)
		if err != nil {
			return models.GrowthAnalysis{}, fmt.Errorf("failed to score length: %w", err)
		}
		rounded := round2(lengthZ)
		percentile := ZScoreToPercentile(lengthZ)
		analysis.LengthZScore = &rounded
		analysis.LengthPercentile = &percentile
	}

	return analysis, nil
}
