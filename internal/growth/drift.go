package growth

import (
	"fmt"
	"math"
	"slices"

	"heybabyy/internal/models"
)

// Drift thresholds in z-score units
const (
	driftRecentMajor = 1.5
	driftTotalMajor  = 2.0
	driftRecentSharp = 2.0
	driftRecentMinor = 0.75
)

// seriesZScores sorts a copy of the series by month, keeping insertion
// order for equal months, and scores each weight.
func seriesZScores(measurements []models.Measurement, sex models.Sex) ([]float64, error) {
	sorted := slices.Clone(measurements)
	slices.SortStableFunc(sorted, func(a, b models.Measurement) int {
		return a.Month - b.Month
	})

	zScores := make([]float64, len(sorted))
	for i, m := range sorted {
		z, err := ZScore(sex, float64(m.Month), m.Weight, models.MeasurementWeight)
		if err != nil {
			return nil, fmt.Errorf("measurement at month %d: %w", m.Month, err)
		}
		zScores[i] = z
	}
	return zScores, nil
}

// DetectDrift looks for a weight trajectory that crosses percentile lines.
// Fewer than two measurements is never drift.
func DetectDrift(measurements []models.Measurement, sex models.Sex) (models.DriftResult, error) {
	none := models.DriftResult{Severity: models.DriftNone}
	if len(measurements) < 2 {
		return none, nil
	}

	zScores, err := seriesZScores(measurements, sex)
	if err != nil {
		return models.DriftResult{}, err
	}

	n := len(zScores)
	var recentChange float64
	if n >= 2 {
		recentChange = zScores[n-1] - zScores[n-2]
	}
	totalChange := zScores[n-1] - zScores[0]

	if math.Abs(recentChange) > driftRecentMajor || math.Abs(totalChange) > driftTotalMajor {
		result := models.DriftResult{
			HasDrift: true,
			Message:  "Rapid weight gain detected. Monitor feeding patterns.",
			Severity: models.DriftModerate,
		}
		if recentChange < 0 {
			result.Message = "Significant weight loss detected. Please consult your pediatrician."
		}
		if math.Abs(recentChange) > driftRecentSharp {
			result.Severity = models.DriftSevere
		}
		return result, nil
	}

	if math.Abs(recentChange) > driftRecentMinor {
		result := models.DriftResult{
			HasDrift: true,
			Message:  "Weight gain is accelerating. Monitor portion sizes.",
			Severity: models.DriftMild,
		}
		if recentChange < 0 {
			result.Message = "Weight gain has slowed. Ensure adequate nutrition."
		}
		return result, nil
	}

	return none, nil
}
