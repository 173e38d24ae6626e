package growth

import (
	"math"
	"strings"

	"heybabyy/internal/models"
)

const sparklineTrendStep = 0.3

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// Sparkline normalises a weight series into [0,1] by mapping z-scores in
// [-3,3] linearly and clamping, and reports the direction of the last step.
func Sparkline(measurements []models.Measurement, sex models.Sex) (models.Sparkline, error) {
	if len(measurements) == 0 {
		return models.Sparkline{Points: []float64{}, Trend: models.TrendStable, ZScores: []float64{}}, nil
	}

	zScores, err := seriesZScores(measurements, sex)
	if err != nil {
		return models.Sparkline{}, err
	}

	line := models.Sparkline{
		Points:  make([]float64, len(zScores)),
		Trend:   models.TrendStable,
		ZScores: make([]float64, len(zScores)),
	}
	for i, z := range zScores {
		line.Points[i] = math.Max(0, math.Min(1, (z+3)/6))
		line.ZScores[i] = round2(z)
	}

	if n := len(zScores); n >= 2 {
		change := zScores[n-1] - zScores[n-2]
		if change > sparklineTrendStep {
			line.Trend = models.TrendUp
		} else if change < -sparklineTrendStep {
			line.Trend = models.TrendDown
		}
	}
	return line, nil
}

// SparklineASCII renders normalised points as block glyphs
func SparklineASCII(points []float64) string {
	var b strings.Builder
	top := len(sparkGlyphs) - 1
	for _, p := range points {
		level := int(math.Floor(p * float64(len(sparkGlyphs))))
		level = max(0, min(top, level))
		b.WriteRune(sparkGlyphs[level])
	}
	return b.String()
}
