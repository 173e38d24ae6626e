package nutrition

import (
	"fmt"
	"math"

	"heybabyy/internal/models"
)

const (
	trendMinDays         = 3
	trendWindowDays      = 7
	trendFeedingMinDays  = 5
	trendWetDiaperRatio  = 0.8
	trendFeedingDropRate = 0.7
)

// WeeklyTrends looks for patterns across consecutive daily summaries,
// oldest first. Fewer than three summaries produce no alerts.
func WeeklyTrends(summaries []models.DailySummary, ageMonths float64) []models.Alert {
	alerts := []models.Alert{}
	if len(summaries) < trendMinDays {
		return alerts
	}

	window := summaries
	if len(window) > trendWindowDays {
		window = window[len(window)-trendWindowDays:]
	}

	g := GuidelinesForAge(ageMonths)
	avgWet := mean(window, func(s models.DailySummary) int { return s.WetDiapers })
	if avgWet < float64(g.MinWetDiapers)*trendWetDiaperRatio {
		alerts = append(alerts, models.Alert{
			Type:     models.AlertWarning,
			Category: models.CategoryHydration,
			Message:  fmt.Sprintf("Average wet diapers (%.1f/day) is below expected. Monitor hydration closely.", roundTenth(avgWet)),
		})
	}

	if len(window) >= trendFeedingMinDays {
		mid := len(window) / 2
		feedings := func(s models.DailySummary) int { return s.TotalFeedings }
		firstAvg := mean(window[:mid], feedings)
		secondAvg := mean(window[mid:], feedings)
		if secondAvg < firstAvg*trendFeedingDropRate {
			alerts = append(alerts, models.Alert{
				Type:     models.AlertInfo,
				Category: models.CategoryNutrition,
				Message:  "Feeding frequency has decreased recently. This may be normal, but monitor weight gain.",
			})
		}
	}

	return alerts
}

func mean(summaries []models.DailySummary, field func(models.DailySummary) int) float64 {
	if len(summaries) == 0 {
		return 0
	}
	total := 0
	for _, s := range summaries {
		total += field(s)
	}
	return float64(total) / float64(len(summaries))
}

// roundTenth rounds to one decimal place with ties going up
func roundTenth(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}
