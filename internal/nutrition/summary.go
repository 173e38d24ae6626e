// Package nutrition parses caregiver feeding and diaper logs and raises
// rule-based alerts against age-bracketed guidelines.
//
// Functions are pure over their arguments; only EntryFactory reads a clock
// and an id source, both injectable.
package nutrition

import (
	"fmt"

	"heybabyy/internal/models"
)

// Formula intake expectations for babies under six months
const (
	formulaMlPerMonth  = 150
	formulaMonthOffset = 3
	formulaMaxMl       = 900
	formulaLowRatio    = 0.7
	formulaCheckMaxAge = 6
	stoolCheckMaxAge   = 2
)

// Summarize aggregates a day's entries and evaluates the daily alert rules.
// Every rule is checked independently, so any subset may fire.
func Summarize(log models.DailyLog, ageMonths float64) models.DailySummary {
	summary := models.DailySummary{
		Date:          log.Date,
		TotalFeedings: len(log.Feedings),
		Alerts:        []models.Alert{},
	}

	for _, f := range log.Feedings {
		switch f.Type {
		case models.FeedBreast:
			if f.Duration != nil {
				summary.TotalBreastMinutes += *f.Duration
			}
		case models.FeedFormula:
			if f.Quantity != nil {
				summary.TotalFormulaMl += *f.Quantity
			}
		case models.FeedSolid:
			if f.Quantity != nil {
				summary.TotalSolidGrams += *f.Quantity
			}
		}
	}

	for _, d := range log.Diapers {
		if d.Wet {
			summary.WetDiapers++
		}
		if d.Stool {
			summary.StoolCount++
		}
	}

	g := GuidelinesForAge(ageMonths)

	if summary.WetDiapers < g.MinWetDiapers {
		summary.Alerts = append(summary.Alerts, models.Alert{
			Type:     models.AlertWarning,
			Category: models.CategoryHydration,
			Message: fmt.Sprintf("Only %d wet diapers today. Expected at least %d for this age. Ensure adequate feeding.",
				summary.WetDiapers, g.MinWetDiapers),
		})
	}

	if summary.TotalFeedings < g.MinFeedings {
		summary.Alerts = append(summary.Alerts, models.Alert{
			Type:     models.AlertInfo,
			Category: models.CategoryNutrition,
			Message: fmt.Sprintf("%d feedings logged. Babies this age typically need %d+ feedings daily.",
				summary.TotalFeedings, g.MinFeedings),
		})
	}

	if summary.TotalSolidGrams > 0 && !g.SolidsSafe {
		summary.Alerts = append(summary.Alerts, models.Alert{
			Type:     models.AlertDanger,
			Category: models.CategoryDevelopment,
			Message:  "Solids introduced before 6 months. Consult your pediatrician about readiness signs.",
		})
	}

	if ageMonths < stoolCheckMaxAge && summary.StoolCount == 0 {
		summary.Alerts = append(summary.Alerts, models.Alert{
			Type:     models.AlertInfo,
			Category: models.CategoryHealth,
			Message:  "No stool logged today. Newborns typically have multiple bowel movements daily.",
		})
	}

	if ageMonths < formulaCheckMaxAge && summary.TotalFormulaMl > 0 {
		expected := expectedFormulaMl(ageMonths)
		if summary.TotalFormulaMl < expected*formulaLowRatio {
			summary.Alerts = append(summary.Alerts, models.Alert{
				Type:     models.AlertWarning,
				Category: models.CategoryNutrition,
				Message: fmt.Sprintf("Formula intake (%sml) seems low. Expected around %sml for this age.",
					formatNumber(summary.TotalFormulaMl), formatNumber(expected)),
			})
		}
	}

	return summary
}

// expectedFormulaMl is a rough daily formula target for babies under six months
func expectedFormulaMl(ageMonths float64) float64 {
	return min(formulaMlPerMonth*(ageMonths+formulaMonthOffset), formulaMaxMl)
}
