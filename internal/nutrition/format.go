package nutrition

import (
	"fmt"
	"strings"

	"heybabyy/internal/models"
)

var alertMarkers = map[models.AlertType]string{
	models.AlertDanger:  "[!!]",
	models.AlertWarning: "[!]",
	models.AlertInfo:    "[i]",
}

// FormatSummary renders a daily summary as plain text for email digests
// and the command line.
func FormatSummary(summary models.DailySummary) string {
	lines := []string{
		fmt.Sprintf("Daily summary for %s", summary.Date),
		"",
		"Feeding:",
		fmt.Sprintf("  Total feedings: %d", summary.TotalFeedings),
	}
	if summary.TotalBreastMinutes > 0 {
		lines = append(lines, fmt.Sprintf("  Breastfeeding: %s minutes", formatNumber(summary.TotalBreastMinutes)))
	}
	if summary.TotalFormulaMl > 0 {
		lines = append(lines, fmt.Sprintf("  Formula: %s ml", formatNumber(summary.TotalFormulaMl)))
	}
	if summary.TotalSolidGrams > 0 {
		lines = append(lines, fmt.Sprintf("  Solids: %s g", formatNumber(summary.TotalSolidGrams)))
	}

	lines = append(lines,
		"",
		"Diapers:",
		fmt.Sprintf("  Wet: %d", summary.WetDiapers),
		fmt.Sprintf("  Stool: %d", summary.StoolCount),
	)

	if len(summary.Alerts) > 0 {
		lines = append(lines, "", "Alerts:")
		for _, a := range summary.Alerts {
			lines = append(lines, fmt.Sprintf("  %s %s", alertMarkers[a.Type], a.Message))
		}
	}

	return strings.Join(lines, "\n")
}
