package nutrition

import (
	"strings"
	"testing"

	"heybabyy/internal/models"
)

func TestFormatSummary(t *testing.T) {
	summary := models.DailySummary{
		Date:               "2024-03-01",
		TotalFeedings:      5,
		TotalBreastMinutes: 40,
		TotalFormulaMl:     240,
		WetDiapers:         4,
		StoolCount:         1,
		Alerts: []models.Alert{
			{Type: models.AlertWarning, Category: models.CategoryHydration, Message: "Drink up"},
		},
	}

	got := FormatSummary(summary)
	for _, want := range []string{
		"Daily summary for 2024-03-01",
		"Total feedings: 5",
		"Breastfeeding: 40 minutes",
		"Formula: 240 ml",
		"Wet: 4",
		"Stool: 1",
		"[!] Drink up",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatSummary() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Solids:") {
		t.Errorf("FormatSummary() should omit zero solids:\n%s", got)
	}
}

func TestFormatSummaryWithoutAlerts(t *testing.T) {
	got := FormatSummary(models.DailySummary{Date: "2024-03-02"})
	if strings.Contains(got, "Alerts:") {
		t.Errorf("FormatSummary() should omit the alerts section:\n%s", got)
	}
}
