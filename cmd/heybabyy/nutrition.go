package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"heybabyy/internal/models"
	"heybabyy/internal/nutrition"
	"heybabyy/internal/validation"
)

var (
	nutritionAge     float64
	nutritionDate    string
	nutritionSummary bool
)

var nutritionCmd = &cobra.Command{
	Use:   "nutrition",
	Short: "Parse feeding notes and look up guidelines",
}

var nutritionParseCmd = &cobra.Command{
	Use:     "parse TEXT...",
	Short:   "Turn a quick note into feeding and diaper entries",
	Example: `  heybabyy nutrition parse --age 7 "120ml formula, 30g puree, 3 wet, 1 poop"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runNutritionParse,
}

var nutritionTipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "Show the guidelines and tips for an age",
	RunE:  runNutritionTips,
}

func init() {
	nutritionCmd.PersistentFlags().Float64Var(&nutritionAge, "age", 0, "Age in months")

	nutritionParseCmd.Flags().BoolVar(&nutritionSummary, "summary", false, "Print the day's summary instead of the entries")
	nutritionParseCmd.Flags().StringVar(&nutritionDate, "date", "", "Date shown in the summary")

	nutritionCmd.AddCommand(nutritionParseCmd)
	nutritionCmd.AddCommand(nutritionTipsCmd)
}

func runNutritionParse(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	if err := validation.ValidateFreeText(text); err != nil {
		return err
	}
	if err := validation.ValidateAgeMonths(nutritionAge); err != nil {
		return err
	}

	parsed := nutrition.ParseFreeText(text, nutritionAge)
	parsed.Feedings, parsed.Diapers = nutrition.NewEntryFactory(nil, nil).Stamp(parsed)
	if !nutritionSummary {
		return printJSON(cmd.OutOrStdout(), parsed)
	}

	summary := nutrition.Summarize(models.DailyLog{
		Date:         nutritionDate,
		Feedings:     parsed.Feedings,
		Diapers:      parsed.Diapers,
		FreeTextLogs: []string{text},
	}, nutritionAge)
	_, err := fmt.Fprint(cmd.OutOrStdout(), nutrition.FormatSummary(summary))
	return err
}

func runNutritionTips(cmd *cobra.Command, args []string) error {
	if err := validation.ValidateAgeMonths(nutritionAge); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	g := nutrition.GuidelinesForAge(nutritionAge)
	fmt.Fprintf(out, "At %g months: at least %d feedings and %d wet diapers a day", nutritionAge, g.MinFeedings, g.MinWetDiapers)
	if g.SolidsSafe {
		fmt.Fprint(out, ", solids are fine")
	}
	fmt.Fprintln(out)

	for _, tip := range nutrition.TipsForAge(nutritionAge) {
		fmt.Fprintf(out, "  [%s] %s\n", tip.Category, tip.Tip)
	}
	return nil
}
