package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"heybabyy/internal/growth"
	"heybabyy/internal/models"
	"heybabyy/internal/validation"
)

var (
	growthSex      string
	growthAge      float64
	growthWeight   float64
	growthLength   float64
	growthKind     string
	growthMaxMonth int
)

var growthCmd = &cobra.Command{
	Use:   "growth",
	Short: "Score measurements against the WHO growth standards",
}

var growthAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Classify a weight (and optional length) reading",
	Example: `  heybabyy growth analyze --sex girl --age 4 --weight 6.1
  heybabyy growth analyze --sex boy --age 2 --weight 5.4 --length 58`,
	RunE: runGrowthAnalyze,
}

var growthCurvesCmd = &cobra.Command{
	Use:   "curves",
	Short: "Print the reference percentile curves",
	RunE:  runGrowthCurves,
}

var growthDriftCmd = &cobra.Command{
	Use:     "drift MONTH:KG...",
	Short:   "Check a weight series for percentile crossing",
	Example: "  heybabyy growth drift --sex boy 0:3.3 1:4.5 2:5.0 3:5.3 4:5.1",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runGrowthDrift,
}

func init() {
	growthCmd.PersistentFlags().StringVar(&growthSex, "sex", "", "boy or girl (required)")
	_ = growthCmd.MarkPersistentFlagRequired("sex")

	growthAnalyzeCmd.Flags().Float64Var(&growthAge, "age", 0, "Age in months")
	growthAnalyzeCmd.Flags().Float64Var(&growthWeight, "weight", 0, "Weight in kg (required)")
	growthAnalyzeCmd.Flags().Float64Var(&growthLength, "length", 0, "Length in cm")
	_ = growthAnalyzeCmd.MarkFlagRequired("weight")

	growthCurvesCmd.Flags().StringVar(&growthKind, "type", string(models.MeasurementWeight), "weight or length")
	growthCurvesCmd.Flags().IntVar(&growthMaxMonth, "max-month", 24, "Last month to print")

	growthCmd.AddCommand(growthAnalyzeCmd)
	growthCmd.AddCommand(growthCurvesCmd)
	growthCmd.AddCommand(growthDriftCmd)
}

func runGrowthAnalyze(cmd *cobra.Command, args []string) error {
	sex, err := validation.ValidateSex(growthSex)
	if err != nil {
		return err
	}
	var length *float64
	if cmd.Flags().Changed("length") {
		length = &growthLength
	}

	analysis, err := growth.Analyze(sex, growthAge, growthWeight, length)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), analysis)
}

func runGrowthCurves(cmd *cobra.Command, args []string) error {
	sex, err := validation.ValidateSex(growthSex)
	if err != nil {
		return err
	}
	kind, err := validation.ValidateMeasurementType(growthKind)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	lines := growth.PercentileLines(sex, kind, growthMaxMonth)
	fmt.Fprint(out, "month")
	for _, line := range lines {
		fmt.Fprintf(out, "\tP%d", line.Percentile)
	}
	fmt.Fprintln(out)
	for month := 0; month <= growthMaxMonth; month++ {
		fmt.Fprintf(out, "%d", month)
		for _, line := range lines {
			fmt.Fprintf(out, "\t%.2f", line.Data[month].Value)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func runGrowthDrift(cmd *cobra.Command, args []string) error {
	sex, err := validation.ValidateSex(growthSex)
	if err != nil {
		return err
	}
	measurements, err := parseMeasurements(args)
	if err != nil {
		return err
	}

	drift, err := growth.DetectDrift(measurements, sex)
	if err != nil {
		return err
	}
	line, err := growth.Sparkline(measurements, sex)
	if err != nil {
		return err
	}

	logger.Debug("Drift checked", zap.Int("points", len(measurements)), zap.Bool("has_drift", drift.HasDrift))
	return printJSON(cmd.OutOrStdout(), struct {
		Drift     models.DriftResult `json:"drift"`
		Sparkline models.Sparkline   `json:"sparkline"`
		ASCII     string             `json:"ascii"`
	}{drift, line, growth.SparklineASCII(line.Points)})
}

// parseMeasurements reads MONTH:KG pairs
func parseMeasurements(args []string) ([]models.Measurement, error) {
	measurements := make([]models.Measurement, 0, len(args))
	for _, arg := range args {
		monthText, weightText, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("measurement %q must look like MONTH:KG", arg)
		}
		month, err := strconv.Atoi(monthText)
		if err != nil || month < 0 {
			return nil, fmt.Errorf("invalid month in %q", arg)
		}
		weight, err := strconv.ParseFloat(weightText, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight in %q", arg)
		}
		measurements = append(measurements, models.Measurement{Month: month, Weight: weight})
	}
	return measurements, nil
}
