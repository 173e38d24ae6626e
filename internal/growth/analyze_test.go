package growth

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"heybabyy/internal/models"
)

func TestAnalyzeAtMedian(t *testing.T) {
	got, err := Analyze(models.SexBoy, 6, 7.934, nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got.Status != models.GrowthNormal {
		t.Errorf("Status = %v, want normal", got.Status)
	}
	if got.ZScore != 0 {
		t.Errorf("ZScore = %v, want 0", got.ZScore)
	}
	if got.Percentile != 50 {
		t.Errorf("Percentile = %d, want 50", got.Percentile)
	}
	if got.Color != "green" {
		t.Errorf("Color = %q, want green", got.Color)
	}
	if got.LengthZScore != nil || got.LengthPercentile != nil {
		t.Errorf("length fields should be nil without a length")
	}
}

func TestAnalyzeBands(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		status models.GrowthStatus
		color  string
	}{
		{name: "severely underweight", weight: 4.0, status: models.GrowthConcern, color: "red"},
		{name: "median", weight: 7.934, status: models.GrowthNormal, color: "green"},
		{name: "heavy", weight: 13.0, status: models.GrowthConcern, color: "red"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Analyze(models.SexBoy, 6, tt.weight, nil)
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if got.Status != tt.status || got.Color != tt.color {
				t.Errorf("Analyze(%v) = %s/%s, want %s/%s", tt.weight, got.Status, got.Color, tt.status, tt.color)
			}
		})
	}
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		z      float64
		status models.GrowthStatus
		color  string
	}{
		{z: -3.01, status: models.GrowthConcern, color: "red"},
		{z: -3, status: models.GrowthConcern, color: "orange"},
		{z: -2, status: models.GrowthMonitor, color: "yellow"},
		{z: -1, status: models.GrowthNormal, color: "green"},
		{z: 1, status: models.GrowthNormal, color: "green"},
		{z: 1.01, status: models.GrowthMonitor, color: "yellow"},
		{z: 2, status: models.GrowthMonitor, color: "yellow"},
		{z: 2.5, status: models.GrowthConcern, color: "orange"},
		{z: 3, status: models.GrowthConcern, color: "orange"},
		{z: 3.2, status: models.GrowthConcern, color: "red"},
	}

	for _, tt := range tests {
		got := classify(tt.z)
		if got.status != tt.status || got.color != tt.color {
			t.Errorf("classify(%v) = %s/%s, want %s/%s", tt.z, got.status, got.color, tt.status, tt.color)
		}
		if got.message == "" {
			t.Errorf("classify(%v) has empty message", tt.z)
		}
	}
}

func TestAnalyzeWithLength(t *testing.T) {
	length := 67.6
	got, err := Analyze(models.SexBoy, 6, 7.934, &length)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got.LengthZScore == nil || *got.LengthZScore != 0 {
		t.Errorf("LengthZScore = %v, want 0", got.LengthZScore)
	}
	if got.LengthPercentile == nil || *got.LengthPercentile != 50 {
		t.Errorf("LengthPercentile = %v, want 50", got.LengthPercentile)
	}
}

func TestAnalyzeRoundsZScore(t *testing.T) {
	got, err := Analyze(models.SexGirl, 3, 5.1, nil)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got.ZScore != round2(got.ZScore) {
		t.Errorf("ZScore %v is not rounded to 2 decimals", got.ZScore)
	}
}

func TestAnalyzeRejectsNonPositive(t *testing.T) {
	if _, err := Analyze(models.SexBoy, 6, 0, nil); !errors.Is(err, ErrNonPositiveMeasurement) {
		t.Errorf("Analyze() error = %v, want ErrNonPositiveMeasurement", err)
	}
	bad := -1.0
	if _, err := Analyze(models.SexBoy, 6, 7.9, &bad); !errors.Is(err, ErrNonPositiveMeasurement) {
		t.Errorf("Analyze() error = %v, want ErrNonPositiveMeasurement", err)
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	length := 70.1
	first, err := Analyze(models.SexGirl, 9.5, 8.1, &length)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	second, _ := Analyze(models.SexGirl, 9.5, 8.1, &length)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Analyze() not idempotent (-first +second):\n%s", diff)
	}
}
