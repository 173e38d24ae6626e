package service

import (
	"go.uber.org/zap"

	"heybabyy/internal/growth"
	"heybabyy/internal/models"
	"heybabyy/internal/repository"
	"heybabyy/internal/validation"
)

// GrowthService stores readings and evaluates them against the WHO standards
type GrowthService struct {
	children   *ChildService
	growthRepo *repository.GrowthRepository
	logger     *zap.Logger
}

// NewGrowthService creates a new growth service
func NewGrowthService(children *ChildService, growthRepo *repository.GrowthRepository, logger *zap.Logger) *GrowthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GrowthService{
		children:   children,
		growthRepo: growthRepo,
		logger:     logger,
	}
}

// RecordMeasurement stores a reading for a child. A second reading on the
// same day replaces the first.
func (s *GrowthService) RecordMeasurement(childID, measuredOn string, weightKg float64, lengthCm *float64) (*models.GrowthRecord, error) {
	child, err := s.children.GetChild(childID)
	if err != nil {
		return nil, err
	}
	day, err := logDate(child, measuredOn)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateWeight(weightKg); err != nil {
		return nil, err
	}
	if err := validation.ValidateLength(lengthCm); err != nil {
		return nil, err
	}

	record, err := s.growthRepo.UpsertRecord(child.ID, day, weightKg, lengthCm)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Measurement recorded",
		zap.String("child_id", child.ID),
		zap.String("measured_on", measuredOn),
		zap.Float64("weight_kg", weightKg))
	return record, nil
}

// ListMeasurements returns a child's readings, oldest first
func (s *GrowthService) ListMeasurements(childID string) ([]models.GrowthRecord, error) {
	if _, err := s.children.GetChild(childID); err != nil {
		return nil, err
	}
	return s.growthRepo.ListByChild(childID)
}

// ChildGrowth evaluates a child's latest reading at the age it was taken,
// along with drift and a sparkline over the whole series
func (s *GrowthService) ChildGrowth(childID string) (*models.ChildGrowth, error) {
	child, err := s.children.GetChild(childID)
	if err != nil {
		return nil, err
	}
	records, err := s.growthRepo.ListByChild(childID)
	if err != nil {
		return nil, err
	}

	result := &models.ChildGrowth{
		Child:     *child,
		AgeMonths: child.AgeInMonths(s.children.now()),
	}

	series := make([]models.Measurement, 0, len(records))
	for _, r := range records {
		series = append(series, r.Measurement(child.BirthDate))
	}

	if len(records) > 0 {
		latest := records[len(records)-1]
		analysis, err := growth.Analyze(child.Sex, child.AgeInMonths(latest.MeasuredOn), latest.WeightKg, latest.LengthCm)
		if err != nil {
			return nil, err
		}
		result.Latest = &latest
		result.Analysis = &analysis
	}

	if result.Drift, err = growth.DetectDrift(series, child.Sex); err != nil {
		return nil, err
	}
	if result.Sparkline, err = growth.Sparkline(series, child.Sex); err != nil {
		return nil, err
	}
	result.ASCII = growth.SparklineASCII(result.Sparkline.Points)

	return result, nil
}
