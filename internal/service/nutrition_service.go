package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"heybabyy/internal/database"
	"heybabyy/internal/models"
	"heybabyy/internal/nutrition"
	"heybabyy/internal/repository"
	"heybabyy/internal/validation"
)

// Trend windows are clamped to this many days
const (
	defaultTrendDays = 7
	maxTrendDays     = 31
)

// DigestSender delivers a formatted daily summary
type DigestSender interface {
	IsEnabled() bool
	SendDailyDigest(ctx context.Context, toEmail, childName string, summary models.DailySummary) error
}

// NutritionService records feedings and diapers and evaluates them with the
// nutrition rule engine
type NutritionService struct {
	db       *database.DB
	children *ChildService
	logRepo  *repository.DailyLogRepository
	entries  *nutrition.EntryFactory
	digest   DigestSender
	logger   *zap.Logger
}

// NewNutritionService creates a new nutrition service. digest may be nil
// when no mail transport is configured.
func NewNutritionService(db *database.DB, children *ChildService, logRepo *repository.DailyLogRepository, entries *nutrition.EntryFactory, digest DigestSender, logger *zap.Logger) *NutritionService {
	if entries == nil {
		entries = nutrition.NewEntryFactory(nil, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NutritionService{
		db:       db,
		children: children,
		logRepo:  logRepo,
		entries:  entries,
		digest:   digest,
		logger:   logger,
	}
}

// LogFreeText parses a caregiver's note, stores the note alongside the
// entries recovered from it and returns the stamped result
func (s *NutritionService) LogFreeText(childID, date, text string) (*models.ParseResult, error) {
	child, day, err := s.childDay(childID, date)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateFreeText(text); err != nil {
		return nil, err
	}

	date = day.Format(models.DateLayout)
	parsed := nutrition.ParseFreeText(text, child.AgeInMonths(day))
	feedings, diapers := s.entries.Stamp(parsed)

	err = s.db.WithTx(func(tx *database.Tx) error {
		logs := repository.NewDailyLogRepository(tx)
		if _, err := logs.AddFreeText(child.ID, date, text); err != nil {
			return err
		}
		for _, f := range feedings {
			if err := logs.AddFeeding(child.ID, date, f); err != nil {
				return err
			}
		}
		for _, d := range diapers {
			if err := logs.AddDiaper(child.ID, date, d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Free text logged",
		zap.String("child_id", child.ID),
		zap.String("date", date),
		zap.Int("feedings", len(feedings)),
		zap.Int("diapers", len(diapers)),
		zap.Int("unparsed", len(parsed.Unparsed)))

	return &models.ParseResult{
		Feedings: feedings,
		Diapers:  diapers,
		Alerts:   parsed.Alerts,
		Unparsed: parsed.Unparsed,
	}, nil
}

// ErrDuplicateEntry is returned when a caller-supplied entry id is taken
var ErrDuplicateEntry = errors.New("entry already exists")

// AddFeeding stores a feeding. Missing ids and timestamps are filled in.
func (s *NutritionService) AddFeeding(childID, date string, f models.FeedingEntry) (*models.FeedingEntry, error) {
	child, day, err := s.childDay(childID, date)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateFeeding(f); err != nil {
		return nil, err
	}

	stamped := s.entries.NewFeeding(f.Type, nutrition.FeedingOptions{
		Quantity: f.Quantity,
		Duration: f.Duration,
		Notes:    f.Notes,
	})
	if f.ID != "" {
		exists, err := s.logRepo.FeedingExists(f.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: feeding %s", ErrDuplicateEntry, f.ID)
		}
		stamped.ID = f.ID
	}
	if !f.Timestamp.IsZero() {
		stamped.Timestamp = f.Timestamp
	}

	if err := s.logRepo.AddFeeding(child.ID, day.Format(models.DateLayout), stamped); err != nil {
		return nil, err
	}
	s.logger.Debug("Feeding added", zap.String("child_id", child.ID), zap.String("type", string(f.Type)))
	return &stamped, nil
}

// AddDiaper stores a diaper change. Missing ids and timestamps are filled in.
func (s *NutritionService) AddDiaper(childID, date string, d models.DiaperEntry) (*models.DiaperEntry, error) {
	child, day, err := s.childDay(childID, date)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateDiaper(d); err != nil {
		return nil, err
	}

	stamped := s.entries.NewDiaper(d.Wet, d.Stool, d.StoolType)
	if d.ID != "" {
		exists, err := s.logRepo.DiaperExists(d.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: diaper %s", ErrDuplicateEntry, d.ID)
		}
		stamped.ID = d.ID
	}
	if !d.Timestamp.IsZero() {
		stamped.Timestamp = d.Timestamp
	}

	if err := s.logRepo.AddDiaper(child.ID, day.Format(models.DateLayout), stamped); err != nil {
		return nil, err
	}
	s.logger.Debug("Diaper added", zap.String("child_id", child.ID), zap.Bool("wet", d.Wet), zap.Bool("stool", d.Stool))
	return &stamped, nil
}

// DailyLog returns everything recorded for a child on a day
func (s *NutritionService) DailyLog(childID, date string) (models.DailyLog, error) {
	child, day, err := s.childDay(childID, date)
	if err != nil {
		return models.DailyLog{}, err
	}
	return s.logRepo.GetDailyLog(child.ID, day.Format(models.DateLayout))
}

// DailySummary evaluates a day's log at the child's age on that day
func (s *NutritionService) DailySummary(childID, date string) (models.DailySummary, string, error) {
	child, day, err := s.childDay(childID, date)
	if err != nil {
		return models.DailySummary{}, "", err
	}
	summary, err := s.summarize(child, day)
	return summary, child.Name, err
}

// Trends summarises the days ending at endDate and runs the weekly trend
// rules over them. Days before birth are skipped. An empty endDate means
// today.
func (s *NutritionService) Trends(childID, endDate string, days int) (*models.TrendReport, error) {
	if endDate == "" {
		endDate = s.children.now().Format(models.DateLayout)
	}
	child, end, err := s.childDay(childID, endDate)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = defaultTrendDays
	}
	days = min(days, maxTrendDays)

	start := end.AddDate(0, 0, -(days - 1))
	if start.Before(child.BirthDate) {
		start = child.BirthDate
	}

	report := &models.TrendReport{
		From:      start.Format(models.DateLayout),
		To:        end.Format(models.DateLayout),
		Summaries: []models.DailySummary{},
	}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		summary, err := s.summarize(child, day)
		if err != nil {
			return nil, err
		}
		report.Summaries = append(report.Summaries, summary)
	}
	report.Alerts = nutrition.WeeklyTrends(report.Summaries, child.AgeInMonths(end))
	return report, nil
}

// SendDigest emails the day's summary to toEmail
func (s *NutritionService) SendDigest(ctx context.Context, childID, date, toEmail string) (models.DailySummary, error) {
	if err := validation.ValidateEmail(toEmail); err != nil {
		return models.DailySummary{}, err
	}
	summary, name, err := s.DailySummary(childID, date)
	if err != nil {
		return models.DailySummary{}, err
	}
	if s.digest == nil || !s.digest.IsEnabled() {
		return summary, ErrEmailDisabled
	}
	if err := s.digest.SendDailyDigest(ctx, toEmail, name, summary); err != nil {
		return summary, err
	}
	s.logger.Info("Digest sent", zap.String("child_id", childID), zap.String("date", date))
	return summary, nil
}

func (s *NutritionService) summarize(child *models.Child, day time.Time) (models.DailySummary, error) {
	date := day.Format(models.DateLayout)
	log, err := s.logRepo.GetDailyLog(child.ID, date)
	if err != nil {
		return models.DailySummary{}, fmt.Errorf("failed to load log for %s: %w", date, err)
	}
	return nutrition.Summarize(log, child.AgeInMonths(day)), nil
}

func (s *NutritionService) childDay(childID, date string) (*models.Child, time.Time, error) {
	child, err := s.children.GetChild(childID)
	if err != nil {
		return nil, time.Time{}, err
	}
	day, err := logDate(child, date)
	if err != nil {
		return nil, time.Time{}, err
	}
	return child, day, nil
}
