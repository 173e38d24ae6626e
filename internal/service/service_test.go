package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heybabyy/internal/config"
	"heybabyy/internal/database"
	"heybabyy/internal/models"
	"heybabyy/internal/nutrition"
	"heybabyy/internal/repository"
	"heybabyy/internal/validation"
)

var today = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type sequenceIDs struct{ n int }

func (s *sequenceIDs) NewID() string {
	s.n++
	return fmt.Sprintf("entry-%d", s.n)
}

type fakeSES struct {
	inputs []*sesv2.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, params)
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

type testEnv struct {
	db        *database.DB
	children  *ChildService
	growth    *GrowthService
	nutrition *NutritionService
	backup    *BackupService
	ses       *fakeSES
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "service.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations(database.MigrationSource(""), nil))

	children := NewChildService(repository.NewChildRepository(db), nil)
	children.now = func() time.Time { return today }

	ses := &fakeSES{}
	email := newEmailServiceWithClient(ses, config.EmailConfig{FromEmail: "digest@example.com", FromName: "HeyBabyy"}, nil)
	entries := nutrition.NewEntryFactory(fixedClock{today}, &sequenceIDs{})

	return &testEnv{
		db:        db,
		children:  children,
		growth:    NewGrowthService(children, repository.NewGrowthRepository(db), nil),
		nutrition: NewNutritionService(db, children, repository.NewDailyLogRepository(db), entries, email, nil),
		backup:    NewBackupService(db, nil),
		ses:       ses,
	}
}

func TestChildServiceCreateAndGet(t *testing.T) {
	env := setupTestEnv(t)

	child, err := env.children.CreateChild("  Ada ", "Girl", "2024-01-01")
	require.NoError(t, err)
	assert.NotEmpty(t, child.ID)
	assert.Equal(t, "Ada", child.Name)
	assert.Equal(t, models.SexGirl, child.Sex)

	got, err := env.children.GetChild(child.ID)
	require.NoError(t, err)
	assert.Equal(t, child.ID, got.ID)

	_, err = env.children.GetChild("missing")
	assert.ErrorIs(t, err, ErrChildNotFound)

	_, err = env.children.CreateChild("Bo", "boy", "2024-07-01")
	var ve validation.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "birth_date", ve.Field)

	list, err := env.children.ListChildren()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, env.children.DeleteChild(child.ID))
	assert.ErrorIs(t, env.children.DeleteChild(child.ID), ErrChildNotFound)
}

func TestGrowthServiceChildGrowth(t *testing.T) {
	env := setupTestEnv(t)
	child, err := env.children.CreateChild("Bo", "boy", "2024-01-01")
	require.NoError(t, err)

	empty, err := env.growth.ChildGrowth(child.ID)
	require.NoError(t, err)
	assert.Nil(t, empty.Analysis)
	assert.False(t, empty.Drift.HasDrift)
	assert.Empty(t, empty.Sparkline.Points)

	// One reading per completed month, sliding from the median to below -2
	readings := []struct {
		date   string
		weight float64
	}{
		{"2024-01-01", 3.3},
		{"2024-02-05", 4.5},
		{"2024-03-05", 5.0},
		{"2024-04-05", 5.3},
		{"2024-05-05", 5.1},
	}
	for _, r := range readings {
		_, err := env.growth.RecordMeasurement(child.ID, r.date, r.weight, nil)
		require.NoError(t, err)
	}

	result, err := env.growth.ChildGrowth(child.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Latest)
	assert.Equal(t, 5.1, result.Latest.WeightKg)
	require.NotNil(t, result.Analysis)
	assert.Less(t, result.Analysis.ZScore, -2.0)
	assert.Equal(t, models.GrowthConcern, result.Analysis.Status)

	assert.True(t, result.Drift.HasDrift)
	assert.Equal(t, models.DriftModerate, result.Drift.Severity)
	assert.Contains(t, result.Drift.Message, "weight loss")

	assert.Equal(t, models.TrendDown, result.Sparkline.Trend)
	assert.Len(t, result.Sparkline.Points, 5)
	assert.Equal(t, "▄▅▃▂▁", result.ASCII)
	assert.InDelta(t, 5.0, result.AgeMonths, 0.05)

	records, err := env.growth.ListMeasurements(child.ID)
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestGrowthServiceValidation(t *testing.T) {
	env := setupTestEnv(t)
	child, err := env.children.CreateChild("Bo", "boy", "2024-01-01")
	require.NoError(t, err)

	tests := []struct {
		name   string
		date   string
		weight float64
		field  string
	}{
		{name: "before birth", date: "2023-12-31", weight: 3.5, field: "date"},
		{name: "bad date", date: "yesterday", weight: 3.5, field: "date"},
		{name: "zero weight", date: "2024-02-01", weight: 0, field: "weight_kg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.growth.RecordMeasurement(child.ID, tt.date, tt.weight, nil)
			var ve validation.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	_, err = env.growth.RecordMeasurement("ghost", "2024-02-01", 4, nil)
	assert.ErrorIs(t, err, ErrChildNotFound)
}

func TestNutritionServiceLogFreeText(t *testing.T) {
	env := setupTestEnv(t)
	child, err := env.children.CreateChild("Ada", "girl", "2024-01-01")
	require.NoError(t, err)

	result, err := env.nutrition.LogFreeText(child.ID, "2024-05-01", "120ml formula, 2 wet, 1 poop, fussy")
	require.NoError(t, err)
	require.Len(t, result.Feedings, 1)
	assert.Equal(t, "entry-1", result.Feedings[0].ID)
	assert.True(t, result.Feedings[0].Timestamp.Equal(today))
	assert.Len(t, result.Diapers, 3)
	assert.Equal(t, []string{"fussy"}, result.Unparsed)

	log, err := env.nutrition.DailyLog(child.ID, "2024-05-01")
	require.NoError(t, err)
	assert.Len(t, log.Feedings, 1)
	assert.Len(t, log.Diapers, 3)
	assert.Equal(t, []string{"120ml formula, 2 wet, 1 poop, fussy"}, log.FreeTextLogs)

	_, err = env.nutrition.LogFreeText(child.ID, "2024-05-01", "   ")
	assert.Error(t, err)
}

func TestNutritionServiceSolidsAlertUsesAgeOnLogDate(t *testing.T) {
	env := setupTestEnv(t)
	child, err := env.children.CreateChild("Ada", "girl", "2024-01-01")
	require.NoError(t, err)

	early, err := env.nutrition.LogFreeText(child.ID, "2024-04-01", "30g puree")
	require.NoError(t, err)
	require.Len(t, early.Alerts, 1)
	assert.Equal(t, models.AlertWarning, early.Alerts[0].Type)

	late, err := env.nutrition.LogFreeText(child.ID, "2024-08-01", "30g puree")
	require.NoError(t, err)
	assert.Empty(t, late.Alerts)
}

func TestNutritionServiceSummaryAndTrends(t *testing.T) {
	env := setupTestEnv(t)
	child, err := env.children.CreateChild("Ada", "girl", "2024-04-01")
	require.NoError(t, err)

	qty := 90.0
	_, err = env.nutrition.AddFeeding(child.ID, "2024-05-10", models.FeedingEntry{Type: models.FeedFormula, Quantity: &qty})
	require.NoError(t, err)
	dry, err := env.nutrition.AddDiaper(child.ID, "2024-05-10", models.DiaperEntry{Wet: true})
	require.NoError(t, err)
	assert.NotEmpty(t, dry.ID)

	_, err = env.nutrition.AddFeeding(child.ID, "2024-05-10", models.FeedingEntry{Type: "juice"})
	assert.Error(t, err)

	summary, name, err := env.nutrition.DailySummary(child.ID, "2024-05-10")
	require.NoError(t, err)
	assert.Equal(t, "Ada", name)
	assert.Equal(t, 1, summary.TotalFeedings)
	assert.Equal(t, 90.0, summary.TotalFormulaMl)
	assert.Equal(t, 1, summary.WetDiapers)
	assert.NotEmpty(t, summary.Alerts)

	report, err := env.nutrition.Trends(child.ID, "2024-05-10", 7)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-04", report.From)
	assert.Equal(t, "2024-05-10", report.To)
	assert.Len(t, report.Summaries, 7)
	require.NotEmpty(t, report.Alerts)
	assert.Equal(t, models.CategoryHydration, report.Alerts[0].Category)

	clamped, err := env.nutrition.Trends(child.ID, "2024-04-03", 7)
	require.NoError(t, err)
	assert.Equal(t, "2024-04-01", clamped.From)
	assert.Len(t, clamped.Summaries, 3)

	current, err := env.nutrition.Trends(child.ID, "", 0)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", current.To)
	assert.Equal(t, "2024-05-26", current.From)
}

func TestNutritionServiceRejectsDuplicateIDs(t *testing.T) {
	env := setupTestEnv(t)
	child, err := env.children.CreateChild("Ada", "girl", "2024-04-01")
	require.NoError(t, err)

	feeding := models.FeedingEntry{ID: "bottle-1", Type: models.FeedFormula}
	_, err = env.nutrition.AddFeeding(child.ID, "2024-05-10", feeding)
	require.NoError(t, err)
	_, err = env.nutrition.AddFeeding(child.ID, "2024-05-11", feeding)
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	diaper := models.DiaperEntry{ID: "diaper-1", Wet: true}
	_, err = env.nutrition.AddDiaper(child.ID, "2024-05-10", diaper)
	require.NoError(t, err)
	_, err = env.nutrition.AddDiaper(child.ID, "2024-05-10", diaper)
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	log, err := env.nutrition.DailyLog(child.ID, "2024-05-10")
	require.NoError(t, err)
	assert.Len(t, log.Feedings, 1)
	assert.Len(t, log.Diapers, 1)
}

func TestNutritionServiceSendDigest(t *testing.T) {
	env := setupTestEnv(t)
	child, err := env.children.CreateChild("Ada", "girl", "2024-04-01")
	require.NoError(t, err)
	_, err = env.nutrition.LogFreeText(child.ID, "2024-05-10", "6 wet")
	require.NoError(t, err)

	summary, err := env.nutrition.SendDigest(context.Background(), child.ID, "2024-05-10", "parent@example.com")
	require.NoError(t, err)
	assert.Equal(t, 6, summary.WetDiapers)

	require.Len(t, env.ses.inputs, 1)
	input := env.ses.inputs[0]
	assert.Equal(t, "HeyBabyy <digest@example.com>", *input.FromEmailAddress)
	assert.Equal(t, []string{"parent@example.com"}, input.Destination.ToAddresses)
	assert.Equal(t, "Ada's day: 2024-05-10", *input.Content.Simple.Subject.Data)
	assert.Contains(t, *input.Content.Simple.Body.Text.Data, "Wet: 6")

	_, err = env.nutrition.SendDigest(context.Background(), child.ID, "2024-05-10", "not-an-email")
	assert.Error(t, err)

	env.ses.err = errors.New("throttled")
	_, err = env.nutrition.SendDigest(context.Background(), child.ID, "2024-05-10", "parent@example.com")
	assert.ErrorContains(t, err, "throttled")
}

func TestEmailServiceDisabled(t *testing.T) {
	svc, err := NewEmailService(context.Background(), config.EmailConfig{}, nil)
	require.NoError(t, err)
	assert.False(t, svc.IsEnabled())

	err = svc.SendDailyDigest(context.Background(), "a@example.com", "Ada", models.DailySummary{})
	assert.ErrorIs(t, err, ErrEmailDisabled)

	env := setupTestEnv(t)
	child, err := env.children.CreateChild("Ada", "girl", "2024-04-01")
	require.NoError(t, err)
	disabled := NewNutritionService(env.db, env.children, repository.NewDailyLogRepository(env.db), nil, svc, nil)
	_, err = disabled.SendDigest(context.Background(), child.ID, "2024-05-10", "a@example.com")
	assert.ErrorIs(t, err, ErrEmailDisabled)
}

func TestEmailServiceWithoutLogger(t *testing.T) {
	ses := &fakeSES{}
	svc := newEmailServiceWithClient(ses, config.EmailConfig{FromEmail: "digest@example.com"}, nil)

	err := svc.SendDailyDigest(context.Background(), "parent@example.com", "Ada", models.DailySummary{Date: "2024-05-10"})

	require.NoError(t, err)
	assert.Len(t, ses.inputs, 1)
}

func TestBackupRoundTrip(t *testing.T) {
	src := setupTestEnv(t)
	child, err := src.children.CreateChild("Ada", "girl", "2024-01-01")
	require.NoError(t, err)
	length := 58.0
	_, err = src.growth.RecordMeasurement(child.ID, "2024-03-01", 5.2, &length)
	require.NoError(t, err)
	_, err = src.nutrition.LogFreeText(child.ID, "2024-03-01", "bf 15 min, 2 wet")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, src.backup.ExportToWriter(&buf))
	assert.True(t, strings.Contains(buf.String(), `"version": "1.0"`))

	dst := setupTestEnv(t)
	stats, err := dst.backup.ImportFromReader(bytes.NewReader(buf.Bytes()), false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Children)
	assert.Equal(t, 1, stats.Measurements)
	assert.Equal(t, 1, stats.Feedings)
	assert.Equal(t, 2, stats.Diapers)
	assert.Equal(t, 1, stats.FreeTextLogs)

	records, err := dst.growth.ListMeasurements(child.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].LengthCm)
	assert.Equal(t, 58.0, *records[0].LengthCm)

	log, err := dst.nutrition.DailyLog(child.ID, "2024-03-01")
	require.NoError(t, err)
	assert.Len(t, log.Diapers, 2)

	again, err := dst.backup.ImportFromReader(bytes.NewReader(buf.Bytes()), false)
	require.NoError(t, err)
	assert.Equal(t, 1, again.SkippedChildren)

	replaced, err := dst.backup.ImportFromReader(bytes.NewReader(buf.Bytes()), true)
	require.NoError(t, err)
	assert.Equal(t, 1, replaced.Children)
}

func TestBackupRejectsUnknownVersion(t *testing.T) {
	env := setupTestEnv(t)
	_, err := env.backup.ImportFromReader(strings.NewReader(`{"version": "9"}`), false)
	assert.Error(t, err)
}
