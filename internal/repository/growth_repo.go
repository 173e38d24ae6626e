package repository

import (
	"database/sql"
	"fmt"
	"time"

	"heybabyy/internal/database"
	"heybabyy/internal/models"
)

// GrowthRepository stores weight and length readings
type GrowthRepository struct {
	db database.DBTX
}

// NewGrowthRepository creates a new growth repository
func NewGrowthRepository(db database.DBTX) *GrowthRepository {
	return &GrowthRepository{db: db}
}

// UpsertRecord stores a reading, replacing any reading for the same child
// and day, and returns the stored row
func (r *GrowthRepository) UpsertRecord(childID string, measuredOn time.Time, weightKg float64, lengthCm *float64) (*models.GrowthRecord, error) {
	day := measuredOn.Format(models.DateLayout)

	if _, err := r.db.Exec(r.db.GetDialect().UpsertGrowthRecord(), childID, day, weightKg, nullFloat(lengthCm)); err != nil {
		return nil, fmt.Errorf("failed to store growth record: %w", err)
	}

	query := `
		SELECT id, child_id, measured_on, weight_kg, length_cm, created_at
		FROM growth_records
		WHERE child_id = ? AND measured_on = ?
	`
	record, err := scanGrowthRecord(r.db.QueryRow(query, childID, day))
	if err != nil {
		return nil, fmt.Errorf("failed to reload growth record: %w", err)
	}
	return record, nil
}

// ListByChild returns a child's readings, oldest first
func (r *GrowthRepository) ListByChild(childID string) ([]models.GrowthRecord, error) {
	query := `
		SELECT id, child_id, measured_on, weight_kg, length_cm, created_at
		FROM growth_records
		WHERE child_id = ?
		ORDER BY measured_on ASC
	`
	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query growth records: %w", err)
	}
	defer rows.Close()

	records := []models.GrowthRecord{}
	for rows.Next() {
		record, err := scanGrowthRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan growth record: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func scanGrowthRecord(row rowScanner) (*models.GrowthRecord, error) {
	var record models.GrowthRecord
	var day string
	var length sql.NullFloat64
	if err := row.Scan(
		&record.ID,
		&record.ChildID,
		&day,
		&record.WeightKg,
		&length,
		&record.CreatedAt,
	); err != nil {
		return nil, err
	}

	measuredOn, err := time.Parse(models.DateLayout, day)
	if err != nil {
		return nil, fmt.Errorf("invalid measurement date %q: %w", day, err)
	}
	record.MeasuredOn = measuredOn
	record.LengthCm = floatPtr(length)
	return &record, nil
}
