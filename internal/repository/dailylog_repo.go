package repository

import (
	"database/sql"
	"fmt"

	"heybabyy/internal/database"
	"heybabyy/internal/models"
)

// DailyLogRepository stores feedings, diapers and free-text notes keyed by
// child and calendar day
type DailyLogRepository struct {
	db database.DBTX
}

// NewDailyLogRepository creates a new daily log repository
func NewDailyLogRepository(db database.DBTX) *DailyLogRepository {
	return &DailyLogRepository{db: db}
}

// AddFeeding stores a feeding under the given day
func (r *DailyLogRepository) AddFeeding(childID, date string, f models.FeedingEntry) error {
	query := `
		INSERT INTO feedings (id, child_id, log_date, fed_at, type, quantity, duration, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		f.ID,
		childID,
		date,
		f.Timestamp.UTC(),
		string(f.Type),
		nullFloat(f.Quantity),
		nullFloat(f.Duration),
		f.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to add feeding: %w", err)
	}
	return nil
}

// FeedingExists reports whether a feeding with the id is already stored
func (r *DailyLogRepository) FeedingExists(id string) (bool, error) {
	return r.exists("SELECT COUNT(*) FROM feedings WHERE id = ?", id)
}

// DiaperExists reports whether a diaper change with the id is already stored
func (r *DailyLogRepository) DiaperExists(id string) (bool, error) {
	return r.exists("SELECT COUNT(*) FROM diapers WHERE id = ?", id)
}

func (r *DailyLogRepository) exists(query, id string) (bool, error) {
	var count int
	if err := r.db.QueryRow(query, id).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to look up entry %s: %w", id, err)
	}
	return count > 0, nil
}

// AddDiaper stores a diaper change under the given day
func (r *DailyLogRepository) AddDiaper(childID, date string, d models.DiaperEntry) error {
	var stoolType interface{}
	if d.StoolType != nil {
		stoolType = string(*d.StoolType)
	}

	query := `
		INSERT INTO diapers (id, child_id, log_date, changed_at, wet, stool, stool_type)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, d.ID, childID, date, d.Timestamp.UTC(), d.Wet, d.Stool, stoolType)
	if err != nil {
		return fmt.Errorf("failed to add diaper: %w", err)
	}
	return nil
}

// AddFreeText stores the raw text a caregiver typed and returns its row id
func (r *DailyLogRepository) AddFreeText(childID, date, body string) (int64, error) {
	id, err := r.db.ExecReturningID(
		"INSERT INTO free_text_logs (child_id, log_date, body) VALUES (?, ?, ?)",
		childID, date, body,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to add free text log: %w", err)
	}
	return id, nil
}

// GetDailyLog assembles everything recorded for a child on one day. Days
// with nothing recorded yield an empty log, not an error.
func (r *DailyLogRepository) GetDailyLog(childID, date string) (models.DailyLog, error) {
	log := models.DailyLog{
		Date:         date,
		Feedings:     []models.FeedingEntry{},
		Diapers:      []models.DiaperEntry{},
		FreeTextLogs: []string{},
	}

	var err error
	if log.Feedings, err = r.listFeedings(childID, date); err != nil {
		return log, err
	}
	if log.Diapers, err = r.listDiapers(childID, date); err != nil {
		return log, err
	}
	if log.FreeTextLogs, err = r.listFreeText(childID, date); err != nil {
		return log, err
	}
	return log, nil
}

// ListLogDates returns every day with at least one entry, oldest first
func (r *DailyLogRepository) ListLogDates(childID string) ([]string, error) {
	query := `
		SELECT log_date FROM feedings WHERE child_id = ?
		UNION
		SELECT log_date FROM diapers WHERE child_id = ?
		UNION
		SELECT log_date FROM free_text_logs WHERE child_id = ?
		ORDER BY log_date ASC
	`
	rows, err := r.db.Query(query, childID, childID, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query log dates: %w", err)
	}
	defer rows.Close()

	dates := []string{}
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan log date: %w", err)
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

func (r *DailyLogRepository) listFeedings(childID, date string) ([]models.FeedingEntry, error) {
	query := `
		SELECT id, fed_at, type, quantity, duration, notes
		FROM feedings
		WHERE child_id = ? AND log_date = ?
		ORDER BY fed_at ASC, seq ASC
	`
	rows, err := r.db.Query(query, childID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedings: %w", err)
	}
	defer rows.Close()

	feedings := []models.FeedingEntry{}
	for rows.Next() {
		var f models.FeedingEntry
		var feedType string
		var quantity, duration sql.NullFloat64
		if err := rows.Scan(&f.ID, &f.Timestamp, &feedType, &quantity, &duration, &f.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan feeding: %w", err)
		}
		f.Type = models.FeedType(feedType)
		f.Quantity = floatPtr(quantity)
		f.Duration = floatPtr(duration)
		feedings = append(feedings, f)
	}
	return feedings, rows.Err()
}

func (r *DailyLogRepository) listDiapers(childID, date string) ([]models.DiaperEntry, error) {
	query := `
		SELECT id, changed_at, wet, stool, stool_type
		FROM diapers
		WHERE child_id = ? AND log_date = ?
		ORDER BY changed_at ASC, seq ASC
	`
	rows, err := r.db.Query(query, childID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query diapers: %w", err)
	}
	defer rows.Close()

	diapers := []models.DiaperEntry{}
	for rows.Next() {
		var d models.DiaperEntry
		var stoolType sql.NullString
		if err := rows.Scan(&d.ID, &d.Timestamp, &d.Wet, &d.Stool, &stoolType); err != nil {
			return nil, fmt.Errorf("failed to scan diaper: %w", err)
		}
		if stoolType.Valid {
			st := models.StoolType(stoolType.String)
			d.StoolType = &st
		}
		diapers = append(diapers, d)
	}
	return diapers, rows.Err()
}

func (r *DailyLogRepository) listFreeText(childID, date string) ([]string, error) {
	query := `
		SELECT body FROM free_text_logs
		WHERE child_id = ? AND log_date = ?
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query, childID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query free text logs: %w", err)
	}
	defer rows.Close()

	bodies := []string{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan free text log: %w", err)
		}
		bodies = append(bodies, body)
	}
	return bodies, rows.Err()
}

func nullFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
