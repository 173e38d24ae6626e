package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"heybabyy/internal/database"
	"heybabyy/internal/models"
	"heybabyy/internal/repository"
)

const backupVersion = "1.0"

// BackupData represents the complete journal backup structure
type BackupData struct {
	Version      string        `json:"version"`
	ExportedAt   time.Time     `json:"exported_at"`
	DatabaseType string        `json:"database_type"`
	Children     []ChildBackup `json:"children"`
}

// ChildBackup is one child with every reading and daily log recorded for them
type ChildBackup struct {
	Child        models.Child          `json:"child"`
	Measurements []models.GrowthRecord `json:"measurements"`
	Logs         []models.DailyLog     `json:"logs"`
}

// ImportStats counts what an import wrote
type ImportStats struct {
	Children        int `json:"children"`
	SkippedChildren int `json:"skipped_children"`
	Measurements    int `json:"measurements"`
	Feedings        int `json:"feedings"`
	Diapers         int `json:"diapers"`
	FreeTextLogs    int `json:"free_text_logs"`
}

// tables in reverse order of dependencies
var journalTables = []string{"free_text_logs", "diapers", "feedings", "growth_records", "children"}

// BackupService handles journal backup and restore operations
type BackupService struct {
	db     *database.DB
	logger *zap.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, logger *zap.Logger) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{db: db, logger: logger}
}

// Export writes a complete backup of the journal to a file
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}
	s.logger.Info("Journal exported", zap.String("path", outputPath))
	return nil
}

// ExportToWriter writes a complete backup of the journal as indented JSON
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup, err := s.collect()
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

func (s *BackupService) collect() (*BackupData, error) {
	backup := &BackupData{
		Version:      backupVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.db.Dialect.MigrationsSubdir(),
		Children:     []ChildBackup{},
	}

	childRepo := repository.NewChildRepository(s.db)
	growthRepo := repository.NewGrowthRepository(s.db)
	logRepo := repository.NewDailyLogRepository(s.db)

	children, err := childRepo.ListChildren()
	if err != nil {
		return nil, fmt.Errorf("failed to export children: %w", err)
	}

	for _, child := range children {
		entry := ChildBackup{Child: child, Logs: []models.DailyLog{}}

		if entry.Measurements, err = growthRepo.ListByChild(child.ID); err != nil {
			return nil, fmt.Errorf("failed to export measurements: %w", err)
		}

		dates, err := logRepo.ListLogDates(child.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to export log dates: %w", err)
		}
		for _, date := range dates {
			log, err := logRepo.GetDailyLog(child.ID, date)
			if err != nil {
				return nil, fmt.Errorf("failed to export log %s: %w", date, err)
			}
			entry.Logs = append(entry.Logs, log)
		}

		backup.Children = append(backup.Children, entry)
	}

	s.logger.Info("Journal collected", zap.Int("children", len(backup.Children)))
	return backup, nil
}

// Import restores a journal from a backup file
func (s *BackupService) Import(inputPath string, clear bool) (*ImportStats, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file, clear)
}

// ImportFromReader restores a journal from a backup reader. Without clear,
// children that already exist are left untouched and their backup entries
// skipped. The import is all-or-nothing.
func (s *BackupService) ImportFromReader(reader io.Reader, clear bool) (*ImportStats, error) {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != backupVersion {
		return nil, fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	s.logger.Info("Importing journal",
		zap.String("version", backup.Version),
		zap.Time("exported_at", backup.ExportedAt),
		zap.Bool("clear", clear))

	stats := &ImportStats{}
	err := s.db.WithTx(func(tx *database.Tx) error {
		if clear {
			if err := clearJournal(tx); err != nil {
				return err
			}
		}
		for _, entry := range backup.Children {
			if err := importChild(tx, entry, stats); err != nil {
				return fmt.Errorf("failed to import child %s: %w", entry.Child.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Journal import completed",
		zap.Int("children", stats.Children),
		zap.Int("skipped", stats.SkippedChildren),
		zap.Int("measurements", stats.Measurements))
	return stats, nil
}

func clearJournal(tx database.DBTX) error {
	for _, table := range journalTables {
		if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

func importChild(tx database.DBTX, entry ChildBackup, stats *ImportStats) error {
	childRepo := repository.NewChildRepository(tx)
	existing, err := childRepo.GetChildByID(entry.Child.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		stats.SkippedChildren++
		return nil
	}

	child := entry.Child
	if err := childRepo.CreateChild(&child); err != nil {
		return err
	}
	stats.Children++

	growthRepo := repository.NewGrowthRepository(tx)
	for _, m := range entry.Measurements {
		if _, err := growthRepo.UpsertRecord(child.ID, m.MeasuredOn, m.WeightKg, m.LengthCm); err != nil {
			return err
		}
		stats.Measurements++
	}

	logRepo := repository.NewDailyLogRepository(tx)
	for _, log := range entry.Logs {
		for _, text := range log.FreeTextLogs {
			if _, err := logRepo.AddFreeText(child.ID, log.Date, text); err != nil {
				return err
			}
			stats.FreeTextLogs++
		}
		for _, f := range log.Feedings {
			if err := logRepo.AddFeeding(child.ID, log.Date, f); err != nil {
				return err
			}
			stats.Feedings++
		}
		for _, d := range log.Diapers {
			if err := logRepo.AddDiaper(child.ID, log.Date, d); err != nil {
				return err
			}
			stats.Diapers++
		}
	}
	return nil
}
