package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"heybabyy/internal/config"
	"heybabyy/internal/database"
	"heybabyy/internal/service"
)

var (
	backupOutput string
	backupInput  string
	backupClear  bool
	backupYes    bool
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or restore the journal database",
	Long: `Export or restore the journal database as JSON.

The database is chosen the same way as for the server: DB_TYPE, DB_PATH and
DATABASE_URL, or a HEYBABYY_CONFIG file.`,
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every child and their records to a JSON file",
	RunE:  runBackupExport,
}

var backupImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import children and records from a JSON file",
	Example: `  heybabyy backup import --input backup.json
  heybabyy backup import --input backup.json --clear`,
	RunE: runBackupImport,
}

func init() {
	backupExportCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	backupImportCmd.Flags().StringVarP(&backupInput, "input", "i", "", "Input file path (required)")
	backupImportCmd.Flags().BoolVar(&backupClear, "clear", false, "Clear existing data before import (destructive)")
	backupImportCmd.Flags().BoolVarP(&backupYes, "yes", "y", false, "Skip the confirmation prompt for --clear")
	_ = backupImportCmd.MarkFlagRequired("input")

	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
}

func openBackupService() (*service.BackupService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.InitializeWithConfig(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.RunMigrations(database.MigrationSource(cfg.Database.MigrationsPath), logger); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return service.NewBackupService(db, logger), func() { db.Close() }, nil
}

func runBackupExport(cmd *cobra.Command, args []string) error {
	outputPath := backupOutput
	if outputPath == "" {
		outputPath = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	}
	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	backups, closeDB, err := openBackupService()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := backups.Export(outputPath); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return err
	}
	logger.Info("Export complete", zap.String("path", outputPath), zap.Int64("bytes", info.Size()))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s (%.2f KB)\n", outputPath, float64(info.Size())/1024)
	return nil
}

func runBackupImport(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(backupInput); err != nil {
		return fmt.Errorf("input file: %w", err)
	}

	if backupClear && !backupYes {
		fmt.Fprint(cmd.OutOrStdout(), "This will delete all existing data. Type 'yes' to confirm: ")
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Import cancelled")
			return nil
		}
	}

	backups, closeDB, err := openBackupService()
	if err != nil {
		return err
	}
	defer closeDB()

	stats, err := backups.Import(backupInput, backupClear)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d children (%d already present), %d measurements, %d feedings, %d diapers, %d notes\n",
		stats.Children, stats.SkippedChildren, stats.Measurements, stats.Feedings, stats.Diapers, stats.FreeTextLogs)
	return nil
}
