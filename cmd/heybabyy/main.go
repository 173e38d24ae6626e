// Command heybabyy runs the growth and nutrition engines from the shell
// and manages journal backups.
package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"heybabyy/internal/config"
	"heybabyy/internal/logging"
)

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "heybabyy",
	Short: "Infant growth and feeding toolkit",
	Long: `heybabyy scores infant weight and length against the WHO growth
standards, reads quick feeding notes and checks them against age-based
guidelines, and exports or restores the journal database.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := config.LoggingConfig{Level: "warn"}
		if verbose {
			cfg = config.LoggingConfig{Level: "debug", Development: true}
		}
		logger = logging.NewOrNop(cfg)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(growthCmd)
	rootCmd.AddCommand(nutritionCmd)
	rootCmd.AddCommand(backupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
