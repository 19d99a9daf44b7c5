package cli

import (
	"fmt"

	"github.com/ozscout/scoutql/internal/dataset"
	"github.com/spf13/cobra"
)

var importDBPath string

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <csv>",
	Short: "Import player statistics into a sqlite database",
	Long: `Import loads a CSV of per-player season statistics into the sqlite
players table that accepted queries execute against.

The CSV needs name, team and position columns; statistic columns matching
the vocabulary (disposals, goals, clearances, ...) are picked up by header.

Example:
  scoutql import stats-2025.csv --db players.db`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := dataset.Open(importDBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer func() { _ = db.Close() }()

		n, err := db.ImportCSV(args[0])
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}

		fmt.Printf("✓ Imported %d players into %s\n", n, importDBPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importDBPath, "db", "players.db", "sqlite database path")
}
