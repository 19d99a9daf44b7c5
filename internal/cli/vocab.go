package cli

import (
	"fmt"
	"os"

	"github.com/ozscout/scoutql/internal/engine"
	"github.com/spf13/cobra"
)

// vocabCmd represents the vocab command
var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Inspect the vocabulary",
	Long: `Inspect the vocabulary the engine resolves entities against,
either the built-in AFL tables or a custom YAML file.`,
}

var vocabShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List all vocabulary entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()
		eng, err := engine.New(cfg)
		if err != nil {
			return fmt.Errorf("create engine: %w", err)
		}

		for _, entry := range eng.Store().Entries() {
			fmt.Printf("%-28s %-10s %s\n", entry.CanonicalID, entry.Category, entry.Aliases)
		}
		return nil
	},
}

var vocabLookupCmd = &cobra.Command{
	Use:   "lookup <term>",
	Short: "Resolve a term against the vocabulary",
	Long: `Lookup shows how a term resolves, including fuzzy matches.

Example:
  scoutql vocab lookup Richmnd
  scoutql vocab lookup "key forward" --vocab my-vocab.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()
		eng, err := engine.New(cfg)
		if err != nil {
			return fmt.Errorf("create engine: %w", err)
		}

		matches := eng.Store().Lookup(args[0])
		if len(matches) == 0 {
			fmt.Fprintf(os.Stderr, "no match for %q\n", args[0])
			return nil
		}
		for _, m := range matches {
			fmt.Printf("%-28s %-10s score=%.3f via %q\n",
				m.Entry.CanonicalID, m.Entry.Category, m.Score, m.Alias)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vocabCmd)
	vocabCmd.AddCommand(vocabShowCmd)
	vocabCmd.AddCommand(vocabLookupCmd)

	vocabCmd.PersistentFlags().StringVar(&vocabPath, "vocab", "", "vocabulary YAML path (default: built-in AFL tables)")
}
