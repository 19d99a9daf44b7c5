package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ozscout/scoutql/internal/dataset"
	"github.com/ozscout/scoutql/internal/engine"
	"github.com/ozscout/scoutql/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	vocabPath string
	outFormat string
	dbPath    string
	noCache   bool
	threshold float64
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Evaluate a single scouting question",
	Long: `Query evaluates one free-text question:
- Tokenize and resolve vocabulary terms (typo-tolerant)
- Extract numeric and categorical constraints
- Classify intent and compile a filter expression tree
- Score confidence and accept, clarify, or reject

Example:
  scoutql query "find midfielders under 23 with high clearance rates"
  scoutql query "top 10 key forwards by goals" --format json
  scoutql query "compare Richmond vs Collingwood" --db players.db`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVar(&vocabPath, "vocab", "", "vocabulary YAML path (default: built-in AFL tables)")
	queryCmd.Flags().StringVar(&outFormat, "format", "yaml", "output format (yaml, json)")
	queryCmd.Flags().StringVar(&dbPath, "db", "", "sqlite players database; accepted queries are executed against it")
	queryCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable response cache")
	queryCmd.Flags().Float64Var(&threshold, "threshold", 0, "override the accept confidence threshold")
}

func runQuery(cmd *cobra.Command, args []string) error {
	text := args[0]

	cfg := buildConfig()
	eng, err := engine.New(cfg)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	svc := engine.NewService(eng, cfg.Cache)

	if verbose {
		fmt.Fprintf(os.Stderr, "Query: %s\n", text)
		fmt.Fprintf(os.Stderr, "Vocabulary: %d entries\n", eng.Store().Len())
		fmt.Fprintln(os.Stderr)
	}

	result := svc.EvaluateQuery(text)

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Status: %s\n", result.Response.Status)
		if result.Response.Interpretation != nil {
			fmt.Fprintf(os.Stderr, "✓ Intent: %s (confidence %.2f)\n",
				result.Response.Interpretation.Intent.Kind,
				result.Response.Interpretation.Confidence)
			fmt.Fprintf(os.Stderr, "✓ Constraints: %d\n", len(result.Response.Interpretation.Constraints))
		}
		fmt.Fprintf(os.Stderr, "✓ Took: %v\n", result.Duration)
		fmt.Fprintln(os.Stderr)
	}

	if err := renderResult(os.Stdout, result, cfg.Output.Format); err != nil {
		return fmt.Errorf("render result: %w", err)
	}

	// Execute against the players table when a database is supplied.
	if dbPath != "" && result.Response.Status == model.StatusAccepted {
		return executeAccepted(result.Response.Interpretation, cfg.Output.Format)
	}

	return nil
}

func executeAccepted(interp *model.Interpretation, format string) error {
	db, err := dataset.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	table, err := db.Execute(interp)
	if err != nil {
		return fmt.Errorf("execute query: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Matched %d rows\n\n", len(table.Rows))
	}

	return renderValue(os.Stdout, table, format)
}

// buildConfig assembles the engine configuration from defaults, the viper
// layer, and command flags.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Vocabulary.Path = vocabPath
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	if outFormat != "" {
		cfg.Output.Format = outFormat
	}
	if threshold > 0 {
		cfg.Scoring.AcceptThreshold = threshold
	}
	if v := viper.GetFloat64("scoring.accept_threshold"); v > 0 && threshold == 0 {
		cfg.Scoring.AcceptThreshold = v
	}
	if v := viper.GetString("vocabulary.path"); v != "" && vocabPath == "" {
		cfg.Vocabulary.Path = v
	}
	if v := viper.GetString("scoring.default_ranking_field"); v != "" {
		cfg.Scoring.DefaultRankingField = v
	}
	return cfg
}

// renderResult writes a query result in the requested format
func renderResult(w io.Writer, result model.QueryResult, format string) error {
	return renderValue(w, result, format)
}

func renderValue(w io.Writer, v any, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}
