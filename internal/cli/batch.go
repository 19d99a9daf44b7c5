package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/ozscout/scoutql/internal/engine"
	"github.com/ozscout/scoutql/internal/model"
	"github.com/ozscout/scoutql/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	batchTimeout time.Duration
	batchQPS     float64
	batchBurst   int
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Evaluate multiple queries from a file in parallel",
	Long: `Batch evaluates many questions concurrently:
- Read queries from the input file (one per line, # comments skipped)
- Evaluate in parallel with a configurable worker count
- Throttle evaluation rate when --qps is set
- Print one result per query plus a summary

Example:
  scoutql batch queries.txt
  scoutql batch queries.txt --concurrency 8 --format json
  scoutql batch queries.txt --qps 50`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&batchQPS, "qps", 0, "max queries evaluated per second (0 = unlimited)")
	batchCmd.Flags().IntVar(&batchBurst, "burst", 5, "rate limiter burst size")

	batchCmd.Flags().StringVar(&vocabPath, "vocab", "", "vocabulary YAML path (default: built-in AFL tables)")
	batchCmd.Flags().StringVar(&outFormat, "format", "yaml", "output format (yaml, json)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable response cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig()
	eng, err := engine.New(cfg)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	svc := engine.NewService(eng, cfg.Cache)

	var limiter *worker.Limiter
	if batchQPS > 0 {
		limiter = worker.NewLimiter(batchQPS, batchBurst)
	}
	processor := worker.NewBatchProcessor(svc, concurrency, limiter)

	fmt.Fprintf(os.Stderr, "⚙️  Reading queries from %s...\n", file)
	outcomes, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Evaluated %d queries with %d workers\n\n", len(outcomes), concurrency)

	accepted, clarify, rejected, failed := 0, 0, 0, 0
	for _, outcome := range outcomes {
		if outcome.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", outcome.Query, outcome.Error)
			continue
		}
		switch outcome.Result.Response.Status {
		case model.StatusAccepted:
			accepted++
		case model.StatusClarify:
			clarify++
		case model.StatusRejected:
			rejected++
		}
		if err := renderResult(os.Stdout, outcome.Result, cfg.Output.Format); err != nil {
			return fmt.Errorf("render result: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d\n", len(outcomes))
	fmt.Fprintf(os.Stderr, "  Accepted:  %d\n", accepted)
	fmt.Fprintf(os.Stderr, "  Clarify:   %d\n", clarify)
	fmt.Fprintf(os.Stderr, "  Rejected:  %d\n", rejected)
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "  Failed:    %d\n", failed)
	}

	return nil
}
