package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ozscout/scoutql/internal/model"
)

// Evaluator is the query evaluation surface the batch processor needs
type Evaluator interface {
	EvaluateQuery(query string) model.QueryResult
}

// QueryJob evaluates one query text
type QueryJob struct {
	Query     string
	Evaluator Evaluator
	Limiter   *Limiter
}

// Execute runs the query through the evaluator, honoring the rate limiter
func (j *QueryJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx); err != nil {
			return &QueryOutcome{Query: j.Query, Error: err}
		}
	}
	result := j.Evaluator.EvaluateQuery(j.Query)
	return &QueryOutcome{Query: j.Query, Result: result}
}

// QueryOutcome is the outcome of one batch query
type QueryOutcome struct {
	Query  string
	Result model.QueryResult
	Error  error
}

// GetError returns the evaluation error, if any
func (r *QueryOutcome) GetError() error {
	return r.Error
}

// BatchProcessor evaluates many queries concurrently
type BatchProcessor struct {
	evaluator   Evaluator
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. A nil limiter disables
// throttling.
func NewBatchProcessor(evaluator Evaluator, concurrency int, limiter *Limiter) *BatchProcessor {
	return &BatchProcessor{
		evaluator:   evaluator,
		concurrency: concurrency,
		limiter:     limiter,
	}
}

// ProcessQueries evaluates the queries concurrently and returns the outcomes
func (b *BatchProcessor) ProcessQueries(ctx context.Context, queries []string) []*QueryOutcome {
	if len(queries) == 0 {
		return []*QueryOutcome{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	// Submission and result draining run concurrently: both pool channels
	// are bounded, so submitting everything up front would block once the
	// batch outgrows the buffers.
	go func() {
		for _, q := range queries {
			pool.Submit(&QueryJob{
				Query:     q,
				Evaluator: b.evaluator,
				Limiter:   b.limiter,
			})
		}
		pool.Close()
	}()

	results := pool.Wait()

	outcomes := make([]*QueryOutcome, len(results))
	for i, result := range results {
		outcomes[i] = result.(*QueryOutcome)
	}

	return outcomes
}

// ProcessFile reads queries from a file and evaluates them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*QueryOutcome, error) {
	queries, err := ReadQueriesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}

	return b.ProcessQueries(ctx, queries), nil
}

// ReadQueriesFromFile reads queries from a file, one per line. Empty lines
// and # comments are skipped; duplicate lines are evaluated once.
func ReadQueriesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var queries []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			queries = append(queries, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return queries, nil
}
