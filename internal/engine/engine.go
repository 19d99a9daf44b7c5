package engine

import (
	"fmt"
	"unicode/utf8"

	"github.com/ozscout/scoutql/internal/compile"
	"github.com/ozscout/scoutql/internal/constraint"
	"github.com/ozscout/scoutql/internal/intent"
	"github.com/ozscout/scoutql/internal/model"
	"github.com/ozscout/scoutql/internal/resolve"
	"github.com/ozscout/scoutql/internal/score"
	"github.com/ozscout/scoutql/internal/tokenize"
	"github.com/ozscout/scoutql/internal/vocab"
)

// Engine turns free-text scouting queries into filter expression trees.
// It is a pure, synchronous transformation: the vocabulary store is its
// only long-lived state and is read-only, so one engine serves any number
// of concurrent evaluations.
type Engine struct {
	store    *vocab.Store
	compiler *compile.Compiler
	scorer   *score.Scorer
	cfg      *model.Config
}

// New creates an engine, loading the vocabulary from the configured YAML
// path or falling back to the built-in tables.
func New(cfg *model.Config) (*Engine, error) {
	var store *vocab.Store
	var err error
	if cfg.Vocabulary.Path != "" {
		store, err = vocab.Load(cfg.Vocabulary.Path, cfg.Matching.MaxEditRatio)
		if err != nil {
			return nil, fmt.Errorf("load vocabulary: %w", err)
		}
	} else {
		store = vocab.Builtin(cfg.Matching.MaxEditRatio)
	}
	return NewWithStore(cfg, store), nil
}

// NewWithStore creates an engine over an existing vocabulary store
func NewWithStore(cfg *model.Config, store *vocab.Store) *Engine {
	return &Engine{
		store:    store,
		compiler: compile.New(store),
		scorer:   score.NewScorer(cfg.Scoring),
		cfg:      cfg,
	}
}

// Store returns the engine's vocabulary store
func (e *Engine) Store() *vocab.Store {
	return e.store
}

// Evaluate converts one raw query into a response: an accepted
// interpretation, a ranked clarification list, or a rejection. Failures of
// individual interpretations stay local; only exhaustion of all candidates
// rejects the query.
func (e *Engine) Evaluate(query string) model.Response {
	if utf8.RuneCountInString(query) > e.cfg.Limits.MaxQueryChars {
		return model.Rejected(model.RejectInputTooLong,
			fmt.Sprintf("query exceeds %d characters", e.cfg.Limits.MaxQueryChars))
	}

	// 1. Normalize into tokens
	tokens := tokenize.Normalize(query, e.store)
	if len(tokens) == 0 {
		return model.Rejected(model.RejectEmptyQuery, "no content after normalization")
	}

	// 2. Resolve entity spans, keeping ties as competing candidates
	spans := resolve.Entities(tokens, e.store, e.cfg.Matching.MaxNGram)
	if len(spans) == 0 {
		return model.Rejected(model.RejectNoResolvableEntities, "no recognizable teams, positions, leagues, or statistics")
	}
	competitors := resolve.Competitors(spans)

	// 3. One interpretation per entity assignment
	var interps []model.Interpretation
	for _, entities := range resolve.Assignments(spans, e.cfg.Scoring.MaxInterpretations) {
		if interp, ok := e.interpret(tokens, entities, competitors); ok {
			interps = append(interps, interp)
		}
	}
	if len(interps) == 0 {
		return model.Rejected(model.RejectNoValidInterpretation, "every candidate reading failed validation")
	}

	// 4. Rank and select
	selection := e.scorer.Select(interps)
	if selection.Accepted != nil {
		return model.Accepted(*selection.Accepted)
	}
	return model.Clarify(e.scorer.Clarify(selection.Candidates))
}

// interpret runs extraction, classification, compilation, and scoring for
// one entity assignment. A false return discards the candidate.
func (e *Engine) interpret(tokens []model.Token, entities []model.ResolvedEntity, competitors int) (model.Interpretation, bool) {
	ex := constraint.Extract(tokens, entities, e.store)
	merged, unsatField := constraint.Merge(ex.Constraints)

	kind, intentConsumed := intent.Classify(intent.Inputs{
		Tokens:              tokens,
		Entities:            entities,
		Constraints:         ex.Constraints,
		Hints:               ex.Hints,
		DefaultRankingField: e.cfg.Scoring.DefaultRankingField,
	})

	interp := model.Interpretation{
		Intent:      kind,
		Constraints: merged,
		Entities:    entities,
		Hints:       ex.Hints,
	}
	if unsatField != "" {
		interp.Unsatisfiable = true
		interp.UnsatisfiableField = unsatField
	}

	if err := e.compiler.Compile(&interp); err != nil {
		return model.Interpretation{}, false
	}

	consumed := make(map[int]bool, len(tokens))
	for _, ent := range entities {
		for i := ent.FirstToken; i <= ent.LastToken; i++ {
			consumed[i] = true
		}
	}
	for i := range ex.Consumed {
		consumed[i] = true
	}
	for i := range intentConsumed {
		consumed[i] = true
	}

	interp.Confidence = e.scorer.Confidence(&interp, score.Coverage{
		ContentTokens:  len(tokens),
		ConsumedTokens: len(consumed),
		Competitors:    competitors,
	})
	return interp, true
}
