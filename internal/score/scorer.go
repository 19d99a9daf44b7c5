package score

import (
	"sort"

	"github.com/ozscout/scoutql/internal/model"
)

// Coverage counts how much of the query an interpretation accounts for
type Coverage struct {
	ContentTokens  int // All tokens after normalization
	ConsumedTokens int // Tokens claimed by entities, constraints, intent triggers
	Competitors    int // Unresolved competing candidates at tied spans
}

// Scorer rates interpretations and selects the winner
type Scorer struct {
	cfg model.ScoringConfig
}

// NewScorer creates a scorer with the given thresholds
func NewScorer(cfg model.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Confidence computes token_coverage * slot_completeness - ambiguity_penalty,
// clamped to [0, 1].
func (s *Scorer) Confidence(interp *model.Interpretation, cov Coverage) float64 {
	coverage := 1.0
	if cov.ContentTokens > 0 {
		coverage = float64(cov.ConsumedTokens) / float64(cov.ContentTokens)
	}

	completeness := 1.0
	if required, filled := interp.Intent.RequiredSlots(); required > 0 {
		completeness = float64(filled) / float64(required)
	}

	penalty := s.cfg.AmbiguityPenalty * float64(cov.Competitors)
	if penalty > s.cfg.AmbiguityCap {
		penalty = s.cfg.AmbiguityCap
	}

	confidence := coverage*completeness - penalty
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

// Selection is the outcome of ranking all interpretations
type Selection struct {
	Accepted   *model.Interpretation
	Candidates []model.Interpretation // Ranked, best first
}

// Select ranks interpretations by confidence and picks the winner, or
// routes to clarification when the best is below the acceptance threshold,
// the top two tie, or the best reading is unsatisfiable.
func (s *Scorer) Select(interps []model.Interpretation) Selection {
	if len(interps) == 0 {
		return Selection{}
	}

	ranked := make([]model.Interpretation, len(interps))
	copy(ranked, interps)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence > ranked[j].Confidence
	})

	best := ranked[0]
	tied := len(ranked) > 1 && best.Confidence-ranked[1].Confidence < s.cfg.TieWindow
	if best.Unsatisfiable || tied || best.Confidence < s.cfg.AcceptThreshold {
		return Selection{Candidates: ranked}
	}
	return Selection{Accepted: &ranked[0], Candidates: ranked}
}
