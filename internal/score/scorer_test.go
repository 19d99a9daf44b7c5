package score

import (
	"strings"
	"testing"

	"github.com/ozscout/scoutql/internal/model"
)

func testConfig() model.ScoringConfig {
	return model.ScoringConfig{
		AcceptThreshold:  0.55,
		TieWindow:        0.05,
		AmbiguityPenalty: 0.1,
		AmbiguityCap:     0.4,
		MaxCandidates:    3,
	}
}

func TestConfidence_FullCoverage(t *testing.T) {
	s := NewScorer(testConfig())

	interp := &model.Interpretation{Intent: model.Intent{Kind: model.IntentFilterList}}
	got := s.Confidence(interp, Coverage{ContentTokens: 4, ConsumedTokens: 4})
	if got != 1.0 {
		t.Errorf("expected confidence 1.0, got %f", got)
	}
}

func TestConfidence_PartialCoverage(t *testing.T) {
	s := NewScorer(testConfig())

	interp := &model.Interpretation{Intent: model.Intent{Kind: model.IntentFilterList}}
	got := s.Confidence(interp, Coverage{ContentTokens: 4, ConsumedTokens: 2})
	if got != 0.5 {
		t.Errorf("expected confidence 0.5, got %f", got)
	}
}

func TestConfidence_SlotCompleteness(t *testing.T) {
	s := NewScorer(testConfig())

	// Compare with only one of two subjects filled
	interp := &model.Interpretation{
		Intent: model.Intent{Kind: model.IntentCompare, Entities: []string{"richmond"}},
	}
	got := s.Confidence(interp, Coverage{ContentTokens: 2, ConsumedTokens: 2})
	if got != 0.5 {
		t.Errorf("expected confidence 0.5 with half-filled slots, got %f", got)
	}
}

func TestConfidence_AmbiguityPenalty(t *testing.T) {
	s := NewScorer(testConfig())

	interp := &model.Interpretation{Intent: model.Intent{Kind: model.IntentFilterList}}
	got := s.Confidence(interp, Coverage{ContentTokens: 4, ConsumedTokens: 4, Competitors: 2})
	if got != 0.8 {
		t.Errorf("expected confidence 0.8 with 2 competitors, got %f", got)
	}

	// Penalty is capped at 0.4 no matter how many competitors
	got = s.Confidence(interp, Coverage{ContentTokens: 4, ConsumedTokens: 4, Competitors: 50})
	if got != 0.6 {
		t.Errorf("expected capped penalty confidence 0.6, got %f", got)
	}
}

func TestConfidence_Clamped(t *testing.T) {
	s := NewScorer(testConfig())

	interp := &model.Interpretation{
		Intent: model.Intent{Kind: model.IntentCompare}, // zero of two slots
	}
	got := s.Confidence(interp, Coverage{ContentTokens: 10, ConsumedTokens: 1, Competitors: 50})
	if got != 0 {
		t.Errorf("expected confidence clamped to 0, got %f", got)
	}
}

func TestSelect_AcceptsAboveThreshold(t *testing.T) {
	s := NewScorer(testConfig())

	sel := s.Select([]model.Interpretation{{Confidence: 0.9}})
	if sel.Accepted == nil {
		t.Fatal("expected accepted interpretation")
	}
}

func TestSelect_ClarifiesBelowThreshold(t *testing.T) {
	s := NewScorer(testConfig())

	sel := s.Select([]model.Interpretation{{Confidence: 0.4}})
	if sel.Accepted != nil {
		t.Error("expected clarification below threshold")
	}
	if len(sel.Candidates) != 1 {
		t.Errorf("expected 1 candidate, got %d", len(sel.Candidates))
	}
}

func TestSelect_ClarifiesOnTie(t *testing.T) {
	s := NewScorer(testConfig())

	sel := s.Select([]model.Interpretation{
		{Confidence: 0.80},
		{Confidence: 0.78},
	})
	if sel.Accepted != nil {
		t.Error("expected clarification for tied candidates")
	}
}

func TestSelect_AcceptsClearWinner(t *testing.T) {
	s := NewScorer(testConfig())

	sel := s.Select([]model.Interpretation{
		{Confidence: 0.9},
		{Confidence: 0.6},
	})
	if sel.Accepted == nil {
		t.Fatal("expected accepted interpretation")
	}
	if sel.Accepted.Confidence != 0.9 {
		t.Errorf("expected best candidate accepted, got %f", sel.Accepted.Confidence)
	}
}

func TestSelect_ClarifiesUnsatisfiable(t *testing.T) {
	s := NewScorer(testConfig())

	sel := s.Select([]model.Interpretation{
		{Confidence: 0.95, Unsatisfiable: true, UnsatisfiableField: "age"},
	})
	if sel.Accepted != nil {
		t.Error("unsatisfiable best reading must clarify, never accept")
	}
}

func TestSelect_Empty(t *testing.T) {
	s := NewScorer(testConfig())

	sel := s.Select(nil)
	if sel.Accepted != nil || len(sel.Candidates) != 0 {
		t.Errorf("expected empty selection, got %+v", sel)
	}
}

func TestClarify_LimitsCandidates(t *testing.T) {
	s := NewScorer(testConfig())

	ranked := []model.Interpretation{
		{Confidence: 0.5}, {Confidence: 0.4}, {Confidence: 0.3}, {Confidence: 0.2},
	}
	candidates := s.Clarify(ranked)
	if len(candidates) != 3 {
		t.Errorf("expected 3 candidates, got %d", len(candidates))
	}
}

func TestRestate_FilterList(t *testing.T) {
	got := Restate(model.Interpretation{
		Intent: model.Intent{Kind: model.IntentFilterList},
		Constraints: []model.Constraint{
			{Field: "age", Operator: model.OpLt, Operands: []float64{23}},
			{Field: "position", Operator: model.OpEq, Values: []string{"key_forward"}},
		},
	})
	if !strings.Contains(got, "age") || !strings.Contains(got, "key forward") {
		t.Errorf("restatement missing constraint language: %q", got)
	}
}

func TestRestate_Compare(t *testing.T) {
	got := Restate(model.Interpretation{
		Intent: model.Intent{Kind: model.IntentCompare, Entities: []string{"richmond", "collingwood"}},
	})
	if !strings.Contains(got, "compare") || !strings.Contains(got, "richmond") {
		t.Errorf("unexpected compare restatement: %q", got)
	}
}

func TestRestate_TopN(t *testing.T) {
	got := Restate(model.Interpretation{
		Intent: model.Intent{Kind: model.IntentTopN, N: 10, RankingField: "goals"},
	})
	if !strings.Contains(got, "top 10") || !strings.Contains(got, "goals") {
		t.Errorf("unexpected top-n restatement: %q", got)
	}
}

func TestRestate_Unsatisfiable(t *testing.T) {
	got := Restate(model.Interpretation{
		Intent:             model.Intent{Kind: model.IntentFilterList},
		Unsatisfiable:      true,
		UnsatisfiableField: "age",
	})
	if !strings.Contains(got, "impossible") || !strings.Contains(got, "age") {
		t.Errorf("unsatisfiable restatement must name the conflict: %q", got)
	}
}

func TestRestate_Hints(t *testing.T) {
	got := Restate(model.Interpretation{
		Intent: model.Intent{Kind: model.IntentFilterList},
		Hints:  []model.RankingHint{{Field: "clearances", Descending: true}},
	})
	if !strings.Contains(got, "favoring high clearances") {
		t.Errorf("expected hint rendering, got %q", got)
	}
}
