package intent

import (
	"testing"

	"github.com/ozscout/scoutql/internal/constraint"
	"github.com/ozscout/scoutql/internal/model"
	"github.com/ozscout/scoutql/internal/resolve"
	"github.com/ozscout/scoutql/internal/tokenize"
	"github.com/ozscout/scoutql/internal/vocab"
)

func classifyQuery(t *testing.T, query string) (model.Intent, map[int]bool) {
	t.Helper()
	store := vocab.Builtin(0.25)
	tokens := tokenize.Normalize(query, store)
	spans := resolve.Entities(tokens, store, 4)
	entities := resolve.Assignments(spans, 8)[0]
	ex := constraint.Extract(tokens, entities, store)
	return Classify(Inputs{
		Tokens:              tokens,
		Entities:            entities,
		Constraints:         ex.Constraints,
		Hints:               ex.Hints,
		DefaultRankingField: "disposals",
	})
}

func TestClassify_Compare(t *testing.T) {
	it, consumed := classifyQuery(t, "compare Richmond vs Collingwood")

	if it.Kind != model.IntentCompare {
		t.Fatalf("expected compare, got %s", it.Kind)
	}
	if len(it.Entities) != 2 || it.Entities[0] != "richmond" || it.Entities[1] != "collingwood" {
		t.Errorf("unexpected subjects %v", it.Entities)
	}
	// Both trigger words are consumed
	if !consumed[0] || !consumed[2] {
		t.Errorf("expected compare triggers consumed, got %v", consumed)
	}
}

func TestClassify_CompareNeedsTwoTeams(t *testing.T) {
	it, _ := classifyQuery(t, "compare Richmond midfielders")

	if it.Kind == model.IntentCompare {
		t.Error("compare must not trigger with a single team")
	}
}

func TestClassify_TopN(t *testing.T) {
	it, consumed := classifyQuery(t, "top 10 key forwards")

	if it.Kind != model.IntentTopN {
		t.Fatalf("expected top_n, got %s", it.Kind)
	}
	if it.N != 10 {
		t.Errorf("expected n=10, got %d", it.N)
	}
	// No statistic named: the configured default ranking field fills in
	if it.RankingField != "disposals" {
		t.Errorf("expected default ranking field, got %q", it.RankingField)
	}
	if !consumed[0] || !consumed[1] {
		t.Errorf("expected superlative and numeral consumed, got %v", consumed)
	}
}

func TestClassify_TopNDefaultCount(t *testing.T) {
	it, _ := classifyQuery(t, "best ruckmen by tackles")

	if it.Kind != model.IntentTopN {
		t.Fatalf("expected top_n, got %s", it.Kind)
	}
	if it.N != 10 {
		t.Errorf("expected default n=10, got %d", it.N)
	}
	if it.RankingField != "tackles" {
		t.Errorf("expected ranking by tackles, got %q", it.RankingField)
	}
}

func TestClassify_TopNRankingFromStatistic(t *testing.T) {
	store := vocab.Builtin(0.25)
	tokens := tokenize.Normalize("top defenders with high marks", store)
	spans := resolve.Entities(tokens, store, 4)
	entities := resolve.Assignments(spans, 8)[0]
	ex := constraint.Extract(tokens, entities, store)

	it, _ := Classify(Inputs{
		Tokens:      tokens,
		Entities:    entities,
		Constraints: ex.Constraints,
		Hints:       ex.Hints,
	})
	if it.Kind != model.IntentTopN {
		t.Fatalf("expected top_n, got %s", it.Kind)
	}
	if it.RankingField != "marks" {
		t.Errorf("expected ranking by marks, got %q", it.RankingField)
	}
}

func TestClassify_TopNNoRankingField(t *testing.T) {
	store := vocab.Builtin(0.25)
	tokens := tokenize.Normalize("top 5 ruckmen", store)
	spans := resolve.Entities(tokens, store, 4)
	entities := resolve.Assignments(spans, 8)[0]

	it, _ := Classify(Inputs{Tokens: tokens, Entities: entities})
	if it.Kind != model.IntentTopN {
		t.Fatalf("expected top_n, got %s", it.Kind)
	}
	if it.RankingField != "" {
		t.Errorf("expected empty ranking field without a default, got %q", it.RankingField)
	}
}

func TestClassify_Lookup(t *testing.T) {
	it, _ := classifyQuery(t, "Richmond")

	if it.Kind != model.IntentLookup {
		t.Fatalf("expected lookup, got %s", it.Kind)
	}
	if it.Entity != "richmond" {
		t.Errorf("expected richmond subject, got %q", it.Entity)
	}
}

func TestClassify_LookupBlockedByConstraints(t *testing.T) {
	it, _ := classifyQuery(t, "Richmond under 23")

	if it.Kind == model.IntentLookup {
		t.Error("lookup must not trigger when other constraints exist")
	}
	if it.Kind != model.IntentFilterList {
		t.Errorf("expected filter_list, got %s", it.Kind)
	}
}

func TestClassify_Trend(t *testing.T) {
	it, consumed := classifyQuery(t, "Richmond disposals over last 3 seasons")

	if it.Kind != model.IntentTrend {
		t.Fatalf("expected trend, got %s", it.Kind)
	}
	if it.TimeDim != "season" {
		t.Errorf("expected season dimension, got %q", it.TimeDim)
	}
	if it.Entity != "richmond" {
		t.Errorf("expected richmond subject, got %q", it.Entity)
	}
	// "over last 3 seasons" is the time phrase; "over" is part of it, not a
	// numeric comparison.
	for _, i := range []int{2, 3, 4, 5} {
		if !consumed[i] {
			t.Errorf("expected trend phrase token %d consumed, got %v", i, consumed)
		}
	}
}

func TestClassify_TrendWord(t *testing.T) {
	it, _ := classifyQuery(t, "Richmond goals trend")

	if it.Kind != model.IntentTrend {
		t.Fatalf("expected trend, got %s", it.Kind)
	}
	if it.TimeDim != "season" {
		t.Errorf("expected default season dimension, got %q", it.TimeDim)
	}
}

func TestClassify_FilterListDefault(t *testing.T) {
	it, _ := classifyQuery(t, "midfielders under 23 with high clearance rates")

	if it.Kind != model.IntentFilterList {
		t.Errorf("expected filter_list, got %s", it.Kind)
	}
}

func TestClassify_PriorityCompareOverTopN(t *testing.T) {
	it, _ := classifyQuery(t, "compare the best of Richmond vs Collingwood")

	if it.Kind != model.IntentCompare {
		t.Errorf("compare outranks top_n, got %s", it.Kind)
	}
}
