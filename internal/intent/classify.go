package intent

import (
	"strconv"
	"strings"

	"github.com/ozscout/scoutql/internal/model"
)

// Inputs is everything the classifier looks at for one interpretation
type Inputs struct {
	Tokens      []model.Token
	Entities    []model.ResolvedEntity
	Constraints []model.Constraint // Pre-merge, including entity-derived categorical ones
	Hints       []model.RankingHint

	// Fallback TopN ranking field when the query names no statistic.
	// Empty leaves the slot unfilled.
	DefaultRankingField string
}

var compareWords = map[string]bool{
	"compare": true, "vs": true, "versus": true, "compared": true,
}

var superlatives = map[string]bool{
	"top": true, "best": true, "highest": true, "most": true, "leading": true,
}

var timeUnits = map[string]string{
	"season": "season", "seasons": "season",
	"year": "year", "years": "year",
	"round": "round", "rounds": "round",
}

const defaultTopN = 10

// Classify determines the query shape by ordered pattern priority: Compare,
// then TopN, then Lookup, then Trend, then FilterList. First matching
// pattern class wins; competing entity resolutions are handled upstream as
// separate interpretations. The returned set holds the token indices the
// intent's trigger words consumed.
func Classify(in Inputs) (model.Intent, map[int]bool) {
	consumed := make(map[int]bool)

	if it, ok := classifyCompare(in, consumed); ok {
		return it, consumed
	}
	if it, ok := classifyTopN(in, consumed); ok {
		return it, consumed
	}
	if it, ok := classifyLookup(in); ok {
		return it, consumed
	}
	if it, ok := classifyTrend(in, consumed); ok {
		return it, consumed
	}
	return model.Intent{Kind: model.IntentFilterList}, consumed
}

// classifyCompare matches "compare"/"vs"/"versus" plus at least two
// distinct team subjects.
func classifyCompare(in Inputs, consumed map[int]bool) (model.Intent, bool) {
	var triggers []int
	for i, t := range in.Tokens {
		if compareWords[t.Text] {
			triggers = append(triggers, i)
		}
	}
	if len(triggers) == 0 {
		return model.Intent{}, false
	}

	var subjects []string
	seen := make(map[string]bool)
	for _, e := range in.Entities {
		if e.Category == model.CategoryTeam && !seen[e.CanonicalID] {
			seen[e.CanonicalID] = true
			subjects = append(subjects, e.CanonicalID)
		}
	}
	if len(subjects) < 2 {
		return model.Intent{}, false
	}

	for _, i := range triggers {
		consumed[i] = true
	}
	return model.Intent{Kind: model.IntentCompare, Entities: subjects}, true
}

// classifyTopN matches "top N"/"best N" or a bare superlative (n defaults
// to 10). The ranking field comes from the most prominent statistic entity,
// then a ranking hint, then the configured default.
func classifyTopN(in Inputs, consumed map[int]bool) (model.Intent, bool) {
	idx := -1
	for i, t := range in.Tokens {
		if superlatives[t.Text] {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Intent{}, false
	}

	consumed[idx] = true
	n := defaultTopN
	if idx+1 < len(in.Tokens) {
		if v, err := strconv.Atoi(in.Tokens[idx+1].Text); err == nil && v > 0 {
			n = v
			consumed[idx+1] = true
		}
	}

	return model.Intent{
		Kind:         model.IntentTopN,
		N:            n,
		RankingField: rankingField(in),
	}, true
}

// classifyLookup matches a single uniquely identified team with no other
// constraints and no ranking language.
func classifyLookup(in Inputs) (model.Intent, bool) {
	if len(in.Entities) != 1 || in.Entities[0].Category != model.CategoryTeam {
		return model.Intent{}, false
	}
	if len(in.Hints) > 0 {
		return model.Intent{}, false
	}
	subjectField := model.FilterFieldFor(in.Entities[0].Category)
	for _, c := range in.Constraints {
		if c.IsCategorical() && c.Field == subjectField {
			continue // The subject's own derived constraint
		}
		return model.Intent{}, false
	}
	return model.Intent{Kind: model.IntentLookup, Entity: in.Entities[0].CanonicalID}, true
}

// classifyTrend matches "trend" or a time-range phrase like
// "over the last 3 seasons".
func classifyTrend(in Inputs, consumed map[int]bool) (model.Intent, bool) {
	dim := ""
	for i, t := range in.Tokens {
		if t.Text == "trend" || t.Text == "trends" {
			consumed[i] = true
			dim = "season"
			continue
		}
		if t.Text != "last" {
			continue
		}
		// "last [N] <unit>", with an optional leading "over"
		j := i + 1
		if j < len(in.Tokens) {
			if _, err := strconv.Atoi(in.Tokens[j].Text); err == nil {
				j++
			}
		}
		if j < len(in.Tokens) {
			if unit, ok := timeUnits[strings.ToLower(in.Tokens[j].Text)]; ok {
				for k := i; k <= j; k++ {
					consumed[k] = true
				}
				if i > 0 && in.Tokens[i-1].Text == "over" {
					consumed[i-1] = true
				}
				dim = unit
			}
		}
	}
	if dim == "" {
		return model.Intent{}, false
	}

	subject := ""
	if len(in.Entities) > 0 {
		subject = in.Entities[0].CanonicalID
	}
	return model.Intent{Kind: model.IntentTrend, Entity: subject, TimeDim: dim}, true
}

func rankingField(in Inputs) string {
	for _, e := range in.Entities {
		if e.Category == model.CategoryStatistic {
			return e.CanonicalID
		}
	}
	if len(in.Hints) > 0 {
		return in.Hints[0].Field
	}
	return in.DefaultRankingField
}
