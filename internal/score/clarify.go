package score

import (
	"fmt"
	"strings"

	"github.com/ozscout/scoutql/internal/model"
)

// Clarify renders the top-ranked interpretations as human-readable
// restatements for the user to pick from. This is a terminal response for
// the query; none of the candidates is executed.
func (s *Scorer) Clarify(ranked []model.Interpretation) []model.ClarifyCandidate {
	limit := s.cfg.MaxCandidates
	if limit <= 0 {
		limit = 3
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]model.ClarifyCandidate, 0, len(ranked))
	for _, interp := range ranked {
		out = append(out, model.ClarifyCandidate{
			Restatement:    Restate(interp),
			Interpretation: interp,
		})
	}
	return out
}

// Restate renders one interpretation back as plain language
func Restate(interp model.Interpretation) string {
	var b strings.Builder

	switch interp.Intent.Kind {
	case model.IntentLookup:
		fmt.Fprintf(&b, "overview of %s", pretty(interp.Intent.Entity))
	case model.IntentCompare:
		names := make([]string, len(interp.Intent.Entities))
		for i, e := range interp.Intent.Entities {
			names[i] = pretty(e)
		}
		fmt.Fprintf(&b, "compare %s", strings.Join(names, " and "))
	case model.IntentTopN:
		fmt.Fprintf(&b, "top %d players", interp.Intent.N)
		if interp.Intent.RankingField != "" {
			fmt.Fprintf(&b, " by %s", pretty(interp.Intent.RankingField))
		}
	case model.IntentTrend:
		b.WriteString("trend")
		if interp.Intent.Entity != "" {
			fmt.Fprintf(&b, " for %s", pretty(interp.Intent.Entity))
		}
		if interp.Intent.TimeDim != "" {
			fmt.Fprintf(&b, " by %s", interp.Intent.TimeDim)
		}
	default:
		b.WriteString("players")
	}

	if clauses := constraintClauses(interp.Constraints); len(clauses) > 0 {
		fmt.Fprintf(&b, " with %s", strings.Join(clauses, " and "))
	}
	for _, h := range interp.Hints {
		dir := "high"
		if !h.Descending {
			dir = "low"
		}
		fmt.Fprintf(&b, ", favoring %s %s", dir, pretty(h.Field))
	}
	if interp.Unsatisfiable {
		if interp.UnsatisfiableField != "" {
			fmt.Fprintf(&b, " (impossible: contradictory %s range)", pretty(interp.UnsatisfiableField))
		} else {
			b.WriteString(" (impossible as stated)")
		}
	}
	return b.String()
}

func constraintClauses(constraints []model.Constraint) []string {
	clauses := make([]string, 0, len(constraints))
	for _, c := range constraints {
		clauses = append(clauses, clause(c))
	}
	return clauses
}

func clause(c model.Constraint) string {
	field := pretty(c.Field)
	if c.IsCategorical() {
		values := make([]string, len(c.Values))
		for i, v := range c.Values {
			values[i] = pretty(v)
		}
		return fmt.Sprintf("%s %s", field, strings.Join(values, " or "))
	}
	switch c.Operator {
	case model.OpLt:
		return fmt.Sprintf("%s under %s", field, num(c.Operands[0]))
	case model.OpLte:
		return fmt.Sprintf("%s at most %s", field, num(c.Operands[0]))
	case model.OpGt:
		return fmt.Sprintf("%s over %s", field, num(c.Operands[0]))
	case model.OpGte:
		return fmt.Sprintf("%s at least %s", field, num(c.Operands[0]))
	case model.OpBetween:
		return fmt.Sprintf("%s between %s and %s", field, num(c.Operands[0]), num(c.Operands[1]))
	default:
		return fmt.Sprintf("%s equal to %s", field, num(c.Operands[0]))
	}
}

func num(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

func pretty(canonical string) string {
	return strings.ReplaceAll(canonical, "_", " ")
}
