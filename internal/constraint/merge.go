package constraint

import (
	"math"
	"sort"

	"github.com/ozscout/scoutql/internal/model"
)

// Merge intersects all constraints on the same field into the tightest
// consistent range, so the result is field-unique. Contradictory constraints
// ("under 20" and "over 30") flag the field as unsatisfiable; the conflict
// is reported, never repaired by dropping a side. Implicit constraints
// yield to explicit ones on the same field.
func Merge(constraints []model.Constraint) (merged []model.Constraint, unsatisfiableField string) {
	byField := make(map[string][]model.Constraint)
	var order []string
	explicit := make(map[string]bool)
	for _, c := range constraints {
		if !c.Implicit {
			explicit[c.Field] = true
		}
	}
	for _, c := range constraints {
		if c.Implicit && explicit[c.Field] {
			continue
		}
		if _, seen := byField[c.Field]; !seen {
			order = append(order, c.Field)
		}
		byField[c.Field] = append(byField[c.Field], c)
	}
	sort.Strings(order)

	for _, field := range order {
		group := byField[field]
		if group[0].IsCategorical() {
			c, empty := mergeCategorical(group)
			if empty {
				return nil, field
			}
			merged = append(merged, c)
			continue
		}
		c, empty := mergeNumeric(group)
		if empty {
			return nil, field
		}
		merged = append(merged, c)
	}
	return merged, ""
}

// mergeCategorical intersects the value sets
func mergeCategorical(group []model.Constraint) (model.Constraint, bool) {
	if len(group) == 1 {
		return group[0], false
	}
	values := group[0].Values
	span := group[0].Span
	for _, c := range group[1:] {
		allowed := make(map[string]bool, len(c.Values))
		for _, v := range c.Values {
			allowed[v] = true
		}
		var kept []string
		for _, v := range values {
			if allowed[v] {
				kept = append(kept, v)
			}
		}
		values = kept
		span = unionSpan(span, c.Span)
	}
	if len(values) == 0 {
		return model.Constraint{}, true
	}
	op := model.OpEq
	if len(values) > 1 {
		op = model.OpInSet
	}
	return model.Constraint{
		Field:    group[0].Field,
		Operator: op,
		Values:   values,
		Span:     span,
	}, false
}

// mergeNumeric folds the group into one interval
func mergeNumeric(group []model.Constraint) (model.Constraint, bool) {
	lo, hi := math.Inf(-1), math.Inf(1)
	loInc, hiInc := true, true
	span := group[0].Span

	tightenLow := func(v float64, inclusive bool) {
		if v > lo || (v == lo && loInc && !inclusive) {
			lo, loInc = v, inclusive
		}
	}
	tightenHigh := func(v float64, inclusive bool) {
		if v < hi || (v == hi && hiInc && !inclusive) {
			hi, hiInc = v, inclusive
		}
	}

	for i, c := range group {
		if i > 0 {
			span = unionSpan(span, c.Span)
		}
		switch c.Operator {
		case model.OpLt:
			tightenHigh(c.Operands[0], false)
		case model.OpLte:
			tightenHigh(c.Operands[0], true)
		case model.OpGt:
			tightenLow(c.Operands[0], false)
		case model.OpGte:
			tightenLow(c.Operands[0], true)
		case model.OpEq:
			tightenLow(c.Operands[0], true)
			tightenHigh(c.Operands[0], true)
		case model.OpBetween:
			tightenLow(c.Operands[0], c.LowInclusive)
			tightenHigh(c.Operands[1], c.HighInclusive)
		}
	}

	if lo > hi || (lo == hi && !(loInc && hiInc)) {
		return model.Constraint{}, true
	}

	out := model.Constraint{Field: group[0].Field, Span: span}
	hasLo := !math.IsInf(lo, -1)
	hasHi := !math.IsInf(hi, 1)
	switch {
	case hasLo && hasHi && lo == hi:
		out.Operator = model.OpEq
		out.Operands = []float64{lo}
	case hasLo && hasHi:
		out.Operator = model.OpBetween
		out.Operands = []float64{lo, hi}
		out.LowInclusive = loInc
		out.HighInclusive = hiInc
	case hasLo && loInc:
		out.Operator = model.OpGte
		out.Operands = []float64{lo}
	case hasLo:
		out.Operator = model.OpGt
		out.Operands = []float64{lo}
	case hasHi && hiInc:
		out.Operator = model.OpLte
		out.Operands = []float64{hi}
	default:
		out.Operator = model.OpLt
		out.Operands = []float64{hi}
	}
	return out, false
}

func unionSpan(a, b model.Span) model.Span {
	if b.Start < a.Start {
		a.Start = b.Start
	}
	if b.End > a.End {
		a.End = b.End
	}
	return a
}
