package constraint

import (
	"strconv"
	"strings"

	"github.com/ozscout/scoutql/internal/model"
	"github.com/ozscout/scoutql/internal/vocab"
)

// Extraction is the result of one constraint pass over a token sequence
type Extraction struct {
	Constraints []model.Constraint
	Hints       []model.RankingHint
	Consumed    map[int]bool // Token indices used by constraint phrases
}

// Operator phrases, checked two-token forms first
var twoWordOps = map[string]model.Operator{
	"less than":    model.OpLt,
	"fewer than":   model.OpLt,
	"more than":    model.OpGt,
	"greater than": model.OpGt,
	"at least":     model.OpGte,
	"at most":      model.OpLte,
	"equal to":     model.OpEq,
}

var oneWordOps = map[string]model.Operator{
	"under":   model.OpLt,
	"below":   model.OpLt,
	"over":    model.OpGt,
	"above":   model.OpGt,
	"minimum": model.OpGte,
	"maximum": model.OpLte,
	"exactly": model.OpEq,
	"equals":  model.OpEq,
}

// Qualitative comparison words become ranking hints, never hard filters
var descQualifiers = map[string]bool{
	"high": true, "good": true, "excellent": true, "great": true,
	"strong": true, "elite": true,
}
var ascQualifiers = map[string]bool{
	"low": true, "poor": true, "weak": true, "bad": true,
}

const (
	anchorWindow = 3  // How far an operator looks for its field entity
	youngAgeMax  = 23 // "young" → age < 23
	veteranAge   = 28 // "experienced"/"veteran" → age >= 28
)

// Extract finds constraint patterns anchored to resolved entities. Numeric
// operators bind to the nearest statistic (or numeric attribute) entity
// before or after the phrase, defaulting to age. Malformed operands drop
// the candidate constraint, never the query. Categorical entities become
// equality/set constraints on their filter field.
func Extract(tokens []model.Token, entities []model.ResolvedEntity, store *vocab.Store) Extraction {
	ex := Extraction{Consumed: make(map[int]bool)}

	entityAt := make(map[int]*model.ResolvedEntity)
	for i := range entities {
		e := &entities[i]
		for t := e.FirstToken; t <= e.LastToken; t++ {
			entityAt[t] = e
		}
	}

	numericField := func(e *model.ResolvedEntity) (string, bool) {
		if e == nil {
			return "", false
		}
		entry, ok := store.Entry(e.CanonicalID)
		if !ok || !entry.IsNumericField() {
			return "", false
		}
		return entry.CanonicalID, true
	}

	// qualified reports whether a comparison word precedes the entity;
	// "high clearances" belongs to a ranking hint, not to an operator
	// looking for its field.
	qualified := func(e *model.ResolvedEntity) bool {
		j := e.FirstToken - 1
		if j < 0 {
			return false
		}
		t := tokens[j].Text
		return descQualifiers[t] || ascQualifiers[t]
	}

	// anchorField finds the field for an operator at token index op whose
	// operand ends at token index end. Backward it scans a short window;
	// forward it only claims a statistic that starts immediately after the
	// operand ("more than 5 goals"), never one further out.
	anchorField := func(op, end int) string {
		for i := op - 1; i >= 0 && i >= op-anchorWindow; i-- {
			if f, ok := numericField(entityAt[i]); ok {
				return f
			}
		}
		if e := entityAt[end+1]; e != nil && e.FirstToken == end+1 && !qualified(e) {
			if f, ok := numericField(e); ok {
				return f
			}
		}
		// Bare numeric phrases ("under 23") default to the subject's age
		return "age"
	}

	span := func(first, last int) model.Span {
		return model.Span{Start: tokens[first].Span.Start, End: tokens[last].Span.End}
	}

	i := 0
	for i < len(tokens) {
		if entityAt[i] != nil {
			i++
			continue
		}
		text := tokens[i].Text

		// between X and Y
		if text == "between" && i+3 < len(tokens) && tokens[i+2].Text == "and" {
			lo, okLo := parseNumber(tokens[i+1].Text)
			hi, okHi := parseNumber(tokens[i+3].Text)
			if okLo && okHi {
				ex.markRange(i, i+3)
				ex.Constraints = append(ex.Constraints, model.Constraint{
					Field:         anchorField(i, i+3),
					Operator:      model.OpBetween,
					Operands:      []float64{lo, hi},
					LowInclusive:  true,
					HighInclusive: true,
					Span:          span(i, i+3),
				})
				i += 4
				continue
			}
			i++
			continue
		}

		// Two-word operator phrase
		if i+1 < len(tokens) {
			if op, ok := twoWordOps[text+" "+tokens[i+1].Text]; ok {
				if i+2 < len(tokens) {
					if v, okV := parseNumber(tokens[i+2].Text); okV {
						ex.markRange(i, i+2)
						ex.Constraints = append(ex.Constraints, model.Constraint{
							Field:    anchorField(i, i+2),
							Operator: op,
							Operands: []float64{v},
							Span:     span(i, i+2),
						})
						i += 3
						continue
					}
				}
				// Malformed operand: drop this candidate, keep going
				i += 2
				continue
			}
		}

		// One-word operator
		if op, ok := oneWordOps[text]; ok {
			if i+1 < len(tokens) {
				if v, okV := parseNumber(tokens[i+1].Text); okV {
					ex.markRange(i, i+1)
					ex.Constraints = append(ex.Constraints, model.Constraint{
						Field:    anchorField(i, i+1),
						Operator: op,
						Operands: []float64{v},
						Span:     span(i, i+1),
					})
					i += 2
					continue
				}
			}
			i++
			continue
		}

		// Bare numeric range token ("18-23")
		if lo, hi, ok := parseRange(text); ok {
			ex.markRange(i, i)
			ex.Constraints = append(ex.Constraints, model.Constraint{
				Field:         anchorField(i, i),
				Operator:      model.OpBetween,
				Operands:      []float64{lo, hi},
				LowInclusive:  true,
				HighInclusive: true,
				Span:          tokens[i].Span,
			})
			i++
			continue
		}

		// Qualitative qualifier next to a statistic → ranking hint
		if descQualifiers[text] || ascQualifiers[text] {
			if field, ok := adjacentStatistic(i, entityAt, numericField); ok {
				ex.Hints = append(ex.Hints, model.RankingHint{
					Field:      field,
					Descending: descQualifiers[text],
					Span:       tokens[i].Span,
				})
				ex.Consumed[i] = true
			}
			i++
			continue
		}

		// Implicit age bands
		switch text {
		case "young", "youth", "junior":
			ex.markRange(i, i)
			ex.Constraints = append(ex.Constraints, model.Constraint{
				Field: "age", Operator: model.OpLt,
				Operands: []float64{youngAgeMax},
				Span:     tokens[i].Span, Implicit: true,
			})
		case "experienced", "veteran", "senior":
			ex.markRange(i, i)
			ex.Constraints = append(ex.Constraints, model.Constraint{
				Field: "age", Operator: model.OpGte,
				Operands: []float64{veteranAge},
				Span:     tokens[i].Span, Implicit: true,
			})
		}
		i++
	}

	ex.categorical(tokens, entities, store)
	return ex
}

func (ex *Extraction) markRange(first, last int) {
	for i := first; i <= last; i++ {
		ex.Consumed[i] = true
	}
}

// categorical turns team/position/league entities into set constraints on
// their filter field: values of the same field OR-combine into one InSet,
// single values stay an equality. The compiler strips the ones that are the
// intent's subject entities rather than filters.
func (ex *Extraction) categorical(tokens []model.Token, entities []model.ResolvedEntity, store *vocab.Store) {
	byField := make(map[string][]model.ResolvedEntity)
	var fieldOrder []string
	for _, e := range entities {
		entry, ok := store.Entry(e.CanonicalID)
		if !ok || entry.IsNumericField() || entry.Category == model.CategoryAttribute {
			continue
		}
		field := entry.FilterField()
		if _, seen := byField[field]; !seen {
			fieldOrder = append(fieldOrder, field)
		}
		byField[field] = append(byField[field], e)
	}

	for _, field := range fieldOrder {
		group := byField[field]
		values := make([]string, 0, len(group))
		seen := make(map[string]bool)
		inGroup := make(map[int]bool)
		first, last := group[0].Span, group[0].Span
		for _, e := range group {
			if !seen[e.CanonicalID] {
				seen[e.CanonicalID] = true
				values = append(values, e.CanonicalID)
			}
			for t := e.FirstToken; t <= e.LastToken; t++ {
				inGroup[t] = true
			}
			if e.Span.Start < first.Start {
				first = e.Span
			}
			if e.Span.End > last.End {
				last = e.Span
			}
		}

		op := model.OpEq
		if len(values) > 1 {
			op = model.OpInSet
			// "or" joining two values of the same field is part of the list
			for i, t := range tokens {
				if t.Text == "or" && inGroup[i-1] && inGroup[i+1] {
					ex.Consumed[i] = true
				}
			}
		}
		ex.Constraints = append(ex.Constraints, model.Constraint{
			Field:    field,
			Operator: op,
			Values:   values,
			Span:     model.Span{Start: first.Start, End: last.End},
		})
	}
}

func adjacentStatistic(i int, entityAt map[int]*model.ResolvedEntity, numericField func(*model.ResolvedEntity) (string, bool)) (string, bool) {
	for _, j := range []int{i + 1, i + 2, i - 1, i - 2} {
		if f, ok := numericField(entityAt[j]); ok {
			return f, true
		}
	}
	return "", false
}

func parseNumber(text string) (float64, bool) {
	text = strings.TrimSuffix(text, "%")
	if text == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseRange parses a "18-23" style token
func parseRange(text string) (lo, hi float64, ok bool) {
	parts := strings.SplitN(text, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, okLo := parseNumber(parts[0])
	hi, okHi := parseNumber(parts[1])
	if !okLo || !okHi || lo > hi {
		return 0, 0, false
	}
	return lo, hi, true
}
