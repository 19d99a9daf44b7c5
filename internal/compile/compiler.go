package compile

import (
	"errors"
	"fmt"

	"github.com/ozscout/scoutql/internal/model"
	"github.com/ozscout/scoutql/internal/vocab"
)

// Compile-time rejection reasons. These stay internal: a failed compile
// discards the owning interpretation, it never surfaces to the caller.
var (
	ErrUnknownField = errors.New("unknown field")
	ErrTypeMismatch = errors.New("operator/field type mismatch")
)

// Fields recognized even when a loaded vocabulary does not declare them as
// attribute entries; they are the dataset dimensions categorical entities
// filter on, plus the default age attribute.
var implicitFields = map[string]model.ValueType{
	"team":     model.ValueCategorical,
	"position": model.ValueCategorical,
	"league":   model.ValueCategorical,
	"age":      model.ValueNumeric,
}

// Compiler assembles and validates filter expression trees
type Compiler struct {
	store *vocab.Store
}

// New creates a compiler over the given vocabulary
func New(store *vocab.Store) *Compiler {
	return &Compiler{store: store}
}

// Compile validates the interpretation's constraints and attaches its
// filter tree. Constraints referencing unknown fields, or applying a
// categorical operator to a numeric field (and vice versa), fail the whole
// interpretation. Subject entities of lookup/compare/trend intents are
// selection metadata, so their derived constraints are lifted out of the
// predicate.
func (c *Compiler) Compile(interp *model.Interpretation) error {
	constraints := c.stripSubjects(interp)

	for _, con := range constraints {
		if err := c.validate(con); err != nil {
			return err
		}
	}

	if interp.Intent.Kind == model.IntentTopN && interp.Intent.RankingField == "" {
		interp.Unsatisfiable = true
	}
	if interp.Intent.RankingField != "" {
		if err := c.validateNumericField(interp.Intent.RankingField); err != nil {
			return err
		}
	}

	interp.Constraints = constraints

	leaves := make([]*model.FilterNode, 0, len(constraints))
	for _, con := range constraints {
		leaves = append(leaves, model.Leaf(con))
	}

	meta := model.TreeMeta{
		Intent:       interp.Intent.Kind,
		RankingField: interp.Intent.RankingField,
		Limit:        interp.Intent.N,
		TimeDim:      interp.Intent.TimeDim,
		Hints:        interp.Hints,
	}
	switch interp.Intent.Kind {
	case model.IntentCompare:
		meta.Entities = interp.Intent.Entities
	case model.IntentLookup, model.IntentTrend:
		if interp.Intent.Entity != "" {
			meta.Entities = []string{interp.Intent.Entity}
		}
	}
	if len(meta.Entities) > 0 {
		meta.EntityField = c.entityField(meta.Entities)
	}

	interp.Tree = &model.FilterTree{Root: model.And(leaves...), Meta: meta}
	return nil
}

// stripSubjects removes categorical constraints that only restate the
// intent's subject entities.
func (c *Compiler) stripSubjects(interp *model.Interpretation) []model.Constraint {
	var subjects []string
	switch interp.Intent.Kind {
	case model.IntentCompare:
		subjects = interp.Intent.Entities
	case model.IntentLookup, model.IntentTrend:
		if interp.Intent.Entity != "" {
			subjects = []string{interp.Intent.Entity}
		}
	}
	if len(subjects) == 0 {
		return interp.Constraints
	}

	subjectSet := make(map[string]bool, len(subjects))
	subjectField := ""
	for _, s := range subjects {
		subjectSet[s] = true
		if e, ok := c.store.Entry(s); ok {
			subjectField = e.FilterField()
		}
	}

	var kept []model.Constraint
	for _, con := range interp.Constraints {
		if con.IsCategorical() && con.Field == subjectField && coveredBy(con.Values, subjectSet) {
			continue
		}
		kept = append(kept, con)
	}
	return kept
}

// entityField maps the subject entities to the dataset field they select
// on. A position subject filters "position", a team subject "team".
func (c *Compiler) entityField(subjects []string) string {
	for _, s := range subjects {
		if e, ok := c.store.Entry(s); ok {
			return e.FilterField()
		}
	}
	return "team"
}

func coveredBy(values []string, set map[string]bool) bool {
	for _, v := range values {
		if !set[v] {
			return false
		}
	}
	return true
}

// validate checks field existence and operator/field type compatibility
func (c *Compiler) validate(con model.Constraint) error {
	vt, err := c.fieldType(con.Field)
	if err != nil {
		return err
	}
	if con.IsCategorical() && vt != model.ValueCategorical {
		return fmt.Errorf("field %q: categorical operator on numeric field: %w", con.Field, ErrTypeMismatch)
	}
	if !con.IsCategorical() && vt != model.ValueNumeric {
		return fmt.Errorf("field %q: numeric operator on categorical field: %w", con.Field, ErrTypeMismatch)
	}
	return nil
}

func (c *Compiler) validateNumericField(field string) error {
	vt, err := c.fieldType(field)
	if err != nil {
		return err
	}
	if vt != model.ValueNumeric {
		return fmt.Errorf("ranking field %q is not numeric: %w", field, ErrTypeMismatch)
	}
	return nil
}

func (c *Compiler) fieldType(field string) (model.ValueType, error) {
	if e, ok := c.store.Entry(field); ok {
		if e.Category != model.CategoryStatistic && e.Category != model.CategoryAttribute {
			return "", fmt.Errorf("field %q resolves to a %s, not a statistic or attribute: %w",
				field, e.Category, ErrTypeMismatch)
		}
		return e.ValueType, nil
	}
	if vt, ok := implicitFields[field]; ok {
		return vt, nil
	}
	return "", fmt.Errorf("field %q: %w", field, ErrUnknownField)
}
