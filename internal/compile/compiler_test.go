package compile

import (
	"errors"
	"testing"

	"github.com/ozscout/scoutql/internal/model"
	"github.com/ozscout/scoutql/internal/vocab"
)

func newCompiler(t *testing.T) *Compiler {
	t.Helper()
	return New(vocab.Builtin(0.25))
}

func TestCompile_FilterList(t *testing.T) {
	c := newCompiler(t)

	interp := model.Interpretation{
		Intent: model.Intent{Kind: model.IntentFilterList},
		Constraints: []model.Constraint{
			{Field: "age", Operator: model.OpLt, Operands: []float64{23}},
			{Field: "position", Operator: model.OpEq, Values: []string{"midfielder"}},
		},
	}
	if err := c.Compile(&interp); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	if interp.Tree == nil || interp.Tree.Root == nil {
		t.Fatal("expected a filter tree")
	}
	leaves := interp.Tree.Root.Leaves()
	if len(leaves) != 2 {
		t.Fatalf("expected 2 leaves, got %d", len(leaves))
	}
	if interp.Tree.Meta.Intent != model.IntentFilterList {
		t.Errorf("unexpected meta intent %s", interp.Tree.Meta.Intent)
	}
}

func TestCompile_SingleConstraintCollapses(t *testing.T) {
	c := newCompiler(t)

	interp := model.Interpretation{
		Intent: model.Intent{Kind: model.IntentFilterList},
		Constraints: []model.Constraint{
			{Field: "age", Operator: model.OpLt, Operands: []float64{23}},
		},
	}
	if err := c.Compile(&interp); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if interp.Tree.Root.Kind != model.NodeLeaf {
		t.Errorf("single constraint should compile to a bare leaf, got %s", interp.Tree.Root.Kind)
	}
}

func TestCompile_StripsLookupSubject(t *testing.T) {
	c := newCompiler(t)

	interp := model.Interpretation{
		Intent: model.Intent{Kind: model.IntentLookup, Entity: "richmond"},
		Constraints: []model.Constraint{
			{Field: "team", Operator: model.OpEq, Values: []string{"richmond"}},
		},
	}
	if err := c.Compile(&interp); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	if interp.Tree.Root != nil {
		t.Error("subject constraint should be lifted out of the predicate")
	}
	if len(interp.Tree.Meta.Entities) != 1 || interp.Tree.Meta.Entities[0] != "richmond" {
		t.Errorf("expected subject in meta, got %v", interp.Tree.Meta.Entities)
	}
	if interp.Tree.Meta.EntityField != "team" {
		t.Errorf("expected team entity field, got %q", interp.Tree.Meta.EntityField)
	}
}

func TestCompile_PositionSubjectEntityField(t *testing.T) {
	c := newCompiler(t)

	// "midfielder disposals over last 3 seasons" style trend: the
	// subject selects on position, not team.
	interp := model.Interpretation{
		Intent: model.Intent{
			Kind:         model.IntentTrend,
			Entity:       "midfielder",
			RankingField: "disposals",
			TimeDim:      "season",
		},
	}
	if err := c.Compile(&interp); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if interp.Tree.Meta.EntityField != "position" {
		t.Errorf("expected position entity field, got %q", interp.Tree.Meta.EntityField)
	}
}

func TestCompile_StripsCompareSubjects(t *testing.T) {
	c := newCompiler(t)

	interp := model.Interpretation{
		Intent: model.Intent{Kind: model.IntentCompare, Entities: []string{"richmond", "collingwood"}},
		Constraints: []model.Constraint{
			{Field: "team", Operator: model.OpInSet, Values: []string{"richmond", "collingwood"}},
			{Field: "age", Operator: model.OpLt, Operands: []float64{23}},
		},
	}
	if err := c.Compile(&interp); err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	if len(interp.Constraints) != 1 || interp.Constraints[0].Field != "age" {
		t.Errorf("expected only the age constraint kept, got %v", interp.Constraints)
	}
	if len(interp.Tree.Meta.Entities) != 2 {
		t.Errorf("expected both subjects in meta, got %v", interp.Tree.Meta.Entities)
	}
}

func TestCompile_KeepsNonSubjectTeamFilter(t *testing.T) {
	c := newCompiler(t)

	// A team filter naming a different team than the lookup subject is a
	// real predicate, not a restatement.
	interp := model.Interpretation{
		Intent: model.Intent{Kind: model.IntentLookup, Entity: "richmond"},
		Constraints: []model.Constraint{
			{Field: "team", Operator: model.OpEq, Values: []string{"carlton"}},
		},
	}
	if err := c.Compile(&interp); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if len(interp.Constraints) != 1 {
		t.Errorf("non-subject team filter must be kept, got %v", interp.Constraints)
	}
}

func TestCompile_UnknownField(t *testing.T) {
	c := newCompiler(t)

	interp := model.Interpretation{
		Intent: model.Intent{Kind: model.IntentFilterList},
		Constraints: []model.Constraint{
			{Field: "charisma", Operator: model.OpGt, Operands: []float64{9000}},
		},
	}
	err := c.Compile(&interp)
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestCompile_TypeMismatch(t *testing.T) {
	c := newCompiler(t)

	// Numeric operator on a categorical field
	interp := model.Interpretation{
		Intent: model.Intent{Kind: model.IntentFilterList},
		Constraints: []model.Constraint{
			{Field: "position", Operator: model.OpGt, Operands: []float64{5}},
		},
	}
	if err := c.Compile(&interp); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}

	// Categorical operator on a numeric field
	interp = model.Interpretation{
		Intent: model.Intent{Kind: model.IntentFilterList},
		Constraints: []model.Constraint{
			{Field: "disposals", Operator: model.OpEq, Values: []string{"many"}},
		},
	}
	if err := c.Compile(&interp); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}

func TestCompile_TeamAsConstraintField(t *testing.T) {
	c := newCompiler(t)

	// "team" is not a vocabulary statistic but is an implicit dataset field
	interp := model.Interpretation{
		Intent: model.Intent{Kind: model.IntentFilterList},
		Constraints: []model.Constraint{
			{Field: "team", Operator: model.OpEq, Values: []string{"richmond"}},
		},
	}
	if err := c.Compile(&interp); err != nil {
		t.Fatalf("compile failed for implicit field: %v", err)
	}
}

func TestCompile_TopNWithoutRankingIsUnsatisfiable(t *testing.T) {
	c := newCompiler(t)

	interp := model.Interpretation{
		Intent: model.Intent{Kind: model.IntentTopN, N: 5},
	}
	if err := c.Compile(&interp); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if !interp.Unsatisfiable {
		t.Error("top_n without a ranking field must be unsatisfiable")
	}
}

func TestCompile_CategoricalRankingField(t *testing.T) {
	c := newCompiler(t)

	interp := model.Interpretation{
		Intent: model.Intent{Kind: model.IntentTopN, N: 5, RankingField: "position"},
	}
	if err := c.Compile(&interp); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("expected ErrTypeMismatch for categorical ranking field, got %v", err)
	}
}

func TestCompile_TopNMeta(t *testing.T) {
	c := newCompiler(t)

	interp := model.Interpretation{
		Intent: model.Intent{Kind: model.IntentTopN, N: 10, RankingField: "goals"},
	}
	if err := c.Compile(&interp); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if interp.Tree.Meta.Limit != 10 || interp.Tree.Meta.RankingField != "goals" {
		t.Errorf("unexpected meta %+v", interp.Tree.Meta)
	}
}
