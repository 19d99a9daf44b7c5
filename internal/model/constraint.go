package model

import (
	"fmt"
	"strings"
)

// Operator is a constraint comparison operator
type Operator string

const (
	OpEq      Operator = "eq"
	OpLt      Operator = "lt"
	OpLte     Operator = "lte"
	OpGt      Operator = "gt"
	OpGte     Operator = "gte"
	OpBetween Operator = "between"
	OpInSet   Operator = "in"
)

// Constraint is a single field/operator/operand predicate extracted from the
// query. Constraints are immutable value objects; merging produces new ones.
type Constraint struct {
	Field    string    `json:"field"`              // Canonical ID of a statistic or attribute
	Operator Operator  `json:"operator"`
	Operands []float64 `json:"operands,omitempty"` // One or two numeric values
	Values   []string  `json:"values,omitempty"`   // Canonical IDs for InSet / categorical Eq
	Span     Span      `json:"span"`               // Source text the constraint came from

	// Between bound inclusivity. A merged "over 20 and under 30" is an
	// exclusive interval; "at least 20, at most 30" is inclusive.
	LowInclusive  bool `json:"low_inclusive,omitempty"`
	HighInclusive bool `json:"high_inclusive,omitempty"`

	// Implicit marks constraints inferred from vague wording ("young"),
	// dropped whenever an explicit constraint on the same field exists.
	Implicit bool `json:"implicit,omitempty"`
}

// IsCategorical reports whether the constraint carries categorical operands
func (c Constraint) IsCategorical() bool {
	return len(c.Values) > 0
}

// String renders the constraint for restatements and diagnostics
func (c Constraint) String() string {
	if c.IsCategorical() {
		if len(c.Values) == 1 {
			return fmt.Sprintf("%s = %s", c.Field, c.Values[0])
		}
		return fmt.Sprintf("%s in (%s)", c.Field, strings.Join(c.Values, ", "))
	}
	switch c.Operator {
	case OpEq:
		return fmt.Sprintf("%s = %s", c.Field, trimFloat(c.Operands[0]))
	case OpLt:
		return fmt.Sprintf("%s < %s", c.Field, trimFloat(c.Operands[0]))
	case OpLte:
		return fmt.Sprintf("%s <= %s", c.Field, trimFloat(c.Operands[0]))
	case OpGt:
		return fmt.Sprintf("%s > %s", c.Field, trimFloat(c.Operands[0]))
	case OpGte:
		return fmt.Sprintf("%s >= %s", c.Field, trimFloat(c.Operands[0]))
	case OpBetween:
		return fmt.Sprintf("%s between %s and %s", c.Field,
			trimFloat(c.Operands[0]), trimFloat(c.Operands[1]))
	}
	return c.Field
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// NodeKind identifies a filter tree node type
type NodeKind string

const (
	NodeLeaf NodeKind = "leaf"
	NodeAnd  NodeKind = "and"
	NodeOr   NodeKind = "or"
	NodeNot  NodeKind = "not"
)

// FilterNode is one node of a filter expression tree
type FilterNode struct {
	Kind       NodeKind      `json:"kind"`
	Constraint *Constraint   `json:"constraint,omitempty"` // Set for leaf nodes
	Children   []*FilterNode `json:"children,omitempty"`   // Set for and/or/not nodes
}

// FilterTree is the boolean predicate handed to the data executor, plus the
// structured selection/ranking metadata that is not itself a predicate.
// The engine builds it and never evaluates it against data.
type FilterTree struct {
	Root *FilterNode `json:"root,omitempty"` // Nil when the query has no constraints
	Meta TreeMeta    `json:"meta"`
}

// TreeMeta carries non-predicate query shape for the executor
type TreeMeta struct {
	Intent       IntentKind    `json:"intent"`
	Entities     []string      `json:"entities,omitempty"`      // Subject entities (lookup/compare/trend)
	EntityField  string        `json:"entity_field,omitempty"`  // Dataset field the subjects filter on
	RankingField string        `json:"ranking_field,omitempty"` // TopN ordering field
	Limit        int           `json:"limit,omitempty"`         // TopN row limit
	TimeDim      string        `json:"time_dimension,omitempty"`
	Hints        []RankingHint `json:"hints,omitempty"`
}

// RankingHint records soft ordering preferences ("high clearance rates")
// that never become hard filters.
type RankingHint struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
	Span       Span   `json:"span"`
}

// Leaf builds a leaf node for a constraint
func Leaf(c Constraint) *FilterNode {
	return &FilterNode{Kind: NodeLeaf, Constraint: &c}
}

// And combines nodes under a conjunction, collapsing the trivial cases
func And(children ...*FilterNode) *FilterNode {
	if len(children) == 0 {
		return nil
	}
	if len(children) == 1 {
		return children[0]
	}
	return &FilterNode{Kind: NodeAnd, Children: children}
}

// Leaves returns the constraints of all leaf nodes in document order
func (n *FilterNode) Leaves() []Constraint {
	if n == nil {
		return nil
	}
	if n.Kind == NodeLeaf {
		return []Constraint{*n.Constraint}
	}
	var out []Constraint
	for _, c := range n.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}
