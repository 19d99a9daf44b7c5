package model

// Interpretation is one complete, scored candidate reading of a query.
// Interpretations are ephemeral: produced per evaluation, never persisted.
type Interpretation struct {
	Intent      Intent           `json:"intent"`
	Constraints []Constraint     `json:"constraints,omitempty"` // Field-unique after merging
	Entities    []ResolvedEntity `json:"entities,omitempty"`
	Hints       []RankingHint    `json:"hints,omitempty"`
	Confidence  float64          `json:"confidence"`
	Tree        *FilterTree      `json:"filter_tree,omitempty"`

	// Unsatisfiable marks a valid parse whose merged constraints contradict
	// each other ("under 20" and "over 30"). Reported, never repaired.
	Unsatisfiable      bool   `json:"unsatisfiable,omitempty"`
	UnsatisfiableField string `json:"unsatisfiable_field,omitempty"`
}

// ConstraintFor returns the merged constraint on a field, if any
func (i *Interpretation) ConstraintFor(field string) (Constraint, bool) {
	for _, c := range i.Constraints {
		if c.Field == field {
			return c, true
		}
	}
	return Constraint{}, false
}
