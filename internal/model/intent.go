package model

// IntentKind is the shape of a query
type IntentKind string

const (
	IntentLookup     IntentKind = "lookup"      // Single entity profile
	IntentFilterList IntentKind = "filter_list" // Constrained listing (default)
	IntentCompare    IntentKind = "compare"     // Side-by-side of two or more entities
	IntentTopN       IntentKind = "top_n"       // Ranked shortlist
	IntentTrend      IntentKind = "trend"       // Change over a time dimension
)

// Intent is one tagged query shape. Exactly one intent is attached to each
// interpretation; unused slots stay zero.
type Intent struct {
	Kind IntentKind `json:"kind"`

	Entity       string   `json:"entity,omitempty"`        // Lookup / Trend subject
	Entities     []string `json:"entities,omitempty"`      // Compare subjects, in query order
	N            int      `json:"n,omitempty"`             // TopN limit
	RankingField string   `json:"ranking_field,omitempty"` // TopN ordering statistic
	TimeDim      string   `json:"time_dimension,omitempty"` // Trend dimension ("season", ...)
}

// RequiredSlots returns how many slots the intent needs and how many are
// filled, for slot-completeness scoring.
func (in Intent) RequiredSlots() (required, filled int) {
	switch in.Kind {
	case IntentLookup:
		required = 1
		if in.Entity != "" {
			filled = 1
		}
	case IntentCompare:
		// Needs at least two subjects.
		required = 2
		filled = len(in.Entities)
		if filled > required {
			filled = required
		}
	case IntentTopN:
		required = 2
		if in.N > 0 {
			filled++
		}
		if in.RankingField != "" {
			filled++
		}
	case IntentTrend:
		required = 2
		if in.Entity != "" {
			filled++
		}
		if in.TimeDim != "" {
			filled++
		}
	default:
		// FilterList has no required slots.
		required, filled = 0, 0
	}
	return required, filled
}
