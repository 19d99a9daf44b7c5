package model

// Category classifies a vocabulary entry by domain concept type
type Category string

const (
	CategoryTeam      Category = "team"      // Club names and nicknames
	CategoryPosition  Category = "position"  // Playing positions
	CategoryLeague    Category = "league"    // Competition names
	CategoryStatistic Category = "statistic" // Per-player performance measures
	CategoryAttribute Category = "attribute" // Roster attributes (age, position field, etc.)
)

// ValueType describes the kind of value a field holds
type ValueType string

const (
	ValueNumeric     ValueType = "numeric"
	ValueCategorical ValueType = "categorical"
)

// VocabularyEntry is one canonical domain concept and its surface aliases.
// Entries are immutable once loaded; the vocabulary store owns them.
type VocabularyEntry struct {
	CanonicalID string    `json:"canonical_id" yaml:"canonical"`
	Category    Category  `json:"category" yaml:"category"`
	Aliases     []string  `json:"aliases" yaml:"aliases"`
	ValueType   ValueType `json:"value_type" yaml:"value_type,omitempty"`
	Unit        string    `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// IsNumericField reports whether the entry can anchor a numeric constraint
func (e *VocabularyEntry) IsNumericField() bool {
	return e.ValueType == ValueNumeric &&
		(e.Category == CategoryStatistic || e.Category == CategoryAttribute)
}

// FilterField returns the dataset field a categorical entity filters on.
// A team entity filters the "team" field, a position entity the "position"
// field, and so on. Statistics and attributes are fields themselves.
func (e *VocabularyEntry) FilterField() string {
	if f := FilterFieldFor(e.Category); f != "" {
		return f
	}
	return e.CanonicalID
}

// FilterFieldFor maps a categorical entity category to its dataset field
func FilterFieldFor(c Category) string {
	switch c {
	case CategoryTeam:
		return "team"
	case CategoryPosition:
		return "position"
	case CategoryLeague:
		return "league"
	}
	return ""
}
