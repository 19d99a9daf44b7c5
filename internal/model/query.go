package model

// Span marks a half-open [Start, End) byte range in the source query text
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Token is one normalized unit of the query with its original location
type Token struct {
	Text string `json:"text"` // Normalized (lowercased, plural-trimmed) form
	Raw  string `json:"raw"`  // Original surface form
	Span Span   `json:"span"` // Location in the source text
}

// ResolvedEntity is a token span matched to a vocabulary entry
type ResolvedEntity struct {
	CanonicalID string   `json:"canonical_id"`
	Category    Category `json:"category"`
	MatchScore  float64  `json:"match_score"` // 1.0 exact, lower with edit distance
	Alias       string   `json:"alias"`       // The alias that matched
	FirstToken  int      `json:"first_token"` // Index of first token in the span
	LastToken   int      `json:"last_token"`  // Index of last token (inclusive)
	Span        Span     `json:"span"`        // Location in the source text
}

// TokenCount returns the number of tokens the entity consumed
func (e ResolvedEntity) TokenCount() int {
	return e.LastToken - e.FirstToken + 1
}
