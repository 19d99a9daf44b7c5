package resolve

import (
	"strings"

	"github.com/ozscout/scoutql/internal/model"
	"github.com/ozscout/scoutql/internal/vocab"
)

// SpanCandidates holds every entity reading that tied for one token span.
// A span with more than one option (a string that is both a team and a
// position alias, say) seeds one interpretation per option downstream.
type SpanCandidates struct {
	Options []model.ResolvedEntity
}

// Entities scans the token sequence for maximal contiguous spans that
// resolve via the vocabulary store: left-to-right, longest match wins at
// each start position, matches never overlap. Equal-scoring entries at the
// same span and length are all kept as competing options.
func Entities(tokens []model.Token, store *vocab.Store, maxNGram int) []SpanCandidates {
	if maxNGram <= 0 {
		maxNGram = 4
	}
	if n := store.MaxAliasTokens(); n < maxNGram {
		maxNGram = n
	}

	var spans []SpanCandidates
	i := 0
	for i < len(tokens) {
		matched := false
		limit := maxNGram
		if rest := len(tokens) - i; limit > rest {
			limit = rest
		}
		for n := limit; n >= 1 && !matched; n-- {
			phrase := joinTokens(tokens[i : i+n])
			matches := store.Lookup(phrase)
			if len(matches) == 0 {
				continue
			}
			top := matches[0].Score
			var options []model.ResolvedEntity
			for _, m := range matches {
				if m.Score < top {
					break
				}
				options = append(options, model.ResolvedEntity{
					CanonicalID: m.Entry.CanonicalID,
					Category:    m.Entry.Category,
					MatchScore:  m.Score,
					Alias:       m.Alias,
					FirstToken:  i,
					LastToken:   i + n - 1,
					Span: model.Span{
						Start: tokens[i].Span.Start,
						End:   tokens[i+n-1].Span.End,
					},
				})
			}
			spans = append(spans, SpanCandidates{Options: options})
			i += n
			matched = true
		}
		if !matched {
			i++
		}
	}
	return spans
}

// Assignments expands competing span options into concrete entity lists,
// one per interpretation, bounded by maxAssignments. The first assignment
// always takes the top-ranked option at every span.
func Assignments(spans []SpanCandidates, maxAssignments int) [][]model.ResolvedEntity {
	if maxAssignments <= 0 {
		maxAssignments = 1
	}

	assignments := [][]model.ResolvedEntity{{}}
	for _, span := range spans {
		var next [][]model.ResolvedEntity
		for _, prefix := range assignments {
			for _, opt := range span.Options {
				if len(next) >= maxAssignments {
					break
				}
				extended := make([]model.ResolvedEntity, len(prefix), len(prefix)+1)
				copy(extended, prefix)
				next = append(next, append(extended, opt))
			}
		}
		assignments = next
	}
	return assignments
}

// Competitors counts the unresolved competing options across all spans,
// the input to the ambiguity penalty.
func Competitors(spans []SpanCandidates) int {
	total := 0
	for _, s := range spans {
		total += len(s.Options) - 1
	}
	return total
}

func joinTokens(tokens []model.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}
