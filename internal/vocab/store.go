package vocab

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ozscout/scoutql/internal/model"
)

// Match is one candidate resolution of a phrase against the store
type Match struct {
	Entry *model.VocabularyEntry
	Alias string  // The alias that matched
	Score float64 // 1.0 exact, 1 - normalized edit distance otherwise
}

type aliasRef struct {
	entry *model.VocabularyEntry
	alias string
}

// Store is the canonical source of truth for recognizable domain terms.
// It is read-only after construction and safe for concurrent lookups;
// reloading means building a new store.
type Store struct {
	entries        map[string]*model.VocabularyEntry
	exact          map[string][]aliasRef
	refs           []aliasRef // All aliases in deterministic order, for fuzzy scans
	words          map[string]bool
	maxAliasTokens int
	maxEditRatio   float64
}

// New builds a store from vocabulary entries. Aliases are normalized to
// lowercase with collapsed whitespace; the canonical form is always
// registered as an alias of itself.
func New(entries []model.VocabularyEntry, maxEditRatio float64) (*Store, error) {
	if maxEditRatio <= 0 {
		maxEditRatio = 0.25
	}
	s := &Store{
		entries:      make(map[string]*model.VocabularyEntry, len(entries)),
		exact:        make(map[string][]aliasRef),
		words:        make(map[string]bool),
		maxEditRatio: maxEditRatio,
	}

	for i := range entries {
		e := entries[i]
		if e.CanonicalID == "" {
			return nil, fmt.Errorf("vocabulary entry %d: empty canonical id", i)
		}
		if _, dup := s.entries[e.CanonicalID]; dup {
			return nil, fmt.Errorf("duplicate canonical id %q", e.CanonicalID)
		}
		switch e.Category {
		case model.CategoryTeam, model.CategoryPosition, model.CategoryLeague:
			if e.ValueType == "" {
				e.ValueType = model.ValueCategorical
			}
		case model.CategoryStatistic:
			if e.ValueType == "" {
				e.ValueType = model.ValueNumeric
			}
		case model.CategoryAttribute:
			if e.ValueType == "" {
				return nil, fmt.Errorf("attribute %q: missing value type", e.CanonicalID)
			}
		default:
			return nil, fmt.Errorf("entry %q: unknown category %q", e.CanonicalID, e.Category)
		}

		aliases := normalizeAliases(e)
		e.Aliases = aliases
		s.entries[e.CanonicalID] = &e

		for _, alias := range aliases {
			s.exact[alias] = append(s.exact[alias], aliasRef{entry: s.entries[e.CanonicalID], alias: alias})
			s.refs = append(s.refs, aliasRef{entry: s.entries[e.CanonicalID], alias: alias})
			n := len(strings.Fields(alias))
			if n > s.maxAliasTokens {
				s.maxAliasTokens = n
			}
			for _, w := range strings.Fields(alias) {
				s.words[w] = true
			}
		}
	}

	if len(s.entries) == 0 {
		return nil, fmt.Errorf("vocabulary is empty")
	}

	// Deterministic fuzzy scan order: shorter alias first, then
	// lexicographic alias, then canonical id.
	sort.Slice(s.refs, func(i, j int) bool {
		a, b := s.refs[i], s.refs[j]
		if len(a.alias) != len(b.alias) {
			return len(a.alias) < len(b.alias)
		}
		if a.alias != b.alias {
			return a.alias < b.alias
		}
		return a.entry.CanonicalID < b.entry.CanonicalID
	})

	return s, nil
}

func normalizeAliases(e model.VocabularyEntry) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(a string) {
		a = strings.Join(strings.Fields(strings.ToLower(a)), " ")
		if a == "" || seen[a] {
			return
		}
		seen[a] = true
		out = append(out, a)
	}
	// The canonical form itself is always an alias ("port_adelaide" is
	// spoken as "port adelaide").
	add(strings.ReplaceAll(e.CanonicalID, "_", " "))
	for _, a := range e.Aliases {
		add(a)
	}
	sort.Strings(out)
	return out
}

// Lookup resolves a normalized phrase to zero or more candidate entries.
// Exact alias matches score 1.0 and suppress fuzzy candidates; otherwise
// aliases with the same word count within the bounded normalized edit
// distance are returned with score 1 - distance/len(alias). Results are
// ordered by score, then shorter alias, then canonical id.
func (s *Store) Lookup(phrase string) []Match {
	phrase = strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
	if phrase == "" {
		return nil
	}

	if refs, ok := s.exact[phrase]; ok {
		matches := make([]Match, 0, len(refs))
		for _, r := range refs {
			matches = append(matches, Match{Entry: r.entry, Alias: r.alias, Score: 1.0})
		}
		sortMatches(matches)
		return matches
	}

	// Fuzzy: best alias per entry within the edit budget. Fuzzy matching
	// corrects typos inside words; it never absorbs or drops a word, so a
	// candidate must have the same word count as the phrase ("10 key
	// forwards" is not a misspelling of "key forwards").
	best := make(map[string]Match)
	phraseLen := len([]rune(phrase))
	phraseWords := strings.Count(phrase, " ")
	for _, r := range s.refs {
		if strings.Count(r.alias, " ") != phraseWords {
			continue
		}
		aliasLen := len([]rune(r.alias))
		budget := int(s.maxEditRatio * float64(aliasLen))
		if budget == 0 {
			continue
		}
		diff := aliasLen - phraseLen
		if diff < 0 {
			diff = -diff
		}
		if diff > budget {
			continue
		}
		dist := levenshtein(phrase, r.alias)
		if dist > budget {
			continue
		}
		score := 1.0 - float64(dist)/float64(aliasLen)
		m, exists := best[r.entry.CanonicalID]
		if !exists || score > m.Score {
			best[r.entry.CanonicalID] = Match{Entry: r.entry, Alias: r.alias, Score: score}
		}
	}

	matches := make([]Match, 0, len(best))
	for _, m := range best {
		matches = append(matches, m)
	}
	sortMatches(matches)
	return matches
}

func sortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.Alias) != len(b.Alias) {
			return len(a.Alias) < len(b.Alias)
		}
		return a.Entry.CanonicalID < b.Entry.CanonicalID
	})
}

// HasPhrase reports whether the phrase is an exact alias
func (s *Store) HasPhrase(phrase string) bool {
	phrase = strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
	_, ok := s.exact[phrase]
	return ok
}

// HasWord reports whether the word occurs in any alias
func (s *Store) HasWord(word string) bool {
	return s.words[strings.ToLower(word)]
}

// Entry returns the entry for a canonical id
func (s *Store) Entry(id string) (*model.VocabularyEntry, bool) {
	e, ok := s.entries[id]
	return e, ok
}

// MaxAliasTokens returns the longest alias length in tokens
func (s *Store) MaxAliasTokens() int {
	return s.maxAliasTokens
}

// Len returns the number of entries
func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns all entries ordered by category then canonical id
func (s *Store) Entries() []model.VocabularyEntry {
	out := make([]model.VocabularyEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].CanonicalID < out[j].CanonicalID
	})
	return out
}
