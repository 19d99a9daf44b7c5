package tokenize

import (
	"strings"
	"unicode"

	"github.com/ozscout/scoutql/internal/model"
)

// Vocabulary is the subset of the vocabulary store the tokenizer needs to
// protect multi-word aliases and gate plural trimming.
type Vocabulary interface {
	HasPhrase(phrase string) bool
	HasWord(word string) bool
	MaxAliasTokens() int
}

// stopWords are stripped during normalization. Operator words (under, over,
// at, least, between, and, or, ...) are deliberately absent: the constraint
// extractor consumes them.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"please": true, "show": true, "me": true, "find": true, "get": true,
	"give": true, "list": true, "display": true, "see": true, "want": true,
	"of": true, "for": true, "with": true, "from": true, "in": true,
	"on": true, "by": true, "that": true, "which": true, "who": true,
	"whose": true, "is": true, "are": true, "was": true, "were": true,
	"do": true, "does": true, "did": true, "i": true, "we": true,
	"you": true, "all": true, "some": true, "any": true, "their": true,
	"his": true, "her": true, "what": true, "how": true,
	"player": true, "players": true,
}

// Normalize turns a raw query into the normalized token sequence: split on
// whitespace and punctuation (numeric ranges like "18-23" stay whole),
// lowercase, strip stop words unless they sit inside a known multi-word
// alias, and trim trivial plurals when the vocabulary knows the singular.
func Normalize(raw string, vocab Vocabulary) []model.Token {
	tokens := scan(raw)
	tokens = stripStopWords(tokens, vocab)
	for i := range tokens {
		tokens[i].Text = trimPlural(tokens[i].Text, vocab)
	}
	return tokens
}

// scan splits the raw text into lowercased tokens with byte spans
func scan(raw string) []model.Token {
	runes := []rune(raw)
	offsets := make([]int, len(runes)+1)
	pos := 0
	for i, r := range runes {
		offsets[i] = pos
		pos += len(string(r))
	}
	offsets[len(runes)] = pos

	isDigit := func(i int) bool {
		return i >= 0 && i < len(runes) && unicode.IsDigit(runes[i])
	}
	// keep decides whether the rune at i belongs inside a token
	keep := func(i int) bool {
		r := runes[i]
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
		switch r {
		case '.':
			// Decimal point, not a sentence terminator
			return isDigit(i-1) && isDigit(i+1)
		case '-':
			// Numeric range "18-23" stays a single span
			return isDigit(i-1) && isDigit(i+1)
		case '%':
			return isDigit(i - 1)
		}
		return false
	}

	var tokens []model.Token
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		text := string(runes[start:end])
		tokens = append(tokens, model.Token{
			Text: strings.ToLower(text),
			Raw:  text,
			Span: model.Span{Start: offsets[start], End: offsets[end]},
		})
		start = -1
	}
	for i := range runes {
		if keep(i) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(runes))
	return tokens
}

// stripStopWords removes stop words, preserving any that participate in a
// known multi-word alias (checked against raw n-grams before stripping).
func stripStopWords(tokens []model.Token, vocab Vocabulary) []model.Token {
	maxN := vocab.MaxAliasTokens()
	if maxN < 2 {
		maxN = 2
	}

	protected := make([]bool, len(tokens))
	for i := range tokens {
		for n := 2; n <= maxN && i+n <= len(tokens); n++ {
			if vocab.HasPhrase(joinTexts(tokens[i : i+n])) {
				for k := i; k < i+n; k++ {
					protected[k] = true
				}
			}
		}
	}

	out := tokens[:0]
	for i, t := range tokens {
		if stopWords[t.Text] && !protected[i] {
			continue
		}
		out = append(out, t)
	}
	return out
}

func joinTexts(tokens []model.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

// trimPlural drops a trailing "s" when the vocabulary knows the singular
// form but not the plural. Anything the vocabulary already recognizes is
// left untouched so alias matching stays deterministic.
func trimPlural(text string, vocab Vocabulary) string {
	if len(text) < 4 || !strings.HasSuffix(text, "s") {
		return text
	}
	if vocab.HasWord(text) {
		return text
	}
	singular := text[:len(text)-1]
	if vocab.HasWord(singular) {
		return singular
	}
	return text
}
