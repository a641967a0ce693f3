package index

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
)

// Fixed stopword list applied during tokenization. Stopwords never enter
// the index and are stripped from queries by the same tokenizer.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "for": {}, "from": {}, "had": {},
	"has": {}, "have": {}, "he": {}, "her": {}, "his": {}, "how": {},
	"in": {}, "is": {}, "it": {}, "its": {}, "not": {}, "of": {},
	"on": {}, "or": {}, "that": {}, "the": {}, "their": {}, "they": {},
	"this": {}, "to": {}, "was": {}, "were": {}, "what": {}, "when": {},
	"where": {}, "which": {}, "who": {}, "why": {}, "will": {},
	"with": {},
}

// Tokenizer converts raw page text and query strings into the normalized
// terms stored in the index. Both sides of a search must use the same
// tokenizer configuration or query terms will never match postings.
type Tokenizer struct {
	// Reduce terms to their snowball (english) stem before indexing.
	// Off by default: stemming is an opt-in enrichment that changes the
	// term vocabulary.
	Stem bool
}

// Tokenize lowercases the text, splits it on non-alphanumeric boundaries
// and drops stopwords. With Stem enabled, surviving terms are reduced to
// their snowball stem.
func (t Tokenizer) Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	terms := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, isStopword := stopwords[field]; isStopword {
			continue
		}

		if t.Stem {
			if stemmed, err := snowball.Stem(field, "english", false); err == nil {
				field = stemmed
			}
		}

		terms = append(terms, field)
	}

	return terms
}

// TermCounts tokenizes the text and folds the resulting terms into
// per-term occurrence counts. The second return value is the total number
// of indexed terms in the text (stopwords excluded).
func (t Tokenizer) TermCounts(text string) (map[string]int, int) {
	terms := t.Tokenize(text)

	counts := make(map[string]int, len(terms))
	for _, term := range terms {
		counts[term]++
	}

	return counts, len(terms)
}
