package algorithms

import (
	"strings"
	"unicode"
)

// englishStopwords is the fixed ~50-term list used by TF-IDF tokenization.
// Tokenization is language-unaware in the current design.
var englishStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "up": true, "about": true,
	"into": true, "over": true, "after": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true,
	"did": true, "will": true, "would": true, "should": true, "could": true,
	"this": true, "that": true, "these": true, "those": true, "it": true,
	"its": true, "as": true, "if": true, "then": true, "than": true,
	"so": true, "not": true, "no": true, "can": true, "just": true,
}

// Tokenize implements the tokenization shared by TF-IDF and the snippet
// extractor's term-trimming rule: lowercase, split on whitespace, trim
// non-alphanumeric from each token's ends, drop empty tokens, drop tokens
// of length ≤ 2, and drop stopwords.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		t := trimNonAlphanumeric(f)
		if t == "" || len(t) <= 2 || englishStopwords[t] {
			continue
		}
		out = append(out, t)
	}
	return out
}

// TrimTerm applies only the trimming rule (no stopword or length filter),
// for the snippet extractor's query-term handling.
func TrimTerm(term string) string {
	return trimNonAlphanumeric(strings.ToLower(term))
}

func trimNonAlphanumeric(s string) string {
	isAlnum := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	runes := []rune(s)
	start := 0
	for start < len(runes) && !isAlnum(runes[start]) {
		start++
	}
	end := len(runes)
	for end > start && !isAlnum(runes[end-1]) {
		end--
	}
	return string(runes[start:end])
}
