package search

import (
	"sort"
	"strings"

	"github.com/shreyas-bk24/anvesha-crawler/algorithms"
)

// snippetContextChars is the window size around the first match.
const snippetContextChars = 80

// GenerateSnippet builds a Unicode-safe excerpt of content centered on the
// earliest occurrence of any term, optionally highlighting every
// occurrence of every term. Operates on rune (character) indices
// throughout, never byte indices, so multi-byte scripts are never split
// mid-codepoint.
func GenerateSnippet(content string, terms []string, highlight bool) string {
	runes := []rune(content)
	if len(runes) == 0 {
		return ""
	}

	trimmed := make([]string, 0, len(terms))
	for _, t := range terms {
		if t := algorithms.TrimTerm(t); t != "" {
			trimmed = append(trimmed, t)
		}
	}

	matchStart := 0
	if pos, ok := earliestMatch(runes, trimmed); ok {
		matchStart = pos
	}

	start := matchStart - snippetContextChars/2
	if start < 0 {
		start = 0
	}
	end := start + snippetContextChars
	if end > len(runes) {
		end = len(runes)
		start = end - snippetContextChars
		if start < 0 {
			start = 0
		}
	}

	prefixEllipsis := false
	if start > 0 {
		prefixEllipsis = true
		for start < len(runes) && !isSpaceRune(runes[start]) {
			start++
		}
		for start < len(runes) && isSpaceRune(runes[start]) {
			start++
		}
	}

	suffixEllipsis := false
	if end < len(runes) {
		suffixEllipsis = true
		for end > start && !isSpaceRune(runes[end-1]) {
			end--
		}
	}

	window := string(runes[start:end])
	if highlight {
		window = highlightTerms(window, trimmed)
	}

	var b strings.Builder
	if prefixEllipsis {
		b.WriteString("...")
	}
	b.WriteString(window)
	if suffixEllipsis {
		b.WriteString("...")
	}
	return b.String()
}

func isSpaceRune(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// earliestMatch returns the rune index of the earliest case-insensitive
// occurrence of any term in content, or false if none match.
func earliestMatch(content []rune, terms []string) (int, bool) {
	lower := strings.ToLower(string(content))
	lowerRunes := []rune(lower)

	best := -1
	for _, term := range terms {
		termRunes := []rune(strings.ToLower(term))
		if len(termRunes) == 0 {
			continue
		}
		idx := indexRunes(lowerRunes, termRunes)
		if idx >= 0 && (best == -1 || idx < best) {
			best = idx
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// highlightTerms wraps every case-insensitive occurrence of each term in
// window with "**…**". Matches are sorted by start position and written in
// one forward pass into a new string, so no offset is invalidated by an
// insertion; a match overlapping one already wrapped is skipped.
func highlightTerms(window string, terms []string) string {
	runes := []rune(window)
	lowerRunes := []rune(strings.ToLower(window))

	type span struct{ start, end int }
	var spans []span
	for _, term := range terms {
		termRunes := []rune(strings.ToLower(term))
		if len(termRunes) == 0 {
			continue
		}
		for i := 0; i+len(termRunes) <= len(lowerRunes); i++ {
			match := true
			for j := range termRunes {
				if lowerRunes[i+j] != termRunes[j] {
					match = false
					break
				}
			}
			if match {
				spans = append(spans, span{start: i, end: i + len(termRunes)})
			}
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var b strings.Builder
	b.Grow(len(runes) + 4*len(spans))
	pos := 0
	for _, sp := range spans {
		if sp.start < pos {
			continue // overlapping match already covered
		}
		b.WriteString(string(runes[pos:sp.start]))
		b.WriteString("**")
		b.WriteString(string(runes[sp.start:sp.end]))
		b.WriteString("**")
		pos = sp.end
	}
	b.WriteString(string(runes[pos:]))
	return b.String()
}
