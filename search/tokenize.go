package search

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// indicTokenCap is the per-token length cap for the Indic Unicode
// tokenizer.
const indicTokenCap = 120

// TokenizeField splits text into index terms for lang: English uses the
// snowball stemmer, Indic languages use a simple case-folded Unicode
// tokenizer capped at indicTokenCap.
func TokenizeField(text string, lang Language) []string {
	if lang == LangEnglish {
		return tokenizeEnglish(text)
	}
	return tokenizeIndic(text)
}

func tokenizeEnglish(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		out = append(out, english.Stem(f, true))
	}
	return out
}

func tokenizeIndic(text string) []string {
	folded := strings.ToLower(text)
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		runes := []rune(f)
		if len(runes) == 0 {
			continue
		}
		if len(runes) > indicTokenCap {
			runes = runes[:indicTokenCap]
		}
		out = append(out, string(runes))
	}
	return out
}
