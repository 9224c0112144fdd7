// Package search implements the multilingual inverted index, query engine,
// and snippet generator.
package search

import "unicode"

// Language is an ISO-ish code for one of the seven supported languages.
type Language string

const (
	LangEnglish   Language = "en"
	LangHindi     Language = "hi"
	LangKannada   Language = "kn"
	LangTamil     Language = "ta"
	LangTelugu    Language = "te"
	LangMalayalam Language = "ml"
	LangMarathi   Language = "mr"
)

// SupportedLanguages lists every language the indexer builds fields for.
var SupportedLanguages = []Language{
	LangEnglish, LangHindi, LangKannada, LangTamil, LangTelugu, LangMalayalam, LangMarathi,
}

// marathiMarkers are lexical cues that discriminate Marathi from Hindi when
// both share the Devanagari block.
var marathiMarkers = []string{"आहे", "आहेत", "मध्ये", "त्यांनी", "यांनी"}

// DetectLanguage classifies content by the dominant Unicode block observed
// in the first pass over its runes.
func DetectLanguage(content string) Language {
	var devanagari, kannada, tamil, telugu, malayalam, other int

	for _, r := range content {
		switch {
		case r >= 0x0900 && r <= 0x097F:
			devanagari++
		case r >= 0x0C80 && r <= 0x0CFF:
			kannada++
		case r >= 0x0B80 && r <= 0x0BFF:
			tamil++
		case r >= 0x0C00 && r <= 0x0C7F:
			telugu++
		case r >= 0x0D00 && r <= 0x0D7F:
			malayalam++
		case unicode.IsLetter(r):
			other++
		}
	}

	max := devanagari
	lang := LangHindi
	if kannada > max {
		max, lang = kannada, LangKannada
	}
	if tamil > max {
		max, lang = tamil, LangTamil
	}
	if telugu > max {
		max, lang = telugu, LangTelugu
	}
	if malayalam > max {
		max, lang = malayalam, LangMalayalam
	}
	if other > max {
		return LangEnglish
	}
	if max == 0 {
		return LangEnglish
	}

	if lang == LangHindi && devanagari == max && hasMarathiMarker(content) {
		return LangMarathi
	}
	return lang
}

func hasMarathiMarker(content string) bool {
	for _, marker := range marathiMarkers {
		if containsRunes(content, marker) {
			return true
		}
	}
	return false
}

func containsRunes(haystack, needle string) bool {
	h, n := []rune(haystack), []rune(needle)
	if len(n) == 0 || len(n) > len(h) {
		return false
	}
	for i := 0; i+len(n) <= len(h); i++ {
		match := true
		for j := range n {
			if h[i+j] != n[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
