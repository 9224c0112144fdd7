package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguageEnglish(t *testing.T) {
	assert.Equal(t, LangEnglish, DetectLanguage("The quick brown fox jumps over the lazy dog"))
}

func TestDetectLanguageEmptyDefaultsEnglish(t *testing.T) {
	assert.Equal(t, LangEnglish, DetectLanguage(""))
}

func TestDetectLanguageKannada(t *testing.T) {
	assert.Equal(t, LangKannada, DetectLanguage("ಕನ್ನಡ ಭಾಷೆ ಒಂದು ಶ್ರೀಮಂತ ಭಾಷೆ"))
}

func TestDetectLanguageTamil(t *testing.T) {
	assert.Equal(t, LangTamil, DetectLanguage("தமிழ் மொழி மிகவும் பழமையானது"))
}

func TestDetectLanguageHindiWithoutMarathiMarkers(t *testing.T) {
	assert.Equal(t, LangHindi, DetectLanguage("यह एक हिंदी वाक्य है जो परीक्षण के लिए है"))
}

func TestDetectLanguageMarathiMarkerOverridesHindi(t *testing.T) {
	assert.Equal(t, LangMarathi, DetectLanguage("ती मुंबईमध्ये आहे आणि तिथेच राहते"))
}
