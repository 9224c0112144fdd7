package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestIndex() *Index {
	idx := NewIndex()
	idx.AddDocument(IndexedDocument{
		ID: 1, URL: "https://example.com/go-tutorial", Domain: "example.com",
		Language: LangEnglish, Title: "Go Tutorial", Content: "Learn the go programming language with this tutorial",
	})
	idx.AddDocument(IndexedDocument{
		ID: 2, URL: "https://example.com/python-tutorial", Domain: "example.com",
		Language: LangEnglish, Title: "Python Tutorial", Content: "Learn python programming from scratch",
	})
	idx.AddDocument(IndexedDocument{
		ID: 3, URL: "https://example.com/unrelated", Domain: "example.com",
		Language: LangEnglish, Title: "Cooking Recipes", Content: "A collection of recipes for home cooking",
	})
	idx.Commit()
	return idx
}

func TestAddDocumentSeparatesLanguageFields(t *testing.T) {
	idx := NewIndex()
	idx.AddDocument(IndexedDocument{
		ID: 1, URL: "https://example.com/hi", Domain: "example.com",
		Language: LangHindi, Title: "शीर्षक", Content: "यह हिंदी सामग्री है",
	})
	idx.Commit()

	assert.Contains(t, idx.postings, "title_hi")
	assert.Contains(t, idx.postings, "content_hi")
	assert.NotContains(t, idx.postings, "title_en")
}

func TestDocCountReflectsCommittedDocuments(t *testing.T) {
	idx := buildTestIndex()
	assert.Equal(t, 3, idx.DocCount())
}

func TestSearchFieldsRanksRelevantDocumentHigher(t *testing.T) {
	idx := buildTestIndex()
	hits := idx.searchFields(queryFields(), normalizeQueryTerms("tutorial programming"), 10)

	require.NotEmpty(t, hits)
	top, ok := idx.Document(hits[0].docID)
	require.True(t, ok)
	assert.Contains(t, []string{"https://example.com/go-tutorial", "https://example.com/python-tutorial"}, top.URL)
}

func TestSearchFieldsExcludesUnmatchedDocuments(t *testing.T) {
	idx := buildTestIndex()
	hits := idx.searchFields(queryFields(), normalizeQueryTerms("tutorial"), 10)

	for _, h := range hits {
		doc, ok := idx.Document(h.docID)
		require.True(t, ok)
		assert.NotEqual(t, "https://example.com/unrelated", doc.URL)
	}
}

func TestSearchFieldsEmptyIndexReturnsNoHits(t *testing.T) {
	idx := NewIndex()
	idx.Commit()
	hits := idx.searchFields(queryFields(), []string{"anything"}, 10)
	assert.Empty(t, hits)
}
