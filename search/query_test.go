package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildQueryTestIndex() *Index {
	idx := NewIndex()
	idx.AddDocument(IndexedDocument{
		ID: 1, URL: "https://a.example.com/go", Domain: "a.example.com",
		Language: LangEnglish, Title: "Go Programming", Content: "Go is a statically typed compiled programming language",
		Quality: 0.9, PageRank: 0.01, TFIDF: 0.3,
	})
	idx.AddDocument(IndexedDocument{
		ID: 2, URL: "https://b.example.com/go", Domain: "b.example.com",
		Language: LangEnglish, Title: "Go Basics", Content: "An introductory overview of the go programming language",
		Quality: 0.4, PageRank: 0.05, TFIDF: 0.1,
	})
	idx.Commit()
	return idx
}

// TestSearchOrdersByCombinedScore mirrors the spec's fusion-score
// scenario: two documents with different relevance, pagerank and tfidf
// come back ordered by their combined score.
func TestSearchOrdersByCombinedScore(t *testing.T) {
	idx := buildQueryTestIndex()
	qe := NewQueryEngine(idx)

	results := qe.Search(QueryOptions{Query: "go programming language", Limit: 10})
	require.Len(t, results, 2)

	byURL := map[string]Result{}
	for _, r := range results {
		byURL[r.URL] = r
	}
	assert.Greater(t, byURL["https://b.example.com/go"].Combined, 0.0)
	assert.Equal(t, results[0].Combined >= results[1].Combined, true)
}

func TestSearchFilterByDomain(t *testing.T) {
	idx := buildQueryTestIndex()
	qe := NewQueryEngine(idx)

	domain := "a.example.com"
	results := qe.Search(QueryOptions{Query: "go", Limit: 10, Filters: Filters{Domain: &domain}})
	for _, r := range results {
		assert.Equal(t, "a.example.com", r.Domain)
	}
}

func TestSearchFilterByMinQuality(t *testing.T) {
	idx := buildQueryTestIndex()
	qe := NewQueryEngine(idx)

	minQ := 0.5
	results := qe.Search(QueryOptions{Query: "go", Limit: 10, Filters: Filters{MinQuality: &minQ}})
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Quality, 0.5)
	}
}

func TestSearchSortByQuality(t *testing.T) {
	idx := buildQueryTestIndex()
	qe := NewQueryEngine(idx)

	results := qe.Search(QueryOptions{Query: "go", Limit: 10, Sort: SortQuality})
	require.Len(t, results, 2)
	assert.GreaterOrEqual(t, results[0].Quality, results[1].Quality)
}

func TestSearchPaginationRespectsOffsetAndLimit(t *testing.T) {
	idx := buildQueryTestIndex()
	qe := NewQueryEngine(idx)

	all := qe.Search(QueryOptions{Query: "go", Limit: 10})
	require.Len(t, all, 2)

	page := qe.Search(QueryOptions{Query: "go", Limit: 1, Offset: 1})
	require.Len(t, page, 1)
	assert.Equal(t, all[1].URL, page[0].URL)
}

func TestURLPenaltyDemotesEditLinks(t *testing.T) {
	assert.Less(t, urlPenalty("https://wiki.example.com/Page?action=edit"), 1.0)
	assert.Equal(t, 1.0, urlPenalty("https://wiki.example.com/Page"))
}

func TestSearchGeneratesSnippetWhenRequested(t *testing.T) {
	idx := buildQueryTestIndex()
	qe := NewQueryEngine(idx)

	results := qe.Search(QueryOptions{Query: "go", Limit: 10, Snippets: true, Highlight: true})
	for _, r := range results {
		assert.NotEmpty(t, r.Snippet)
	}
}
