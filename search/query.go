package search

import (
	"sort"
	"strings"
)

// SortKey selects the result ordering.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortQuality   SortKey = "quality"
	SortPageRank  SortKey = "pagerank"
	SortTfIdf     SortKey = "tfidf"
	SortDate      SortKey = "date" // reserved, unimplemented
)

// Filters narrows a query's candidate set.
type Filters struct {
	Domain     *string
	MinQuality *float64
	MaxQuality *float64
}

// QueryOptions configures one QueryEngine.Search call.
type QueryOptions struct {
	Query     string
	Limit     int
	Offset    int
	Filters   Filters
	Sort      SortKey
	Snippets  bool
	Highlight bool
}

// Result is one ranked hit.
type Result struct {
	URL       string
	Title     string
	Domain    string
	Quality   float64
	PageRank  float64
	TFIDF     float64
	Relevance float64
	Combined  float64
	Snippet   string
}

// QueryEngine evaluates search queries against an Index.
type QueryEngine struct {
	index *Index
}

// NewQueryEngine builds a QueryEngine over index.
func NewQueryEngine(index *Index) *QueryEngine {
	return &QueryEngine{index: index}
}

// Search runs the full parse → retrieve → filter → fuse → sort → paginate
// pipeline.
func (q *QueryEngine) Search(opts QueryOptions) []Result {
	terms := normalizeQueryTerms(opts.Query)
	fields := queryFields()

	hasFilters := opts.Filters.Domain != nil || opts.Filters.MinQuality != nil || opts.Filters.MaxQuality != nil
	fetchMultiplier := 1
	if hasFilters {
		fetchMultiplier = 10
	}
	fetchLimit := (opts.Limit + opts.Offset) * fetchMultiplier
	if fetchLimit <= 0 {
		fetchLimit = 0 // unbounded
	}

	hits := q.index.searchFields(fields, terms, fetchLimit)

	results := make([]Result, 0, len(hits))
	for _, h := range hits {
		doc, ok := q.index.Document(h.docID)
		if !ok {
			continue
		}

		if opts.Filters.Domain != nil && doc.Domain != *opts.Filters.Domain {
			continue
		}
		if opts.Filters.MinQuality != nil && doc.Quality < *opts.Filters.MinQuality {
			continue
		}
		if opts.Filters.MaxQuality != nil && doc.Quality > *opts.Filters.MaxQuality {
			continue
		}

		r := Result{
			URL:       doc.URL,
			Title:     doc.Title,
			Domain:    doc.Domain,
			Quality:   doc.Quality,
			PageRank:  doc.PageRank,
			TFIDF:     doc.TFIDF,
			Relevance: h.relevance,
		}
		r.Combined = fuseScore(h.relevance, doc.PageRank, doc.TFIDF, doc.URL)

		if opts.Snippets {
			r.Snippet = GenerateSnippet(doc.Content, terms, opts.Highlight)
		}
		results = append(results, r)
	}

	sortResults(results, opts.Sort)
	return paginate(results, opts.Offset, opts.Limit)
}

// fuseScore combines relevance, pagerank, and tfidf into one figure, then
// applies a URL-based penalty. Penalties do not stack; the first matching
// clause wins.
func fuseScore(relevance, pagerank, tfidf float64, url string) float64 {
	combined := 0.6*relevance + 0.25*(pagerank*100) + 0.15*(tfidf*100)
	return combined * urlPenalty(url)
}

func urlPenalty(url string) float64 {
	switch {
	case strings.Contains(url, "action=edit"), strings.Contains(url, "action=history"), strings.Contains(url, "/Special:"):
		return 0.85
	case strings.Contains(url, "#"):
		return 0.95
	default:
		return 1.0
	}
}

func sortResults(results []Result, key SortKey) {
	switch key {
	case SortQuality:
		sort.SliceStable(results, func(i, j int) bool { return results[i].Quality > results[j].Quality })
	case SortPageRank:
		sort.SliceStable(results, func(i, j int) bool { return results[i].PageRank > results[j].PageRank })
	case SortTfIdf:
		sort.SliceStable(results, func(i, j int) bool { return results[i].TFIDF > results[j].TFIDF })
	case SortDate:
		// reserved, unimplemented — falls through to the stable relevance
		// order already produced by retrieval.
	default:
		sort.SliceStable(results, func(i, j int) bool { return results[i].Combined > results[j].Combined })
	}
}

// paginate applies offset then limit, after sorting.
func paginate(results []Result, offset, limit int) []Result {
	if offset >= len(results) {
		return []Result{}
	}
	results = results[offset:]
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results
}
