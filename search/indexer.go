package search

import (
	"math"
	"sort"
	"strings"
	"sync"
)

// IndexedDocument is one page as presented to the Indexer.
type IndexedDocument struct {
	ID          int64
	URL         string
	Domain      string
	Language    Language
	Title       string
	Description string // English only
	Content     string
	Quality     float64
	PageRank    float64
	TFIDF       float64
}

// postingList maps a term to the documents containing it and their raw
// in-field term frequency, per field.
type postingList map[string]map[int64]int

// storedDoc holds everything needed to answer a retrieval: stored field
// values plus per-field token counts for BM25's length normalization.
type storedDoc struct {
	doc       IndexedDocument
	fieldLens map[string]int
}

// Index is an in-memory inverted index protected by a single RWMutex rather
// than a true segment-merge engine: writes take an exclusive lock, and a
// document is visible to readers as soon as AddDocument returns. Commit only
// refreshes the per-field average lengths used by BM25; there is no
// separate committed snapshot.
type Index struct {
	mu sync.RWMutex

	postings map[string]postingList // fieldName -> postingList
	docs     map[int64]storedDoc
	avgLen   map[string]float64 // fieldName -> average token count, for BM25
}

// NewIndex builds an empty Index.
func NewIndex() *Index {
	return &Index{
		postings: make(map[string]postingList),
		docs:     make(map[int64]storedDoc),
		avgLen:   make(map[string]float64),
	}
}

// fieldNames returns the text field names populated for a document's
// detected language: title_<L> and content_<L>, plus description_en for
// English.
func fieldNames(lang Language) []string {
	fields := []string{"title_" + string(lang), "content_" + string(lang)}
	if lang == LangEnglish {
		fields = append(fields, "description_en")
	}
	return fields
}

func fieldText(doc IndexedDocument, field string) string {
	switch {
	case field == "title_"+string(doc.Language):
		return doc.Title
	case field == "content_"+string(doc.Language):
		return doc.Content
	case field == "description_en" && doc.Language == LangEnglish:
		return doc.Description
	}
	return ""
}

// AddDocument indexes doc, writing only the fields for its detected
// language so per-language postings stay disjoint.
func (idx *Index) AddDocument(doc IndexedDocument) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	fieldLens := make(map[string]int)
	for _, field := range fieldNames(doc.Language) {
		tokens := TokenizeField(fieldText(doc, field), doc.Language)
		fieldLens[field] = len(tokens)

		pl, ok := idx.postings[field]
		if !ok {
			pl = make(postingList)
			idx.postings[field] = pl
		}
		counts := make(map[string]int)
		for _, t := range tokens {
			counts[t]++
		}
		for term, count := range counts {
			if pl[term] == nil {
				pl[term] = make(map[int64]int)
			}
			pl[term][doc.ID] = count
		}
	}
	// The url field is common across every document regardless of language,
	// so URL terms stay searchable even for non-English corpora.
	urlField := "url"
	pl, ok := idx.postings[urlField]
	if !ok {
		pl = make(postingList)
		idx.postings[urlField] = pl
	}
	urlTokens := TokenizeField(doc.URL, LangEnglish)
	fieldLens[urlField] = len(urlTokens)
	counts := make(map[string]int)
	for _, t := range urlTokens {
		counts[t]++
	}
	for term, count := range counts {
		if pl[term] == nil {
			pl[term] = make(map[int64]int)
		}
		pl[term][doc.ID] = count
	}

	idx.docs[doc.ID] = storedDoc{doc: doc, fieldLens: fieldLens}
}

// Commit recomputes per-field average lengths used by BM25 scoring. Batch
// index rebuild calls this once after all rows are added.
func (idx *Index) Commit() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, sd := range idx.docs {
		for field, length := range sd.fieldLens {
			sums[field] += length
			counts[field]++
		}
	}
	for field, sum := range sums {
		if counts[field] > 0 {
			idx.avgLen[field] = float64(sum) / float64(counts[field])
		}
	}
}

// DocCount returns the number of documents added to the index, whether or
// not Commit has run since.
func (idx *Index) DocCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// bm25K1 and bm25B are the standard Okapi BM25 tuning constants.
const (
	bm25K1 = 1.2
	bm25B  = 0.75
)

// scoredHit is one candidate document with its BM25 relevance score,
// before QueryEngine filtering and score fusion.
type scoredHit struct {
	docID     int64
	relevance float64
}

// searchFields runs a disjunctive BM25 search over fields for queryTerms,
// returning up to limit hits ordered by descending relevance.
func (idx *Index) searchFields(fields []string, queryTerms []string, limit int) []scoredHit {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	n := float64(len(idx.docs))
	if n == 0 {
		return nil
	}

	scores := make(map[int64]float64)
	for _, field := range fields {
		pl, ok := idx.postings[field]
		if !ok {
			continue
		}
		avgLen := idx.avgLen[field]
		if avgLen == 0 {
			avgLen = 1
		}
		for _, term := range queryTerms {
			postings, ok := pl[term]
			if !ok {
				continue
			}
			df := float64(len(postings))
			idf := math.Log(1 + (n-df+0.5)/(df+0.5))
			for docID, tf := range postings {
				fieldLen := float64(idx.docs[docID].fieldLens[field])
				denom := float64(tf) + bm25K1*(1-bm25B+bm25B*fieldLen/avgLen)
				scores[docID] += idf * (float64(tf) * (bm25K1 + 1)) / denom
			}
		}
	}

	hits := make([]scoredHit, 0, len(scores))
	for docID, score := range scores {
		hits = append(hits, scoredHit{docID: docID, relevance: score})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].relevance > hits[j].relevance })
	if limit > 0 && limit < len(hits) {
		hits = hits[:limit]
	}
	return hits
}

// Document returns the stored document for id, if present.
func (idx *Index) Document(id int64) (IndexedDocument, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	sd, ok := idx.docs[id]
	return sd.doc, ok
}

// queryFields returns the disjunctive field set for a free-text query: the
// English trio, retained even for non-English corpora for URL matching.
func queryFields() []string {
	return []string{"title_en", "content_en", "url"}
}

func normalizeQueryTerms(query string) []string {
	return TokenizeField(strings.TrimSpace(query), LangEnglish)
}
