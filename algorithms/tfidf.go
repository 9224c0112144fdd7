package algorithms

import (
	"math"
	"sort"
)

// tfidfTopK is the default number of top-tfidf terms used to compute a
// document's persisted magnitude.
const tfidfTopK = 256

// Document is one corpus entry: doc_id is the url_hash for stability.
type Document struct {
	ID      string
	Content string
}

// Corpus is the tokenized, indexed form of a set of documents, ready for
// tf/idf/magnitude queries.
type Corpus struct {
	docTokens map[string][]string
	docFreq   map[string]int // term -> number of docs containing it
	n         int
}

// BuildCorpus tokenizes every document and computes document frequencies.
func BuildCorpus(docs []Document) *Corpus {
	c := &Corpus{
		docTokens: make(map[string][]string, len(docs)),
		docFreq:   make(map[string]int),
		n:         len(docs),
	}
	for _, d := range docs {
		tokens := Tokenize(d.Content)
		c.docTokens[d.ID] = tokens

		seen := make(map[string]bool, len(tokens))
		for _, t := range tokens {
			if !seen[t] {
				seen[t] = true
				c.docFreq[t]++
			}
		}
	}
	return c
}

// TermFrequency returns tf(t, d) = count(t in d) / |d|.
func (c *Corpus) TermFrequency(term, docID string) float64 {
	tokens := c.docTokens[docID]
	if len(tokens) == 0 {
		return 0
	}
	count := 0
	for _, t := range tokens {
		if t == term {
			count++
		}
	}
	return float64(count) / float64(len(tokens))
}

// DocumentFrequency returns df(t) = |{d : t ∈ d}|.
func (c *Corpus) DocumentFrequency(term string) int {
	return c.docFreq[term]
}

// InverseDocumentFrequency returns idf(t) = ln(N/df(t)) when df(t) > 0,
// else 0.
func (c *Corpus) InverseDocumentFrequency(term string) float64 {
	df := c.docFreq[term]
	if df == 0 {
		return 0
	}
	return math.Log(float64(c.n) / float64(df))
}

// TFIDF returns tf(t,d) * idf(t).
func (c *Corpus) TFIDF(term, docID string) float64 {
	return c.TermFrequency(term, docID) * c.InverseDocumentFrequency(term)
}

// termScore pairs a term with its tfidf weight for a document.
type termScore struct {
	term  string
	value float64
}

// DocumentVector returns the top-k terms by tfidf for docID and the
// resulting magnitude (sqrt of the sum of their squared tfidf values),
// persisted as tfidf_score.
func (c *Corpus) DocumentVector(docID string) (terms map[string]float64, magnitude float64) {
	tokens := c.docTokens[docID]
	unique := make(map[string]bool)
	var scores []termScore
	for _, t := range tokens {
		if unique[t] {
			continue
		}
		unique[t] = true
		scores = append(scores, termScore{term: t, value: c.TFIDF(t, docID)})
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].value > scores[j].value })

	k := tfidfTopK
	if k > len(scores) {
		k = len(scores)
	}

	terms = make(map[string]float64, k)
	sumSquares := 0.0
	for _, s := range scores[:k] {
		terms[s.term] = s.value
		sumSquares += s.value * s.value
	}
	return terms, math.Sqrt(sumSquares)
}

// Magnitude returns only the persisted tfidf_score for docID.
func (c *Corpus) Magnitude(docID string) float64 {
	_, mag := c.DocumentVector(docID)
	return mag
}

// CosineSimilarity returns the cosine similarity between a query's term
// weights and a document's top-k vector, 0 if either magnitude is 0.
// Available but unused by ranked search in this version.
func CosineSimilarity(queryTerms map[string]float64, queryMagnitude float64, docTerms map[string]float64, docMagnitude float64) float64 {
	if queryMagnitude == 0 || docMagnitude == 0 {
		return 0
	}
	dot := 0.0
	for t, qw := range queryTerms {
		if dw, ok := docTerms[t]; ok {
			dot += qw * dw
		}
	}
	return dot / (queryMagnitude * docMagnitude)
}
