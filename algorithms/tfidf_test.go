package algorithms

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIDFIsPositiveOnlyForPartialCoverage checks that idf(t) > 0 iff
// 0 < df(t) < N.
func TestIDFIsPositiveOnlyForPartialCoverage(t *testing.T) {
	corpus := BuildCorpus([]Document{
		{ID: "a", Content: "apple banana"},
		{ID: "b", Content: "banana cherry"},
		{ID: "c", Content: "cherry date"},
	})

	// "banana" appears in 2 of 3 docs: 0 < df < N, idf > 0.
	assert.Greater(t, corpus.InverseDocumentFrequency("banana"), 0.0)

	// a term present in every doc would have idf == 0; simulate with a
	// corpus where the term covers all documents.
	uniform := BuildCorpus([]Document{
		{ID: "a", Content: "shared"},
		{ID: "b", Content: "shared"},
	})
	assert.Equal(t, 0.0, uniform.InverseDocumentFrequency("shared"))

	// a term absent from the corpus has df == 0, idf == 0.
	assert.Equal(t, 0.0, corpus.InverseDocumentFrequency("nonexistent"))
}

func TestTermFrequencyNormalizesByDocLength(t *testing.T) {
	corpus := BuildCorpus([]Document{
		{ID: "a", Content: "golang golang golang python"},
	})
	assert.InDelta(t, 0.75, corpus.TermFrequency("golang", "a"), 1e-9)
	assert.InDelta(t, 0.25, corpus.TermFrequency("python", "a"), 1e-9)
	assert.Equal(t, 0.0, corpus.TermFrequency("missing", "a"))
}

func TestDocumentVectorCapsAtTopK(t *testing.T) {
	content := ""
	for i := 0; i < 300; i++ {
		content += "word" + strconv.Itoa(i) + " "
	}
	corpus := BuildCorpus([]Document{{ID: "a", Content: content}})
	terms, magnitude := corpus.DocumentVector("a")

	assert.LessOrEqual(t, len(terms), tfidfTopK)
	assert.GreaterOrEqual(t, magnitude, 0.0)
}

func TestCosineSimilarityZeroMagnitudeIsZero(t *testing.T) {
	sim := CosineSimilarity(map[string]float64{"a": 1}, 0, map[string]float64{"a": 1}, 1)
	assert.Equal(t, 0.0, sim)
}

func TestCosineSimilarityIdenticalVectorsIsOne(t *testing.T) {
	terms := map[string]float64{"go": 0.6, "lang": 0.8}
	sim := CosineSimilarity(terms, 1.0, terms, 1.0)
	assert.InDelta(t, 1.0, sim, 1e-9)
}
