package crawler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = `<html><head>
<title> Example Page </title>
<meta name="description" content="  An example page for testing ">
<meta name="keywords" content="go, crawler, testing">
</head><body>
<p>This is a reasonably long paragraph used to test text extraction.</p>
<div>Another block of content that should be kept by the processor.</div>
<a href="/relative/path">relative link</a>
<a href="https://other.example.com/article/one">external article</a>
<a href="image.jpg">image link</a>
<a href="mailto:someone@example.com">mail</a>
</body></html>`

func TestProcessExtractsTitleDescriptionKeywords(t *testing.T) {
	p := NewProcessor(nil)
	pd, err := p.Process("https://example.com/page", 0, sampleHTML)
	require.NoError(t, err)

	require.NotNil(t, pd.Title)
	assert.Equal(t, "Example Page", *pd.Title)

	require.NotNil(t, pd.Description)
	assert.Equal(t, "An example page for testing", *pd.Description)

	assert.Equal(t, []string{"go", "crawler", "testing"}, pd.Keywords)
}

func TestProcessExtractsTextBody(t *testing.T) {
	p := NewProcessor(nil)
	pd, err := p.Process("https://example.com/page", 0, sampleHTML)
	require.NoError(t, err)

	assert.True(t, strings.Contains(pd.Content, "reasonably long paragraph"))
	assert.True(t, strings.Contains(pd.Content, "Another block of content"))
}

func TestProcessResolvesAndFiltersLinks(t *testing.T) {
	p := NewProcessor(nil)
	pd, err := p.Process("https://example.com/page", 0, sampleHTML)
	require.NoError(t, err)

	var urls []string
	for _, l := range pd.OutgoingLinks {
		urls = append(urls, l.URL)
	}

	assert.Contains(t, urls, "https://example.com/relative/path")
	assert.Contains(t, urls, "https://other.example.com/article/one")
	for _, u := range urls {
		assert.False(t, strings.HasSuffix(u, ".jpg"))
	}
	assert.Len(t, urls, 2)
}

func TestProcessBoostsArticlePathPriority(t *testing.T) {
	p := NewProcessor(nil)
	pd, err := p.Process("https://example.com/page", 0, sampleHTML)
	require.NoError(t, err)

	var plain, article CrawlURL
	for _, l := range pd.OutgoingLinks {
		if strings.Contains(l.URL, "/article/") {
			article = l
		} else {
			plain = l
		}
	}
	assert.Greater(t, article.Priority, plain.Priority)
}

func TestQualityScoreBands(t *testing.T) {
	assert.Equal(t, 0.1, lengthScore(10))
	assert.Equal(t, 0.5, lengthScore(100))
	assert.Equal(t, 0.8, lengthScore(300))
	assert.Equal(t, 1.0, lengthScore(1000))
	assert.Equal(t, 0.9, lengthScore(3000))
	assert.Equal(t, 0.7, lengthScore(10000))
}

func TestDiversityScoreZeroWordsIsZero(t *testing.T) {
	assert.Equal(t, 0.0, diversityScore("", 0))
}

func TestLinkExtensionDetection(t *testing.T) {
	assert.Equal(t, "jpg", linkExtension("/path/to/image.jpg"))
	assert.Equal(t, "", linkExtension("/path/with/no/extension"))
}
