package crawler

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCrawlURLGreaterByPriority(t *testing.T) {
	high := NewCrawlURL("https://example.com/a", 10.0, 0)
	low := NewCrawlURL("https://example.com/b", 5.0, 0)

	assert.True(t, high.Greater(low))
	assert.False(t, low.Greater(high))
}

func TestCrawlURLGreaterTieBreaksOnDepth(t *testing.T) {
	shallow := CrawlURL{URL: "a", Priority: 1.0, Depth: 1, DiscoveredAt: time.Now()}
	deep := CrawlURL{URL: "b", Priority: 1.0, Depth: 2, DiscoveredAt: time.Now()}

	assert.True(t, shallow.Greater(deep))
	assert.False(t, deep.Greater(shallow))
}

func TestCrawlURLGreaterTieBreaksOnDiscoveryTime(t *testing.T) {
	earlier := CrawlURL{URL: "a", Priority: 1.0, Depth: 0, DiscoveredAt: time.Unix(100, 0)}
	later := CrawlURL{URL: "b", Priority: 1.0, Depth: 0, DiscoveredAt: time.Unix(200, 0)}

	assert.True(t, earlier.Greater(later))
	assert.False(t, later.Greater(earlier))
}

func TestCrawlURLGreaterNaNPriorityFallsThroughToDepth(t *testing.T) {
	nanPriority := CrawlURL{URL: "a", Priority: math.NaN(), Depth: 0, DiscoveredAt: time.Unix(1, 0)}
	finitePriority := CrawlURL{URL: "b", Priority: 1000.0, Depth: 1, DiscoveredAt: time.Unix(1, 0)}

	assert.True(t, nanPriority.Greater(finitePriority))
}

func TestNormalizeURLRemovesFragment(t *testing.T) {
	norm, err := NormalizeURL("https://Example.com/Path?b=2&a=1#section")
	assert.NoError(t, err)
	assert.NotContains(t, norm, "#")
}

func TestDomainExtractsHost(t *testing.T) {
	domain, err := Domain("https://www.example.com/path")
	assert.NoError(t, err)
	assert.Equal(t, "www.example.com", domain)
}
