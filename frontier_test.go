package crawler

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrontierAddRejectsDuplicates(t *testing.T) {
	f := NewFrontier(0)

	assert.True(t, f.Add(NewCrawlURL("https://example.com/a", 1.0, 0)))
	assert.False(t, f.Add(NewCrawlURL("https://example.com/a", 2.0, 0)))

	stats := f.Stats()
	assert.Equal(t, int64(1), stats.SeenCount)
}

func TestFrontierNextPriorityOrder(t *testing.T) {
	f := NewFrontier(0)
	f.Add(NewCrawlURL("https://example.com/high", 10.0, 0))
	f.Add(NewCrawlURL("https://example.com/low", 5.0, 0))

	first, ok := f.Next()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/high", first.URL)

	second, ok := f.Next()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/low", second.URL)

	_, ok = f.Next()
	assert.False(t, ok)
}

func TestFrontierRespectsCapacity(t *testing.T) {
	f := NewFrontier(1)
	assert.True(t, f.Add(NewCrawlURL("https://example.com/a", 1.0, 0)))
	assert.False(t, f.Add(NewCrawlURL("https://example.com/b", 1.0, 0)))
}

func TestFrontierMarkCrawledIndependentOfQueue(t *testing.T) {
	f := NewFrontier(0)
	f.MarkCrawled("https://example.com/never-queued")
	assert.True(t, f.IsCrawled("https://example.com/never-queued"))
	assert.False(t, f.IsCrawled("https://example.com/other"))
}

// TestFrontierConcurrentAddNeverDuplicates exercises invariants F1/F2 under
// concurrent writers: the same URL added many times from many goroutines
// must be accepted exactly once.
func TestFrontierConcurrentAddNeverDuplicates(t *testing.T) {
	f := NewFrontier(0)
	var wg sync.WaitGroup
	var acceptedCount int32
	var mu sync.Mutex

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if f.Add(NewCrawlURL("https://example.com/shared", 1.0, 0)) {
				mu.Lock()
				acceptedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, acceptedCount)
	stats := f.Stats()
	assert.EqualValues(t, 1, stats.SeenCount)
}
