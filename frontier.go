package crawler

import (
	"container/heap"
	"sync"

	"github.com/shreyas-bk24/anvesha-crawler/logging"
)

// Frontier is a concurrent, deduplicating, capacity-bounded priority queue
// of CrawlURLs. A single mutex protects the heap; the seen/crawled sets
// are independent so MarkCrawled/IsCrawled never contend with heap
// operations.
type Frontier struct {
	capacity int

	mu   sync.Mutex
	heap urlHeap

	seen    sync.Map // url -> struct{}
	crawled sync.Map // url -> struct{}

	seenCount    int64
	crawledCount int64
	countMu      sync.Mutex
}

// NewFrontier builds an empty Frontier with the given capacity. capacity
// <= 0 means unbounded.
func NewFrontier(capacity int) *Frontier {
	f := &Frontier{capacity: capacity}
	heap.Init(&f.heap)
	return f
}

// Add inserts url if it has never been seen and the queue has room,
// returning whether it was accepted.
func (f *Frontier) Add(u CrawlURL) bool {
	if _, loaded := f.seen.LoadOrStore(u.URL, struct{}{}); loaded {
		return false
	}
	f.countMu.Lock()
	f.seenCount++
	f.countMu.Unlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.capacity > 0 && f.heap.Len() >= f.capacity {
		logging.Debug("frontier dropped url at capacity", "url", u.URL, "capacity", f.capacity)
		return false
	}
	heap.Push(&f.heap, u)
	return true
}

// AddMany adds every url in urls, returning how many were newly accepted.
func (f *Frontier) AddMany(urls []CrawlURL) int {
	count := 0
	for _, u := range urls {
		if f.Add(u) {
			count++
		}
	}
	return count
}

// Next removes and returns the current maximum CrawlURL, or false if the
// frontier is empty.
func (f *Frontier) Next() (CrawlURL, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.heap.Len() == 0 {
		return CrawlURL{}, false
	}
	return heap.Pop(&f.heap).(CrawlURL), true
}

// MarkCrawled records that url has been fetched, independent of queue
// membership.
func (f *Frontier) MarkCrawled(url string) {
	if _, loaded := f.crawled.LoadOrStore(url, struct{}{}); !loaded {
		f.countMu.Lock()
		f.crawledCount++
		f.countMu.Unlock()
	}
}

// IsCrawled reports whether url has been marked crawled.
func (f *Frontier) IsCrawled(url string) bool {
	_, ok := f.crawled.Load(url)
	return ok
}

// Stats reports the frontier's current counters.
type Stats struct {
	QueueSize    int
	SeenCount    int64
	CrawledCount int64
}

// Stats returns a snapshot of the frontier's counters.
func (f *Frontier) Stats() Stats {
	f.mu.Lock()
	qsize := f.heap.Len()
	f.mu.Unlock()

	f.countMu.Lock()
	defer f.countMu.Unlock()
	return Stats{
		QueueSize:    qsize,
		SeenCount:    f.seenCount,
		CrawledCount: f.crawledCount,
	}
}

// urlHeap implements container/heap.Interface as a max-heap ordered by
// CrawlURL.Greater.
type urlHeap []CrawlURL

func (h urlHeap) Len() int            { return len(h) }
func (h urlHeap) Less(i, j int) bool  { return h[i].Greater(h[j]) }
func (h urlHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *urlHeap) Push(x interface{}) { *h = append(*h, x.(CrawlURL)) }
func (h *urlHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
