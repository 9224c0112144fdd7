// Package storage implements content-addressed persistence over an
// embedded relational store: pages, links, domain aggregates, and crawl
// sessions, each hashed and upserted by content address.
package storage

import "time"

// StoredPage is the persisted form of a crawled page.
type StoredPage struct {
	ID                  int64
	URL                 string
	URLHash             string
	ContentHash         string
	Domain              string
	Language            string
	Title               *string
	Description         *string
	Keywords            []string
	Content             string
	WordCount           int
	ContentQualityScore float64
	StatusCode          int
	ContentType         string
	ContentLength       int64
	PageRank            *float64
	TFIDFScore          *float64
	LastModified        *time.Time
	CrawledAt           time.Time
}

// StoredLink is a directed edge between two pages.
type StoredLink struct {
	ID             int64
	SourcePageID   int64
	TargetURL      string
	TargetPageID   *int64
	AnchorText     *string
	LinkPosition   int
}

// DomainInfo is the per-host aggregate.
type DomainInfo struct {
	Domain          string
	PageCount       int
	AvgQualityScore float64
	LastCrawled     *time.Time
	CrawlDelayMs    int
	CrawlAllowed    bool
}

// CrawlSessionStatus enumerates a CrawlSession's lifecycle states.
type CrawlSessionStatus string

const (
	SessionRunning   CrawlSessionStatus = "running"
	SessionCompleted CrawlSessionStatus = "completed"
	SessionFailed    CrawlSessionStatus = "failed"
)

// CrawlSession records one crawl invocation: its seeds, configuration
// snapshot, and outcome counters.
type CrawlSession struct {
	ID             string
	SeedURLs       []string
	ConfigSnapshot string
	StartedAt      time.Time
	EndedAt        *time.Time
	PagesCrawled   int
	PagesFailed    int
	Status         CrawlSessionStatus
}

// PageFilter selects pages for Repository.GetPages.
type PageFilter struct {
	Domain        *string
	MinQuality    *float64
	MaxQuality    *float64
	StatusCode    *int
	CrawledAfter  *time.Time
	CrawledBefore *time.Time
	Limit         int
	Offset        int
}
