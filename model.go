// Package crawler implements the crawl-rank-search pipeline: a priority
// frontier, a politeness scheduler, a fetcher, and an HTML processor.
package crawler

import (
	"math"
	"net/url"
	"time"

	"github.com/PuerkitoBio/purell"
)

// CrawlURL is a frontier record: a discovered URL plus the data needed to
// order it against its peers.
type CrawlURL struct {
	URL          string
	Priority     float64
	Depth        int
	DiscoveredAt time.Time
}

// NewCrawlURL builds a CrawlURL stamped with the current time.
func NewCrawlURL(rawURL string, priority float64, depth int) CrawlURL {
	return CrawlURL{
		URL:          rawURL,
		Priority:     priority,
		Depth:        depth,
		DiscoveredAt: time.Now().UTC(),
	}
}

// Greater reports whether u sorts ahead of other under the frontier's total
// order: higher priority wins; ties break on lower depth, then earlier
// discovery. NaN priorities are treated as equal to any other priority, so
// ties fall through to depth and discovery time.
func (u CrawlURL) Greater(other CrawlURL) bool {
	if !math.IsNaN(u.Priority) && !math.IsNaN(other.Priority) && u.Priority != other.Priority {
		return u.Priority > other.Priority
	}
	if u.Depth != other.Depth {
		return u.Depth < other.Depth
	}
	return u.DiscoveredAt.Before(other.DiscoveredAt)
}

// NormalizeURL canonicalizes raw using purell's safe normalization flags
// plus fragment removal, returning the string form used for hashing and
// dedup.
func NormalizeURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	purell.NormalizeURL(u, purell.FlagsSafe|purell.FlagRemoveFragment)
	return u.String(), nil
}

// Domain returns the host component of a URL.
func Domain(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return u.Hostname(), nil
}
