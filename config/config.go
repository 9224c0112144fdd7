// Package config loads and validates the anvesha-crawler TOML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the configuration instance the rest of the program should read
// from. It is populated by Load and is safe to read concurrently once
// loading has completed; nothing mutates it afterward.
var Config CrawlerConfig

// Path is the path last passed to Load. It is set even when that file does
// not exist and the defaults stay in effect; it is empty only when Load was
// given an empty path or has not run.
var Path string

// CrawlerConfig holds every configurable section of the crawler, ranker,
// and search engine: crawl limits, network behavior, storage targets, and
// ranking algorithm selection.
type CrawlerConfig struct {
	Crawler struct {
		MaxDepth            int      `toml:"max_depth"`
		MaxPages            int      `toml:"max_pages"`
		ConcurrentRequests  int      `toml:"concurrent_requests"`
		SeedURLs            []string `toml:"seed_urls"`
		UserAgent           string   `toml:"user_agent"`
	} `toml:"crawler"`

	Network struct {
		RequestTimeoutSecs int      `toml:"request_timeout_secs"`
		RequestDelayMs     int      `toml:"request_delay_ms"`
		MaxRetries         int      `toml:"max_retries"`
		RespectRobotsTxt   bool     `toml:"respect_robots_txt"`
		MaxContentSizeMB   int      `toml:"max_content_size_mb"`
		UserAgents         []string `toml:"user_agents"`
		MaxRedirects       int      `toml:"max_redirects"`
		ConnectTimeoutSecs int      `toml:"connect_timeout_secs"`
		DNSCacheEntries    int      `toml:"dns_cache_entries"`
		DNSCacheTTLSecs    int      `toml:"dns_cache_ttl_secs"`
	} `toml:"network"`

	Storage struct {
		DatabaseURL    string `toml:"database_url"`
		RedisURL       string `toml:"redis_url"`
		EnableCaching  bool   `toml:"enable_caching"`
		StoragePath    string `toml:"storage_path"`
	} `toml:"storage"`

	Algorithms struct {
		PrimaryAlgorithm     string   `toml:"primary_algorithm"`
		EnableOPIC           bool     `toml:"enable_opic"`
		PriorityBoostDomains []string `toml:"priority_boost_domains"`
	} `toml:"algorithms"`
}

// SetDefaults resets Config to its built-in defaults, discarding anything
// loaded from a file.
func SetDefaults() {
	Config = CrawlerConfig{}

	Config.Crawler.MaxDepth = 3
	Config.Crawler.MaxPages = 1000
	Config.Crawler.ConcurrentRequests = 10
	Config.Crawler.SeedURLs = nil
	Config.Crawler.UserAgent = "anvesha-crawler/1.0 (+https://github.com/shreyas-bk24/anvesha-crawler)"

	Config.Network.RequestTimeoutSecs = 30
	Config.Network.RequestDelayMs = 1000
	Config.Network.MaxRetries = 3
	Config.Network.RespectRobotsTxt = true
	Config.Network.MaxContentSizeMB = 10
	Config.Network.UserAgents = []string{Config.Crawler.UserAgent}
	Config.Network.MaxRedirects = 10
	Config.Network.ConnectTimeoutSecs = 10
	Config.Network.DNSCacheEntries = 10000
	Config.Network.DNSCacheTTLSecs = 300

	Config.Storage.DatabaseURL = "anvesha.db"
	Config.Storage.RedisURL = ""
	Config.Storage.EnableCaching = false
	Config.Storage.StoragePath = "./index"

	Config.Algorithms.PrimaryAlgorithm = "best_first"
	Config.Algorithms.EnableOPIC = false
	Config.Algorithms.PriorityBoostDomains = nil
}

func init() {
	SetDefaults()
}

// Load reads and unmarshals the TOML file at path into Config, applying
// defaults first so that any section or field the file omits keeps its
// default value. A missing file is not an error; Load simply leaves the
// defaults in place.
func Load(path string) error {
	SetDefaults()
	Path = path

	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: failed to read %q: %w", path, err)
	}

	if err := toml.Unmarshal(data, &Config); err != nil {
		return fmt.Errorf("config: failed to parse %q: %w", path, err)
	}

	return assertInvariants()
}

// RequestTimeout returns the configured per-request timeout as a Duration.
func RequestTimeout() time.Duration {
	return time.Duration(Config.Network.RequestTimeoutSecs) * time.Second
}

// ConnectTimeout returns the configured dial timeout as a Duration.
func ConnectTimeout() time.Duration {
	return time.Duration(Config.Network.ConnectTimeoutSecs) * time.Second
}

// RequestDelay returns the configured per-domain politeness delay.
func RequestDelay() time.Duration {
	return time.Duration(Config.Network.RequestDelayMs) * time.Millisecond
}

// MaxContentSizeBytes returns the configured fetch size gate in bytes.
func MaxContentSizeBytes() int64 {
	return int64(Config.Network.MaxContentSizeMB) * 1024 * 1024
}

// DNSCacheTTL returns the configured DNS resolution cache lifetime.
func DNSCacheTTL() time.Duration {
	return time.Duration(Config.Network.DNSCacheTTLSecs) * time.Second
}

// assertInvariants collects every configuration problem before returning,
// so a malformed config file reports all of its mistakes at once.
func assertInvariants() error {
	var errs []string

	if Config.Crawler.MaxDepth < 0 {
		errs = append(errs, "crawler.max_depth must be >= 0")
	}
	if Config.Crawler.MaxPages < 1 {
		errs = append(errs, "crawler.max_pages must be > 0")
	}
	if Config.Crawler.ConcurrentRequests < 1 {
		errs = append(errs, "crawler.concurrent_requests must be > 0")
	}
	if Config.Network.RequestTimeoutSecs < 1 {
		errs = append(errs, "network.request_timeout_secs must be > 0")
	}
	if Config.Network.MaxRetries < 0 {
		errs = append(errs, "network.max_retries must be >= 0")
	}
	if Config.Network.MaxContentSizeMB < 1 {
		errs = append(errs, "network.max_content_size_mb must be > 0")
	}
	if len(Config.Network.UserAgents) == 0 {
		errs = append(errs, "network.user_agents must not be empty")
	}
	if Config.Network.DNSCacheEntries < 1 {
		errs = append(errs, "network.dns_cache_entries must be > 0")
	}
	if Config.Network.DNSCacheTTLSecs < 1 {
		errs = append(errs, "network.dns_cache_ttl_secs must be > 0")
	}
	switch Config.Algorithms.PrimaryAlgorithm {
	case "bfs", "best_first", "shark_search":
	default:
		errs = append(errs, "algorithms.primary_algorithm must be one of bfs|best_first|shark_search")
	}

	if len(errs) == 0 {
		return nil
	}

	msg := "config: invalid configuration:\n"
	for _, e := range errs {
		msg += "\t" + e + "\n"
	}
	return fmt.Errorf(msg)
}
