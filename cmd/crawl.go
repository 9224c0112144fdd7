package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	crawler "github.com/shreyas-bk24/anvesha-crawler"
	"github.com/shreyas-bk24/anvesha-crawler/config"
	"github.com/shreyas-bk24/anvesha-crawler/internal/workerpool"
	"github.com/shreyas-bk24/anvesha-crawler/logging"
	"github.com/shreyas-bk24/anvesha-crawler/storage"
)

var (
	crawlSeedURLs  []string
	crawlSaveToDB  bool
	crawlMaxPages  int
)

var crawlCommand = &cobra.Command{
	Use:   "crawl",
	Short: "start an all-in-one crawl",
	Run: func(cmd *cobra.Command, args []string) {
		runCrawl()
	},
}

func init() {
	crawlCommand.Flags().StringSliceVar(&crawlSeedURLs, "seed-urls", nil, "seed URLs to crawl")
	crawlCommand.Flags().BoolVar(&crawlSaveToDB, "save-to-db", false, "persist crawled pages to the repository")
	crawlCommand.Flags().IntVar(&crawlMaxPages, "max-pages", 0, "override crawler.max_pages from config")
	rootCommand.AddCommand(crawlCommand)
}

func runCrawl() {
	seeds := crawlSeedURLs
	if len(seeds) == 0 {
		seeds = config.Config.Crawler.SeedURLs
	}
	if len(seeds) == 0 {
		fatalf("crawl: no seed URLs given (use --seed-urls or crawler.seed_urls)")
	}

	maxPages := config.Config.Crawler.MaxPages
	if crawlMaxPages > 0 {
		maxPages = crawlMaxPages
	}

	var repo *storage.Repository
	if crawlSaveToDB {
		var err error
		repo, err = storage.NewRepository(config.Config.Storage.DatabaseURL, config.Config.Storage.EnableCaching)
		if err != nil {
			fatalf("crawl: failed to open repository: %v", err)
		}
		defer repo.Close()
	}

	frontier := crawler.NewFrontier(maxPages * 10)
	scheduler := crawler.NewScheduler(config.Config.Crawler.ConcurrentRequests, config.RequestDelay(), config.Config.Network.MaxRetries)
	fetcher, err := crawler.NewFetcher(config.Config.Network.UserAgents, config.Config.Network.MaxRedirects,
		config.MaxContentSizeBytes(), config.RequestTimeout(), config.ConnectTimeout(),
		config.Config.Network.DNSCacheEntries, config.DNSCacheTTL())
	if err != nil {
		fatalf("crawl: failed to build fetcher: %v", err)
	}
	processor := crawler.NewProcessor(config.Config.Algorithms.PriorityBoostDomains)

	session := storage.CrawlSession{
		ID:        uuid.NewString(),
		SeedURLs:  seeds,
		StartedAt: time.Now().UTC(),
		Status:    storage.SessionRunning,
	}
	if repo != nil {
		if err := repo.SaveCrawlSession(session); err != nil {
			logging.Warn("failed to save crawl session start", "error", err.Error())
		}
	}

	for _, seed := range seeds {
		norm, err := crawler.NormalizeURL(seed)
		if err != nil {
			logging.Warn("skipping invalid seed", "url", seed, "error", err.Error())
			continue
		}
		frontier.Add(crawler.NewCrawlURL(norm, 1.0, 0))
	}

	var (
		mu           sync.Mutex
		pagesCrawled int
		pagesFailed  int
		inFlight     = workerpool.NewGate()
	)

	worker := func() {
		defer inFlight.Done()
		emptySince := time.Time{}
		for {
			mu.Lock()
			done := pagesCrawled >= maxPages
			mu.Unlock()
			if done {
				return
			}

			next, ok := frontier.Next()
			if !ok {
				if emptySince.IsZero() {
					emptySince = time.Now()
				}
				if time.Since(emptySince) > time.Second {
					return
				}
				time.Sleep(100 * time.Millisecond)
				continue
			}
			emptySince = time.Time{}

			domain, err := crawler.Domain(next.URL)
			if err != nil {
				continue
			}

			result, err := scheduler.Schedule(domain, func() (interface{}, error) {
				return fetcher.Fetch(next.URL)
			})
			frontier.MarkCrawled(next.URL)
			if err != nil {
				mu.Lock()
				pagesFailed++
				mu.Unlock()
				logging.Warn("fetch failed", "url", next.URL, "error", err.Error())
				continue
			}
			resp := result.(*crawler.HttpResponse)

			pageData, err := processor.Process(next.URL, next.Depth, resp.Content)
			if err != nil {
				mu.Lock()
				pagesFailed++
				mu.Unlock()
				logging.Warn("processing failed", "url", next.URL, "error", err.Error())
				continue
			}

			if next.Depth < config.Config.Crawler.MaxDepth {
				frontier.AddMany(pageData.OutgoingLinks)
			}

			if repo != nil {
				savePage(repo, domain, resp, pageData)
			}

			mu.Lock()
			pagesCrawled++
			mu.Unlock()
		}
	}

	inFlight.Add(config.Config.Crawler.ConcurrentRequests)
	for i := 0; i < config.Config.Crawler.ConcurrentRequests; i++ {
		go worker()
	}
	inFlight.Wait()

	endedAt := time.Now().UTC()
	session.EndedAt = &endedAt
	session.PagesCrawled = pagesCrawled
	session.PagesFailed = pagesFailed
	session.Status = storage.SessionCompleted
	if repo != nil {
		if err := repo.SaveCrawlSession(session); err != nil {
			logging.Warn("failed to save crawl session end", "error", err.Error())
		}
	}

	fmt.Printf("crawl complete: pages_crawled=%d pages_failed=%d\n", pagesCrawled, pagesFailed)
}

func savePage(repo *storage.Repository, domain string, resp *crawler.HttpResponse, pageData crawler.PageData) {
	input := storage.PageInput{
		URL:                 pageData.URL,
		Domain:              domain,
		Language:            "en",
		Title:               pageData.Title,
		Description:         pageData.Description,
		Keywords:            pageData.Keywords,
		Content:             pageData.Content,
		WordCount:           pageData.WordCount,
		ContentQualityScore: pageData.ContentQualityScore,
		StatusCode:          resp.StatusCode,
		ContentType:         resp.ContentType,
		ContentLength:       resp.ContentLength,
		CrawledAt:           pageData.CrawledAt,
	}
	pageID, err := repo.SavePage(input)
	if err != nil {
		logging.Warn("failed to save page", "url", pageData.URL, "error", err.Error())
		return
	}

	links := make([]storage.LinkInput, 0, len(pageData.OutgoingLinks))
	for i, l := range pageData.OutgoingLinks {
		links = append(links, storage.LinkInput{TargetURL: l.URL, LinkPosition: i})
	}
	if err := repo.SaveLinks(pageID, links); err != nil {
		logging.Warn("failed to save links", "url", pageData.URL, "error", err.Error())
	}
}
