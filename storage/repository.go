package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	_ "modernc.org/sqlite"

	"github.com/shreyas-bk24/anvesha-crawler/logging"
)

// Repository is the primary content-addressed persistence layer, using an
// embedded SQLite database: a single struct wrapping the connection, with
// small in-process LRU caches. GetDomainInfo consults the domain→DomainInfo
// cache before querying; the url_hash→page_id cache is filled by SavePage
// and read only through CachedPageID.
type Repository struct {
	db *sql.DB

	cacheEnabled bool
	pageIDCache  *lru.Cache // url_hash -> int64
	domainCache  *lru.Cache // domain -> DomainInfo
}

// NewRepository opens databaseURL (a sqlite DSN, e.g. a file path or
// "file::memory:?cache=shared"), applies the schema, and returns a ready
// Repository. enableCaching toggles the in-process LRU caches.
func NewRepository(databaseURL string, enableCaching bool) (*Repository, error) {
	db, err := sql.Open("sqlite", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite: single writer, serialize access

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: failed to apply schema: %w", err)
	}

	r := &Repository{db: db, cacheEnabled: enableCaching}
	if enableCaching {
		r.pageIDCache, _ = lru.New(4096)
		r.domainCache, _ = lru.New(1024)
	}
	return r, nil
}

// Close releases the underlying database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// HashString returns the hex SHA-256 digest of s, used as the stable
// content address for both URLs and page content.
func HashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// PageInput is the subset of fields SavePage needs from a processed page;
// it mirrors crawler.PageData without importing the root package, keeping
// storage free of a dependency on the crawl engine.
type PageInput struct {
	URL                 string
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
	CrawledAt           time.Time
}

// SavePage upserts page keyed on url_hash, preserving id across re-saves,
// and updates the domains aggregate.
func (r *Repository) SavePage(p PageInput) (int64, error) {
	urlHash := HashString(p.URL)
	contentHash := HashString(p.Content)
	keywords := strings.Join(p.Keywords, ",")

	var existingID int64
	err := r.db.QueryRow(`SELECT id FROM pages WHERE url_hash = ?`, urlHash).Scan(&existingID)

	switch {
	case err == sql.ErrNoRows:
		res, iErr := r.db.Exec(`
			INSERT INTO pages (
				url, url_hash, content_hash, domain, language, title, description,
				keywords, content, word_count, content_quality_score, status_code,
				content_type, content_length, crawled_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.URL, urlHash, contentHash, p.Domain, p.Language, p.Title, p.Description,
			keywords, p.Content, p.WordCount, p.ContentQualityScore, p.StatusCode,
			p.ContentType, p.ContentLength, p.CrawledAt)
		if iErr != nil {
			return 0, fmt.Errorf("storage: insert page: %w", iErr)
		}
		existingID, iErr = res.LastInsertId()
		if iErr != nil {
			return 0, fmt.Errorf("storage: read inserted page id: %w", iErr)
		}
	case err != nil:
		return 0, fmt.Errorf("storage: lookup page by url_hash: %w", err)
	default:
		_, uErr := r.db.Exec(`
			UPDATE pages SET title = ?, description = ?, content = ?, content_hash = ?,
				content_quality_score = ?, word_count = ?, crawled_at = ?, status_code = ?,
				content_length = ?
			WHERE id = ?`,
			p.Title, p.Description, p.Content, contentHash, p.ContentQualityScore,
			p.WordCount, p.CrawledAt, p.StatusCode, p.ContentLength, existingID)
		if uErr != nil {
			return 0, fmt.Errorf("storage: update page: %w", uErr)
		}
	}

	if r.cacheEnabled {
		r.pageIDCache.Add(urlHash, existingID)
		r.domainCache.Remove(p.Domain)
	}

	if err := r.upsertDomainAggregate(p.Domain, p.CrawledAt); err != nil {
		logging.Warn("failed to update domain aggregate", "domain", p.Domain, "error", err.Error())
	}

	return existingID, nil
}

func (r *Repository) upsertDomainAggregate(domain string, crawledAt time.Time) error {
	var exists bool
	if err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM domains WHERE domain = ?)`, domain).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		if _, err := r.db.Exec(`INSERT INTO domains (domain, page_count, last_crawled) VALUES (?, 0, ?)`, domain, crawledAt); err != nil {
			return err
		}
	}

	var avgQuality float64
	if err := r.db.QueryRow(`SELECT AVG(content_quality_score) FROM pages WHERE domain = ?`, domain).Scan(&avgQuality); err != nil {
		return err
	}
	var pageCount int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM pages WHERE domain = ?`, domain).Scan(&pageCount); err != nil {
		return err
	}
	_, err := r.db.Exec(`UPDATE domains SET page_count = ?, avg_quality_score = ?, last_crawled = ? WHERE domain = ?`,
		pageCount, avgQuality, crawledAt, domain)
	return err
}

// LinkInput mirrors a discovered outgoing link for SaveLinks.
type LinkInput struct {
	TargetURL    string
	AnchorText   *string
	LinkPosition int
}

// SaveLinks inserts edges from sourceID, resolving target_page_id when the
// target is already stored. Duplicates are suppressed by the unique
// constraint on (source_page_id, target_url).
func (r *Repository) SaveLinks(sourceID int64, links []LinkInput) error {
	for _, l := range links {
		targetHash := HashString(l.TargetURL)
		var targetID sql.NullInt64
		if err := r.db.QueryRow(`SELECT id FROM pages WHERE url_hash = ?`, targetHash).Scan(&targetID); err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("storage: resolve target page id: %w", err)
		}

		_, err := r.db.Exec(`
			INSERT OR IGNORE INTO links (source_page_id, target_url, target_page_id, anchor_text, link_position)
			VALUES (?, ?, ?, ?, ?)`,
			sourceID, l.TargetURL, targetID, l.AnchorText, l.LinkPosition)
		if err != nil {
			return fmt.Errorf("storage: insert link: %w", err)
		}
	}
	return nil
}

// GetPageByID returns the page with the given id, or sql.ErrNoRows.
func (r *Repository) GetPageByID(id int64) (*StoredPage, error) {
	return r.scanOnePage(`SELECT * FROM pages WHERE id = ?`, id)
}

// GetPageByURL returns the page with the given url, or sql.ErrNoRows.
func (r *Repository) GetPageByURL(url string) (*StoredPage, error) {
	return r.scanOnePage(`SELECT * FROM pages WHERE url_hash = ?`, HashString(url))
}

// URLExists reports whether url has already been stored.
func (r *Repository) URLExists(url string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM pages WHERE url_hash = ?)`, HashString(url)).Scan(&exists)
	return exists, err
}

const pageColumns = `id, url, url_hash, content_hash, domain, language, title, description,
	keywords, content, word_count, content_quality_score, status_code, content_type,
	content_length, pagerank, tfidf_score, last_modified, crawled_at`

func (r *Repository) scanOnePage(query string, args ...interface{}) (*StoredPage, error) {
	query = strings.Replace(query, "*", pageColumns, 1)
	row := r.db.QueryRow(query, args...)
	return scanPageRow(row)
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanPageRow(row scannable) (*StoredPage, error) {
	var p StoredPage
	var keywords string
	if err := row.Scan(
		&p.ID, &p.URL, &p.URLHash, &p.ContentHash, &p.Domain, &p.Language, &p.Title,
		&p.Description, &keywords, &p.Content, &p.WordCount, &p.ContentQualityScore,
		&p.StatusCode, &p.ContentType, &p.ContentLength, &p.PageRank, &p.TFIDFScore,
		&p.LastModified, &p.CrawledAt,
	); err != nil {
		return nil, err
	}
	if keywords != "" {
		p.Keywords = strings.Split(keywords, ",")
	}
	return &p, nil
}

// GetPages returns pages matching filter, ordered by quality then recency.
func (r *Repository) GetPages(filter PageFilter) ([]StoredPage, error) {
	query := "SELECT " + pageColumns + " FROM pages WHERE 1=1"
	var args []interface{}

	if filter.Domain != nil {
		query += " AND domain = ?"
		args = append(args, *filter.Domain)
	}
	if filter.MinQuality != nil {
		query += " AND content_quality_score >= ?"
		args = append(args, *filter.MinQuality)
	}
	if filter.MaxQuality != nil {
		query += " AND content_quality_score <= ?"
		args = append(args, *filter.MaxQuality)
	}
	if filter.StatusCode != nil {
		query += " AND status_code = ?"
		args = append(args, *filter.StatusCode)
	}
	if filter.CrawledAfter != nil {
		query += " AND crawled_at > ?"
		args = append(args, *filter.CrawledAfter)
	}
	if filter.CrawledBefore != nil {
		query += " AND crawled_at < ?"
		args = append(args, *filter.CrawledBefore)
	}

	query += " ORDER BY content_quality_score DESC, crawled_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: get_pages query: %w", err)
	}
	defer rows.Close()

	var out []StoredPage
	for rows.Next() {
		p, err := scanPageRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// SearchPages performs a naive LIKE search across title/description/content,
// for debugging only; production search goes through the search package.
func (r *Repository) SearchPages(substring string, limit int) ([]StoredPage, error) {
	like := "%" + substring + "%"
	query := "SELECT " + pageColumns + ` FROM pages
		WHERE title LIKE ? OR description LIKE ? OR content LIKE ?
		ORDER BY content_quality_score DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := r.db.Query(query, like, like, like)
	if err != nil {
		return nil, fmt.Errorf("storage: search_pages query: %w", err)
	}
	defer rows.Close()

	var out []StoredPage
	for rows.Next() {
		p, err := scanPageRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// LinkEdge is a (source url, target url) pair for LinkGraph construction.
type LinkEdge struct {
	SourceURL string
	TargetURL string
}

// GetAllLinks returns distinct (source.url, target_url) pairs where both
// endpoints exist as StoredPages, for LinkGraph construction.
func (r *Repository) GetAllLinks() ([]LinkEdge, error) {
	rows, err := r.db.Query(`
		SELECT DISTINCT src.url, tgt.url
		FROM links l
		JOIN pages src ON src.id = l.source_page_id
		JOIN pages tgt ON tgt.id = l.target_page_id
		WHERE l.target_page_id IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("storage: get_all_links query: %w", err)
	}
	defer rows.Close()

	var out []LinkEdge
	for rows.Next() {
		var e LinkEdge
		if err := rows.Scan(&e.SourceURL, &e.TargetURL); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// PageRankPair is one (url, rank) update for BatchUpdatePageRank.
type PageRankPair struct {
	URL  string
	Rank float64
}

// BatchUpdatePageRank applies every pair in a single transaction, looked up
// by url_hash.
func (r *Repository) BatchUpdatePageRank(pairs []PageRankPair) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: begin pagerank transaction: %w", err)
	}
	stmt, err := tx.Prepare(`UPDATE pages SET pagerank = ? WHERE url_hash = ?`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("storage: prepare pagerank update: %w", err)
	}
	defer stmt.Close()

	for _, pair := range pairs {
		if _, err := stmt.Exec(pair.Rank, HashString(pair.URL)); err != nil {
			tx.Rollback()
			return fmt.Errorf("storage: update pagerank for %s: %w", pair.URL, err)
		}
	}
	return tx.Commit()
}

// UpdateTFIDFScore applies a single point update by url_hash.
func (r *Repository) UpdateTFIDFScore(urlHash string, value float64) error {
	_, err := r.db.Exec(`UPDATE pages SET tfidf_score = ? WHERE url_hash = ?`, value, urlHash)
	if err != nil {
		return fmt.Errorf("storage: update tfidf score: %w", err)
	}
	return nil
}

// GetDomainInfo returns the aggregate row for domain, consulting the
// in-process cache first when caching is enabled.
func (r *Repository) GetDomainInfo(domain string) (*DomainInfo, error) {
	if r.cacheEnabled {
		if v, ok := r.domainCache.Get(domain); ok {
			d := v.(DomainInfo)
			return &d, nil
		}
	}

	var d DomainInfo
	err := r.db.QueryRow(`SELECT domain, page_count, avg_quality_score, last_crawled, crawl_delay_ms, crawl_allowed FROM domains WHERE domain = ?`, domain).
		Scan(&d.Domain, &d.PageCount, &d.AvgQualityScore, &d.LastCrawled, &d.CrawlDelayMs, &d.CrawlAllowed)
	if err != nil {
		return nil, err
	}

	if r.cacheEnabled {
		r.domainCache.Add(domain, d)
	}
	return &d, nil
}

// SaveCrawlSession inserts or updates a CrawlSession row.
func (r *Repository) SaveCrawlSession(s CrawlSession) error {
	seedURLs := strings.Join(s.SeedURLs, "\n")
	_, err := r.db.Exec(`
		INSERT INTO crawl_sessions (id, seed_urls, config_snapshot, started_at, ended_at, pages_crawled, pages_failed, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			ended_at = excluded.ended_at,
			pages_crawled = excluded.pages_crawled,
			pages_failed = excluded.pages_failed,
			status = excluded.status`,
		s.ID, seedURLs, s.ConfigSnapshot, s.StartedAt, s.EndedAt, s.PagesCrawled, s.PagesFailed, string(s.Status))
	if err != nil {
		return fmt.Errorf("storage: save crawl session: %w", err)
	}
	return nil
}
