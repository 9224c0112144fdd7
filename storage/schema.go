package storage

// schemaSQL defines the relational schema: domains, pages, links, and
// crawl_sessions, with the indexes the query layer relies on. Kept as a
// single DDL string applied idempotently at startup via
// `CREATE TABLE IF NOT EXISTS` statements.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS domains (
	domain            TEXT PRIMARY KEY,
	page_count        INTEGER NOT NULL DEFAULT 0,
	avg_quality_score REAL NOT NULL DEFAULT 0,
	last_crawled      DATETIME,
	crawl_delay_ms    INTEGER NOT NULL DEFAULT 0,
	crawl_allowed     INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS pages (
	id                    INTEGER PRIMARY KEY AUTOINCREMENT,
	url                   TEXT NOT NULL,
	url_hash              TEXT NOT NULL UNIQUE,
	content_hash          TEXT NOT NULL,
	domain                TEXT NOT NULL,
	language              TEXT NOT NULL DEFAULT 'en',
	title                 TEXT,
	description           TEXT,
	keywords              TEXT,
	content               TEXT NOT NULL DEFAULT '',
	word_count            INTEGER NOT NULL DEFAULT 0,
	content_quality_score REAL NOT NULL DEFAULT 0,
	status_code           INTEGER NOT NULL DEFAULT 0,
	content_type          TEXT,
	content_length        INTEGER NOT NULL DEFAULT 0,
	pagerank              REAL,
	tfidf_score           REAL,
	last_modified         DATETIME,
	crawled_at            DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS links (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	source_page_id   INTEGER NOT NULL REFERENCES pages(id),
	target_url       TEXT NOT NULL,
	target_page_id   INTEGER REFERENCES pages(id),
	anchor_text      TEXT,
	link_position    INTEGER NOT NULL DEFAULT 0,
	UNIQUE(source_page_id, target_url)
);

CREATE TABLE IF NOT EXISTS crawl_sessions (
	id              TEXT PRIMARY KEY,
	seed_urls       TEXT NOT NULL,
	config_snapshot TEXT NOT NULL DEFAULT '',
	started_at      DATETIME NOT NULL,
	ended_at        DATETIME,
	pages_crawled   INTEGER NOT NULL DEFAULT 0,
	pages_failed    INTEGER NOT NULL DEFAULT 0,
	status          TEXT NOT NULL DEFAULT 'running'
);

CREATE INDEX IF NOT EXISTS idx_pages_domain            ON pages(domain);
CREATE INDEX IF NOT EXISTS idx_pages_url_hash          ON pages(url_hash);
CREATE INDEX IF NOT EXISTS idx_pages_content_hash      ON pages(content_hash);
CREATE INDEX IF NOT EXISTS idx_pages_quality_score     ON pages(content_quality_score DESC);
CREATE INDEX IF NOT EXISTS idx_pages_pagerank          ON pages(pagerank DESC);
CREATE INDEX IF NOT EXISTS idx_links_source_page_id    ON links(source_page_id);
CREATE INDEX IF NOT EXISTS idx_links_target_url        ON links(target_url);
`
