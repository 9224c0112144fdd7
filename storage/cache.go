package storage

// InvalidateDomainCache drops domain's cached DomainInfo, used by callers
// that mutate the domains table outside of SavePage (original_source
// supplement — cache layer, SPEC_FULL.md §4).
func (r *Repository) InvalidateDomainCache(domain string) {
	if r.cacheEnabled {
		r.domainCache.Remove(domain)
	}
}

// CachedPageID returns a previously cached page id for urlHash, if caching
// is enabled and the entry is present.
func (r *Repository) CachedPageID(urlHash string) (int64, bool) {
	if !r.cacheEnabled {
		return 0, false
	}
	v, ok := r.pageIDCache.Get(urlHash)
	if !ok {
		return 0, false
	}
	return v.(int64), true
}
