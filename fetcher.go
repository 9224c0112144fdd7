package crawler

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/shreyas-bk24/anvesha-crawler/internal/dnscache"
	"github.com/shreyas-bk24/anvesha-crawler/logging"
)

// acceptedContentTypePrefixes restricts what the fetcher will decode.
var acceptedContentTypePrefixes = []string{"text/html", "application/xhtml+xml", "text/plain"}

// HttpResponse is the validated result of one fetch.
type HttpResponse struct {
	URL           string
	FinalURL      string
	StatusCode    int
	Headers       http.Header
	Content       string
	ContentType   string
	ContentLength int64
	EncodingName  string
	FetchTimeMs   int64
	RedirectCount int
}

// Fetcher issues a single HTTP GET per call and validates the result: a
// shared *http.Client with a DNS-caching dialer, round-robin user agents,
// and explicit redirect/size/content-type gates. Fetch is stateless and
// driven by the Scheduler, which owns concurrency and retry policy.
type Fetcher struct {
	client *http.Client

	userAgents []string
	uaIndex    uint64

	maxRedirects    int
	maxContentSize  int64
	requestTimeout  time.Duration
}

// NewFetcher builds a Fetcher whose transport dials through a DNS-caching
// resolver, avoiding a fresh lookup on every request to the same host.
// dnsCacheEntries and dnsCacheTTL size and age out that resolver's cache.
func NewFetcher(userAgents []string, maxRedirects int, maxContentSize int64, requestTimeout, connectTimeout time.Duration, dnsCacheEntries int, dnsCacheTTL time.Duration) (*Fetcher, error) {
	if len(userAgents) == 0 {
		userAgents = []string{"anvesha-crawler/1.0"}
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		Dial: (&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 30 * time.Second,
		}).Dial,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	cachingDial, err := dnscache.Dial(transport.Dial, dnsCacheEntries, dnsCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("fetcher: failed to build dns-caching dialer: %w", err)
	}
	transport.Dial = cachingDial

	f := &Fetcher{
		userAgents:     userAgents,
		maxRedirects:   maxRedirects,
		maxContentSize: maxContentSize,
		requestTimeout: requestTimeout,
	}

	f.client = &http.Client{
		Transport: transport,
		Timeout:   requestTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= f.maxRedirects {
				return &ErrTooManyRedirects{Count: len(via), Limit: f.maxRedirects}
			}
			return nil
		},
	}

	return f, nil
}

// nextUserAgent rotates user agents round-robin across concurrent callers.
func (f *Fetcher) nextUserAgent() string {
	i := atomic.AddUint64(&f.uaIndex, 1) - 1
	return f.userAgents[int(i%uint64(len(f.userAgents)))]
}

// Fetch performs one HTTP GET against rawURL, applying the scheme, content-
// type, status, and size gates before returning a decoded response.
func (f *Fetcher) Fetch(rawURL string) (*HttpResponse, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, &ErrInvalidURL{URL: rawURL}
	}

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &ErrInvalidURL{URL: rawURL}
	}

	ua := f.nextUserAgent()
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	start := time.Now()
	res, err := f.client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		if tmerr, ok := err.(interface{ Timeout() bool }); ok && tmerr.Timeout() {
			logging.Debug("fetch timed out", "url", rawURL, "elapsed_ms", elapsed.Milliseconds())
			return nil, &ErrTimeout{URL: rawURL}
		}
		if redirErr, ok := asRedirectLimit(err); ok {
			return nil, redirErr
		}
		logging.Debug("fetch connection error", "url", rawURL, "error", err.Error())
		return nil, &ErrConnection{Inner: err}
	}
	defer res.Body.Close()

	redirectCount := 0
	finalURL := rawURL
	if res.Request != nil && res.Request.URL != nil {
		finalURL = res.Request.URL.String()
	}
	if finalURL != rawURL {
		redirectCount = 1 // the Go client does not expose the exact hop count post-request
	}

	contentType := res.Header.Get("Content-Type")
	if !acceptedContentType(contentType) {
		return nil, &ErrUnsupportedContentType{ContentType: contentType}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &ErrHTTP{Status: res.StatusCode, Message: res.Status}
	}

	limited := io.LimitReader(res.Body, f.maxContentSize+1)
	raw, err := io.ReadAll(limited)
	if err != nil {
		return nil, &ErrConnection{Inner: err}
	}
	if int64(len(raw)) > f.maxContentSize {
		return nil, &ErrContentTooLarge{Size: int64(len(raw)), Limit: f.maxContentSize}
	}

	text, encodingName, err := decodeBody(raw, contentType)
	if err != nil {
		return nil, &ErrConnection{Inner: err}
	}

	return &HttpResponse{
		URL:           rawURL,
		FinalURL:      finalURL,
		StatusCode:    res.StatusCode,
		Headers:       res.Header,
		Content:       text,
		ContentType:   contentType,
		ContentLength: int64(len(raw)),
		EncodingName:  encodingName,
		FetchTimeMs:   elapsed.Milliseconds(),
		RedirectCount: redirectCount,
	}, nil
}

func acceptedContentType(contentType string) bool {
	ct := strings.ToLower(contentType)
	for _, prefix := range acceptedContentTypePrefixes {
		if strings.HasPrefix(ct, prefix) {
			return true
		}
	}
	return false
}

// asRedirectLimit unwraps a *url.Error raised by CheckRedirect back into our
// *ErrTooManyRedirects.
func asRedirectLimit(err error) (*ErrTooManyRedirects, bool) {
	if ue, ok := err.(*url.Error); ok {
		if rl, ok := ue.Err.(*ErrTooManyRedirects); ok {
			return rl, true
		}
	}
	return nil, false
}

// decodeBody decodes raw bytes to text, delegating charset detection to
// x/net/html/charset.NewReader: a BOM is checked first, then the
// Content-Type charset parameter, then a <meta> prescan of the first 1024
// bytes, with a UTF-8 or windows-1252 fallback. The returned name is the
// Content-Type charset parameter when present and "utf-8" otherwise; an
// encoding found through a BOM or <meta> is not reported in the name.
func decodeBody(raw []byte, contentType string) (string, string, error) {
	reader, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return "", "utf-8", err
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", "utf-8", err
	}

	name := "utf-8"
	if _, params, perr := mime.ParseMediaType(contentType); perr == nil {
		if cs, ok := params["charset"]; ok {
			name = strings.ToLower(cs)
		}
	}
	return string(decoded), name, nil
}
