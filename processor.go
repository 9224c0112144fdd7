package crawler

import (
	"net/url"
	"path"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// PageData is a processed fetch result, pre-storage.
type PageData struct {
	URL                string
	Title              *string
	Description        *string
	Keywords           []string
	Content            string
	OutgoingLinks      []CrawlURL
	WordCount          int
	ContentQualityScore float64
	CrawledAt          time.Time
	Depth              int
}

// maxLinksPerPage caps how many outgoing links the Processor records.
const maxLinksPerPage = 1000

// ignoredLinkExtensions are stripped from the last path segment and used to
// drop binary-asset links.
var ignoredLinkExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "pdf": true,
	"doc": true, "docx": true, "zip": true, "tar": true, "gz": true,
	"mp3": true, "mp4": true, "avi": true,
}

// contentTags is the union of element names whose text nodes contribute to
// the extracted body.
var contentTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"article": true, "main": true, "section": true, "div": true,
}

// Processor transforms fetched HTML into PageData using a streaming
// golang.org/x/net/html.Tokenizer pass rather than a selector library,
// extracting title/description/keywords/body text/links and scoring
// content quality in a single walk of the document.
type Processor struct {
	priorityBoostDomains []string
}

// NewProcessor builds a Processor. priorityBoostDomains are host substrings
// that double a discovered link's priority.
func NewProcessor(priorityBoostDomains []string) *Processor {
	return &Processor{priorityBoostDomains: priorityBoostDomains}
}

// Process extracts a PageData from raw HTML content fetched from pageURL at
// the given depth.
func (p *Processor) Process(pageURL string, depth int, content string) (PageData, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return PageData{}, &ErrInvalidBaseURL{URL: pageURL}
	}

	ext := extraction{}
	tokenizeDocument(content, &ext)

	links := p.resolveLinks(base, depth, ext.rawLinks)

	text := strings.Join(ext.textSegments, " ")
	wordCount := len(strings.Fields(text))
	quality := qualityScore(text, wordCount, ext.title != "")

	pd := PageData{
		URL:                 pageURL,
		Keywords:            ext.keywords,
		Content:             text,
		OutgoingLinks:       links,
		WordCount:           wordCount,
		ContentQualityScore: quality,
		CrawledAt:           time.Now().UTC(),
		Depth:               depth,
	}
	if ext.title != "" {
		t := ext.title
		pd.Title = &t
	}
	if ext.description != "" {
		d := ext.description
		pd.Description = &d
	}
	return pd, nil
}

// extraction accumulates state while walking the token stream.
type extraction struct {
	title        string
	description  string
	keywords     []string
	textSegments []string
	rawLinks     []string
}

// tokenizeDocument walks the HTML token stream once, extracting title,
// meta description/keywords, block text, and raw href attributes.
func tokenizeDocument(content string, ext *extraction) {
	tokenizer := html.NewTokenizer(strings.NewReader(content))

	var tagStack []string
	inTitle := false

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return

		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tokenizer.TagName()
			tag := string(name)

			switch tag {
			case "title":
				inTitle = ext.title == ""
			case "meta":
				if hasAttr {
					handleMeta(tokenizer, ext)
				}
			case "a":
				if hasAttr {
					if href, ok := tagAttr(tokenizer, "href"); ok {
						ext.rawLinks = append(ext.rawLinks, href)
					}
				}
			}

			if tt == html.StartTagToken && !isVoidElement(tag) {
				tagStack = append(tagStack, tag)
			}

		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			tag := string(name)
			if tag == "title" {
				inTitle = false
			}
			tagStack = popTag(tagStack, tag)

		case html.TextToken:
			text := strings.TrimSpace(string(tokenizer.Text()))
			if text == "" {
				continue
			}
			if inTitle {
				ext.title = text
				continue
			}
			if len(tagStack) > 0 && contentTags[tagStack[len(tagStack)-1]] && len(text) >= 11 {
				ext.textSegments = append(ext.textSegments, text)
			}
		}
	}
}

func isVoidElement(tag string) bool {
	switch tag {
	case "meta", "link", "br", "img", "input", "hr", "area", "base", "col", "embed", "source", "track", "wbr":
		return true
	}
	return false
}

func popTag(stack []string, tag string) []string {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == tag {
			return stack[:i]
		}
	}
	return stack
}

func tagAttr(tokenizer *html.Tokenizer, want string) (string, bool) {
	for {
		key, val, more := tokenizer.TagAttr()
		if string(key) == want {
			return string(val), true
		}
		if !more {
			return "", false
		}
	}
}

func handleMeta(tokenizer *html.Tokenizer, ext *extraction) {
	var name, content string
	for {
		key, val, more := tokenizer.TagAttr()
		switch string(key) {
		case "name":
			name = strings.ToLower(string(val))
		case "content":
			content = string(val)
		}
		if !more {
			break
		}
	}
	switch name {
	case "description":
		ext.description = strings.TrimSpace(content)
	case "keywords":
		for _, kw := range strings.Split(content, ",") {
			kw = strings.TrimSpace(kw)
			if kw != "" {
				ext.keywords = append(ext.keywords, kw)
			}
		}
	}
}

// resolveLinks converts raw href strings into prioritized CrawlURLs,
// skipping non-HTTP schemes and binary-asset extensions and boosting
// priority for configured domains and article-shaped paths.
func (p *Processor) resolveLinks(base *url.URL, depth int, raw []string) []CrawlURL {
	var out []CrawlURL
	for _, href := range raw {
		if len(out) >= maxLinksPerPage {
			break
		}
		href = strings.TrimSpace(href)
		if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "javascript:") {
			continue
		}

		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		resolved := base.ResolveReference(ref)

		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			continue
		}

		if ext := linkExtension(resolved.Path); ignoredLinkExtensions[ext] {
			continue
		}

		priority := 1.0 / float64(depth+1+1)
		host := strings.ToLower(resolved.Host)
		for _, boost := range p.priorityBoostDomains {
			if strings.Contains(host, strings.ToLower(boost)) {
				priority *= 2.0
				break
			}
		}
		lowerPath := strings.ToLower(resolved.Path)
		if strings.Contains(lowerPath, "/article/") || strings.Contains(lowerPath, "/post/") || strings.Contains(lowerPath, "/blog/") {
			priority *= 1.5
		}

		norm := resolved.String()
		out = append(out, NewCrawlURL(norm, priority, depth+1))
	}
	return out
}

// linkExtension returns the lowercased file extension (without the dot) of
// the last path segment, or "" if none.
func linkExtension(p string) string {
	base := path.Base(p)
	idx := strings.LastIndex(base, ".")
	if idx < 0 || idx == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[idx+1:])
}

// qualityScore combines length, title presence, and lexical diversity into
// a 0..1 content quality heuristic.
func qualityScore(text string, wordCount int, hasTitle bool) float64 {
	length := lengthScore(wordCount)
	title := 0.0
	if hasTitle {
		title = 1.0
	}
	diversity := diversityScore(text, wordCount)

	score := 0.4*length + 0.2*title + 0.4*diversity
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func lengthScore(wordCount int) float64 {
	switch {
	case wordCount <= 50:
		return 0.1
	case wordCount <= 200:
		return 0.5
	case wordCount <= 500:
		return 0.8
	case wordCount <= 2000:
		return 1.0
	case wordCount <= 5000:
		return 0.9
	default:
		return 0.7
	}
}

func diversityScore(text string, wordCount int) float64 {
	if wordCount == 0 {
		return 0
	}
	unique := map[string]bool{}
	for _, tok := range strings.Fields(text) {
		unique[strings.ToLower(tok)] = true
	}
	score := float64(len(unique)) / float64(wordCount)
	if score > 1.0 {
		score = 1.0
	}
	return score
}

