// Package goquery provides a goquery-based implementation of
// astel.LinkExtractor.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/astelhq/astel"
)

var _ astel.LinkExtractor = (*Extractor)(nil)

// Extractor extracts anchor links from HTML pages.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractLinks parses the HTML body and returns the absolute form of
// every anchor href, resolved against baseURL. Non-navigational targets
// (javascript:, mailto:, tel:, data:, fragment-only) are skipped.
// Results preserve document order and are deduplicated within the page;
// cross-page dedup is the frontier's job.
func (e *Extractor) ExtractLinks(body string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, astel.Errorf(astel.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, astel.Errorf(astel.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || isNonNavigational(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}

		abs := resolved.String()
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
	})

	return links, nil
}

// isNonNavigational reports whether an href can never lead to a
// fetchable page.
func isNonNavigational(href string) bool {
	if strings.HasPrefix(href, "#") {
		return true
	}
	lower := strings.ToLower(href)
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:", "ftp:", "file:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
