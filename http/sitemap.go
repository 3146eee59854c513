package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"

	"github.com/astelhq/astel"
	"github.com/astelhq/astel/bloom"
)

// Sitemap discovery limits. Nested index files are followed to a fixed
// depth; the Bloom filter keeps revisits and cross-file duplicates out
// without holding every URL string in a map.
const (
	maxSitemapDepth     = 3
	sitemapExpectedURLs = 50000
	sitemapFPRate       = 0.01
)

var _ astel.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from the conventional /sitemap.xml
// location, recursing through sitemap index files.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP
// client. If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs finds all URLs from the site's sitemap. A site without a
// sitemap yields an empty slice, not an error.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, astel.Errorf(astel.EINVALID, "invalid base URL: %v", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, astel.Errorf(astel.EINVALID, "base URL %q must be absolute", baseURL)
	}

	sitemapURL := fmt.Sprintf("%s://%s/sitemap.xml", base.Scheme, base.Host)

	seenSitemaps := bloom.NewFilter(1000, sitemapFPRate)
	seenURLs := bloom.NewFilter(sitemapExpectedURLs, sitemapFPRate)

	urls := []string{}
	if err := s.walkSitemap(ctx, sitemapURL, 0, seenSitemaps, seenURLs, &urls); err != nil {
		return nil, err
	}
	return urls, nil
}

// walkSitemap fetches one sitemap document and either collects its URLs
// (urlset) or recurses into its children (sitemapindex).
func (s *SitemapService) walkSitemap(ctx context.Context, sitemapURL string, depth int, seenSitemaps, seenURLs *bloom.Filter, urls *[]string) error {
	if depth > maxSitemapDepth {
		return nil
	}
	if seenSitemaps.TestAndAdd(sitemapURL) {
		return nil
	}

	body, status, err := s.get(ctx, sitemapURL)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound || status == http.StatusForbidden {
		// No sitemap is not an error.
		return nil
	}
	if status != http.StatusOK {
		return fmt.Errorf("HTTP %d for %s", status, sitemapURL)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return astel.Errorf(astel.EINVALID, "unparsable sitemap %s: %v", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil
	}

	switch root.Tag {
	case "sitemapindex":
		for _, sm := range root.SelectElements("sitemap") {
			loc := sm.SelectElement("loc")
			if loc == nil {
				continue
			}
			if err := s.walkSitemap(ctx, textOf(loc), depth+1, seenSitemaps, seenURLs, urls); err != nil {
				return err
			}
		}
	case "urlset":
		for _, u := range root.SelectElements("url") {
			loc := u.SelectElement("loc")
			if loc == nil {
				continue
			}
			pageURL := textOf(loc)
			if pageURL == "" || seenURLs.TestAndAdd(pageURL) {
				continue
			}
			*urls = append(*urls, pageURL)
		}
	}

	return nil
}

func (s *SitemapService) get(ctx context.Context, rawURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, DefaultMaxBodySize))
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

func textOf(e *etree.Element) string {
	return strings.TrimSpace(e.Text())
}
