package astel

import "context"

// SitemapService discovers crawlable URLs from a site's sitemap.
// Discovered URLs are candidate seeds; they still pass through the
// frontier's normalization, scope check, and dedup like any other URL.
type SitemapService interface {
	// DiscoverURLs finds URLs listed in the sitemap for baseURL,
	// following nested sitemap index files. Returns an empty slice
	// (not nil) when the site has no sitemap.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
