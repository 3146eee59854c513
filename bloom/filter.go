// Package bloom provides probabilistic URL deduplication. The crawl
// frontier keeps its own exact seen set; this filter serves discovery
// paths (sitemap walking) where a false positive merely skips a URL.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter keyed by URL strings.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add records a URL in the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether the URL may have been added before. False
// positives are possible, false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// TestAndAdd records the URL and reports whether it may have been added
// before, in one pass over the filter.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}

// ApproxCount returns the approximate number of URLs added.
func (f *Filter) ApproxCount() uint {
	return uint(f.f.ApproximatedSize())
}
