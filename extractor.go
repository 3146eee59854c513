package astel

// LinkExtractor extracts outbound links from page content.
type LinkExtractor interface {
	// ExtractLinks parses the page body and returns absolute URL
	// strings, with relative references resolved against baseURL.
	// Returned strings are not yet normalized or scope-checked; the
	// engine does both before admitting them to the frontier.
	ExtractLinks(body string, baseURL string) ([]string, error)
}
