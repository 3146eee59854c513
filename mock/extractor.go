package mock

import "github.com/astelhq/astel"

var _ astel.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of astel.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(body string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(body string, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(body, baseURL)
}
