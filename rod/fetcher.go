package rod

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-rod/rod/lib/proto"

	"github.com/astelhq/astel"
)

// Ensure Fetcher implements astel.Fetcher at compile time.
var _ astel.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered pages using Chrome browser automation. Use
// it instead of the plain HTTP fetcher when a site builds its links
// with JavaScript. Fetcher is safe for concurrent use by multiple
// goroutines.
type Fetcher struct {
	manager *BrowserManager
}

// NewFetcher launches a headless Chrome browser behind a
// BrowserManager. Close must be called when the Fetcher is no longer
// needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...ManagerOption) (*Fetcher, error) {
	manager, err := NewBrowserManager(opts...)
	if err != nil {
		return nil, err
	}
	return &Fetcher{manager: manager}, nil
}

// Fetch navigates to the URL, waits for the page to load, and returns
// the rendered document. The status code and headers come from the
// navigation response; a non-2xx status is an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*astel.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()

	page = page.Context(ctx)

	// The first response received after navigation is the document
	// response.
	var ev proto.NetworkResponseReceived
	wait := page.WaitEvent(&ev)

	if err := page.Navigate(url); err != nil {
		return nil, err
	}
	wait()

	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	status := 200
	header := http.Header{}
	if ev.Response != nil {
		status = ev.Response.Status
		header = headersOf(ev.Response.Headers)
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("HTTP %d for %s", status, url)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, err
	}

	finalURL := url
	if info, err := page.Info(); err == nil {
		finalURL = info.URL
	}

	f.manager.IncrementPageCount()

	return &astel.FetchResult{
		URL:        finalURL,
		StatusCode: status,
		Header:     header,
		Body:       []byte(html),
	}, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

func headersOf(h proto.NetworkHeaders) http.Header {
	out := http.Header{}
	for k, v := range h {
		out.Set(k, v.Str())
	}
	return out
}
