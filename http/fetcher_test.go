package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	astelhttp "github.com/astelhq/astel/http"
)

func TestFetcher_Fetch_returns_result(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	f := astelhttp.NewFetcher()
	defer f.Close()

	res, err := f.Fetch(context.Background(), srv.URL+"/page")
	require.NoError(t, err)

	assert.Equal(t, 200, res.StatusCode)
	assert.Equal(t, "text/html", res.Header.Get("Content-Type"))
	assert.Contains(t, string(res.Body), "hello")
	assert.Equal(t, srv.URL+"/page", res.URL)
}

func TestFetcher_Fetch_sends_user_agent(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	f := astelhttp.NewFetcher(astelhttp.WithUserAgent("astel-test/1.0"))
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "astel-test/1.0", gotUA)
}

func TestFetcher_Fetch_non_2xx_is_an_error(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := astelhttp.NewFetcher()
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestFetcher_Fetch_follows_redirects(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("moved here"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	f := astelhttp.NewFetcher()
	defer f.Close()

	res, err := f.Fetch(context.Background(), srv.URL+"/old")
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/new", res.URL, "result reports the final URL")
	assert.Equal(t, "moved here", string(res.Body))
}

func TestFetcher_Fetch_caps_body_size(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 4096))
	}))
	defer srv.Close()

	f := astelhttp.NewFetcher(astelhttp.WithMaxBodySize(1024))
	defer f.Close()

	res, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Len(t, res.Body, 1024)
}

func TestFetcher_Fetch_respects_context_cancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	f := astelhttp.NewFetcher()
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := f.Fetch(ctx, srv.URL)
	assert.Error(t, err)
}
