package main_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	main "github.com/astelhq/astel/cmd/astel"
)

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	for _, cmd := range []string{"crawl", "runs", "show"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
	assert.Contains(t, helpOutput, "Usage:")
}

func TestMain_Run_NoArgsIsAnError(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_RunsWithEmptyDatabase(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"runs"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "No saved crawls")
}

func TestMain_Run_ShowUnknownID(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	err := m.Run(context.Background(), []string{"show", "no-such-id"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
}

func TestMain_Run_CrawlSaveAndList(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	page := func(path, body string) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, body)
		})
	}
	page("/", `<a href="/a">a</a> <a href="/b">b</a>`)
	page("/a", `<a href="/">home</a>`)
	page("/b", `no links here`)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	// Crawl the whole site and save the report.
	m := main.NewMain()
	m.DBPath = dbPath

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"crawl", srv.URL, "--save"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, srv.URL+"/")
	assert.Contains(t, output, srv.URL+"/a")
	assert.Contains(t, output, srv.URL+"/b")
	assert.Contains(t, output, "3 crawled, 0 failed, 3 seen (exhausted")
	assert.Contains(t, output, "Saved crawl ")

	id := regexp.MustCompile(`Saved crawl (\S+)`).FindStringSubmatch(output)[1]

	// The saved report shows up in the listing.
	m2 := main.NewMain()
	m2.DBPath = dbPath

	stdout2 := &bytes.Buffer{}
	err = m2.Run(context.Background(), []string{"runs"}, stdout2, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout2.String(), id)
	assert.Contains(t, stdout2.String(), "seen=3 crawled=3 failed=0")

	// And its per-URL rows survive round-tripping.
	m3 := main.NewMain()
	m3.DBPath = dbPath

	stdout3 := &bytes.Buffer{}
	err = m3.Run(context.Background(), []string{"show", id}, stdout3, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Contains(t, stdout3.String(), srv.URL+"/a")
	assert.Contains(t, stdout3.String(), "200")
}

func TestMain_Run_CrawlLimitStopsEarly(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		for i := 0; i < 10; i++ {
			fmt.Fprintf(w, `<a href="/page/%d">p</a>`, i)
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"crawl", srv.URL, "-l", "3"}, stdout, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "3 seen (limit")
}
