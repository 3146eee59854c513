package astel_test

import (
	"testing"

	"github.com/astelhq/astel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURL_normalizes_components(t *testing.T) {
	t.Parallel()

	u, err := astel.ParseURL("HTTPS://Docs.Example.COM:443/Guide/?q=1#section")
	require.NoError(t, err)

	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "docs.example.com", u.Host)
	assert.Equal(t, "example.com", u.Domain)
	assert.Equal(t, "/Guide", u.Path)
	assert.Equal(t, "q=1", u.RawQuery)
	assert.Equal(t, "https://docs.example.com/Guide?q=1", u.Key())
}

func TestParseURL_fragment_and_trailing_slash_share_key(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b string
	}{
		{"fragment only", "https://a.test/page", "https://a.test/page#top"},
		{"trailing slash", "https://a.test/page", "https://a.test/page/"},
		{"empty vs root path", "http://a.test", "http://a.test/"},
		{"default port http", "http://a.test/", "http://a.test:80/"},
		{"default port https", "https://a.test/", "https://a.test:443/"},
		{"case of host", "https://A.TEST/page", "https://a.test/page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ua, err := astel.ParseURL(tt.a)
			require.NoError(t, err)
			ub, err := astel.ParseURL(tt.b)
			require.NoError(t, err)

			assert.Equal(t, ua.Key(), ub.Key())
		})
	}
}

func TestParseURL_rejects_malformed_input(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
	}{
		{"relative path", "/docs/page"},
		{"no scheme", "example.com/page"},
		{"mailto", "mailto:someone@example.com"},
		{"javascript", "javascript:void(0)"},
		{"empty", ""},
		{"control character", "https://a.test/\x7f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := astel.ParseURL(tt.raw)
			require.Error(t, err)
			assert.Equal(t, astel.EINVALID, astel.ErrorCode(err))
		})
	}
}

func TestParseURL_registered_domain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"https://docs.example.com/", "example.com"},
		{"https://a.b.example.co.uk/", "example.co.uk"},
		{"https://a.test/", "a.test"},
		{"http://localhost:8080/", "localhost"},
	}

	for _, tt := range tests {
		u, err := astel.ParseURL(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, u.Domain, tt.raw)
	}
}

func TestParsedURL_non_default_port_preserved(t *testing.T) {
	t.Parallel()

	u, err := astel.ParseURL("http://a.test:8080/page")
	require.NoError(t, err)

	assert.Equal(t, "a.test:8080", u.Host)
	assert.Equal(t, "http://a.test:8080/page", u.String())
}

func TestParsedURL_IsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, astel.ParsedURL{}.IsZero())

	u, err := astel.ParseURL("https://a.test/")
	require.NoError(t, err)
	assert.False(t, u.IsZero())
}
