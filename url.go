package astel

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// ParsedURL is the normalized identity of a URL. It is used both as the
// deduplication key for the crawl frontier and as the unit scope policies
// reason about. Treat values as immutable once constructed.
type ParsedURL struct {
	// Scheme is "http" or "https", lowercased.
	Scheme string

	// Domain is the registered domain (eTLD+1) of the host, e.g.
	// "example.co.uk" for "docs.example.co.uk". Falls back to the host
	// itself when no public suffix can be derived (IPs, localhost,
	// private TLDs used in tests).
	Domain string

	// Host is the lowercased host with any default port stripped.
	Host string

	// Path is the URL path with insignificant formatting removed:
	// empty paths become "/" and non-root trailing slashes are trimmed.
	Path string

	// RawQuery is the query string without the leading "?".
	RawQuery string
}

// ParseURL parses and normalizes a raw URL string.
// It returns an EINVALID error for relative, non-http(s), or otherwise
// malformed input. Such input must be dropped by callers, never enqueued.
func ParseURL(raw string) (ParsedURL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ParsedURL{}, Errorf(EINVALID, "malformed URL %q: %v", raw, err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return ParsedURL{}, Errorf(EINVALID, "unsupported URL scheme %q in %q", u.Scheme, raw)
	}
	if u.Host == "" {
		return ParsedURL{}, Errorf(EINVALID, "URL %q has no host", raw)
	}

	host := strings.ToLower(u.Host)
	if scheme == "http" {
		host = strings.TrimSuffix(host, ":80")
	} else {
		host = strings.TrimSuffix(host, ":443")
	}

	// Fragments never change the fetched content and trailing slashes
	// are insignificant for identity, so both are dropped here. Two URLs
	// that differ only in those must normalize to the same Key.
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	} else if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}

	hostname := host
	if i := strings.LastIndex(host, ":"); i != -1 && !strings.HasPrefix(host, "[") {
		hostname = host[:i]
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(hostname)
	if err != nil {
		domain = hostname
	}

	return ParsedURL{
		Scheme:   scheme,
		Domain:   domain,
		Host:     host,
		Path:     path,
		RawQuery: u.RawQuery,
	}, nil
}

// Key returns the canonical string form used for deduplication.
func (u ParsedURL) Key() string {
	var sb strings.Builder
	sb.WriteString(u.Scheme)
	sb.WriteString("://")
	sb.WriteString(u.Host)
	sb.WriteString(u.Path)
	if u.RawQuery != "" {
		sb.WriteString("?")
		sb.WriteString(u.RawQuery)
	}
	return sb.String()
}

// String renders the URL in fetchable form. Identical to Key.
func (u ParsedURL) String() string {
	return u.Key()
}

// IsZero reports whether the URL is the zero value.
func (u ParsedURL) IsZero() bool {
	return u == ParsedURL{}
}
