package crawl

import (
	"sync"

	"github.com/astelhq/astel"
)

// Frontier is the shared mutable core of a crawl: a FIFO queue of pending
// URLs plus the set of URLs ever admitted. It is the sole deduplication
// authority and the single point where the global admission limit is
// enforced. Safe for concurrent use by all workers.
//
// Every mutation of the queue, the seen set, and the in-flight count goes
// through TryAdmit/Claim/Release under one mutex; no caller may
// read-then-write around this interface.
type Frontier struct {
	mu       sync.Mutex
	limit    int
	seen     map[string]astel.ParsedURL
	pending  []astel.ParsedURL
	inFlight int
	admitted int
	limitHit bool
}

// NewFrontier creates a Frontier that admits at most limit URLs over its
// lifetime. The limit must be positive.
func NewFrontier(limit int) *Frontier {
	return &Frontier{
		limit: limit,
		seen:  make(map[string]astel.ParsedURL),
	}
}

// TryAdmit admits a URL to the frontier. It returns false without side
// effects when the URL has already been seen or when admitting it would
// exceed the limit. Dedup and the limit are decided together under one
// lock so that racing workers can neither admit the same URL twice nor
// overshoot the ceiling.
func (f *Frontier) TryAdmit(u astel.ParsedURL) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := u.Key()
	if _, ok := f.seen[key]; ok {
		return false
	}
	if f.admitted >= f.limit {
		f.limitHit = true
		return false
	}

	f.seen[key] = u
	f.pending = append(f.pending, u)
	f.admitted++
	return true
}

// Claim removes and returns the head of the pending queue. The bool
// result is false when the queue is momentarily empty; that is not a
// termination signal, see Exhausted. A successful Claim must be paired
// with exactly one Release.
func (f *Frontier) Claim() (astel.ParsedURL, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.pending) == 0 {
		return astel.ParsedURL{}, false
	}
	u := f.pending[0]
	f.pending = f.pending[1:]
	f.inFlight++
	return u, true
}

// Release marks a previously claimed URL as finished, successfully or
// not. Workers call it unconditionally after processing a claim.
func (f *Frontier) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--
}

// Exhausted reports whether the crawl has permanently run out of work:
// the pending queue is empty and no worker holds a claim. An empty queue
// alone is not enough, because in-flight work may still produce links.
func (f *Frontier) Exhausted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending) == 0 && f.inFlight == 0
}

// LimitReached reports whether any admission was refused because of the
// limit. A crawl that drains completely without ever hitting the ceiling
// reports false even when |seen| equals the limit.
func (f *Frontier) LimitReached() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.limitHit
}

// Seen returns a snapshot of every URL ever admitted: pending, in-flight,
// and completed alike.
func (f *Frontier) Seen() []astel.ParsedURL {
	f.mu.Lock()
	defer f.mu.Unlock()

	urls := make([]astel.ParsedURL, 0, len(f.seen))
	for _, u := range f.seen {
		urls = append(urls, u)
	}
	return urls
}

// SeenCount returns the number of URLs ever admitted.
func (f *Frontier) SeenCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seen)
}

// Len returns the number of URLs waiting for a worker.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}
