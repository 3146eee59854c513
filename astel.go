// Package astel provides a concurrent, breadth-first web crawler engine.
// Given a set of seed URLs it fetches pages, extracts outbound links,
// filters them against a scope policy, and repeats until a configured
// URL-count limit is reached or no reachable work remains.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/); the
// crawl engine itself lives in crawl/.
package astel
