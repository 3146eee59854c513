package astel

import "regexp"

// ScopeFunc decides whether the crawler may visit a candidate URL.
// Scope functions must be pure: same input, same answer, no side effects.
// They are called concurrently from every worker.
type ScopeFunc func(ParsedURL) bool

// And returns a scope that passes only when both s and other pass.
func (s ScopeFunc) And(other ScopeFunc) ScopeFunc {
	return func(u ParsedURL) bool {
		return s(u) && other(u)
	}
}

// Or returns a scope that passes when either s or other passes.
func (s ScopeFunc) Or(other ScopeFunc) ScopeFunc {
	return func(u ParsedURL) bool {
		return s(u) || other(u)
	}
}

// Not returns the inverse of s.
func (s ScopeFunc) Not() ScopeFunc {
	return func(u ParsedURL) bool {
		return !s(u)
	}
}

// DomainScope restricts the crawl to the registered domains of the seed
// URLs. This is the engine's default policy.
func DomainScope(seeds ...ParsedURL) ScopeFunc {
	domains := make(map[string]struct{}, len(seeds))
	for _, s := range seeds {
		domains[s.Domain] = struct{}{}
	}
	return func(u ParsedURL) bool {
		_, ok := domains[u.Domain]
		return ok
	}
}

// HostScope restricts the crawl to the exact hosts of the seed URLs.
// Subdomains of a seed host are out of scope.
func HostScope(seeds ...ParsedURL) ScopeFunc {
	hosts := make(map[string]struct{}, len(seeds))
	for _, s := range seeds {
		hosts[s.Host] = struct{}{}
	}
	return func(u ParsedURL) bool {
		_, ok := hosts[u.Host]
		return ok
	}
}

// AllScope admits every URL. Use with care together with a crawl limit.
func AllScope(ParsedURL) bool {
	return true
}

// MatchScheme passes URLs whose scheme is one of the given schemes.
func MatchScheme(schemes ...string) ScopeFunc {
	set := make(map[string]struct{}, len(schemes))
	for _, s := range schemes {
		set[s] = struct{}{}
	}
	return func(u ParsedURL) bool {
		_, ok := set[u.Scheme]
		return ok
	}
}

// MatchDomain passes URLs whose registered domain is one of the given
// domains.
func MatchDomain(domains ...string) ScopeFunc {
	set := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		set[d] = struct{}{}
	}
	return func(u ParsedURL) bool {
		_, ok := set[u.Domain]
		return ok
	}
}

// MatchHost passes URLs whose host is one of the given hosts.
func MatchHost(hosts ...string) ScopeFunc {
	set := make(map[string]struct{}, len(hosts))
	for _, h := range hosts {
		set[h] = struct{}{}
	}
	return func(u ParsedURL) bool {
		_, ok := set[u.Host]
		return ok
	}
}

// PathPrefix passes URLs whose path starts with the given prefix.
func PathPrefix(prefix string) ScopeFunc {
	return func(u ParsedURL) bool {
		return len(u.Path) >= len(prefix) && u.Path[:len(prefix)] == prefix
	}
}

// PathSuffix passes URLs whose path ends with the given suffix, e.g.
// ".html". An empty suffix passes everything.
func PathSuffix(suffix string) ScopeFunc {
	return func(u ParsedURL) bool {
		return len(u.Path) >= len(suffix) && u.Path[len(u.Path)-len(suffix):] == suffix
	}
}

// MatchPattern passes URLs whose canonical string form matches re.
func MatchPattern(re *regexp.Regexp) ScopeFunc {
	return func(u ParsedURL) bool {
		return re.MatchString(u.Key())
	}
}
