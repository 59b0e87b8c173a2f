package urlnorm

import (
	"fmt"
	"regexp"

	"github.com/tidwall/match"
	"github.com/yields/urlnorm/internal/hostcache"
)

// Matcher represents a URL matcher.
type Matcher interface {
	// Match returns true if the URL matches.
	Match(uri string) bool
}

// MatcherFunc implements a Matcher.
type MatcherFunc func(uri string) bool

// Match implementation.
func (mf MatcherFunc) Match(uri string) bool {
	return mf(uri)
}

// MatchRegexp returns a new regexp matcher.
//
// The matcher returns true for all URLs that match
// the provided regular expression.
func MatchRegexp(expr string) MatcherFunc {
	re, err := regexp.Compile(expr)
	if err != nil {
		panic(fmt.Sprintf("urlnorm: match regexp %q - %s", expr, err))
	}

	return func(uri string) bool {
		return re.MatchString(uri)
	}
}

// MatchPattern returns a new glob matcher.
//
// The matcher returns true for all URLs that match
// the pattern, `*` matches any sequence of characters
// and `?` matches a single character.
func MatchPattern(pattern string) MatcherFunc {
	return func(uri string) bool {
		return match.Match(uri, pattern)
	}
}

// MatchHost returns a new host matcher.
//
// The matcher returns true for all valid URLs that have
// the same host as the provided URL or hostname, with the
// semantics of IsSameHost. Hostnames of matched URLs are
// kept in an LRU.
//
// The method panics if host is not valid.
func (n *Normalizer) MatchHost(host string, keepWWW bool) MatcherFunc {
	var opts = HostOptions{
		Decode:  true,
		KeepWWW: keepWWW,
	}

	want, err := n.Hostname(host, opts)
	if err != nil {
		panic(fmt.Sprintf("urlnorm: match host %q - %s", host, err))
	}

	var cache = hostcache.New(1024)
	var lookup = func(uri string) (string, error) {
		return n.Hostname(uri, opts)
	}

	return func(uri string) bool {
		got, ok := cache.Lookup(uri, lookup)
		return ok && got == want
	}
}
