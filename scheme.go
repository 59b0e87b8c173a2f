package urlnorm

import (
	"regexp"
	"strings"
)

var (
	httpPrefix  = regexp.MustCompile(`(?i)^https?://`)
	protoPrefix = regexp.MustCompile(`(?i)^(https?)://`)
	wwwPrefix   = regexp.MustCompile(`(?i)^(https?://)?www\.(.+)$`)
)

// HTTPLess removes a leading `http://` or `https://`.
//
// The match is case-insensitive, any other string
// is returned as is.
func HTTPLess(uri string) string {
	return httpPrefix.ReplaceAllLiteralString(uri, "")
}

// AddHTTP replaces the scheme of uri with `http://`,
// or `https://` if secure is true.
func AddHTTP(uri string, secure bool) string {
	if secure {
		return "https://" + HTTPLess(uri)
	}
	return "http://" + HTTPLess(uri)
}

// Proto returns the lowercase scheme of uri.
//
// The method returns false if uri does not start
// with `http://` or `https://`.
func Proto(uri string) (string, bool) {
	m := protoPrefix.FindStringSubmatch(uri)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]), true
}

// WWWLess removes a leading `www.` label.
//
// The label is removed right after an `http://` or
// `https://` scheme, or at the start of uri when it
// has no scheme.
func WWWLess(uri string) string {
	return wwwPrefix.ReplaceAllString(uri, "${1}${2}")
}

// AddWWW adds a leading `www.` label.
//
// The scheme is kept, a uri without a scheme
// gets none.
func AddWWW(uri string) string {
	var scheme string

	if proto, ok := Proto(uri); ok {
		scheme = proto + "://"
	}

	return scheme + "www." + HTTPLess(WWWLess(uri))
}

// HTTPLess is a shortcut for HTTPLess.
func (n *Normalizer) HTTPLess(uri string) string {
	return HTTPLess(uri)
}

// AddHTTP is a shortcut for AddHTTP.
func (n *Normalizer) AddHTTP(uri string, secure bool) string {
	return AddHTTP(uri, secure)
}

// Proto is a shortcut for Proto.
func (n *Normalizer) Proto(uri string) (string, bool) {
	return Proto(uri)
}

// WWWLess is a shortcut for WWWLess.
func (n *Normalizer) WWWLess(uri string) string {
	return WWWLess(uri)
}

// AddWWW is a shortcut for AddWWW.
func (n *Normalizer) AddWWW(uri string) string {
	return AddWWW(uri)
}

// Build is a shortcut for Build.
func (n *Normalizer) Build(v interface{}) string {
	return Build(v)
}
