// Package parse splits raw URLs into their named components.
package parse

import (
	"net"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
)

// Components represents the named parts of a URL.
//
// An empty field means the part is not present.
type Components struct {
	// Protocol is the scheme with its trailing colon, "http:".
	Protocol string

	// Auth is the userinfo, "user:pass".
	Auth string

	// Hostname is the lowercase ASCII hostname, IPv6
	// addresses keep their brackets.
	Hostname string

	Port     string
	Pathname string

	// Hash is the fragment with its leading "#".
	Hash string

	// Query is the raw query without "?".
	Query string
}

// Scheme matches a leading `scheme://`.
var scheme = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*://`)

// HasScheme returns true if rawurl starts with `scheme://`.
func HasScheme(rawurl string) bool {
	return scheme.MatchString(rawurl)
}

// WithScheme returns rawurl with `http:` prepended when
// it does not carry a scheme.
func WithScheme(rawurl string) string {
	switch {
	case HasScheme(rawurl):
		return rawurl
	case strings.HasPrefix(rawurl, "//"):
		return "http:" + rawurl
	default:
		return "http://" + rawurl
	}
}

// URL parses the given raw URL.
//
//  - Assumes `http://` when no scheme is given.
//  - Lowercases the scheme.
//  - Lowercases the hostname and converts it to ASCII.
//  - Converts an empty path to `/` when a host is present.
//  - Keeps the userinfo, path, query and fragment as written.
//
func URL(rawurl string) (Components, error) {
	u, err := url.Parse(WithScheme(rawurl))
	if err != nil {
		return Components{}, err
	}

	var c = Components{
		Hostname: hostname(u),
		Port:     u.Port(),
		Pathname: pathname(u),
		Query:    u.RawQuery,
	}

	if u.Scheme != "" {
		c.Protocol = strings.ToLower(u.Scheme) + ":"
	}

	if u.User != nil {
		c.Auth = u.User.String()
	}

	if f := fragment(u); f != "" {
		c.Hash = "#" + f
	}

	return c, nil
}

// Hostname normalizes the hostname.
func hostname(u *url.URL) string {
	var host = strings.ToLower(u.Hostname())

	if host == "" {
		return ""
	}

	if ip := net.ParseIP(host); ip != nil {
		if strings.Contains(host, ":") {
			return "[" + host + "]"
		}
		return host
	}

	if ascii, err := idna.Lookup.ToASCII(host); err == nil && ascii != "" {
		return ascii
	}

	return host
}

// Pathname returns the path as it was written.
//
// url.URL only keeps RawPath when it differs from
// the default escaping of Path, in which case the
// escaped path is the original.
func pathname(u *url.URL) string {
	var p = u.RawPath

	if p == "" {
		p = u.EscapedPath()
	}

	if p == "" && u.Host != "" {
		return "/"
	}

	return p
}

// Fragment returns the fragment as it was written.
func fragment(u *url.URL) string {
	if u.RawFragment != "" {
		return u.RawFragment
	}
	return u.EscapedFragment()
}
