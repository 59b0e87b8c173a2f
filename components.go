package urlnorm

import (
	"fmt"
	"strings"
)

// Components represents the named parts of a URL.
//
// An empty field means the part is not present in the URL.
type Components struct {
	// Protocol is the scheme with its trailing colon, "http:".
	Protocol string

	// Auth is the userinfo, "user:pass".
	Auth string

	// Hostname is the hostname, IPv6 addresses keep their brackets.
	Hostname string

	// Port is the port without ":".
	Port string

	// Pathname is the path as written, "/a/b".
	Pathname string

	// Hash is the fragment with its leading "#".
	Hash string

	// Query is the raw query without "?".
	Query string
}

// Notation describes how a component is written.
type notation struct {
	name   string
	before string
	after  string
}

// Notations is the reassembly order.
//
// The fragment is written before the query.
var notations = [...]notation{
	{name: "protocol", after: "//"},
	{name: "auth", after: "@"},
	{name: "hostname"},
	{name: "port", before: ":"},
	{name: "pathname"},
	{name: "hash"},
	{name: "query", before: "?"},
}

// String reassembles the components into a URL.
func (c Components) String() string {
	return build(c.get)
}

// Get returns a component by its name.
func (c Components) get(name string) string {
	switch name {
	case "protocol":
		return c.Protocol
	case "auth":
		return c.Auth
	case "hostname":
		return c.Hostname
	case "port":
		return c.Port
	case "pathname":
		return c.Pathname
	case "hash":
		return c.Hash
	case "query":
		return c.Query
	default:
		return ""
	}
}

// Build builds a URL from its components.
//
// The value can be Components, *Components or a map of
// component names ("protocol", "auth", "hostname", "port",
// "pathname", "hash", "query") to values. Map values that
// are not strings are formatted with fmt, nil values are
// skipped. A string is returned as is, any other value is
// formatted with fmt.
//
// Components are written in a fixed order and their
// separators are only written when they are not empty.
func Build(v interface{}) string {
	switch v := v.(type) {
	case Components:
		return v.String()
	case *Components:
		if v == nil {
			return ""
		}
		return v.String()
	case map[string]string:
		return build(func(name string) string { return v[name] })
	case map[string]interface{}:
		return build(func(name string) string {
			if x, ok := v[name]; ok && x != nil {
				return fmt.Sprint(x)
			}
			return ""
		})
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Build writes all non-empty components.
func build(get func(name string) string) string {
	var b strings.Builder

	for _, n := range notations {
		if v := get(n.name); v != "" {
			b.WriteString(n.before)
			b.WriteString(v)
			b.WriteString(n.after)
		}
	}

	return b.String()
}
