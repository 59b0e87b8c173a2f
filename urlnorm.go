// Package urlnorm implements URL normalization.
//
// A Normalizer validates URLs, compares their hosts, encodes
// and decodes their path, query and fragment, converts hostnames
// from and to punycode and adds or removes the scheme and the
// `www.` label.
//
// Usage:
//
//   n, err := urlnorm.New(urlnorm.Config{})
//   if err != nil {
//     return err
//   }
//
//   u, err := n.Decode("http://xn--e1afmkfd.xn--p1ai/%D0%BF%D1%83%D1%82%D1%8C")
//   // => "http://пример.рф/путь"
//
package urlnorm

import (
	"errors"
	"strings"

	"github.com/yields/urlnorm/internal/codec"
	"github.com/yields/urlnorm/internal/parse"
	"github.com/yields/urlnorm/internal/validate"
)

// Validator represents a URL validator.
type Validator interface {
	// Valid returns true if the string is a valid URL.
	//
	// The method must not panic on arbitrary input.
	Valid(uri string) bool
}

// Parser represents a URL parser.
type Parser interface {
	// Parse splits a URL into its components.
	//
	// The method receives URLs that were validated, a URL
	// without a scheme must be read as an `http://` URL.
	Parse(uri string) (Components, error)
}

// ParserFunc implements a Parser.
type ParserFunc func(uri string) (Components, error)

// Parse implementation.
func (pf ParserFunc) Parse(uri string) (Components, error) {
	return pf(uri)
}

// Codec represents a URL text codec.
type Codec interface {
	// Escape percent-encodes a single path segment.
	Escape(s string) string

	// Unescape decodes all percent-encoded triplets.
	Unescape(s string) (string, error)

	// ToASCII converts unicode labels to punycode.
	ToASCII(s string) (string, error)

	// ToUnicode converts punycode labels to unicode.
	ToUnicode(s string) (string, error)
}

// Config configures the normalizer.
type Config struct {
	// Validator is the URL validator to use.
	//
	// If nil, the default validator is used, it accepts
	// the schemes listed in Schemes.
	Validator Validator

	// Schemes lists the schemes the default validator
	// accepts.
	//
	// If empty, http, https and ftp are accepted.
	Schemes []string

	// Parser is the URL parser to use.
	//
	// If nil, the default parser is used, it is backed
	// by net/url and converts hostnames to ASCII.
	Parser Parser

	// Codec is the text codec to use.
	//
	// If nil, the default codec is used.
	Codec Codec
}

// Normalizer implements URL normalization.
//
// A normalizer is safe to use from multiple goroutines.
type Normalizer struct {
	validator Validator
	parser    Parser
	codec     Codec
}

// New returns a new normalizer.
func New(c Config) (*Normalizer, error) {
	if c.Validator == nil {
		v, err := validate.New(validate.Options{Schemes: c.Schemes})
		if err != nil {
			return nil, err
		}
		c.Validator = v
	}

	if c.Parser == nil {
		c.Parser = ParserFunc(parseURL)
	}

	if c.Codec == nil {
		c.Codec = codec.Codec{}
	}

	return &Normalizer{
		validator: c.Validator,
		parser:    c.Parser,
		codec:     c.Codec,
	}, nil
}

// IsValid returns true if uri is a valid URL.
func (n *Normalizer) IsValid(uri string) bool {
	return n.validator.Valid(uri)
}

// Parse splits uri into its components.
//
// When uri has no scheme it is parsed as an `http://` URL.
// The method returns an error wrapping ErrInvalidURL if
// uri is not valid.
func (n *Normalizer) Parse(uri string) (Components, error) {
	return n.parse("parse", uri)
}

// IsSameHost returns true if both URLs have the same hostname.
//
// Hostnames are compared in their unicode form, a leading
// `www.` label is ignored unless keepWWW is true. The scheme,
// port and path are not compared.
func (n *Normalizer) IsSameHost(url1, url2 string, keepWWW bool) (bool, error) {
	for _, uri := range [...]string{url1, url2} {
		if !n.IsValid(uri) {
			return false, invalid("same host", uri)
		}
	}

	var opts = HostOptions{
		Decode:  true,
		KeepWWW: keepWWW,
	}

	host1, err := n.Hostname(url1, opts)
	if err != nil {
		return false, err
	}

	host2, err := n.Hostname(url2, opts)
	if err != nil {
		return false, err
	}

	return host1 == host2, nil
}

// HostOptions configures hostname extraction.
//
// The zero value returns the hostname in its ASCII
// form without a leading `www.` label.
type HostOptions struct {
	// Decode converts the hostname from punycode to unicode.
	Decode bool

	// KeepWWW keeps a leading `www.` label.
	KeepWWW bool
}

// Hostname returns the hostname of uri.
//
// The method returns an empty string if uri has no
// hostname and an error wrapping ErrInvalidURL if uri
// is not valid.
func (n *Normalizer) Hostname(uri string, o HostOptions) (string, error) {
	c, err := n.parse("hostname", uri)
	if err != nil {
		return "", err
	}
	return n.hostname("hostname", uri, c, o)
}

// Encode percent-encodes the path, query and fragment of uri.
//
// Every `/` separated segment is encoded on its own. If uri
// differs from its decoded form it is assumed to be encoded
// already and returned as is. The check is a heuristic, a URL
// that decodes to itself but was never safe to re-encode is
// encoded again.
//
// The method returns an error if uri holds a `%` that does
// not start a valid percent-encoded triplet.
func (n *Normalizer) Encode(uri string) (string, error) {
	if !n.IsValid(uri) {
		return "", invalid("encode", uri)
	}

	s, err := n.codec.Unescape(uri)
	if err != nil {
		return "", &Error{Op: "encode", URL: uri, Err: err}
	}

	decoded, err := n.decode("encode", s)

	switch {
	case errors.Is(err, ErrInvalidURL):
		// The decoded form differs from the valid uri.
		return uri, nil
	case err != nil:
		return "", err
	case decoded != uri:
		return uri, nil
	}

	c, err := n.parse("encode", uri)
	if err != nil {
		return "", err
	}

	c.Pathname = n.escape(c.Pathname)
	c.Query = n.escape(c.Query)

	if c.Hash != "" {
		c.Hash = "#" + n.escape(c.Hash[1:])
	}

	return c.String(), nil
}

// Decode decodes all percent-encoded triplets in uri and
// converts its hostname to unicode.
//
// A leading `www.` label is kept.
func (n *Normalizer) Decode(uri string) (string, error) {
	if !n.IsValid(uri) {
		return "", invalid("decode", uri)
	}

	s, err := n.codec.Unescape(uri)
	if err != nil {
		return "", &Error{Op: "decode", URL: uri, Err: err}
	}

	return n.decode("decode", s)
}

// ToPunycode converts the unicode labels of uri to punycode.
//
// The whole string is converted, not only its hostname.
func (n *Normalizer) ToPunycode(uri string) (string, error) {
	if !n.IsValid(uri) {
		return "", invalid("to punycode", uri)
	}

	s, err := n.codec.ToASCII(uri)
	if err != nil {
		return "", &Error{Op: "to punycode", URL: uri, Err: err}
	}

	return s, nil
}

// FromPunycode converts the punycode labels of uri to unicode.
//
// The whole string is converted, not only its hostname.
func (n *Normalizer) FromPunycode(uri string) (string, error) {
	if !n.IsValid(uri) {
		return "", invalid("from punycode", uri)
	}

	s, err := n.codec.ToUnicode(uri)
	if err != nil {
		return "", &Error{Op: "from punycode", URL: uri, Err: err}
	}

	return s, nil
}

// Parse validates and parses uri.
func (n *Normalizer) parse(op, uri string) (Components, error) {
	if !n.IsValid(uri) {
		return Components{}, invalid(op, uri)
	}

	c, err := n.parser.Parse(uri)
	if err != nil {
		return Components{}, &Error{Op: op, URL: uri, Err: err}
	}

	return c, nil
}

// Decode reassembles the already unescaped s with
// a unicode hostname.
func (n *Normalizer) decode(op, s string) (string, error) {
	c, err := n.parse(op, s)
	if err != nil {
		return "", err
	}

	host, err := n.hostname(op, s, c, HostOptions{
		Decode:  true,
		KeepWWW: true,
	})
	if err != nil {
		return "", err
	}

	c.Hostname = host
	return c.String(), nil
}

// Hostname returns the hostname of the parsed uri.
func (n *Normalizer) hostname(op, uri string, c Components, o HostOptions) (string, error) {
	var host = c.Hostname

	if host == "" {
		return "", nil
	}

	if !o.KeepWWW {
		host = strings.TrimPrefix(host, "www.")
	}

	if !o.Decode {
		return host, nil
	}

	host, err := n.codec.ToUnicode(host)
	if err != nil {
		return "", &Error{Op: op, URL: uri, Err: err}
	}

	return host, nil
}

// Escape percent-encodes every `/` separated segment of s.
func (n *Normalizer) escape(s string) string {
	var parts = strings.Split(s, "/")

	for i, p := range parts {
		parts[i] = n.codec.Escape(p)
	}

	return strings.Join(parts, "/")
}

// ParseURL is the default parser.
func parseURL(uri string) (Components, error) {
	c, err := parse.URL(uri)
	return Components(c), err
}
