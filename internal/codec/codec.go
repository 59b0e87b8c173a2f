// Package codec implements percent-encoding and punycode conversion.
package codec

import (
	"net/url"

	"golang.org/x/net/idna"
)

// Codec implements the URL text codec.
//
// Percent-encoding works on single path segments, `/` is
// escaped and `+` is kept as is. Punycode conversion is raw,
// every dot-separated label of the input is converted without
// mapping or validation.
type Codec struct{}

// Escape percent-encodes s so it can be placed
// inside a path segment.
func (Codec) Escape(s string) string {
	return url.PathEscape(s)
}

// Unescape decodes all percent-encoded triplets in s.
func (Codec) Unescape(s string) (string, error) {
	return url.PathUnescape(s)
}

// ToASCII converts unicode labels in s to punycode.
func (Codec) ToASCII(s string) (string, error) {
	return idna.Punycode.ToASCII(s)
}

// ToUnicode converts punycode labels in s to unicode.
func (Codec) ToUnicode(s string) (string, error) {
	return idna.Punycode.ToUnicode(s)
}
