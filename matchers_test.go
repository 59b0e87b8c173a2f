package urlnorm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchers(t *testing.T) {
	t.Run("host", func(t *testing.T) {
		var cases = []struct {
			uri     string
			keepWWW bool
			match   bool
		}{
			{"https://www.example.com/x", false, true},
			{"http://example.com:8080", false, true},
			{"example.com/a", false, true},
			{"https://foo.example.com", false, false},
			{"not a url", false, false},
			{"https://www.example.com/x", true, false},
		}

		for _, c := range cases {
			t.Run(c.uri, func(t *testing.T) {
				var assert = require.New(t)
				var n = setup(t)
				var match = n.MatchHost("example.com", c.keepWWW)

				assert.Equal(c.match, match.Match(c.uri))
				assert.Equal(c.match, match.Match(c.uri))
			})
		}
	})

	t.Run("host unicode", func(t *testing.T) {
		var assert = require.New(t)
		var n = setup(t)
		var match = n.MatchHost("http://пример.рф", false)

		assert.True(match.Match("https://www.xn--e1afmkfd.xn--p1ai/"))
	})

	t.Run("host invalid", func(t *testing.T) {
		var assert = require.New(t)
		var n = setup(t)

		assert.Panics(func() {
			n.MatchHost("not a url", false)
		})
	})

	t.Run("pattern", func(t *testing.T) {
		var cases = []struct {
			uri     string
			pattern string
			match   bool
		}{
			{"https://a.example.com/x", "https://*.example.com/*", true},
			{"https://example.com/x", "https://*.example.com/*", false},
			{"http://example.com/a", "http://example.com/?", true},
		}

		for _, c := range cases {
			t.Run(c.uri, func(t *testing.T) {
				var assert = require.New(t)
				var match = MatchPattern(c.pattern)

				assert.Equal(c.match, match.Match(c.uri))
			})
		}
	})

	t.Run("regexp", func(t *testing.T) {
		var assert = require.New(t)
		var match = MatchRegexp(`^https://`)

		assert.True(match.Match("https://example.com"))
		assert.False(match.Match("http://example.com"))
		assert.Panics(func() { MatchRegexp(`(`) })
	})
}
