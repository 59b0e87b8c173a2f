package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yields/urlnorm"
)

func TestLines(t *testing.T) {
	var assert = require.New(t)

	v, err := lines(strings.NewReader("http://a.com\n\n  b.com  \r\n"))
	assert.NoError(err)
	assert.Equal([]string{"http://a.com", "b.com"}, v)
}

func TestEach(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		var assert = require.New(t)
		var seen []string

		ok := each([]string{"a", "b"}, func(s string) (string, error) {
			seen = append(seen, s)
			return "", nil
		})

		assert.True(ok)
		assert.Equal([]string{"a", "b"}, seen)
	})

	t.Run("failed", func(t *testing.T) {
		var assert = require.New(t)

		n, err := urlnorm.New(urlnorm.Config{})
		assert.NoError(err)

		ok := each([]string{"not a url"}, n.Decode)
		assert.False(ok)
	})
}

func TestUnique(t *testing.T) {
	var assert = require.New(t)
	var ctx = context.Background()

	n, err := urlnorm.New(urlnorm.Config{})
	assert.NoError(err)

	assert.True(unique(ctx, n, []string{"http://example.com/a%20b", "http://example.com/a b"}, 0))
	assert.True(unique(ctx, n, []string{"http://example.com/"}, 1024))
	assert.False(unique(ctx, n, []string{"not a url"}, 0))
}
