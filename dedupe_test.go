package urlnorm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeduper(t *testing.T) {
	t.Run("map", func(t *testing.T) {
		var ctx = context.Background()
		var assert = require.New(t)
		var d = DedupeMap()

		ret, err := d.Dedupe(ctx, []string{"a", "b"})
		assert.NoError(err)
		assert.Equal([]string{"a", "b"}, ret)

		ret, err = d.Dedupe(ctx, []string{"a", "b", "c"})
		assert.NoError(err)
		assert.Equal([]string{"c"}, ret)
	})

	t.Run("bf", func(t *testing.T) {
		var ctx = context.Background()
		var assert = require.New(t)
		var d = DedupeBF(2000000, 5)

		ret, err := d.Dedupe(ctx, []string{"a", "b"})
		assert.NoError(err)
		assert.Equal([]string{"a", "b"}, ret)

		ret, err = d.Dedupe(ctx, []string{"a", "b", "c"})
		assert.NoError(err)
		assert.Equal([]string{"c"}, ret)
	})
}

func TestDeduperConcurrent(t *testing.T) {
	var dedupers = map[string]Deduper{
		"map": DedupeMap(),
		"bf":  DedupeBF(2000000, 5),
	}

	for name, d := range dedupers {
		t.Run(name, func(t *testing.T) {
			var ctx = context.Background()
			var assert = require.New(t)
			var keys = make([]string, 100)
			var fresh = make([][]string, 16)
			var errs = make([]error, len(fresh))
			var wg sync.WaitGroup

			for i := range keys {
				keys[i] = fmt.Sprintf("http://example.com/%d", i)
			}

			for i := range fresh {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					fresh[i], errs[i] = d.Dedupe(ctx, keys)
				}(i)
			}

			wg.Wait()

			var counts = make(map[string]int, len(keys))

			for i := range fresh {
				assert.NoError(errs[i])
				for _, key := range fresh[i] {
					counts[key]++
				}
			}

			for _, key := range keys {
				assert.LessOrEqual(counts[key], 1, key)
			}

			if name == "map" {
				assert.Len(counts, len(keys))
			}
		})
	}
}

func TestUnique(t *testing.T) {
	t.Run("decoded forms", func(t *testing.T) {
		var ctx = context.Background()
		var assert = require.New(t)
		var n = setup(t)
		var d = DedupeMap()

		ret, err := n.Unique(ctx, d, []string{
			"http://example.com/a%20b",
			"http://example.com/a b",
			"http://xn--e1afmkfd.xn--p1ai/",
			"http://пример.рф/",
		})
		assert.NoError(err)
		assert.Equal([]string{
			"http://example.com/a%20b",
			"http://xn--e1afmkfd.xn--p1ai/",
		}, ret)

		ret, err = n.Unique(ctx, d, []string{
			"http://example.com/a b",
			"http://example.com/c",
		})
		assert.NoError(err)
		assert.Equal([]string{"http://example.com/c"}, ret)
	})

	t.Run("invalid url", func(t *testing.T) {
		var ctx = context.Background()
		var assert = require.New(t)
		var n = setup(t)

		_, err := n.Unique(ctx, DedupeMap(), []string{"not a url"})
		assert.Error(err)
		assert.True(errors.Is(err, ErrInvalidURL))
	})

	t.Run("deduper error", func(t *testing.T) {
		var ctx = context.Background()
		var assert = require.New(t)
		var n = setup(t)
		var boom = errors.New("boom")

		_, err := n.Unique(ctx, failing{boom}, []string{"http://example.com/"})
		assert.Error(err)
		assert.True(errors.Is(err, boom))
	})
}

func BenchmarkDedupe(b *testing.B) {
	b.Run("map", func(b *testing.B) {
		var ctx = context.Background()
		var urls = [...]string{"a", "b"}
		var d = DedupeMap()

		for i := 0; i < b.N; i++ {
			d.Dedupe(ctx, urls[:])
		}
	})

	b.Run("bf", func(b *testing.B) {
		var ctx = context.Background()
		var urls = [...]string{"a", "b"}
		var d = DedupeBF(200000, 5)

		for i := 0; i < b.N; i++ {
			d.Dedupe(ctx, urls[:])
		}
	})
}

// Failing implements a deduper that always fails.
type failing struct {
	err error
}

// Dedupe implementation.
func (f failing) Dedupe(context.Context, []string) ([]string, error) {
	return nil, f.err
}
