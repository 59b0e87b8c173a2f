package urlnorm

import (
	"context"
	"fmt"
	"sync"

	"github.com/willf/bloom"
)

// Deduper remembers keys across calls.
//
// Unique hands it the decoded form of every URL, so a deduper
// only compares strings and never parses or normalizes them.
type Deduper interface {
	// Dedupe returns the keys it has not remembered yet, in
	// the order they were given, and remembers all of them.
	//
	// Dedupe may be called from multiple goroutines, a key
	// is returned by at most one of the concurrent calls.
	Dedupe(ctx context.Context, keys []string) ([]string, error)
}

// MapDeduper remembers every key it was given.
type mapDeduper struct {
	seen sync.Map
}

// DedupeMap returns an exact deduper.
//
// Its memory grows with the number of distinct keys.
func DedupeMap() Deduper {
	return &mapDeduper{}
}

// Dedupe implementation.
func (d *mapDeduper) Dedupe(ctx context.Context, keys []string) ([]string, error) {
	var fresh = make([]string, 0, len(keys))

	for _, key := range keys {
		if _, loaded := d.seen.LoadOrStore(key, struct{}{}); !loaded {
			fresh = append(fresh, key)
		}
	}

	return fresh, nil
}

// BloomDeduper remembers keys in a bloom filter.
type bloomDeduper struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
}

// DedupeBF returns a deduper backed by a bloom
// filter of m bits and k hash functions.
//
// The filter may drop a key that was never seen, it
// never returns a key twice.
func DedupeBF(m, k uint) Deduper {
	return &bloomDeduper{
		filter: bloom.New(m, k),
	}
}

// Dedupe implementation.
func (d *bloomDeduper) Dedupe(ctx context.Context, keys []string) ([]string, error) {
	var fresh = make([]string, 0, len(keys))

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, key := range keys {
		if !d.filter.TestAndAdd([]byte(key)) {
			fresh = append(fresh, key)
		}
	}

	return fresh, nil
}

// Unique returns the URLs whose decoded form was not seen
// by the deduper yet.
//
// URLs are compared by their decoded form, only the first
// URL of every form is returned, in input order. The method
// returns an error if a URL is not valid.
func (n *Normalizer) Unique(ctx context.Context, d Deduper, urls []string) ([]string, error) {
	var keys = make([]string, 0, len(urls))
	var first = make(map[string]string, len(urls))

	for _, uri := range urls {
		key, err := n.Decode(uri)
		if err != nil {
			return nil, err
		}

		if _, ok := first[key]; ok {
			continue
		}

		first[key] = uri
		keys = append(keys, key)
	}

	keys, err := d.Dedupe(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("urlnorm: dedupe - %w", err)
	}

	var ret = make([]string, 0, len(keys))

	for _, key := range keys {
		ret = append(ret, first[key])
	}

	return ret, nil
}
