package b2ginfo

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// RevisionKind identifies which revision a resolution produces.
type RevisionKind string

const (
	RevisionGecko RevisionKind = "gecko"
	RevisionGaia  RevisionKind = "gaia"
)

// RevisionCache memoizes resolved revisions. A populated kind is never
// invalidated, which is correct as long as the cache does not outlive the
// device image it was resolved against; construct a fresh cache per run.
// Concurrent resolutions of one kind share a single device round-trip.
type RevisionCache struct {
	mu      sync.Mutex
	entries map[RevisionKind]string
	group   singleflight.Group
}

// NewRevisionCache creates an empty cache.
func NewRevisionCache() *RevisionCache {
	return &RevisionCache{entries: make(map[RevisionKind]string)}
}

// Lookup returns the cached revision for kind, if resolved already.
func (c *RevisionCache) Lookup(kind RevisionKind) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rev, ok := c.entries[kind]
	return rev, ok
}

func (c *RevisionCache) store(kind RevisionKind, rev string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[kind] = rev
}

// resolve returns the cached revision for kind or runs fn, caching its
// result on success. Failures are not cached: the next call hits the
// device again.
func (c *RevisionCache) resolve(kind RevisionKind, fn func() (string, error)) (string, error) {
	if rev, ok := c.Lookup(kind); ok {
		return rev, nil
	}
	v, err, _ := c.group.Do(string(kind), func() (interface{}, error) {
		// A concurrent resolution may have finished while this call
		// waited on the group.
		if rev, ok := c.Lookup(kind); ok {
			return rev, nil
		}
		rev, err := fn()
		if err != nil {
			return "", err
		}
		c.store(kind, rev)
		return rev, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
