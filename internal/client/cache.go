package client

import (
	"slices"
	"time"

	"github.com/erazemk/unifind/internal/model"
)

type cacheEntry struct {
	reports   []model.Report
	fetchedAt time.Time
}

// cached returns a copy of the fresh entry for key, if any.
func (c *Client) cached(key string) ([]model.Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.cache[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.fetchedAt) >= c.Freshness {
		delete(c.cache, key)
		return nil, false
	}
	return slices.Clone(e.reports), true
}

// remember stores reports for key unless the cache was invalidated after
// the request for them started.
func (c *Client) remember(gen uint64, key string, reports []model.Report) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return
	}
	if c.cache == nil {
		c.cache = make(map[string]cacheEntry)
	}
	c.cache[key] = cacheEntry{reports: slices.Clone(reports), fetchedAt: c.now()}
}

func (c *Client) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Invalidate drops every cached report list. Requests already in flight
// are not cached when they complete.
func (c *Client) Invalidate() {
	c.mu.Lock()
	c.gen++
	clear(c.cache)
	c.mu.Unlock()
}

func (c *Client) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
