// Package querycache keeps fetched API data in memory, keyed by tuples such
// as ("trip-details", id). Entries are served while fresh and refetched once
// stale or invalidated; concurrent fetches of one key share a single call.
package querycache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultStaleTime is how long an entry is served without refetching.
const DefaultStaleTime = 30 * time.Second

// Key identifies a cached query. Parts are compared by their fmt %v form, so
// uuid.UUID and string ids are interchangeable.
type Key []any

// K builds a Key.
func K(parts ...any) Key { return Key(parts) }

func (k Key) String() string {
	parts := make([]string, len(k))
	for i, p := range k {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, "\x1f")
}

// hasPrefix reports whether prefix matches the leading parts of k.
func (k Key) hasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if fmt.Sprint(prefix[i]) != fmt.Sprint(k[i]) {
			return false
		}
	}
	return true
}

type entry struct {
	key       Key
	value     any
	fetchedAt time.Time
	stale     bool
}

// flight is a fetch in progress. invalidated is set when Invalidate or Remove
// matches its key before the fetch returns.
type flight struct {
	key         Key
	invalidated bool
}

// Cache is safe for concurrent use. The zero value is not usable; call New.
type Cache struct {
	staleTime time.Duration
	now       func() time.Time

	mu       sync.Mutex
	entries  map[string]*entry
	inflight map[string]*flight
	group    singleflight.Group
}

// New returns a Cache whose entries go stale after staleTime
// (DefaultStaleTime when zero or negative).
func New(staleTime time.Duration) *Cache {
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}
	return &Cache{
		staleTime: staleTime,
		now:       time.Now,
		entries:   make(map[string]*entry),
		inflight:  make(map[string]*flight),
	}
}

// Query returns the cached value for key while it is fresh, and otherwise
// calls fetch and caches its result. Errors are returned and not cached.
//
// Concurrent callers for the same key wait for one fetch. That fetch runs
// detached from any caller's cancellation; a caller whose ctx ends stops
// waiting and gets ctx.Err(). A result that an Invalidate or Remove overtook
// while in flight is returned, but never cached as fresh.
func Query[T any](ctx context.Context, c *Cache, key Key, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if v, ok := c.fresh(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key.String(), func() (any, error) {
		f := c.begin(key)
		got, err := fetch(fetchCtx)
		c.finish(f, got, err)
		if err != nil {
			return nil, err
		}
		return got, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return as[T](key, res.Val)
	}
}

// as converts a shared fetch result to the caller's type.
func as[T any](key Key, v any) (T, error) {
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("querycache.Query: %v holds %T, not %T", []any(key), v, zero)
	}
	return typed, nil
}

func (c *Cache) begin(key Key) *flight {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := &flight{key: key}
	c.inflight[key.String()] = f
	return f
}

func (c *Cache) finish(f *flight, v any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k := f.key.String()
	delete(c.inflight, k)
	if err != nil {
		return
	}
	if f.invalidated {
		// Whatever was written during the fetch is newer than v.
		if _, ok := c.entries[k]; ok {
			return
		}
	}
	c.entries[k] = &entry{key: f.key, value: v, fetchedAt: c.now(), stale: f.invalidated}
}

func (c *Cache) fresh(key Key) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok || e.stale || c.now().Sub(e.fetchedAt) >= c.staleTime {
		return nil, false
	}
	return e.value, true
}

// SetData stores v under key as freshly fetched.
func (c *Cache) SetData(key Key, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key.String()] = &entry{key: key, value: v, fetchedAt: c.now()}
	c.overtake(key)
}

// GetData returns whatever is cached under key, fresh or stale.
func GetData[T any](c *Cache, key Key) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	e, ok := c.entries[key.String()]
	if !ok {
		return zero, false
	}
	v, ok := e.value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// Invalidate marks every entry whose key starts with prefix as stale, so the
// next Query refetches it. Stale values stay readable through GetData.
func (c *Cache) Invalidate(prefix Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e.key.hasPrefix(prefix) {
			e.stale = true
		}
	}
	c.overtake(prefix)
}

// UpdateAll replaces the value of every entry under prefix holding a T with
// fn(old). Freshness is left as it was. It returns the number of entries
// updated.
func UpdateAll[T any](c *Cache, prefix Key, fn func(T) T) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.entries {
		if !e.key.hasPrefix(prefix) {
			continue
		}
		if v, ok := e.value.(T); ok {
			e.value = fn(v)
			n++
		}
	}
	c.overtake(prefix)
	return n
}

// Remove drops every entry under prefix.
func (c *Cache) Remove(prefix Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if e.key.hasPrefix(prefix) {
			delete(c.entries, k)
		}
	}
	c.overtake(prefix)
}

// overtake marks fetches in flight under prefix so their results land stale
// instead of replacing newer data.
// c.mu must be held.
func (c *Cache) overtake(prefix Key) {
	for _, f := range c.inflight {
		if f.key.hasPrefix(prefix) {
			f.invalidated = true
		}
	}
}
