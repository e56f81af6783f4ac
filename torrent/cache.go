package torrent

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/au2001/onepace-stremio/log"
	csmap "github.com/mhmtszr/concurrent-swiss-map"
	"golang.org/x/time/rate"
)

// Resolver turns a key into torrent metadata.
type Resolver interface {
	Resolve(ctx context.Context, key string) (*Metadata, error)
}

// Options configures the download limiter of a Cache.
type Options struct {
	// Rate is the number of downloads allowed per second. Zero or less disables limiting.
	Rate float64
	// Burst is the number of downloads allowed at once. Values below 1 mean 1.
	Burst int
}

// Stats counts how keys were resolved.
type Stats struct {
	Hits    int64
	Fetches int64
	Failed  int64
}

// flight is the single resolution of one key, shared by every caller of that key.
type flight struct {
	once sync.Once
	meta *Metadata
	err  error
}

// Cache resolves keys at most once per run, from disk when possible and remotely otherwise.
// Downloads share a single token bucket; disk hits never wait on it.
type Cache struct {
	store   *Store
	fetcher Fetcher
	limiter *rate.Limiter
	flights *csmap.CsMap[string, *flight]

	hits, fetches, failed atomic.Int64
}

// NewCache returns a cache reading and writing store and downloading with fetcher.
func NewCache(store *Store, fetcher Fetcher, options Options) *Cache {
	limit := rate.Inf
	if options.Rate > 0 {
		limit = rate.Limit(options.Rate)
	}

	return &Cache{
		store:   store,
		fetcher: fetcher,
		limiter: rate.NewLimiter(limit, max(options.Burst, 1)),
		flights: csmap.Create[string, *flight](),
	}
}

// Resolve returns the metadata for key.
// Concurrent and repeated calls for the same key share one resolution, including its failure.
// Remote failures are returned as *FetchError and are never written to disk.
//
// A resolution cut short by a cancelled or expired context is handed to the callers
// already waiting on it, then forgotten so that the next caller starts over.
func (c *Cache) Resolve(ctx context.Context, key string) (*Metadata, error) {
	c.flights.SetIfAbsent(key, &flight{})
	f, _ := c.flights.Load(key)

	f.once.Do(func() {
		f.meta, f.err = c.resolve(ctx, key)
		if errors.Is(f.err, context.Canceled) || errors.Is(f.err, context.DeadlineExceeded) {
			c.flights.DeleteIf(key, func(current *flight) bool {
				return current == f
			})
		}
	})

	return f.meta, f.err
}

// Stats returns resolution counters for the run so far.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Fetches: c.fetches.Load(),
		Failed:  c.failed.Load(),
	}
}

func (c *Cache) resolve(ctx context.Context, key string) (*Metadata, error) {
	data, ok, err := c.store.Load(key)
	if err != nil {
		return nil, err
	}

	if ok {
		meta, err := Parse(data)
		if err == nil {
			c.hits.Add(1)
			return meta, nil
		}

		log.Warnf("cached torrent %s is corrupt, downloading it again: %v", key, err)
		if err := c.store.Remove(key); err != nil {
			return nil, err
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		c.failed.Add(1)
		return nil, &FetchError{Key: key, Err: err}
	}

	c.fetches.Add(1)
	log.Debugf("downloading torrent %s", key)

	data, err = c.fetcher.Fetch(ctx, key)
	if err != nil {
		c.failed.Add(1)
		return nil, &FetchError{Key: key, Err: err}
	}

	meta, err := Parse(data)
	if err != nil {
		c.failed.Add(1)
		return nil, &FetchError{Key: key, Err: err}
	}

	if err := c.store.Save(key, data); err != nil {
		return nil, err
	}

	return meta, nil
}
