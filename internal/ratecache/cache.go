package ratecache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Cache lookup outcomes reported to observers
const (
	OutcomeHit   = "hit"
	OutcomeStale = "stale"
	OutcomeMiss  = "miss"
	OutcomeError = "error"
)

// Loader fetches a fresh value for a key
type Loader[T any] func(ctx context.Context, key string) (T, error)

// Cache is a read-through cache with TTL and stale-while-revalidate. Fresh
// entries are served from the store, stale ones are served while a single
// background refresh runs, missing ones are loaded under a timeout.
type Cache[T any] struct {
	name     string
	store    Store
	load     Loader[T]
	ttl      time.Duration
	maxStale time.Duration
	timeout  time.Duration
	group    singleflight.Group
	log      *logrus.Logger
	observe  func(cache, outcome string)
	now      func() time.Time
}

// Option configures a Cache
type Option func(*options)

type options struct {
	maxStale time.Duration
	timeout  time.Duration
	log      *logrus.Logger
	observe  func(cache, outcome string)
	now      func() time.Time
}

// WithMaxStale sets how long past its TTL an entry may still be served
func WithMaxStale(d time.Duration) Option {
	return func(o *options) { o.maxStale = d }
}

// WithTimeout bounds every load
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the logger used for refresh failures
func WithLogger(log *logrus.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithObserver registers a callback for every lookup outcome
func WithObserver(fn func(cache, outcome string)) Option {
	return func(o *options) { o.observe = fn }
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New initializes a new Cache
func New[T any](name string, store Store, load Loader[T], ttl time.Duration, opts ...Option) *Cache[T] {
	o := options{
		maxStale: ttl,
		timeout:  10 * time.Second,
		log:      logrus.StandardLogger(),
		observe:  func(string, string) {},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Cache[T]{
		name:     name,
		store:    store,
		load:     load,
		ttl:      ttl,
		maxStale: o.maxStale,
		timeout:  o.timeout,
		log:      o.log,
		observe:  o.observe,
		now:      o.now,
	}
}

// Get returns the cached value for key, loading it when needed
func (c *Cache[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T

	value, fetchedAt, found := c.read(ctx, key)
	if found {
		age := c.now().Sub(fetchedAt)
		if age < c.ttl {
			c.observe(c.name, OutcomeHit)
			return value, nil
		}
		if age < c.ttl+c.maxStale {
			c.observe(c.name, OutcomeStale)
			go c.refreshInBackground(key)
			return value, nil
		}
	}

	fresh, err := c.fill(ctx, key)
	if err != nil {
		c.observe(c.name, OutcomeError)
		if found {
			c.log.WithError(err).WithFields(logrus.Fields{"cache": c.name, "key": key}).
				Warn("Serving expired entry after failed load")
			return value, nil
		}
		return zero, err
	}

	c.observe(c.name, OutcomeMiss)
	return fresh, nil
}

// Refresh loads key unconditionally and replaces the stored entry
func (c *Cache[T]) Refresh(ctx context.Context, key string) error {
	_, err := c.fill(ctx, key)
	return err
}

func (c *Cache[T]) refreshInBackground(key string) {
	if _, err := c.fill(context.Background(), key); err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{"cache": c.name, "key": key}).
			Warn("Background refresh failed")
	}
}

// fill runs at most one load per key at a time. The load is shared by every
// waiting caller, so it runs detached from the context of the caller that
// started it and is bounded by the cache timeout instead.
func (c *Cache[T]) fill(ctx context.Context, key string) (T, error) {
	var zero T

	ch := c.group.DoChan(key, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		value, err := c.load(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s/%s: %w", c.name, key, err)
		}

		c.write(ctx, key, value)
		return value, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

func (c *Cache[T]) storeKey(key string) string {
	return c.name + ":" + key
}

func (c *Cache[T]) read(ctx context.Context, key string) (T, time.Time, bool) {
	var value T

	raw, fetchedAt, ok, err := c.store.Get(ctx, c.storeKey(key))
	if err != nil {
		c.log.WithError(err).WithField("cache", c.name).Warn("Failed to read cache entry")
		return value, time.Time{}, false
	}
	if !ok {
		return value, time.Time{}, false
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		c.log.WithError(err).WithField("cache", c.name).Warn("Discarding undecodable cache entry")
		return value, time.Time{}, false
	}
	return value, fetchedAt, true
}

func (c *Cache[T]) write(ctx context.Context, key string, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.WithError(err).WithField("cache", c.name).Warn("Failed to encode cache entry")
		return
	}
	if err := c.store.Set(ctx, c.storeKey(key), raw, c.now(), c.ttl+c.maxStale); err != nil {
		c.log.WithError(err).WithField("cache", c.name).Warn("Failed to write cache entry")
	}
}
