package wherelib

import (
	"context"
	"errors"
	"io/fs"
	"net"
)

// Opts configures a Client. A nil HTTPClient gets the default wrapper, a
// nil Cache gets default cache options, a nil Logger is silent.
type Opts struct {
	HTTPClient HTTPClient
	Cache      *Cache
	Logger     Logger
}

// Client is the top-level entry point tying the fallback resolver to the
// disk cache. A Client exclusively owns the cache it loaded; nothing is
// shared across instances. Safe for concurrent use by multiple goroutines;
// in-flight lookups for the same key are not deduplicated.
type Client struct {
	client HTTPClient
	cache  *Cache
	logger Logger
}

func NewClient(opts Opts) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = DefaultHTTPClient()
	}

	if opts.Cache == nil {
		opts.Cache = NewCache(CacheOptions{})
	}

	if opts.Logger == nil {
		opts.Logger = NoopLogger{}
	}

	return &Client{
		client: opts.HTTPClient,
		cache:  opts.Cache,
		logger: opts.Logger,
	}
}

// Cache exposes the underlying cache for maintenance operations.
func (c *Client) Cache() *Cache {
	return c.cache
}

// Lookup resolves through the fallback chain without touching the cache.
func (c *Client) Lookup(ctx context.Context, sources []Source, target net.IP) (Response, error) {
	return ResolveWithFallback(ctx, c.client, sources, target, c.logger)
}

// CachedLookup consults the cache first unless flush is set, performing a
// fresh fallback resolution on a miss, an expired record or a forced flush,
// and persisting the fresh result under the given ttl (nil means the record
// never expires).
//
// A missing or unreadable cache file counts as an empty cache. A failed
// Save after a successful lookup is returned as an error together with the
// response: the caller has a usable result, but the persist failure is
// never silently dropped.
func (c *Client) CachedLookup(ctx context.Context,
	sources []Source,
	target net.IP,
	ttl *uint64,
	flush bool) (Response, error) {
	if err := c.cache.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.CacheInfo("no cache file yet")
		} else {
			c.logger.CacheError(err)
		}
	}

	if !flush {
		if target == nil {
			if response, ok := c.cache.Current(); ok && !c.cache.CurrentIsExpired() {
				return response, nil
			}
		} else if response, ok := c.cache.Target(target); ok && !c.cache.TargetIsExpired(target) {
			return response, nil
		}
	}

	response, err := ResolveWithFallback(ctx, c.client, sources, target, c.logger)
	if err != nil {
		return Response{}, err
	}

	if target == nil {
		c.cache.UpdateCurrent(response, ttl)
	} else {
		c.cache.UpdateTarget(target, response, ttl)
	}

	if err := c.cache.Save(); err != nil {
		return response, err
	}

	return response, nil
}
