package wherelib

import (
	"context"
	"net"
	"time"

	"github.com/dgraph-io/ristretto"
)

// Lookuper is anything able to answer a single lookup: *Service implements
// it, and LookupFunc adapts closures over Client.CachedLookup.
type Lookuper interface {
	Lookup(ctx context.Context, target net.IP) (Response, error)
}

// LookupFunc adapts a plain function to the Lookuper interface.
type LookupFunc func(ctx context.Context, target net.IP) (Response, error)

func (f LookupFunc) Lookup(ctx context.Context, target net.IP) (Response, error) {
	return f(ctx, target)
}

const memoizedCurrentKey = "current"

func memoizedKey(target net.IP) string {
	if target == nil {
		return memoizedCurrentKey
	}

	return target.String()
}

// MemoizedLookuper keeps recent results in memory so a busy server does not
// walk the whole provider chain for every request landing between disk
// cache writes. Failures are never memoized.
type MemoizedLookuper struct {
	next  Lookuper
	cache *ristretto.Cache
	ttl   time.Duration
}

func (m *MemoizedLookuper) Lookup(ctx context.Context, target net.IP) (Response, error) {
	cacheKey := memoizedKey(target)

	value, ok := m.cache.Get(cacheKey)
	if ok {
		return value.(Response).Clone(), nil
	}

	result, err := m.next.Lookup(ctx, target)
	if err != nil {
		return Response{}, err
	}

	m.cache.SetWithTTL(cacheKey, result.Clone(), 1, m.ttl)

	return result, nil
}

// Forget drops the memoized result for the key and waits until the drop is
// applied, so a record refreshed behind this layer cannot be shadowed by a
// stale in-memory copy.
func (m *MemoizedLookuper) Forget(target net.IP) {
	m.cache.Del(memoizedKey(target))
	m.cache.Wait()
}

func NewMemoizedLookuper(next Lookuper, itemsCount uint, ttl time.Duration) *MemoizedLookuper {
	cacheConfig := &ristretto.Config{
		MaxCost:     int64(itemsCount),
		NumCounters: 10 * int64(itemsCount),
		Metrics:     false,
		BufferItems: 64,
	}

	cache, err := ristretto.NewCache(cacheConfig)
	if err != nil {
		panic(err)
	}

	return &MemoizedLookuper{
		next:  next,
		cache: cache,
		ttl:   ttl,
	}
}
