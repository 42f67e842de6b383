// api exposes lookups over HTTP.
//
// Routes:
//
//	GET  /           - resolve the caller's own public address
//	GET  /{ip}       - resolve the given address
//	POST /           - resolve a batch of addresses
//	GET  /providers  - describe the configured fallback chain
//
// All handlers answer JSON. Lookups go through the client's disk cache
// plus a small in-memory memoization layer, so repeated requests for the
// same address do not walk the provider chain again.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/panjf2000/ants/v2"

	"github.com/pubaddr/whereabouts/wherelib"
)

// DefaultBulkPoolSize caps concurrent provider lookups made on behalf of
// a single bulk request.
const DefaultBulkPoolSize = 32

const (
	requestTimeout = 60 * time.Second

	memoizedItemsCount = 1024
	memoizedTTL        = time.Minute
)

type Opts struct {
	Client   *wherelib.Client
	Sources  []wherelib.Source
	TTL      *uint64
	PoolSize int
}

type server struct {
	client   *wherelib.Client
	sources  []wherelib.Source
	ttl      *uint64
	memoized *wherelib.MemoizedLookuper
	pool     *ants.Pool
}

func MakeServer(opts Opts) (*chi.Mux, error) {
	poolSize := opts.PoolSize
	if poolSize == 0 {
		poolSize = DefaultBulkPoolSize
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("cannot create a worker pool: %w", err)
	}

	srv := &server{
		client:  opts.Client,
		sources: opts.Sources,
		ttl:     opts.TTL,
		pool:    pool,
	}
	srv.memoized = wherelib.NewMemoizedLookuper(
		wherelib.LookupFunc(srv.lookup), memoizedItemsCount, memoizedTTL)

	router := chi.NewRouter()

	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(requestTimeout))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(middleware.SetHeader("Content-Type", "application/json"))

	router.Get("/", srv.selfResolve)
	router.Post("/", srv.bulkResolve)
	router.Get("/providers", srv.providerInfo)
	router.Get("/{ip}", srv.targetResolve)

	return router, nil
}

func (s *server) lookup(ctx context.Context, target net.IP) (wherelib.Response, error) {
	return s.client.CachedLookup(ctx, s.sources, target, s.ttl, false)
}

func abort(w http.ResponseWriter, code int, message string) {
	msg, _ := json.Marshal(map[string]string{"error": message})
	http.Error(w, string(msg), code)
}
