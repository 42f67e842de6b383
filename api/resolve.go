package api

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"github.com/pubaddr/whereabouts/wherelib"
)

// resolveOne serves both handlers below. A flush drops the memoized record
// and skips the memoization layer, otherwise a just-flushed record could be
// shadowed by a stale in-memory copy until its memoization TTL elapses.
func (s *server) resolveOne(r *http.Request, target net.IP, flush bool) (wherelib.Response, error) {
	if flush {
		s.memoized.Forget(target)

		return s.client.CachedLookup(r.Context(), s.sources, target, s.ttl, true)
	}

	return s.memoized.Lookup(r.Context(), target)
}

func (s *server) targetResolve(w http.ResponseWriter, r *http.Request) {
	target := net.ParseIP(chi.URLParam(r, "ip"))
	if target == nil {
		abort(w, http.StatusNotAcceptable, "Cannot parse given IP address")
		return
	}

	flush := r.URL.Query().Get("flush") != ""

	response, err := s.resolveOne(r, target, flush)
	if err != nil {
		abort(w, http.StatusBadGateway, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Errorf("Cannot write response: %s", err.Error())
	}
}

func (s *server) bulkResolve(w http.ResponseWriter, r *http.Request) {
	requestBody := bulkResolveRequestStruct{}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		abort(w, http.StatusNotAcceptable, err.Error())
		return
	}

	if len(requestBody.IPs) == 0 {
		abort(w, http.StatusNotAcceptable, "Please provide ips to resolve")
		return
	}

	response := bulkResolveResponseStruct{
		Results: make([]bulkResolveItemStruct, len(requestBody.IPs)),
	}
	wg := &sync.WaitGroup{}

	for i, target := range requestBody.IPs {
		i, target := i, target

		wg.Add(1)

		err := s.pool.Submit(func() {
			defer wg.Done()

			item := bulkResolveItemStruct{IP: target.String()}

			resolved, err := s.memoized.Lookup(r.Context(), target)
			if err != nil {
				item.Error = err.Error()
			} else {
				item.Response = &resolved
			}

			response.Results[i] = item
		})
		if err != nil {
			wg.Done()

			response.Results[i] = bulkResolveItemStruct{
				IP:    target.String(),
				Error: err.Error(),
			}
		}
	}

	wg.Wait()

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Errorf("Cannot write response: %s", err.Error())
	}
}
