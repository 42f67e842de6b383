package wherelib

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultUserAgent = "whereabouts"

	DefaultHTTPTimeout       = 10 * time.Second
	DefaultRateLimitInterval = 100 * time.Millisecond
	DefaultRateLimitBurst    = 10
)

type httpClient struct {
	userAgent   string
	client      *http.Client
	rateLimiter *rate.Limiter
}

func (h httpClient) Do(req *http.Request) (*http.Response, error) {
	if err := h.rateLimiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	// a provider may have set its own user agent during Authenticate
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	return h.client.Do(req)
}

// NewHTTPClient wraps a stock http.Client with a shared rate limiter and a
// fixed user agent. Timeouts stay on the underlying client; this layer
// imposes no additional deadline.
//
// Please see https://pkg.go.dev/golang.org/x/time/rate for a meaning of the
// rate limiter parameters.
func NewHTTPClient(client *http.Client,
	userAgent string,
	rateLimiterInterval time.Duration,
	rateLimitBurst int) HTTPClient {
	return httpClient{
		userAgent:   userAgent,
		client:      client,
		rateLimiter: rate.NewLimiter(rate.Every(rateLimiterInterval), rateLimitBurst),
	}
}

// DefaultHTTPClient is a ready to use client with conservative settings.
func DefaultHTTPClient() HTTPClient {
	return NewHTTPClient(&http.Client{Timeout: DefaultHTTPTimeout},
		DefaultUserAgent,
		DefaultRateLimitInterval,
		DefaultRateLimitBurst)
}
