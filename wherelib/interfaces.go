package wherelib

import (
	"net"
	"net/http"
)

// Provider is the capability contract a lookup backend must satisfy.
// Endpoint and Parse are pure; issuing the network request belongs to the
// Service that drives the provider.
type Provider interface {
	// Endpoint builds the request URL. The provider decides how, and
	// whether, the API key and the target address are encoded. target is
	// nil when the caller's own address is being resolved.
	Endpoint(params Parameters, target net.IP) string

	// Parse maps the provider-specific reply onto the normalized Response.
	// Unrecognized or missing fields map to absent, never to a fabricated
	// default. An unparseable ip field fails the parse.
	Parse(body []byte) (Response, error)

	// Identity returns the tag representing this backend, used for cache
	// bookkeeping and the response's provider field.
	Identity() ID

	// SupportsTargetLookup reports whether Endpoint can resolve an address
	// other than the caller's own.
	SupportsTargetLookup() bool
}

// Authenticator is implemented by providers that sign requests with headers
// instead of (or in addition to) query parameters. Providers that do not
// implement it get the no-op default.
type Authenticator interface {
	Authenticate(req *http.Request, params Parameters)
}

// HTTPClient is the single I/O primitive of the package. Everything above
// it is written once against this interface, so an alternative transport
// can be linked in without touching the orchestration.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Logger interface {
	LookupError(id ID, err error)
	CacheInfo(msg string)
	CacheError(err error)
}

// NoopLogger discards every event.
type NoopLogger struct{}

func (NoopLogger) LookupError(ID, error) {}
func (NoopLogger) CacheInfo(string)      {}
func (NoopLogger) CacheError(error)      {}
