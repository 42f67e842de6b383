package wherelib

import (
	"context"
	"net"
)

// ResolveWithFallback tries the given sources strictly in order and returns
// the response of the first one that succeeds; later sources are never
// contacted after a success. When every source fails, the returned
// FallbackError carries each failure in the order it happened. There is no
// parallel fan-out: earlier, presumably cheaper providers are preferred and
// rate limits of unused providers stay untouched.
func ResolveWithFallback(ctx context.Context,
	client HTTPClient,
	sources []Source,
	target net.IP,
	logger Logger) (Response, error) {
	if len(sources) == 0 {
		return Response{}, ErrNoProviders
	}

	if logger == nil {
		logger = NoopLogger{}
	}

	failures := make([]error, 0, len(sources))

	for _, v := range sources {
		service := NewService(client, v.Provider, v.Params)

		response, err := service.Lookup(ctx, target)
		if err == nil {
			return response, nil
		}

		logger.LookupError(v.Provider.Identity(), err)
		failures = append(failures, err)
	}

	return Response{}, &FallbackError{Failures: failures}
}
