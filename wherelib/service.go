package wherelib

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
)

// Responses bigger than this are cut off. Real provider replies are a few
// kilobytes at most.
const maxResponseBodySize = 1024 * 1024

// Service executes one request/parse cycle against a single provider with
// optional credentials.
type Service struct {
	provider Provider
	params   Parameters
	client   HTTPClient
}

func NewService(client HTTPClient, provider Provider, params Parameters) *Service {
	return &Service{
		provider: provider,
		params:   params,
		client:   client,
	}
}

// Identity returns the tag of the wrapped provider.
func (s *Service) Identity() ID {
	return s.provider.Identity()
}

// Lookup resolves the caller's own address, or target when it is non-nil.
// Exactly one network call is made per invocation; there are no retries.
// 200 yields the parsed body, 429 a TooManyRequestsError, any other status
// a StatusError, and transport-level failures a TransportError.
func (s *Service) Lookup(ctx context.Context, target net.IP) (Response, error) {
	id := s.provider.Identity()

	if target != nil && !s.provider.SupportsTargetLookup() {
		return Response{}, fmt.Errorf("%s: %w", id, ErrTargetNotSupported)
	}

	req, err := http.NewRequestWithContext(ctx,
		http.MethodGet, s.provider.Endpoint(s.params, target), nil)
	if err != nil {
		return Response{}, fmt.Errorf("cannot build a request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if auth, ok := s.provider.(Authenticator); ok {
		auth.Authenticate(req, s.params)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Response{}, &TransportError{Provider: id, Err: err}
	}

	defer func() {
		io.Copy(io.Discard, resp.Body) // nolint: errcheck
		resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return Response{}, &TooManyRequestsError{Provider: id}
	case resp.StatusCode != http.StatusOK:
		return Response{}, &StatusError{Provider: id, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return Response{}, &TransportError{Provider: id, Err: err}
	}

	parsed, err := s.provider.Parse(body)
	if err != nil {
		return Response{}, &ParseError{Provider: id, Err: err}
	}

	return parsed, nil
}
