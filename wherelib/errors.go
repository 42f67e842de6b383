package wherelib

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoProviders is returned when a fallback resolution is attempted
	// with an empty provider list.
	ErrNoProviders = errors.New("no lookup providers were given")

	// ErrTargetNotSupported is returned when a target lookup is requested
	// against a provider that can only resolve the caller's own address.
	ErrTargetNotSupported = errors.New("provider does not support target lookup")

	// ErrCacheCorrupted is returned when the cache file exists but cannot
	// be decoded.
	ErrCacheCorrupted = errors.New("cache file is corrupted")

	// ErrCacheEncryption is returned when the at-rest envelope cannot be
	// sealed or opened.
	ErrCacheEncryption = errors.New("cache encryption failure")
)

// TransportError wraps a connection, DNS or TLS level failure of a single
// provider request.
type TransportError struct {
	Provider ID
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// TooManyRequestsError reports an HTTP 429 reply. It is distinguished from
// StatusError so callers can back off a specific provider. It is never
// retried here.
type TooManyRequestsError struct {
	Provider ID
}

func (e *TooManyRequestsError) Error() string {
	return fmt.Sprintf("%s: too many requests", e.Provider)
}

// StatusError reports any reply that is neither 200 nor 429.
type StatusError struct {
	Provider   ID
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status code %d", e.Provider, e.StatusCode)
}

// ParseError reports a malformed or schema-mismatched reply, attributed to
// the provider that produced it.
type ParseError struct {
	Provider ID
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: cannot parse a response: %v", e.Provider, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FallbackError aggregates the failures of every tried provider, in the
// order they were contacted. It is returned only when no provider
// succeeded.
type FallbackError struct {
	Failures []error
}

func (e *FallbackError) Error() string {
	messages := make([]string, len(e.Failures))

	for i, v := range e.Failures {
		messages[i] = v.Error()
	}

	return fmt.Sprintf("all %d providers failed: %s",
		len(e.Failures), strings.Join(messages, "; "))
}

func (e *FallbackError) Unwrap() []error {
	return e.Failures
}
