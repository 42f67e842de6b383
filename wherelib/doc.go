// Package wherelib resolves the caller's (or an arbitrary target's) public
// IP address, together with best-effort geolocation and ASN metadata, by
// querying one of many third-party HTTP lookup services through a single
// uniform interface.
//
// The package is built around a small Provider contract: a backend knows how
// to build its endpoint URL, optionally sign the request, and map its own
// JSON shape onto the normalized Response. Everything else is orchestration:
// Service performs one request/parse cycle, ResolveWithFallback walks an
// ordered list of providers until one succeeds, and Client wires the
// resolver to a TTL disk cache so repeated lookups do not burn provider
// rate limits.
//
// The disk cache keeps the "my own address" record and per-target records
// independently timestamped and expirable, and can optionally be encrypted
// at rest. There is no cross-process locking of the cache file.
package wherelib
