// Package providers contains the concrete lookup backends and the registry
// mapping identifier strings to constructed instances.
//
// Every adapter here is mechanical: build one GET URL, decode one JSON
// shape, map recognized fields onto wherelib.Response. A backend whose
// reply carries no usable ip fails the parse instead of fabricating an
// address.
package providers

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

func parseAddress(raw string) (net.IP, error) {
	ip := net.ParseIP(strings.TrimSpace(raw))
	if ip == nil {
		return nil, fmt.Errorf("invalid ip address %q", raw)
	}

	return ip, nil
}

func asnString(number *int64) string {
	if number == nil {
		return ""
	}

	return strconv.FormatInt(*number, 10)
}
