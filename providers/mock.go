package providers

import (
	"net"

	"github.com/pubaddr/whereabouts/wherelib"
)

const defaultMockEndpoint = "http://mock.invalid/json"

// Mock is the synthetic testing backend. Parse ignores the body entirely
// and fabricates a response carrying the configured address, so any 200
// reply from the configured endpoint succeeds.
type Mock struct {
	ip  string
	url string
}

func NewMock(ip, endpoint string) Mock {
	if endpoint == "" {
		endpoint = defaultMockEndpoint
	}

	return Mock{
		ip:  ip,
		url: endpoint,
	}
}

func (m Mock) Identity() wherelib.ID {
	return wherelib.MockID(m.ip, m.url)
}

func (m Mock) SupportsTargetLookup() bool {
	return true
}

func (m Mock) Endpoint(_ wherelib.Parameters, _ net.IP) string {
	return m.url
}

func (m Mock) Parse(_ []byte) (wherelib.Response, error) {
	ip, err := parseAddress(m.ip)
	if err != nil {
		return wherelib.Response{}, err
	}

	return wherelib.NewResponse(ip, m.Identity()), nil
}
