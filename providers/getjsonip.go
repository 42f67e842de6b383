package providers

import (
	"encoding/json"
	"fmt"
	"net"

	"github.com/pubaddr/whereabouts/wherelib"
)

// https://getjsonip.com - the reply carries nothing but the address.
type getjsonipResponse struct {
	IP string `json:"ip"`
}

type getjsonipProvider struct{}

func (g getjsonipProvider) Identity() wherelib.ID {
	return wherelib.ID{Name: NameGetJsonIP}
}

func (g getjsonipProvider) SupportsTargetLookup() bool {
	return false
}

func (g getjsonipProvider) Endpoint(_ wherelib.Parameters, _ net.IP) string {
	return "https://ipv4.jsonip.com"
}

func (g getjsonipProvider) Parse(body []byte) (wherelib.Response, error) {
	raw := getjsonipResponse{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return wherelib.Response{}, fmt.Errorf("cannot decode a reply: %w", err)
	}

	ip, err := parseAddress(raw.IP)
	if err != nil {
		return wherelib.Response{}, err
	}

	return wherelib.NewResponse(ip, g.Identity()), nil
}
