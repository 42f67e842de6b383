package api

import (
	"encoding/json"
	"net"

	"github.com/juju/errors"

	"github.com/pubaddr/whereabouts/wherelib"
)

type bulkResolveRequestStruct struct {
	IPs []net.IP
}

func (req *bulkResolveRequestStruct) UnmarshalJSON(text []byte) error {
	raw := struct {
		IPs []string `json:"ips"`
	}{}

	if err := json.Unmarshal(text, &raw); err != nil {
		return err
	}

	req.IPs = make([]net.IP, 0, len(raw.IPs))
	for _, v := range raw.IPs {
		parsed := net.ParseIP(v)
		if parsed == nil {
			return errors.Errorf("cannot parse %s as IP", v)
		}

		req.IPs = append(req.IPs, parsed)
	}

	return nil
}

type bulkResolveResponseStruct struct {
	Results []bulkResolveItemStruct `json:"results"`
}

type bulkResolveItemStruct struct {
	IP       string             `json:"ip"`
	Response *wherelib.Response `json:"response,omitempty"`
	Error    string             `json:"error,omitempty"`
}

type providerInfoResponseStruct struct {
	Results []providerInfoItemStruct `json:"results"`
}

type providerInfoItemStruct struct {
	Name                 string `json:"name"`
	SupportsTargetLookup bool   `json:"supports_target_lookup"`
	Authenticated        bool   `json:"authenticated"`
}
