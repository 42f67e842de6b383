package wherelib

import (
	"encoding/json"
	"net"
)

// MockName is the identifier of the synthetic testing provider.
const MockName = "mock"

// ID identifies the backend that produced a response. It is stable under
// JSON serialization because it is persisted inside cached records. The
// mock variant carries its payload in the ID itself.
type ID struct {
	Name string `json:"name"`

	// Mock payload, empty for real providers.
	MockIP       string `json:"mock_ip,omitempty"`
	MockEndpoint string `json:"mock_endpoint,omitempty"`
}

// MockID builds the identifier of the testing mock provider.
func MockID(ip, endpoint string) ID {
	return ID{
		Name:         MockName,
		MockIP:       ip,
		MockEndpoint: endpoint,
	}
}

func (i ID) IsMock() bool {
	return i.Name == MockName
}

func (i ID) String() string {
	if i.IsMock() {
		return i.Name + "(" + i.MockIP + ")"
	}

	return i.Name
}

// Parameters is the optional credential bundle attached to a provider at
// lookup time. It is deliberately not part of ID: keys are configuration,
// not identity.
type Parameters struct {
	APIKey string
}

// Source pairs a provider with the credentials used to query it.
type Source struct {
	Provider Provider
	Params   Parameters
}

// Response is the normalized lookup result every provider converges to.
// IP always holds a valid parsed address. Every other field is best effort
// and provider dependent; absence is not an error.
type Response struct {
	IP          net.IP   `json:"ip"`
	Continent   string   `json:"continent,omitempty"`
	Country     string   `json:"country,omitempty"`
	CountryCode string   `json:"country_code,omitempty"`
	Region      string   `json:"region,omitempty"`
	RegionCode  string   `json:"region_code,omitempty"`
	PostalCode  string   `json:"postal_code,omitempty"`
	City        string   `json:"city,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	TimeZone    string   `json:"time_zone,omitempty"`
	ASN         string   `json:"asn,omitempty"`
	ASNOrg      string   `json:"asn_org,omitempty"`
	Hostname    string   `json:"hostname,omitempty"`
	IsProxy     *bool    `json:"is_proxy,omitempty"`
	Provider    ID       `json:"provider"`
}

func NewResponse(ip net.IP, provider ID) Response {
	return Response{
		IP:       ip,
		Provider: provider,
	}
}

// Clone returns a deep copy. Cached records are never shared with callers;
// reads hand out clones.
func (r Response) Clone() Response {
	rv := r

	if r.IP != nil {
		rv.IP = make(net.IP, len(r.IP))
		copy(rv.IP, r.IP)
	}

	if r.Latitude != nil {
		latitude := *r.Latitude
		rv.Latitude = &latitude
	}

	if r.Longitude != nil {
		longitude := *r.Longitude
		rv.Longitude = &longitude
	}

	if r.IsProxy != nil {
		isProxy := *r.IsProxy
		rv.IsProxy = &isProxy
	}

	return rv
}

func (r Response) String() string {
	encoded, err := json.MarshalIndent(&r, "", "  ")
	if err != nil {
		return ""
	}

	return string(encoded)
}
