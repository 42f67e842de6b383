package providers

import (
	"encoding/json"
	"fmt"
	"net"

	"github.com/pubaddr/whereabouts/wherelib"
)

// https://www.my-ip.io/api-usage
type myipResponse struct {
	Success bool   `json:"success"`
	IP      string `json:"ip"`
	Country struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"country"`
	Region   string `json:"region"`
	City     string `json:"city"`
	Location struct {
		Lat *float64 `json:"lat"`
		Lon *float64 `json:"lon"`
	} `json:"location"`
	TimeZone string `json:"timeZone"`
	ASN      struct {
		Number *int64 `json:"number"`
		Name   string `json:"name"`
	} `json:"asn"`
}

type myipProvider struct{}

func (m myipProvider) Identity() wherelib.ID {
	return wherelib.ID{Name: NameMyIP}
}

func (m myipProvider) SupportsTargetLookup() bool {
	return false
}

func (m myipProvider) Endpoint(_ wherelib.Parameters, _ net.IP) string {
	return "https://api.my-ip.io/v2/ip.json"
}

func (m myipProvider) Parse(body []byte) (wherelib.Response, error) {
	raw := myipResponse{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return wherelib.Response{}, fmt.Errorf("cannot decode a reply: %w", err)
	}

	ip, err := parseAddress(raw.IP)
	if err != nil {
		return wherelib.Response{}, err
	}

	rv := wherelib.NewResponse(ip, m.Identity())
	rv.Country = raw.Country.Name
	rv.CountryCode = raw.Country.Code
	rv.Region = raw.Region
	rv.City = raw.City
	rv.Latitude = raw.Location.Lat
	rv.Longitude = raw.Location.Lon
	rv.TimeZone = raw.TimeZone
	rv.ASN = asnString(raw.ASN.Number)
	rv.ASNOrg = raw.ASN.Name

	return rv, nil
}
