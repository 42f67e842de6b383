package providers

import (
	"encoding/json"
	"fmt"
	"net"

	"github.com/pubaddr/whereabouts/wherelib"
)

// https://iplocate.io/docs
type iplocateioResponse struct {
	IP          string   `json:"ip"`
	Country     string   `json:"country"`
	CountryCode string   `json:"country_code"`
	City        string   `json:"city"`
	Continent   string   `json:"continent"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	TimeZone    string   `json:"time_zone"`
	PostalCode  string   `json:"postal_code"`
	Subdivision string   `json:"subdivision"`
	Org         string   `json:"org"`
	ASN         string   `json:"asn"`
	Threat      struct {
		IsProxy *bool `json:"is_proxy"`
	} `json:"threat"`
}

type iplocateioProvider struct{}

func (i iplocateioProvider) Identity() wherelib.ID {
	return wherelib.ID{Name: NameIPLocateIo}
}

func (i iplocateioProvider) SupportsTargetLookup() bool {
	return true
}

func (i iplocateioProvider) Endpoint(params wherelib.Parameters, target net.IP) string {
	suffix := "json"
	if target != nil {
		suffix = target.String()
	}

	key := ""
	if params.APIKey != "" {
		key = "?apikey=" + params.APIKey
	}

	return "https://www.iplocate.io/api/lookup/" + suffix + key
}

func (i iplocateioProvider) Parse(body []byte) (wherelib.Response, error) {
	raw := iplocateioResponse{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return wherelib.Response{}, fmt.Errorf("cannot decode a reply: %w", err)
	}

	ip, err := parseAddress(raw.IP)
	if err != nil {
		return wherelib.Response{}, err
	}

	rv := wherelib.NewResponse(ip, i.Identity())
	rv.Continent = raw.Continent
	rv.Country = raw.Country
	rv.CountryCode = raw.CountryCode
	rv.Region = raw.Subdivision
	rv.PostalCode = raw.PostalCode
	rv.City = raw.City
	rv.Latitude = raw.Latitude
	rv.Longitude = raw.Longitude
	rv.TimeZone = raw.TimeZone
	rv.ASN = raw.ASN
	rv.ASNOrg = raw.Org
	rv.IsProxy = raw.Threat.IsProxy

	return rv, nil
}
