package providers

import (
	"encoding/json"
	"fmt"
	"net"

	"github.com/pubaddr/whereabouts/wherelib"
)

// https://ipwhois.io/documentation
type ipwhoisResponse struct {
	IP          string   `json:"ip"`
	Success     *bool    `json:"success"`
	Continent   string   `json:"continent"`
	Country     string   `json:"country"`
	CountryCode string   `json:"country_code"`
	Region      string   `json:"region"`
	RegionCode  string   `json:"region_code"`
	City        string   `json:"city"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Postal      string   `json:"postal"`
	Connection  struct {
		ASN *int64 `json:"asn"`
		Org string `json:"org"`
	} `json:"connection"`
	Timezone struct {
		ID string `json:"id"`
	} `json:"timezone"`
}

type ipwhoisProvider struct{}

func (i ipwhoisProvider) Identity() wherelib.ID {
	return wherelib.ID{Name: NameIPWhoIs}
}

func (i ipwhoisProvider) SupportsTargetLookup() bool {
	return true
}

func (i ipwhoisProvider) Endpoint(_ wherelib.Parameters, target net.IP) string {
	suffix := ""
	if target != nil {
		suffix = target.String()
	}

	return "https://ipwho.is/" + suffix
}

func (i ipwhoisProvider) Parse(body []byte) (wherelib.Response, error) {
	raw := ipwhoisResponse{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return wherelib.Response{}, fmt.Errorf("cannot decode a reply: %w", err)
	}

	if raw.Success != nil && !*raw.Success {
		return wherelib.Response{}, fmt.Errorf("backend reported a failure")
	}

	ip, err := parseAddress(raw.IP)
	if err != nil {
		return wherelib.Response{}, err
	}

	rv := wherelib.NewResponse(ip, i.Identity())
	rv.Continent = raw.Continent
	rv.Country = raw.Country
	rv.CountryCode = raw.CountryCode
	rv.Region = raw.Region
	rv.RegionCode = raw.RegionCode
	rv.PostalCode = raw.Postal
	rv.City = raw.City
	rv.Latitude = raw.Latitude
	rv.Longitude = raw.Longitude
	rv.TimeZone = raw.Timezone.ID
	rv.ASN = asnString(raw.Connection.ASN)
	rv.ASNOrg = raw.Connection.Org

	return rv, nil
}
