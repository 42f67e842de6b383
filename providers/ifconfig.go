package providers

import (
	"encoding/json"
	"fmt"
	"net"

	"github.com/pubaddr/whereabouts/wherelib"
)

// The echoip JSON shape:
// https://github.com/mpolden/echoip/blob/master/http/http.go
type ifconfigResponse struct {
	IP         string   `json:"ip"`
	Country    string   `json:"country"`
	CountryISO string   `json:"country_iso"`
	CountryEU  *bool    `json:"country_eu"`
	RegionName string   `json:"region_name"`
	RegionCode string   `json:"region_code"`
	ZipCode    string   `json:"zip_code"`
	City       string   `json:"city"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	TimeZone   string   `json:"time_zone"`
	ASN        string   `json:"asn"`
	ASNOrg     string   `json:"asn_org"`
	Hostname   string   `json:"hostname"`
}

type ifconfigProvider struct{}

func (i ifconfigProvider) Identity() wherelib.ID {
	return wherelib.ID{Name: NameIfConfig}
}

func (i ifconfigProvider) SupportsTargetLookup() bool {
	return true
}

func (i ifconfigProvider) Endpoint(_ wherelib.Parameters, target net.IP) string {
	suffix := ""
	if target != nil {
		suffix = "?ip=" + target.String()
	}

	return "https://ifconfig.co/json" + suffix
}

func (i ifconfigProvider) Parse(body []byte) (wherelib.Response, error) {
	raw := ifconfigResponse{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return wherelib.Response{}, fmt.Errorf("cannot decode a reply: %w", err)
	}

	ip, err := parseAddress(raw.IP)
	if err != nil {
		return wherelib.Response{}, err
	}

	rv := wherelib.NewResponse(ip, i.Identity())
	rv.Country = raw.Country
	rv.CountryCode = raw.CountryISO
	rv.Region = raw.RegionName
	rv.RegionCode = raw.RegionCode
	rv.PostalCode = raw.ZipCode
	rv.City = raw.City
	rv.Latitude = raw.Latitude
	rv.Longitude = raw.Longitude
	rv.TimeZone = raw.TimeZone
	rv.ASN = raw.ASN
	rv.ASNOrg = raw.ASNOrg
	rv.Hostname = raw.Hostname

	// echoip only tells whether the country is in the EU
	if raw.CountryEU != nil && *raw.CountryEU {
		rv.Continent = "Europe"
	}

	return rv, nil
}
