package providers

import (
	"encoding/json"
	"fmt"
	"net"

	"github.com/pubaddr/whereabouts/wherelib"
)

// https://ipleak.net/
type ipleakResponse struct {
	IP            string   `json:"ip"`
	ASNumber      *int64   `json:"as_number"`
	ISPName       string   `json:"isp_name"`
	CountryCode   string   `json:"country_code"`
	CountryName   string   `json:"country_name"`
	RegionCode    string   `json:"region_code"`
	RegionName    string   `json:"region_name"`
	ContinentName string   `json:"continent_name"`
	CityName      string   `json:"city_name"`
	PostalCode    string   `json:"postal_code"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	TimeZone      string   `json:"time_zone"`
	Reverse       string   `json:"reverse"`
}

type ipleakProvider struct{}

func (i ipleakProvider) Identity() wherelib.ID {
	return wherelib.ID{Name: NameIPLeak}
}

func (i ipleakProvider) SupportsTargetLookup() bool {
	return true
}

func (i ipleakProvider) Endpoint(_ wherelib.Parameters, target net.IP) string {
	suffix := ""
	if target != nil {
		suffix = target.String()
	}

	return "https://ipleak.net/json/" + suffix
}

func (i ipleakProvider) Parse(body []byte) (wherelib.Response, error) {
	raw := ipleakResponse{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return wherelib.Response{}, fmt.Errorf("cannot decode a reply: %w", err)
	}

	ip, err := parseAddress(raw.IP)
	if err != nil {
		return wherelib.Response{}, err
	}

	rv := wherelib.NewResponse(ip, i.Identity())
	rv.Continent = raw.ContinentName
	rv.Country = raw.CountryName
	rv.CountryCode = raw.CountryCode
	rv.Region = raw.RegionName
	rv.RegionCode = raw.RegionCode
	rv.PostalCode = raw.PostalCode
	rv.City = raw.CityName
	rv.Latitude = raw.Latitude
	rv.Longitude = raw.Longitude
	rv.TimeZone = raw.TimeZone
	rv.ASN = asnString(raw.ASNumber)
	rv.ASNOrg = raw.ISPName
	rv.Hostname = raw.Reverse

	return rv, nil
}
