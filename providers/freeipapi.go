package providers

import (
	"encoding/json"
	"fmt"
	"net"

	"github.com/pubaddr/whereabouts/wherelib"
)

// https://docs.freeipapi.com/response.html
type freeipapiResponse struct {
	IPAddress   string   `json:"ipAddress"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	CountryName string   `json:"countryName"`
	CountryCode string   `json:"countryCode"`
	TimeZone    string   `json:"timeZone"`
	ZipCode     string   `json:"zipCode"`
	CityName    string   `json:"cityName"`
	RegionName  string   `json:"regionName"`
	Continent   string   `json:"continent"`
	IsProxy     *bool    `json:"isProxy"`
}

type freeipapiProvider struct{}

func (f freeipapiProvider) Identity() wherelib.ID {
	return wherelib.ID{Name: NameFreeIPApi}
}

func (f freeipapiProvider) SupportsTargetLookup() bool {
	return true
}

func (f freeipapiProvider) Endpoint(_ wherelib.Parameters, target net.IP) string {
	suffix := ""
	if target != nil {
		suffix = "/" + target.String()
	}

	return "https://freeipapi.com/api/json" + suffix
}

func (f freeipapiProvider) Parse(body []byte) (wherelib.Response, error) {
	raw := freeipapiResponse{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return wherelib.Response{}, fmt.Errorf("cannot decode a reply: %w", err)
	}

	ip, err := parseAddress(raw.IPAddress)
	if err != nil {
		return wherelib.Response{}, err
	}

	rv := wherelib.NewResponse(ip, f.Identity())
	rv.Continent = raw.Continent
	rv.Country = raw.CountryName
	rv.CountryCode = raw.CountryCode
	rv.Region = raw.RegionName
	rv.PostalCode = raw.ZipCode
	rv.City = raw.CityName
	rv.Latitude = raw.Latitude
	rv.Longitude = raw.Longitude
	rv.TimeZone = raw.TimeZone
	rv.IsProxy = raw.IsProxy

	return rv, nil
}
