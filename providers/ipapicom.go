package providers

import (
	"encoding/json"
	"fmt"
	"net"

	"github.com/pubaddr/whereabouts/wherelib"
)

// The fields bitmask asks ip-api.com for every field its free tier knows
// about: https://ip-api.com/docs/api:json
const ipapicomFields = "66846719"

type ipapicomResponse struct {
	Query         string   `json:"query"`
	Status        string   `json:"status"`
	Continent     string   `json:"continent"`
	ContinentCode string   `json:"continentCode"`
	Country       string   `json:"country"`
	CountryCode   string   `json:"countryCode"`
	Region        string   `json:"region"`
	RegionName    string   `json:"regionName"`
	City          string   `json:"city"`
	Zip           string   `json:"zip"`
	Lat           *float64 `json:"lat"`
	Lon           *float64 `json:"lon"`
	Timezone      string   `json:"timezone"`
	ISP           string   `json:"isp"`
	Org           string   `json:"org"`
	AS            string   `json:"as"`
	Reverse       string   `json:"reverse"`
	Proxy         *bool    `json:"proxy"`
}

type ipapicomProvider struct{}

func (i ipapicomProvider) Identity() wherelib.ID {
	return wherelib.ID{Name: NameIPApiCom}
}

func (i ipapicomProvider) SupportsTargetLookup() bool {
	return true
}

func (i ipapicomProvider) Endpoint(_ wherelib.Parameters, target net.IP) string {
	suffix := ""
	if target != nil {
		suffix = target.String()
	}

	return "http://ip-api.com/json/" + suffix + "?fields=" + ipapicomFields
}

func (i ipapicomProvider) Parse(body []byte) (wherelib.Response, error) {
	raw := ipapicomResponse{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return wherelib.Response{}, fmt.Errorf("cannot decode a reply: %w", err)
	}

	if raw.Status != "" && raw.Status != "success" {
		return wherelib.Response{}, fmt.Errorf("backend reported status %q", raw.Status)
	}

	ip, err := parseAddress(raw.Query)
	if err != nil {
		return wherelib.Response{}, err
	}

	rv := wherelib.NewResponse(ip, i.Identity())
	rv.Continent = raw.Continent
	rv.Country = raw.Country
	rv.CountryCode = raw.CountryCode
	rv.Region = raw.RegionName
	rv.RegionCode = raw.Region
	rv.PostalCode = raw.Zip
	rv.City = raw.City
	rv.Latitude = raw.Lat
	rv.Longitude = raw.Lon
	rv.TimeZone = raw.Timezone
	rv.ASN = raw.AS
	rv.ASNOrg = raw.Org
	rv.Hostname = raw.Reverse
	rv.IsProxy = raw.Proxy

	return rv, nil
}
