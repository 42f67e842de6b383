package providers

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/pubaddr/whereabouts/wherelib"
)

// https://ipapi.co/api/
type ipapicoResponse struct {
	IP            string   `json:"ip"`
	City          string   `json:"city"`
	Region        string   `json:"region"`
	RegionCode    string   `json:"region_code"`
	CountryName   string   `json:"country_name"`
	CountryCode   string   `json:"country_code"`
	ContinentCode string   `json:"continent_code"`
	Postal        string   `json:"postal"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Timezone      string   `json:"timezone"`
	ASN           string   `json:"asn"`
	Org           string   `json:"org"`
	Hostname      string   `json:"hostname"`
}

type ipapicoProvider struct{}

func (i ipapicoProvider) Identity() wherelib.ID {
	return wherelib.ID{Name: NameIPApiCo}
}

func (i ipapicoProvider) SupportsTargetLookup() bool {
	return true
}

func (i ipapicoProvider) Endpoint(_ wherelib.Parameters, target net.IP) string {
	prefix := ""
	if target != nil {
		prefix = target.String() + "/"
	}

	return "https://ipapi.co/" + prefix + "json"
}

// ipapi.co rejects the default Go user agent, so the request is sent with a
// neutral one.
func (i ipapicoProvider) Authenticate(req *http.Request, _ wherelib.Parameters) {
	req.Header.Set("User-Agent", "nil")
}

func (i ipapicoProvider) Parse(body []byte) (wherelib.Response, error) {
	raw := ipapicoResponse{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return wherelib.Response{}, fmt.Errorf("cannot decode a reply: %w", err)
	}

	ip, err := parseAddress(raw.IP)
	if err != nil {
		return wherelib.Response{}, err
	}

	rv := wherelib.NewResponse(ip, i.Identity())
	rv.Country = raw.CountryName
	rv.CountryCode = raw.CountryCode
	rv.Region = raw.Region
	rv.RegionCode = raw.RegionCode
	rv.PostalCode = raw.Postal
	rv.City = raw.City
	rv.Latitude = raw.Latitude
	rv.Longitude = raw.Longitude
	rv.TimeZone = raw.Timezone
	rv.ASN = raw.ASN
	rv.ASNOrg = raw.Org
	rv.Hostname = raw.Hostname

	return rv, nil
}
