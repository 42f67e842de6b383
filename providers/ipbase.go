package providers

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"

	"github.com/pubaddr/whereabouts/wherelib"
)

// https://ipbase.com/docs/info
type ipbaseResponse struct {
	Data struct {
		IP         string `json:"ip"`
		Hostname   string `json:"hostname"`
		Connection struct {
			ASN          *int64 `json:"asn"`
			Organization string `json:"organization"`
		} `json:"connection"`
		Location struct {
			Latitude  *float64 `json:"latitude"`
			Longitude *float64 `json:"longitude"`
			Zip       string   `json:"zip"`
			Continent struct {
				Name string `json:"name"`
			} `json:"continent"`
			Country struct {
				Alpha2 string `json:"alpha2"`
				Name   string `json:"name"`
			} `json:"country"`
			City struct {
				Name string `json:"name"`
			} `json:"city"`
			Region struct {
				Name string `json:"name"`
			} `json:"region"`
		} `json:"location"`
		Timezone struct {
			ID string `json:"id"`
		} `json:"timezone"`
		Security struct {
			IsProxy *bool `json:"is_proxy"`
		} `json:"security"`
	} `json:"data"`
}

type ipbaseProvider struct{}

func (i ipbaseProvider) Identity() wherelib.ID {
	return wherelib.ID{Name: NameIPBase}
}

func (i ipbaseProvider) SupportsTargetLookup() bool {
	return true
}

func (i ipbaseProvider) Endpoint(_ wherelib.Parameters, target net.IP) string {
	suffix := ""
	if target != nil {
		suffix = "?ip=" + target.String()
	}

	return "https://api.ipbase.com/v2/info" + suffix
}

// ipbase.com takes the API key in a header, not in the URL.
func (i ipbaseProvider) Authenticate(req *http.Request, params wherelib.Parameters) {
	if params.APIKey != "" {
		req.Header.Set("apikey", params.APIKey)
	}
}

func (i ipbaseProvider) Parse(body []byte) (wherelib.Response, error) {
	raw := ipbaseResponse{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return wherelib.Response{}, fmt.Errorf("cannot decode a reply: %w", err)
	}

	ip, err := parseAddress(raw.Data.IP)
	if err != nil {
		return wherelib.Response{}, err
	}

	rv := wherelib.NewResponse(ip, i.Identity())
	rv.Continent = raw.Data.Location.Continent.Name
	rv.Country = raw.Data.Location.Country.Name
	rv.CountryCode = raw.Data.Location.Country.Alpha2
	rv.Region = raw.Data.Location.Region.Name
	rv.PostalCode = raw.Data.Location.Zip
	rv.City = raw.Data.Location.City.Name
	rv.Latitude = raw.Data.Location.Latitude
	rv.Longitude = raw.Data.Location.Longitude
	rv.TimeZone = raw.Data.Timezone.ID
	rv.ASN = asnString(raw.Data.Connection.ASN)
	rv.ASNOrg = raw.Data.Connection.Organization
	rv.Hostname = raw.Data.Hostname
	rv.IsProxy = raw.Data.Security.IsProxy

	return rv, nil
}
