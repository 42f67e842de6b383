package providers

import (
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/pubaddr/whereabouts/wherelib"
)

// https://ipinfo.io/json
type ipinfoResponse struct {
	IP       string `json:"ip"`
	Hostname string `json:"hostname"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Country  string `json:"country"`
	Loc      string `json:"loc"`
	Org      string `json:"org"`
	Postal   string `json:"postal"`
	Timezone string `json:"timezone"`
}

type ipinfoProvider struct{}

func (i ipinfoProvider) Identity() wherelib.ID {
	return wherelib.ID{Name: NameIPInfo}
}

func (i ipinfoProvider) SupportsTargetLookup() bool {
	return true
}

func (i ipinfoProvider) Endpoint(params wherelib.Parameters, target net.IP) string {
	prefix := ""
	if target != nil {
		prefix = target.String() + "/"
	}

	key := ""
	if params.APIKey != "" {
		key = "?token=" + params.APIKey
	}

	return "https://ipinfo.io/" + prefix + "json" + key
}

func (i ipinfoProvider) Parse(body []byte) (wherelib.Response, error) {
	raw := ipinfoResponse{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return wherelib.Response{}, fmt.Errorf("cannot decode a reply: %w", err)
	}

	ip, err := parseAddress(raw.IP)
	if err != nil {
		return wherelib.Response{}, err
	}

	rv := wherelib.NewResponse(ip, i.Identity())
	rv.Country = raw.Country
	rv.CountryCode = raw.Country
	rv.Region = raw.Region
	rv.PostalCode = raw.Postal
	rv.City = raw.City
	rv.TimeZone = raw.Timezone
	rv.ASN = raw.Org
	rv.ASNOrg = raw.Org
	rv.Hostname = raw.Hostname

	// loc comes as a "lat,lon" pair
	if coords := strings.Split(raw.Loc, ","); len(coords) == 2 {
		if latitude, err := strconv.ParseFloat(coords[0], 64); err == nil {
			rv.Latitude = &latitude
		}

		if longitude, err := strconv.ParseFloat(coords[1], 64); err == nil {
			rv.Longitude = &longitude
		}
	}

	return rv, nil
}
