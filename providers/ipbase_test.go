package providers_test

import (
	"net"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"

	"github.com/pubaddr/whereabouts/providers"
	"github.com/pubaddr/whereabouts/wherelib"
)

type MockedIPBaseTestSuite struct {
	MockedProviderTestSuite

	prov wherelib.Provider
}

func (suite *MockedIPBaseTestSuite) SetupTest() {
	suite.MockedProviderTestSuite.SetupTest()

	source, err := providers.Parse("ipbase sesame")
	if err != nil {
		panic(err)
	}

	suite.prov = source.Provider
}

func (suite *MockedIPBaseTestSuite) TestKeyGoesIntoHeader() {
	httpmock.RegisterResponder("GET",
		"https://api.ipbase.com/v2/info?ip=23.22.13.113",
		func(req *http.Request) (*http.Response, error) {
			suite.Equal("sesame", req.Header.Get("apikey"))

			return httpmock.NewStringResponse(http.StatusOK, `{
  "data": {
    "ip": "23.22.13.113",
    "location": {
      "zip": "23479",
      "country": {"alpha2": "US", "name": "United States"},
      "city": {"name": "Virginia Beach"}
    },
    "security": {"is_proxy": false}
  }
}`), nil
		})

	result, err := suite.lookup(suite.prov,
		wherelib.Parameters{APIKey: "sesame"},
		net.ParseIP("23.22.13.113"))

	suite.NoError(err)
	suite.Equal("United States", result.Country)
	suite.Equal("US", result.CountryCode)
	suite.Equal("Virginia Beach", result.City)
	suite.False(*result.IsProxy)
	suite.NotContains(suite.prov.Endpoint(wherelib.Parameters{APIKey: "sesame"}, nil), "sesame")
}

func TestIPBase(t *testing.T) {
	suite.Run(t, &MockedIPBaseTestSuite{})
}
