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

type MockedMyIPTestSuite struct {
	MockedProviderTestSuite

	prov wherelib.Provider
}

func (suite *MockedMyIPTestSuite) SetupTest() {
	suite.MockedProviderTestSuite.SetupTest()

	source, err := providers.Parse("myip")
	if err != nil {
		panic(err)
	}

	suite.prov = source.Provider
}

func (suite *MockedMyIPTestSuite) TestNoTargetLookup() {
	suite.False(suite.prov.SupportsTargetLookup())

	_, err := suite.lookup(suite.prov, wherelib.Parameters{},
		net.ParseIP("23.22.13.113"))

	suite.ErrorIs(err, wherelib.ErrTargetNotSupported)
	suite.Equal(0, httpmock.GetTotalCallCount())
}

func (suite *MockedMyIPTestSuite) TestLookupOk() {
	httpmock.RegisterResponder("GET",
		"https://api.my-ip.io/v2/ip.json",
		httpmock.NewStringResponder(http.StatusOK, `{
  "success": true,
  "ip": "23.22.13.113",
  "country": {"code": "US", "name": "United States"},
  "region": "Virginia",
  "city": "Ashburn",
  "location": {"lat": 39.03, "lon": -77.5},
  "timeZone": "America/New_York",
  "asn": {"number": 14618, "name": "Amazon.com, Inc."}
}`))

	result, err := suite.lookup(suite.prov, wherelib.Parameters{}, nil)

	suite.NoError(err)
	suite.Equal("23.22.13.113", result.IP.String())
	suite.Equal("US", result.CountryCode)
	suite.Equal("14618", result.ASN)
	suite.Equal("Amazon.com, Inc.", result.ASNOrg)
}

func TestMyIP(t *testing.T) {
	suite.Run(t, &MockedMyIPTestSuite{})
}
