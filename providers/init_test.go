package providers_test

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"

	"github.com/pubaddr/whereabouts/wherelib"
)

type MockedProviderTestSuite struct {
	suite.Suite

	http wherelib.HTTPClient
}

func (suite *MockedProviderTestSuite) SetupSuite() {
	httpmock.Activate()
}

func (suite *MockedProviderTestSuite) TearDownSuite() {
	httpmock.DeactivateAndReset()
}

func (suite *MockedProviderTestSuite) SetupTest() {
	suite.http = wherelib.NewHTTPClient(&http.Client{},
		"test-agent",
		time.Millisecond,
		100)
}

func (suite *MockedProviderTestSuite) TearDownTest() {
	httpmock.Reset()
}

func (suite *MockedProviderTestSuite) lookup(prov wherelib.Provider,
	params wherelib.Parameters,
	target net.IP) (wherelib.Response, error) {
	return wherelib.NewService(suite.http, prov, params).Lookup(context.Background(), target)
}
