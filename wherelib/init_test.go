package wherelib_test

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/pubaddr/whereabouts/wherelib"
)

// testProvider is a configurable stand-in backend. Parse decodes the
// minimal {"ip": "..."} shape unless overridden.
type testProvider struct {
	name     string
	endpoint string
	noTarget bool
	parse    func(body []byte) (wherelib.Response, error)
}

func (p testProvider) Identity() wherelib.ID {
	return wherelib.ID{Name: p.name}
}

func (p testProvider) SupportsTargetLookup() bool {
	return !p.noTarget
}

func (p testProvider) Endpoint(_ wherelib.Parameters, _ net.IP) string {
	return p.endpoint
}

func (p testProvider) Parse(body []byte) (wherelib.Response, error) {
	if p.parse != nil {
		return p.parse(body)
	}

	raw := struct {
		IP string `json:"ip"`
	}{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return wherelib.Response{}, err
	}

	ip := net.ParseIP(raw.IP)
	if ip == nil {
		return wherelib.Response{}, errors.New("invalid ip address")
	}

	return wherelib.NewResponse(ip, p.Identity()), nil
}

type authTestProvider struct {
	testProvider

	header string
	value  string
}

func (p authTestProvider) Authenticate(req *http.Request, _ wherelib.Parameters) {
	req.Header.Set(p.header, p.value)
}

type LoggerMock struct {
	mock.Mock
}

func (m *LoggerMock) LookupError(id wherelib.ID, err error) {
	m.Called(id, err)
}

func (m *LoggerMock) CacheInfo(message string) {
	m.Called(message)
}

func (m *LoggerMock) CacheError(err error) {
	m.Called(err)
}

type MockedTestSuite struct {
	suite.Suite

	http wherelib.HTTPClient
}

func (suite *MockedTestSuite) SetupSuite() {
	httpmock.Activate()
}

func (suite *MockedTestSuite) TearDownSuite() {
	httpmock.DeactivateAndReset()
}

func (suite *MockedTestSuite) SetupTest() {
	suite.http = wherelib.NewHTTPClient(&http.Client{},
		"test-agent",
		time.Millisecond,
		100)
}

func (suite *MockedTestSuite) TearDownTest() {
	httpmock.Reset()
}
