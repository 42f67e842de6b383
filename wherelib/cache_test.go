package wherelib_test

import (
	"io/fs"
	"net"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/pubaddr/whereabouts/wherelib"
)

type CacheTestSuite struct {
	suite.Suite

	fs    afero.Fs
	cache *wherelib.Cache
}

func (suite *CacheTestSuite) SetupTest() {
	suite.fs = afero.NewMemMapFs()
	suite.cache = suite.makeCache("")
}

func (suite *CacheTestSuite) makeCache(passphrase string) *wherelib.Cache {
	return wherelib.NewCache(wherelib.CacheOptions{
		Fs:         suite.fs,
		Directory:  "/cache",
		FileName:   "lookup.cache",
		Passphrase: passphrase,
	})
}

func (suite *CacheTestSuite) makeResponse(ip string) wherelib.Response {
	return wherelib.NewResponse(net.ParseIP(ip), wherelib.ID{Name: "testbackend"})
}

func (suite *CacheTestSuite) TestPath() {
	suite.Equal("/cache/lookup.cache", suite.cache.Path())
}

func (suite *CacheTestSuite) TestLoadMissingFile() {
	err := suite.cache.Load()

	suite.ErrorIs(err, fs.ErrNotExist)
}

func (suite *CacheTestSuite) TestLoadCorruptedFile() {
	suite.NoError(afero.WriteFile(suite.fs,
		"/cache/lookup.cache", []byte("definitely not json"), 0o600))

	err := suite.cache.Load()

	suite.ErrorIs(err, wherelib.ErrCacheCorrupted)
}

func (suite *CacheTestSuite) TestRoundtrip() {
	suite.cache.UpdateCurrent(suite.makeResponse("11.1.1.1"), nil)
	suite.NoError(suite.cache.Save())

	other := suite.makeCache("")

	suite.NoError(other.Load())

	response, ok := other.Current()

	suite.True(ok)
	suite.Equal("11.1.1.1", response.IP.String())
	suite.False(other.CurrentIsExpired())
}

func (suite *CacheTestSuite) TestEncryptedRoundtrip() {
	encrypted := suite.makeCache("correct horse battery staple")

	encrypted.UpdateCurrent(suite.makeResponse("11.1.1.1"), nil)
	suite.NoError(encrypted.Save())

	raw, err := afero.ReadFile(suite.fs, "/cache/lookup.cache")

	suite.NoError(err)
	suite.NotContains(string(raw), "11.1.1.1")

	other := suite.makeCache("correct horse battery staple")

	suite.NoError(other.Load())

	response, ok := other.Current()

	suite.True(ok)
	suite.Equal("11.1.1.1", response.IP.String())
}

func (suite *CacheTestSuite) TestWrongPassphrase() {
	encrypted := suite.makeCache("correct horse battery staple")

	encrypted.UpdateCurrent(suite.makeResponse("11.1.1.1"), nil)
	suite.NoError(encrypted.Save())

	other := suite.makeCache("hunter2")

	suite.ErrorIs(other.Load(), wherelib.ErrCacheEncryption)
}

func (suite *CacheTestSuite) TestPlaintextFileWithEncryptedCache() {
	suite.cache.UpdateCurrent(suite.makeResponse("11.1.1.1"), nil)
	suite.NoError(suite.cache.Save())

	encrypted := suite.makeCache("correct horse battery staple")

	suite.ErrorIs(encrypted.Load(), wherelib.ErrCacheEncryption)
}

func (suite *CacheTestSuite) TestCurrentAndTargetsAreIsolated() {
	target := net.ParseIP("22.2.2.2")

	suite.cache.UpdateTarget(target, suite.makeResponse("22.2.2.2"), nil)

	_, ok := suite.cache.Current()

	suite.False(ok)
	suite.True(suite.cache.CurrentIsExpired())

	response, ok := suite.cache.Target(target)

	suite.True(ok)
	suite.Equal("22.2.2.2", response.IP.String())
	suite.False(suite.cache.TargetIsExpired(target))

	_, ok = suite.cache.Target(net.ParseIP("33.3.3.3"))

	suite.False(ok)
	suite.True(suite.cache.TargetIsExpired(net.ParseIP("33.3.3.3")))
}

func (suite *CacheTestSuite) TestReadsReturnCopies() {
	suite.cache.UpdateCurrent(suite.makeResponse("11.1.1.1"), nil)

	first, _ := suite.cache.Current()
	first.IP[0] = 99

	second, _ := suite.cache.Current()

	suite.Equal("11.1.1.1", second.IP.String())
}

func (suite *CacheTestSuite) TestClear() {
	suite.cache.UpdateCurrent(suite.makeResponse("11.1.1.1"), nil)
	suite.cache.UpdateTarget(net.ParseIP("22.2.2.2"), suite.makeResponse("22.2.2.2"), nil)

	suite.cache.Clear()

	_, ok := suite.cache.Current()

	suite.False(ok)

	_, ok = suite.cache.Target(net.ParseIP("22.2.2.2"))

	suite.False(ok)
}

func (suite *CacheTestSuite) TestDelete() {
	suite.cache.UpdateCurrent(suite.makeResponse("11.1.1.1"), nil)
	suite.NoError(suite.cache.Save())
	suite.NoError(suite.cache.Delete())

	exists, err := afero.Exists(suite.fs, "/cache/lookup.cache")

	suite.NoError(err)
	suite.False(exists)
}

func (suite *CacheTestSuite) TestTTLZeroExpiresImmediately() {
	ttl := uint64(0)

	suite.cache.UpdateCurrent(suite.makeResponse("11.1.1.1"), &ttl)

	suite.True(suite.cache.CurrentIsExpired())
}

func (suite *CacheTestSuite) TestTTLLongDoesNotExpire() {
	ttl := uint64(3600)

	suite.cache.UpdateCurrent(suite.makeResponse("11.1.1.1"), &ttl)

	suite.False(suite.cache.CurrentIsExpired())
}

func TestCache(t *testing.T) {
	suite.Run(t, &CacheTestSuite{})
}

func TestRecordExpiry(t *testing.T) {
	response := wherelib.NewResponse(net.ParseIP("11.1.1.1"), wherelib.ID{Name: "testbackend"})

	record := wherelib.NewRecord(response, nil)
	if record.IsExpired() {
		t.Error("a record without a ttl must never expire")
	}

	ttl := uint64(1)
	record = wherelib.Record{
		Response:     response,
		ResponseTime: time.Now().Add(-2 * time.Second),
		TTL:          &ttl,
	}

	if !record.IsExpired() {
		t.Error("a backdated record must be expired")
	}
}
