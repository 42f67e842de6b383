package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pubaddr/whereabouts/config"
)

func TestParseFull(t *testing.T) {
	conf, err := config.Parse(strings.NewReader(`
providers = [
    "ipinfo abcdef123456",
    "myip",
]
ttl = 300
listen = "0.0.0.0:9000"
http_timeout = "5s"
rate_limit_interval = "50ms"

[cache]
directory = "/var/cache/whereabouts"
file_name = "addresses.cache"
passphrase = "correct horse battery staple"
`))

	assert.NoError(t, err)
	assert.Equal(t, uint64(300), *conf.TTL)
	assert.Equal(t, "0.0.0.0:9000", conf.Listen)
	assert.Equal(t, 5*time.Second, conf.HTTPTimeout.Duration)
	assert.Equal(t, 50*time.Millisecond, conf.RateLimitInterval.Duration)
	assert.Equal(t, "/var/cache/whereabouts", conf.Cache.Directory)
	assert.Equal(t, "addresses.cache", conf.Cache.FileName)
	assert.Equal(t, "correct horse battery staple", conf.Cache.Passphrase)

	sources, err := conf.Sources()

	assert.NoError(t, err)
	assert.Len(t, sources, 2)
	assert.Equal(t, "abcdef123456", sources[0].Params.APIKey)
}

func TestParseDefaults(t *testing.T) {
	conf, err := config.Parse(strings.NewReader(`providers = ["ipinfo"]`))

	assert.NoError(t, err)
	assert.Nil(t, conf.TTL)
	assert.Equal(t, "127.0.0.1:8000", conf.Listen)
	assert.Equal(t, 10*time.Second, conf.HTTPTimeout.Duration)
	assert.Equal(t, 100*time.Millisecond, conf.RateLimitInterval.Duration)
	assert.Equal(t, "lookup.cache", conf.Cache.FileName)
	assert.Empty(t, conf.Cache.Passphrase)
}

func TestParseNoProviders(t *testing.T) {
	_, err := config.Parse(strings.NewReader(`listen = "127.0.0.1:8000"`))

	assert.Error(t, err)
}

func TestParseUnknownProvider(t *testing.T) {
	_, err := config.Parse(strings.NewReader(`providers = ["atlantis"]`))

	assert.Error(t, err)
}

func TestParseBadTOML(t *testing.T) {
	_, err := config.Parse(strings.NewReader(`providers = [`))

	assert.Error(t, err)
}

func TestParseBadDuration(t *testing.T) {
	_, err := config.Parse(strings.NewReader(`
providers = ["ipinfo"]
http_timeout = "yesterday"
`))

	assert.Error(t, err)
}
