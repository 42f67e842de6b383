// config defines a configuration file format for the whereabouts tool.
//
// Configuration file is a TOML file:
//
//	providers = [
//	    "ipinfo abcdef123456",
//	    "ipapicom",
//	    "myip",
//	]
//	ttl = 300
//	listen = "127.0.0.1:8000"
//	http_timeout = "10s"
//	rate_limit_interval = "100ms"
//
//	[cache]
//	directory = "/var/cache/whereabouts"
//	file_name = "lookup.cache"
//	passphrase = "correct horse battery staple"
//
// Each entry of the providers list is a provider name optionally followed
// by an API key, separated by whitespace. The list order defines the
// fallback order. ttl is given in seconds; if omitted, cached records
// never expire. If a passphrase is set, the cache file is encrypted at
// rest.
package config

import (
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/juju/errors"

	"github.com/pubaddr/whereabouts/providers"
	"github.com/pubaddr/whereabouts/wherelib"
)

const defaultListen = "127.0.0.1:8000"

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	value, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Annotate(err, "incorrect duration")
	}

	d.Duration = value

	return nil
}

type CacheConfig struct {
	Directory  string `toml:"directory"`
	FileName   string `toml:"file_name"`
	Passphrase string `toml:"passphrase"`
}

type Config struct {
	Providers         []string    `toml:"providers"`
	TTL               *uint64     `toml:"ttl"`
	Listen            string      `toml:"listen"`
	HTTPTimeout       duration    `toml:"http_timeout"`
	RateLimitInterval duration    `toml:"rate_limit_interval"`
	Cache             CacheConfig `toml:"cache"`
}

// Sources builds the fallback chain in the configured order.
func (c *Config) Sources() ([]wherelib.Source, error) {
	sources, err := providers.ParseAll(c.Providers)
	if err != nil {
		return nil, errors.Annotate(err, "cannot build providers")
	}

	return sources, nil
}

func Parse(input io.Reader) (*Config, error) {
	rawConf, err := io.ReadAll(input)
	if err != nil {
		return nil, errors.Annotate(err, "cannot read config")
	}

	conf := &Config{}
	if _, err := toml.Decode(string(rawConf), conf); err != nil {
		return nil, errors.Annotate(err, "cannot parse config")
	}

	setDefaults(conf)

	if err := validate(conf); err != nil {
		return nil, errors.Annotate(err, "invalid config")
	}

	return conf, nil
}

func setDefaults(conf *Config) {
	if conf.Listen == "" {
		conf.Listen = defaultListen
	}

	if conf.HTTPTimeout.Duration == 0 {
		conf.HTTPTimeout.Duration = wherelib.DefaultHTTPTimeout
	}

	if conf.RateLimitInterval.Duration == 0 {
		conf.RateLimitInterval.Duration = wherelib.DefaultRateLimitInterval
	}

	if conf.Cache.FileName == "" {
		conf.Cache.FileName = wherelib.DefaultCacheFileName
	}
}

func validate(conf *Config) error {
	if len(conf.Providers) == 0 {
		return errors.New("at least one provider is required")
	}

	for _, v := range conf.Providers {
		if _, err := providers.Parse(v); err != nil {
			return errors.Annotatef(err, "incorrect provider %q", v)
		}
	}

	if conf.HTTPTimeout.Duration < 0 {
		return errors.New("http_timeout cannot be negative")
	}

	if conf.RateLimitInterval.Duration < 0 {
		return errors.New("rate_limit_interval cannot be negative")
	}

	return nil
}
