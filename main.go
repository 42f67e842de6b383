package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/pubaddr/whereabouts/api"
	"github.com/pubaddr/whereabouts/config"
	"github.com/pubaddr/whereabouts/wherelib"
)

var (
	app = kingpin.New(
		"whereabouts",
		"Public IP address and geolocation lookup with provider fallback and local caching")

	debug = app.Flag("debug", "Run in debug mode.").
		Short('d').
		Envar("WHEREABOUTS_DEBUG").
		Bool()
	serve = app.Flag("serve", "Run an HTTP API instead of a one-shot lookup.").
		Short('s').
		Envar("WHEREABOUTS_SERVE").
		Bool()
	target = app.Flag("target", "Resolve the given address instead of the own one.").
		Short('t').
		IP()
	flush = app.Flag("flush", "Ignore cached records and force a fresh lookup.").
		Bool()
	clearCache = app.Flag("clear", "Drop the cache file and exit.").
		Bool()
	configFile = app.Arg("config-path", "Path to the config.").
			Required().
			File()
)

func init() {
	app.Version("0.1.0")
	log.SetFormatter(&log.TextFormatter{})
	log.SetLevel(log.WarnLevel)
}

func main() {
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded .env file")
	}

	kingpin.MustParse(app.Parse(os.Args[1:]))

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	conf, err := config.Parse(*configFile)
	if err != nil {
		log.Fatal(err.Error())
	}

	sources, err := conf.Sources()
	if err != nil {
		log.Fatal(err.Error())
	}

	client := makeClient(conf)

	if *clearCache {
		if err := client.Cache().Delete(); err != nil {
			log.Fatal(err.Error())
		}

		return
	}

	if *serve {
		router, err := api.MakeServer(api.Opts{
			Client:  client,
			Sources: sources,
			TTL:     conf.TTL,
		})
		if err != nil {
			log.Fatal(err.Error())
		}

		log.WithField("listen", conf.Listen).Info("Starting HTTP API")
		log.Fatal(http.ListenAndServe(conf.Listen, router).Error())
	}

	var targetIP net.IP
	if target != nil && len(*target) > 0 {
		targetIP = *target
	}

	response, err := client.CachedLookup(context.Background(), sources, targetIP, conf.TTL, *flush)
	if err != nil {
		log.Fatal(err.Error())
	}

	fmt.Println(response)
}

func makeClient(conf *config.Config) *wherelib.Client {
	httpClient := wherelib.NewHTTPClient(
		&http.Client{Timeout: conf.HTTPTimeout.Duration},
		wherelib.DefaultUserAgent,
		conf.RateLimitInterval.Duration,
		wherelib.DefaultRateLimitBurst)
	cache := wherelib.NewCache(wherelib.CacheOptions{
		Directory:  conf.Cache.Directory,
		FileName:   conf.Cache.FileName,
		Passphrase: conf.Cache.Passphrase,
	})

	return wherelib.NewClient(wherelib.Opts{
		HTTPClient: httpClient,
		Cache:      cache,
		Logger:     logger{},
	})
}
