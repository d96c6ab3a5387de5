package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gruis/stockboard/config"
	"github.com/gruis/stockboard/dashboard"
	"github.com/gruis/stockboard/quotes"
	"github.com/gruis/stockboard/scheduler"
	"github.com/gruis/stockboard/store"
)

const AppName = "stockboard"

type AppConfig struct {
	Symbols   []string `mapstructure:"symbols"`
	Provider  string   `mapstructure:"provider"`
	APIKey    string   `mapstructure:"api-key"`
	APIHost   string   `mapstructure:"api-host"`
	APIURL    string   `mapstructure:"api-url"`
	APIRegion string   `mapstructure:"api-region"`

	HTTPTimeout     time.Duration `mapstructure:"http-timeout"`
	RateLimit       float64       `mapstructure:"rate-limit"`
	RateBurst       int           `mapstructure:"rate-burst"`
	Workers         int           `mapstructure:"workers"`
	RefreshInterval time.Duration `mapstructure:"refresh-interval"`
	SampleSize      int           `mapstructure:"sample-size"`
	SampleSeed      int64         `mapstructure:"sample-seed"`

	Store            string `mapstructure:"store"`
	RedisAddr        string `mapstructure:"redis-addr"`
	RedisPassword    string `mapstructure:"redis-password"`
	RedisDB          int    `mapstructure:"redis-db"`
	Database         string `mapstructure:"database"`
	DatabasePassword string `mapstructure:"database-password"`

	Port int  `mapstructure:"port"`
	Seed bool `mapstructure:"seed"`

	ServerURL    string        `mapstructure:"server-url"`
	PollInterval time.Duration `mapstructure:"poll-interval"`
	Blink        time.Duration `mapstructure:"blink"`
	Sort         string        `mapstructure:"sort"`
	Order        string        `mapstructure:"order"`
}

func (ac AppConfig) schedulerConfig() scheduler.Config {
	return scheduler.NewConfig(scheduler.Config{
		Symbols:    ac.Symbols,
		SampleSize: ac.SampleSize,
		Interval:   ac.RefreshInterval,
		Seed:       ac.SampleSeed,
	})
}

func (ac AppConfig) storeOptions() store.Options {
	return store.Options{
		Driver:        ac.Store,
		RedisAddr:     ac.RedisAddr,
		RedisPassword: ac.RedisPassword,
		RedisDB:       ac.RedisDB,
		DatabaseURL:   config.DatabaseURL(ac.Database, ac.DatabasePassword),
	}
}

func (ac AppConfig) provider() (quotes.Provider, error) {
	return quotes.New(quotes.Options{
		Name: ac.Provider,
		RapidAPI: quotes.RapidAPI{
			Key:     ac.APIKey,
			Host:    ac.APIHost,
			BaseURL: ac.APIURL,
			Region:  ac.APIRegion,
			Client:  &http.Client{Timeout: ac.HTTPTimeout},
		},
	})
}

func init() {
	config.AddStringSlice("symbols", scheduler.DefaultSymbols, "ticker symbols to track")
	config.AddString("provider", "rapidapi", "quote provider: rapidapi, yahoo")
	config.AddString("api-key", "", "RapidAPI key (env STOCK_API_KEY)")
	config.AddString("api-host", quotes.DefaultHost, "RapidAPI host header")
	config.AddString("api-url", quotes.DefaultBaseURL, "quote API base url")
	config.AddString("api-region", "US", "quote API region")
	config.AddDuration("http-timeout", 10*time.Second, "timeout for a single quote request")
	config.AddFloat64("rate-limit", scheduler.DefaultRate, "quote requests per second")
	config.AddInt("rate-burst", scheduler.DefaultBurst, "quote requests allowed at once")
	config.AddInt("workers", scheduler.DefaultWorkers, "concurrent quote fetches")
	config.AddDuration("refresh-interval", scheduler.DefaultInterval, "time between price refreshes")
	config.AddInt("sample-size", scheduler.DefaultSampleSize, "symbols refreshed per interval")
	config.AddInt64("sample-seed", 0, "seed for picking refreshed symbols; 0 uses the clock")

	config.AddString("store", "redis", "document store: redis, postgres")
	config.AddString("redis-addr", "localhost:6379", "redis address")
	config.AddString("redis-password", "", "redis password")
	config.AddInt("redis-db", 0, "redis database")
	config.AddString("database", "", "postgres url; <password> is replaced (env DATABASE)")
	config.AddString("database-password", "", "postgres password (env DATABASE_PASSWORD)")

	config.AddInt("port", 5000, "http port (env PORT)")
	config.AddBool("seed", false, "populate the store before serving")

	config.AddString("server-url", "http://127.0.0.1:5000", "server polled by the watch command")
	config.AddDuration("poll-interval", dashboard.DefaultPollInterval, "time between dashboard polls")
	config.AddDuration("blink", dashboard.DefaultBlink, "how long a changed row stays highlighted")
	config.AddString("sort", "", "sort dashboard rows by: name, price")
	config.AddString("order", "asc", "sort order: asc, desc")
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] [serve|seed|purge|watch]\n\n", AppName)
	flag.PrintDefaults()
}

func main() {
	log.SetLevel(log.WarnLevel)
	flag.Usage = usage
	config.Load(AppName)
	args := flag.Args()
	log.WithField("commands", args).Debug("command line parsed")

	var appConfig AppConfig
	if err := viper.Unmarshal(&appConfig); err != nil {
		log.WithError(err).Fatal("cannot parse configuration")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := "serve"
	if len(args) > 0 {
		cmd = args[0]
	}

	var err error
	switch cmd {
	case "serve":
		err = serve(ctx, appConfig)
	case "seed":
		err = seed(ctx, appConfig)
	case "purge":
		err = purge(ctx, appConfig)
	case "watch":
		err = watch(ctx, appConfig)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.WithError(err).WithField("command", cmd).Fatal("command failed")
	}
}
