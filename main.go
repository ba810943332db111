package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kholland/surfcast/pkg/cache"
	"github.com/kholland/surfcast/pkg/forecast"
	"github.com/kholland/surfcast/pkg/handlers"
	"github.com/kholland/surfcast/pkg/metrics"
	"github.com/kholland/surfcast/pkg/ndbc"
	"github.com/kholland/surfcast/pkg/openmeteo"
	"github.com/kholland/surfcast/pkg/report"
	"github.com/kholland/surfcast/pkg/scoring"
	"github.com/kholland/surfcast/pkg/sunset"
	"github.com/kholland/surfcast/pkg/tides"
)

type Config struct {
	Port   string `default:"8080"`
	Prefix string `default:"/"`

	// The break this instance reports on.
	BuoyStation string  `default:"46269" split_words:"true"`
	TideStation int     `default:"9413745" split_words:"true"`
	Latitude    float64 `default:"36.9741"`
	Longitude   float64 `default:"-122.0308"`

	// Scoring profile, overridable per deployment.
	ScoreProfile string `default:"canonical" split_words:"true"`

	CacheTTL     time.Duration `default:"5m" split_words:"true"`
	CacheEntries int           `default:"16" split_words:"true"`
}

func main() {
	// A .env file is optional; real deployments set the environment.
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded configuration from .env")
	}

	var env Config
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal(err.Error())
	}

	profile, ok := scoring.ProfileByName(env.ScoreProfile)
	if !ok {
		log.Fatalf("Unknown scoring profile %q", env.ScoreProfile)
	}
	engine := scoring.NewEngine(profile, nil)

	tideClient := tides.NewClient(tides.Station(env.TideStation))
	builder := &report.Builder{
		Buoy:       ndbc.NewClient(env.BuoyStation),
		Forecast:   openmeteo.NewClient(env.Latitude, env.Longitude),
		Tides:      tideClient,
		Engine:     engine,
		Summarizer: forecast.NewSummarizer(engine, nil),
		Place:      sunset.SantaCruz,
		Cache:      cache.NewTimed(env.CacheTTL, env.CacheEntries),
	}

	r := mux.NewRouter().StrictSlash(true)
	r.Use(metrics.LatencyHandler)
	r.Handle("/metrics", promhttp.Handler())

	s := r.PathPrefix(env.Prefix).Subrouter()
	handlers.Register(s, &handlers.Env{
		Builder:    builder,
		TideClient: tideClient,
		Place:      sunset.SantaCruz,
		Store:      handlers.NewStore(),
	})

	srv := &http.Server{
		Handler:      r,
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	log.Printf("Listening and serving on %s%s", srv.Addr, env.Prefix)
	log.Fatal(srv.ListenAndServe())
}
