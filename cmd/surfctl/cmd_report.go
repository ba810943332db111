package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kholland/surfcast/pkg/forecast"
	"github.com/kholland/surfcast/pkg/ndbc"
	"github.com/kholland/surfcast/pkg/openmeteo"
	"github.com/kholland/surfcast/pkg/report"
	"github.com/kholland/surfcast/pkg/scoring"
	"github.com/kholland/surfcast/pkg/sunset"
	"github.com/kholland/surfcast/pkg/tides"
)

var (
	buoyStation string
	tideStation int
	latitude    float64
	longitude   float64
	profileName string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetch everything once and print a surf report",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&buoyStation, "buoy", "46269", "NDBC buoy station id")
	reportCmd.Flags().IntVar(&tideStation, "tide-station", int(tides.SantaCruz), "NOAA tide station id")
	reportCmd.Flags().Float64Var(&latitude, "lat", sunset.SantaCruz.Lat, "forecast latitude")
	reportCmd.Flags().Float64Var(&longitude, "long", sunset.SantaCruz.Long, "forecast longitude")
	reportCmd.Flags().StringVar(&profileName, "profile", "canonical", "scoring profile")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	profile, ok := scoring.ProfileByName(profileName)
	if !ok {
		return fmt.Errorf("unknown scoring profile %q", profileName)
	}
	engine := scoring.NewEngine(profile, nil)

	builder := &report.Builder{
		Buoy:       ndbc.NewClient(buoyStation),
		Forecast:   openmeteo.NewClient(latitude, longitude),
		Tides:      tides.NewClient(tides.Station(tideStation)),
		Engine:     engine,
		Summarizer: forecast.NewSummarizer(engine, nil),
		Place:      sunset.SantaCruz,
	}

	rep, err := builder.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}
	fmt.Println(rep.String())
	return nil
}
