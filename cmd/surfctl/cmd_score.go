package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kholland/surfcast/pkg/scoring"
	"github.com/kholland/surfcast/pkg/tides"
)

var (
	waveHeight float64
	wavePeriod float64
	swellDir   float64
	windSpeed  float64
	windDir    float64
	tideState  string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score conditions supplied as flags, no network",
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().Float64Var(&waveHeight, "height", 3, "wave height in feet")
	scoreCmd.Flags().Float64Var(&wavePeriod, "period", 10, "wave period in seconds")
	scoreCmd.Flags().Float64Var(&swellDir, "swell-dir", 90, "swell direction in degrees")
	scoreCmd.Flags().Float64Var(&windSpeed, "wind", 5, "wind speed in knots")
	scoreCmd.Flags().Float64Var(&windDir, "wind-dir", 270, "wind direction in degrees")
	scoreCmd.Flags().StringVar(&tideState, "tide", string(tides.Mid), "tide state")
	scoreCmd.Flags().StringVar(&profileName, "profile", "canonical", "scoring profile")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	profile, ok := scoring.ProfileByName(profileName)
	if !ok {
		return fmt.Errorf("unknown scoring profile %q", profileName)
	}

	result, err := scoring.NewEngine(profile, nil).Score(scoring.SurfData{
		WaveHeight:     waveHeight,
		WavePeriod:     wavePeriod,
		SwellDirection: swellDir,
		WindSpeed:      windSpeed,
		WindDirection:  windDir,
		Tide:           tides.State(tideState),
	})
	if err != nil {
		return err
	}

	fmt.Printf("%d/100 %s (%s)\n", result.Score, result.Rating, result.Flavor)
	if result.Surfable {
		fmt.Println("surfable: yes")
	} else {
		fmt.Println("surfable: no")
	}
	return nil
}
