package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kholland/surfcast/pkg/tides"
)

var tideCmd = &cobra.Command{
	Use:   "tide",
	Short: "Print the current tide snapshot",
	RunE:  runTide,
}

func init() {
	tideCmd.Flags().IntVar(&tideStation, "station", int(tides.SantaCruz), "NOAA tide station id")
	rootCmd.AddCommand(tideCmd)
}

func runTide(cmd *cobra.Command, args []string) error {
	client := tides.NewClient(tides.Station(tideStation))
	snap, err := client.Snapshot(cmd.Context(), time.Now())
	if err != nil {
		// The snapshot degraded to the default; still worth printing.
		fmt.Printf("warning: %v\n", err)
	}

	fmt.Printf("tide %s at %.1f ft\n", snap.State, snap.Height)
	if snap.NextHigh != nil {
		fmt.Printf("next high %.1f ft at %s\n", snap.NextHigh.Height, snap.NextHigh.Time.Format(time.Kitchen))
	}
	if snap.NextLow != nil {
		fmt.Printf("next low %.1f ft at %s\n", snap.NextLow.Height, snap.NextLow.Time.Format(time.Kitchen))
	}
	return nil
}
