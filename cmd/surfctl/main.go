package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "surfctl",
	Short: "surfctl - surf report from the command line",
	Long: `surfctl fetches the same buoy, forecast, and tide data as the server
and prints a one-shot surf report, or scores conditions supplied by hand.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
