// Package cli implements the sideline command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "sideline",
	Short:         "Track athletic training sessions with webcam pose estimation",
	Long:          "Sideline records training sessions from a webcam, runs pose\nestimation on each frame, and overlays a joint-angle HUD. Footage,\nmetrics, and events are filed per athlete under data/athletes.",
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(metricCmd)
	rootCmd.AddCommand(camerasCmd)
	rootCmd.AddCommand(cleanCmd)
}
