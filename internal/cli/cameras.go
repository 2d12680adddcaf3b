package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sideline-dev/sideline/internal/capture"
	"github.com/sideline-dev/sideline/internal/tui"
)

var camerasFlags struct {
	max int
}

var camerasCmd = &cobra.Command{
	Use:   "cameras",
	Short: "List available camera devices",
	RunE:  runCameras,
}

func init() {
	camerasCmd.Flags().IntVar(&camerasFlags.max, "max", 4, "highest camera index to probe")
}

func runCameras(cmd *cobra.Command, args []string) error {
	found := 0
	for i := 0; i <= camerasFlags.max; i++ {
		if capture.Probe(i) {
			fmt.Printf("Camera %d: %s\n", i, tui.SuccessStyle.Render("OK"))
			found++
		} else {
			fmt.Printf("Camera %d: %s\n", i, tui.DimStyle.Render("NOT AVAILABLE"))
		}
	}
	if found == 0 {
		fmt.Println(tui.WarningStyle.Render("No cameras found."))
	}
	return nil
}
