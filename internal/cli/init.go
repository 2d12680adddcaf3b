package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sideline-dev/sideline/internal/config"
	"github.com/sideline-dev/sideline/internal/roster"
	"github.com/sideline-dev/sideline/internal/tui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize sideline in the current directory",
	Long:  "Creates .sideline/ with a default config, the data directories,\nand sample rosters for any sport that does not have one yet.",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."

	if _, err := os.Stat(config.Dir(dir)); err == nil {
		fmt.Print("Sideline is already initialized here. Reinitialize? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if err := config.WriteConfig(dir, cfg); err != nil {
		return err
	}

	for _, d := range []string{cfg.Storage.AthletesDir, cfg.Storage.RostersDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", d, err)
		}
	}

	created, err := writeSampleRosters(cfg.Storage.RostersDir)
	if err != nil {
		return err
	}

	fmt.Println(tui.SuccessStyle.Render("Initialized sideline."))
	fmt.Printf("  Config:   %s\n", filepath.Join(config.Dir(dir), "config.yaml"))
	fmt.Printf("  Athletes: %s\n", cfg.Storage.AthletesDir)
	fmt.Printf("  Rosters:  %s\n", cfg.Storage.RostersDir)
	for _, name := range created {
		fmt.Printf("  Sample roster: %s\n", name)
	}
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit the rosters to match your team")
	fmt.Println("  2. Set pose.model_path in config.yaml to a MoveNet ONNX model")
	fmt.Println("  3. Run: sideline run")
	return nil
}

// writeSampleRosters creates starter roster files, skipping any sport
// whose roster already exists. Returns the paths it wrote.
func writeSampleRosters(rostersDir string) ([]string, error) {
	samples := map[string]roster.Roster{
		"basketball": {
			Sport: "basketball",
			Players: []roster.Player{
				{PlayerID: "bb001", FullName: "Sample Player One", Number: 4, Position: "PG", ClassYear: "JR"},
				{PlayerID: "bb002", FullName: "Sample Player Two", Number: 12, Position: "C", ClassYear: "SR"},
			},
		},
		"football": {
			Sport: "football",
			Teams: map[string]map[string][]roster.Player{
				"Offense": {
					"QB": {{PlayerID: "fb001", FullName: "Sample Quarterback", Number: 7, Position: "QB", ClassYear: "SO"}},
					"WR": {{PlayerID: "fb002", FullName: "Sample Receiver", Number: 81, Position: "WR", ClassYear: "JR"}},
				},
				"Defense": {
					"DB": {{PlayerID: "fb003", FullName: "Sample Back", Number: 21, Position: "DB", ClassYear: "SR"}},
				},
			},
		},
	}

	var created []string
	for sport, r := range samples {
		path := roster.Path(rostersDir, sport)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return created, fmt.Errorf("marshalling %s roster: %w", sport, err)
		}
		if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
			return created, fmt.Errorf("writing %s roster: %w", sport, err)
		}
		created = append(created, path)
	}
	return created, nil
}
