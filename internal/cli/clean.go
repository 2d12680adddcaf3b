package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sideline-dev/sideline/internal/cleanup"
)

var cleanFlags struct {
	keep   int
	dryRun bool
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Prune old session directories",
	Long:  "Removes session directories older than cleanup.max_age_days from\nthe config. With --keep N, keeps only the N most recent sessions\nper athlete instead. Pruned sessions are dropped from the index.",
	RunE:  runClean,
}

func init() {
	cleanCmd.Flags().IntVar(&cleanFlags.keep, "keep", 0, "keep only the N most recent sessions")
	cleanCmd.Flags().BoolVar(&cleanFlags.dryRun, "dry-run", false, "report what would be removed without deleting")
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var pruned []string
	if cleanFlags.keep > 0 {
		pruned, err = cleanup.PruneKeepRecent(cfg.Storage.AthletesDir, cleanFlags.keep, cleanFlags.dryRun)
	} else {
		if cfg.Cleanup.MaxAgeDays <= 0 {
			fmt.Println("cleanup.max_age_days is 0; pass --keep or set it in config.yaml.")
			return nil
		}
		pruned, err = cleanup.PruneByAge(cfg.Storage.AthletesDir, cfg.Cleanup.MaxAgeDays, cleanFlags.dryRun)
	}
	if err != nil {
		return err
	}

	verb := "Removed"
	if cleanFlags.dryRun {
		verb = "Would remove"
	}
	if len(pruned) == 0 {
		fmt.Println("Nothing to prune.")
		return nil
	}
	if !cleanFlags.dryRun {
		if err := dropFromIndex(pruned); err != nil {
			return err
		}
	}
	for _, name := range pruned {
		fmt.Printf("%s %s\n", verb, name)
	}
	fmt.Printf("%s %d session(s).\n", verb, len(pruned))
	return nil
}
