package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sideline-dev/sideline/internal/log"
	"github.com/sideline-dev/sideline/internal/metrics"
	"github.com/sideline-dev/sideline/internal/session"
	"github.com/sideline-dev/sideline/internal/tui"
)

var sessionsFlags struct {
	limit int
	plain bool
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Browse recorded sessions",
	Long:  "Lists recorded sessions from the index. In a terminal an\ninteractive browser opens; otherwise a plain table is printed.",
	RunE:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&sessionsFlags.limit, "limit", 50, "maximum sessions to list")
	sessionsCmd.Flags().BoolVar(&sessionsFlags.plain, "plain", false, "print a table instead of the browser")
}

func runSessions(cmd *cobra.Command, args []string) error {
	store, err := session.NewStore(storePath())
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.ListSessions(sessionsFlags.limit)
	if err != nil {
		return err
	}

	if sessionsFlags.plain || !tui.IsTTY() {
		printSessionTable(records)
		return nil
	}

	return tui.Run(tui.NewBrowser(records, loadSessionDetail))
}

func printSessionTable(records []session.Record) {
	if len(records) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}
	fmt.Printf("%-35s %-12s %-20s %-16s %-10s %s\n", "SESSION", "SPORT", "PLAYER", "EXERCISE", "STATUS", "FRAMES")
	for _, rec := range records {
		context := rec.Exercise
		if context == "" {
			context = rec.Location
		}
		fmt.Printf("%-35s %-12s %-20s %-16s %-10s %d\n",
			rec.SessionID, rec.Sport, rec.PlayerName, context, rec.Status, rec.Frames)
	}
}

// loadSessionDetail renders the browser detail pane from the session's
// on-disk metadata, metrics, and events.
func loadSessionDetail(rec session.Record) (string, error) {
	var sb strings.Builder

	meta, err := session.ReadMetadata(filepath.Join(rec.SessionDir, "session_meta.json"))
	if err != nil {
		return "", err
	}

	fmt.Fprintf(&sb, "Player:   %s #%d (%s)\n", meta.Player.FullName, meta.Player.Number, meta.Player.Position)
	fmt.Fprintf(&sb, "Sport:    %s\n", meta.Sport)
	fmt.Fprintf(&sb, "Location: %s\n", meta.Location)
	if meta.Focus != "" {
		fmt.Fprintf(&sb, "Focus:    %s\n", meta.Focus)
	}
	if meta.Exercise != "" {
		fmt.Fprintf(&sb, "Exercise: %s\n", meta.Exercise)
	}
	fmt.Fprintf(&sb, "Started:  %s\n", meta.Start.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Frames:   %d\n", rec.Frames)
	fmt.Fprintf(&sb, "Video:    %s\n", meta.Paths.VideoPath)

	rows, err := metrics.NewLog(meta.Paths.MetricsPath, "").Rows()
	if err == nil && len(rows) > 0 {
		fmt.Fprintf(&sb, "\nMetrics (%d):\n", len(rows))
		for _, row := range rows {
			fmt.Fprintf(&sb, "  rep %-3d %-20s %.2f %s\n", row.RepIndex, row.Name, row.Value, row.Notes)
		}
	}

	events, err := log.NewLogger(meta.Paths.EventsPath).ReadAll()
	if err == nil && len(events) > 0 {
		fmt.Fprintf(&sb, "\nEvents (%d):\n", len(events))
		for _, e := range events {
			fmt.Fprintf(&sb, "  %s %s\n", e.Time.Local().Format("15:04:05"), e.Event)
		}
	}

	return sb.String(), nil
}
