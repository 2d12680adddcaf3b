package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sideline-dev/sideline/internal/log"
	"github.com/sideline-dev/sideline/internal/metrics"
	"github.com/sideline-dev/sideline/internal/session"
)

var metricFlags struct {
	rep int
}

var metricCmd = &cobra.Command{
	Use:   "metric <session-id> <name> <value> [notes]",
	Short: "Append a metric to a session",
	Long:  "Appends one row to a session's metrics.csv, for example a rep\ncount or a measured joint angle noted during review.",
	Args:  cobra.RangeArgs(3, 4),
	RunE:  runMetric,
}

func init() {
	metricCmd.Flags().IntVar(&metricFlags.rep, "rep", 0, "rep index for the metric")
}

func runMetric(cmd *cobra.Command, args []string) error {
	sessionID, name := args[0], args[1]
	value, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("value %q is not a number", args[2])
	}
	notes := ""
	if len(args) == 4 {
		notes = args[3]
	}

	store, err := session.NewStore(storePath())
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.GetSession(sessionID)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("session %q not found", sessionID)
	}

	meta, err := session.ReadMetadata(filepath.Join(rec.SessionDir, "session_meta.json"))
	if err != nil {
		return err
	}

	row := metrics.Row{RepIndex: metricFlags.rep, Name: name, Value: value, Notes: notes}
	if err := metrics.NewLog(meta.Paths.MetricsPath, meta.Context()).Append(row); err != nil {
		return err
	}

	_ = log.NewLogger(meta.Paths.EventsPath).Append(log.Event{
		Event:     log.EventMetricLogged,
		SessionID: sessionID,
		Metric:    name,
		Value:     value,
	})

	fmt.Printf("Logged %s=%v for %s\n", name, value, sessionID)
	return nil
}
