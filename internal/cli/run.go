package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sideline-dev/sideline/internal/capture"
	"github.com/sideline-dev/sideline/internal/cleanup"
	"github.com/sideline-dev/sideline/internal/config"
	"github.com/sideline-dev/sideline/internal/hud"
	"github.com/sideline-dev/sideline/internal/log"
	"github.com/sideline-dev/sideline/internal/pose"
	"github.com/sideline-dev/sideline/internal/roster"
	"github.com/sideline-dev/sideline/internal/session"
	"github.com/sideline-dev/sideline/internal/timing"
	"github.com/sideline-dev/sideline/internal/tui"
	"github.com/sideline-dev/sideline/internal/wizard"

	"gocv.io/x/gocv"
)

var runFlags struct {
	noSave   bool
	headless bool
	camera   int

	sport    string
	player   string
	location string
	focus    string
	exercise string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start a capture session",
	Long:  "Walks the session setup wizard, then captures frames from the\nwebcam, runs pose estimation, and records the annotated stream.\nWith --sport and --player the wizard is skipped.",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runFlags.noSave, "no-save", false, "do not record video")
	runCmd.Flags().BoolVar(&runFlags.headless, "headless", false, "do not open a display window")
	runCmd.Flags().IntVar(&runFlags.camera, "camera", -1, "camera index override")
	runCmd.Flags().StringVar(&runFlags.sport, "sport", "", "sport id, skips the wizard")
	runCmd.Flags().StringVar(&runFlags.player, "player", "", "player id, skips the wizard")
	runCmd.Flags().StringVar(&runFlags.location, "location", "", "training location id")
	runCmd.Flags().StringVar(&runFlags.focus, "focus", "", "training focus id")
	runCmd.Flags().StringVar(&runFlags.exercise, "exercise", "", "exercise id")
}

func runRun(cmd *cobra.Command, args []string) error {
	// Installed before the wizard so an interrupt at a prompt cancels
	// setup instead of killing the process.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runFlags.camera >= 0 {
		cfg.Camera.Index = runFlags.camera
	}
	if runFlags.noSave {
		cfg.Video.Save = false
	}
	if runFlags.headless {
		cfg.Video.Display = false
	}

	if cfg.Cleanup.MaxAgeDays > 0 {
		pruned, err := cleanup.PruneByAge(cfg.Storage.AthletesDir, cfg.Cleanup.MaxAgeDays, false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cleanup failed: %v\n", err)
		} else if len(pruned) > 0 {
			if err := dropFromIndex(pruned); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}
			fmt.Printf("Pruned %d old session(s).\n", len(pruned))
		}
	}

	info, err := setupSession(ctx, cfg)
	if err != nil {
		if errors.Is(err, wizard.ErrCancelled) {
			fmt.Println("Session setup cancelled.")
			return nil
		}
		return err
	}

	return runCapture(ctx, cfg, info)
}

// dropFromIndex removes pruned session ids from the sqlite index so
// the browser does not list sessions whose directories are gone.
func dropFromIndex(ids []string) error {
	store, err := session.NewStore(storePath())
	if err != nil {
		return err
	}
	defer store.Close()
	return store.DeleteSessions(ids)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.ReadConfig(".")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("not initialized here, run: sideline init")
		}
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupSession builds the session record from the wizard, or from flags
// when --sport and --player are given.
func setupSession(ctx context.Context, cfg *config.Config) (*session.Info, error) {
	if runFlags.sport != "" || runFlags.player != "" {
		return sessionFromFlags(cfg)
	}
	if !tui.IsTTY() {
		return nil, fmt.Errorf("stdin is not a terminal; pass --sport and --player to skip the wizard")
	}
	return wizard.New(os.Stdin, os.Stdout, cfg.Storage.RostersDir).RunContext(ctx)
}

func sessionFromFlags(cfg *config.Config) (*session.Info, error) {
	if runFlags.sport == "" || runFlags.player == "" {
		return nil, fmt.Errorf("--sport and --player must be given together")
	}

	r, err := roster.Load(cfg.Storage.RostersDir, runFlags.sport)
	if err != nil {
		return nil, err
	}
	player, err := findPlayer(r, runFlags.player)
	if err != nil {
		return nil, err
	}

	location := runFlags.location
	if location == "" {
		location = "other"
	}

	info := &session.Info{
		Sport:    runFlags.sport,
		Location: location,
		Focus:    runFlags.focus,
		Exercise: runFlags.exercise,
		Player:   player,
		Start:    time.Now(),
	}
	info.Name = session.DisplayName(*info)
	return info, nil
}

// findPlayer resolves a player id against a flat or hierarchical roster.
func findPlayer(r *roster.Roster, id string) (session.Player, error) {
	for _, p := range r.Players {
		if p.PlayerID == id {
			sp := toSessionPlayer(p)
			sp.PositionGroup = p.Position
			return sp, nil
		}
	}
	for side, groups := range r.Teams {
		for group, players := range groups {
			for _, p := range players {
				if p.PlayerID == id {
					sp := toSessionPlayer(p)
					sp.Side = side
					sp.PositionGroup = group
					return sp, nil
				}
			}
		}
	}
	return session.Player{}, fmt.Errorf("player %q not found in roster", id)
}

func toSessionPlayer(p roster.Player) session.Player {
	return session.Player{
		PlayerID:  p.PlayerID,
		FullName:  p.FullName,
		Number:    p.Number,
		Position:  p.Position,
		ClassYear: p.ClassYear,
	}
}

func runCapture(ctx context.Context, cfg *config.Config, info *session.Info) error {
	paths := session.NewPaths(cfg.Storage.AthletesDir, *info)

	store, err := session.NewStore(storePath())
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.RecordSession(paths); err != nil {
		return err
	}
	if err := paths.Create(); err != nil {
		return err
	}

	events := log.NewLogger(paths.EventsPath)
	_ = events.Append(log.Event{Event: log.EventSessionStarted, SessionID: paths.SessionID, RunID: paths.RunID})

	estimator, err := buildEstimator(cfg)
	if err != nil {
		return err
	}
	defer estimator.Close()

	cam, err := capture.OpenDevice(cfg.Camera.Index, cfg.Camera.Width, cfg.Camera.Height)
	if err != nil {
		return err
	}
	defer cam.Close()
	width, height := capture.FrameSize(cam)

	loop := &capture.Loop{
		Source:    cam,
		Estimator: estimator,
		Overlay:   hud.New(info),
		FPS:       timing.NewTracker(0),
		Events:    events,
	}

	if cfg.Video.Save {
		writer, err := capture.NewWriter(paths.VideoPath, width, height, float64(cfg.Camera.FPS))
		if err != nil {
			return err
		}
		defer writer.Close()
		loop.Writer = writer
	}

	if cfg.Video.Display {
		window := gocv.NewWindow(cfg.Video.WindowName)
		defer window.Close()
		loop.Display = window
	}

	fmt.Printf("Recording %s. Press q to stop.\n", paths.SessionID)

	_ = events.Append(log.Event{Event: log.EventCaptureStarted, SessionID: paths.SessionID})
	stats, loopErr := loop.Run(ctx)
	_ = events.Append(log.Event{
		Event:      log.EventCaptureStopped,
		SessionID:  paths.SessionID,
		Frames:     stats.Frames,
		Detected:   stats.Detected,
		DurationMs: stats.Elapsed.Milliseconds(),
		Reason:     stats.Reason,
	})

	if err := store.CompleteSession(paths.SessionID, stats.Frames, stats.Elapsed.Milliseconds()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	_ = events.Append(log.Event{Event: log.EventSessionComplete, SessionID: paths.SessionID})

	printSummary(paths, stats)
	return loopErr
}

// buildEstimator falls back to the stub backend when movenet is
// configured without a model path, so capture still works out of the
// box. A model that fails to load is a hard error.
func buildEstimator(cfg *config.Config) (pose.Estimator, error) {
	backend := cfg.Pose.Backend
	if backend == "movenet" && cfg.Pose.ModelPath == "" {
		fmt.Fprintln(os.Stderr, tui.WarningStyle.Render("Warning: pose.model_path is not set; running without pose estimation."))
		backend = "stub"
	}
	return pose.New(pose.Config{
		Backend:       backend,
		ModelPath:     cfg.Pose.ModelPath,
		MinConfidence: cfg.Pose.MinConfidence,
	})
}

func printSummary(paths *session.Paths, stats capture.Stats) {
	body := fmt.Sprintf("%s\n\nFrames:   %d\nDetected: %d\nDuration: %s\nSaved to: %s",
		tui.TitleStyle.Render("Session complete"),
		stats.Frames, stats.Detected, stats.Elapsed.Round(time.Second), paths.SessionDir)
	fmt.Println(tui.BoxStyle.Render(body))
}

func storePath() string {
	return filepath.Join(config.Dir("."), "sessions.db")
}
