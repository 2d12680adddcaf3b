package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/sideline-dev/sideline/internal/metrics"
)

// IDTimestampLayout is the timestamp prefix of every session id.
const IDTimestampLayout = "2006-01-02_15-04-05"

// Paths derives the on-disk layout for one session:
//
//	{base}/{sport}/{player_id}/
//	  profile.json
//	  sessions/{session_id}/
//	    session_meta.json
//	    metrics.csv
//	    events.jsonl
//	    full_video.mp4
//	    clips/
type Paths struct {
	Info  Info
	RunID string

	SessionID   string
	AthleteDir  string
	SessionsDir string
	SessionDir  string
	ClipsDir    string

	ProfilePath  string
	MetadataPath string
	MetricsPath  string
	VideoPath    string
	EventsPath   string

	baseDir string
}

// NewPaths derives the layout for info under baseDir. No I/O happens
// until Create is called.
func NewPaths(baseDir string, info Info) *Paths {
	p := &Paths{
		Info:    info,
		RunID:   uuid.New().String(),
		baseDir: baseDir,
	}
	p.derive(info.Start.Format(IDTimestampLayout) + "_" + info.Context())
	return p
}

// derive fills every path field from the given session id.
func (p *Paths) derive(sessionID string) {
	p.SessionID = sessionID
	p.AthleteDir = filepath.Join(p.baseDir, p.Info.Sport, p.Info.Player.PlayerID)
	p.SessionsDir = filepath.Join(p.AthleteDir, "sessions")
	p.SessionDir = filepath.Join(p.SessionsDir, p.SessionID)
	p.ClipsDir = filepath.Join(p.SessionDir, "clips")

	p.ProfilePath = filepath.Join(p.AthleteDir, "profile.json")
	p.MetadataPath = filepath.Join(p.SessionDir, "session_meta.json")
	p.MetricsPath = filepath.Join(p.SessionDir, "metrics.csv")
	p.VideoPath = filepath.Join(p.SessionDir, "full_video.mp4")
	p.EventsPath = filepath.Join(p.SessionDir, "events.jsonl")
}

// ApplySuffix re-derives all paths with suffix appended to the session
// id. Used when two sessions start within the same second.
func (p *Paths) ApplySuffix(suffix string) {
	p.derive(p.SessionID + "_" + suffix)
}

// ShortRunID returns the first segment of the run UUID.
func (p *Paths) ShortRunID() string {
	if len(p.RunID) < 8 {
		return p.RunID
	}
	return p.RunID[:8]
}

// ClipPath returns the path for a numbered clip inside the session.
func (p *Paths) ClipPath(n int) string {
	return filepath.Join(p.ClipsDir, fmt.Sprintf("clip_%03d.mp4", n))
}

// Metadata is the session_meta.json document. Written once at session
// creation, never mutated afterwards.
type Metadata struct {
	SessionID string `json:"session_id"`
	RunID     string `json:"run_id"`
	Info
	Paths     MetadataPaths `json:"paths"`
	CreatedAt time.Time     `json:"created_at"`
}

// MetadataPaths mirrors the resolved file locations into the metadata.
type MetadataPaths struct {
	SessionDir   string `json:"session_dir"`
	VideoPath    string `json:"video_path"`
	MetricsPath  string `json:"metrics_path"`
	EventsPath   string `json:"events_path"`
	ClipsDir     string `json:"clips_dir"`
	MetadataPath string `json:"metadata_path"`
}

// Profile is the per-athlete profile.json, created on first session.
type Profile struct {
	PlayerID  string    `json:"player_id"`
	FullName  string    `json:"full_name"`
	Sport     string    `json:"sport"`
	Number    int       `json:"number"`
	Position  string    `json:"position"`
	ClassYear string    `json:"class_year"`
	CreatedAt time.Time `json:"created_at"`
}

// Create makes every directory, writes the athlete profile if it does
// not already exist, writes session_meta.json, and creates the metrics
// file with its header row. No rollback on partial failure.
func (p *Paths) Create() error {
	for _, dir := range []string{p.AthleteDir, p.SessionsDir, p.SessionDir, p.ClipsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := p.writeProfile(); err != nil {
		return err
	}
	if err := p.writeMetadata(); err != nil {
		return err
	}

	if err := metrics.NewLog(p.MetricsPath, p.Info.Context()).Create(); err != nil {
		return err
	}

	return nil
}

// writeProfile creates profile.json once; existing profiles are kept.
func (p *Paths) writeProfile() error {
	if _, err := os.Stat(p.ProfilePath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking profile: %w", err)
	}

	profile := Profile{
		PlayerID:  p.Info.Player.PlayerID,
		FullName:  p.Info.Player.FullName,
		Sport:     p.Info.Sport,
		Number:    p.Info.Player.Number,
		Position:  p.Info.Player.Position,
		ClassYear: p.Info.Player.ClassYear,
		CreatedAt: time.Now().UTC(),
	}

	return writeJSON(p.ProfilePath, profile)
}

func (p *Paths) writeMetadata() error {
	meta := Metadata{
		SessionID: p.SessionID,
		RunID:     p.RunID,
		Info:      p.Info,
		Paths: MetadataPaths{
			SessionDir:   p.SessionDir,
			VideoPath:    p.VideoPath,
			MetricsPath:  p.MetricsPath,
			EventsPath:   p.EventsPath,
			ClipsDir:     p.ClipsDir,
			MetadataPath: p.MetadataPath,
		},
		CreatedAt: time.Now().UTC(),
	}

	return writeJSON(p.MetadataPath, meta)
}

// ReadMetadata loads a session_meta.json file.
func ReadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session metadata: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing session metadata %s: %w", path, err)
	}

	return &meta, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", filepath.Base(path), err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}

	return nil
}
