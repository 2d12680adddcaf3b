package session

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store provides a sqlite-backed index of recorded sessions so listing
// does not require walking the athletes tree.
type Store struct {
	db *sql.DB
}

// Record is one indexed session row.
type Record struct {
	SessionID  string
	RunID      string
	Sport      string
	PlayerID   string
	PlayerName string
	Location   string
	Exercise   string
	Status     string // active, completed
	SessionDir string
	Frames     int
	DurationMs int64
	CreatedAt  time.Time
}

// NewStore opens the sqlite database at dbPath and creates the schema
// if it does not exist.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		run_id TEXT NOT NULL,
		sport TEXT NOT NULL,
		player_id TEXT NOT NULL,
		player_name TEXT NOT NULL,
		location TEXT NOT NULL,
		exercise TEXT,
		status TEXT NOT NULL,
		session_dir TEXT NOT NULL,
		frames INTEGER DEFAULT 0,
		duration_ms INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(schema)
	return err
}

// RecordSession inserts the session into the index with status active.
// If the derived id collides (two sessions in the same second), the
// short run id is appended and the paths re-derived before retrying.
func (s *Store) RecordSession(p *Paths) error {
	err := s.insert(p)
	if err != nil && isUniqueErr(err) {
		p.ApplySuffix(p.ShortRunID())
		err = s.insert(p)
	}
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *Store) insert(p *Paths) error {
	now := time.Now()
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, run_id, sport, player_id, player_name, location, exercise, status, session_dir, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 'active', ?, ?, ?)`,
		p.SessionID, p.RunID, p.Info.Sport, p.Info.Player.PlayerID, p.Info.Player.FullName,
		p.Info.Location, p.Info.Exercise, p.SessionDir, now, now,
	)
	return err
}

func isUniqueErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint")
}

// CompleteSession marks a session completed and records loop totals.
func (s *Store) CompleteSession(sessionID string, frames int, durationMs int64) error {
	_, err := s.db.Exec(
		`UPDATE sessions SET status = 'completed', frames = ?, duration_ms = ?, updated_at = ?
		 WHERE id = ?`,
		frames, durationMs, time.Now(), sessionID,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// DeleteSessions removes index rows by session id. Used after pruning
// so the index never lists sessions whose directories are gone.
func (s *Store) DeleteSessions(ids []string) error {
	for _, id := range ids {
		if _, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete session %s: %w", id, err)
		}
	}
	return nil
}

// GetSession retrieves a session by id. Returns nil if not found.
func (s *Store) GetSession(id string) (*Record, error) {
	row := s.db.QueryRow(
		`SELECT id, run_id, sport, player_id, player_name, location, COALESCE(exercise, ''), status, session_dir, frames, duration_ms, created_at
		 FROM sessions WHERE id = ?`,
		id,
	)

	var rec Record
	err := row.Scan(&rec.SessionID, &rec.RunID, &rec.Sport, &rec.PlayerID, &rec.PlayerName,
		&rec.Location, &rec.Exercise, &rec.Status, &rec.SessionDir, &rec.Frames, &rec.DurationMs, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}

	return &rec, nil
}

// ListSessions returns the most recent sessions, newest first.
func (s *Store) ListSessions(limit int) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, sport, player_id, player_name, location, COALESCE(exercise, ''), status, session_dir, frames, duration_ms, created_at
		 FROM sessions
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.SessionID, &rec.RunID, &rec.Sport, &rec.PlayerID, &rec.PlayerName,
			&rec.Location, &rec.Exercise, &rec.Status, &rec.SessionDir, &rec.Frames, &rec.DurationMs, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return records, nil
}
