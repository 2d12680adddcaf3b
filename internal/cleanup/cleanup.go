// Package cleanup prunes old session directories under the athlete
// data tree.
package cleanup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/sideline-dev/sideline/internal/session"
)

// sessionDir pairs a session directory path with the timestamp parsed
// from its name.
type sessionDir struct {
	path  string
	start time.Time
}

// sessionDirs finds all session directories under athletesDir and
// parses the timestamp prefix of each name. Directories whose names do
// not carry a valid timestamp are skipped.
func sessionDirs(athletesDir string) ([]sessionDir, error) {
	pattern := filepath.Join(athletesDir, "*", "*", "sessions", "*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("scanning sessions: %w", err)
	}

	var dirs []sessionDir
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.IsDir() {
			continue
		}
		name := filepath.Base(m)
		if len(name) < len(session.IDTimestampLayout) {
			continue
		}
		start, err := time.Parse(session.IDTimestampLayout, name[:len(session.IDTimestampLayout)])
		if err != nil {
			continue
		}
		dirs = append(dirs, sessionDir{path: m, start: start})
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].start.Before(dirs[j].start) })
	return dirs, nil
}

// PruneByAge removes session directories older than maxAgeDays.
// Returns the names of pruned sessions. With dryRun set, nothing is
// deleted.
func PruneByAge(athletesDir string, maxAgeDays int, dryRun bool) ([]string, error) {
	if maxAgeDays <= 0 {
		return nil, nil
	}

	dirs, err := sessionDirs(athletesDir)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -maxAgeDays)
	var pruned []string
	for _, d := range dirs {
		if !d.start.Before(cutoff) {
			continue
		}
		if !dryRun {
			if err := os.RemoveAll(d.path); err != nil {
				return pruned, fmt.Errorf("removing %s: %w", d.path, err)
			}
		}
		pruned = append(pruned, filepath.Base(d.path))
	}
	return pruned, nil
}

// PruneKeepRecent keeps only the most recent keep sessions per athlete
// and removes the rest. Returns the names of pruned sessions.
func PruneKeepRecent(athletesDir string, keep int, dryRun bool) ([]string, error) {
	if keep <= 0 {
		return nil, nil
	}

	dirs, err := sessionDirs(athletesDir)
	if err != nil {
		return nil, err
	}

	// Session dirs arrive oldest-first; group per athlete so one busy
	// athlete cannot push the others' history out.
	byAthlete := make(map[string][]sessionDir)
	var athletes []string
	for _, d := range dirs {
		athlete := filepath.Dir(filepath.Dir(d.path))
		if _, ok := byAthlete[athlete]; !ok {
			athletes = append(athletes, athlete)
		}
		byAthlete[athlete] = append(byAthlete[athlete], d)
	}
	sort.Strings(athletes)

	var pruned []string
	for _, athlete := range athletes {
		ds := byAthlete[athlete]
		if len(ds) <= keep {
			continue
		}
		for _, d := range ds[:len(ds)-keep] {
			if !dryRun {
				if err := os.RemoveAll(d.path); err != nil {
					return pruned, fmt.Errorf("removing %s: %w", d.path, err)
				}
			}
			pruned = append(pruned, filepath.Base(d.path))
		}
	}
	return pruned, nil
}
