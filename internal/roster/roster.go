// Package roster loads read-only athlete rosters from JSON files.
package roster

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Player is a single roster entry. Records are never mutated.
type Player struct {
	PlayerID  string `json:"player_id"`
	FullName  string `json:"full_name"`
	Number    int    `json:"number"`
	Position  string `json:"position"`
	ClassYear string `json:"class_year"`
}

// Roster holds the athletes for one sport. Most sports use the flat
// Players list; football uses Teams, keyed by side then position group.
type Roster struct {
	Sport   string                         `json:"sport,omitempty"`
	Players []Player                       `json:"players,omitempty"`
	Teams   map[string]map[string][]Player `json:"teams,omitempty"`
}

// Path returns the roster file path for a sport under rostersDir.
func Path(rostersDir, sport string) string {
	return filepath.Join(rostersDir, sport+"_roster.json")
}

// Load reads and parses the roster file for the given sport.
func Load(rostersDir, sport string) (*Roster, error) {
	path := Path(rostersDir, sport)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}

	var r Roster
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing roster %s: %w", path, err)
	}

	if len(r.Players) == 0 && len(r.Teams) == 0 {
		return nil, fmt.Errorf("roster %s contains no players", path)
	}

	return &r, nil
}

// Hierarchical reports whether the roster uses the side/position-group
// layout (football) rather than a flat player list.
func (r *Roster) Hierarchical() bool {
	return len(r.Teams) > 0
}

// Sides returns the team sides in sorted order for stable menus.
func (r *Roster) Sides() []string {
	sides := make([]string, 0, len(r.Teams))
	for side := range r.Teams {
		sides = append(sides, side)
	}
	sort.Strings(sides)
	return sides
}

// Groups returns the position groups for a side in sorted order.
func (r *Roster) Groups(side string) []string {
	groups := make([]string, 0, len(r.Teams[side]))
	for g := range r.Teams[side] {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// Group returns the players in one position group.
func (r *Roster) Group(side, group string) []Player {
	return r.Teams[side][group]
}
