// Package session manages per-athlete session folders, metadata files,
// and the sqlite index of recorded sessions.
package session

import (
	"fmt"
	"strings"
	"time"
)

// Player identifies the athlete a session belongs to.
type Player struct {
	PlayerID      string `json:"player_id"`
	FullName      string `json:"full_name"`
	Number        int    `json:"number"`
	Position      string `json:"position"`
	ClassYear     string `json:"class_year"`
	Side          string `json:"side,omitempty"`           // football only
	PositionGroup string `json:"position_group,omitempty"` // football only
}

// Info is the immutable session record built by the setup wizard.
type Info struct {
	Sport    string    `json:"sport"`
	Location string    `json:"location"`
	Focus    string    `json:"focus,omitempty"`
	Exercise string    `json:"exercise,omitempty"`
	Player   Player    `json:"player"`
	Start    time.Time `json:"timestamp_start"`
	Name     string    `json:"human_readable_name"`
}

// Context returns the most specific label for the session: exercise,
// else focus, else location. Used in the session id and metrics rows.
func (i Info) Context() string {
	switch {
	case i.Exercise != "":
		return i.Exercise
	case i.Focus != "":
		return i.Focus
	default:
		return i.Location
	}
}

// DisplayName builds the human-readable session name from its parts.
func DisplayName(i Info) string {
	player := fmt.Sprintf("%s #%d", i.Player.FullName, i.Player.Number)
	if i.Player.Position != "" {
		player += fmt.Sprintf(" (%s %s)", i.Player.Position, i.Player.ClassYear)
	}

	parts := []string{Title(i.Sport), player, Title(i.Location)}
	switch {
	case i.Exercise != "":
		parts = append(parts, Title(i.Exercise))
	case i.Focus != "":
		parts = append(parts, Title(i.Focus))
	}

	return strings.Join(parts, " - ")
}

// Title converts an identifier like "track_and_field" to "Track And Field".
func Title(id string) string {
	words := strings.Split(strings.ReplaceAll(id, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
