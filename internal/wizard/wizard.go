// Package wizard implements the interactive session setup flow: a
// sequence of numbered text menus that builds the session record the
// capture loop runs under.
package wizard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sideline-dev/sideline/internal/roster"
	"github.com/sideline-dev/sideline/internal/session"
	"github.com/sideline-dev/sideline/internal/tui"
)

// ErrCancelled is returned when the user aborts setup (EOF on stdin).
var ErrCancelled = errors.New("session setup cancelled")

// sportChoice pairs a menu label with its identifier.
type sportChoice struct {
	label string
	id    string
}

var sports = []sportChoice{
	{"Football", "football"},
	{"Basketball", "basketball"},
	{"Track & Field", "track_field"},
	{"Soccer", "soccer"},
	{"Volleyball", "volleyball"},
	{"Cross Country", "cross_country"},
	{"Gymnastics", "gymnastics"},
}

// sportLocations lists the training locations offered per sport.
var sportLocations = map[string][]string{
	"football":      {"Field", "Weight Room", "Other"},
	"basketball":    {"Court", "Weight Room", "Other"},
	"track_field":   {"Track", "Field", "Weight Room", "Other"},
	"soccer":        {"Field", "Weight Room", "Other"},
	"volleyball":    {"Court", "Weight Room", "Other"},
	"cross_country": {"Field", "Weight Room", "Other"},
	"gymnastics":    {"Court", "Weight Room", "Other"},
}

var weightRoomFocus = []string{"Upper Body", "Lower Body", "Core", "Cardio"}

var weightRoomExercises = []string{
	"Bench Press",
	"Squat",
	"Deadlift",
	"Bicep Curl",
	"Shoulder Press",
	"Lat Pulldowns",
}

// Wizard runs the setup flow over an injected reader/writer pair so a
// fixed sequence of choices replays deterministically in tests.
type Wizard struct {
	in         *bufio.Reader
	out        io.Writer
	rostersDir string

	// Now is the clock used for the session start timestamp.
	// Overridable in tests.
	Now func() time.Time
}

// New creates a Wizard reading choices from in and printing menus to out.
func New(in io.Reader, out io.Writer, rostersDir string) *Wizard {
	return &Wizard{
		in:         bufio.NewReader(in),
		out:        out,
		rostersDir: rostersDir,
		Now:        time.Now,
	}
}

// RunContext runs the flow and maps context cancellation to
// ErrCancelled, so an interrupt arriving while a prompt is waiting for
// input cancels setup instead of killing the process.
func (w *Wizard) RunContext(ctx context.Context) (*session.Info, error) {
	type result struct {
		info *session.Info
		err  error
	}

	done := make(chan result, 1)
	go func() {
		info, err := w.Run()
		done <- result{info, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ErrCancelled
	case r := <-done:
		return r.info, r.err
	}
}

// Run walks the full flow: sport, player, location, and (for the weight
// room) focus and exercise. Returns ErrCancelled if input ends early.
func (w *Wizard) Run() (*session.Info, error) {
	fmt.Fprintln(w.out, tui.TitleStyle.Render("SIDELINE - SESSION SETUP"))

	sport, err := w.selectSport()
	if err != nil {
		return nil, err
	}

	r, err := roster.Load(w.rostersDir, sport)
	if err != nil {
		return nil, err
	}

	var player session.Player
	if r.Hierarchical() {
		player, err = w.selectPlayerFootball(r)
	} else {
		player, err = w.selectPlayerGeneric(r)
	}
	if err != nil {
		return nil, err
	}

	location, err := w.selectLocation(sport)
	if err != nil {
		return nil, err
	}

	var focus, exercise string
	switch location {
	case "weight_room":
		focus, exercise, err = w.selectWeightRoom()
		if err != nil {
			return nil, err
		}
	case "other":
		fmt.Fprintln(w.out, "\nEnter custom training location description:")
		desc, readErr := w.readLine("   -> ")
		if readErr != nil {
			return nil, readErr
		}
		focus = "custom_" + slug(desc)
	}

	info := &session.Info{
		Sport:    sport,
		Location: location,
		Focus:    focus,
		Exercise: exercise,
		Player:   player,
		Start:    w.Now(),
	}
	info.Name = session.DisplayName(*info)

	fmt.Fprintln(w.out)
	fmt.Fprintln(w.out, tui.SuccessStyle.Render("Session setup complete"))
	fmt.Fprintf(w.out, "%s\n", info.Name)
	fmt.Fprintf(w.out, "Start time: %s\n", info.Start.Format(time.RFC3339))

	return info, nil
}

func (w *Wizard) selectSport() (string, error) {
	labels := make([]string, len(sports))
	for i, s := range sports {
		labels[i] = s.label
	}

	idx, err := w.choose("SELECT SPORT", labels)
	if err != nil {
		return "", err
	}
	return sports[idx].id, nil
}

// selectPlayerFootball walks side -> position group -> player.
func (w *Wizard) selectPlayerFootball(r *roster.Roster) (session.Player, error) {
	sides := r.Sides()
	sideIdx, err := w.choose("SELECT SIDE", sides)
	if err != nil {
		return session.Player{}, err
	}
	side := sides[sideIdx]

	groups := r.Groups(side)
	groupIdx, err := w.choose(fmt.Sprintf("SELECT POSITION GROUP (%s)", side), groups)
	if err != nil {
		return session.Player{}, err
	}
	group := groups[groupIdx]

	players := r.Group(side, group)
	idx, err := w.choose(fmt.Sprintf("SELECT PLAYER (%s)", group), playerLabels(players))
	if err != nil {
		return session.Player{}, err
	}

	p := toSessionPlayer(players[idx])
	p.Side = side
	p.PositionGroup = group
	return p, nil
}

func (w *Wizard) selectPlayerGeneric(r *roster.Roster) (session.Player, error) {
	idx, err := w.choose("SELECT PLAYER", playerLabels(r.Players))
	if err != nil {
		return session.Player{}, err
	}

	p := toSessionPlayer(r.Players[idx])
	p.PositionGroup = p.Position
	return p, nil
}

func (w *Wizard) selectLocation(sport string) (string, error) {
	locations, ok := sportLocations[sport]
	if !ok {
		locations = []string{"Other"}
	}

	idx, err := w.choose("SELECT TRAINING LOCATION", locations)
	if err != nil {
		return "", err
	}
	return slug(locations[idx]), nil
}

func (w *Wizard) selectWeightRoom() (focus, exercise string, err error) {
	idx, err := w.choose("SELECT WEIGHT ROOM FOCUS", weightRoomFocus)
	if err != nil {
		return "", "", err
	}
	selected := weightRoomFocus[idx]
	focus = slug(selected)

	// Core and Cardio run as general sessions without a named exercise.
	if selected != "Upper Body" && selected != "Lower Body" {
		return focus, "", nil
	}

	exIdx, err := w.choose(fmt.Sprintf("SELECT EXERCISE (%s)", selected), weightRoomExercises)
	if err != nil {
		return "", "", err
	}
	return focus, slug(weightRoomExercises[exIdx]), nil
}

// choose prints a numbered menu and reads a selection, re-prompting on
// non-numeric or out-of-range input. Returns a zero-based index.
func (w *Wizard) choose(title string, options []string) (int, error) {
	fmt.Fprintln(w.out)
	fmt.Fprintln(w.out, tui.TitleStyle.Render(title))
	for i, opt := range options {
		fmt.Fprintf(w.out, "  %d) %s\n", i+1, opt)
	}

	for {
		line, err := w.readLine("\nChoice #: ")
		if err != nil {
			return 0, err
		}

		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil {
			fmt.Fprintln(w.out, tui.ErrorStyle.Render("[!] Invalid input. Enter a number."))
			continue
		}
		if n < 1 || n > len(options) {
			fmt.Fprintln(w.out, tui.ErrorStyle.Render(
				fmt.Sprintf("[!] Invalid choice. Enter a number between 1 and %d.", len(options))))
			continue
		}
		return n - 1, nil
	}
}

// readLine prints a prompt and reads one line. EOF maps to ErrCancelled.
func (w *Wizard) readLine(prompt string) (string, error) {
	fmt.Fprint(w.out, prompt)

	line, err := w.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func playerLabels(players []roster.Player) []string {
	labels := make([]string, len(players))
	for i, p := range players {
		pos := p.Position
		if pos == "" {
			pos = "N/A"
		}
		year := p.ClassYear
		if year == "" {
			year = "N/A"
		}
		labels[i] = fmt.Sprintf("%-20s #%-3d %-4s (%s)", p.FullName, p.Number, pos, year)
	}
	return labels
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

// slug converts a display label into an identifier: lowercase, "&" to
// "and", spaces to underscores.
func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "&", "and")
	return strings.Join(strings.Fields(s), "_")
}
