package wizard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sideline-dev/sideline/internal/testutil"
)

func testRostersDir(t *testing.T) string {
	t.Helper()
	dir := testutil.TempData(t, map[string]string{
		filepath.Join("rosters", "basketball_roster.json"): testutil.BasketballRoster(),
		filepath.Join("rosters", "football_roster.json"):   testutil.FootballRoster(),
	})
	return filepath.Join(dir, "rosters")
}

func newTestWizard(t *testing.T, input string) (*Wizard, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	w := New(strings.NewReader(input), &out, testRostersDir(t))
	w.Now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	}
	return w, &out
}

func TestRunBasketballCourtSession(t *testing.T) {
	// Basketball -> Marcus Webb -> Court.
	w, _ := newTestWizard(t, "2\n1\n1\n")

	info, err := w.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if info.Sport != "basketball" {
		t.Errorf("sport: got %q, want basketball", info.Sport)
	}
	if info.Location != "court" {
		t.Errorf("location: got %q, want court", info.Location)
	}
	if info.Focus != "" || info.Exercise != "" {
		t.Errorf("focus/exercise should be empty, got %q/%q", info.Focus, info.Exercise)
	}
	if info.Player.PlayerID != "bb001" {
		t.Errorf("player: got %q, want bb001", info.Player.PlayerID)
	}
	if info.Player.PositionGroup != "PG" {
		t.Errorf("position group: got %q, want PG", info.Player.PositionGroup)
	}
	if !info.Start.Equal(time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("start: got %v", info.Start)
	}
	if info.Name != "Basketball - Marcus Webb #4 (PG JR) - Court" {
		t.Errorf("name: got %q", info.Name)
	}
}

func TestRunWeightRoomExercise(t *testing.T) {
	// Basketball -> Troy Alvarez -> Weight Room -> Upper Body -> Squat.
	w, _ := newTestWizard(t, "2\n3\n2\n1\n2\n")

	info, err := w.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if info.Location != "weight_room" {
		t.Errorf("location: got %q, want weight_room", info.Location)
	}
	if info.Focus != "upper_body" {
		t.Errorf("focus: got %q, want upper_body", info.Focus)
	}
	if info.Exercise != "squat" {
		t.Errorf("exercise: got %q, want squat", info.Exercise)
	}
	if !strings.HasSuffix(info.Name, "- Squat") {
		t.Errorf("name should end with exercise, got %q", info.Name)
	}
}

func TestRunWeightRoomCoreSkipsExercise(t *testing.T) {
	// Basketball -> player -> Weight Room -> Core (no exercise menu).
	w, _ := newTestWizard(t, "2\n1\n2\n3\n")

	info, err := w.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if info.Focus != "core" {
		t.Errorf("focus: got %q, want core", info.Focus)
	}
	if info.Exercise != "" {
		t.Errorf("exercise: got %q, want empty", info.Exercise)
	}
}

func TestRunFootballHierarchicalSelection(t *testing.T) {
	// Football -> Offense -> WR -> first WR -> Field.
	w, _ := newTestWizard(t, "1\n2\n2\n1\n1\n")

	info, err := w.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if info.Sport != "football" {
		t.Errorf("sport: got %q, want football", info.Sport)
	}
	if info.Player.PlayerID != "fb002" {
		t.Errorf("player: got %q, want fb002", info.Player.PlayerID)
	}
	if info.Player.Side != "Offense" {
		t.Errorf("side: got %q, want Offense", info.Player.Side)
	}
	if info.Player.PositionGroup != "WR" {
		t.Errorf("position group: got %q, want WR", info.Player.PositionGroup)
	}
	if info.Location != "field" {
		t.Errorf("location: got %q, want field", info.Location)
	}
}

func TestRunCustomLocation(t *testing.T) {
	// Basketball -> player -> Other -> free-text description.
	w, _ := newTestWizard(t, "2\n1\n3\nBack Alley Gym\n")

	info, err := w.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if info.Location != "other" {
		t.Errorf("location: got %q, want other", info.Location)
	}
	if info.Focus != "custom_back_alley_gym" {
		t.Errorf("focus: got %q, want custom_back_alley_gym", info.Focus)
	}
}

func TestInvalidInputReprompts(t *testing.T) {
	// Garbage and out-of-range input before each valid choice.
	w, out := newTestWizard(t, "abc\n99\n2\n0\n1\n1\n")

	info, err := w.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if info.Sport != "basketball" {
		t.Errorf("sport: got %q, want basketball", info.Sport)
	}

	rendered := out.String()
	if !strings.Contains(rendered, "[!] Invalid input") {
		t.Error("expected non-numeric re-prompt message")
	}
	if !strings.Contains(rendered, "[!] Invalid choice") {
		t.Error("expected out-of-range re-prompt message")
	}
}

func TestRunCancelledOnEOF(t *testing.T) {
	w, _ := newTestWizard(t, "")

	if _, err := w.Run(); !errors.Is(err, ErrCancelled) {
		t.Errorf("got %v, want ErrCancelled", err)
	}
}

func TestRunCancelledMidFlow(t *testing.T) {
	// Sport chosen, then input ends during player selection.
	w, _ := newTestWizard(t, "2\n")

	if _, err := w.Run(); !errors.Is(err, ErrCancelled) {
		t.Errorf("got %v, want ErrCancelled", err)
	}
}

func TestRunContextInterruptedAtPrompt(t *testing.T) {
	// A pipe with no writer keeps the first prompt blocked on input,
	// the way an idle terminal would.
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	w := New(pr, &out, testRostersDir(t))

	ctx, cancel := context.WithCancel(context.Background())
	go cancel()

	if _, err := w.RunContext(ctx); !errors.Is(err, ErrCancelled) {
		t.Errorf("got %v, want ErrCancelled", err)
	}
}

func TestRunContextCompletesFlow(t *testing.T) {
	w, _ := newTestWizard(t, "2\n1\n1\n")

	info, err := w.RunContext(context.Background())
	if err != nil {
		t.Fatalf("RunContext failed: %v", err)
	}
	if info.Sport != "basketball" {
		t.Errorf("sport: got %q, want basketball", info.Sport)
	}
}

func TestRunMissingRoster(t *testing.T) {
	var out bytes.Buffer
	w := New(strings.NewReader("4\n"), &out, t.TempDir()) // Soccer, no roster file

	if _, err := w.Run(); err == nil {
		t.Error("expected error for missing roster")
	}
}

func TestSlug(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Weight Room", "weight_room"},
		{"Track & Field", "track_and_field"},
		{"  Back  Alley Gym ", "back_alley_gym"},
		{"Cardio", "cardio"},
	}
	for _, c := range cases {
		if got := slug(c.in); got != c.want {
			t.Errorf("slug(%q): got %q, want %q", c.in, got, c.want)
		}
	}
}
