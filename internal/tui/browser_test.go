package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sideline-dev/sideline/internal/session"
)

func testRecords() []session.Record {
	return []session.Record{
		{
			SessionID:  "2026-03-14_09-30-00_bench_press",
			Sport:      "basketball",
			PlayerName: "Marcus Webb",
			Exercise:   "bench_press",
			Status:     "completed",
			CreatedAt:  time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		},
		{
			SessionID:  "2026-03-13_16-00-00_court",
			Sport:      "basketball",
			PlayerName: "Deon Carter",
			Location:   "court",
			Status:     "completed",
			CreatedAt:  time.Date(2026, 3, 13, 16, 0, 0, 0, time.UTC),
		},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestBrowserCursorMovement(t *testing.T) {
	b := NewBrowser(testRecords(), nil)

	m, _ := b.Update(keyMsg("down"))
	b = m.(*Browser)
	if b.cursor != 1 {
		t.Errorf("cursor after down: got %d, want 1", b.cursor)
	}

	// Clamped at the bottom.
	m, _ = b.Update(keyMsg("j"))
	b = m.(*Browser)
	if b.cursor != 1 {
		t.Errorf("cursor should clamp at last row, got %d", b.cursor)
	}

	m, _ = b.Update(keyMsg("k"))
	b = m.(*Browser)
	if b.cursor != 0 {
		t.Errorf("cursor after k: got %d, want 0", b.cursor)
	}

	m, _ = b.Update(keyMsg("up"))
	b = m.(*Browser)
	if b.cursor != 0 {
		t.Errorf("cursor should clamp at first row, got %d", b.cursor)
	}
}

func TestBrowserOpenAndCloseDetail(t *testing.T) {
	var loaded string
	b := NewBrowser(testRecords(), func(rec session.Record) (string, error) {
		loaded = rec.SessionID
		return "metrics: 12 rows", nil
	})
	b.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	m, _ := b.Update(keyMsg("enter"))
	b = m.(*Browser)
	if !b.showDetail {
		t.Fatal("enter should open the detail view")
	}
	if loaded != "2026-03-14_09-30-00_bench_press" {
		t.Errorf("loaded: got %q", loaded)
	}
	if !strings.Contains(b.View(), "metrics: 12 rows") {
		t.Error("detail view should show loaded content")
	}

	m, _ = b.Update(keyMsg("esc"))
	b = m.(*Browser)
	if b.showDetail {
		t.Error("esc should return to the list")
	}
}

func TestBrowserDetailLoadError(t *testing.T) {
	b := NewBrowser(testRecords(), func(session.Record) (string, error) {
		return "", errors.New("metadata missing")
	})

	m, _ := b.Update(keyMsg("enter"))
	b = m.(*Browser)
	if !strings.Contains(b.View(), "metadata missing") {
		t.Error("detail view should surface the load error")
	}
}

func TestBrowserQuit(t *testing.T) {
	b := NewBrowser(testRecords(), nil)

	_, cmd := b.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("expected tea.Quit, got %v", msg)
	}
}

func TestBrowserEmptyList(t *testing.T) {
	b := NewBrowser(nil, nil)

	if !strings.Contains(b.View(), "No sessions") {
		t.Error("empty list should render a hint")
	}

	// Enter on an empty list is a no-op.
	m, _ := b.Update(keyMsg("enter"))
	b = m.(*Browser)
	if b.showDetail {
		t.Error("enter on empty list should not open detail")
	}
}

func TestBrowserListViewContents(t *testing.T) {
	b := NewBrowser(testRecords(), nil)

	view := b.View()
	if !strings.Contains(view, "Marcus Webb") {
		t.Error("list should show player names")
	}
	if !strings.Contains(view, "bench_press") {
		t.Error("list should show the exercise")
	}
	if !strings.Contains(view, "court") {
		t.Error("list should fall back to location when no exercise")
	}
}
