package session

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndGetSession(t *testing.T) {
	store := newTestStore(t)
	p := NewPaths(t.TempDir(), testInfo())

	if err := store.RecordSession(p); err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}

	rec, err := store.GetSession(p.SessionID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if rec == nil {
		t.Fatal("session not found after record")
	}
	if rec.Status != "active" {
		t.Errorf("status: got %q, want active", rec.Status)
	}
	if rec.PlayerName != "Marcus Webb" || rec.Sport != "basketball" {
		t.Errorf("record: got %+v", rec)
	}
	if rec.SessionDir != p.SessionDir {
		t.Errorf("session dir: got %q, want %q", rec.SessionDir, p.SessionDir)
	}
}

func TestRecordSessionResolvesDuplicateID(t *testing.T) {
	store := newTestStore(t)
	base := t.TempDir()

	first := NewPaths(base, testInfo())
	second := NewPaths(base, testInfo()) // same start second, same id

	if err := store.RecordSession(first); err != nil {
		t.Fatalf("first RecordSession failed: %v", err)
	}
	if err := store.RecordSession(second); err != nil {
		t.Fatalf("second RecordSession failed: %v", err)
	}

	if first.SessionID == second.SessionID {
		t.Errorf("duplicate session ids were not disambiguated: %q", first.SessionID)
	}
}

func TestCompleteSession(t *testing.T) {
	store := newTestStore(t)
	p := NewPaths(t.TempDir(), testInfo())

	if err := store.RecordSession(p); err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}
	if err := store.CompleteSession(p.SessionID, 421, 14000); err != nil {
		t.Fatalf("CompleteSession failed: %v", err)
	}

	rec, err := store.GetSession(p.SessionID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if rec.Status != "completed" {
		t.Errorf("status: got %q, want completed", rec.Status)
	}
	if rec.Frames != 421 || rec.DurationMs != 14000 {
		t.Errorf("totals: got frames=%d duration=%d", rec.Frames, rec.DurationMs)
	}
}

func TestDeleteSessions(t *testing.T) {
	store := newTestStore(t)

	keep := NewPaths(t.TempDir(), testInfo())
	drop := NewPaths(t.TempDir(), testInfo())
	drop.ApplySuffix("gone")
	for _, p := range []*Paths{keep, drop} {
		if err := store.RecordSession(p); err != nil {
			t.Fatalf("RecordSession failed: %v", err)
		}
	}

	if err := store.DeleteSessions([]string{drop.SessionID, "never_existed"}); err != nil {
		t.Fatalf("DeleteSessions failed: %v", err)
	}

	rec, err := store.GetSession(drop.SessionID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if rec != nil {
		t.Error("deleted session should be gone from the index")
	}

	rec, err = store.GetSession(keep.SessionID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if rec == nil {
		t.Error("untouched session should remain in the index")
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	base := t.TempDir()

	older := testInfo()
	newer := testInfo()
	newer.Start = newer.Start.Add(time.Hour)

	if err := store.RecordSession(NewPaths(base, older)); err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}
	if err := store.RecordSession(NewPaths(base, newer)); err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}

	records, err := store.ListSessions(10)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records: got %d, want 2", len(records))
	}
}

func TestGetSessionMissing(t *testing.T) {
	store := newTestStore(t)

	rec, err := store.GetSession("nope")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil for missing session, got %+v", rec)
	}
}
