package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCreateWritesExactHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")
	l := NewLog(path, "squat")

	if err := l.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading metrics file: %v", err)
	}

	want := "timestamp,rep_index,exercise,metric_name,metric_value,notes\n"
	if string(data) != want {
		t.Errorf("header: got %q, want %q", string(data), want)
	}
}

func TestAppendIsAppendOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")
	l := NewLog(path, "bench_press")

	if err := l.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	ts := time.Date(2026, 3, 14, 9, 45, 0, 0, time.UTC)
	rows := []Row{
		{Timestamp: ts, RepIndex: 1, Name: "elbow_angle", Value: 92.5},
		{Timestamp: ts.Add(5 * time.Second), RepIndex: 2, Name: "elbow_angle", Value: 88, Notes: "partial rep"},
	}
	for _, r := range rows {
		if err := l.Append(r); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := l.Rows()
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rows: got %d, want 2", len(got))
	}
	if got[0].RepIndex != 1 || got[0].Value != 92.5 {
		t.Errorf("first row: got %+v", got[0])
	}
	if got[1].Notes != "partial rep" {
		t.Errorf("second row notes: got %q", got[1].Notes)
	}
	// Exercise label stamped from the log.
	if got[0].Exercise != "bench_press" {
		t.Errorf("exercise: got %q, want bench_press", got[0].Exercise)
	}

	// Header still intact at the top.
	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "timestamp,rep_index,exercise,") {
		t.Error("header row was not preserved at the top of the file")
	}
}

func TestAppendSetsZeroTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics.csv")
	l := NewLog(path, "squat")
	if err := l.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	before := time.Now().UTC().Add(-time.Second)
	if err := l.Append(Row{RepIndex: 1, Name: "depth", Value: 0.4}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	rows, err := l.Rows()
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if rows[0].Timestamp.Before(before) {
		t.Errorf("timestamp was not defaulted: %v", rows[0].Timestamp)
	}
}

func TestRowsMissingFile(t *testing.T) {
	l := NewLog(filepath.Join(t.TempDir(), "absent.csv"), "")
	if _, err := l.Rows(); err == nil {
		t.Error("expected error for missing metrics file")
	}
}
