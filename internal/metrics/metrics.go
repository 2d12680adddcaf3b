// Package metrics implements the append-only per-session metrics log,
// a flat CSV of (timestamp, rep, exercise, metric, value, notes) rows.
package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Header is the fixed first row of every metrics file.
var Header = []string{"timestamp", "rep_index", "exercise", "metric_name", "metric_value", "notes"}

// Row is a single metric sample.
type Row struct {
	Timestamp time.Time
	RepIndex  int
	Exercise  string
	Name      string
	Value     float64
	Notes     string
}

// Log appends rows to one session's metrics CSV.
type Log struct {
	path     string
	exercise string // stamped on every row
}

// NewLog returns a Log for the metrics file at path. exercise labels
// each appended row (the session's exercise, focus, or location).
func NewLog(path, exercise string) *Log {
	return &Log{path: path, exercise: exercise}
}

// Path returns the metrics file path.
func (l *Log) Path() string {
	return l.path
}

// Create writes the metrics file containing only the header row.
func (l *Log) Create() error {
	f, err := os.Create(l.path)
	if err != nil {
		return fmt.Errorf("creating metrics file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("writing metrics header: %w", err)
	}
	w.Flush()

	return w.Error()
}

// Append opens the file in append mode and writes one row. A zero
// Timestamp is set to time.Now().UTC().
func (l *Log) Append(row Row) error {
	if row.Timestamp.IsZero() {
		row.Timestamp = time.Now().UTC()
	}
	if row.Exercise == "" {
		row.Exercise = l.exercise
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening metrics file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := []string{
		row.Timestamp.Format(time.RFC3339),
		strconv.Itoa(row.RepIndex),
		row.Exercise,
		row.Name,
		strconv.FormatFloat(row.Value, 'f', -1, 64),
		row.Notes,
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("writing metrics row: %w", err)
	}
	w.Flush()

	return w.Error()
}

// Rows reads back all data rows, skipping the header.
func (l *Log) Rows() ([]Row, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("opening metrics file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading metrics file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("metrics file %s is missing its header", l.path)
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != len(Header) {
			return nil, fmt.Errorf("metrics row %d has %d fields, want %d", i+1, len(rec), len(Header))
		}

		ts, tsErr := time.Parse(time.RFC3339, rec[0])
		if tsErr != nil {
			return nil, fmt.Errorf("parsing metrics row %d timestamp: %w", i+1, tsErr)
		}
		rep, repErr := strconv.Atoi(rec[1])
		if repErr != nil {
			return nil, fmt.Errorf("parsing metrics row %d rep index: %w", i+1, repErr)
		}
		val, valErr := strconv.ParseFloat(rec[4], 64)
		if valErr != nil {
			return nil, fmt.Errorf("parsing metrics row %d value: %w", i+1, valErr)
		}

		rows = append(rows, Row{
			Timestamp: ts,
			RepIndex:  rep,
			Exercise:  rec[2],
			Name:      rec[3],
			Value:     val,
			Notes:     rec[5],
		})
	}

	return rows, nil
}
