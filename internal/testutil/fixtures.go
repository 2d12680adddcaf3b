// Package testutil provides test helper utilities for sideline tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempData creates a temporary directory with the given files and returns
// its path. Files is a map of relative path -> content. Directories are
// created as needed and cleaned up when the test finishes.
func TempData(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// BasketballRoster returns a minimal flat roster JSON document.
func BasketballRoster() string {
	return `{
  "sport": "basketball",
  "players": [
    {"player_id": "bb001", "full_name": "Marcus Webb", "number": 4, "position": "PG", "class_year": "JR"},
    {"player_id": "bb002", "full_name": "Deon Carter", "number": 23, "position": "SF", "class_year": "SO"},
    {"player_id": "bb003", "full_name": "Troy Alvarez", "number": 35, "position": "C", "class_year": "SR"}
  ]
}`
}

// FootballRoster returns a minimal hierarchical roster JSON document.
func FootballRoster() string {
	return `{
  "sport": "football",
  "teams": {
    "Offense": {
      "QB": [
        {"player_id": "fb001", "full_name": "Jake Morrison", "number": 12, "position": "QB", "class_year": "SR"}
      ],
      "WR": [
        {"player_id": "fb002", "full_name": "Amari Fields", "number": 81, "position": "WR", "class_year": "JR"},
        {"player_id": "fb003", "full_name": "Chris Okafor", "number": 11, "position": "WR", "class_year": "FR"}
      ]
    },
    "Defense": {
      "DB": [
        {"player_id": "fb004", "full_name": "Leon Pryor", "number": 21, "position": "CB", "class_year": "SO"}
      ]
    }
  }
}`
}
