package db

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeMigrations(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, sql := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(sql), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestParseVersion(t *testing.T) {
	cases := []struct {
		name    string
		version int
		ok      bool
	}{
		{"0001_init.sql", 1, true},
		{"0002_budget_items.sql", 2, true},
		{"010_reindex.sql", 10, true},
		{"readme.sql", 0, false},
		{"abc_notes.sql", 0, false},
		{"0003.sql", 0, false},
	}
	for _, tc := range cases {
		v, ok := parseVersion(tc.name)
		if ok != tc.ok || v != tc.version {
			t.Errorf("parseVersion(%q) = (%d, %v), want (%d, %v)", tc.name, v, ok, tc.version, tc.ok)
		}
	}
}

func TestLoadSortsByVersion(t *testing.T) {
	dir := writeMigrations(t, map[string]string{
		"0010_indexes.sql": "SELECT 10;",
		"0002_budget.sql":  "SELECT 2;",
		"0001_init.sql":    "SELECT 1;",
		"0005_colors.sql":  "SELECT 5;",
	})

	migrations, err := NewMigrator(nil, dir).load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(migrations) != 4 {
		t.Fatalf("expected 4 migrations, got %d", len(migrations))
	}
	for i, want := range []int{1, 2, 5, 10} {
		if migrations[i].Version != want {
			t.Errorf("migrations[%d].Version = %d, want %d", i, migrations[i].Version, want)
		}
	}
	if migrations[0].Name != "0001_init.sql" {
		t.Errorf("expected first migration 0001_init.sql, got %s", migrations[0].Name)
	}
	if migrations[0].SQL != "SELECT 1;" {
		t.Errorf("unexpected SQL for first migration: %q", migrations[0].SQL)
	}
}

func TestLoadSkipsNonMigrationFiles(t *testing.T) {
	dir := writeMigrations(t, map[string]string{
		"0001_init.sql":     "SELECT 1;",
		"0002_activity.sql": "SELECT 2;",
		"notes.txt":         "not sql",
		"template.sql":      "-- no version prefix",
		"abc_draft.sql":     "-- non-numeric prefix",
	})

	migrations, err := NewMigrator(nil, dir).load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[1].Version != 2 {
		t.Errorf("expected versions 1 and 2, got %d and %d", migrations[0].Version, migrations[1].Version)
	}
}

func TestLoadEmptyDir(t *testing.T) {
	migrations, err := NewMigrator(nil, t.TempDir()).load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(migrations) != 0 {
		t.Errorf("expected no migrations from empty dir, got %d", len(migrations))
	}
}

func TestLoadMissingDir(t *testing.T) {
	if _, err := NewMigrator(nil, "/no/such/migrations/dir").load(); err == nil {
		t.Error("expected error for missing migrations directory")
	}
}

func TestBuildStatuses(t *testing.T) {
	migrations := []Migration{
		{Version: 1, Name: "0001_init.sql"},
		{Version: 2, Name: "0002_budget.sql"},
		{Version: 3, Name: "0003_colors.sql"},
	}
	appliedAt := time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC)

	statuses := buildStatuses(migrations, map[int]time.Time{1: appliedAt})

	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if !statuses[0].Applied {
		t.Error("expected version 1 to be applied")
	}
	if statuses[0].AppliedAt == nil || !statuses[0].AppliedAt.Equal(appliedAt) {
		t.Errorf("expected AppliedAt %v, got %v", appliedAt, statuses[0].AppliedAt)
	}
	for _, s := range statuses[1:] {
		if s.Applied {
			t.Errorf("expected version %d to be pending", s.Version)
		}
		if s.AppliedAt != nil {
			t.Errorf("expected nil AppliedAt for pending version %d", s.Version)
		}
	}
}
