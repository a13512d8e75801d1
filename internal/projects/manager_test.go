package projects

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/strrl/claude-config-manager/internal/config"
	"github.com/strrl/claude-config-manager/pkg/models"
)

const managerConfig = `{
  "mcpServers": {},
  "projects": {
    "/home/user/work/api": {"history": [{"display": "hello"}], "exampleFilesGeneratedAt": 1700000000000},
    "/home/user/old_cli": {"history": [], "exampleFilesGeneratedAt": 1600000000000}
  }
}`

// newTestManager builds a manager over a temp config and a temp projects
// root containing the named directories.
func newTestManager(t *testing.T, dirs ...string) (*Manager, *Scanner) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "claude.json")
	if err := os.WriteFile(cfgPath, []byte(managerConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := config.Load(cfgPath)
	if err != nil {
		t.Fatal(err)
	}

	root := t.TempDir()
	for _, d := range dirs {
		if err := os.Mkdir(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	scanner := NewScanner(root)
	return NewManager(doc, scanner), scanner
}

func TestManagerList(t *testing.T) {
	m, _ := newTestManager(t, "-home-user-work-api", "-unclaimed-dir")

	entries, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(entries), entries)
	}

	// Config entries first, most recently generated first.
	if entries[0].Path != "/home/user/work/api" || entries[1].Path != "/home/user/old_cli" {
		t.Errorf("config entry order: %q, %q", entries[0].Path, entries[1].Path)
	}
	if entries[0].Presence != models.InBoth || entries[0].DirName != "-home-user-work-api" {
		t.Errorf("matched entry: %+v", entries[0])
	}
	if entries[1].Presence != models.InConfigOnly || entries[1].DirName != "" {
		t.Errorf("unmatched config entry: %+v", entries[1])
	}

	// Directories with no config key trail, by name.
	if entries[2].Presence != models.OnDiskOnly || entries[2].DirName != "-unclaimed-dir" {
		t.Errorf("disk-only entry: %+v", entries[2])
	}
}

// Older directories replace only path separators, leaving underscores alone.
// Correlation must find those too.
func TestManagerListSeparatorVariant(t *testing.T) {
	m, _ := newTestManager(t, "-home-user-old_cli")

	entries, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Path == "/home/user/old_cli" {
			if e.Presence != models.InBoth || e.DirName != "-home-user-old_cli" {
				t.Errorf("separator-variant match failed: %+v", e)
			}
			return
		}
	}
	t.Fatal("project not listed")
}

func TestManagerDelete(t *testing.T) {
	m, scanner := newTestManager(t, "-home-user-work-api")

	entries, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Delete(entries[0]); err != nil {
		t.Fatal(err)
	}

	after, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range after {
		if e.Path == "/home/user/work/api" {
			t.Error("config entry survived delete")
		}
	}
	if _, err := os.Stat(filepath.Join(scanner.Root(), "-home-user-work-api")); !os.IsNotExist(err) {
		t.Error("directory survived delete")
	}

	// Deleting again is a no-op: the vanished config key is tolerated and
	// RemoveAll on a missing path succeeds.
	if err := m.Delete(entries[0]); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestManagerDeleteDiskOnly(t *testing.T) {
	m, scanner := newTestManager(t, "-orphan")

	if err := m.Delete(models.ProjectEntry{DirName: "-orphan", Presence: models.OnDiskOnly}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(scanner.Root(), "-orphan")); !os.IsNotExist(err) {
		t.Error("directory survived delete")
	}
}

// One undeletable entry must not stop the sweep; every other entry still gets
// deleted and exactly the failed one is reported.
func TestDeleteAllCollectsFailures(t *testing.T) {
	m, scanner := newTestManager(t, "-home-user-work-api", "-stuck", "-other")

	realRemove := scanner.removeAll
	scanner.removeAll = func(path string) error {
		if filepath.Base(path) == "-stuck" {
			return errors.New("device busy")
		}
		return realRemove(path)
	}

	failures, err := m.DeleteAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d: %+v", len(failures), failures)
	}
	if failures[0].Entry.DirName != "-stuck" {
		t.Errorf("wrong entry failed: %+v", failures[0].Entry)
	}

	remaining, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 1 || remaining[0].DirName != "-stuck" {
		t.Errorf("expected only the stuck directory to remain, got %+v", remaining)
	}
}

func TestStatsAttached(t *testing.T) {
	m, _ := newTestManager(t, "-home-user-work-api")

	when := time.Date(2025, 6, 1, 12, 0, 0, 0, time.Local)
	m.SetStatsFunc(func(root string) (map[string]models.DirStats, error) {
		return map[string]models.DirStats{
			"-home-user-work-api": {SessionCount: 3, LastActivity: when},
		}, nil
	})

	entries, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].SessionCount != 3 || !entries[0].LastActivity.Equal(when) {
		t.Errorf("stats not attached: %+v", entries[0])
	}
}

// A failing stats source degrades to zero stats, never to a list error.
func TestStatsFailureSwallowed(t *testing.T) {
	m, _ := newTestManager(t)
	m.SetStatsFunc(func(root string) (map[string]models.DirStats, error) {
		return nil, errors.New("duckdb unavailable")
	})

	entries, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}
