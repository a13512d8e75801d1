package projects

import (
	"errors"
	"sort"

	"github.com/strrl/claude-config-manager/internal/config"
	"github.com/strrl/claude-config-manager/pkg/models"
)

// StatsFunc aggregates per-directory session stats for the projects root.
type StatsFunc func(root string) (map[string]models.DirStats, error)

// Manager combines the config document and the directory scanner into one
// project view. Every List call re-derives the entries from both sources, so
// a delete is reflected on the next render without any cache invalidation.
type Manager struct {
	doc     *config.Document
	scanner *Scanner
	statsFn StatsFunc
}

// NewManager creates a manager over the given document and scanner.
func NewManager(doc *config.Document, scanner *Scanner) *Manager {
	return &Manager{doc: doc, scanner: scanner}
}

// SetStatsFunc enables session statistics in listings. Stats failures are
// swallowed; entries simply carry zero stats.
func (m *Manager) SetStatsFunc(fn StatsFunc) {
	m.statsFn = fn
}

// Scanner returns the underlying directory scanner.
func (m *Manager) Scanner() *Scanner {
	return m.scanner
}

// List returns every project known to the config or present on disk.
// Config-backed entries come first, most recently generated first; directories
// with no config key follow alphabetically.
func (m *Manager) List() ([]models.ProjectEntry, error) {
	dirs, err := m.scanner.List()
	if err != nil {
		return nil, err
	}
	unclaimed := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		unclaimed[d] = true
	}

	var entries []models.ProjectEntry
	for _, p := range m.doc.Projects() {
		e := models.ProjectEntry{
			Path:        p.Path,
			Presence:    models.InConfigOnly,
			History:     p.History,
			GeneratedAt: p.GeneratedAt,
		}
		for _, candidate := range []string{Mangle(p.Path), mangleSeparators(p.Path)} {
			if unclaimed[candidate] {
				e.DirName = candidate
				e.Presence = models.InBoth
				delete(unclaimed, candidate)
				break
			}
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].GeneratedAt.After(entries[j].GeneratedAt)
	})

	for _, d := range dirs {
		if unclaimed[d] {
			entries = append(entries, models.ProjectEntry{
				DirName:  d,
				Presence: models.OnDiskOnly,
			})
		}
	}

	if m.statsFn != nil {
		if stats, err := m.statsFn(m.scanner.Root()); err == nil {
			for i := range entries {
				if s, ok := stats[entries[i].DirName]; ok {
					entries[i].SessionCount = s.SessionCount
					entries[i].LastActivity = s.LastActivity
				}
			}
		}
	}

	return entries, nil
}

// Delete removes whichever sides of the entry exist: the config key, the
// directory, or both. A key that vanished since the last listing counts as
// already deleted.
func (m *Manager) Delete(e models.ProjectEntry) error {
	if e.Path != "" {
		if err := m.doc.DeleteProject(e.Path); err != nil && !errors.Is(err, config.ErrNotFound) {
			return err
		}
	}
	if e.DirName != "" {
		if err := m.scanner.DeleteDirectory(e.DirName); err != nil {
			return err
		}
	}
	return nil
}

// DeleteFailure records one entry that could not be fully deleted.
type DeleteFailure struct {
	Entry models.ProjectEntry
	Err   error
}

// DeleteAll deletes every project entry sequentially. One failed entry never
// stops the rest; all failures come back for reporting.
func (m *Manager) DeleteAll() ([]DeleteFailure, error) {
	entries, err := m.List()
	if err != nil {
		return nil, err
	}

	var failures []DeleteFailure
	for _, e := range entries {
		if err := m.Delete(e); err != nil {
			failures = append(failures, DeleteFailure{Entry: e, Err: err})
		}
	}
	return failures, nil
}
