// Package projects correlates the config file's project entries with the
// per-project directories under ~/.claude/projects and deletes either side.
package projects

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scanner lists and deletes project directories under a fixed root.
type Scanner struct {
	root string

	// removeAll is swapped out in tests to simulate undeletable directories.
	removeAll func(path string) error
}

// DefaultRoot returns the default projects directory.
func DefaultRoot() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".claude", "projects")
}

// NewScanner creates a scanner rooted at the given directory.
func NewScanner(root string) *Scanner {
	return &Scanner{
		root:      filepath.Clean(root),
		removeAll: os.RemoveAll,
	}
}

// Root returns the projects root directory.
func (s *Scanner) Root() string {
	return s.root
}

// List returns the names of all subdirectories under the root, sorted
// alphabetically. A missing root yields an empty list, not an error.
func (s *Scanner) List() ([]string, error) {
	dirEntries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read projects directory: %w", err)
	}

	var names []string
	for _, e := range dirEntries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// DeleteDirectory removes one project directory tree. The name must resolve
// to a direct child of the root; anything else is refused so a hostile or
// mis-mangled name cannot reach outside the projects directory.
func (s *Scanner) DeleteDirectory(name string) error {
	if err := s.validate(name); err != nil {
		return err
	}
	target := filepath.Join(s.root, name)
	if err := s.removeAll(target); err != nil {
		return fmt.Errorf("failed to delete %s: %w", target, err)
	}
	return nil
}

func (s *Scanner) validate(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("invalid directory name %q", name)
	}
	if strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/') {
		return fmt.Errorf("invalid directory name %q", name)
	}
	target := filepath.Join(s.root, name)
	if filepath.Dir(target) != s.root {
		return fmt.Errorf("directory %q escapes projects root", name)
	}
	return nil
}

// Mangle converts an absolute project path into the directory-name encoding
// used under the projects root: every non-alphanumeric rune becomes a dash.
// Two distinct paths can collide (e.g. "/a/b" and "/a-b"); the encoding is
// inherited from the host application and kept as is.
func Mangle(path string) string {
	var b strings.Builder
	b.Grow(len(path))
	for _, r := range path {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}

// mangleSeparators is the older encoding variant where only path separators
// are replaced. Both forms occur in the wild, so correlation probes both.
func mangleSeparators(path string) string {
	return strings.ReplaceAll(path, "/", "-")
}
