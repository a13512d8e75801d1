package models

import (
	"path/filepath"
	"time"
)

// ServerEntry is the display view of one MCP server definition from the
// managed config. Fields mirror the wire shape of a mcpServers value; the
// raw bytes stay inside the config store.
type ServerEntry struct {
	Name    string
	Type    string // stdio (default), sse, http
	Command string
	Args    []string
	Env     map[string]string
	URL     string
	Headers map[string]string
}

// ConversationRecord is one prompt from a project's history array.
type ConversationRecord struct {
	Display       string
	PastedPreview string // first pasted attachment, flattened to one line
	Timestamp     time.Time
}

// Presence describes where a project entry exists.
type Presence int

const (
	// InConfigOnly means the project has a config key but no directory on disk.
	InConfigOnly Presence = iota
	// OnDiskOnly means a directory exists with no matching config key.
	OnDiskOnly
	// InBoth means the config key and the directory both exist.
	InBoth
)

func (p Presence) String() string {
	switch p {
	case InConfigOnly:
		return "config"
	case OnDiskOnly:
		return "disk"
	case InBoth:
		return "config+disk"
	default:
		return "unknown"
	}
}

// ProjectEntry correlates a config project key with its on-disk directory.
// Either side may be absent; Presence says which.
type ProjectEntry struct {
	Path        string // absolute project path (config key), empty for disk-only entries
	DirName     string // mangled directory name under the projects root, empty for config-only entries
	Presence    Presence
	History     []ConversationRecord
	GeneratedAt time.Time // exampleFilesGeneratedAt from the config, zero if unset
	// Session stats aggregated from the directory's JSONL files.
	// Zero values when stats are unavailable.
	SessionCount int
	LastActivity time.Time
}

// Name returns a short display name for the entry.
func (p ProjectEntry) Name() string {
	if p.Path != "" {
		if base := filepath.Base(p.Path); base != "." && base != string(filepath.Separator) {
			return base
		}
		return p.Path
	}
	return p.DirName
}

// DirStats holds per-directory session statistics derived from JSONL files.
type DirStats struct {
	SessionCount int
	LastActivity time.Time
}
