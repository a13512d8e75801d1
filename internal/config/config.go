// Package config reads and mutates the Claude configuration file
// (~/.claude.json by default). The document is kept as ordered raw JSON
// segments so that a save only rewrites what was actually deleted and
// every untouched key round-trips byte for byte.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/strrl/claude-config-manager/pkg/models"
)

const (
	serversKey  = "mcpServers"
	projectsKey = "projects"
)

// ErrNotFound is returned when a server or project key is absent from the
// document. Callers treat it as "already satisfied" for delete operations.
var ErrNotFound = errors.New("not found")

// entry is one key/value pair of a JSON object, value kept verbatim.
type entry struct {
	key string
	raw json.RawMessage
}

// Document is the parsed config file. It owns all mutations; nothing else
// writes the file.
type Document struct {
	path string

	top      []entry
	servers  []entry // members of mcpServers, insertion order
	projects []entry // members of projects, insertion order

	serversDirty  bool
	projectsDirty bool
}

// rawServer mirrors the wire shape of a mcpServers value.
type rawServer struct {
	Type    string            `json:"type"`
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
	URL     string            `json:"url,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// rawHistoryItem is one element of a project's history array.
type rawHistoryItem struct {
	Display        string                     `json:"display"`
	Timestamp      int64                      `json:"timestamp,omitempty"`
	PastedContents map[string]json.RawMessage `json:"pastedContents,omitempty"`
}

// rawProject is the subset of a projects value the UI cares about. The full
// value is preserved verbatim for saving.
type rawProject struct {
	History                 []rawHistoryItem `json:"history"`
	ExampleFilesGeneratedAt int64            `json:"exampleFilesGeneratedAt,omitempty"`
}

// DefaultPath returns the default location of the Claude configuration file.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".claude.json")
}

// Load reads and parses the configuration file. A missing file is an error;
// startup decides whether that is fatal.
func Load(path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}

	doc := &Document{path: abs}
	doc.top, err = parseObject(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", abs, err)
	}

	if raw, ok := lookup(doc.top, serversKey); ok {
		doc.servers, err = parseObject(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", serversKey, err)
		}
	}
	if raw, ok := lookup(doc.top, projectsKey); ok {
		doc.projects, err = parseObject(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", projectsKey, err)
		}
	}

	return doc, nil
}

// parseObject walks a JSON object with a decoder so member order survives.
// Values are captured verbatim as raw messages.
func parseObject(data []byte) ([]entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var entries []entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		entries = append(entries, entry{key: key, raw: raw})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}

func lookup(entries []entry, key string) (json.RawMessage, bool) {
	for i := range entries {
		if entries[i].key == key {
			return entries[i].raw, true
		}
	}
	return nil, false
}

func remove(entries []entry, key string) ([]entry, entry, int) {
	for i := range entries {
		if entries[i].key == key {
			removed := entries[i]
			return append(entries[:i:i], entries[i+1:]...), removed, i
		}
	}
	return entries, entry{}, -1
}

// Path returns the absolute path of the config file.
func (d *Document) Path() string {
	return d.path
}

// Servers returns all MCP servers in the order they appear in the file.
func (d *Document) Servers() []models.ServerEntry {
	servers := make([]models.ServerEntry, 0, len(d.servers))
	for _, e := range d.servers {
		var raw rawServer
		// A malformed member still lists by name; the rest stays zero.
		_ = json.Unmarshal(e.raw, &raw)

		typ := raw.Type
		if typ == "" {
			typ = "stdio"
		}
		servers = append(servers, models.ServerEntry{
			Name:    e.key,
			Type:    typ,
			Command: raw.Command,
			Args:    raw.Args,
			Env:     raw.Env,
			URL:     raw.URL,
			Headers: raw.Headers,
		})
	}
	return servers
}

// Project is one entry of the projects mapping.
type Project struct {
	Path        string
	History     []models.ConversationRecord
	GeneratedAt time.Time
}

// Projects returns all config projects in the order they appear in the file.
func (d *Document) Projects() []Project {
	projects := make([]Project, 0, len(d.projects))
	for _, e := range d.projects {
		var raw rawProject
		_ = json.Unmarshal(e.raw, &raw)

		p := Project{Path: e.key}
		if raw.ExampleFilesGeneratedAt > 0 {
			p.GeneratedAt = time.UnixMilli(raw.ExampleFilesGeneratedAt)
		}
		for _, item := range raw.History {
			rec := models.ConversationRecord{
				Display:       item.Display,
				PastedPreview: pastedPreview(item.PastedContents),
			}
			if item.Timestamp > 0 {
				rec.Timestamp = time.UnixMilli(item.Timestamp)
			}
			p.History = append(p.History, rec)
		}
		projects = append(projects, p)
	}
	return projects
}

// pastedPreview flattens the first pasted attachment into a single line.
func pastedPreview(contents map[string]json.RawMessage) string {
	for _, raw := range contents {
		var obj struct {
			Content string `json:"content"`
		}
		text := ""
		if err := json.Unmarshal(raw, &obj); err == nil && obj.Content != "" {
			text = obj.Content
		} else {
			var s string
			if err := json.Unmarshal(raw, &s); err == nil {
				text = s
			}
		}
		if text == "" {
			continue
		}
		text = flatten(text)
		if len(text) > 80 {
			text = text[:77] + "..."
		}
		return text
	}
	return ""
}

func flatten(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\n' || c == '\r' || c == '\t' {
			c = ' '
		}
		out = append(out, c)
	}
	return string(bytes.TrimSpace(out))
}

// DeleteServer removes one server and persists the document. The in-memory
// state is rolled back if the save fails, so the delete can be retried.
func (d *Document) DeleteServer(name string) error {
	entries, removed, idx := remove(d.servers, name)
	if idx < 0 {
		return fmt.Errorf("server %q: %w", name, ErrNotFound)
	}
	d.servers = entries
	d.serversDirty = true

	if err := d.Save(); err != nil {
		d.servers = insertAt(d.servers, removed, idx)
		return err
	}
	return nil
}

// DeleteAllServers removes every server and persists the document.
func (d *Document) DeleteAllServers() error {
	if len(d.servers) == 0 {
		return nil
	}
	saved := d.servers
	d.servers = nil
	d.serversDirty = true

	if err := d.Save(); err != nil {
		d.servers = saved
		return err
	}
	return nil
}

// DeleteProject removes one project key and persists the document.
func (d *Document) DeleteProject(path string) error {
	entries, removed, idx := remove(d.projects, path)
	if idx < 0 {
		return fmt.Errorf("project %q: %w", path, ErrNotFound)
	}
	d.projects = entries
	d.projectsDirty = true

	if err := d.Save(); err != nil {
		d.projects = insertAt(d.projects, removed, idx)
		return err
	}
	return nil
}

// DeleteAllProjects removes every project key and persists the document.
func (d *Document) DeleteAllProjects() error {
	if len(d.projects) == 0 {
		return nil
	}
	saved := d.projects
	d.projects = nil
	d.projectsDirty = true

	if err := d.Save(); err != nil {
		d.projects = saved
		return err
	}
	return nil
}

// DeleteConversation removes one record from a project's history array and
// persists the document. Other members of the project value stay verbatim.
func (d *Document) DeleteConversation(path string, index int) error {
	for i := range d.projects {
		if d.projects[i].key != path {
			continue
		}

		rebuilt, err := removeHistoryItem(d.projects[i].raw, index)
		if err != nil {
			return err
		}

		saved := d.projects[i].raw
		d.projects[i].raw = rebuilt
		d.projectsDirty = true

		if err := d.Save(); err != nil {
			d.projects[i].raw = saved
			return err
		}
		return nil
	}
	return fmt.Errorf("project %q: %w", path, ErrNotFound)
}

// removeHistoryItem rebuilds a project value with history[index] dropped.
// Every other member keeps its original bytes.
func removeHistoryItem(raw json.RawMessage, index int) (json.RawMessage, error) {
	members, err := parseObject(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse project value: %w", err)
	}

	historyRaw, ok := lookup(members, "history")
	if !ok {
		return nil, fmt.Errorf("history item %d: %w", index, ErrNotFound)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(historyRaw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	if index < 0 || index >= len(items) {
		return nil, fmt.Errorf("history item %d: %w", index, ErrNotFound)
	}
	items = append(items[:index:index], items[index+1:]...)

	var arr bytes.Buffer
	arr.WriteString("[")
	for i, item := range items {
		if i > 0 {
			arr.WriteString(",")
		}
		arr.Write(item)
	}
	arr.WriteString("]")

	for i := range members {
		if members[i].key == "history" {
			members[i].raw = arr.Bytes()
		}
	}
	return encodeObject(members), nil
}

func insertAt(entries []entry, e entry, idx int) []entry {
	if idx < 0 || idx > len(entries) {
		return append(entries, e)
	}
	entries = append(entries, entry{})
	copy(entries[idx+1:], entries[idx:])
	entries[idx] = e
	return entries
}
