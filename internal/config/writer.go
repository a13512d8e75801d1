package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Save rewrites the whole document to disk. The write goes through a temp
// file in the same directory plus a rename so a crash mid-write cannot
// truncate the config.
func (d *Document) Save() error {
	content, err := d.encode()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := atomicWrite(d.path, content); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Backup copies the current file aside before a destructive batch operation.
// Backup filename format: {original}.backup.{YYYYMMDD-HHMMSS}
func (d *Document) Backup() (string, error) {
	content, err := os.ReadFile(d.path)
	if err != nil {
		return "", fmt.Errorf("failed to read config for backup: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	backupPath := fmt.Sprintf("%s.backup.%s", d.path, timestamp)

	if err := os.WriteFile(backupPath, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return backupPath, nil
}

// encode reassembles the document. Untouched values are emitted verbatim;
// only a mutated mcpServers/projects container is rebuilt.
func (d *Document) encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")

	for i, e := range d.top {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")

		key, err := json.Marshal(e.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(": ")

		switch {
		case e.key == serversKey && d.serversDirty:
			buf.Write(encodeObject(d.servers))
		case e.key == projectsKey && d.projectsDirty:
			buf.Write(encodeObject(d.projects))
		default:
			buf.Write(e.raw)
		}
	}

	if len(d.top) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}

// encodeObject rebuilds one container object. Member values are the original
// raw bytes; only the surrounding braces and commas are new.
func encodeObject(entries []entry) []byte {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, e := range entries {
		if i > 0 {
			buf.WriteString(",")
		}
		key, _ := json.Marshal(e.key)
		buf.Write(key)
		buf.WriteString(":")
		buf.Write(e.raw)
	}
	buf.WriteString("}")
	return buf.Bytes()
}

// atomicWrite writes content via a temp file and rename. Rename is atomic on
// the filesystems the config lives on, so readers never see a partial file.
func atomicWrite(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, "ccm-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(content); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
