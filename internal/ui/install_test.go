package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/strrl/claude-config-manager/pkg/models"
)

func TestInstallCommandStdio(t *testing.T) {
	got := InstallCommand(models.ServerEntry{
		Name:    "github",
		Type:    "stdio",
		Command: "npx",
		Args:    []string{"-y", "@modelcontextprotocol/server-github"},
		Env:     map[string]string{"GITHUB_TOKEN": "secret", "DEBUG": "1"},
	})
	want := []string{
		"claude", "mcp", "add", "github",
		"--env", "DEBUG=1",
		"--env", "GITHUB_TOKEN=secret",
		"--", "npx", "-y", "@modelcontextprotocol/server-github",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("InstallCommand mismatch (-want +got):\n%s", diff)
	}
}

func TestInstallCommandRemote(t *testing.T) {
	got := InstallCommand(models.ServerEntry{
		Name: "fetch",
		Type: "http",
		URL:  "https://example.com/mcp",
	})
	want := []string{
		"claude", "mcp", "add",
		"--transport", "http",
		"fetch", "https://example.com/mcp",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("InstallCommand mismatch (-want +got):\n%s", diff)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a longer string", 10, "a longe..."},
		{"héllo wörld", 8, "héllo..."},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}
