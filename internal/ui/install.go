package ui

import (
	"sort"

	"github.com/strrl/claude-config-manager/pkg/models"
)

// InstallCommand builds the `claude mcp add` invocation that would recreate
// the given server definition.
func InstallCommand(s models.ServerEntry) []string {
	parts := []string{"claude", "mcp", "add"}

	remote := s.Type == "sse" || s.Type == "http"
	if remote {
		parts = append(parts, "--transport", s.Type)
	}

	parts = append(parts, s.Name)

	envKeys := make([]string, 0, len(s.Env))
	for k := range s.Env {
		envKeys = append(envKeys, k)
	}
	sort.Strings(envKeys)
	for _, k := range envKeys {
		parts = append(parts, "--env", k+"="+s.Env[k])
	}

	if remote {
		if s.URL != "" {
			parts = append(parts, s.URL)
		} else if s.Command != "" {
			parts = append(parts, s.Command)
		}
		return parts
	}

	// stdio servers take the command after a -- separator
	parts = append(parts, "--")
	if s.Command != "" {
		parts = append(parts, s.Command)
	}
	parts = append(parts, s.Args...)
	return parts
}
