// Package ui renders the non-interactive listings for the show command.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/strrl/claude-config-manager/pkg/models"
)

const tableWidth = 80

var (
	dimColor     = color.New(color.Faint)
	warningColor = color.New(color.FgYellow)
)

// RenderServerTable renders the configured MCP servers.
func RenderServerTable(w io.Writer, servers []models.ServerEntry) {
	if len(servers) == 0 {
		fmt.Fprintln(w, "No MCP servers configured.")
		return
	}

	fmt.Fprintf(w, "\nMCP Servers (%d configured)\n", len(servers))
	fmt.Fprintln(w, strings.Repeat("─", tableWidth))
	fmt.Fprintf(w, "  %-18s %-8s %s\n", "NAME", "TYPE", "COMMAND")

	for i := range servers {
		fmt.Fprintf(w, "  %-18s %-8s %s\n",
			servers[i].Name,
			servers[i].Type,
			Truncate(CommandString(servers[i]), 48))
	}
	fmt.Fprintln(w)
}

// RenderProjectTable renders the combined config/disk project view.
func RenderProjectTable(w io.Writer, entries []models.ProjectEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No projects found.")
		return
	}

	fmt.Fprintf(w, "\nProjects (%d)\n", len(entries))
	fmt.Fprintln(w, strings.Repeat("─", tableWidth))
	fmt.Fprintf(w, "  %-30s %-12s %8s %s\n", "PROJECT", "WHERE", "HISTORY", "LAST SESSION")

	for i := range entries {
		e := entries[i]
		lastActivity := ""
		if !e.LastActivity.IsZero() {
			lastActivity = e.LastActivity.Format("2006-01-02 15:04")
		}

		line := fmt.Sprintf("  %-30s %-12s %8d %s",
			Truncate(e.Name(), 30), e.Presence, len(e.History), lastActivity)

		if e.Presence == models.OnDiskOnly {
			warningColor.Fprintln(w, line)
		} else {
			fmt.Fprintln(w, line)
		}
	}
	fmt.Fprintln(w)
}

// RenderHistory renders the conversation history of one project.
func RenderHistory(w io.Writer, entry models.ProjectEntry) {
	fmt.Fprintf(w, "\nProject: %s\n", entry.Name())
	if entry.Path != "" {
		dimColor.Fprintf(w, "Path: %s\n", entry.Path)
	}
	fmt.Fprintf(w, "Conversations: %d\n", len(entry.History))
	fmt.Fprintln(w, strings.Repeat("─", tableWidth))

	if len(entry.History) == 0 {
		fmt.Fprintln(w, "No conversation history.")
		return
	}

	for i, rec := range entry.History {
		fmt.Fprintf(w, "%3d. %s\n", i+1, Truncate(rec.Display, tableWidth-6))
		if rec.PastedPreview != "" {
			dimColor.Fprintf(w, "     | %s\n", rec.PastedPreview)
		}
	}
	fmt.Fprintln(w)
}

// CommandString returns a one-line representation of a server's command, the
// URL for remote servers.
func CommandString(s models.ServerEntry) string {
	if s.URL != "" {
		return s.URL
	}
	if len(s.Args) == 0 {
		return s.Command
	}
	return s.Command + " " + strings.Join(s.Args, " ")
}

// Truncate shortens a string to maxLen runes with an ellipsis.
func Truncate(s string, maxLen int) string {
	if maxLen <= 3 {
		maxLen = 3
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
