package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strrl/claude-config-manager/internal/projects"
	"github.com/strrl/claude-config-manager/internal/ui"
)

var showConfigPath string

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show [servers|projects|history <project>]",
		Short: "Show servers, projects, or history without the TUI",
		Long: `Show the managed configuration in a non-interactive format.
Without arguments: lists servers and projects
With "servers" or "projects": lists only that section
With "history" and a project name or path: shows that project's conversations`,
		RunE: runShow,
	}

	showCmd.Flags().StringVar(&showConfigPath, "config", "", "Config file path (default ~/.claude.json)")
	return showCmd
}

func runShow(cmd *cobra.Command, args []string) error {
	var loadArgs []string
	if showConfigPath != "" {
		loadArgs = []string{showConfigPath}
	}
	doc, err := loadDocument(loadArgs)
	if err != nil {
		return err
	}
	manager := newManager(doc)

	section := ""
	if len(args) > 0 {
		section = args[0]
	}

	switch section {
	case "":
		ui.RenderServerTable(os.Stdout, doc.Servers())
		entries, err := manager.List()
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}
		ui.RenderProjectTable(os.Stdout, entries)
		return nil

	case "servers":
		ui.RenderServerTable(os.Stdout, doc.Servers())
		return nil

	case "projects":
		entries, err := manager.List()
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}
		ui.RenderProjectTable(os.Stdout, entries)
		return nil

	case "history":
		if len(args) < 2 {
			return fmt.Errorf("usage: ccm show history <project>")
		}
		return showHistory(manager, args[1])

	default:
		return fmt.Errorf("unknown section %q. Usage: ccm show [servers|projects|history <project>]", section)
	}
}

func showHistory(manager *projects.Manager, name string) error {
	entries, err := manager.List()
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	for _, entry := range entries {
		if entry.Name() == name || entry.Path == name || entry.DirName == name {
			ui.RenderHistory(os.Stdout, entry)
			return nil
		}
	}
	return fmt.Errorf("project %q not found", name)
}
