package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strrl/claude-config-manager/internal/config"
	"github.com/strrl/claude-config-manager/internal/projects"
	"github.com/strrl/claude-config-manager/internal/tui"
)

var projectsDir string

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ccm [config-path]",
		Short: "Inspect and clean up the Claude configuration",
		Long: `ccm is a TUI application for browsing the Claude configuration file and
deleting MCP servers, project entries and their on-disk directories.

The optional argument is the config file path; the default is ~/.claude.json.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&projectsDir, "projects-dir", "",
		"Projects directory (default ~/.claude/projects)")
	rootCmd.AddCommand(NewShowCommand())
	rootCmd.AddCommand(NewStatsCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadDocument loads the config file named on the command line, or the
// default one. A missing or malformed file is fatal before any UI shows.
func loadDocument(args []string) (*config.Document, error) {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}

	doc, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return doc, nil
}

// newManager wires the project manager over the configured projects root,
// with DuckDB-backed session stats enabled.
func newManager(doc *config.Document) *projects.Manager {
	root := projectsDir
	if root == "" {
		root = projects.DefaultRoot()
	}

	manager := projects.NewManager(doc, projects.NewScanner(root))
	manager.SetStatsFunc(projects.DirStats)
	return manager
}

func runTUI(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args)
	if err != nil {
		return err
	}

	if err := tui.Run(doc, newManager(doc)); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
