package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/strrl/claude-config-manager/internal/projects"
	"github.com/strrl/claude-config-manager/internal/ui"
)

// NewStatsCommand creates the stats command
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show per-project session statistics without TUI",
		Long: `Aggregates the session logs under the projects directory and prints
session counts and last activity per project directory.`,
		Args: cobra.NoArgs,
		RunE: runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	root := projectsDir
	if root == "" {
		root = projects.DefaultRoot()
	}

	stats, err := projects.DirStats(root)
	if err != nil {
		return fmt.Errorf("failed to aggregate session stats: %w", err)
	}
	if len(stats) == 0 {
		fmt.Printf("No session logs found under %s\n", root)
		return nil
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("Session statistics for %s\n\n", root)
	for _, name := range names {
		s := stats[name]
		fmt.Printf("  %-50s %4d sessions  last active %s\n",
			ui.Truncate(name, 50), s.SessionCount, s.LastActivity.Format("2006-01-02 15:04"))
	}
	return nil
}
