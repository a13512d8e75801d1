package projects

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/strrl/claude-config-manager/internal/db"
	"github.com/strrl/claude-config-manager/pkg/models"
)

// DirStats aggregates session counts and last activity per project directory
// by scanning the JSONL session files in one DuckDB pass.
func DirStats(root string) (map[string]models.DirStats, error) {
	database, err := db.Get()
	if err != nil {
		return nil, err
	}

	globPattern := filepath.Join(root, "*", "*.jsonl")

	query := fmt.Sprintf(`
		SELECT
			regexp_extract(filename, '([^/]+)/[^/]+\.jsonl$', 1) as dir_name,
			COUNT(DISTINCT CAST(sessionId AS VARCHAR)) as session_count,
			MAX(timestamp) as last_activity
		FROM read_json('%s',
			format = 'newline_delimited',
			union_by_name = true,
			filename = true
		)
		WHERE sessionId IS NOT NULL
		GROUP BY dir_name
	`, globPattern)

	rows, err := database.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute stats query: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]models.DirStats)
	for rows.Next() {
		var dirName string
		var sessionCount int
		var lastActivity sql.NullString

		if err := rows.Scan(&dirName, &sessionCount, &lastActivity); err != nil {
			continue
		}

		s := models.DirStats{SessionCount: sessionCount}
		if lastActivity.Valid {
			if t, err := time.Parse(time.RFC3339, lastActivity.String); err == nil {
				s.LastActivity = t.Local()
			}
		}
		stats[dirName] = s
	}

	return stats, rows.Err()
}
