// Package db provides the shared in-memory DuckDB handle used to aggregate
// session statistics out of the JSONL files under the projects directory.
package db

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
)

var (
	dbInstance *sql.DB
	dbOnce     sync.Once
	dbErr      error
)

// Get returns the singleton DuckDB connection with the JSON extension loaded.
func Get() (*sql.DB, error) {
	dbOnce.Do(func() {
		dbInstance, dbErr = open()
	})
	return dbInstance, dbErr
}

func open() (*sql.DB, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}

	// DuckDB works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("INSTALL json"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to install JSON extension: %w", err)
	}
	if _, err := db.Exec("LOAD json"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load JSON extension: %w", err)
	}

	return db, nil
}
