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

// Get returns the shared in-memory DuckDB connection used to query local
// JSON exports. The JSON extension is loaded once on first use.
func Get() (*sql.DB, error) {
	dbOnce.Do(func() {
		dbInstance, dbErr = open()
	})
	return dbInstance, dbErr
}

func open() (*sql.DB, error) {
	database, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}

	// DuckDB works best over a single connection.
	database.SetMaxOpenConns(1)
	database.SetMaxIdleConns(1)

	if _, err := database.Exec("INSTALL json"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to install JSON extension: %w", err)
	}
	if _, err := database.Exec("LOAD json"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to load JSON extension: %w", err)
	}

	return database, nil
}
