package main

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nouraliman/kunuz/internal/api"
	"github.com/nouraliman/kunuz/internal/db"
)

// openStore picks SQLite when KUNUZ_SQLITE_PATH is set, running the embedded
// migrations first, otherwise the in-memory store (dev only, data is lost on
// restart).
func openStore() (api.Store, error) {
	path := os.Getenv("KUNUZ_SQLITE_PATH")
	if path == "" {
		log.Printf("KUNUZ_SQLITE_PATH not set, using in-memory store")
		return api.NewMemoryStore(), nil
	}
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(conn, os.Getenv("KUNUZ_MIGRATIONS_DIR")); err != nil {
		return nil, err
	}
	return db.NewStore(conn)
}
