package main

import (
	"database/sql"
	"os"
	"path/filepath"

	"draftsman/internal/db"
)

func openDB() (*sql.DB, string, func(), error) {
	repoRoot, err := os.Getwd()
	if err != nil {
		return nil, "", func() {}, err
	}
	draftsmanDir := filepath.Join(repoRoot, ".draftsman")
	if err := os.MkdirAll(draftsmanDir, 0o755); err != nil {
		return nil, "", func() {}, err
	}
	dbPath := filepath.Join(draftsmanDir, "draftsman.db")
	storeDB, err := db.Open(dbPath)
	if err != nil {
		return nil, "", func() {}, err
	}
	return storeDB, repoRoot, func() { _ = storeDB.Close() }, nil
}
