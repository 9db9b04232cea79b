// Package migrations embeds the SQL schema of the server (PostgreSQL) and of
// the client-side local store (SQLite) and applies it with goose.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

//go:embed client/*.sql
var embedClientMigrations embed.FS

// goose keeps the base FS and the dialect in package-level state.
var gooseMu sync.Mutex

var errNilDB = errors.New("migration error: db is nil")

// Migrate applies the server schema to a PostgreSQL database opened with the
// pgx stdlib driver.
func Migrate(db *sql.DB) error {
	return migrate(db, embedMigrations, "pgx", ".")
}

// MigrateClient applies the local store schema to a SQLite database.
func MigrateClient(db *sql.DB) error {
	return migrate(db, embedClientMigrations, "sqlite3", "client")
}

func migrate(db *sql.DB, migrations fs.FS, dialect, dir string) error {
	if db == nil {
		return errNilDB
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
