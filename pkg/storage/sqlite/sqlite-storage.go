package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

type Storage struct {
	Connection *sql.DB
}

// New opens, or creates, the SQLite database at the given path and brings its schema
// up to date. The whole routine is idempotent: it runs on every start and tolerates
// concurrent bootstraps from other processes sharing the same file.
func New(logger logrus.FieldLogger, path string) (storage Storage, err error) {

	logger.Println("initialising SQLite DB")

	if err = os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return storage, fmt.Errorf("creating the database directory: %w", err)
	}

	connection, err := sql.Open("sqlite3", getConnectionString(path))
	if err != nil {
		return storage, fmt.Errorf("opening the database: %w", err)
	}

	// opening the DB will fail silently when the package is compiled without CGO_ENABLED
	if err = connection.Ping(); err != nil {
		return storage, err
	}

	// cascading deletions and referential integrity depend on the foreign keys pragma,
	// which SQLite scopes to single connections; the connection string above requests it
	// for every pooled connection, but a driver quietly ignoring the parameter mustn't
	// pass for success
	if err = ensureForeignKeys(connection); err != nil {
		return storage, err
	}

	if _, err = connection.Exec(schema); err != nil {
		return storage, fmt.Errorf("building the database schema: %w", err)
	}

	if err = migrate(connection); err != nil {
		return storage, fmt.Errorf("migrating the database schema: %w", err)
	}

	return Storage{connection}, nil
}

// getConnectionString provides a configuration string that enables foreign keys
// constraints and lets concurrent writers wait on the database lock rather than
// failing outright on contention.
func getConnectionString(path string) string {
	return path + "?_fk=on&_busy_timeout=5000"
}

func ensureForeignKeys(connection *sql.DB) error {
	var enabled bool
	if err := connection.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("verifying the foreign keys pragma: %w", err)
	}
	if !enabled {
		return errors.New("foreign keys enforcement couldn't be enabled")
	}
	return nil
}

// migrate applies additive column migrations to tables created by older schema
// revisions. Detection inspects the live column metadata, so the routine behaves the
// same whether the database is brand new or predates a given column.
func migrate(connection *sql.DB) error {

	// pets predating user scoping lack both the owner column and its index; the
	// index can only be created once the column exists, on legacy stores and fresh
	// ones alike, so it lives here rather than in the schema script
	if err := addColumn(connection, "pets", "user_id", "INTEGER"); err != nil {
		return err
	}
	if _, err := connection.Exec("CREATE INDEX IF NOT EXISTS idx_pets_user ON pets (user_id)"); err != nil {
		return err
	}

	if err := addColumn(connection, "pets", "species", "TEXT"); err != nil {
		return err
	}

	return addColumn(connection, "pets", "notes", "TEXT")
}

func addColumn(connection *sql.DB, table, column, definition string) error {
	exists, err := columnExists(connection, table, column)
	if err != nil || exists {
		return err
	}

	_, err = connection.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))

	// a concurrent bootstrap may have added the column between the check and the ALTER
	if err != nil && strings.Contains(err.Error(), "duplicate column name") {
		return nil
	}
	return err
}

func columnExists(connection *sql.DB, table, column string) (bool, error) {
	rows, err := connection.Query(fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return false, err
	}

	defer func() {
		_ = rows.Close()
	}()

	var (
		cid              int
		name, columnType string
		notNull, pk      int
		defaultValue     sql.NullString
		found            bool
	)
	for rows.Next() {
		if err = rows.Scan(&cid, &name, &columnType, &notNull, &defaultValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			found = true
		}
	}

	return found, rows.Err()
}

func (s Storage) Close() error {
	return s.Connection.Close()
}
