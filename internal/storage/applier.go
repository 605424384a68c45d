// Package storage applies compiled schemas to a DuckDB database. It is the
// execution boundary around the pure compiler: nothing in here generates
// DDL, it only sequences and executes what the compiler produced.
package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb" // DuckDB driver

	"github.com/recordkit/schemac/internal/dialect"
	"github.com/recordkit/schemac/internal/errors"
)

// CompiledTable pairs a table name with its CREATE TABLE statement. Callers
// must only construct these from successful compilations; a collection that
// failed to compile must never reach the applier.
type CompiledTable struct {
	Name string
	DDL  string
}

// Applier executes drop+create schema setup against one DuckDB database.
type Applier struct {
	db    *sql.DB
	rules dialect.Rules
	path  string
}

// NewApplier opens (creating if needed) the DuckDB database at dbPath.
func NewApplier(dbPath string, rules dialect.Rules) (*Applier, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeFileSystem, "failed to create database directory %s", dir)
	}

	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeDatabase, "failed to open database")
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, errors.ErrTypeDatabase, "failed to ping database")
	}

	return &Applier{db: db, rules: rules, path: dbPath}, nil
}

// Apply sets up each table in order: DROP TABLE IF EXISTS followed by the
// compiled CREATE TABLE, as separate statements. Tables are processed in the
// given order and application stops at the first failure, so a broken table
// never has later tables applied over it.
func (a *Applier) Apply(ctx context.Context, tables []CompiledTable) error {
	for _, table := range tables {
		name, err := a.rules.QuoteIdentifier(table.Name)
		if err != nil {
			return err
		}

		if _, err := a.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
			return errors.Wrapf(err, errors.ErrTypeDatabase, "failed to drop table %q", table.Name)
		}

		if _, err := a.db.ExecContext(ctx, table.DDL); err != nil {
			return errors.Wrapf(err, errors.ErrTypeDatabase, "failed to create table %q", table.Name)
		}
	}

	return nil
}

// TableNames lists the user tables currently present, for post-apply
// verification and the CLI summary.
func (a *Applier) TableNames(ctx context.Context) ([]string, error) {
	rows, err := a.db.QueryContext(
		ctx,
		"SELECT table_name FROM information_schema.tables WHERE table_schema = 'main' ORDER BY table_name",
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeDatabase, "failed to list tables")
	}
	defer func() { _ = rows.Close() }()

	var names []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, errors.ErrTypeDatabase, "failed to scan table name")
		}

		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrTypeDatabase, "failed to list tables")
	}

	return names, nil
}

// Path returns the database file path.
func (a *Applier) Path() string {
	return a.path
}

// Close releases the database handle.
func (a *Applier) Close() error {
	return a.db.Close()
}
