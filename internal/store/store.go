//-------------------------------------------------------------------------
//
// pgEdge Data Lab
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package store provides the relational stores that generated datasets
// are written to. Each logical module owns one store: a SQLite file, a
// PostgreSQL schema or a MySQL database.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

var (
	// ErrUnknownDriver is returned for an unsupported store driver.
	ErrUnknownDriver = errors.New("unknown store driver")

	// ErrNoRows is returned by Row.Scan when the query matched nothing.
	ErrNoRows = errors.New("no rows in result set")
)

// Row is the result of QueryRow.
type Row interface {
	Scan(dest ...any) error
}

// Rows is the result of Query.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Execer runs statements; both Store and Tx satisfy it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) error
}

// Querier runs single-row queries; both Store and Tx satisfy it.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// Tx is an open transaction.
type Tx interface {
	Execer
	Querier
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Copier is implemented by transactions that support bulk copy.
type Copier interface {
	CopyRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
}

// Store is one module's relational store.
type Store interface {
	Execer
	Querier

	// Dialect returns the SQL dialect of the store.
	Dialect() schema.Dialect

	// Module returns the logical module the store holds.
	Module() string

	// Location describes where the store lives (file, schema, database).
	Location() string

	// Query runs a multi-row query.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)

	// Begin opens a transaction.
	Begin(ctx context.Context) (Tx, error)

	// Close releases the store.
	Close() error
}

// Options selects and locates the stores.
type Options struct {
	// Driver is sqlite, postgres or mysql.
	Driver string

	// Dir holds one SQLite file per module.
	Dir string

	// DSN is the PostgreSQL or MySQL connection string.
	DSN string
}

// Open opens the store of one module, creating the file, schema or
// database when it does not exist.
func Open(ctx context.Context, opts Options, module string) (Store, error) {
	switch opts.Driver {
	case schema.SQLite:
		return OpenSQLite(ctx, opts.Dir, module)
	case schema.Postgres:
		return OpenPostgres(ctx, opts.DSN, module)
	case schema.MySQL:
		return OpenMySQL(ctx, opts.DSN, module)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
}

// Opener opens the store of a module. Open bound to Options satisfies it.
type Opener func(ctx context.Context, module string) (Store, error)

// OpenerFor binds Open to opts.
func OpenerFor(opts Options) Opener {
	return func(ctx context.Context, module string) (Store, error) {
		return Open(ctx, opts, module)
	}
}
