//-------------------------------------------------------------------------
//
// pgEdge Data Lab
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package testutil provides utilities for store-backed tests.
package testutil

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-datalab/internal/store"
)

const (
	// PostgresEnv names the PostgreSQL connection string for integration
	// tests; they skip when it is unset.
	PostgresEnv = "DATALAB_TEST_PG"

	// MySQLEnv names the MySQL DSN for integration tests.
	MySQLEnv = "DATALAB_TEST_MYSQL"

	// TestModulePrefix is the prefix of throwaway module names.
	TestModulePrefix = "test_"
)

// SQLiteOptions returns store options rooted in a per-test directory.
func SQLiteOptions(t *testing.T) store.Options {
	t.Helper()
	return store.Options{Driver: "sqlite", Dir: t.TempDir()}
}

// OpenStore opens a module's store and closes it when the test ends.
func OpenStore(t *testing.T, opts store.Options, module string) store.Store {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := store.Open(ctx, opts, module)
	if err != nil {
		t.Fatalf("Failed to open %s store: %v", module, err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// SQLiteStore opens a throwaway SQLite store for module.
func SQLiteStore(t *testing.T, module string) store.Store {
	t.Helper()
	return OpenStore(t, SQLiteOptions(t), module)
}

// Count returns the row count of a table, failing the test on error.
func Count(t *testing.T, s store.Store, table string) int64 {
	t.Helper()

	var n int64
	d := s.Dialect()
	err := s.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+d.Quote(table)).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// RandomModule returns a unique module name so integration tests never
// share a schema or database.
func RandomModule(t *testing.T) string {
	t.Helper()

	randomBytes := make([]byte, 6)
	if _, err := rand.Read(randomBytes); err != nil {
		t.Fatalf("Failed to generate random module name: %v", err)
	}
	return TestModulePrefix + hex.EncodeToString(randomBytes)
}

// PostgresAvailable checks if PostgreSQL is available for testing.
// Returns the connection string if available, empty string otherwise.
func PostgresAvailable() string {
	connStr := os.Getenv(PostgresEnv)
	if connStr == "" {
		return ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return ""
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return ""
	}

	return connStr
}

// SkipIfNoPostgres skips the test if PostgreSQL is not available.
func SkipIfNoPostgres(t *testing.T) string {
	connStr := PostgresAvailable()
	if connStr == "" {
		t.Skip("PostgreSQL not available, skipping integration test")
	}
	return connStr
}

// DropPostgresModule drops the schema of a throwaway module. The schema
// is kept when the test failed, for diagnostics.
func DropPostgresModule(t *testing.T, connStr, module string) {
	t.Helper()

	if t.Failed() {
		t.Logf("Test failed - keeping schema %s for diagnostics", store.PostgresSchema(module))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Logf("Warning: Failed to connect to drop test schema: %v", err)
		return
	}
	defer pool.Close()

	stmt := "DROP SCHEMA IF EXISTS " + pgx.Identifier{store.PostgresSchema(module)}.Sanitize() + " CASCADE"
	if _, err := pool.Exec(ctx, stmt); err != nil {
		t.Logf("Warning: Failed to drop test schema: %v", err)
	}
}

// MySQLAvailable checks if MySQL is available for testing.
func MySQLAvailable() string {
	dsn := os.Getenv(MySQLEnv)
	if dsn == "" {
		return ""
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return ""
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return ""
	}
	return dsn
}

// SkipIfNoMySQL skips the test if MySQL is not available.
func SkipIfNoMySQL(t *testing.T) string {
	dsn := MySQLAvailable()
	if dsn == "" {
		t.Skip("MySQL not available, skipping integration test")
	}
	return dsn
}

// DropMySQLModule drops the database of a throwaway module.
func DropMySQLModule(t *testing.T, dsn, module string) {
	t.Helper()

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Logf("Warning: Failed to parse DSN: %v", err)
		return
	}
	name := store.MySQLDatabase(cfg.DBName, module)
	if t.Failed() {
		t.Logf("Test failed - keeping database %s for diagnostics", name)
		return
	}

	cfg.DBName = ""
	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		t.Logf("Warning: Failed to connect to drop test database: %v", err)
		return
	}
	defer db.Close()

	if _, err := db.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS `%s`", name)); err != nil {
		t.Logf("Warning: Failed to drop test database: %v", err)
	}
}
