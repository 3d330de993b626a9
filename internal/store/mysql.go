package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/pgEdge/pgedge-datalab/internal/logging"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// defaultDatabase prefixes module database names when the DSN names none.
const defaultDatabase = "datalab"

// MySQLDatabase returns the database holding a module's tables.
func MySQLDatabase(base, module string) string {
	if base == "" {
		base = defaultDatabase
	}
	return base + "_" + module
}

// OpenMySQL opens the database of a module, creating it when missing.
// The database named in the DSN is used as the name prefix.
func OpenMySQL(ctx context.Context, dsn, module string) (Store, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	name := MySQLDatabase(cfg.DBName, module)

	cfg.DBName = ""
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	if err := createMySQLDatabase(ctx, cfg.FormatDSN(), name); err != nil {
		return nil, err
	}

	cfg.DBName = name
	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Debug().
		Str("module", module).
		Str("addr", cfg.Addr).
		Str("database", name).
		Msg("Connected to MySQL store")

	return &sqlStore{
		db:       db,
		dialect:  mustDialect(schema.MySQL),
		module:   module,
		location: "database " + name,
	}, nil
}

func createMySQLDatabase(ctx context.Context, dsn, name string) error {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer db.Close()

	stmt := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4", name)
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return nil
}
