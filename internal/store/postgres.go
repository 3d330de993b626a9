package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-datalab/internal/logging"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// PostgresSchema returns the schema holding a module's tables.
func PostgresSchema(module string) string {
	return "datalab_" + module
}

// DefaultPoolConfig returns default connection pool configuration.
func DefaultPoolConfig() *pgxpool.Config {
	config, _ := pgxpool.ParseConfig("")

	// Population is sequential; a small pool suffices.
	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	return config
}

// OpenPostgres connects to PostgreSQL with the module's schema on the
// search path, creating the schema when missing.
func OpenPostgres(ctx context.Context, connString, module string) (Store, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	// Apply default pool settings
	defaults := DefaultPoolConfig()
	config.MaxConns = defaults.MaxConns
	config.MinConns = defaults.MinConns
	config.MaxConnLifetime = defaults.MaxConnLifetime
	config.MaxConnIdleTime = defaults.MaxConnIdleTime
	config.HealthCheckPeriod = defaults.HealthCheckPeriod

	schemaName := PostgresSchema(module)
	config.ConnConfig.RuntimeParams["search_path"] = schemaName

	logging.Debug().
		Str("host", config.ConnConfig.Host).
		Uint16("port", config.ConnConfig.Port).
		Str("database", config.ConnConfig.Database).
		Str("schema", schemaName).
		Msg("Connecting to database")

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+pgx.Identifier{schemaName}.Sanitize()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema %s: %w", schemaName, err)
	}

	return &pgStore{
		pool:     pool,
		dialect:  mustDialect(schema.Postgres),
		module:   module,
		location: fmt.Sprintf("%s/%s schema %s", config.ConnConfig.Host, config.ConnConfig.Database, schemaName),
	}, nil
}

type pgStore struct {
	pool     *pgxpool.Pool
	dialect  schema.Dialect
	module   string
	location string
}

func (s *pgStore) Dialect() schema.Dialect { return s.dialect }
func (s *pgStore) Module() string          { return s.module }
func (s *pgStore) Location() string        { return s.location }

func (s *pgStore) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := s.pool.Exec(ctx, sql, args...)
	return err
}

func (s *pgStore) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return pgRow{s.pool.QueryRow(ctx, sql, args...)}
}

func (s *pgStore) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return s.pool.Query(ctx, sql, args...)
}

func (s *pgStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return pgTx{tx}, nil
}

func (s *pgStore) Close() error {
	s.pool.Close()
	return nil
}

type pgTx struct {
	tx pgx.Tx
}

func (t pgTx) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := t.tx.Exec(ctx, sql, args...)
	return err
}

func (t pgTx) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return pgRow{t.tx.QueryRow(ctx, sql, args...)}
}

func (t pgTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t pgTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

// CopyRows bulk-loads rows with the COPY protocol.
func (t pgTx) CopyRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	return t.tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
}

type pgRow struct {
	row pgx.Row
}

func (r pgRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoRows
	}
	return err
}
