package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/pgEdge/pgedge-datalab/internal/logging"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// SQLitePath returns the file holding a module's SQLite store.
func SQLitePath(dir, module string) string {
	return filepath.Join(dir, "datalab_"+module+".db")
}

// OpenSQLite opens (creating if needed) the SQLite file of a module.
func OpenSQLite(ctx context.Context, dir, module string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	path := SQLitePath(dir, module)

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	// One writer; a second connection would only wait on the file lock.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	logging.Debug().
		Str("module", module).
		Str("path", path).
		Msg("Opened SQLite store")

	return &sqlStore{
		db:       db,
		dialect:  mustDialect(schema.SQLite),
		module:   module,
		location: path,
	}, nil
}

func mustDialect(name string) schema.Dialect {
	d, err := schema.DialectFor(name)
	if err != nil {
		panic(err)
	}
	return d
}
