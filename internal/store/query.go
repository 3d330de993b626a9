package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// CountRows returns the number of rows of t; for shared tables only the
// rows of partition are counted.
func CountRows(ctx context.Context, q Querier, d schema.Dialect, t *schema.Table, partition string) (int64, error) {
	var args []any
	if t.Shared() {
		args = append(args, partition)
	}
	var n int64
	if err := q.QueryRow(ctx, schema.CountSQL(d, t), args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", t.Name, err)
	}
	return n, nil
}

// Exists reports whether table holds a row with column = value.
func Exists(ctx context.Context, q Querier, d schema.Dialect, table, column string, value any) (bool, error) {
	var one int
	err := q.QueryRow(ctx, schema.ExistsSQL(d, table, column), value).Scan(&one)
	if errors.Is(err, ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to probe %s: %w", table, err)
	}
	return true, nil
}

// CreateTables creates tables and their indexes in foreign-key-safe order.
func CreateTables(ctx context.Context, s Store, tables []*schema.Table) error {
	stmts, err := schema.DDL(s.Dialect(), tables)
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if err := s.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// StringColumn returns every value of one text column.
func StringColumn(ctx context.Context, s Store, table, column string) ([]string, error) {
	d := s.Dialect()
	rows, err := s.Query(ctx, fmt.Sprintf("SELECT %s FROM %s", d.Quote(column), d.Quote(table)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
