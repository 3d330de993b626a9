package testutil

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// CheckDataset fails the test unless every row of ds carries one value
// per column, no two rows of a table share a primary key, and every
// non-NULL foreign key resolves to a row of its parent. Parents that are
// not part of ds are not checked.
func CheckDataset(t *testing.T, ds *schema.Dataset) {
	t.Helper()

	if err := ds.Check(); err != nil {
		t.Fatalf("Dataset check failed: %v", err)
	}

	keys := make(map[string]map[string]bool, len(ds.Tables))
	for _, td := range ds.Tables {
		pk := indexes(t, td.Table, td.Table.PrimaryKey)
		seen := make(map[string]bool, len(td.Rows))
		for i, r := range td.Rows {
			k := rowKey(r.Values(), pk)
			if seen[k] {
				t.Errorf("%s row %d: duplicate primary key %s", td.Table.Name, i, k)
			}
			seen[k] = true
		}
		keys[td.Table.Name] = seen
	}

	for _, td := range ds.Tables {
		for _, fk := range td.Table.ForeignKeys {
			parent, ok := keys[fk.RefTable]
			if !ok {
				continue
			}
			col := indexes(t, td.Table, []string{fk.Column})[0]
			for i, r := range td.Rows {
				v, ok := deref(r.Values()[col])
				if !ok {
					continue
				}
				if k := fmt.Sprint(v); !parent[k] {
					t.Errorf("%s row %d: %s=%s has no row in %s", td.Table.Name, i, fk.Column, k, fk.RefTable)
				}
			}
		}
	}
}

// Column returns the values of one column, pointers dereferenced and
// NULLs omitted.
func Column(t *testing.T, ds *schema.Dataset, table, column string) []any {
	t.Helper()

	td, ok := ds.Get(table)
	if !ok {
		t.Fatalf("Dataset has no table %s", table)
	}
	col := indexes(t, td.Table, []string{column})[0]
	out := make([]any, 0, len(td.Rows))
	for _, r := range td.Rows {
		if v, ok := deref(r.Values()[col]); ok {
			out = append(out, v)
		}
	}
	return out
}

// InRange fails the test when a numeric column holds a value outside
// [lo, hi].
func InRange(t *testing.T, ds *schema.Dataset, table, column string, lo, hi float64) {
	t.Helper()

	for i, v := range Column(t, ds, table, column) {
		f, ok := toFloat(v)
		if !ok {
			t.Fatalf("%s.%s holds non-numeric %T", table, column, v)
		}
		if f < lo || f > hi {
			t.Errorf("%s.%s value %d = %v, want within [%v, %v]", table, column, i, f, lo, hi)
		}
	}
}

// Rows returns the row count of a table in ds, 0 when absent.
func Rows(ds *schema.Dataset, table string) int {
	td, ok := ds.Get(table)
	if !ok {
		return 0
	}
	return len(td.Rows)
}

func indexes(t *testing.T, table *schema.Table, columns []string) []int {
	t.Helper()

	names := table.ColumnNames()
	out := make([]int, len(columns))
	for i, c := range columns {
		out[i] = -1
		for j, n := range names {
			if n == c {
				out[i] = j
			}
		}
		if out[i] < 0 {
			t.Fatalf("Table %s has no column %s", table.Name, c)
		}
	}
	return out
}

func rowKey(values []any, cols []int) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		v, _ := deref(values[c])
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, "|")
}

func deref(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		return rv.Elem().Interface(), true
	}
	return v, true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
