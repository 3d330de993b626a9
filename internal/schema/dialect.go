package schema

import (
	"fmt"
	"strings"
	"time"
)

// Dialect renders tables and statements for one SQL engine.
type Dialect interface {
	// Name returns the driver name (sqlite, postgres, mysql).
	Name() string

	// Quote quotes an identifier.
	Quote(ident string) string

	// Placeholder returns the n-th (1-based) bind parameter marker.
	Placeholder(n int) string

	// ColumnType returns the engine type of a column.
	ColumnType(c Column) string

	// MaxParams is the largest number of bind parameters one statement
	// may carry.
	MaxParams() int

	// CreateTable returns the statements creating t and its indexes.
	CreateTable(t *Table) []string

	// Upsert returns an INSERT of one row that replaces the non-key
	// columns when the key already exists.
	Upsert(table string, keys, values []string) string

	// Bind converts a record value into the form the driver stores for c.
	Bind(c Column, v any) any
}

// Dialect names.
const (
	SQLite   = "sqlite"
	Postgres = "postgres"
	MySQL    = "mysql"
)

// DialectFor returns the dialect of a driver name.
func DialectFor(name string) (Dialect, error) {
	switch name {
	case SQLite:
		return sqliteDialect{}, nil
	case Postgres:
		return postgresDialect{}, nil
	case MySQL:
		return mysqlDialect{}, nil
	}
	return nil, fmt.Errorf("unknown dialect: %s", name)
}

// Dialects returns every supported dialect.
func Dialects() []Dialect {
	return []Dialect{sqliteDialect{}, postgresDialect{}, mysqlDialect{}}
}

// InsertSQL renders a multi-row INSERT of rows rows into t.
func InsertSQL(d Dialect, t *Table, rows int) string {
	cols := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = d.Quote(c.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", d.Quote(t.Name), strings.Join(cols, ", "))
	n := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for c := range t.Columns {
			if c > 0 {
				b.WriteString(", ")
			}
			b.WriteString(d.Placeholder(n))
			n++
		}
		b.WriteByte(')')
	}
	return b.String()
}

// BatchRows returns how many rows of t fit in one INSERT given the
// configured batch size and the dialect's parameter limit.
func BatchRows(d Dialect, t *Table, batchSize int) int {
	perStmt := d.MaxParams() / len(t.Columns)
	return max(1, min(batchSize, perStmt))
}

// DeleteSQL renders a DELETE of all rows of t, or of one partition when
// t is shared.
func DeleteSQL(d Dialect, t *Table) string {
	if t.Shared() {
		return fmt.Sprintf("DELETE FROM %s WHERE %s = %s", d.Quote(t.Name), d.Quote(t.Partition), d.Placeholder(1))
	}
	return fmt.Sprintf("DELETE FROM %s", d.Quote(t.Name))
}

// CountSQL renders a row count of t, restricted to one partition when t
// is shared.
func CountSQL(d Dialect, t *Table) string {
	if t.Shared() {
		return fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = %s", d.Quote(t.Name), d.Quote(t.Partition), d.Placeholder(1))
	}
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.Quote(t.Name))
}

// ExistsSQL renders a probe returning 1 when a row with column = value
// exists.
func ExistsSQL(d Dialect, table, column string) string {
	return fmt.Sprintf("SELECT 1 FROM %s WHERE %s = %s LIMIT 1", d.Quote(table), d.Quote(column), d.Placeholder(1))
}

// DDL renders every statement creating tables, in foreign-key-safe order.
func DDL(d Dialect, tables []*Table) ([]string, error) {
	sorted, err := TopoSort(tables)
	if err != nil {
		return nil, err
	}
	var stmts []string
	for _, t := range sorted {
		stmts = append(stmts, d.CreateTable(t)...)
	}
	return stmts, nil
}

// columnDefs renders the column list shared by every dialect: columns,
// primary key and foreign key constraints.
func columnDefs(d Dialect, t *Table) []string {
	var defs []string
	for _, c := range t.Columns {
		col := fmt.Sprintf("  %s %s", d.Quote(c.Name), d.ColumnType(c))
		if !c.Nullable {
			col += " NOT NULL"
		}
		if c.Unique {
			col += " UNIQUE"
		}
		defs = append(defs, col)
	}

	pk := make([]string, len(t.PrimaryKey))
	for i, k := range t.PrimaryKey {
		pk[i] = d.Quote(k)
	}
	defs = append(defs, fmt.Sprintf("  PRIMARY KEY (%s)", strings.Join(pk, ", ")))

	for _, fk := range t.ForeignKeys {
		defs = append(defs, fmt.Sprintf("  CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
			d.Quote(fmt.Sprintf("fk_%s_%s", t.Name, fk.Column)),
			d.Quote(fk.Column),
			d.Quote(fk.RefTable),
			d.Quote(fk.RefColumn),
		))
	}
	return defs
}

func createTable(d Dialect, t *Table, defs []string, suffix string) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)%s",
		d.Quote(t.Name), strings.Join(defs, ",\n"), suffix)
}

// createIndexes renders CREATE INDEX IF NOT EXISTS statements.
func createIndexes(d Dialect, t *Table) []string {
	var stmts []string
	for _, idx := range t.Indexes {
		unique := ""
		if idx.Unique {
			unique = "UNIQUE "
		}
		stmts = append(stmts, fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)",
			unique, d.Quote(idx.Name), d.Quote(t.Name), quoteAll(d, idx.Columns)))
	}
	return stmts
}

func quoteAll(d Dialect, idents []string) string {
	q := make([]string, len(idents))
	for i, s := range idents {
		q[i] = d.Quote(s)
	}
	return strings.Join(q, ", ")
}

// Deref unwraps the pointer types records use for nullable fields.
func Deref(v any) any {
	switch p := v.(type) {
	case *time.Time:
		if p == nil {
			return nil
		}
		return *p
	case *float64:
		if p == nil {
			return nil
		}
		return *p
	case *int:
		if p == nil {
			return nil
		}
		return *p
	case *int64:
		if p == nil {
			return nil
		}
		return *p
	case *string:
		if p == nil {
			return nil
		}
		return *p
	case *bool:
		if p == nil {
			return nil
		}
		return *p
	}
	return v
}

// sqlite stores everything in its dynamic types; dates and timestamps
// are ISO-8601 text so they sort and compare lexically.
type sqliteDialect struct{}

func (sqliteDialect) Name() string { return SQLite }

func (sqliteDialect) Quote(ident string) string { return `"` + ident + `"` }

func (sqliteDialect) Placeholder(int) string { return "?" }

func (sqliteDialect) MaxParams() int { return 999 }

func (sqliteDialect) ColumnType(c Column) string {
	switch c.Type {
	case Integer, Bool:
		return "INTEGER"
	case Real:
		return "REAL"
	default:
		return "TEXT"
	}
}

func (d sqliteDialect) CreateTable(t *Table) []string {
	return append([]string{createTable(d, t, columnDefs(d, t), "")}, createIndexes(d, t)...)
}

func (d sqliteDialect) Upsert(table string, keys, values []string) string {
	return upsertOnConflict(d, table, keys, values)
}

func (sqliteDialect) Bind(c Column, v any) any {
	v = Deref(v)
	ts, ok := v.(time.Time)
	if !ok {
		return v
	}
	if c.Type == Date {
		return ts.Format("2006-01-02")
	}
	return ts.Format("2006-01-02 15:04:05")
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return Postgres }

func (postgresDialect) Quote(ident string) string { return `"` + ident + `"` }

func (postgresDialect) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (postgresDialect) MaxParams() int { return 65535 }

func (postgresDialect) ColumnType(c Column) string {
	switch c.Type {
	case Integer:
		return "BIGINT"
	case Real:
		return "DOUBLE PRECISION"
	case Bool:
		return "BOOLEAN"
	case Date:
		return "DATE"
	case Timestamp:
		return "TIMESTAMP"
	case JSON:
		return "JSONB"
	default:
		return "TEXT"
	}
}

func (d postgresDialect) CreateTable(t *Table) []string {
	return append([]string{createTable(d, t, columnDefs(d, t), "")}, createIndexes(d, t)...)
}

func (d postgresDialect) Upsert(table string, keys, values []string) string {
	return upsertOnConflict(d, table, keys, values)
}

func (postgresDialect) Bind(_ Column, v any) any {
	return Deref(v)
}

// mysql has no CREATE INDEX IF NOT EXISTS, so indexes are declared
// inside CREATE TABLE.
type mysqlDialect struct{}

func (mysqlDialect) Name() string { return MySQL }

func (mysqlDialect) Quote(ident string) string { return "`" + ident + "`" }

func (mysqlDialect) Placeholder(int) string { return "?" }

func (mysqlDialect) MaxParams() int { return 65535 }

func (mysqlDialect) ColumnType(c Column) string {
	switch c.Type {
	case Integer:
		return "BIGINT"
	case Real:
		return "DOUBLE"
	case Bool:
		return "BOOLEAN"
	case Date:
		return "DATE"
	case Timestamp:
		return "DATETIME"
	case JSON:
		return "JSON"
	default:
		if c.Long {
			return "TEXT"
		}
		return "VARCHAR(255)"
	}
}

func (d mysqlDialect) CreateTable(t *Table) []string {
	defs := columnDefs(d, t)
	for _, idx := range t.Indexes {
		kind := "INDEX"
		if idx.Unique {
			kind = "UNIQUE KEY"
		}
		defs = append(defs, fmt.Sprintf("  %s %s (%s)", kind, d.Quote(idx.Name), quoteAll(d, idx.Columns)))
	}
	return []string{createTable(d, t, defs, " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4")}
}

func (d mysqlDialect) Upsert(table string, keys, values []string) string {
	all := append(append([]string{}, keys...), values...)
	sets := make([]string, len(values))
	for i, v := range values {
		sets[i] = fmt.Sprintf("%s = VALUES(%s)", d.Quote(v), d.Quote(v))
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON DUPLICATE KEY UPDATE %s",
		d.Quote(table), quoteAll(d, all), placeholders(d, len(all)), strings.Join(sets, ", "))
}

func (mysqlDialect) Bind(_ Column, v any) any {
	return Deref(v)
}

func upsertOnConflict(d Dialect, table string, keys, values []string) string {
	all := append(append([]string{}, keys...), values...)
	sets := make([]string, len(values))
	for i, v := range values {
		sets[i] = fmt.Sprintf("%s = excluded.%s", d.Quote(v), d.Quote(v))
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		d.Quote(table), quoteAll(d, all), placeholders(d, len(all)), quoteAll(d, keys), strings.Join(sets, ", "))
}

func placeholders(d Dialect, n int) string {
	p := make([]string, n)
	for i := range p {
		p[i] = d.Placeholder(i + 1)
	}
	return strings.Join(p, ", ")
}
