package schema

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testTables() (customers, orders, items, products *Table) {
	customers = &Table{
		Name: "customers", Module: "bigdata", Domain: "shop", Pattern: OLTP,
		Columns: []Column{
			{Name: "customer_id", Type: Text},
			{Name: "email", Type: Text, Unique: true},
			{Name: "signup_date", Type: Date},
		},
		PrimaryKey: []string{"customer_id"},
	}
	products = &Table{
		Name: "products", Module: "bigdata", Domain: "shop", Pattern: OLTP,
		Columns: []Column{
			{Name: "product_id", Type: Text},
			{Name: "price", Type: Real},
		},
		PrimaryKey: []string{"product_id"},
	}
	orders = &Table{
		Name: "orders", Module: "bigdata", Domain: "shop", Pattern: OLTP,
		Columns: []Column{
			{Name: "order_id", Type: Text},
			{Name: "customer_id", Type: Text},
			{Name: "order_ts", Type: Timestamp},
			{Name: "notes", Type: Text, Nullable: true, Long: true},
		},
		PrimaryKey:  []string{"order_id"},
		ForeignKeys: []ForeignKey{{Column: "customer_id", RefTable: "customers", RefColumn: "customer_id"}},
		Indexes:     []Index{{Name: "idx_orders_customer", Columns: []string{"customer_id"}}},
	}
	items = &Table{
		Name: "order_items", Module: "bigdata", Domain: "shop", Pattern: OLTP,
		Columns: []Column{
			{Name: "order_id", Type: Text},
			{Name: "line_no", Type: Integer},
			{Name: "product_id", Type: Text},
		},
		PrimaryKey: []string{"order_id", "line_no"},
		ForeignKeys: []ForeignKey{
			{Column: "order_id", RefTable: "orders", RefColumn: "order_id"},
			{Column: "product_id", RefTable: "products", RefColumn: "product_id"},
		},
	}
	return customers, orders, items, products
}

func TestTopoSortParentsFirst(t *testing.T) {
	customers, orders, items, products := testTables()

	sorted, err := TopoSort([]*Table{items, orders, products, customers})
	if err != nil {
		t.Fatalf("TopoSort failed: %v", err)
	}

	pos := map[string]int{}
	for i, tbl := range sorted {
		pos[tbl.Name] = i
	}
	for _, tbl := range sorted {
		for _, fk := range tbl.ForeignKeys {
			if pos[fk.RefTable] >= pos[tbl.Name] {
				t.Errorf("%s sorted before its parent %s", tbl.Name, fk.RefTable)
			}
		}
	}

	// Ties keep input order.
	if sorted[0].Name != "products" || sorted[1].Name != "customers" {
		t.Errorf("unexpected order: %s, %s", sorted[0].Name, sorted[1].Name)
	}

	rev := Reverse(sorted)
	if rev[0].Name != "order_items" {
		t.Errorf("Reverse()[0] = %s, want order_items", rev[0].Name)
	}
}

func TestTopoSortCycle(t *testing.T) {
	a := &Table{Name: "a", Columns: []Column{{Name: "id"}, {Name: "b_id"}}, PrimaryKey: []string{"id"},
		ForeignKeys: []ForeignKey{{Column: "b_id", RefTable: "b", RefColumn: "id"}}}
	b := &Table{Name: "b", Columns: []Column{{Name: "id"}, {Name: "a_id"}}, PrimaryKey: []string{"id"},
		ForeignKeys: []ForeignKey{{Column: "a_id", RefTable: "a", RefColumn: "id"}}}

	if _, err := TopoSort([]*Table{a, b}); !errors.Is(err, ErrCycle) {
		t.Errorf("err = %v, want ErrCycle", err)
	}

	// Self references and references outside the set are ignored.
	self := &Table{Name: "self", Columns: []Column{{Name: "id"}, {Name: "parent"}}, PrimaryKey: []string{"id"},
		ForeignKeys: []ForeignKey{{Column: "parent", RefTable: "self", RefColumn: "id"}}}
	if _, err := TopoSort([]*Table{self, a}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTableValidate(t *testing.T) {
	tests := []struct {
		name  string
		table Table
	}{
		{"no name", Table{Columns: []Column{{Name: "id"}}, PrimaryKey: []string{"id"}}},
		{"no columns", Table{Name: "t", PrimaryKey: []string{"id"}}},
		{"no primary key", Table{Name: "t", Columns: []Column{{Name: "id"}}}},
		{"duplicate column", Table{Name: "t", Columns: []Column{{Name: "id"}, {Name: "id"}}, PrimaryKey: []string{"id"}}},
		{"undeclared key", Table{Name: "t", Columns: []Column{{Name: "id"}}, PrimaryKey: []string{"key"}}},
		{"undeclared fk", Table{Name: "t", Columns: []Column{{Name: "id"}}, PrimaryKey: []string{"id"},
			ForeignKeys: []ForeignKey{{Column: "x", RefTable: "u", RefColumn: "id"}}}},
		{"undeclared index column", Table{Name: "t", Columns: []Column{{Name: "id"}}, PrimaryKey: []string{"id"},
			Indexes: []Index{{Name: "i", Columns: []string{"x"}}}}},
		{"undeclared partition", Table{Name: "t", Columns: []Column{{Name: "id"}}, PrimaryKey: []string{"id"},
			Partition: "company"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.table.Validate(); !errors.Is(err, ErrInvalidTable) {
				t.Errorf("err = %v, want ErrInvalidTable", err)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	customers, orders, items, products := testTables()

	r, err := NewRegistry(customers, products, orders, items)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	if err := r.Check(); err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	// Same declaration twice is fine, a different one is not.
	if err := r.Register(orders); err != nil {
		t.Errorf("re-register same table: %v", err)
	}
	clash := *orders
	if err := r.Register(&clash); !errors.Is(err, ErrInvalidTable) {
		t.Errorf("re-register different table: err = %v", err)
	}

	if _, err := r.Lookup("nope"); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("Lookup err = %v, want ErrUnknownTable", err)
	}
	if got := len(r.ForModule("bigdata")); got != 4 {
		t.Errorf("ForModule = %d tables, want 4", got)
	}
	if got := len(r.ForModule("olap")); got != 0 {
		t.Errorf("ForModule(olap) = %d tables, want 0", got)
	}

	dangling, err := NewRegistry(orders)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}
	if err := dangling.Check(); !errors.Is(err, ErrInvalidTable) {
		t.Errorf("Check with dangling FK: err = %v", err)
	}
}

func TestCreateTableDialects(t *testing.T) {
	_, orders, _, _ := testTables()

	tests := []struct {
		dialect string
		want    []string
		stmts   int
	}{
		{SQLite, []string{
			`CREATE TABLE IF NOT EXISTS "orders"`,
			`"order_ts" TEXT NOT NULL`,
			`"notes" TEXT,`,
			`PRIMARY KEY ("order_id")`,
			`CONSTRAINT "fk_orders_customer_id" FOREIGN KEY ("customer_id") REFERENCES "customers" ("customer_id")`,
		}, 2},
		{Postgres, []string{
			`"order_ts" TIMESTAMP NOT NULL`,
			`"notes" TEXT`,
		}, 2},
		{MySQL, []string{
			"CREATE TABLE IF NOT EXISTS `orders`",
			"`order_id` VARCHAR(255) NOT NULL",
			"`notes` TEXT",
			"`order_ts` DATETIME NOT NULL",
			"INDEX `idx_orders_customer` (`customer_id`)",
			"ENGINE=InnoDB",
		}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			d, err := DialectFor(tt.dialect)
			if err != nil {
				t.Fatalf("DialectFor failed: %v", err)
			}
			stmts := d.CreateTable(orders)
			if len(stmts) != tt.stmts {
				t.Fatalf("got %d statements, want %d: %q", len(stmts), tt.stmts, stmts)
			}
			for _, want := range tt.want {
				if !strings.Contains(stmts[0], want) {
					t.Errorf("DDL missing %q:\n%s", want, stmts[0])
				}
			}
			if tt.stmts == 2 && !strings.Contains(stmts[1], "CREATE INDEX IF NOT EXISTS") {
				t.Errorf("index statement = %q", stmts[1])
			}
		})
	}

	if _, err := DialectFor("oracle"); err == nil {
		t.Error("DialectFor(oracle) should fail")
	}
}

func TestInsertSQL(t *testing.T) {
	customers, _, _, _ := testTables()

	sqlite, _ := DialectFor(SQLite)
	got := InsertSQL(sqlite, customers, 2)
	want := `INSERT INTO "customers" ("customer_id", "email", "signup_date") VALUES (?, ?, ?), (?, ?, ?)`
	if got != want {
		t.Errorf("sqlite insert:\n got %s\nwant %s", got, want)
	}

	pg, _ := DialectFor(Postgres)
	got = InsertSQL(pg, customers, 2)
	if !strings.HasSuffix(got, "($1, $2, $3), ($4, $5, $6)") {
		t.Errorf("postgres insert = %s", got)
	}
}

func TestBatchRows(t *testing.T) {
	wide := &Table{Name: "wide", PrimaryKey: []string{"c0"}}
	for i := 0; i < 29; i++ {
		wide.Columns = append(wide.Columns, Column{Name: string(rune('a' + i%26)) + string(rune('0'+i/26))})
	}

	sqlite, _ := DialectFor(SQLite)
	pg, _ := DialectFor(Postgres)

	tests := []struct {
		name      string
		d         Dialect
		batchSize int
		want      int
	}{
		{"sqlite parameter limit", sqlite, 1000, 999 / 29},
		{"postgres batch size", pg, 1000, 1000},
		{"postgres parameter limit", pg, 5000, 65535 / 29},
		{"minimum one", sqlite, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BatchRows(tt.d, wide, tt.batchSize)
			if got != tt.want {
				t.Errorf("BatchRows = %d, want %d", got, tt.want)
			}
			if got*len(wide.Columns) > tt.d.MaxParams() {
				t.Errorf("%d rows exceed %d parameters", got, tt.d.MaxParams())
			}
		})
	}
}

func TestUpsert(t *testing.T) {
	tests := []struct {
		dialect string
		want    string
	}{
		{SQLite, `INSERT INTO "meta" ("key", "value") VALUES (?, ?) ON CONFLICT ("key") DO UPDATE SET "value" = excluded."value"`},
		{Postgres, `INSERT INTO "meta" ("key", "value") VALUES ($1, $2) ON CONFLICT ("key") DO UPDATE SET "value" = excluded."value"`},
		{MySQL, "INSERT INTO `meta` (`key`, `value`) VALUES (?, ?) ON DUPLICATE KEY UPDATE `value` = VALUES(`value`)"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			d, _ := DialectFor(tt.dialect)
			if got := d.Upsert("meta", []string{"key"}, []string{"value"}); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestSharedTableStatements(t *testing.T) {
	jobs := &Table{
		Name: "processing_jobs", Partition: "company",
		Columns:    []Column{{Name: "job_id"}, {Name: "company"}},
		PrimaryKey: []string{"job_id"},
	}
	pg, _ := DialectFor(Postgres)
	if got := DeleteSQL(pg, jobs); got != `DELETE FROM "processing_jobs" WHERE "company" = $1` {
		t.Errorf("DeleteSQL = %s", got)
	}
	if got := CountSQL(pg, jobs); got != `SELECT COUNT(*) FROM "processing_jobs" WHERE "company" = $1` {
		t.Errorf("CountSQL = %s", got)
	}
	_, orders, _, _ := testTables()
	if got := DeleteSQL(pg, orders); got != `DELETE FROM "orders"` {
		t.Errorf("DeleteSQL = %s", got)
	}
}

func TestBind(t *testing.T) {
	ts := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	sqlite, _ := DialectFor(SQLite)
	pg, _ := DialectFor(Postgres)

	if got := sqlite.Bind(Column{Type: Date}, ts); got != "2026-02-03" {
		t.Errorf("sqlite date = %v", got)
	}
	if got := sqlite.Bind(Column{Type: Timestamp}, &ts); got != "2026-02-03 04:05:06" {
		t.Errorf("sqlite timestamp = %v", got)
	}
	var nilTime *time.Time
	if got := sqlite.Bind(Column{Type: Timestamp}, nilTime); got != nil {
		t.Errorf("nil pointer bound as %v", got)
	}
	if got := pg.Bind(Column{Type: Timestamp}, &ts); got != ts {
		t.Errorf("postgres timestamp = %v", got)
	}
	f := 2.5
	if got := pg.Bind(Column{Type: Real}, &f); got != 2.5 {
		t.Errorf("postgres real = %v", got)
	}
}

type testRow struct{ id, email string }

func (r testRow) Values() []any { return []any{r.id, r.email, nil} }

func TestDataset(t *testing.T) {
	customers, orders, _, _ := testTables()

	var ds Dataset
	ds.Add(orders, nil)
	ds.Add(customers, Rows([]testRow{{"C1", "a@x"}, {"C2", "b@x"}}))

	if ds.Len() != 2 {
		t.Errorf("Len = %d, want 2", ds.Len())
	}
	if got := ds.Counts()["customers"]; got != 2 {
		t.Errorf("Counts[customers] = %d", got)
	}
	if _, ok := ds.Get("customers"); !ok {
		t.Error("Get(customers) missing")
	}
	if err := ds.Check(); err != nil {
		t.Errorf("Check failed: %v", err)
	}

	ordered, err := ds.Ordered()
	if err != nil {
		t.Fatalf("Ordered failed: %v", err)
	}
	if ordered[0].Table.Name != "customers" {
		t.Errorf("Ordered()[0] = %s, want customers", ordered[0].Table.Name)
	}

	ds.Add(orders, Rows([]testRow{{"O1", "x"}}))
	if err := ds.Check(); !errors.Is(err, ErrInvalidTable) {
		t.Errorf("Check with short row: err = %v", err)
	}
}
