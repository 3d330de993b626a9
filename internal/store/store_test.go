package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/schema"
	"github.com/pgEdge/pgedge-datalab/internal/store"
	"github.com/pgEdge/pgedge-datalab/internal/testutil"
)

var (
	parentTable = &schema.Table{
		Name: "parents",
		Columns: []schema.Column{
			{Name: "parent_id", Type: schema.Text},
			{Name: "born", Type: schema.Date},
		},
		PrimaryKey: []string{"parent_id"},
	}
	childTable = &schema.Table{
		Name: "children",
		Columns: []schema.Column{
			{Name: "child_id", Type: schema.Text},
			{Name: "parent_id", Type: schema.Text},
			{Name: "score", Type: schema.Real, Nullable: true},
		},
		PrimaryKey:  []string{"child_id"},
		ForeignKeys: []schema.ForeignKey{{Column: "parent_id", RefTable: "parents", RefColumn: "parent_id"}},
	}
	sharedTable = &schema.Table{
		Name: "jobs",
		Columns: []schema.Column{
			{Name: "job_id", Type: schema.Text},
			{Name: "company", Type: schema.Text},
		},
		PrimaryKey: []string{"job_id"},
		Partition:  "company",
	}
)

func TestOpenUnknownDriver(t *testing.T) {
	_, err := store.Open(context.Background(), store.Options{Driver: "oracle"}, "bigdata")
	if !errors.Is(err, store.ErrUnknownDriver) {
		t.Errorf("err = %v, want ErrUnknownDriver", err)
	}
}

func TestOpenSQLiteCreatesModuleFile(t *testing.T) {
	opts := testutil.SQLiteOptions(t)
	s := testutil.OpenStore(t, opts, "olap")

	if s.Module() != "olap" {
		t.Errorf("Module() = %q", s.Module())
	}
	if s.Dialect().Name() != schema.SQLite {
		t.Errorf("Dialect() = %q", s.Dialect().Name())
	}
	want := filepath.Join(opts.Dir, "datalab_olap.db")
	if s.Location() != want {
		t.Errorf("Location() = %q, want %q", s.Location(), want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("store file missing: %v", err)
	}
}

func TestCreateTablesAndForeignKeys(t *testing.T) {
	ctx := context.Background()
	s := testutil.SQLiteStore(t, "bigdata")

	if err := store.CreateTables(ctx, s, []*schema.Table{childTable, parentTable}); err != nil {
		t.Fatalf("CreateTables failed: %v", err)
	}
	// Idempotent.
	if err := store.CreateTables(ctx, s, []*schema.Table{childTable, parentTable}); err != nil {
		t.Fatalf("second CreateTables failed: %v", err)
	}

	d := s.Dialect()
	born := time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC)
	if err := s.Exec(ctx, schema.InsertSQL(d, parentTable, 1), "P1", d.Bind(parentTable.Columns[1], born)); err != nil {
		t.Fatalf("insert parent failed: %v", err)
	}
	if err := s.Exec(ctx, schema.InsertSQL(d, childTable, 1), "C1", "P1", nil); err != nil {
		t.Fatalf("insert child failed: %v", err)
	}

	// Foreign keys are enforced.
	if err := s.Exec(ctx, schema.InsertSQL(d, childTable, 1), "C2", "P404", 1.5); err == nil {
		t.Error("insert with dangling parent succeeded")
	}

	ids, err := store.StringColumn(ctx, s, "children", "child_id")
	if err != nil {
		t.Fatalf("StringColumn failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "C1" {
		t.Errorf("children = %v", ids)
	}

	ok, err := store.Exists(ctx, s, d, "parents", "parent_id", "P1")
	if err != nil || !ok {
		t.Errorf("Exists(P1) = %v, %v", ok, err)
	}
	ok, err = store.Exists(ctx, s, d, "parents", "parent_id", "P2")
	if err != nil || ok {
		t.Errorf("Exists(P2) = %v, %v", ok, err)
	}
}

func TestTransactionRollback(t *testing.T) {
	ctx := context.Background()
	s := testutil.SQLiteStore(t, "bigdata")
	if err := store.CreateTables(ctx, s, []*schema.Table{parentTable}); err != nil {
		t.Fatalf("CreateTables failed: %v", err)
	}

	tx, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	d := s.Dialect()
	if err := tx.Exec(ctx, schema.InsertSQL(d, parentTable, 2), "P1", "2020-01-01", "P2", "2020-01-02"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	var inTx int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM "parents"`).Scan(&inTx); err != nil || inTx != 2 {
		t.Fatalf("count inside tx = %d, %v", inTx, err)
	}
	if err := tx.Rollback(ctx); err != nil {
		t.Fatalf("Rollback failed: %v", err)
	}
	// A second rollback is harmless.
	if err := tx.Rollback(ctx); err != nil {
		t.Errorf("second Rollback failed: %v", err)
	}

	if n := testutil.Count(t, s, "parents"); n != 0 {
		t.Errorf("rows after rollback = %d, want 0", n)
	}
}

func TestCountRowsSharedTable(t *testing.T) {
	ctx := context.Background()
	s := testutil.SQLiteStore(t, "processing")
	if err := store.CreateTables(ctx, s, []*schema.Table{sharedTable}); err != nil {
		t.Fatalf("CreateTables failed: %v", err)
	}
	d := s.Dialect()
	if err := s.Exec(ctx, schema.InsertSQL(d, sharedTable, 3), "J1", "amazon", "J2", "amazon", "J3", "uber"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	n, err := store.CountRows(ctx, s, d, sharedTable, "amazon")
	if err != nil || n != 2 {
		t.Errorf("CountRows(amazon) = %d, %v", n, err)
	}
	n, err = store.CountRows(ctx, s, d, parentTable, "")
	if err == nil {
		t.Errorf("CountRows on missing table = %d, want error", n)
	}
}

func TestMetadata(t *testing.T) {
	ctx := context.Background()
	s := testutil.SQLiteStore(t, "bigdata")
	d := s.Dialect()

	if err := store.EnsureMetadata(ctx, s); err != nil {
		t.Fatalf("EnsureMetadata failed: %v", err)
	}
	if err := store.EnsureMetadata(ctx, s); err != nil {
		t.Fatalf("second EnsureMetadata failed: %v", err)
	}

	if _, ok, err := store.GetMetadataValue(ctx, s, d, "missing"); err != nil || ok {
		t.Errorf("missing key: ok=%v err=%v", ok, err)
	}

	if err := store.SaveMetadata(ctx, s, d, "schema_version", "1"); err != nil {
		t.Fatalf("SaveMetadata failed: %v", err)
	}
	if err := store.SaveMetadata(ctx, s, d, "schema_version", "2"); err != nil {
		t.Fatalf("SaveMetadata upsert failed: %v", err)
	}
	v, ok, err := store.GetMetadataValue(ctx, s, d, "schema_version")
	if err != nil || !ok || v != "2" {
		t.Errorf("GetMetadataValue = %q, %v, %v", v, ok, err)
	}

	all, err := store.GetAllMetadata(ctx, s)
	if err != nil || len(all) != 1 {
		t.Errorf("GetAllMetadata = %v, %v", all, err)
	}

	if err := store.DeleteMetadata(ctx, s, d, "schema_version"); err != nil {
		t.Fatalf("DeleteMetadata failed: %v", err)
	}
	if _, ok, _ := store.GetMetadataValue(ctx, s, d, "schema_version"); ok {
		t.Error("key still present after delete")
	}
}

func TestMarkers(t *testing.T) {
	ctx := context.Background()
	s := testutil.SQLiteStore(t, "bigdata")
	d := s.Dialect()
	if err := store.EnsureMetadata(ctx, s); err != nil {
		t.Fatalf("EnsureMetadata failed: %v", err)
	}

	m, err := store.LoadMarker(ctx, s, d, "ecommerce")
	if err != nil || m != nil {
		t.Fatalf("LoadMarker before save = %v, %v", m, err)
	}

	done := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	in := store.Marker{
		Module: "bigdata", Domain: "ecommerce", Seed: 42, Scale: "small",
		Version: "test", CompletedAt: done,
		Rows: map[string]int64{"amazon_customers": 1000, "amazon_orders": 500},
	}
	tx, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := store.SaveMarker(ctx, tx, d, in); err != nil {
		t.Fatalf("SaveMarker failed: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	m, err = store.LoadMarker(ctx, s, d, "ecommerce")
	if err != nil || m == nil {
		t.Fatalf("LoadMarker = %v, %v", m, err)
	}
	if m.Seed != 42 || m.Total() != 1500 || !m.CompletedAt.Equal(done) {
		t.Errorf("marker = %+v", m)
	}

	all, err := store.Markers(ctx, s)
	if err != nil {
		t.Fatalf("Markers failed: %v", err)
	}
	if _, ok := all["ecommerce"]; !ok || len(all) != 1 {
		t.Errorf("Markers = %v", all)
	}
}

func TestModuleNaming(t *testing.T) {
	if got := store.PostgresSchema("features"); got != "datalab_features" {
		t.Errorf("PostgresSchema = %q", got)
	}
	if got := store.MySQLDatabase("", "olap"); got != "datalab_olap" {
		t.Errorf("MySQLDatabase = %q", got)
	}
	if got := store.MySQLDatabase("lab", "olap"); got != "lab_olap" {
		t.Errorf("MySQLDatabase = %q", got)
	}
	if got := store.SQLitePath("data", "bigdata"); got != filepath.Join("data", "datalab_bigdata.db") {
		t.Errorf("SQLitePath = %q", got)
	}
}
