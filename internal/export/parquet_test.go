package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

type reading struct {
	ID       string
	Day      time.Time
	At       time.Time
	Value    float64
	Count    int
	Valid    bool
	Note     *string
	Verified *time.Time
}

func (r reading) Values() []any {
	return []any{r.ID, r.Day, r.At, r.Value, r.Count, r.Valid, r.Note, r.Verified}
}

var readings = &schema.Table{
	Name:   "readings",
	Module: "bigdata",
	Domain: "test",
	Columns: []schema.Column{
		{Name: "id", Type: schema.Text},
		{Name: "day", Type: schema.Date},
		{Name: "at", Type: schema.Timestamp},
		{Name: "value", Type: schema.Real},
		{Name: "count", Type: schema.Integer},
		{Name: "valid", Type: schema.Bool},
		{Name: "note", Type: schema.Text, Nullable: true},
		{Name: "verified", Type: schema.Timestamp, Nullable: true},
	},
	PrimaryKey: []string{"id"},
}

var shared = &schema.Table{
	Name:      "jobs",
	Partition: "company",
	Columns: []schema.Column{
		{Name: "id", Type: schema.Text},
		{Name: "company", Type: schema.Text},
	},
}

type job struct{ ID, Company string }

func (j job) Values() []any { return []any{j.ID, j.Company} }

func readBack(t *testing.T, path string) arrow.Table {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()

	mem := memory.NewGoAllocator()
	tbl, err := pqarrow.ReadTable(context.Background(), f, parquet.NewReaderProperties(mem), pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	t.Cleanup(tbl.Release)
	return tbl
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	note := "late"

	rows := []reading{
		{ID: "r1", Day: at.Truncate(24 * time.Hour), At: at, Value: 1.5, Count: 3, Valid: true, Note: &note, Verified: &at},
		{ID: "r2", Day: at.Truncate(24 * time.Hour), At: at.Add(time.Minute), Value: 2.5, Count: 4},
	}
	ds := &schema.Dataset{}
	ds.Add(readings, schema.Rows(rows))
	ds.Add(shared, schema.Rows([]job{{"j1", "Amazon"}}))

	p := NewParquet(dir)
	if err := p.Export("bigdata", "ecommerce", ds); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	path := filepath.Join(dir, "bigdata", "readings.parquet")
	if got := p.Path("bigdata", "ecommerce", readings); got != path {
		t.Errorf("Path() = %s, want %s", got, path)
	}
	tbl := readBack(t, path)
	if tbl.NumRows() != 2 {
		t.Errorf("NumRows() = %d, want 2", tbl.NumRows())
	}
	if tbl.NumCols() != int64(len(readings.Columns)) {
		t.Errorf("NumCols() = %d, want %d", tbl.NumCols(), len(readings.Columns))
	}

	notes := tbl.Column(6).Data().Chunk(0).(*array.String)
	if notes.Value(0) != "late" || !notes.IsNull(1) {
		t.Errorf("note column = %v", notes)
	}
	counts := tbl.Column(4).Data().Chunk(0).(*array.Int64)
	if counts.Value(1) != 4 {
		t.Errorf("count[1] = %d, want 4", counts.Value(1))
	}

	sharedPath := filepath.Join(dir, "bigdata", "jobs_ecommerce.parquet")
	if got := p.Path("bigdata", "ecommerce", shared); got != sharedPath {
		t.Errorf("Path() = %s, want %s", got, sharedPath)
	}
	if tbl := readBack(t, sharedPath); tbl.NumRows() != 1 {
		t.Errorf("shared NumRows() = %d, want 1", tbl.NumRows())
	}
}

func TestArrowSchema(t *testing.T) {
	sc := ArrowSchema(readings)
	tests := []struct {
		column string
		want   arrow.Type
	}{
		{"id", arrow.STRING},
		{"day", arrow.DATE32},
		{"at", arrow.TIMESTAMP},
		{"value", arrow.FLOAT64},
		{"count", arrow.INT64},
		{"valid", arrow.BOOL},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			idx := sc.FieldIndices(tt.column)
			if len(idx) != 1 {
				t.Fatalf("field %s not found", tt.column)
			}
			if got := sc.Field(idx[0]).Type.ID(); got != tt.want {
				t.Errorf("type = %s, want %s", got, tt.want)
			}
		})
	}
	if !sc.Field(6).Nullable || sc.Field(0).Nullable {
		t.Error("nullability does not follow the columns")
	}
}

func TestWriteTableRejectsMismatchedValues(t *testing.T) {
	bad := &schema.Table{
		Name:    "bad",
		Columns: []schema.Column{{Name: "n", Type: schema.Integer}},
	}
	td := &schema.TableData{Table: bad, Rows: schema.Rows([]job{{"x", "y"}})}
	if err := NewParquet(t.TempDir()).WriteTable(filepath.Join(t.TempDir(), "bad.parquet"), td); err == nil {
		t.Error("WriteTable() succeeded with two values for one column")
	}
}
