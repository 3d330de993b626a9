package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
	"github.com/pgEdge/pgedge-datalab/internal/store"
)

type point struct {
	ID    string
	Value int
}

func (p point) Values() []any { return []any{p.ID, p.Value} }

var points = &schema.Table{
	Name: "points",
	Columns: []schema.Column{
		{Name: "id", Type: schema.Text},
		{Name: "value", Type: schema.Integer},
	},
	PrimaryKey: []string{"id"},
}

type execCall struct {
	sql  string
	args int
}

// recordingTx records statements instead of running them.
type recordingTx struct {
	execs []execCall
}

func (tx *recordingTx) Exec(_ context.Context, sql string, args ...any) error {
	tx.execs = append(tx.execs, execCall{sql: sql, args: len(args)})
	return nil
}

func (tx *recordingTx) QueryRow(context.Context, string, ...any) store.Row { return nil }
func (tx *recordingTx) Commit(context.Context) error                      { return nil }
func (tx *recordingTx) Rollback(context.Context) error                    { return nil }

// copyingTx records bulk copies.
type copyingTx struct {
	recordingTx
	copies []int
}

func (tx *copyingTx) CopyRows(_ context.Context, _ string, _ []string, rows [][]any) (int64, error) {
	tx.copies = append(tx.copies, len(rows))
	return int64(len(rows)), nil
}

func pointData(n int) *schema.TableData {
	rows := make([]point, n)
	for i := range rows {
		rows[i] = point{ID: datagen.ID("pt", i, 4), Value: i}
	}
	return &schema.TableData{Table: points, Rows: schema.Rows(rows)}
}

func TestInsertTableBatches(t *testing.T) {
	d, err := schema.DialectFor(schema.Postgres)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		rows      int
		batchSize int
		want      []int
	}{
		{"even", 20, 10, []int{10, 10}},
		{"remainder", 25, 10, []int{10, 10, 5}},
		{"single batch", 7, 10, []int{7}},
		{"one per statement", 3, 1, []int{1, 1, 1}},
		{"empty", 0, 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &recordingTx{}
			cfg := datagen.BatchInsertConfig{BatchSize: tt.batchSize, ProgressInterval: 100}
			if err := insertTable(context.Background(), tx, d, pointData(tt.rows), cfg, zerolog.Nop()); err != nil {
				t.Fatalf("insertTable() error = %v", err)
			}
			if len(tx.execs) != len(tt.want) {
				t.Fatalf("got %d statements, want %d", len(tx.execs), len(tt.want))
			}
			for i, call := range tx.execs {
				if call.args != tt.want[i]*len(points.Columns) {
					t.Errorf("statement %d binds %d args, want %d", i, call.args, tt.want[i]*len(points.Columns))
				}
				if got := strings.Count(call.sql, "("); got != tt.want[i]+1 {
					t.Errorf("statement %d has %d row groups, want %d", i, got-1, tt.want[i])
				}
			}
		})
	}
}

func TestInsertTableRespectsParamLimit(t *testing.T) {
	d, err := schema.DialectFor(schema.SQLite)
	if err != nil {
		t.Fatal(err)
	}
	tx := &recordingTx{}
	cfg := datagen.BatchInsertConfig{BatchSize: 1000, ProgressInterval: 1000}
	if err := insertTable(context.Background(), tx, d, pointData(1200), cfg, zerolog.Nop()); err != nil {
		t.Fatalf("insertTable() error = %v", err)
	}
	for i, call := range tx.execs {
		if call.args > d.MaxParams() {
			t.Errorf("statement %d binds %d args, limit %d", i, call.args, d.MaxParams())
		}
	}
	if len(tx.execs) != 3 {
		t.Errorf("got %d statements, want 3", len(tx.execs))
	}
}

func TestInsertTableCopies(t *testing.T) {
	d, err := schema.DialectFor(schema.Postgres)
	if err != nil {
		t.Fatal(err)
	}
	tx := &copyingTx{}
	cfg := datagen.BatchInsertConfig{BatchSize: 10, ProgressInterval: 100}
	if err := insertTable(context.Background(), tx, d, pointData(25), cfg, zerolog.Nop()); err != nil {
		t.Fatalf("insertTable() error = %v", err)
	}
	if len(tx.execs) != 0 {
		t.Errorf("got %d INSERT statements, want none", len(tx.execs))
	}
	want := []int{10, 10, 5}
	if len(tx.copies) != len(want) {
		t.Fatalf("copies = %v, want %v", tx.copies, want)
	}
	for i := range want {
		if tx.copies[i] != want[i] {
			t.Errorf("copies = %v, want %v", tx.copies, want)
			break
		}
	}
}
