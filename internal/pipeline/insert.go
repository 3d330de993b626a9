package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
	"github.com/pgEdge/pgedge-datalab/internal/store"
)

// insertTable writes the rows of one table in batches. A batch never
// exceeds cfg.BatchSize rows nor the dialect's bind parameter limit,
// and always holds whole records. Transactions that support bulk copy
// load through it instead of INSERT.
func insertTable(ctx context.Context, tx store.Tx, d schema.Dialect, td *schema.TableData,
	cfg datagen.BatchInsertConfig, log zerolog.Logger) error {
	if len(td.Rows) == 0 {
		return nil
	}
	t := td.Table
	progress := datagen.NewProgressReporter(log, t.Name, int64(len(td.Rows)), cfg.ProgressInterval)

	if copier, ok := tx.(store.Copier); ok {
		size := max(1, cfg.BatchSize)
		for start := 0; start < len(td.Rows); start += size {
			end := min(start+size, len(td.Rows))
			rows := make([][]any, 0, end-start)
			for _, rec := range td.Rows[start:end] {
				rows = append(rows, bindRow(d, t, rec, nil))
			}
			if _, err := copier.CopyRows(ctx, t.Name, t.ColumnNames(), rows); err != nil {
				return fmt.Errorf("failed to copy into %s (rows %d-%d): %w", t.Name, start, end-1, err)
			}
			progress.Update(int64(end - start))
		}
		progress.Done()
		return nil
	}

	batch := schema.BatchRows(d, t, cfg.BatchSize)
	full := schema.InsertSQL(d, t, batch)
	for start := 0; start < len(td.Rows); start += batch {
		end := min(start+batch, len(td.Rows))
		query := full
		if end-start < batch {
			query = schema.InsertSQL(d, t, end-start)
		}
		args := make([]any, 0, (end-start)*len(t.Columns))
		for _, rec := range td.Rows[start:end] {
			args = bindRow(d, t, rec, args)
		}
		if err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert into %s (rows %d-%d): %w", t.Name, start, end-1, err)
		}
		progress.Update(int64(end - start))
	}
	progress.Done()
	return nil
}

// bindRow appends the driver values of one record to args.
func bindRow(d schema.Dialect, t *schema.Table, rec schema.Record, args []any) []any {
	for i, v := range rec.Values() {
		args = append(args, d.Bind(t.Columns[i], v))
	}
	return args
}
