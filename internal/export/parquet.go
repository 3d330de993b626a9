// Package export writes committed datasets to Parquet files, one file
// per table, for loading into engines that read columnar files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/logging"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// recordRows bounds the rows buffered per record batch.
const recordRows = 64 * 1024

// Parquet writes datasets under Dir/<module>/.
type Parquet struct {
	Dir string
	mem memory.Allocator
}

// NewParquet returns an exporter rooted at dir.
func NewParquet(dir string) *Parquet {
	return &Parquet{Dir: dir, mem: memory.NewGoAllocator()}
}

// Path returns the file a table of a domain is written to. Tables that
// several domains share get one file per domain.
func (p *Parquet) Path(module, domain string, t *schema.Table) string {
	name := t.Name
	if t.Shared() {
		name += "_" + domain
	}
	return filepath.Join(p.Dir, module, name+".parquet")
}

// Export writes every table of ds, replacing earlier files.
func (p *Parquet) Export(module, domain string, ds *schema.Dataset) error {
	if err := os.MkdirAll(filepath.Join(p.Dir, module), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	for _, td := range ds.Tables {
		path := p.Path(module, domain, td.Table)
		if err := p.WriteTable(path, td); err != nil {
			return err
		}
		ev := logging.Debug().
			Str("table", td.Table.Name).
			Str("path", path).
			Int("rows", len(td.Rows))
		if fi, err := os.Stat(path); err == nil {
			ev = ev.Str("size", datagen.FormatSize(fi.Size()))
		}
		ev.Msg("Exported table")
	}
	logging.Info().
		Str("module", module).
		Str("domain", domain).
		Int("tables", len(ds.Tables)).
		Msg("Exported Parquet files")
	return nil
}

// WriteTable writes the rows of one table to path.
func (p *Parquet) WriteTable(path string, td *schema.TableData) error {
	sc := ArrowSchema(td.Table)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	writer, err := pqarrow.NewFileWriter(sc, file, props, pqarrow.NewArrowWriterProperties(pqarrow.WithAllocator(p.mem)))
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}

	b := array.NewRecordBuilder(p.mem, sc)
	defer b.Release()

	for start := 0; start < len(td.Rows); start += recordRows {
		end := min(start+recordRows, len(td.Rows))
		for i, rec := range td.Rows[start:end] {
			if err := appendRow(b, td.Table, rec); err != nil {
				_ = writer.Close()
				return fmt.Errorf("%s row %d: %w", td.Table.Name, start+i, err)
			}
		}
		batch := b.NewRecord()
		err := writer.Write(batch)
		batch.Release()
		if err != nil {
			_ = writer.Close()
			return fmt.Errorf("failed to write %s: %w", td.Table.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// ArrowSchema maps a table to its Arrow schema.
func ArrowSchema(t *schema.Table) *arrow.Schema {
	fields := make([]arrow.Field, len(t.Columns))
	for i, c := range t.Columns {
		fields[i] = arrow.Field{Name: c.Name, Type: arrowType(c.Type), Nullable: c.Nullable}
	}
	md := arrow.NewMetadata(
		[]string{"table", "module", "domain"},
		[]string{t.Name, t.Module, t.Domain},
	)
	return arrow.NewSchema(fields, &md)
}

func arrowType(ct schema.ColumnType) arrow.DataType {
	switch ct {
	case schema.Integer:
		return arrow.PrimitiveTypes.Int64
	case schema.Real:
		return arrow.PrimitiveTypes.Float64
	case schema.Bool:
		return arrow.FixedWidthTypes.Boolean
	case schema.Date:
		return arrow.FixedWidthTypes.Date32
	case schema.Timestamp:
		return &arrow.TimestampType{Unit: arrow.Millisecond, TimeZone: "UTC"}
	default:
		return arrow.BinaryTypes.String
	}
}

func appendRow(b *array.RecordBuilder, t *schema.Table, rec schema.Record) error {
	values := rec.Values()
	if len(values) != len(t.Columns) {
		return fmt.Errorf("%d values for %d columns", len(values), len(t.Columns))
	}
	for i, v := range values {
		if err := appendValue(b.Field(i), schema.Deref(v)); err != nil {
			return fmt.Errorf("column %s: %w", t.Columns[i].Name, err)
		}
	}
	return nil
}

func appendValue(fb array.Builder, v any) error {
	if v == nil {
		fb.AppendNull()
		return nil
	}
	switch b := fb.(type) {
	case *array.StringBuilder:
		switch x := v.(type) {
		case string:
			b.Append(x)
		case []byte:
			b.Append(string(x))
		default:
			b.Append(fmt.Sprint(x))
		}
	case *array.Int64Builder:
		switch x := v.(type) {
		case int:
			b.Append(int64(x))
		case int32:
			b.Append(int64(x))
		case int64:
			b.Append(x)
		default:
			return fmt.Errorf("unexpected %T for integer", v)
		}
	case *array.Float64Builder:
		switch x := v.(type) {
		case float64:
			b.Append(x)
		case float32:
			b.Append(float64(x))
		case int:
			b.Append(float64(x))
		default:
			return fmt.Errorf("unexpected %T for real", v)
		}
	case *array.BooleanBuilder:
		x, ok := v.(bool)
		if !ok {
			return fmt.Errorf("unexpected %T for bool", v)
		}
		b.Append(x)
	case *array.Date32Builder:
		x, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("unexpected %T for date", v)
		}
		b.Append(arrow.Date32FromTime(x))
	case *array.TimestampBuilder:
		x, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("unexpected %T for timestamp", v)
		}
		b.Append(arrow.Timestamp(x.UnixMilli()))
	default:
		return fmt.Errorf("unsupported builder %T", fb)
	}
	return nil
}
