package schema

import "fmt"

// Record is one typed row. Values returns the field values in the
// column order of the record's table; nullable fields use pointers.
type Record interface {
	Values() []any
}

// Rows converts a typed record slice for a TableData.
func Rows[T Record](records []T) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r
	}
	return out
}

// TableData is the generated content of one table.
type TableData struct {
	Table *Table
	Rows  []Record
}

// Dataset is the generated content of one domain, in insertion order.
type Dataset struct {
	Tables []*TableData
}

// Add appends the rows of t.
func (d *Dataset) Add(t *Table, rows []Record) {
	d.Tables = append(d.Tables, &TableData{Table: t, Rows: rows})
}

// Get returns the rows of the named table.
func (d *Dataset) Get(name string) (*TableData, bool) {
	for _, td := range d.Tables {
		if td.Table.Name == name {
			return td, true
		}
	}
	return nil, false
}

// Counts returns the row count of every table.
func (d *Dataset) Counts() map[string]int64 {
	out := make(map[string]int64, len(d.Tables))
	for _, td := range d.Tables {
		out[td.Table.Name] = int64(len(td.Rows))
	}
	return out
}

// Len returns the total number of rows.
func (d *Dataset) Len() int64 {
	var n int64
	for _, td := range d.Tables {
		n += int64(len(td.Rows))
	}
	return n
}

// Check verifies that every record carries one value per column.
func (d *Dataset) Check() error {
	for _, td := range d.Tables {
		want := len(td.Table.Columns)
		for i, r := range td.Rows {
			if got := len(r.Values()); got != want {
				return fmt.Errorf("%w: %s row %d has %d values, want %d",
					ErrInvalidTable, td.Table.Name, i, got, want)
			}
		}
	}
	return nil
}

// Ordered returns the tables sorted parents first.
func (d *Dataset) Ordered() ([]*TableData, error) {
	tables := make([]*Table, len(d.Tables))
	byName := make(map[string]*TableData, len(d.Tables))
	for i, td := range d.Tables {
		tables[i] = td.Table
		byName[td.Table.Name] = td
	}
	sorted, err := TopoSort(tables)
	if err != nil {
		return nil, err
	}
	out := make([]*TableData, len(sorted))
	for i, t := range sorted {
		out[i] = byName[t.Name]
	}
	return out, nil
}
