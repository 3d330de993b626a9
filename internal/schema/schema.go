//-------------------------------------------------------------------------
//
// pgEdge Data Lab
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package schema declares the relational shape of every generated table
// and renders it for each supported SQL dialect.
package schema

import (
	"errors"
	"fmt"
)

// ErrUnknownTable is returned when a table lookup fails.
var ErrUnknownTable = errors.New("unknown table")

// ErrInvalidTable is returned for a table declaration that cannot be
// rendered (missing columns, dangling key references).
var ErrInvalidTable = errors.New("invalid table")

// ColumnType is the portable type of a column.
type ColumnType int

// Column types.
const (
	Text ColumnType = iota
	Integer
	Real
	Bool
	Date
	Timestamp
	JSON
)

func (t ColumnType) String() string {
	switch t {
	case Text:
		return "text"
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Bool:
		return "bool"
	case Date:
		return "date"
	case Timestamp:
		return "timestamp"
	case JSON:
		return "json"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
}

// Pattern is the access pattern a table models.
type Pattern string

// Access patterns.
const (
	OLTP     Pattern = "oltp"
	OLAP     Pattern = "olap"
	Event    Pattern = "event"
	Staging  Pattern = "staging"
	Feature  Pattern = "feature"
	Metadata Pattern = "metadata"
)

// Column defines a single column.
type Column struct {
	Name     string
	Type     ColumnType
	Nullable bool
	Unique   bool

	// Long marks free text that may exceed a short VARCHAR.
	Long bool
}

// ForeignKey defines a foreign key reference.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// Index defines a secondary index.
type Index struct {
	Name    string
	Columns []string
	Unique  bool
}

// Table defines a table's schema.
type Table struct {
	Name        string
	Module      string
	Domain      string
	Pattern     Pattern
	Description string
	Columns     []Column
	PrimaryKey  []string
	ForeignKeys []ForeignKey
	Indexes     []Index

	// Partition names the column that separates the rows of different
	// domains in a table shared by several domains. Empty for tables
	// owned by one domain.
	Partition string
}

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Shared reports whether the table holds rows of several domains.
func (t *Table) Shared() bool {
	return t.Partition != ""
}

// Validate checks that every key and index refers to declared columns.
// References to other tables are checked by the Registry.
func (t *Table) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: table has no name", ErrInvalidTable)
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("%w: %s has no columns", ErrInvalidTable, t.Name)
	}
	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if seen[c.Name] {
			return fmt.Errorf("%w: %s declares column %s twice", ErrInvalidTable, t.Name, c.Name)
		}
		seen[c.Name] = true
	}
	if len(t.PrimaryKey) == 0 {
		return fmt.Errorf("%w: %s has no primary key", ErrInvalidTable, t.Name)
	}
	for _, k := range t.PrimaryKey {
		if !seen[k] {
			return fmt.Errorf("%w: %s primary key column %s not declared", ErrInvalidTable, t.Name, k)
		}
	}
	for _, fk := range t.ForeignKeys {
		if !seen[fk.Column] {
			return fmt.Errorf("%w: %s foreign key column %s not declared", ErrInvalidTable, t.Name, fk.Column)
		}
	}
	for _, idx := range t.Indexes {
		for _, c := range idx.Columns {
			if !seen[c] {
				return fmt.Errorf("%w: %s index %s uses undeclared column %s", ErrInvalidTable, t.Name, idx.Name, c)
			}
		}
	}
	if t.Partition != "" && !seen[t.Partition] {
		return fmt.Errorf("%w: %s partition column %s not declared", ErrInvalidTable, t.Name, t.Partition)
	}
	return nil
}
