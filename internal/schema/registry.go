package schema

import (
	"fmt"
	"sync"
)

// Registry holds the tables of one or more modules by name.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*Table
	order  []string
}

// NewRegistry creates a registry holding tables.
func NewRegistry(tables ...*Table) (*Registry, error) {
	r := &Registry{tables: make(map[string]*Table)}
	for _, t := range tables {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a table. Registering the same declaration twice is a
// no-op; a different declaration under a taken name is an error.
func (r *Registry) Register(t *Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.tables[t.Name]; ok {
		if prev == t {
			return nil
		}
		return fmt.Errorf("%w: %s registered twice", ErrInvalidTable, t.Name)
	}
	r.tables[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// Lookup retrieves a table by name.
func (r *Registry) Lookup(name string) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	return t, nil
}

// Tables returns all tables in registration order.
func (r *Registry) Tables() []*Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Table, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tables[name])
	}
	return out
}

// ForModule returns the tables of one module in registration order.
func (r *Registry) ForModule(module string) []*Table {
	var out []*Table
	for _, t := range r.Tables() {
		if t.Module == module {
			out = append(out, t)
		}
	}
	return out
}

// Check verifies that every foreign key references a registered table
// and one of its primary key columns, and that the tables can be ordered.
func (r *Registry) Check() error {
	tables := r.Tables()
	for _, t := range tables {
		for _, fk := range t.ForeignKeys {
			ref, err := r.Lookup(fk.RefTable)
			if err != nil {
				return fmt.Errorf("%w: %s.%s references %s", ErrInvalidTable, t.Name, fk.Column, fk.RefTable)
			}
			if len(ref.PrimaryKey) != 1 || ref.PrimaryKey[0] != fk.RefColumn {
				return fmt.Errorf("%w: %s.%s must reference the primary key of %s",
					ErrInvalidTable, t.Name, fk.Column, fk.RefTable)
			}
		}
	}
	_, err := TopoSort(tables)
	return err
}
