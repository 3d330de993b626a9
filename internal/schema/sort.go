package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is returned when foreign keys form a cycle.
var ErrCycle = errors.New("foreign key cycle")

// TopoSort orders tables so that every table follows the tables it
// references (Kahn's algorithm). References to tables outside the set and
// self references are ignored. Ties keep input order, so the result is
// stable.
func TopoSort(tables []*Table) ([]*Table, error) {
	index := make(map[string]int, len(tables))
	for i, t := range tables {
		index[t.Name] = i
	}

	// inDegree[child] = count of parent deps within the set
	inDegree := make([]int, len(tables))
	dependents := make([][]int, len(tables)) // parent -> children
	for i, t := range tables {
		parents := make(map[int]bool)
		for _, fk := range t.ForeignKeys {
			p, ok := index[fk.RefTable]
			if !ok || p == i || parents[p] {
				continue
			}
			parents[p] = true
			inDegree[i]++
			dependents[p] = append(dependents[p], i)
		}
	}

	ready := make([]bool, len(tables))
	for i := range tables {
		ready[i] = inDegree[i] == 0
	}

	sorted := make([]*Table, 0, len(tables))
	done := make([]bool, len(tables))
	for len(sorted) < len(tables) {
		next := -1
		for i := range tables {
			if ready[i] && !done[i] {
				next = i
				break
			}
		}
		if next < 0 {
			var stuck []string
			for i, t := range tables {
				if !done[i] {
					stuck = append(stuck, t.Name)
				}
			}
			return nil, fmt.Errorf("%w among %s", ErrCycle, strings.Join(stuck, ", "))
		}
		done[next] = true
		sorted = append(sorted, tables[next])
		for _, child := range dependents[next] {
			inDegree[child]--
			if inDegree[child] == 0 {
				ready[child] = true
			}
		}
	}
	return sorted, nil
}

// Reverse returns tables in reverse order, children before parents when
// applied to the output of TopoSort.
func Reverse(tables []*Table) []*Table {
	out := make([]*Table, len(tables))
	for i, t := range tables {
		out[len(tables)-1-i] = t
	}
	return out
}
