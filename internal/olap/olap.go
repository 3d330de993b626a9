//-------------------------------------------------------------------------
//
// pgEdge Data Lab
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package olap provides the building blocks of the rollup tables: a
// group-by accumulator for aggregates derived from detail rows, and
// helpers for sampled buckets whose derived ratios must agree with the
// base numbers they are computed from.
package olap

import (
	"cmp"
	"slices"
	"time"
)

// Group accumulates one value per composite key. Keys are remembered in
// first-seen order.
type Group[K comparable, V any] struct {
	order []K
	vals  map[K]*V
}

// NewGroup creates an empty group.
func NewGroup[K comparable, V any]() *Group[K, V] {
	return &Group[K, V]{vals: make(map[K]*V)}
}

// At returns the accumulator of k, creating a zero one on first use.
func (g *Group[K, V]) At(k K) *V {
	v, ok := g.vals[k]
	if !ok {
		v = new(V)
		g.vals[k] = v
		g.order = append(g.order, k)
	}
	return v
}

// Len returns the number of keys.
func (g *Group[K, V]) Len() int {
	return len(g.order)
}

// Keys returns the keys in first-seen order.
func (g *Group[K, V]) Keys() []K {
	return slices.Clone(g.order)
}

// Sorted returns the keys ordered by cmp.
func (g *Group[K, V]) Sorted(compare func(a, b K) int) []K {
	keys := g.Keys()
	slices.SortStableFunc(keys, compare)
	return keys
}

// Each calls fn for every key in first-seen order.
func (g *Group[K, V]) Each(fn func(K, *V)) {
	for _, k := range g.order {
		fn(k, g.vals[k])
	}
}

// Mean is a running average.
type Mean struct {
	Sum   float64
	Count int
}

// Add adds one observation.
func (m *Mean) Add(v float64) {
	m.Sum += v
	m.Count++
}

// Value returns the average, 0 when nothing was added.
func (m Mean) Value() float64 {
	return Ratio(m.Sum, float64(m.Count))
}

// Set counts distinct values.
type Set map[string]struct{}

// Add records v.
func (s *Set) Add(v string) {
	if *s == nil {
		*s = make(Set)
	}
	(*s)[v] = struct{}{}
}

// Len returns the number of distinct values.
func (s Set) Len() int {
	return len(s)
}

// Ratio returns num/den, or 0 when den is 0.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// Hour truncates t to the hour.
func Hour(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}

// ByTime orders by a time then a string dimension.
func ByTime(at1 time.Time, dim1 string, at2 time.Time, dim2 string) int {
	if c := at1.Compare(at2); c != 0 {
		return c
	}
	return cmp.Compare(dim1, dim2)
}

// Bar is one OHLC price bar.
type Bar struct {
	Open, High, Low, Close float64
}

// Valid reports whether the bar's extremes bound its open and close.
func (b Bar) Valid() bool {
	return b.Low <= min(b.Open, b.Close) && b.High >= max(b.Open, b.Close) && b.Low > 0
}

// NewBar builds a bar from an open price, the close move and the intra
// minute excursions above and below. Excursions are made non-negative
// and the extremes widened to cover open and close.
func NewBar(open, move, up, down float64) Bar {
	if up < 0 {
		up = -up
	}
	if down < 0 {
		down = -down
	}
	closePrice := open + move
	return Bar{
		Open:  open,
		Close: closePrice,
		High:  max(open, closePrice) + up,
		Low:   max(0.01, min(open, closePrice)-down),
	}
}
