//-------------------------------------------------------------------------
//
// pgEdge Data Lab
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package profiles implements hour-of-day traffic curves used to bias
// generated event timestamps toward realistic daily patterns.
package profiles

import (
	"fmt"
	"sort"
	"time"
)

// Profile defines the interface for traffic profiles.
type Profile interface {
	// Name returns the profile name.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// HourWeights returns 24 non-negative weights summing to 1, indexed
	// by hour of day.
	HourWeights() []float64

	// DayFactor returns the relative activity of a weekday (1.0 = normal).
	DayFactor(day time.Weekday) float64
}

var registry = make(map[string]func() Profile)

// Register adds a profile constructor to the registry.
func Register(name string, constructor func() Profile) {
	registry[name] = constructor
}

// Get retrieves a profile by name.
func Get(name string) (Profile, error) {
	constructor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown profile: %s", name)
	}
	return constructor(), nil
}

// MustGet is Get for package-level variables; it panics on unknown names.
func MustGet(name string) Profile {
	p, err := Get(name)
	if err != nil {
		panic(err)
	}
	return p
}

// List returns all registered profile names in sorted order.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActivityLevel returns the activity of p at t relative to a uniform day:
// 1.0 means the hour carries its 1/24 share, scaled by the weekday factor.
func ActivityLevel(p Profile, t time.Time) float64 {
	return p.HourWeights()[t.Hour()] * 24 * p.DayFactor(t.Weekday())
}

// normalize scales w to sum to 1. It panics unless w has exactly 24
// non-negative entries with a positive sum; curves are package constants.
func normalize(w []float64) []float64 {
	if len(w) != 24 {
		panic(fmt.Sprintf("profiles: hour curve has %d entries, want 24", len(w)))
	}
	total := 0.0
	for _, v := range w {
		if v < 0 {
			panic("profiles: negative hour weight")
		}
		total += v
	}
	if total <= 0 {
		panic("profiles: hour curve sums to zero")
	}
	out := make([]float64, len(w))
	for i, v := range w {
		out[i] = v / total
	}
	return out
}

// repeat returns n copies of v.
func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func concat(parts ...[]float64) []float64 {
	var out []float64
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func init() {
	Register("commute", NewCommute)
	Register("evening", NewEvening)
	Register("retail", NewRetail)
	Register("market", NewMarket)
	Register("flat", NewFlat)
}
