//-------------------------------------------------------------------------
//
// pgEdge Data Lab
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"regexp"
	"testing"
)

func TestNewFaker(t *testing.T) {
	f := NewFaker()
	if f == nil {
		t.Fatal("NewFaker returned nil")
	}
	if f.faker == nil {
		t.Fatal("faker field is nil")
	}
}

func TestNewFakerWithSeed(t *testing.T) {
	seed := uint64(12345)
	f1 := NewFakerWithSeed(seed)
	f2 := NewFakerWithSeed(seed)

	// Same seed should produce same sequence
	for i := 0; i < 10; i++ {
		v1 := f1.Int(0, 1000)
		v2 := f2.Int(0, 1000)
		if v1 != v2 {
			t.Errorf("Same seed produced different values: %d != %d", v1, v2)
		}
		if n1, n2 := f1.Name(), f2.Name(); n1 != n2 {
			t.Errorf("Same seed produced different names: %q != %q", n1, n2)
		}
		if l1, l2 := f1.Lognormal(3, 1), f2.Lognormal(3, 1); l1 != l2 {
			t.Errorf("Same seed produced different lognormals: %v != %v", l1, l2)
		}
	}
}

func TestFakerUUIDDeterministic(t *testing.T) {
	f1 := NewFakerWithSeed(7)
	f2 := NewFakerWithSeed(7)

	u1, u2 := f1.UUID(), f2.UUID()
	if u1 != u2 {
		t.Errorf("Same seed produced different UUIDs: %s != %s", u1, u2)
	}
	if u3 := f1.UUID(); u3 == u1 {
		t.Error("Consecutive UUIDs are equal")
	}
	if !regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`).MatchString(u1) {
		t.Errorf("UUID %q is not a version 4 UUID", u1)
	}
}

func TestFakerStrings(t *testing.T) {
	f := NewFakerWithSeed(1)

	tests := []struct {
		name string
		fn   func() string
	}{
		{"Name", f.Name},
		{"FirstName", f.FirstName},
		{"Company", f.Company},
		{"City", f.City},
		{"MovieName", f.MovieName},
		{"Word", f.Word},
		{"UserAgent", f.UserAgent},
		{"AppVersion", f.AppVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.fn() == "" {
				t.Errorf("%s returned empty string", tt.name)
			}
		})
	}

	if got := f.Digits(6); len(got) != 6 {
		t.Errorf("Digits(6) = %q", got)
	}
	if got := f.Letters(4); len(got) != 4 {
		t.Errorf("Letters(4) = %q", got)
	}
	if got := f.Hex(12); !regexp.MustCompile(`^[0-9a-f]{12}$`).MatchString(got) {
		t.Errorf("Hex(12) = %q", got)
	}
}

func TestFakerInt(t *testing.T) {
	f := NewFakerWithSeed(2)

	for i := 0; i < 1000; i++ {
		v := f.Int(10, 20)
		if v < 10 || v > 20 {
			t.Fatalf("Int(10, 20) = %d out of range", v)
		}
	}
	if v := f.Int(5, 5); v != 5 {
		t.Errorf("Int(5, 5) = %d, want 5", v)
	}
	if v := f.Int(9, 3); v != 9 {
		t.Errorf("Int(9, 3) = %d, want 9", v)
	}
}

func TestChoose(t *testing.T) {
	f := NewFakerWithSeed(3)
	items := []string{"a", "b", "c"}
	for i := 0; i < 100; i++ {
		v := Choose(f, items)
		if v != "a" && v != "b" && v != "c" {
			t.Fatalf("Choose returned %q", v)
		}
	}
	if v := Choose(f, []int{}); v != 0 {
		t.Errorf("Choose on empty slice = %d, want 0", v)
	}
}

func TestSampleDistinct(t *testing.T) {
	f := NewFakerWithSeed(4)

	dense := make([]int, 10)
	sparse := make([]int, 1000)
	for i := range dense {
		dense[i] = i
	}
	for i := range sparse {
		sparse[i] = i
	}

	tests := []struct {
		name  string
		items []int
		k     int
		want  int
	}{
		{"dense", dense, 6, 6},
		{"sparse", sparse, 6, 6},
		{"all", dense, 10, 10},
		{"more than available", dense, 25, 10},
		{"zero", dense, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sample(f, tt.items, tt.k)
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
			seen := map[int]bool{}
			for _, v := range got {
				if seen[v] {
					t.Errorf("duplicate %d in %v", v, got)
				}
				seen[v] = true
			}
		})
	}
}

func TestID(t *testing.T) {
	tests := []struct {
		prefix string
		n      int
		width  int
		want   string
	}{
		{"CUST", 1, 6, "CUST_000001"},
		{"ORD", 12345, 6, "ORD_012345"},
		{"HOST", 7, 4, "HOST_0007"},
		{"SEQ", 123456789, 6, "SEQ_123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := ID(tt.prefix, tt.n, tt.width); got != tt.want {
				t.Errorf("ID(%q, %d, %d) = %q, want %q", tt.prefix, tt.n, tt.width, got, tt.want)
			}
		})
	}
}

func TestRound(t *testing.T) {
	if got := Round(12.3456, 2); got != 12.35 {
		t.Errorf("Round(12.3456, 2) = %v", got)
	}
	if got := Round(-1.005, 0); got != -1 {
		t.Errorf("Round(-1.005, 0) = %v", got)
	}
}
