package olap

import (
	"cmp"
	"testing"
	"time"
)

type sales struct {
	orders  int
	revenue float64
}

func TestGroup(t *testing.T) {
	g := NewGroup[string, sales]()
	for _, row := range []struct {
		region  string
		revenue float64
	}{
		{"UAE", 10}, {"KSA", 5}, {"UAE", 2.5}, {"Egypt", 1},
	} {
		s := g.At(row.region)
		s.orders++
		s.revenue += row.revenue
	}

	if g.Len() != 3 {
		t.Fatalf("Len = %d, want 3", g.Len())
	}
	keys := g.Keys()
	if keys[0] != "UAE" || keys[1] != "KSA" || keys[2] != "Egypt" {
		t.Errorf("Keys = %v, want first-seen order", keys)
	}
	if uae := g.At("UAE"); uae.orders != 2 || uae.revenue != 12.5 {
		t.Errorf("UAE = %+v, want 2 orders 12.5 revenue", *uae)
	}

	sorted := g.Sorted(cmp.Compare[string])
	if sorted[0] != "Egypt" || sorted[2] != "UAE" {
		t.Errorf("Sorted = %v", sorted)
	}

	total := 0
	g.Each(func(_ string, s *sales) { total += s.orders })
	if total != 4 {
		t.Errorf("Each visited %d orders, want 4", total)
	}
}

func TestMeanAndRatio(t *testing.T) {
	var m Mean
	if m.Value() != 0 {
		t.Errorf("empty mean = %v, want 0", m.Value())
	}
	m.Add(2)
	m.Add(4)
	if m.Value() != 3 {
		t.Errorf("mean = %v, want 3", m.Value())
	}

	if Ratio(1, 0) != 0 {
		t.Error("Ratio with zero denominator should be 0")
	}
	if Ratio(3, 4) != 0.75 {
		t.Errorf("Ratio(3, 4) = %v", Ratio(3, 4))
	}
}

func TestSet(t *testing.T) {
	var s Set
	s.Add("a")
	s.Add("b")
	s.Add("a")
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
}

func TestTruncation(t *testing.T) {
	ts := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	if got := Day(ts); !got.Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Day = %v", got)
	}
	if got := Hour(ts); !got.Equal(time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)) {
		t.Errorf("Hour = %v", got)
	}
	if ByTime(ts, "a", ts, "b") >= 0 {
		t.Error("ByTime should fall back to the dimension")
	}
}

func TestNewBar(t *testing.T) {
	tests := []struct {
		name                 string
		open, move, up, down float64
	}{
		{"rising", 100, 1.5, 0.2, 0.3},
		{"falling", 100, -2, 0.1, 0.1},
		{"negative excursions", 50, 0.5, -0.4, -0.2},
		{"near zero", 0.05, -0.04, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBar(tt.open, tt.move, tt.up, tt.down)
			if !b.Valid() {
				t.Errorf("bar %+v is not consistent", b)
			}
			if b.Open != tt.open {
				t.Errorf("Open = %v, want %v", b.Open, tt.open)
			}
		})
	}

	if (Bar{Open: 10, High: 9, Low: 8, Close: 9}).Valid() {
		t.Error("bar with high below open should be invalid")
	}
}
