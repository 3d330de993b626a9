package datagen

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pgEdge/pgedge-datalab/internal/datagen/profiles"
)

var anchor = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func TestSessionFork(t *testing.T) {
	s := NewSession(42, anchor)

	a := s.Fork("ecommerce")
	s.Int(0, 100) // consuming the parent must not shift forks
	b := s.Fork("ecommerce")
	c := s.Fork("streaming")

	for i := 0; i < 20; i++ {
		va, vb := a.Int(0, 1<<30), b.Int(0, 1<<30)
		if va != vb {
			t.Fatalf("forks with the same label diverged: %d != %d", va, vb)
		}
	}
	same := 0
	for i := 0; i < 20; i++ {
		if a.Int(0, 1<<30) == c.Int(0, 1<<30) {
			same++
		}
	}
	if same == 20 {
		t.Error("forks with different labels produced the same stream")
	}
	if a.Now != anchor {
		t.Errorf("fork Now = %v, want %v", a.Now, anchor)
	}
}

func TestDateBetween(t *testing.T) {
	s := NewSession(1, anchor)
	lo := time.Date(2026, 5, 16, 0, 0, 0, 0, time.UTC)
	hi := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 500; i++ {
		d := s.DateBetween(-30, 0)
		if d.Before(lo) || d.After(hi) {
			t.Fatalf("DateBetween(-30, 0) = %v outside [%v, %v]", d, lo, hi)
		}
		if d.Hour() != 0 || d.Minute() != 0 {
			t.Fatalf("DateBetween returned non-midnight %v", d)
		}
	}
}

func TestDatetimeBetween(t *testing.T) {
	s := NewSession(2, anchor)
	from, to := -90*24*time.Hour, -time.Hour

	for i := 0; i < 500; i++ {
		ts := s.DatetimeBetween(from, to)
		if ts.Before(anchor.Add(from)) || ts.After(anchor.Add(to)) {
			t.Fatalf("DatetimeBetween = %v outside window", ts)
		}
	}
	if got := s.DatetimeBetween(time.Hour, time.Hour); !got.Equal(anchor.Add(time.Hour)) {
		t.Errorf("empty window = %v", got)
	}
}

func TestSeasonalHour(t *testing.T) {
	s := NewSession(3, anchor)
	market := profiles.MustGet("market")

	for i := 0; i < 1000; i++ {
		h := s.SeasonalHour(market)
		if h < 9 || h > 15 {
			t.Fatalf("market hour %d outside trading hours", h)
		}
	}

	commute := profiles.MustGet("commute")
	counts := make([]int, 24)
	for i := 0; i < 20000; i++ {
		counts[s.SeasonalHour(commute)]++
	}
	if counts[8] <= counts[3] {
		t.Errorf("commute peak hour 8 (%d) not above hour 3 (%d)", counts[8], counts[3])
	}
}

func TestSeasonalTimeSkipsClosedDays(t *testing.T) {
	s := NewSession(4, anchor)
	market := profiles.MustGet("market")

	for i := 0; i < 500; i++ {
		ts := s.SeasonalTime(market, -60, -1)
		if wd := ts.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Fatalf("market timestamp %v falls on %s", ts, wd)
		}
	}
}

func TestSeasonalTimeBeforeNow(t *testing.T) {
	s := NewSession(9, anchor)
	commute := profiles.MustGet("commute")

	today := anchor.Truncate(24 * time.Hour)
	for i := 0; i < 500; i++ {
		ts := s.SeasonalTime(commute, 0, 0)
		if ts.Before(today) || !ts.Before(anchor) {
			t.Fatalf("timestamp %v outside [%v, %v)", ts, today, anchor)
		}
	}
}

func TestSampleUniqueCompositeKeys(t *testing.T) {
	s := NewSession(5, anchor)
	tickers := []string{"AAPL", "MSFT", "NVDA"}

	type row struct {
		ticker string
		minute int
	}
	rows, err := SampleUnique(2000, DefaultKeyAttempts, func() (row, []string) {
		r := row{ticker: Choose(s.Faker, tickers), minute: s.Int(0, 999)}
		return r, []string{r.ticker, fmt.Sprint(r.minute)}
	})
	if err != nil {
		t.Fatalf("SampleUnique failed: %v", err)
	}
	if len(rows) != 2000 {
		t.Fatalf("got %d rows, want 2000", len(rows))
	}
	keys := NewKeySet()
	for _, r := range rows {
		if !keys.Claim(r.ticker, fmt.Sprint(r.minute)) {
			t.Fatalf("duplicate key %v", r)
		}
	}
}

func TestSampleUniqueExhausted(t *testing.T) {
	s := NewSession(6, anchor)

	_, err := SampleUnique(5, 20, func() (int, []string) {
		v := s.Int(0, 2)
		return v, []string{fmt.Sprint(v)}
	})
	if !errors.Is(err, ErrKeyCollision) {
		t.Errorf("err = %v, want ErrKeyCollision", err)
	}

	if _, err := SampleUnique(0, 20, func() (int, []string) { return 0, nil }); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero rows err = %v, want ErrInvalidArgument", err)
	}
}

func TestKeySet(t *testing.T) {
	k := NewKeySet()
	if !k.Claim("a", "b") {
		t.Error("first claim rejected")
	}
	if k.Claim("a", "b") {
		t.Error("second claim accepted")
	}
	if !k.Claim("ab") {
		t.Error("different split treated as duplicate")
	}
	if k.Len() != 2 {
		t.Errorf("Len = %d, want 2", k.Len())
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
		factor  float64
	}{
		{"small", false, 1},
		{"medium", false, 10},
		{"large", false, 50},
		{"huge", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseScale(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("err = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScale failed: %v", err)
			}
			if s.Factor != tt.factor {
				t.Errorf("Factor = %v, want %v", s.Factor, tt.factor)
			}
		})
	}

	if got := Medium.Apply(500); got != 5000 {
		t.Errorf("Medium.Apply(500) = %d", got)
	}
	if got := CustomScale(0.0001).Apply(100); got != 1 {
		t.Errorf("tiny scale Apply = %d, want 1", got)
	}
	if got := Large.ApplyCapped(10, 50); got != 50 {
		t.Errorf("ApplyCapped = %d, want 50", got)
	}
	if CustomScale(2.5).Name != "x2.5" {
		t.Errorf("CustomScale name = %q", CustomScale(2.5).Name)
	}
}

func TestRequireArguments(t *testing.T) {
	if err := RequireCount("customer", 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("RequireCount(0) = %v", err)
	}
	if err := RequireCount("customer", -3); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("RequireCount(-3) = %v", err)
	}
	if err := RequireCount("customer", 1); err != nil {
		t.Errorf("RequireCount(1) = %v", err)
	}
	if err := RequireKeys("customer", nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("RequireKeys(nil) = %v", err)
	}
	if err := RequireKeys("customer", []string{"CUST_000001"}); err != nil {
		t.Errorf("RequireKeys = %v", err)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.in); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProgressReporter(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.InfoLevel)

	p := NewProgressReporter(log, "amazon_orders", 250, 100)
	for range 5 {
		p.Update(50)
	}
	p.Done()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"rows":100`) || !strings.Contains(lines[1], `"rows":200`) {
		t.Errorf("unexpected progress lines:\n%s", buf.String())
	}
	if !strings.Contains(lines[0], `"table":"amazon_orders"`) {
		t.Errorf("progress line lacks the table: %s", lines[0])
	}
}
