package datagen

import (
	"hash/fnv"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen/profiles"
)

// Session carries the explicit seed of one generation run. Every sampler
// used by a run draws from its session, so two sessions built from the
// same seed and anchor time produce identical datasets.
type Session struct {
	*Faker

	// Seed is the seed the session was built from.
	Seed uint64

	// Now anchors relative date windows.
	Now time.Time

	hours map[string]*Weighted[int]
}

// NewSession creates a session from a seed and an anchor time.
func NewSession(seed uint64, now time.Time) *Session {
	return &Session{
		Faker: NewFakerWithSeed(seed),
		Seed:  seed,
		Now:   now,
		hours: make(map[string]*Weighted[int]),
	}
}

// Fork derives an independent session for label. The derived stream
// depends only on the parent seed and the label, not on how much the
// parent has been consumed, so skipping one domain never shifts the
// values generated for another.
func (s *Session) Fork(label string) *Session {
	h := fnv.New64a()
	_, _ = h.Write([]byte(label))
	return NewSession(s.Seed^h.Sum64(), s.Now)
}

// DateBetween returns a uniformly drawn calendar day between now+fromDays
// and now+toDays (inclusive), at midnight UTC.
func (s *Session) DateBetween(fromDays, toDays int) time.Time {
	day := s.Now.UTC().Truncate(24 * time.Hour)
	return day.AddDate(0, 0, s.Int(fromDays, toDays))
}

// DatetimeBetween returns a uniformly drawn instant in [now+from, now+to],
// truncated to the second.
func (s *Session) DatetimeBetween(from, to time.Duration) time.Time {
	span := to - from
	if span <= 0 {
		return s.Now.Add(from).Truncate(time.Second)
	}
	offset := time.Duration(s.Float64(0, float64(span)))
	return s.Now.Add(from + offset).Truncate(time.Second)
}

// SeasonalHour draws an hour of day in [0, 23] from the profile's curve.
func (s *Session) SeasonalHour(p profiles.Profile) int {
	w, ok := s.hours[p.Name()]
	if !ok {
		hours := make([]int, 24)
		for i := range hours {
			hours[i] = i
		}
		w = MustWeighted(hours, p.HourWeights())
		s.hours[p.Name()] = w
	}
	return w.Pick(s.Faker)
}

// AtHour places t at the given hour with a random minute and second.
func (s *Session) AtHour(t time.Time, hour int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, s.Int(0, 59), s.Int(0, 59), 0, t.Location())
}

// SeasonalTime draws a timestamp whose day lies between now+fromDays and
// now+toDays and whose hour follows the profile. Days are accepted in
// proportion to the profile's weekday factor. The result is always
// before now: draws landing later on the current day are repeated, so a
// window ending today is cut at now.
func (s *Session) SeasonalTime(p profiles.Profile, fromDays, toDays int) time.Time {
	peak := 0.0
	for d := time.Sunday; d <= time.Saturday; d++ {
		peak = max(peak, p.DayFactor(d))
	}
	for range maxSeasonalDraws {
		day := s.DateBetween(fromDays, toDays)
		for i := 0; i < 64 && peak > 0; i++ {
			if s.Chance(p.DayFactor(day.Weekday()) / peak) {
				break
			}
			day = s.DateBetween(fromDays, toDays)
		}
		if ts := s.AtHour(day, s.SeasonalHour(p)); ts.Before(s.Now) {
			return ts
		}
	}
	return s.Now.Add(-time.Second).Truncate(time.Second)
}

// maxSeasonalDraws bounds the redraws of a timestamp later than now.
const maxSeasonalDraws = 32
