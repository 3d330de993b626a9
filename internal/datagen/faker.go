//-------------------------------------------------------------------------
//
// pgEdge Data Lab
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen provides the seeded value generators and parametric
// samplers shared by every domain generator.
package datagen

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// streamSalt separates the numeric sampling stream from gofakeit's stream
// for the same seed.
const streamSalt = 0x9e3779b97f4a7c15

// Faker provides fake values and numeric samplers from one seed. Two
// Fakers built from the same seed produce identical sequences.
type Faker struct {
	faker *gofakeit.Faker
	src   *rand.PCG
	rng   *rand.Rand
}

// NewFaker creates a new Faker with a time-based seed.
func NewFaker() *Faker {
	return NewFakerWithSeed(uint64(time.Now().UnixNano()))
}

// NewFakerWithSeed creates a new Faker with a specific seed for reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	src := rand.NewPCG(seed, seed^streamSalt)
	return &Faker{
		faker: gofakeit.New(seed),
		src:   src,
		rng:   rand.New(src),
	}
}

// Name generates a random full name.
func (f *Faker) Name() string {
	return f.faker.Name()
}

// FirstName generates a random first name.
func (f *Faker) FirstName() string {
	return f.faker.FirstName()
}

// Company generates a random company name.
func (f *Faker) Company() string {
	return f.faker.Company()
}

// City generates a random city name.
func (f *Faker) City() string {
	return f.faker.City()
}

// MovieName generates a random film title.
func (f *Faker) MovieName() string {
	return f.faker.MovieName()
}

// Sentence generates a random sentence.
func (f *Faker) Sentence(wordCount int) string {
	return f.faker.Sentence(wordCount)
}

// Word generates a random word.
func (f *Faker) Word() string {
	return f.faker.Word()
}

// UserAgent generates a browser user agent string.
func (f *Faker) UserAgent() string {
	return f.faker.UserAgent()
}

// AppVersion generates a semantic app version string.
func (f *Faker) AppVersion() string {
	return f.faker.AppVersion()
}

// Letters generates n random letters.
func (f *Faker) Letters(n int) string {
	return f.faker.LetterN(uint(n))
}

// Digits generates a random string of digits of length n.
func (f *Faker) Digits(n int) string {
	return f.faker.DigitN(uint(n))
}

// Hex generates n lowercase hex characters.
func (f *Faker) Hex(n int) string {
	const hexDigits = "0123456789abcdef"
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(hexDigits[f.rng.IntN(16)])
	}
	return b.String()
}

// Int generates a random integer between min and max (inclusive).
func (f *Faker) Int(min, max int) int {
	if max <= min {
		return min
	}
	return min + f.rng.IntN(max-min+1)
}

// Float64 generates a random float64 in [min, max).
func (f *Faker) Float64(min, max float64) float64 {
	return min + f.rng.Float64()*(max-min)
}

// Bool generates a random boolean.
func (f *Faker) Bool() bool {
	return f.rng.IntN(2) == 1
}

// Chance returns true with probability p.
func (f *Faker) Chance(p float64) bool {
	return f.rng.Float64() < p
}

// Read fills p from the seeded stream. It lets seeded identifiers be
// drawn through io.Reader based APIs.
func (f *Faker) Read(p []byte) (int, error) {
	var buf [8]byte
	for i := 0; i < len(p); i += 8 {
		binary.LittleEndian.PutUint64(buf[:], f.rng.Uint64())
		copy(p[i:], buf[:])
	}
	return len(p), nil
}

// UUID generates a version 4 UUID from the seeded stream.
func (f *Faker) UUID() string {
	return uuid.Must(uuid.NewRandomFromReader(f)).String()
}

// Choose returns a random element from the given slice.
func Choose[T any](f *Faker, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[f.rng.IntN(len(items))]
}

// Sample returns k distinct elements of items in random order. k is
// clamped to len(items).
func Sample[T any](f *Faker, items []T, k int) []T {
	k = max(0, min(k, len(items)))
	out := make([]T, 0, k)
	if k*4 >= len(items) {
		for _, j := range f.rng.Perm(len(items))[:k] {
			out = append(out, items[j])
		}
		return out
	}
	// Sparse draw: rejection against the indices already taken.
	taken := make(map[int]struct{}, k)
	for len(out) < k {
		j := f.rng.IntN(len(items))
		if _, dup := taken[j]; dup {
			continue
		}
		taken[j] = struct{}{}
		out = append(out, items[j])
	}
	return out
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// ID formats a primary key as prefix + "_" + zero-padded sequence number,
// e.g. ID("CUST", 1, 6) == "CUST_000001".
func ID(prefix string, n, width int) string {
	return fmt.Sprintf("%s_%0*d", prefix, width, n)
}
