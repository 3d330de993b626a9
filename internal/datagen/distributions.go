package datagen

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Lognormal samples a positive value whose logarithm is Normal(mu, sigma).
// Used for monetary amounts and durations; callers round as needed.
func (f *Faker) Lognormal(mu, sigma float64) float64 {
	return distuv.LogNormal{Mu: mu, Sigma: sigma, Src: f.src}.Rand()
}

// Beta samples a value in [0, 1] that clusters around alpha/(alpha+beta).
// Used for rates and scores.
func (f *Faker) Beta(alpha, beta float64) float64 {
	return distuv.Beta{Alpha: alpha, Beta: beta, Src: f.src}.Rand()
}

// Poisson samples a non-negative count with mean lambda.
func (f *Faker) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	return int(distuv.Poisson{Lambda: lambda, Src: f.src}.Rand())
}

// Normal samples from a normal distribution.
func (f *Faker) Normal(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: f.src}.Rand()
}

// Exponential samples a non-negative value with the given mean.
func (f *Faker) Exponential(mean float64) float64 {
	return distuv.Exponential{Rate: 1 / mean, Src: f.src}.Rand()
}

// Gamma samples a non-negative value with mean shape*scale.
func (f *Faker) Gamma(shape, scale float64) float64 {
	return distuv.Gamma{Alpha: shape, Beta: 1 / scale, Src: f.src}.Rand()
}

// ClampedNormal samples Normal(mu, sigma) and clamps it to [lo, hi].
func (f *Faker) ClampedNormal(mu, sigma, lo, hi float64) float64 {
	return Clamp(f.Normal(mu, sigma), lo, hi)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// Weighted is a categorical distribution over items. Weights need not sum
// to 1; they are normalized.
type Weighted[T any] struct {
	items []T
	cum   []float64
}

// NewWeighted builds a categorical distribution. It fails with
// ErrInvalidArgument when the slices are empty or differ in length, or
// when a weight is negative or all weights are zero.
func NewWeighted[T any](items []T, weights []float64) (*Weighted[T], error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: weighted choice needs at least one option", ErrInvalidArgument)
	}
	if len(items) != len(weights) {
		return nil, fmt.Errorf("%w: %d options but %d weights", ErrInvalidArgument, len(items), len(weights))
	}

	cum := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return nil, fmt.Errorf("%w: weight %d is %v", ErrInvalidArgument, i, w)
		}
		total += w
		cum[i] = total
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: weights sum to zero", ErrInvalidArgument)
	}
	for i := range cum {
		cum[i] /= total
	}

	return &Weighted[T]{items: items, cum: cum}, nil
}

// MustWeighted is NewWeighted for package-level tables; it panics on
// invalid input.
func MustWeighted[T any](items []T, weights []float64) *Weighted[T] {
	w, err := NewWeighted(items, weights)
	if err != nil {
		panic(err)
	}
	return w
}

// Pick draws one item.
func (w *Weighted[T]) Pick(f *Faker) T {
	u := f.rng.Float64()
	i := sort.SearchFloat64s(w.cum, u)
	if i >= len(w.items) {
		i = len(w.items) - 1
	}
	// SearchFloat64s finds cum[i] >= u; skip zero-weight entries sharing
	// the same cumulative value.
	for i < len(w.items)-1 && w.cum[i] == u {
		i++
	}
	return w.items[i]
}

// Items returns the options.
func (w *Weighted[T]) Items() []T {
	return w.items
}

// WeightedChoice draws one of options with probability proportional to
// its weight.
func WeightedChoice[T any](f *Faker, options []T, weights []float64) (T, error) {
	w, err := NewWeighted(options, weights)
	if err != nil {
		var zero T
		return zero, err
	}
	return w.Pick(f), nil
}
