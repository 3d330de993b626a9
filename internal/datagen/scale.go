package datagen

import (
	"fmt"
	"math"
	"strconv"
)

// Scale multiplies the base (small) row counts of every generator. Scale
// changes counts only, never distribution shapes.
type Scale struct {
	Name   string
	Factor float64
}

// Named scales.
var (
	Small  = Scale{Name: "small", Factor: 1}
	Medium = Scale{Name: "medium", Factor: 10}
	Large  = Scale{Name: "large", Factor: 50}
)

// Scales returns the named scales in ascending order.
func Scales() []Scale {
	return []Scale{Small, Medium, Large}
}

// MaxFactor bounds custom multipliers so scaled counts stay in memory.
const MaxFactor = 1000.0

// ParseScale resolves a scale name.
func ParseScale(name string) (Scale, error) {
	for _, s := range Scales() {
		if s.Name == name {
			return s, nil
		}
	}
	return Scale{}, fmt.Errorf("%w: unknown scale %q (want small, medium or large)", ErrInvalidArgument, name)
}

// CustomScale returns an unnamed scale with the given multiplier.
func CustomScale(factor float64) Scale {
	return Scale{Name: "x" + strconv.FormatFloat(factor, 'g', -1, 64), Factor: factor}
}

// Apply scales a base count, never returning less than 1.
func (s Scale) Apply(base int) int {
	n := int(math.Round(float64(base) * s.Factor))
	if n < 1 {
		return 1
	}
	return n
}

// ApplyCapped scales a base count and caps it at max, for counts bounded
// by a fixed catalog.
func (s Scale) ApplyCapped(base, max int) int {
	return min(s.Apply(base), max)
}

func (s Scale) String() string {
	return s.Name
}
