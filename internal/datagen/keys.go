package datagen

import (
	"fmt"
	"strings"
)

// KeySet records composite keys that have already been emitted.
type KeySet struct {
	seen map[string]struct{}
}

// NewKeySet creates an empty key set.
func NewKeySet() *KeySet {
	return &KeySet{seen: make(map[string]struct{})}
}

// Claim records the key made of parts and reports whether it was unused.
func (k *KeySet) Claim(parts ...string) bool {
	key := strings.Join(parts, "\x1f")
	if _, ok := k.seen[key]; ok {
		return false
	}
	k.seen[key] = struct{}{}
	return true
}

// Len returns the number of claimed keys.
func (k *KeySet) Len() int {
	return len(k.seen)
}

// DefaultKeyAttempts bounds the redraws spent on one row before a
// composite key sampler gives up.
const DefaultKeyAttempts = 200

// SampleUnique draws n items whose keys are pairwise distinct. draw
// returns an item together with its key parts; a colliding draw is
// discarded and retried. It fails with ErrKeyCollision when one row
// needs more than maxAttempts draws.
func SampleUnique[T any](n, maxAttempts int, draw func() (T, []string)) ([]T, error) {
	if err := RequireCount("row", n); err != nil {
		return nil, err
	}
	if maxAttempts < 1 {
		maxAttempts = DefaultKeyAttempts
	}

	keys := NewKeySet()
	out := make([]T, 0, n)
	for len(out) < n {
		claimed := false
		for attempt := 0; attempt < maxAttempts; attempt++ {
			item, parts := draw()
			if keys.Claim(parts...) {
				out = append(out, item)
				claimed = true
				break
			}
		}
		if !claimed {
			return out, fmt.Errorf("%w: no unused key after %d attempts (%d of %d rows drawn)",
				ErrKeyCollision, maxAttempts, len(out), n)
		}
	}
	return out, nil
}
