package datagen

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a row count, parent-key list or
	// distribution parameter a generator cannot work with.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrKeyCollision reports that composite-key sampling could not find
	// an unused key within its retry budget.
	ErrKeyCollision = errors.New("key collision")
)

// RequireCount fails with ErrInvalidArgument unless n is positive.
func RequireCount(entity string, n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %s count must be positive, got %d", ErrInvalidArgument, entity, n)
	}
	return nil
}

// RequireKeys fails with ErrInvalidArgument when a parent-key list needed
// for foreign-key sampling is empty.
func RequireKeys(parent string, keys []string) error {
	if len(keys) == 0 {
		return fmt.Errorf("%w: no %s keys to reference", ErrInvalidArgument, parent)
	}
	return nil
}
