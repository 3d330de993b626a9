package domains

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// ErrUnknownDomain is returned when a unit lookup fails.
var ErrUnknownDomain = errors.New("unknown domain")

var (
	registry = make(map[string]Unit)
	mu       sync.RWMutex
)

func key(module, domain string) string {
	return module + "/" + domain
}

// Register adds a unit to the registry.
func Register(u Unit) {
	mu.Lock()
	defer mu.Unlock()
	registry[key(u.Module(), u.Name())] = u
}

// Get retrieves the unit of a module by domain or company name.
func Get(module, name string) (Unit, error) {
	mu.RLock()
	defer mu.RUnlock()

	if u, ok := registry[key(module, name)]; ok {
		return u, nil
	}
	for _, u := range registry {
		if u.Module() == module && strings.EqualFold(u.Company(), name) {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrUnknownDomain, module, name)
}

// ForModule returns the units of a module in population order.
func ForModule(module string) []Unit {
	mu.RLock()
	defer mu.RUnlock()

	var units []Unit
	for _, d := range Domains() {
		if u, ok := registry[key(module, d)]; ok {
			units = append(units, u)
		}
	}
	return units
}

// All returns every registered unit, module by module.
func All() []Unit {
	var units []Unit
	for _, m := range Modules() {
		units = append(units, ForModule(m)...)
	}
	return units
}

// List returns the registered "module/domain" names in population order.
func List() []string {
	var names []string
	for _, u := range All() {
		names = append(names, key(u.Module(), u.Name()))
	}
	return names
}

// CheckModule fails unless module is a known module name.
func CheckModule(module string) error {
	if !slices.Contains(Modules(), module) {
		return fmt.Errorf("%w: module %q (want one of %s)", ErrUnknownDomain, module, strings.Join(Modules(), ", "))
	}
	return nil
}

// Schema returns the tables of every unit of a module. Tables shared by
// several units appear once.
func Schema(module string) (*schema.Registry, error) {
	reg, err := schema.NewRegistry()
	if err != nil {
		return nil, err
	}
	for _, u := range ForModule(module) {
		for _, t := range u.Tables() {
			if err := reg.Register(t); err != nil {
				return nil, fmt.Errorf("%s/%s: %w", module, u.Name(), err)
			}
		}
	}
	if err := reg.Check(); err != nil {
		return nil, err
	}
	return reg, nil
}
