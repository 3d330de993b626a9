// Package domains defines the population units and the registry that
// the domain packages register them in.
package domains

import (
	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Module names. Each module is populated into its own store.
const (
	BigData    = "bigdata"
	OLAP       = "olap"
	Processing = "processing"
	Features   = "features"
	OLTP       = "oltp"
)

// Domain names.
const (
	Ecommerce = "ecommerce"
	Streaming = "streaming"
	Mobility  = "mobility"
	Lodging   = "lodging"
	Exchange  = "exchange"
)

// Modules returns the module names in population order.
func Modules() []string {
	return []string{BigData, OLAP, Processing, Features, OLTP}
}

// Domains returns the domain names in population order.
func Domains() []string {
	return []string{Ecommerce, Streaming, Mobility, Lodging, Exchange}
}

// Unit generates the tables of one domain within one module. Every unit
// is populated in its own transaction.
type Unit interface {
	// Name returns the domain name (ecommerce, streaming, ...).
	Name() string

	// Company returns the simulated company (Amazon, Netflix, ...). It
	// is also the partition value of the unit's rows in shared tables.
	Company() string

	// Module returns the module the unit belongs to.
	Module() string

	// Description returns a human-readable description.
	Description() string

	// Tables returns every table the unit writes, parents first.
	Tables() []*schema.Table

	// Probe returns the representative table checked before population.
	Probe() *schema.Table

	// Generate builds the unit's rows at the given scale. It has no side
	// effects beyond consuming the session's random stream.
	Generate(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error)
}

// GenerateFunc builds the rows of a unit.
type GenerateFunc func(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error)

// Meta describes a unit.
type Meta struct {
	Domain      string
	Company     string
	Module      string
	Description string
	Tables      []*schema.Table
	Probe       *schema.Table
}

type unit struct {
	meta     Meta
	generate GenerateFunc
}

// New builds a Unit from its description and generator. When m.Probe is
// nil the first table is the probe.
func New(m Meta, generate GenerateFunc) Unit {
	if m.Probe == nil && len(m.Tables) > 0 {
		m.Probe = m.Tables[0]
	}
	return &unit{meta: m, generate: generate}
}

func (u *unit) Name() string            { return u.meta.Domain }
func (u *unit) Company() string         { return u.meta.Company }
func (u *unit) Module() string          { return u.meta.Module }
func (u *unit) Description() string     { return u.meta.Description }
func (u *unit) Tables() []*schema.Table { return u.meta.Tables }
func (u *unit) Probe() *schema.Table    { return u.meta.Probe }

func (u *unit) Generate(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
	return u.generate(s, scale)
}
