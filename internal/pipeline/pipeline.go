//-------------------------------------------------------------------------
//
// pgEdge Data Lab
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package pipeline populates the module stores with generated datasets.
// Every unit (one domain within one module) is generated in memory and
// inserted in a single transaction together with its completion marker,
// so a unit is either fully present or absent. A unit whose marker or
// representative table already holds data is skipped.
//
// The pipeline is sequential. Two processes populating the same store
// at once may both pass the existence check and insert twice; there is
// no cross-process locking.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/domains"
	"github.com/pgEdge/pgedge-datalab/internal/logging"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
	"github.com/pgEdge/pgedge-datalab/internal/store"
)

// Exporter receives every committed dataset.
type Exporter interface {
	Export(module, domain string, ds *schema.Dataset) error
}

// Options configures a pipeline.
type Options struct {
	// Seed fixes the random stream. Each unit draws from its own stream
	// derived from Seed, so the rows of a unit do not depend on which
	// other units ran before it.
	Seed uint64

	// Scale multiplies the base row counts.
	Scale datagen.Scale

	// Batch bounds the rows per statement and paces progress logs.
	Batch datagen.BatchInsertConfig

	// Regenerate replaces a unit's rows and marker instead of skipping an
	// already populated unit. The old rows are kept if the run fails.
	Regenerate bool

	// Now anchors generated timestamps; zero means the current time.
	Now time.Time

	// Version is recorded in completion markers.
	Version string

	// Exporter, when set, receives a copy of every committed dataset.
	Exporter Exporter
}

// Pipeline populates units into their module stores.
type Pipeline struct {
	open    store.Opener
	opts    Options
	root    *datagen.Session
	stores  map[string]store.Store
	results []*Result
	started time.Time
}

// New creates a pipeline that opens module stores through open.
func New(open store.Opener, opts Options) *Pipeline {
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC().Truncate(time.Second)
	}
	if opts.Scale.Factor <= 0 {
		opts.Scale = datagen.Small
	}
	if opts.Batch.BatchSize < 1 {
		opts.Batch = datagen.DefaultBatchConfig()
	}
	return &Pipeline{
		open:    open,
		opts:    opts,
		root:    datagen.NewSession(opts.Seed, opts.Now),
		stores:  make(map[string]store.Store),
		started: time.Now(),
	}
}

// Store returns the store of a module, opening it on first use.
func (p *Pipeline) Store(ctx context.Context, module string) (store.Store, error) {
	if st, ok := p.stores[module]; ok {
		return st, nil
	}
	st, err := p.open(ctx, module)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", module, err)
	}
	if err := store.EnsureMetadata(ctx, st); err != nil {
		_ = st.Close()
		return nil, err
	}
	p.stores[module] = st
	return st, nil
}

// Close closes every store the pipeline opened.
func (p *Pipeline) Close() error {
	var errs []error
	for module, st := range p.stores {
		if err := st.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s store: %w", module, err))
		}
		delete(p.stores, module)
	}
	return errors.Join(errs...)
}

// prepare opens the unit's store and creates its tables.
func (p *Pipeline) prepare(ctx context.Context, u domains.Unit) (store.Store, error) {
	st, err := p.Store(ctx, u.Module())
	if err != nil {
		return nil, err
	}
	if err := store.CreateTables(ctx, st, u.Tables()); err != nil {
		return nil, err
	}
	return st, nil
}

// session returns the random stream of a unit.
func (p *Pipeline) session(u domains.Unit) *datagen.Session {
	return p.root.Fork(u.Module() + "/" + u.Name())
}

// Populate generates and stores one unit. An already populated unit is
// skipped without error unless Options.Regenerate is set. On failure
// nothing of the unit changes; the returned Result is non-nil either way.
func (p *Pipeline) Populate(ctx context.Context, u domains.Unit) (*Result, error) {
	return p.populateUnit(ctx, u, p.opts.Regenerate)
}

func (p *Pipeline) populateUnit(ctx context.Context, u domains.Unit, replace bool) (*Result, error) {
	log := logging.With("module", u.Module(), "domain", u.Name())
	r := newRun(u, log)

	err := p.populate(ctx, r, replace)
	res := r.result(err)
	p.results = append(p.results, res)

	if err != nil {
		log.Error().
			Err(err).
			Str("state", string(res.State)).
			Dur("duration", res.Duration).
			Msg("Population failed")
		return res, fmt.Errorf("failed to populate %s/%s: %w", u.Module(), u.Name(), err)
	}
	if res.Skipped {
		log.Info().
			Int64("rows", res.Total()).
			Msg("Already populated, skipping")
	} else {
		log.Info().
			Int64("rows", res.Total()).
			Dur("duration", res.Duration).
			Msg("Population complete")
	}
	return res, nil
}

// populate runs one unit through the state machine. With replace set the
// existence check is bypassed and the unit's previous rows are deleted in
// the insert transaction, so a failed run leaves them in place.
func (p *Pipeline) populate(ctx context.Context, r *run, replace bool) error {
	u := r.unit
	r.advance(CheckingExisting)
	st, err := p.prepare(ctx, u)
	var populated bool
	if err == nil && !replace {
		populated, err = p.populated(ctx, st, r)
	}
	if err != nil {
		r.advance(Failed)
		return err
	}
	if populated {
		r.advance(Skipped)
		r.advance(Done)
		return nil
	}

	r.advance(Generating)
	ds, err := u.Generate(p.session(u), p.opts.Scale)
	if err == nil {
		err = ds.Check()
	}
	if err != nil {
		r.advance(Failed)
		return fmt.Errorf("failed to generate: %w", err)
	}
	r.log.Debug().
		Int64("rows", ds.Len()).
		Int("tables", len(ds.Tables)).
		Msg("Generated dataset")

	r.advance(Inserting)
	if err := p.insert(ctx, st, r, ds, replace); err != nil {
		r.advance(Failed)
		return err
	}
	r.advance(Committed)
	r.rows = ds.Counts()

	if p.opts.Exporter != nil {
		if err := p.opts.Exporter.Export(u.Module(), u.Name(), ds); err != nil {
			r.log.Warn().Err(err).Msg("Export failed")
		}
	}
	r.advance(Done)
	return nil
}

// populated consults the unit's completion marker, then its probe table.
func (p *Pipeline) populated(ctx context.Context, st store.Store, r *run) (bool, error) {
	u := r.unit
	d := st.Dialect()
	m, err := store.LoadMarker(ctx, st, d, u.Name())
	if err != nil {
		return false, err
	}
	if m != nil {
		r.rows = m.Rows
		r.log.Debug().
			Time("completed_at", m.CompletedAt).
			Uint64("seed", m.Seed).
			Str("scale", m.Scale).
			Msg("Found completion marker")
		return true, nil
	}

	n, err := store.CountRows(ctx, st, d, u.Probe(), u.Company())
	if err != nil {
		return false, err
	}
	if n > 0 {
		r.rows = map[string]int64{u.Probe().Name: n}
		r.log.Warn().
			Str("table", u.Probe().Name).
			Int64("rows", n).
			Msg("Rows present without a completion marker")
		return true, nil
	}
	return false, nil
}

// insert writes the dataset and the unit's marker in one transaction.
// With replace set the unit's earlier rows and marker are deleted first,
// inside the same transaction.
func (p *Pipeline) insert(ctx context.Context, st store.Store, r *run, ds *schema.Dataset, replace bool) (err error) {
	u := r.unit
	d := st.Dialect()
	ordered, err := ds.Ordered()
	if err != nil {
		return err
	}

	tx, err := st.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			r.log.Warn().Err(rbErr).Msg("Rollback failed")
		} else {
			r.log.Debug().Msg("Rolled back")
		}
	}()

	if replace {
		if err = deleteUnit(ctx, tx, d, u); err != nil {
			return err
		}
		r.log.Debug().Msg("Deleted previous rows")
	}
	for _, td := range ordered {
		if err = insertTable(ctx, tx, d, td, p.opts.Batch, r.log); err != nil {
			return err
		}
	}

	marker := store.Marker{
		Module:      u.Module(),
		Domain:      u.Name(),
		Seed:        p.opts.Seed,
		Scale:       p.opts.Scale.String(),
		Version:     p.opts.Version,
		CompletedAt: time.Now().UTC(),
		Rows:        ds.Counts(),
	}
	if err = store.SaveMarker(ctx, tx, d, marker); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Reset deletes a unit's rows and completion marker in one transaction.
// Rows of shared tables are deleted for the unit's company only.
func (p *Pipeline) Reset(ctx context.Context, u domains.Unit) error {
	st, err := p.prepare(ctx, u)
	if err != nil {
		return err
	}
	if err := p.clear(ctx, st, u); err != nil {
		return fmt.Errorf("failed to reset %s/%s: %w", u.Module(), u.Name(), err)
	}
	return nil
}

func (p *Pipeline) clear(ctx context.Context, st store.Store, u domains.Unit) (err error) {
	d := st.Dialect()
	tx, err := st.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = deleteUnit(ctx, tx, d, u); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	logging.Info().
		Str("module", u.Module()).
		Str("domain", u.Name()).
		Msg("Cleared domain")
	return nil
}

// deleteUnit deletes the rows and marker of a unit, children first.
func deleteUnit(ctx context.Context, tx store.Tx, d schema.Dialect, u domains.Unit) error {
	sorted, err := schema.TopoSort(u.Tables())
	if err != nil {
		return err
	}
	for _, t := range schema.Reverse(sorted) {
		var args []any
		if t.Shared() {
			args = append(args, u.Company())
		}
		if err := tx.Exec(ctx, schema.DeleteSQL(d, t), args...); err != nil {
			return fmt.Errorf("failed to clear %s: %w", t.Name, err)
		}
	}
	return store.DeleteMetadata(ctx, tx, d, store.MarkerKey(u.Name()))
}

// PopulateModule populates every unit of a module in domain order. A
// failed unit does not stop the others; the failures are joined.
func (p *Pipeline) PopulateModule(ctx context.Context, module string) ([]*Result, error) {
	if err := domains.CheckModule(module); err != nil {
		return nil, err
	}
	var results []*Result
	var errs []error
	for _, u := range domains.ForModule(module) {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		res, err := p.Populate(ctx, u)
		results = append(results, res)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return results, errors.Join(errs...)
}

// PopulateAll populates the named modules, or every module when none is
// named, in module order. Module names are checked before any store is
// touched.
func (p *Pipeline) PopulateAll(ctx context.Context, modules []string) ([]*Result, error) {
	if len(modules) == 0 {
		modules = domains.Modules()
	}
	for _, m := range modules {
		if err := domains.CheckModule(m); err != nil {
			return nil, err
		}
	}

	var results []*Result
	var errs []error
	for _, m := range domains.Modules() {
		if !slices.Contains(modules, m) {
			continue
		}
		res, err := p.PopulateModule(ctx, m)
		results = append(results, res...)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return results, errors.Join(errs...)
}

// RebuildOLAP replaces every unit of the sampled OLAP module. Each unit
// is deleted and repopulated in one transaction.
func (p *Pipeline) RebuildOLAP(ctx context.Context) ([]*Result, error) {
	var results []*Result
	var errs []error
	for _, u := range domains.ForModule(domains.OLAP) {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		res, err := p.populateUnit(ctx, u, true)
		results = append(results, res)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return results, errors.Join(errs...)
}

// Summary totals the results of every unit the pipeline ran.
type Summary struct {
	Committed int
	Skipped   int
	Failed    int
	Rows      int64
	Duration  time.Duration
}

// Summary returns the totals so far.
func (p *Pipeline) Summary() Summary {
	s := Summary{Duration: time.Since(p.started)}
	for _, r := range p.results {
		switch {
		case r.State == Failed:
			s.Failed++
		case r.Skipped:
			s.Skipped++
		default:
			s.Committed++
			s.Rows += r.Total()
		}
	}
	return s
}

// PrintSummary logs the totals and one line per unit.
func (p *Pipeline) PrintSummary() {
	s := p.Summary()
	logging.Info().
		Dur("duration", s.Duration).
		Int("committed", s.Committed).
		Int("skipped", s.Skipped).
		Int("failed", s.Failed).
		Int64("rows", s.Rows).
		Msg("Final summary")

	for _, r := range p.results {
		ev := logging.Info()
		if r.Err != nil {
			ev = logging.Warn().Err(r.Err)
		}
		ev.Str("module", r.Module).
			Str("domain", r.Domain).
			Str("state", string(r.State)).
			Bool("skipped", r.Skipped).
			Int64("rows", r.Total()).
			Dur("duration", r.Duration).
			Msg("")
	}
}
