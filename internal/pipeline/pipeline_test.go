package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/domains"
	_ "github.com/pgEdge/pgedge-datalab/internal/domains/ecommerce"
	_ "github.com/pgEdge/pgedge-datalab/internal/domains/exchange"
	_ "github.com/pgEdge/pgedge-datalab/internal/domains/lodging"
	_ "github.com/pgEdge/pgedge-datalab/internal/domains/mobility"
	_ "github.com/pgEdge/pgedge-datalab/internal/domains/streaming"
	"github.com/pgEdge/pgedge-datalab/internal/pipeline"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
	"github.com/pgEdge/pgedge-datalab/internal/store"
	"github.com/pgEdge/pgedge-datalab/internal/testutil"
)

var anchor = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func options() pipeline.Options {
	return pipeline.Options{
		Seed:    42,
		Scale:   datagen.Small,
		Batch:   datagen.DefaultBatchConfig(),
		Now:     anchor,
		Version: "test",
	}
}

func newPipeline(t *testing.T, open store.Opener, opts pipeline.Options) *pipeline.Pipeline {
	t.Helper()
	p := pipeline.New(open, opts)
	t.Cleanup(func() {
		if err := p.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return p
}

func unit(t *testing.T, module, domain string) domains.Unit {
	t.Helper()
	u, err := domains.Get(module, domain)
	if err != nil {
		t.Fatalf("Get(%s, %s) error = %v", module, domain, err)
	}
	return u
}

// countPartition counts the rows of a shared table for one company.
func countPartition(t *testing.T, s store.Store, table, company string) int64 {
	t.Helper()
	d := s.Dialect()
	var n int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = %s", d.Quote(table), d.Quote("company"), d.Placeholder(1))
	if err := s.QueryRow(context.Background(), query, company).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

func TestPopulateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	opts := testutil.SQLiteOptions(t)
	u := unit(t, domains.BigData, domains.Ecommerce)

	p := newPipeline(t, store.OpenerFor(opts), options())
	first, err := p.Populate(ctx, u)
	if err != nil {
		t.Fatalf("Populate() error = %v", err)
	}
	wantPath := []pipeline.State{
		pipeline.NotStarted, pipeline.CheckingExisting, pipeline.Generating,
		pipeline.Inserting, pipeline.Committed, pipeline.Done,
	}
	if !slices.Equal(first.Path, wantPath) {
		t.Errorf("first Path = %v, want %v", first.Path, wantPath)
	}
	if first.Skipped {
		t.Error("first run reported skipped")
	}

	second, err := p.Populate(ctx, u)
	if err != nil {
		t.Fatalf("second Populate() error = %v", err)
	}
	wantPath = []pipeline.State{pipeline.NotStarted, pipeline.CheckingExisting, pipeline.Skipped, pipeline.Done}
	if !slices.Equal(second.Path, wantPath) {
		t.Errorf("second Path = %v, want %v", second.Path, wantPath)
	}
	if second.Total() != first.Total() {
		t.Errorf("marker rows = %d, want %d", second.Total(), first.Total())
	}

	s := testutil.OpenStore(t, opts, domains.BigData)
	for table, want := range first.Rows {
		if got := testutil.Count(t, s, table); got != want {
			t.Errorf("%s has %d rows, want %d", table, got, want)
		}
	}

	m, err := store.LoadMarker(ctx, s, s.Dialect(), domains.Ecommerce)
	if err != nil {
		t.Fatalf("LoadMarker() error = %v", err)
	}
	if m == nil {
		t.Fatal("LoadMarker() = nil, want marker")
	}
	if m.Seed != 42 || m.Scale != "small" || m.Version != "test" {
		t.Errorf("marker = %+v", m)
	}
}

func TestPopulateSkipsExistingRows(t *testing.T) {
	ctx := context.Background()
	opts := testutil.SQLiteOptions(t)
	u := unit(t, domains.BigData, domains.Ecommerce)

	p := newPipeline(t, store.OpenerFor(opts), options())
	if _, err := p.Populate(ctx, u); err != nil {
		t.Fatalf("Populate() error = %v", err)
	}

	s, err := p.Store(ctx, domains.BigData)
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := store.DeleteMetadata(ctx, s, s.Dialect(), store.MarkerKey(domains.Ecommerce)); err != nil {
		t.Fatalf("DeleteMetadata() error = %v", err)
	}
	before := testutil.Count(t, s, "amazon_orders")

	res, err := p.Populate(ctx, u)
	if err != nil {
		t.Fatalf("Populate() error = %v", err)
	}
	if !res.Skipped {
		t.Errorf("Path = %v, want skip", res.Path)
	}
	if got := testutil.Count(t, s, "amazon_orders"); got != before {
		t.Errorf("amazon_orders has %d rows, want %d", got, before)
	}
}

func TestPopulateIsDeterministic(t *testing.T) {
	ctx := context.Background()
	u := unit(t, domains.OLAP, domains.Streaming)

	var totals []int64
	var firsts []string
	for range 2 {
		opts := testutil.SQLiteOptions(t)
		p := newPipeline(t, store.OpenerFor(opts), options())
		res, err := p.Populate(ctx, u)
		if err != nil {
			t.Fatalf("Populate() error = %v", err)
		}
		totals = append(totals, res.Total())

		s, err := p.Store(ctx, domains.OLAP)
		if err != nil {
			t.Fatalf("Store() error = %v", err)
		}
		values, err := store.StringColumn(ctx, s, "agg_netflix_hourly_engagement", "content_id")
		if err != nil {
			t.Fatalf("StringColumn() error = %v", err)
		}
		firsts = append(firsts, strings.Join(values, ","))
	}
	if totals[0] != totals[1] {
		t.Errorf("totals differ: %v", totals)
	}
	if firsts[0] != firsts[1] {
		t.Error("same seed produced different rows")
	}
}

// failingStore fails every INSERT into one table.
type failingStore struct {
	store.Store
	table string
}

func (s *failingStore) Begin(ctx context.Context) (store.Tx, error) {
	tx, err := s.Store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &failingTx{Tx: tx, table: s.table}, nil
}

type failingTx struct {
	store.Tx
	table string
}

var errInjected = errors.New("injected failure")

func (tx *failingTx) Exec(ctx context.Context, sql string, args ...any) error {
	if strings.HasPrefix(sql, "INSERT INTO") && strings.Contains(sql, tx.table) {
		return errInjected
	}
	return tx.Tx.Exec(ctx, sql, args...)
}

func failingOpener(opts store.Options, module, table string) store.Opener {
	return func(ctx context.Context, m string) (store.Store, error) {
		s, err := store.Open(ctx, opts, m)
		if err != nil || m != module {
			return s, err
		}
		return &failingStore{Store: s, table: table}, nil
	}
}

func TestPopulateIsAtomic(t *testing.T) {
	ctx := context.Background()
	opts := testutil.SQLiteOptions(t)
	u := unit(t, domains.BigData, domains.Ecommerce)

	p := newPipeline(t, failingOpener(opts, domains.BigData, `"amazon_order_items"`), options())
	res, err := p.Populate(ctx, u)
	if !errors.Is(err, errInjected) {
		t.Fatalf("Populate() error = %v, want injected failure", err)
	}
	if res.State != pipeline.Failed {
		t.Errorf("State = %s, want %s", res.State, pipeline.Failed)
	}
	if res.Path[len(res.Path)-2] != pipeline.Inserting {
		t.Errorf("Path = %v, want failure while inserting", res.Path)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s := testutil.OpenStore(t, opts, domains.BigData)
	for _, table := range u.Tables() {
		if n := testutil.Count(t, s, table.Name); n != 0 {
			t.Errorf("%s has %d rows after rollback", table.Name, n)
		}
	}
	m, err := store.LoadMarker(ctx, s, s.Dialect(), domains.Ecommerce)
	if err != nil {
		t.Fatalf("LoadMarker() error = %v", err)
	}
	if m != nil {
		t.Error("marker saved for a failed unit")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	retry := newPipeline(t, store.OpenerFor(opts), options())
	res, err = retry.Populate(ctx, u)
	if err != nil {
		t.Fatalf("retry Populate() error = %v", err)
	}
	if res.Skipped || res.State != pipeline.Done {
		t.Errorf("retry Path = %v, want a committed run", res.Path)
	}
}

func TestPopulateModuleContinuesAfterFailure(t *testing.T) {
	ctx := context.Background()
	opts := testutil.SQLiteOptions(t)

	p := newPipeline(t, failingOpener(opts, domains.Processing, `"staging_uber_rides"`), options())
	results, err := p.PopulateModule(ctx, domains.Processing)
	if !errors.Is(err, errInjected) {
		t.Fatalf("PopulateModule() error = %v, want injected failure", err)
	}
	if len(results) != len(domains.Domains()) {
		t.Fatalf("got %d results, want %d", len(results), len(domains.Domains()))
	}
	for _, res := range results {
		want := pipeline.Done
		if res.Domain == domains.Mobility {
			want = pipeline.Failed
		}
		if res.State != want {
			t.Errorf("%s State = %s, want %s", res.Domain, res.State, want)
		}
	}

	s, err := p.Store(ctx, domains.Processing)
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if n := countPartition(t, s, "processing_jobs", "Uber"); n != 0 {
		t.Errorf("processing_jobs holds %d Uber rows after rollback", n)
	}
	if n := countPartition(t, s, "processing_jobs", "Netflix"); n == 0 {
		t.Error("processing_jobs holds no Netflix rows")
	}

	sum := p.Summary()
	if sum.Committed != 4 || sum.Failed != 1 || sum.Skipped != 0 {
		t.Errorf("Summary() = %+v", sum)
	}
}

func TestPopulateAll(t *testing.T) {
	ctx := context.Background()
	opts := testutil.SQLiteOptions(t)
	p := newPipeline(t, store.OpenerFor(opts), options())
	results, err := p.PopulateAll(ctx, []string{domains.Features, domains.OLAP})
	if err != nil {
		t.Fatalf("PopulateAll() error = %v", err)
	}
	if len(results) != 2*len(domains.Domains()) {
		t.Fatalf("got %d results, want %d", len(results), 2*len(domains.Domains()))
	}
	// Modules run in population order whatever order they were named in.
	if results[0].Module != domains.OLAP || results[len(results)-1].Module != domains.Features {
		t.Errorf("order = %s ... %s", results[0].Module, results[len(results)-1].Module)
	}

	s, err := p.Store(ctx, domains.Features)
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	markers, err := store.Markers(ctx, s)
	if err != nil {
		t.Fatalf("Markers() error = %v", err)
	}
	if len(markers) != len(domains.Domains()) {
		t.Errorf("got %d markers, want %d", len(markers), len(domains.Domains()))
	}
	for _, company := range []string{"Amazon", "Netflix", "Uber", "Airbnb", "NYSE"} {
		if n := countPartition(t, s, "model_artifacts", company); n == 0 {
			t.Errorf("model_artifacts holds no %s rows", company)
		}
	}
}

func TestPopulateOLTPModule(t *testing.T) {
	ctx := context.Background()
	opts := testutil.SQLiteOptions(t)
	p := newPipeline(t, store.OpenerFor(opts), options())
	results, err := p.PopulateModule(ctx, domains.OLTP)
	if err != nil {
		t.Fatalf("PopulateModule() error = %v", err)
	}
	if len(results) != len(domains.Domains()) {
		t.Fatalf("got %d results, want %d", len(results), len(domains.Domains()))
	}
	for _, r := range results {
		if r.State != pipeline.Done {
			t.Errorf("%s/%s state = %s, want done", r.Module, r.Domain, r.State)
		}
	}

	s, err := p.Store(ctx, domains.OLTP)
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	tests := []struct {
		table string
		want  int64
	}{
		{"amazon_shipments", 120},
		{"netflix_views", 300},
		{"uber_payments", 200},
		{"airbnb_bookings", 120},
		{"nyse_orders", 200},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			if n := testutil.Count(t, s, tt.table); n != tt.want {
				t.Errorf("%s = %d rows, want %d", tt.table, n, tt.want)
			}
		})
	}

	// Every execution points at an order of an existing account.
	var orphans int64
	query := `SELECT COUNT(*) FROM nyse_transactions t
		LEFT JOIN nyse_orders o ON o.order_id = t.order_id
		LEFT JOIN nyse_accounts a ON a.account_id = o.account_id
		WHERE a.account_id IS NULL`
	if err := s.QueryRow(ctx, query).Scan(&orphans); err != nil {
		t.Fatalf("Failed to join the nyse chain: %v", err)
	}
	if orphans != 0 {
		t.Errorf("%d nyse_transactions rows do not reach an account", orphans)
	}
}

func TestPopulateAllUnknownModule(t *testing.T) {
	opts := testutil.SQLiteOptions(t)
	opened := false
	open := func(ctx context.Context, module string) (store.Store, error) {
		opened = true
		return store.Open(ctx, opts, module)
	}

	p := newPipeline(t, open, options())
	_, err := p.PopulateAll(context.Background(), []string{domains.OLAP, "warehouse"})
	if !errors.Is(err, domains.ErrUnknownDomain) {
		t.Errorf("PopulateAll() error = %v, want ErrUnknownDomain", err)
	}
	if opened {
		t.Error("a store was opened before module names were checked")
	}
}

func TestPopulateModuleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newPipeline(t, store.OpenerFor(testutil.SQLiteOptions(t)), options())
	results, err := p.PopulateModule(ctx, domains.OLAP)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("PopulateModule() error = %v, want context.Canceled", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want none", len(results))
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	opts := testutil.SQLiteOptions(t)
	p := newPipeline(t, store.OpenerFor(opts), options())

	for _, d := range []string{domains.Ecommerce, domains.Exchange} {
		if _, err := p.Populate(ctx, unit(t, domains.Processing, d)); err != nil {
			t.Fatalf("Populate(%s) error = %v", d, err)
		}
	}
	if err := p.Reset(ctx, unit(t, domains.Processing, domains.Ecommerce)); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	s, err := p.Store(ctx, domains.Processing)
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if n := testutil.Count(t, s, "staging_amazon_orders"); n != 0 {
		t.Errorf("staging_amazon_orders has %d rows after reset", n)
	}
	if n := countPartition(t, s, "processing_jobs", "Amazon"); n != 0 {
		t.Errorf("processing_jobs holds %d Amazon rows after reset", n)
	}
	if n := countPartition(t, s, "processing_jobs", "NYSE"); n == 0 {
		t.Error("reset removed rows of another company")
	}
	m, err := store.LoadMarker(ctx, s, s.Dialect(), domains.Ecommerce)
	if err != nil || m != nil {
		t.Errorf("LoadMarker() = %v, %v; want nil, nil", m, err)
	}

	res, err := p.Populate(ctx, unit(t, domains.Processing, domains.Ecommerce))
	if err != nil {
		t.Fatalf("Populate() after reset error = %v", err)
	}
	if res.Skipped {
		t.Error("unit skipped after reset")
	}
}

func TestRegenerate(t *testing.T) {
	ctx := context.Background()
	opts := testutil.SQLiteOptions(t)
	u := unit(t, domains.Processing, domains.Lodging)

	p := newPipeline(t, store.OpenerFor(opts), options())
	first, err := p.Populate(ctx, u)
	if err != nil {
		t.Fatalf("Populate() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	o := options()
	o.Regenerate = true
	again := newPipeline(t, store.OpenerFor(opts), o)
	second, err := again.Populate(ctx, u)
	if err != nil {
		t.Fatalf("regenerate Populate() error = %v", err)
	}
	if second.Skipped {
		t.Error("regenerate skipped the unit")
	}

	s, err := again.Store(ctx, domains.Processing)
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	for table, want := range first.Rows {
		var got int64
		if strings.HasPrefix(table, "staging_") {
			got = testutil.Count(t, s, table)
		} else {
			got = countPartition(t, s, table, "Airbnb")
		}
		if got != want {
			t.Errorf("%s has %d rows, want %d", table, got, want)
		}
	}
}

func TestRegenerateKeepsRowsOnFailure(t *testing.T) {
	ctx := context.Background()
	opts := testutil.SQLiteOptions(t)
	u := unit(t, domains.Processing, domains.Lodging)

	p := newPipeline(t, store.OpenerFor(opts), options())
	first, err := p.Populate(ctx, u)
	if err != nil {
		t.Fatalf("Populate() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	o := options()
	o.Regenerate = true
	o.Seed = 7
	again := newPipeline(t, failingOpener(opts, domains.Processing, `"staging_airbnb_reservations"`), o)
	res, err := again.Populate(ctx, u)
	if !errors.Is(err, errInjected) {
		t.Fatalf("regenerate Populate() error = %v, want injected failure", err)
	}
	if res.State != pipeline.Failed {
		t.Errorf("State = %s, want %s", res.State, pipeline.Failed)
	}

	s, err := again.Store(ctx, domains.Processing)
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if got, want := testutil.Count(t, s, "staging_airbnb_reservations"), first.Rows["staging_airbnb_reservations"]; got != want {
		t.Errorf("staging_airbnb_reservations has %d rows, want %d", got, want)
	}
	if n := countPartition(t, s, "processing_jobs", "Airbnb"); n != first.Rows["processing_jobs"] {
		t.Errorf("processing_jobs holds %d Airbnb rows, want %d", n, first.Rows["processing_jobs"])
	}
	m, err := store.LoadMarker(ctx, s, s.Dialect(), domains.Lodging)
	if err != nil {
		t.Fatalf("LoadMarker() error = %v", err)
	}
	if m == nil || m.Seed != 42 {
		t.Errorf("marker = %+v, want the first run's marker", m)
	}
}

func TestRebuildOLAP(t *testing.T) {
	ctx := context.Background()
	opts := testutil.SQLiteOptions(t)
	p := newPipeline(t, store.OpenerFor(opts), options())

	if _, err := p.PopulateModule(ctx, domains.OLAP); err != nil {
		t.Fatalf("PopulateModule() error = %v", err)
	}
	s, err := p.Store(ctx, domains.OLAP)
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	before := testutil.Count(t, s, "agg_nyse_minute_ohlc")

	results, err := p.RebuildOLAP(ctx)
	if err != nil {
		t.Fatalf("RebuildOLAP() error = %v", err)
	}
	for _, res := range results {
		if res.Skipped {
			t.Errorf("%s was skipped", res.Domain)
		}
	}
	if got := testutil.Count(t, s, "agg_nyse_minute_ohlc"); got != before {
		t.Errorf("agg_nyse_minute_ohlc has %d rows, want %d", got, before)
	}
}

type recordingExporter struct {
	calls []string
}

func (e *recordingExporter) Export(module, domain string, ds *schema.Dataset) error {
	e.calls = append(e.calls, module+"/"+domain)
	return nil
}

func TestExporterRunsOnCommit(t *testing.T) {
	ctx := context.Background()
	exp := &recordingExporter{}
	o := options()
	o.Exporter = exp

	p := newPipeline(t, store.OpenerFor(testutil.SQLiteOptions(t)), o)
	u := unit(t, domains.OLAP, domains.Mobility)
	for range 2 {
		if _, err := p.Populate(ctx, u); err != nil {
			t.Fatalf("Populate() error = %v", err)
		}
	}
	if want := []string{"olap/mobility"}; !slices.Equal(exp.calls, want) {
		t.Errorf("exports = %v, want %v", exp.calls, want)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to pipeline.State
		want     bool
	}{
		{pipeline.NotStarted, pipeline.CheckingExisting, true},
		{pipeline.CheckingExisting, pipeline.Skipped, true},
		{pipeline.CheckingExisting, pipeline.Generating, true},
		{pipeline.Skipped, pipeline.Done, true},
		{pipeline.Generating, pipeline.Inserting, true},
		{pipeline.Inserting, pipeline.Committed, true},
		{pipeline.Inserting, pipeline.Failed, true},
		{pipeline.Committed, pipeline.Done, true},
		{pipeline.NotStarted, pipeline.Generating, false},
		{pipeline.Skipped, pipeline.Generating, false},
		{pipeline.Generating, pipeline.Committed, false},
		{pipeline.Committed, pipeline.Failed, false},
		{pipeline.Done, pipeline.NotStarted, false},
		{pipeline.Failed, pipeline.CheckingExisting, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s->%s", tt.from, tt.to), func(t *testing.T) {
			if got := pipeline.CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition() = %v, want %v", got, tt.want)
			}
		})
	}

	for _, s := range []pipeline.State{pipeline.Done, pipeline.Failed} {
		if !s.Terminal() {
			t.Errorf("%s is not terminal", s)
		}
	}
	if pipeline.Inserting.Terminal() {
		t.Error("INSERTING is terminal")
	}
}
