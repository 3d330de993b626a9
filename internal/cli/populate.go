package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/domains"
	"github.com/pgEdge/pgedge-datalab/internal/export"
	"github.com/pgEdge/pgedge-datalab/internal/logging"
	"github.com/pgEdge/pgedge-datalab/internal/pipeline"
	"github.com/pgEdge/pgedge-datalab/internal/store"
	"github.com/pgEdge/pgedge-datalab/pkg/version"
)

var (
	popModule      string
	popDomain      string
	popModules     []string
	popScale       string
	popScaleFactor float64
	popSeed        uint64
	popBatchSize   int
	popRegenerate  bool
	popExportDir   string
)

var populateCmd = &cobra.Command{
	Use:   "populate",
	Short: "Populate one domain of one module",
	Long: `Generate the dataset of one domain within one module and insert it
in a single transaction. A domain that is already populated is skipped
unless --regenerate is given.

Example:
  pgedge-datalab populate --module bigdata --domain ecommerce --scale medium
  pgedge-datalab populate --module olap --domain NYSE --seed 7`,
	RunE: runPopulate,
}

var populateAllCmd = &cobra.Command{
	Use:   "populate-all",
	Short: "Populate every domain of every module",
	Long: `Populate every module (bigdata, olap, processing, features, oltp) and,
within each, every domain (ecommerce, streaming, mobility, lodging,
exchange) in that order. A failed domain does not stop the run; the
command exits non-zero when any domain failed.

Example:
  pgedge-datalab populate-all --scale small
  pgedge-datalab populate-all --modules bigdata,features --driver postgres --dsn "postgres://..."`,
	RunE: runPopulateAll,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the rows and completion marker of one domain",
	Long: `Delete every row one domain wrote to a module, together with its
completion marker, in one transaction. Rows other domains wrote to
shared tables are kept.`,
	RunE: runReset,
}

var rebuildOLAPCmd = &cobra.Command{
	Use:   "rebuild-olap",
	Short: "Clear and repopulate the sampled OLAP module",
	RunE:  runRebuildOLAP,
}

func init() {
	for _, cmd := range []*cobra.Command{populateCmd, populateAllCmd, rebuildOLAPCmd} {
		cmd.Flags().StringVar(&popScale, "scale", "",
			"dataset scale: small, medium or large")
		cmd.Flags().Float64Var(&popScaleFactor, "scale-factor", 0,
			"custom scale multiplier (overrides --scale)")
		cmd.Flags().Uint64Var(&popSeed, "seed", 0,
			"random seed (default: from config, 42)")
		cmd.Flags().IntVar(&popBatchSize, "batch-size", 0,
			"maximum rows per INSERT statement")
		cmd.Flags().StringVar(&popExportDir, "export-dir", "",
			"also write committed tables as Parquet files under this directory")
	}
	for _, cmd := range []*cobra.Command{populateCmd, populateAllCmd} {
		cmd.Flags().BoolVar(&popRegenerate, "regenerate", false,
			"clear existing rows of a domain before populating it")
	}
	for _, cmd := range []*cobra.Command{populateCmd, resetCmd} {
		cmd.Flags().StringVar(&popModule, "module", "",
			"module: bigdata, olap, processing, features or oltp")
		cmd.Flags().StringVar(&popDomain, "domain", "",
			"domain or company: ecommerce/Amazon, streaming/Netflix, mobility/Uber, lodging/Airbnb, exchange/NYSE")
		_ = cmd.MarkFlagRequired("module")
		_ = cmd.MarkFlagRequired("domain")
	}
	populateAllCmd.Flags().StringSliceVar(&popModules, "modules", nil,
		"limit the run to these modules (default: all)")
}

// applyPopulateFlags overrides the config with populate flags.
func applyPopulateFlags(cmd *cobra.Command) {
	if popScale != "" {
		cfg.Scale = popScale
		cfg.ScaleFactor = 0
	}
	if popScaleFactor > 0 {
		cfg.ScaleFactor = popScaleFactor
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = popSeed
	}
	if popBatchSize > 0 {
		cfg.Populate.BatchSize = popBatchSize
	}
	if popRegenerate {
		cfg.Populate.Regenerate = true
	}
	if popExportDir != "" {
		cfg.Populate.ExportDir = popExportDir
	}
	if len(popModules) > 0 {
		cfg.Populate.Modules = popModules
	}
}

// newPipeline validates the config and builds a pipeline from it. No
// store is opened here.
func newPipeline() (*pipeline.Pipeline, error) {
	if err := cfg.ValidatePopulate(); err != nil {
		return nil, err
	}
	scale, err := cfg.ResolveScale()
	if err != nil {
		return nil, err
	}

	opts := pipeline.Options{
		Seed:  cfg.Seed,
		Scale: scale,
		Batch: datagen.BatchInsertConfig{
			BatchSize:        cfg.Populate.BatchSize,
			ProgressInterval: cfg.Populate.ProgressInterval,
		},
		Regenerate: cfg.Populate.Regenerate,
		Version:    version.Short(),
	}
	if cfg.Populate.ExportDir != "" {
		opts.Exporter = export.NewParquet(cfg.Populate.ExportDir)
	}

	logging.Info().
		Str("driver", cfg.Store.Driver).
		Str("scale", scale.String()).
		Uint64("seed", cfg.Seed).
		Bool("regenerate", opts.Regenerate).
		Msg("Starting population")

	return pipeline.New(store.OpenerFor(store.Options{
		Driver: cfg.Store.Driver,
		Dir:    cfg.Store.Dir,
		DSN:    cfg.Store.DSN,
	}), opts), nil
}

// signalContext is cancelled on SIGINT or SIGTERM. The unit in flight
// is rolled back and the remaining units are not started.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			logging.Info().
				Str("signal", sig.String()).
				Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

func runPopulate(cmd *cobra.Command, args []string) error {
	applyPopulateFlags(cmd)

	u, err := domains.Get(popModule, popDomain)
	if err != nil {
		return err
	}
	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer closePipeline(p)

	ctx, cancel := signalContext()
	defer cancel()

	if _, err := p.Populate(ctx, u); err != nil {
		return err
	}
	p.PrintSummary()
	return nil
}

func runPopulateAll(cmd *cobra.Command, args []string) error {
	applyPopulateFlags(cmd)

	for _, m := range cfg.Populate.Modules {
		if err := domains.CheckModule(m); err != nil {
			return err
		}
	}
	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer closePipeline(p)

	ctx, cancel := signalContext()
	defer cancel()

	_, err = p.PopulateAll(ctx, cfg.Populate.Modules)
	p.PrintSummary()
	if err != nil {
		if s := p.Summary(); s.Failed > 0 {
			return fmt.Errorf("%d of %d domains failed: %w", s.Failed, s.Committed+s.Skipped+s.Failed, err)
		}
		return err
	}
	logging.Info().Msg("Population complete")
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	u, err := domains.Get(popModule, popDomain)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	p := pipeline.New(store.OpenerFor(store.Options{
		Driver: cfg.Store.Driver,
		Dir:    cfg.Store.Dir,
		DSN:    cfg.Store.DSN,
	}), pipeline.Options{})
	defer closePipeline(p)

	return p.Reset(context.Background(), u)
}

func runRebuildOLAP(cmd *cobra.Command, args []string) error {
	applyPopulateFlags(cmd)

	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer closePipeline(p)

	ctx, cancel := signalContext()
	defer cancel()

	_, err = p.RebuildOLAP(ctx)
	p.PrintSummary()
	return err
}

func closePipeline(p *pipeline.Pipeline) {
	if err := p.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close stores")
	}
}
