package cli

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-datalab/internal/domains"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
	"github.com/pgEdge/pgedge-datalab/internal/store"
)

var (
	schemaModule  string
	schemaDialect string
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the DDL of a module",
	Long: `Print the CREATE statements of every table of a module, parents
before children, in the chosen SQL dialect.

Example:
  pgedge-datalab schema --module processing --dialect postgres`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := schema.DialectFor(schemaDialect)
		if err != nil {
			return err
		}
		modules := domains.Modules()
		if schemaModule != "" {
			if err := domains.CheckModule(schemaModule); err != nil {
				return err
			}
			modules = []string{schemaModule}
		}

		for _, m := range modules {
			reg, err := domains.Schema(m)
			if err != nil {
				return err
			}
			stmts, err := schema.DDL(d, reg.Tables())
			if err != nil {
				return fmt.Errorf("failed to render %s schema: %w", m, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "-- module %s (%s)\n", m, d.Name())
			for _, stmt := range stmts {
				fmt.Fprintln(out, stmt+";")
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which domains each module store holds",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		opts := store.Options{Driver: cfg.Store.Driver, Dir: cfg.Store.Dir, DSN: cfg.Store.DSN}
		ctx := context.Background()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MODULE\tDOMAIN\tROWS\tSCALE\tSEED\tCOMPLETED")
		for _, m := range domains.Modules() {
			st, err := store.Open(ctx, opts, m)
			if err != nil {
				return err
			}
			if err := store.EnsureMetadata(ctx, st); err != nil {
				_ = st.Close()
				return err
			}
			markers, err := store.Markers(ctx, st)
			_ = st.Close()
			if err != nil {
				return err
			}

			names := make([]string, 0, len(markers))
			for name := range markers {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				mk := markers[name]
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%s\n",
					m, name, mk.Total(), mk.Scale, mk.Seed, mk.CompletedAt.Format("2006-01-02 15:04:05"))
			}
		}
		return w.Flush()
	},
}

func init() {
	schemaCmd.Flags().StringVar(&schemaModule, "module", "",
		"module to print (default: all)")
	schemaCmd.Flags().StringVar(&schemaDialect, "dialect", schema.SQLite,
		"SQL dialect: sqlite, postgres or mysql")
	rootCmd.AddCommand(statusCmd)
}
