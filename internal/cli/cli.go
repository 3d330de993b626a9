//-------------------------------------------------------------------------
//
// pgEdge Data Lab
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for pgedge-datalab.
package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-datalab/internal/config"
	"github.com/pgEdge/pgedge-datalab/internal/datagen/profiles"
	"github.com/pgEdge/pgedge-datalab/internal/domains"
	"github.com/pgEdge/pgedge-datalab/internal/logging"
	"github.com/pgEdge/pgedge-datalab/pkg/version"
)

var (
	// Global flags
	cfgFile   string
	envFile   string
	driver    string
	storeDir  string
	dsn       string
	logLevel  string
	logFormat string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pgedge-datalab",
		Short: "Synthetic analytics datasets for five simulated companies",
		Long: `pgedge-datalab generates realistic, reproducible datasets for five
simulated companies (Amazon, Netflix, Uber, Airbnb and NYSE) and loads
them into relational stores for analytics practice.

Data is organised in five modules, each in its own store:
  bigdata    - full entity sets with rollups derived from them
  olap       - independently sampled aggregate tables
  processing - staging tables with ETL job runs and manifests
  features   - ML feature tables with trained model artifacts
  oltp       - small normalized transactional schemas

Every (module, domain) pair is populated in a single transaction and
skipped when it is already present, so commands can be re-run safely.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./pgedge-datalab.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "",
		"environment file loaded before the config (default: ./.env)")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "",
		"store driver: sqlite, postgres or mysql")
	rootCmd.PersistentFlags().StringVar(&storeDir, "dir", "",
		"directory holding the SQLite stores")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "",
		"PostgreSQL or MySQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log format (auto, pretty, json)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(populateCmd)
	rootCmd.AddCommand(populateAllCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(rebuildOLAPCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(domainsCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
}

func initConfig() error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if driver != "" {
		cfg.Store.Driver = driver
	}
	if storeDir != "" {
		cfg.Store.Dir = storeDir
	}
	if dsn != "" {
		cfg.Store.DSN = dsn
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the population units",
	Long: `List every (module, domain) population unit in population order,
with the simulated company and the tables the unit writes.`,
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MODULE\tDOMAIN\tCOMPANY\tDESCRIPTION")
		for _, u := range domains.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.Module(), u.Name(), u.Company(), u.Description())
		}
		_ = w.Flush()

		if verbose, _ := cmd.Flags().GetBool("tables"); verbose {
			cmd.Println()
			for _, u := range domains.All() {
				names := make([]string, len(u.Tables()))
				for i, t := range u.Tables() {
					names[i] = t.Name
				}
				cmd.Printf("%s/%s: %s\n", u.Module(), u.Name(), strings.Join(names, ", "))
			}
		}
	},
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the traffic curves used for timestamps",
	Long: `List the hour-of-day and weekday curves that shape generated
timestamps (ride commutes, evening viewing, retail hours, market hours).`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available traffic curves:")
		cmd.Println()
		for _, name := range profiles.List() {
			cmd.Printf("  %-10s - %s\n", name, profiles.MustGet(name).Description())
		}
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cfg.Dump(cmd.OutOrStdout())
	},
}

func init() {
	domainsCmd.Flags().Bool("tables", false, "also list the tables of every unit")
}
