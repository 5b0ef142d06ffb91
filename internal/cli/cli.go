//-------------------------------------------------------------------------
//
// FastAndSafe Courier Data Warehouse
//
// Copyright (c) 2025 - 2026, FastAndSafe Logistics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for courier-dwh.
package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/fastandsafe/courier-dwh/internal/config"
	"github.com/fastandsafe/courier-dwh/internal/dims"
	"github.com/fastandsafe/courier-dwh/internal/logging"
	"github.com/fastandsafe/courier-dwh/pkg/version"
)

var (
	// Global flags
	cfgFile      string
	sourceConn   string
	warehousePth string
	logLevel     string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "courier-dwh",
		Short: "Dimensional warehouse loader for the FastAndSafe courier system",
		Long: `courier-dwh reads the operational courier database (PostgreSQL),
derives a star schema of dimensions and a service-state-change fact,
and loads it into an embedded DuckDB warehouse.

Every run is a full refresh: each table is rebuilt from the current
operational data, so re-running against an unchanged source produces
an identical warehouse.`,
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
		"config file (default: ./courier-dwh.yaml)")
	rootCmd.PersistentFlags().StringVar(&sourceConn, "source", "",
		"PostgreSQL connection string for the operational system")
	rootCmd.PersistentFlags().StringVar(&warehousePth, "warehouse", "",
		"DuckDB database path for the warehouse")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(tablesCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if sourceConn != "" {
		cfg.Source = sourceConn
	}
	if warehousePth != "" {
		cfg.Warehouse = warehousePth
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
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

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the warehouse tables and their load dependencies",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Warehouse tables:")
		cmd.Println()
		for _, b := range dims.All() {
			deps := b.DependsOn()
			if len(deps) == 0 {
				cmd.Printf("  %s\n", b.Name())
				continue
			}
			cmd.Printf("  %s (after %s)\n", b.Name(), strings.Join(deps, ", "))
		}
	},
}
