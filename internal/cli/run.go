//-------------------------------------------------------------------------
//
// FastAndSafe Courier Data Warehouse
//
// Copyright (c) 2025 - 2026, FastAndSafe Logistics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fastandsafe/courier-dwh/internal/dims"
	"github.com/fastandsafe/courier-dwh/internal/etl"
	"github.com/fastandsafe/courier-dwh/internal/logging"
	"github.com/fastandsafe/courier-dwh/internal/source"
	"github.com/fastandsafe/courier-dwh/internal/warehouse"
)

var (
	runCalendarStart string
	runCalendarEnd   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load the warehouse from the operational database",
	Long: `Run a full warehouse load: extract the operational courier data,
build every dimension and the service-state-change fact, and replace
the warehouse tables.

Tables load in dependency order; each table is replaced atomically.
A failing table aborts the run, leaving the remaining tables at their
previous contents.

Example:
  courier-dwh run --source "postgres://..." --warehouse fastandsafe_dw.duckdb`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runCalendarStart, "calendar-start", "",
		"first day of the calendar dimension (2006-01-02)")
	runCmd.Flags().StringVar(&runCalendarEnd, "calendar-end", "",
		"last day of the calendar dimension (2006-01-02)")
}

func runRun(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if runCalendarStart != "" {
		cfg.Calendar.Start = runCalendarStart
	}
	if runCalendarEnd != "" {
		cfg.Calendar.End = runCalendarEnd
	}

	// Validate configuration
	if err := cfg.ValidateRun(); err != nil {
		return err
	}

	calStart, err := etl.ParseDate(cfg.Calendar.Start)
	if err != nil {
		return err
	}
	calEnd, err := etl.ParseDate(cfg.Calendar.End)
	if err != nil {
		return err
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logging.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	}()

	db, err := source.Connect(ctx, cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to connect to operational database: %w", err)
	}
	defer db.Close()

	store, err := warehouse.Open(cfg.Warehouse)
	if err != nil {
		return fmt.Errorf("failed to open warehouse: %w", err)
	}
	defer store.Close()

	order, err := etl.Order(dims.Steps())
	if err != nil {
		return err
	}

	env := dims.Env{
		Source:        db,
		Warehouse:     store,
		CalendarStart: calStart,
		CalendarEnd:   calEnd,
	}

	logging.Info().
		Str("warehouse", cfg.Warehouse).
		Int("tables", len(order)).
		Msg("Starting warehouse load")
	started := time.Now()

	for _, name := range order {
		b, err := dims.Get(name)
		if err != nil {
			return err
		}

		tableStarted := time.Now()
		if err := b.Run(ctx, env); err != nil {
			logging.Error().
				Err(err).
				Str("table", name).
				Msg("Table load failed; aborting run")
			return fmt.Errorf("load of %s failed: %w", name, err)
		}

		logging.Info().
			Str("table", name).
			Dur("elapsed", time.Since(tableStarted)).
			Msg("Table loaded")
	}

	sourceName := db.Pool.Config().ConnConfig.Database
	if err := store.SaveRunStamp(ctx, sourceName); err != nil {
		return err
	}

	logging.Info().
		Int("tables", len(order)).
		Dur("elapsed", time.Since(started)).
		Msg("Warehouse load complete")
	return nil
}
