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

	"github.com/spf13/cobra"

	"github.com/fastandsafe/courier-dwh/internal/seed"
	"github.com/fastandsafe/courier-dwh/internal/source"
)

var (
	seedClients      int
	seedCouriers     int
	seedServices     int
	seedDropExisting bool
	seedRandSeed     uint64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create and fill a synthetic operational database",
	Long: `Create the operational courier schema in PostgreSQL and fill it
with synthetic clients, couriers and services. Intended for trying out
the loader without access to a production operational system.

Example:
  courier-dwh seed --source "postgres://..." --services 2000 --drop-existing`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedClients, "clients", 0,
		"number of client companies to create")
	seedCmd.Flags().IntVar(&seedCouriers, "couriers", 0,
		"number of couriers to create")
	seedCmd.Flags().IntVar(&seedServices, "services", 0,
		"number of courier services to create")
	seedCmd.Flags().BoolVar(&seedDropExisting, "drop-existing", false,
		"drop the operational schema before seeding")
	seedCmd.Flags().Uint64Var(&seedRandSeed, "seed", 0,
		"random seed for reproducible data (0 = time-based)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if seedClients > 0 {
		cfg.Seed.Clients = seedClients
	}
	if seedCouriers > 0 {
		cfg.Seed.Couriers = seedCouriers
	}
	if seedServices > 0 {
		cfg.Seed.Services = seedServices
	}
	if seedDropExisting {
		cfg.Seed.DropExisting = true
	}

	// Validate configuration
	if err := cfg.ValidateSeed(); err != nil {
		return err
	}

	ctx := context.Background()
	db, err := source.Connect(ctx, cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to connect to operational database: %w", err)
	}
	defer db.Close()

	if cfg.Seed.DropExisting {
		if err := seed.DropSchema(ctx, db.Pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
	}
	if err := seed.CreateSchema(ctx, db.Pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	g := seed.NewGenerator(cfg.Seed)
	if seedRandSeed != 0 {
		g = seed.NewGeneratorWithSeed(cfg.Seed, seedRandSeed)
	}
	return g.Run(ctx, db.Pool)
}
