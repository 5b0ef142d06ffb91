//-------------------------------------------------------------------------
//
// FastAndSafe Courier Data Warehouse
//
// Copyright (c) 2025 - 2026, FastAndSafe Logistics
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for courier-dwh.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for courier-dwh.
type Config struct {
	// Source is the PostgreSQL connection string for the operational system.
	Source string `mapstructure:"source"`

	// Warehouse is the DuckDB database path for the dimensional store.
	Warehouse string `mapstructure:"warehouse"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Calendar holds the date range covered by the calendar dimension.
	Calendar CalendarConfig `mapstructure:"calendar"`

	// Seed holds configuration for the seed subcommand.
	Seed SeedConfig `mapstructure:"seed"`
}

// CalendarConfig bounds the generated Dim_Fecha range (inclusive).
type CalendarConfig struct {
	// Start is the first calendar day, formatted as 2006-01-02.
	Start string `mapstructure:"start"`

	// End is the last calendar day, formatted as 2006-01-02.
	End string `mapstructure:"end"`
}

// SeedConfig controls synthetic data volumes for the seed subcommand.
type SeedConfig struct {
	// Clients is the number of client companies to create.
	Clients int `mapstructure:"clients"`

	// Couriers is the number of couriers to create.
	Couriers int `mapstructure:"couriers"`

	// Services is the number of courier services to create.
	Services int `mapstructure:"services"`

	// DropExisting drops the operational schema before seeding.
	DropExisting bool `mapstructure:"drop_existing"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Warehouse: "fastandsafe_dw.duckdb",
		LogLevel:  "info",
		Calendar: CalendarConfig{
			Start: "2023-01-01",
			End:   "2025-12-31",
		},
		Seed: SeedConfig{
			Clients:  25,
			Couriers: 40,
			Services: 500,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./courier-dwh.yaml
// 3. ~/.config/courier-dwh/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("courier-dwh")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "courier-dwh"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Warehouse == "" {
		return fmt.Errorf("warehouse path is required")
	}
	return nil
}

// ValidateRun checks configuration required for the run command.
func (c *Config) ValidateRun() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Source == "" {
		return fmt.Errorf("source connection string is required")
	}
	start, err := time.Parse("2006-01-02", c.Calendar.Start)
	if err != nil {
		return fmt.Errorf("invalid calendar start %q: %w", c.Calendar.Start, err)
	}
	end, err := time.Parse("2006-01-02", c.Calendar.End)
	if err != nil {
		return fmt.Errorf("invalid calendar end %q: %w", c.Calendar.End, err)
	}
	if end.Before(start) {
		return fmt.Errorf("calendar end %s precedes start %s", c.Calendar.End, c.Calendar.Start)
	}
	return nil
}

// ValidateSeed checks configuration required for the seed command.
func (c *Config) ValidateSeed() error {
	if c.Source == "" {
		return fmt.Errorf("source connection string is required")
	}
	if c.Seed.Clients < 1 || c.Seed.Couriers < 1 || c.Seed.Services < 1 {
		return fmt.Errorf("seed volumes must be at least 1")
	}
	return nil
}
