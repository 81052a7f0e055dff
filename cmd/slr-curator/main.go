// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the slr-curator CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/secrets"
	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds publisher API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// logger is configured from the logging section of the config file.
var logger zerolog.Logger

// rootCmd is the base command for the slr-curator CLI.
var rootCmd = &cobra.Command{
	Use:   "slr-curator",
	Short: "Metadata curation for systematic literature review datasets",
	Long: `slr-curator normalizes heterogeneous SLR dataset exports into one uniform
schema and recovers missing metadata (abstracts, authors, DOIs, BibTeX) from
academic publisher pages, caching every fetched page so a title is never
fetched twice.

Each stage is a subcommand: reconcile fills missing metadata for a dataset,
import loads a dataset into the curated catalog, search queries the catalog,
and sources lists the known publisher platforms and their cache codes.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}

		logger = newLogger(types.LoggingConfig{
			Level:  viper.GetString("logging.level"),
			Format: viper.GetString("logging.format"),
		})
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./slr-curator.yaml or ~/.config/slr-curator/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("slr-curator")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "slr-curator"))
		}
	}

	viper.SetEnvPrefix("SLR_CURATOR")
	viper.AutomaticEnv()

	viper.SetDefault("cache.dir", "cache")
	viper.SetDefault("catalog.dir", "catalog")
	viper.SetDefault("catalog.max_results", 20)
	viper.SetDefault("extract.rate_per_second", 1.0)
	viper.SetDefault("extract.burst", 1)
	viper.SetDefault("reconcile.retry.max_attempts", 5)
	viper.SetDefault("reconcile.retry.base_delay", "10s")
	viper.SetDefault("reconcile.retry.timeout", "60s")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the zerolog logger from configuration.
func newLogger(cfg types.LoggingConfig) zerolog.Logger {
	var out = os.Stderr
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	log := zerolog.New(out).With().Timestamp().Logger().Level(level)
	if cfg.Format == "console" {
		log = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen})
	}
	return log
}

// pipelineConfig assembles the stage configs from viper.
func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Cache: types.CacheConfig{
			Dir: viper.GetString("cache.dir"),
		},
		Extract: types.ExtractConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("extract.timeout"),
				UserAgent: userAgent(),
			},
			RatePerSecond: viper.GetFloat64("extract.rate_per_second"),
			Burst:         viper.GetInt("extract.burst"),
			APIKeys:       apiKeys(),
		},
		Reconcile: types.ReconcileConfig{
			FallbackOrder: viper.GetStringSlice("reconcile.fallback_order"),
			Retry: types.RetryPolicy{
				MaxAttempts: viper.GetInt("reconcile.retry.max_attempts"),
				BaseDelay:   viper.GetDuration("reconcile.retry.base_delay"),
				Timeout:     viper.GetDuration("reconcile.retry.timeout"),
			},
		},
		Catalog: types.CatalogConfig{
			Dir:        viper.GetString("catalog.dir"),
			MaxResults: viper.GetInt("catalog.max_results"),
		},
		Logging: types.LoggingConfig{
			Level:  viper.GetString("logging.level"),
			Format: viper.GetString("logging.format"),
		},
	}
}

// apiKeys assembles publisher API keys: config values win, .secrets/ files
// fill the gaps, sources without a key are omitted.
func apiKeys() map[string]string {
	keys := map[string]string{
		"scopus":        secretDefault("scopus-api-key", viper.GetString("extract.api_keys.scopus")),
		"ieee":          secretDefault("ieee-api-key", viper.GetString("extract.api_keys.ieee")),
		"springerlink":  secretDefault("springer-api-key", viper.GetString("extract.api_keys.springerlink")),
		"pubmedcentral": secretDefault("pubmed-api-key", viper.GetString("extract.api_keys.pubmedcentral")),
	}
	for name, key := range keys {
		if key == "" {
			delete(keys, name)
		}
	}
	return keys
}

func userAgent() string {
	if ua := viper.GetString("extract.user_agent"); ua != "" {
		return ua
	}
	return "slr-curator/" + version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
