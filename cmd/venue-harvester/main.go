// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the venue-harvester CLI. It builds the
// venue-first author and institution dataset for the quantum rankings
// frontend and offers helpers to inspect venues, the cache and past runs.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/venue-harvester/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

const defaultUserAgent = "venue-harvester/0.1"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Store

// configErr records a config file that exists but could not be read.
var configErr error

var rootCmd = &cobra.Command{
	Use:   "venue-harvester",
	Short: "Build the quantum rankings author/institution dataset from venues",
	Long: `venue-harvester enumerates every publication of a configured set of venues
through OpenAlex (and DBLP for conferences OpenAlex does not attribute
reliably), keeps the quantum-relevant ones, aggregates them per author and
institution, and writes the JSON dataset the rankings frontend loads.

Configuration comes from flags, VENUE_HARVESTER_* environment variables, a
.env file and venue-harvester.yaml, in that order of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return configErr
		}
		s, err := secrets.Load(secrets.DefaultDir, os.Stderr)
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
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./venue-harvester.yaml or ~/.config/venue-harvester/venue-harvester.yaml)")
	rootCmd.PersistentFlags().String("cache-path", "openalex_cache.json", "resolution cache file")
	rootCmd.PersistentFlags().String("output-json", "data.json", "dataset JSON file")
	rootCmd.PersistentFlags().String("archive-path", "", "SQLite harvest archive (empty disables)")
	rootCmd.PersistentFlags().String("venues-file", "", "YAML venue list (empty uses the built-in venues)")

	bindFlags(rootCmd, "cache-path", "output-json", "archive-path", "venues-file")
	setDefaults()
}

// setDefaults registers defaults for keys that are not bound to a flag on
// every command.
func setDefaults() {
	viper.SetDefault("min_year", 2005)
	viper.SetDefault("max_year", 2025)
	viper.SetDefault("min_papers_per_author", 1)
	viper.SetDefault("min_papers_per_institution", 3)
	viper.SetDefault("max_institutions", 1000)
	viper.SetDefault("max_pages_per_source", 0)
	viper.SetDefault("delay", 200*time.Millisecond)
	viper.SetDefault("timeout", 30*time.Second)
	viper.SetDefault("workers", 1)
}

// bindFlags binds each named persistent or local flag of cmd to the viper key
// of the same name with dashes replaced by underscores.
func bindFlags(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			f = cmd.PersistentFlags().Lookup(name)
		}
		if f == nil {
			panic("unknown flag " + name)
		}
		_ = viper.BindPFlag(strings.ReplaceAll(name, "-", "_"), f)
	}
}

func initConfig() {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load(".env")

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("venue-harvester")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "venue-harvester"))
		}
	}

	viper.SetEnvPrefix("VENUE_HARVESTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			configErr = fmt.Errorf("reading config: %w", err)
		}
		return
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
