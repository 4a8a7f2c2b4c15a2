// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"katalog/internal/cache"
	"katalog/internal/catalog"
	"katalog/internal/config"
	"katalog/internal/origin"
	"katalog/internal/tracking"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagPlayer     string
	flagJSON       bool
	flagNoTracking bool
	flagDebug      bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "katalog [query]",
	Short: "Browse and play a hosted movie/series catalog from the terminal",
	Long: `Katalog is a terminal front end for a third-party hosted video catalog.
Search or browse categories, inspect seasons and episodes, and hand the
selected embed to mpv/vlc. Listings and detail pages are served through
a local and a shared cache before the origin API is asked.`,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: loadConfig,
	RunE:              searchRun,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Media player: mpv | vlc | iina | celluloid")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Output results as JSON instead of picking interactively")
	rootCmd.PersistentFlags().BoolVar(&flagNoTracking, "no-tracking", false, "Disable visitor-log events")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(detailCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagPlayer != "" {
		cfg.Player = flagPlayer
	}
	if flagNoTracking {
		cfg.Tracking = false
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(0)
	if cfg.Debug {
		log.SetPrefix("[katalog] ")
	}

	return nil
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		log.Printf(format, args...)
	}
}

// newService wires the facade: local tier, shared SQLite tier, origin
// client. A shared store that cannot be opened degrades to a disabled
// tier; the catalog keeps working against local cache and origin only.
func newService() (*catalog.Service, func()) {
	local := cache.NewLocal(time.Duration(cfg.LocalTTLMin) * time.Minute)
	orig := origin.NewClient(cfg.APIBase)

	var shared catalog.SharedCache = disabledShared{}
	cleanup := func() {}

	if path, err := cfg.CachePath(); err == nil {
		if s, err := cache.OpenShared(path, time.Duration(cfg.SharedTTLHours)*time.Hour); err == nil {
			shared = s
			cleanup = func() { s.Close() }
		} else {
			debugf("shared cache unavailable: %v", err)
		}
	} else {
		debugf("resolving cache path: %v", err)
	}

	svc := catalog.New(local, shared, orig)
	svc.Logf = debugf
	return svc, cleanup
}

// disabledShared stands in when the shared store cannot be opened.
// Reads miss, writes report skipped.
type disabledShared struct{}

func (disabledShared) Get(namespace, key string) ([]byte, bool) { return nil, false }

func (disabledShared) Set(namespace, key string, value []byte) cache.WriteOutcome {
	return cache.WriteOutcome{Reason: "shared cache disabled"}
}

// openTracker returns the visitor log, or nil when tracking is off or
// the store is unavailable. Callers treat nil as "don't record".
func openTracker() *tracking.Log {
	if !cfg.Tracking {
		return nil
	}
	path, err := cfg.CachePath()
	if err != nil {
		debugf("resolving cache path: %v", err)
		return nil
	}
	trk, err := tracking.Open(path)
	if err != nil {
		debugf("visitor log unavailable: %v", err)
		return nil
	}
	return trk
}

func closeTracker(trk *tracking.Log) {
	if trk != nil {
		trk.Close()
	}
}
