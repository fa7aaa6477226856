// Package main provides the folio CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/folio/internal/config"
	"github.com/matsen/folio/internal/content"
	"github.com/matsen/folio/internal/ingest"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// verbose enables debug logging on stderr
var verbose bool

func main() {
	// A .env next to the site is optional
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Academic portfolio content CLI",
	Long: `folio turns the content of an academic portfolio site into a static JSON export.

Content lives in a site directory marked by folio.yml:
  - Publications in BibTeX (.bib) or TOML (.toml) sources
  - Page configs in TOML (about, publication, text and card pages)
  - Markdown bodies and PDF attachments

All commands output JSON by default; use --human for readable text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(newLogger(verbose))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")
	rootCmd.Version = Version
}

// newLogger returns the stderr logger, at debug level when verbose.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// mustFindSite finds the site root above the working directory, exits on error.
func mustFindSite() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	root, err := config.FindSite(cwd)
	if err != nil {
		exitWithError(ExitConfigError, "%v\n\nRun 'folio init' to create a site here.", err)
	}
	return root
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenSite finds the site and returns its root, config and content loader.
func mustOpenSite() (string, *config.Config, *content.Loader) {
	root := mustFindSite()
	cfg := mustLoadConfig(root)

	dir := cfg.ContentPath(root)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		exitWithError(ExitConfigError, "content directory not found: %s", dir)
	}

	loader := content.NewLoader(dir, slog.Default(), ingest.Options{Owner: cfg.SiteOwner()})
	return root, cfg, loader
}
