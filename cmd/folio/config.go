package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matsen/folio/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective site configuration",
	Long: `Show the site configuration after defaults and FOLIO_* environment
overrides, with directories resolved against the site root.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

// ConfigResponse is the response for the config command.
type ConfigResponse struct {
	Root string `json:"root"`
	config.Config
	Paths ConfigPaths `json:"paths"`
}

// ConfigPaths are the resolved directories of a site.
type ConfigPaths struct {
	Content string `json:"content"`
	Public  string `json:"public"`
	Output  string `json:"output"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := mustFindSite()
	cfg := mustLoadConfig(root)

	resp := ConfigResponse{
		Root:   root,
		Config: *cfg,
		Paths: ConfigPaths{
			Content: cfg.ContentPath(root),
			Public:  cfg.PublicPath(root),
			Output:  cfg.OutputPath(root),
		},
	}

	if !humanOutput {
		return outputJSON(resp)
	}
	outputHuman("root:        %s\n", resp.Root)
	outputHuman("owner:       %s\n", cfg.Owner)
	outputHuman("content_dir: %s\n", resp.Paths.Content)
	outputHuman("public_dir:  %s\n", resp.Paths.Public)
	outputHuman("output_dir:  %s\n", resp.Paths.Output)
	return nil
}

var initOwner string

func init() {
	initCmd.Flags().StringVar(&initOwner, "owner", "", "Name highlighted in author lists")
}

var initCmd = &cobra.Command{
	Use:   "init [DIR]",
	Short: "Create a folio site",
	Long:  `Write a default folio.yml and create the content directory.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	root, err := filepath.Abs(config.ExpandTilde(dir))
	if err != nil {
		exitWithError(ExitError, "resolving path: %v", err)
	}

	if config.IsSite(root) {
		exitWithError(ExitConfigError, "site already exists: %s", config.ConfigPath(root))
	}

	if err := initSite(root, initOwner); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if !humanOutput {
		return outputJSON(StatusResponse{Status: "created", Path: config.ConfigPath(root)})
	}
	outputHuman("Created %s\n", config.ConfigPath(root))
	return nil
}

// initSite writes the default configuration and content directory under root.
func initSite(root, owner string) error {
	cfg := config.Default()
	cfg.Owner = owner

	if err := os.MkdirAll(cfg.ContentPath(root), 0755); err != nil {
		return err
	}
	return cfg.Save(root)
}
