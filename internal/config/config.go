// Package config handles site configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/matsen/folio/internal/publication"
)

// Config represents site configuration stored in folio.yml at the site root.
type Config struct {
	ContentDir string `yaml:"content_dir,omitempty" json:"content_dir"` // Source content (BibTeX, TOML, Markdown)
	PublicDir  string `yaml:"public_dir,omitempty" json:"public_dir"`   // Static assets, e.g. PDF attachments
	OutputDir  string `yaml:"output_dir,omitempty" json:"output_dir"`   // Static JSON export
	Owner      string `yaml:"owner,omitempty" json:"owner"`             // Name highlighted in author lists
}

const (
	ConfigFile = "folio.yml"

	DefaultContentDir = "content"
	DefaultPublicDir  = "public"
	DefaultOutputDir  = ".folio/build"
)

// Environment variables that override folio.yml.
const (
	EnvOwner      = "FOLIO_OWNER"
	EnvContentDir = "FOLIO_CONTENT_DIR"
	EnvOutputDir  = "FOLIO_OUTPUT_DIR"
)

// ErrSiteNotFound is returned when no folio.yml is found above a directory.
var ErrSiteNotFound = errors.New("not in a folio site (no " + ConfigFile + " found)")

// Default returns the configuration used when folio.yml sets nothing.
func Default() *Config {
	return &Config{
		ContentDir: DefaultContentDir,
		PublicDir:  DefaultPublicDir,
		OutputDir:  DefaultOutputDir,
	}
}

// ConfigPath returns the path to folio.yml from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigFile)
}

// IsSite checks if the given path is a site root.
func IsSite(root string) bool {
	info, err := os.Stat(ConfigPath(root))
	return err == nil && !info.IsDir()
}

// FindSite walks up from the given path to find a site root.
func FindSite(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsSite(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrSiteNotFound
		}
		abs = parent
	}
}

// Load reads configuration from the site at the given root.
// Unset keys get their defaults, then environment overrides are applied.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.ApplyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes configuration to the site at the given root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from FOLIO_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvOwner); v != "" {
		c.Owner = v
	}
	if v := os.Getenv(EnvContentDir); v != "" {
		c.ContentDir = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
}

func (c *Config) applyDefaults() {
	if c.ContentDir == "" {
		c.ContentDir = DefaultContentDir
	}
	if c.PublicDir == "" {
		c.PublicDir = DefaultPublicDir
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
}

// SiteOwner returns the configured owner for author highlighting.
func (c *Config) SiteOwner() publication.Owner {
	return publication.Owner{Name: c.Owner}
}

// ContentPath returns the content directory resolved against root.
func (c *Config) ContentPath(root string) string {
	return resolve(root, c.ContentDir)
}

// PublicPath returns the public directory resolved against root.
func (c *Config) PublicPath(root string) string {
	return resolve(root, c.PublicDir)
}

// OutputPath returns the output directory resolved against root.
func (c *Config) OutputPath(root string) string {
	return resolve(root, c.OutputDir)
}

func resolve(root, dir string) string {
	dir = ExpandTilde(dir)
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

// ExpandTilde expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
