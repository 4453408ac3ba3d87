package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/gameshelf/internal/foundation/errors"
	"git.home.luguber.info/inful/gameshelf/internal/foundation/normalization"
)

// DefaultFilename is looked up in the content root when --config is not given.
const DefaultFilename = "gameshelf.yaml"

// Config represents the application configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Watch   WatchConfig   `yaml:"watch"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// SiteConfig describes the generated landing index.
type SiteConfig struct {
	Title      string `yaml:"title"`
	Subtitle   string `yaml:"subtitle"`
	Stylesheet string `yaml:"stylesheet"`
	FontsURL   string `yaml:"fonts_url,omitempty"`
	IndexFile  string `yaml:"index_file"`
}

// ContentConfig describes how the content tree is laid out on disk.
type ContentConfig struct {
	CoreFile      string   `yaml:"core_file"`
	Extension     string   `yaml:"extension"`
	SettingsDir   string   `yaml:"settings_dir"`
	ExpansionsDir string   `yaml:"expansions_dir"`
	Ignore        []string `yaml:"ignore"`
	Order         Order    `yaml:"order"`
	BackLinkLabel string   `yaml:"back_link_label"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
	Interval time.Duration `yaml:"interval,omitempty"` // 0 disables periodic rebuilds
}

// MetricsConfig controls the optional Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Order selects how directory listings are ordered.
type Order string

const (
	// OrderListing keeps the filesystem's own listing order.
	OrderListing Order = "listing"
	// OrderName sorts entries by name.
	OrderName Order = "name"
)

var orderNames = normalization.NewNormalizer("order", map[string]Order{
	"listing":    OrderListing,
	"filesystem": OrderListing,
	"name":       OrderName,
	"sorted":     OrderName,
}, OrderListing)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration file at configPath. A missing file is not an error: the
// defaults describe the standard layout and most content trees never need a config file.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- path supplied by the operator
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			Fatal().WithContext("path", configPath).Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		if c, ok := ferrors.AsClassified(err); ok {
			return nil, c.WithContext("path", configPath)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML bytes (after environment expansion), applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init creates a new configuration file holding the defaults.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ValidationError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			WithContext("path", configPath).Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// #nosec G306 -- configuration is not secret
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ferrors.FileSystemError(err, "failed to write config file").WithContext("path", configPath).Build()
	}
	return nil
}
