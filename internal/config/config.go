package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dcedit/internal/color"
	"dcedit/internal/dircolors"
	"dcedit/internal/errors"
	"dcedit/pkg/types"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Config represents the editor configuration.
// It defines the dircolors file to edit, encoding and preview preferences,
// and extra categorization rules.
type Config struct {
	File       string     `yaml:"file"` // Path of the .dircolors file; "~/" is expanded
	Editor     Editor     `yaml:"editor"`
	Preview    Preview    `yaml:"preview"`
	Categories Categories `yaml:"categories"`
	Watch      Watch      `yaml:"watch"`
}

// Editor holds settings used when colors are changed
type Editor struct {
	DefaultMode string `yaml:"default_mode"` // Encoding for new colors: basic, 256 or rgb
	Backup      bool   `yaml:"backup"`       // Copy the file to <file>.bak before overwriting
}

// Preview holds terminal preview settings
type Preview struct {
	Background string             `yaml:"background"`        // Hex panel background, empty for none
	Header     bool               `yaml:"header"`            // Print the preview title
	Samples    []types.SampleFile `yaml:"samples,omitempty"` // Replaces the built-in sample list when set
}

// Categories holds extension categorization rules
type Categories struct {
	Rules []types.CategoryRule `yaml:"rules"` // Applied to extensions no category claims
}

// Watch holds watch mode settings
type Watch struct {
	DebounceMS int `yaml:"debounce_ms"` // Quiet period before reloading, in milliseconds
}

// DefaultPath returns ~/.config/dcedit/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "dcedit", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location
// (~/.config/dcedit/config.yaml).
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewFileError("error reading config file", path, errors.FileReadFailed, err)
	}

	// Fields missing from the file keep their defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// defaultConfig returns the default configuration
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.File = "~/.dircolors"
	cfg.Editor.DefaultMode = "rgb"
	cfg.Editor.Backup = false
	cfg.Preview.Background = "#1a1a1a" // Dark panel
	cfg.Preview.Header = true
	cfg.Categories.Rules = []types.CategoryRule{}
	cfg.Watch.DebounceMS = 100
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewFileError("failed to create config directory", dir, errors.FileWriteFailed, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewFileError("failed to write config file", path, errors.FileWriteFailed, err)
	}
	return nil
}

func invalid(param, format string, args ...interface{}) error {
	return errors.NewConfigError(fmt.Sprintf(format, args...), param, errors.InvalidConfig, nil)
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return invalid("", "nil config")
	}

	if strings.TrimSpace(c.File) == "" {
		return invalid("file", "dircolors file path cannot be empty")
	}

	if _, err := color.ParseMode(c.Editor.DefaultMode); err != nil {
		return invalid("editor.default_mode", "invalid default mode: %s", c.Editor.DefaultMode)
	}

	if c.Preview.Background != "" {
		if _, err := color.HexRGB(c.Preview.Background); err != nil {
			return invalid("preview.background", "invalid background color: %s", c.Preview.Background)
		}
	}

	for i, s := range c.Preview.Samples {
		if strings.TrimSpace(s.Name) == "" {
			return invalid("preview.samples", "sample %d: name is required", i)
		}
	}

	known := dircolors.DefaultCategories()
	for i, rule := range c.Categories.Rules {
		if strings.TrimSpace(rule.Match) == "" {
			return invalid("categories.rules", "rule %d: match pattern is required", i)
		}
		if _, err := glob.Compile(rule.Match); err != nil {
			return invalid("categories.rules", "rule %d: invalid pattern %q", i, rule.Match)
		}
		if !known.Has(strings.TrimSuffix(rule.Category, "_extensions")) {
			return invalid("categories.rules", "rule %d: unknown category %q", i, rule.Category)
		}
	}

	if c.Watch.DebounceMS < 0 {
		return invalid("watch.debounce_ms", "debounce must be >= 0 milliseconds")
	}
	return nil
}

// DircolorsPath returns the configured .dircolors path with "~/" expanded
func (c *Config) DircolorsPath() (string, error) {
	return ExpandHome(c.File)
}

// ExpandHome replaces a leading "~/" with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// DefaultMode returns the parsed editor.default_mode
func (c *Config) DefaultMode() color.Mode {
	m, err := color.ParseMode(c.Editor.DefaultMode)
	if err != nil {
		return color.RGBTrueColor
	}
	return m
}

// Debounce returns watch.debounce_ms as a duration
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}
