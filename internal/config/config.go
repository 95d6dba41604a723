package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/n0roo/infradocs/internal/logging"
)

// CurrentVersion is written into new config files
const CurrentVersion = "1"

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config represents ~/.infradocs/config.yaml
type Config struct {
	Version string `yaml:"version" json:"version"`

	// Catalog is an optional YAML catalog replacing the built-in documentation
	Catalog string `yaml:"catalog,omitempty" json:"catalog,omitempty"`

	// DefaultTier overrides the catalog's default tier
	DefaultTier string `yaml:"default_tier,omitempty" json:"default_tier,omitempty"`

	Theme  ThemeConfig    `yaml:"theme" json:"theme"`
	Footer FooterConfig   `yaml:"footer" json:"footer"`
	Log    logging.Config `yaml:"log" json:"log"`
}

// ThemeConfig maps colour tokens to terminal colours
type ThemeConfig struct {
	Primary string            `yaml:"primary" json:"primary"`
	Colors  map[string]string `yaml:"colors,omitempty" json:"colors,omitempty"`
}

// FooterConfig holds the page chrome shown under the documentation
type FooterConfig struct {
	Title      string   `yaml:"title" json:"title"`
	Compliance []string `yaml:"compliance,omitempty" json:"compliance,omitempty"`
	Contact    string   `yaml:"contact,omitempty" json:"contact,omitempty"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Theme: ThemeConfig{
			Primary: "#2563EB",
			Colors: map[string]string{
				"blue":   "#3B82F6",
				"green":  "#10B981",
				"yellow": "#F59E0B",
				"red":    "#EF4444",
				"purple": "#7C3AED",
				"gray":   "#6B7280",
			},
		},
		Footer: FooterConfig{
			Title: "Compliance & Security Certifications",
			Compliance: []string{
				"SOC 2 Type 2: Pico MES completed SOC 2 Type 2 compliance certification as of Q3 2022",
				"ITAR Registration: Pico is ITAR-registered and provides US Citizen-only support for sensitive deployments",
				"Security Audits: Third-party cybersecurity firms have evaluated Pico's VPN access controls and security procedures",
			},
			Contact: "picomes.com | contact@picomes.com",
		},
		Log: logging.DefaultConfig(LogPath()),
	}
}

// Load reads the config at path. A missing file yields the defaults.
// Values present in the file override the defaults field by field.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config read failed: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config parse failed: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config directory create failed: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config marshal failed: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config write failed: %w", err)
	}
	return nil
}

// Exists reports whether a config file is present at path
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Validate checks values that cannot be caught by the YAML decoder
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %v: %w", err, ErrInvalidConfig)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format %q: %w", c.Log.Format, ErrInvalidConfig)
	}
	return nil
}

// ColorFor returns the terminal colour for a tier colour token
func (c *Config) ColorFor(token string) string {
	if v, ok := c.Theme.Colors[token]; ok && v != "" {
		return v
	}
	return c.Theme.Primary
}
