// Package config loads bananaq settings from defaults, .bananaqrc files,
// BANANAQ_* environment variables and bound command-line flags.
package config

import (
	"fmt"
	"slices"

	"github.com/spf13/viper"

	"github.com/dotcommander/bananaq/internal/session"
)

// Formats lists the supported output formats.
var Formats = []string{"console", "json", "markdown"}

// ConfigFiles are the config file names searched in the working directory,
// in priority order.
var ConfigFiles = []string{".bananaqrc.json", ".bananaqrc.yaml", ".bananaqrc.yml"}

// Config represents the bananaq configuration
type Config struct {
	Format      string `mapstructure:"format"`
	Output      string `mapstructure:"output"`
	Quiet       bool   `mapstructure:"quiet"`
	Verbose     bool   `mapstructure:"verbose"`
	Seed        uint64 `mapstructure:"seed"`    // 0 leaves the engine unseeded
	Profile     string `mapstructure:"profile"` // path to a weight profile; empty uses the built-in one
	SessionDir  string `mapstructure:"sessionDir"`
	Concurrency int    `mapstructure:"concurrency"`
	Strict      bool   `mapstructure:"strict"` // out-of-bound form values are errors

	// Batch discovery
	Root           string   `mapstructure:"root"`
	Exclude        []string `mapstructure:"exclude"`
	FollowSymlinks bool     `mapstructure:"followSymlinks"`
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("format", "console")
	viper.SetDefault("output", "")
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("seed", 0)
	viper.SetDefault("profile", "")
	viper.SetDefault("sessionDir", session.DefaultDir())
	viper.SetDefault("concurrency", 4)
	viper.SetDefault("strict", false)
	viper.SetDefault("root", ".")
	viper.SetDefault("exclude", []string{})
	viper.SetDefault("followSymlinks", false)
}

// LoadConfig loads configuration from various sources. A non-empty rootPath
// overrides the configured dataset root.
func LoadConfig(rootPath string) (*Config, error) {
	SetDefaults()

	// Config file locations
	for _, path := range ConfigFiles {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err == nil {
			break
		}
	}

	// Environment variables
	viper.SetEnvPrefix("BANANAQ")
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if rootPath != "" {
		config.Root = rootPath
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if !slices.Contains(Formats, config.Format) {
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', or 'markdown'", config.Format)
	}

	if config.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1")
	}

	if config.SessionDir == "" {
		return fmt.Errorf("sessionDir must not be empty")
	}

	return nil
}
