// Package config loads and validates docpack configuration: DevDocs
// endpoints, archive metadata format strings, output and retry settings.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docpack/internal/errors"
)

// Config represents the application configuration.
type Config struct {
	Endpoints EndpointsConfig `yaml:"endpoints"`
	Archive   ArchiveConfig   `yaml:"archive"`
	Output    OutputConfig    `yaml:"output"`
	Retry     RetryConfig     `yaml:"retry"`
}

// EndpointsConfig holds the DevDocs server locations.
type EndpointsConfig struct {
	// Scheme and hostname for the devdocs frontend, e.g. https://devdocs.io.
	FrontendURL string `yaml:"frontend_url,omitempty"`
	// Scheme and hostname for the devdocs documents server.
	DocumentsURL string `yaml:"documents_url,omitempty"`
}

// OutputConfig holds archive output settings.
type OutputConfig struct {
	// Directory archives are written into.
	Directory string `yaml:"directory,omitempty"`
}

// RetryConfig holds backoff settings for transient fetch failures.
type RetryConfig struct {
	Backoff    string        `yaml:"backoff,omitempty"` // fixed|linear|exponential
	Initial    time.Duration `yaml:"initial,omitempty"`
	Max        time.Duration `yaml:"max,omitempty"`
	MaxRetries int           `yaml:"max_retries,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Archive: DefaultArchive(),
		Output: OutputConfig{
			Directory: "./output",
		},
		Retry: RetryConfig{
			Backoff:    "linear",
			Initial:    time.Second,
			Max:        30 * time.Second,
			MaxRetries: 2,
		},
	}
}

// Load loads configuration from the specified file, merged over defaults.
// An empty path returns the defaults. Environment variables referenced in
// the YAML are expanded; a .env file, if present, is loaded first.
func Load(configPath string) (*Config, error) {
	// Missing .env files are fine; existing env vars are never overridden.
	_ = godotenv.Load()

	config := Default()
	if configPath == "" {
		return config, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to read config file")
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to unmarshal config")
	}

	applyDefaults(config)
	return config, nil
}

func applyDefaults(config *Config) {
	defaults := Default()
	if config.Archive.NameFormat == "" {
		config.Archive.NameFormat = defaults.Archive.NameFormat
	}
	if config.Archive.TitleFormat == "" {
		config.Archive.TitleFormat = defaults.Archive.TitleFormat
	}
	if config.Archive.DescriptionFormat == "" {
		config.Archive.DescriptionFormat = defaults.Archive.DescriptionFormat
	}
	if config.Archive.Creator == "" {
		config.Archive.Creator = defaults.Archive.Creator
	}
	if config.Archive.Publisher == "" {
		config.Archive.Publisher = defaults.Archive.Publisher
	}
	if config.Archive.Tags == "" {
		config.Archive.Tags = defaults.Archive.Tags
	}
	if config.Output.Directory == "" {
		config.Output.Directory = defaults.Output.Directory
	}
	if config.Retry.Backoff == "" {
		config.Retry.Backoff = defaults.Retry.Backoff
	}
	if config.Retry.Initial == 0 {
		config.Retry.Initial = defaults.Retry.Initial
	}
	if config.Retry.Max == 0 {
		config.Retry.Max = defaults.Retry.Max
	}
	if config.Retry.MaxRetries == 0 {
		config.Retry.MaxRetries = defaults.Retry.MaxRetries
	}
}
