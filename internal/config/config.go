// Package config provides configuration loading and validation for the
// talent-match service and CLI.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix namespaces environment variables, e.g. TALENT_MATCH_DATABASE_URL.
const envPrefix = "TALENT_MATCH"

// Config holds everything the service and CLI need to run. Values come from
// an optional YAML file, environment variables, and flag bindings, in
// ascending precedence.
type Config struct {
	DatabaseURL string `mapstructure:"database-url"`
	Port        int    `mapstructure:"port"`

	// TaxonomyPath points at a custom skill-taxonomy JSON file; empty uses
	// the built-in taxonomy. SchemaPath validates the file before loading.
	TaxonomyPath       string `mapstructure:"taxonomy-path"`
	TaxonomySchemaPath string `mapstructure:"taxonomy-schema-path"`

	// Workers bounds concurrent candidate scoring.
	Workers int `mapstructure:"workers"`

	// MaxPoolSize caps how many candidates one run will consider.
	MaxPoolSize int `mapstructure:"max-pool-size"`

	JSONLog bool `mapstructure:"json"`
	Debug   bool `mapstructure:"debug"`
}

// Load reads configuration from the given file (optional), the environment,
// and defaults. A missing file is only an error when a path was given
// explicitly.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Every key needs a default registered so environment lookups reach
	// Unmarshal.
	v.SetDefault("database-url", "")
	v.SetDefault("port", 8080)
	v.SetDefault("workers", 8)
	v.SetDefault("max-pool-size", 1000)
	v.SetDefault("taxonomy-path", "")
	v.SetDefault("taxonomy-schema-path", "schemas/taxonomy.schema.json")
	v.SetDefault("json", false)
	v.SetDefault("debug", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("talent-match")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks numeric ranges. Required fields are enforced by the
// commands that need them, after flag merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}
	if c.MaxPoolSize < 0 {
		return fmt.Errorf("config error: 'max-pool-size' must be non-negative")
	}
	return nil
}
