// Package config loads axiom's CLI-wide settings: an optional YAML config
// file merged with environment variables and flag defaults via Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds settings shared across axiom's subcommands.
type Config struct {
	// DeterministicSeed seeds the interpreter's Random heartbeat LCG.
	DeterministicSeed uint64 `mapstructure:"deterministic_seed"`
	// MaxToolCalls bounds the number of tool calls a run may perform. Zero
	// means unbounded.
	MaxToolCalls int `mapstructure:"max_tool_calls"`
	// MaxConsecutiveFailures bounds tolerated consecutive tool-call
	// failures. Zero means unbounded.
	MaxConsecutiveFailures int `mapstructure:"max_consecutive_failures"`
	// Strict enables schema-based structural validation of tool output in
	// addition to the mandatory substring check.
	Strict bool `mapstructure:"strict"`
	// MongoURI, when set, points run-log archiving at a MongoDB instance
	// instead of the in-memory store.
	MongoURI string `mapstructure:"mongo_uri"`
	// MongoDatabase names the database run-log archiving writes to.
	MongoDatabase string `mapstructure:"mongo_database"`
}

// Defaults returns the settings used when neither a config file, an
// environment variable, nor a flag overrides them.
func Defaults() map[string]any {
	return map[string]any{
		"deterministic_seed":       42,
		"max_tool_calls":           0,
		"max_consecutive_failures": 0,
		"strict":                   false,
		"mongo_uri":                "",
		"mongo_database":           "axiom",
	}
}

// Load reads axiom's configuration from (in ascending priority) defaults, a
// config.yaml file under the user's config directory or the working
// directory, and AXIOM_-prefixed environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "axiom"))
	}
	v.AddConfigPath(".")

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("AXIOM")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
