package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/ironsheep/pattern-tools-mcp/internal/profile"
)

// EnvPrefix is prepended to every environment override, e.g. PATTERN_MCP_LOG_LEVEL.
const EnvPrefix = "PATTERN_MCP"

// Config is the complete server configuration.
type Config struct {
	Log     LogConfig       `mapstructure:"log"`
	Profile profile.Options `mapstructure:"profile"`
	Preload PreloadConfig   `mapstructure:"preload"`
}

// LogConfig selects the zap logger built by logging.New.
type LogConfig struct {
	// Mode is "release" for JSON production logs, anything else for console logs.
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

// PreloadConfig lists images turned into patterns when the server starts.
type PreloadConfig struct {
	Paths []string `mapstructure:"paths"`
	Fixed bool     `mapstructure:"fixed"`
}

// Load reads configuration. With an empty path it looks for pattern-mcp.yaml
// in the working directory and silently falls back to defaults when there is
// none; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("pattern-mcp")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		Log:     LogConfig{Mode: "debug", Level: "info"},
		Profile: profile.DefaultOptions(),
	}
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Profile.MaxK < 1 {
		return fmt.Errorf("profile.max_k must be at least 1, got %d", c.Profile.MaxK)
	}
	if c.Profile.MaxIterations < 1 {
		return fmt.Errorf("profile.max_iterations must be at least 1, got %d", c.Profile.MaxIterations)
	}
	if c.Profile.SampleSize < 0 {
		return fmt.Errorf("profile.sample_size must not be negative, got %d", c.Profile.SampleSize)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log.mode", d.Log.Mode)
	v.SetDefault("log.level", d.Log.Level)

	v.SetDefault("profile.max_k", d.Profile.MaxK)
	v.SetDefault("profile.max_iterations", d.Profile.MaxIterations)
	v.SetDefault("profile.sample_size", d.Profile.SampleSize)
	v.SetDefault("profile.seed", d.Profile.Seed)

	v.SetDefault("preload.paths", []string{})
	v.SetDefault("preload.fixed", false)
}
