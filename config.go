package vgroutes

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const (
	// EnvBaseURL sets the base path.  Its value is used verbatim.
	EnvBaseURL = "BASE_URL"

	// EnvMode sets the router mode ("history" or "hash").
	EnvMode = "VGROUTES_MODE"

	// EnvLogLevel sets the log level.
	EnvLogLevel = "VGROUTES_LOG_LEVEL"

	// EnvLogFormat sets the log format ("text" or "json").
	EnvLogFormat = "VGROUTES_LOG_FORMAT"
)

// Config holds the deployment settings of a Router.
type Config struct {
	BasePath string        `toml:"base_path"`
	Mode     Mode          `toml:"mode"`
	Logging  LoggingConfig `toml:"logging"`
}

// LoadConfig reads and parses a TOML configuration file.
// The result still needs Finalize.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.Mode.Validate(); err != nil {
		return err
	}
	if err := c.Logging.validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.Mode != "" {
		c.Mode = overlay.Mode
	}
	c.Logging.Merge(&overlay.Logging)
}

func (c *Config) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/"
	}
	if c.Mode == "" {
		c.Mode = ModeHistory
	}
	c.Logging.loadDefaults()
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvMode); v != "" {
		c.Mode = Mode(v)
	}
	c.Logging.loadEnv()
}
