package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/okamoto/clusterd-tester/pkg/protocol"
)

// Config represents the application configuration
type Config struct {
	Client  ClientConfig  `yaml:"client"`
	Logging LoggingConfig `yaml:"logging"`
}

// ClientConfig contains replay client settings
type ClientConfig struct {
	Banner         string        `yaml:"banner"`
	SuccessPrefix  string        `yaml:"success_prefix"`
	ErrorPrefix    string        `yaml:"error_prefix"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	RecvBufferSize int           `yaml:"recv_buffer_size"`
	FileExtension  string        `yaml:"file_extension"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level   string `yaml:"level"`   // debug, info, warn, error
	Dir     string `yaml:"dir"`     // directory for the timestamped log file
	Console bool   `yaml:"console"` // mirror log output to stderr
}

// Load reads and parses the configuration file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid. All problems are
// reported at once rather than stopping at the first one.
func (c *Config) Validate() error {
	var errs error

	if c.Client.Banner == "" {
		errs = multierr.Append(errs, errors.New("client banner is required"))
	}
	if c.Client.SuccessPrefix == "" {
		errs = multierr.Append(errs, errors.New("client success prefix is required"))
	}
	if c.Client.ErrorPrefix == "" {
		errs = multierr.Append(errs, errors.New("client error prefix is required"))
	}
	if c.Client.ConnectTimeout <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("connect timeout must be positive: %s", c.Client.ConnectTimeout))
	}
	if c.Client.RecvBufferSize <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("receive buffer size must be positive: %d", c.Client.RecvBufferSize))
	}
	if c.Client.FileExtension == "" {
		errs = multierr.Append(errs, errors.New("file extension is required"))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = multierr.Append(errs, fmt.Errorf("invalid log level: %q", c.Logging.Level))
	}

	return errs
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Client: ClientConfig{
			Banner:         protocol.DefaultBanner,
			SuccessPrefix:  protocol.SuccessPrefix,
			ErrorPrefix:    protocol.ErrorPrefix,
			ConnectTimeout: 10 * time.Second,
			RecvBufferSize: 1024,
			FileExtension:  ".xml",
		},
		Logging: LoggingConfig{
			Level:   "info",
			Dir:     ".",
			Console: true,
		},
	}
}
