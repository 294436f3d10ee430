// Package cli holds the configuration shared by the faultline commands.
package cli

import (
	"github.com/kbukum/faultline/config"
	"github.com/kbukum/faultline/errors"
	"github.com/kbukum/faultline/httpclient"
	"github.com/kbukum/faultline/logger"
	"github.com/kbukum/faultline/validation"
)

// AppName names the config files, the environment prefix and telemetry.
const AppName = "faultline"

// Config is the faultline configuration, read from faultline.yml,
// FAULTLINE_* variables and flags.
type Config struct {
	config.BaseConfig `yaml:",inline" mapstructure:",squash"`

	Logging   logger.Config     `yaml:"logging" mapstructure:"logging"`
	Output    OutputConfig      `yaml:"output" mapstructure:"output"`
	HTTP      httpclient.Config `yaml:"http" mapstructure:"http"`
	Store     StoreConfig       `yaml:"store" mapstructure:"store"`
	Telemetry TelemetryConfig   `yaml:"telemetry" mapstructure:"telemetry"`

	// Keypair is the keypair file; empty means ~/.config/faultline/id.json.
	Keypair string `yaml:"keypair" mapstructure:"keypair"`
}

// OutputConfig selects how results are printed.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=table json yaml binary"`
}

// StoreConfig locates the key-value store used by the store commands.
type StoreConfig struct {
	Path       string `yaml:"path" mapstructure:"path"`
	SyncWrites bool   `yaml:"sync_writes" mapstructure:"sync_writes"`
}

// TelemetryConfig enables OTLP export of traces and fault metrics.
type TelemetryConfig struct {
	OTLPEndpoint string  `yaml:"otlp_endpoint" mapstructure:"otlp_endpoint" validate:"omitempty,hostname_port"`
	Insecure     bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate   float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// Defaults are the dotted-key defaults handed to the config loader.
func Defaults() map[string]any {
	return map[string]any{
		"name":                  AppName,
		"environment":           "production",
		"logging.level":         "warn",
		"logging.format":        "console",
		"output.format":         "table",
		"store.path":            "faultline.db",
		"telemetry.insecure":    true,
		"telemetry.sample_rate": 1.0,
	}
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = AppName
	}
	c.BaseConfig.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.HTTP.ApplyDefaults()
	if c.Output.Format == "" {
		c.Output.Format = "table"
	}
}

// Validate checks struct tags first, then the nested configs' own rules.
func (c *Config) Validate() *errors.Error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return c.HTTP.Validate()
}
