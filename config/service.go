package config

import (
	"fmt"
	"slices"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/logger"
)

var validEnvironments = []string{"development", "staging", "production"}

// ServiceConfig contains the fields every seqkit program needs.
// Programs embed it in their own config structs:
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Watch WatchConfig `yaml:"watch" mapstructure:"watch"`
//	}
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// GetServiceConfig returns the embedded ServiceConfig.
func (c *ServiceConfig) GetServiceConfig() *ServiceConfig {
	return c
}

// ApplyDefaults fills in empty fields. Debug builds log at debug level
// unless a level was configured.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
}

// Validate reports the first invalid field as an INVALID_CONFIG error.
func (c *ServiceConfig) Validate() error {
	if c.Name == "" {
		return errors.InvalidConfig("config.name is required")
	}
	if !slices.Contains(validEnvironments, c.Environment) {
		return errors.InvalidConfig(fmt.Sprintf("config.environment must be one of %v (got: %s)", validEnvironments, c.Environment))
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.InvalidConfig("config.logging is invalid").WithCause(err)
	}
	return nil
}
