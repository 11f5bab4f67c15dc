package bootstrap

import (
	"github.com/kbukum/seqkit/config"
)

// Config is the interface constraint for program configuration types.
// Any struct that embeds config.ServiceConfig (value embedding) satisfies
// it through promoted methods:
//
//	type DemoConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Watch WatchConfig `yaml:"watch" mapstructure:"watch"`
//	}
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
