package settings

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	defaultLogLevel = "info"
	defaultMaxSize  = 100 // megabytes
	defaultMaxAge   = 7   // days

	defaultServerMode = "release"

	defaultProducers        = 4
	defaultConsumers        = 4
	defaultItemsPerProducer = 10000
	defaultKeys             = 64
	defaultSweepInterval    = 50  // millis
	defaultStaleAfter       = 200 // millis
	defaultTimeout          = 60  // seconds
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// SetDefaults fills zero values with defaults.
func (c *Config) SetDefaults() {
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaultLogLevel
	}
	if c.Logger.FileLogName != "" {
		if c.Logger.MaxSize == 0 {
			c.Logger.MaxSize = defaultMaxSize
		}
		if c.Logger.MaxAge == 0 {
			c.Logger.MaxAge = defaultMaxAge
		}
	}

	if c.Server.Mode == "" {
		c.Server.Mode = defaultServerMode
	}

	c.Soak.SetDefaults()
}

// SweepDisabled is the SweepInterval value that turns the stale-item sweeper off.
const SweepDisabled = -1

// SetDefaults fills zero values with defaults. A SweepInterval of
// SweepDisabled is kept as is.
func (s *Soak) SetDefaults() {
	if s.Producers == 0 {
		s.Producers = defaultProducers
	}
	if s.Consumers == 0 {
		s.Consumers = defaultConsumers
	}
	if s.ItemsPerProducer == 0 {
		s.ItemsPerProducer = defaultItemsPerProducer
	}
	if s.Keys == 0 {
		s.Keys = defaultKeys
	}
	if s.SweepInterval == 0 {
		s.SweepInterval = defaultSweepInterval
	}
	if s.StaleAfter == 0 {
		s.StaleAfter = defaultStaleAfter
	}
	if s.Timeout == 0 {
		s.Timeout = defaultTimeout
	}
}

// Validate checks the configuration against its validate tags.
func (c *Config) Validate() error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}
