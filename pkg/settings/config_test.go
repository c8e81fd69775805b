package settings

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_SetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()

	assert.Equal(t, "info", cfg.Logger.LogLevel)
	assert.Zero(t, cfg.Logger.MaxSize, "rotation defaults only apply with a log file")
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, 4, cfg.Soak.Producers)
	assert.Equal(t, 4, cfg.Soak.Consumers)
	assert.Equal(t, 60, cfg.Soak.Timeout)

	require.NoError(t, cfg.Validate())
}

func TestConfig_SetDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Logger: Logger{LogLevel: "debug", FileLogName: "soak.log", MaxSize: 5},
		Soak:   Soak{Producers: 1, Consumers: 2, Keys: 3},
	}
	cfg.SetDefaults()

	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, 5, cfg.Logger.MaxSize)
	assert.Equal(t, 7, cfg.Logger.MaxAge)
	assert.Equal(t, 1, cfg.Soak.Producers)
	assert.Equal(t, 2, cfg.Soak.Consumers)
	assert.Equal(t, 3, cfg.Soak.Keys)
}

func TestSoak_SetDefaults_SweepDisabled(t *testing.T) {
	cfg := Config{Soak: Soak{SweepInterval: SweepDisabled}}
	cfg.SetDefaults()

	assert.Equal(t, SweepDisabled, cfg.Soak.SweepInterval)
	assert.Equal(t, defaultStaleAfter, cfg.Soak.StaleAfter)
	require.NoError(t, cfg.Validate())

	var zero Soak
	zero.SetDefaults()
	assert.Equal(t, defaultSweepInterval, zero.SweepInterval, "zero still means default")
}

func TestConfig_Validate_ItemsPerProducerUpperBound(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	cfg.Soak.ItemsPerProducer = 1<<32 - 1
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"bad_log_level", func(c *Config) { c.Logger.LogLevel = "loud" }, "LogLevel"},
		{"bad_mode", func(c *Config) { c.Server.Mode = "prod" }, "Mode"},
		{"bad_port", func(c *Config) { c.Server.Port = 70000 }, "Port"},
		{"negative_producers", func(c *Config) { c.Soak.Producers = -1 }, "Producers"},
		{"too_many_nowait", func(c *Config) { c.Soak.NowaitConsumers = c.Soak.Consumers + 1 }, "NowaitConsumers"},
		{"items_overflow_sequence", func(c *Config) { c.Soak.ItemsPerProducer = 1 << 32 }, "ItemsPerProducer"},
		{"sweep_below_disabled", func(c *Config) { c.Soak.SweepInterval = SweepDisabled - 1 }, "SweepInterval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.SetDefaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.wantField, verrs[0].Field())
		})
	}
}
