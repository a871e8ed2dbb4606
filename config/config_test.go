package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 60, cfg.Production.DefaultPulseMinutes)
	assert.Equal(t, "07:00", cfg.Shift.StartTime)
	require.Len(t, cfg.Shift.Breaks, 1)
	assert.Equal(t, "12:00", cfg.Shift.Breaks[0].Start)
	assert.Equal(t, "13:00", cfg.Shift.Breaks[0].End)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PULSE_SERVER_PORT", "9100")
	t.Setenv("PULSE_PRODUCTION_DEFAULT_PULSE_MINUTES", "30")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 30, cfg.Production.DefaultPulseMinutes)
}

func TestValidate_Rejects(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:     ServerConfig{Port: 8000},
			Production: ProductionConfig{DefaultPulseMinutes: 60},
			Shift:      ShiftConfig{StartTime: "07:00", EndTime: "17:00", Timezone: "UTC"},
		}
	}

	cfg := base()
	require.NoError(t, cfg.Validate())

	cfg = base()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Production.DefaultPulseMinutes = 0
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Shift.Timezone = "Mars/Olympus"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Shift.Breaks = []BreakConfig{{Start: "12:00"}}
	assert.Error(t, cfg.Validate())
}
