package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadSweepConfigDefaults(t *testing.T) {
	cfg := LoadSweepConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Interval)
	assert.Equal(t, 24*time.Hour, cfg.TokenGrace)
}

func TestLoadSweepConfigClampsInterval(t *testing.T) {
	t.Setenv("SWEEP_INTERVAL", "5s")

	cfg := LoadSweepConfig()
	assert.Equal(t, time.Minute, cfg.Interval)
}

func TestLoadSweepConfigDisabled(t *testing.T) {
	t.Setenv("SWEEP_ENABLED", "false")

	cfg := LoadSweepConfig()
	assert.False(t, cfg.Enabled)
}
