package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaultsWithNoFileOrEnv(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Defaults(), cfg)
}

func TestLoadHonorsEnvOverride(t *testing.T) {
	t.Setenv("RFHOST_DEVICE", "/dev/ttyUSB3")
	t.Setenv("RFHOST_BAUD", "57600")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB3", cfg.Device)
	assert.Equal(t, 57600, cfg.Baud)
	assert.Equal(t, Defaults().ReadTimeoutMillis, cfg.ReadTimeoutMillis)
}

func TestLoadMissingConfigFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/rfhost.yaml")
	require.NoError(t, err)

	assert.Equal(t, Defaults(), cfg)
}
