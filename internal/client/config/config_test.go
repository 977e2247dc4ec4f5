package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, c.PollInterval)
	assert.Empty(t, c.AccessToken)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, cfg.PollInterval)
}

func TestParseEnv(t *testing.T) {
	t.Setenv(EnvPrefix+"SERVER_ENDPOINT_ADDR", "srv:1")
	t.Setenv(EnvPrefix+"ACCESS_TOKEN", "tok")
	t.Setenv(EnvPrefix+"POLL_INTERVAL", "7s")

	cfg := &Config{}
	parseEnv(cfg)

	assert.Equal(t, &Config{ServerEndpointAddr: "srv:1", AccessToken: "tok", PollInterval: 7 * time.Second}, cfg)

	t.Setenv(EnvPrefix+"POLL_INTERVAL", "soon")
	assert.Panics(t, func() { parseEnv(&Config{}) })
}
