package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_parseFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("json", func(t *testing.T) {
		path := writeTempFile(t, "cfg.json", `{
			"endpoint_addr_grpc": "www.example:9000",
			"database_driver": "pgx",
			"database_dsn": "postgres://x",
			"admin_id": "100",
			"start_active": true,
			"registration_idle_timeout": "30m",
			"sweep_interval": 5000000000,
			"s3_bucket": "reports"
		}`)
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
		assert.Equal(t, "pgx", cfg.DatabaseDriver)
		assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
		assert.Equal(t, "100", cfg.AdminID)
		assert.True(t, cfg.StartActive)
		assert.Equal(t, 30*time.Minute, cfg.RegistrationIdleTimeout)
		assert.Equal(t, 5*time.Second, cfg.SweepInterval)
		assert.Equal(t, "reports", cfg.S3Bucket)
		assert.Equal(t, ":8080", cfg.EndpointAddrHTTP, "absent keys keep the previous value")
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeTempFile(t, "cfg.yaml", "admin_id: \"7\"\nmirror_dir: /tmp/m\nregistration_idle_timeout: 0s\n")
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "7", cfg.AdminID)
		assert.Equal(t, "/tmp/m", cfg.MirrorDir)
		assert.Equal(t, time.Duration(0), cfg.RegistrationIdleTimeout)
	})

	t.Run("no file flag leaves config untouched", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{AdminID: "x"}
		parseFile(cfg)
		assert.Equal(t, &Config{AdminID: "x"}, cfg)
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(t.TempDir(), "nope.json")}
		require.Panics(t, func() { parseFile(&Config{}) })
	})

	t.Run("invalid json panics", func(t *testing.T) {
		path := writeTempFile(t, "bad.json", `{"admin_id":`)
		os.Args = []string{"testbin", "-c", path}
		require.Panics(t, func() { parseFile(&Config{}) })
	})
}
