package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/rollcall/internal/flagx"
)

// EnvPrefix prefixes every environment variable read by the server.
const EnvPrefix = "ROLLCALL_"

// parseEnv overlays Config with ROLLCALL_* environment variables. When -env
// names a dotenv file it is loaded first; variables already present in the
// process environment win over the file. Malformed values panic.
func parseEnv(config *Config) {
	if path := flagx.EnvFileFlag(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	}

	envString(&config.EndpointAddrGRPC, "ENDPOINT_ADDR_GRPC")
	envString(&config.EndpointAddrHTTP, "ENDPOINT_ADDR_HTTP")
	envString(&config.DatabaseDriver, "DATABASE_DRIVER")
	envString(&config.DatabaseDSN, "DATABASE_DSN")
	envString(&config.MirrorDir, "MIRROR_DIR")
	envString(&config.AdminID, "ADMIN_ID")
	envString(&config.SecretKey, "SECRET_KEY")
	envString(&config.TimeZone, "TIME_ZONE")
	envBool(&config.StartActive, "START_ACTIVE")
	envDuration(&config.RegistrationIdleTimeout, "REGISTRATION_IDLE_TIMEOUT")
	envDuration(&config.SweepInterval, "SWEEP_INTERVAL")
	envString(&config.LogBackend, "LOG_BACKEND")
	envString(&config.LogLevel, "LOG_LEVEL")
	envString(&config.LogFile, "LOG_FILE")
	envString(&config.S3RootUser, "S3_ROOT_USER")
	envString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	envString(&config.S3Bucket, "S3_BUCKET")
	envString(&config.S3Region, "S3_REGION")
	envString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
}

func envString(dst *string, name string) {
	if v, ok := os.LookupEnv(EnvPrefix + name); ok {
		*dst = v
	}
}

func envBool(dst *bool, name string) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		panic(err)
	}
	*dst = b
}

func envDuration(dst *time.Duration, name string) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
