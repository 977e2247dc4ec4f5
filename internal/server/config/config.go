// Package config handles configuration for the server component,
// including defaults, dotenv/environment, JSON or YAML file overlay, and
// command-line flags.
package config

import "time"

// Config holds runtime settings for the rollcall server.
//
// Fields:
//   - EndpointAddrGRPC / EndpointAddrHTTP: bind addresses of the gRPC and HTTP endpoints.
//   - DatabaseDriver: "sqlite" (default) or "pgx".
//   - DatabaseDSN: file path for SQLite, connection URL for PostgreSQL.
//   - MirrorDir: directory holding the per-day spreadsheet mirror.
//   - AdminID: identity key allowed to run administrative operations.
//   - SecretKey: HMAC secret for verifying JWTs (HS256). Do not use test defaults in prod.
//   - TimeZone: IANA zone used to derive calendar dates; empty means local.
//   - StartActive: initial value of the availability flag.
//   - RegistrationIdleTimeout: abandoned registration dialogues expire after this; 0 disables.
//   - SweepInterval: how often expired dialogues are collected.
//   - LogBackend / LogLevel / LogFile: logging setup, see internal/logging.
//   - S3*: optional report publishing; disabled when S3Bucket is empty.
type Config struct {
	EndpointAddrGRPC        string
	EndpointAddrHTTP        string
	DatabaseDriver          string
	DatabaseDSN             string
	MirrorDir               string
	AdminID                 string
	SecretKey               string
	TimeZone                string
	StartActive             bool
	RegistrationIdleTimeout time.Duration
	SweepInterval           time.Duration
	LogBackend              string
	LogLevel                string
	LogFile                 string
	S3RootUser              string
	S3RootPassword          string
	S3Bucket                string
	S3Region                string
	S3BaseEndpoint          string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "rollcall.db"
	c.MirrorDir = "attendance"
	c.SecretKey = "secretKey"
	c.StartActive = false
	c.RegistrationIdleTimeout = 15 * time.Minute
	c.SweepInterval = 1 * time.Minute
	c.LogBackend = "slog"
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (optionally seeded from a dotenv file), an optional
// JSON/YAML file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
