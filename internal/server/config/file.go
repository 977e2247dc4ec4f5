package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/rollcall/internal/flagx"
	"github.com/dmitrijs2005/rollcall/internal/timex"
)

// FileConfig is the on-disk representation of Config. Durations use
// timex.Duration so both "15m" and integer nanoseconds are accepted.
// Only fields present in the file override the current values.
type FileConfig struct {
	EndpointAddrGRPC        string          `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	EndpointAddrHTTP        string          `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	DatabaseDriver          string          `json:"database_driver" yaml:"database_driver"`
	DatabaseDSN             string          `json:"database_dsn" yaml:"database_dsn"`
	MirrorDir               string          `json:"mirror_dir" yaml:"mirror_dir"`
	AdminID                 string          `json:"admin_id" yaml:"admin_id"`
	SecretKey               string          `json:"secret_key" yaml:"secret_key"`
	TimeZone                string          `json:"time_zone" yaml:"time_zone"`
	StartActive             *bool           `json:"start_active" yaml:"start_active"`
	RegistrationIdleTimeout *timex.Duration `json:"registration_idle_timeout" yaml:"registration_idle_timeout"`
	SweepInterval           *timex.Duration `json:"sweep_interval" yaml:"sweep_interval"`
	LogBackend              string          `json:"log_backend" yaml:"log_backend"`
	LogLevel                string          `json:"log_level" yaml:"log_level"`
	LogFile                 string          `json:"log_file" yaml:"log_file"`
	S3RootUser              string          `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword          string          `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                string          `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                string          `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint          string          `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
}

// parseFile loads configuration values from the file named by -c/-config.
// Files ending in .yaml or .yml are decoded as YAML, anything else as JSON.
// If no file is given nothing happens; unreadable or invalid files panic.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc, err := decodeFile(path, data)
	if err != nil {
		panic(err)
	}

	fc.apply(config)
}

func decodeFile(path string, data []byte) (*FileConfig, error) {
	fc := &FileConfig{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, fc); err != nil {
			return nil, fmt.Errorf("yaml config %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, fc); err != nil {
			return nil, fmt.Errorf("json config %s: %w", path, err)
		}
	}

	return fc, nil
}

func (fc *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrGRPC, fc.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, fc.EndpointAddrHTTP)
	setString(&config.DatabaseDriver, fc.DatabaseDriver)
	setString(&config.DatabaseDSN, fc.DatabaseDSN)
	setString(&config.MirrorDir, fc.MirrorDir)
	setString(&config.AdminID, fc.AdminID)
	setString(&config.SecretKey, fc.SecretKey)
	setString(&config.TimeZone, fc.TimeZone)
	setString(&config.LogBackend, fc.LogBackend)
	setString(&config.LogLevel, fc.LogLevel)
	setString(&config.LogFile, fc.LogFile)
	setString(&config.S3RootUser, fc.S3RootUser)
	setString(&config.S3RootPassword, fc.S3RootPassword)
	setString(&config.S3Bucket, fc.S3Bucket)
	setString(&config.S3Region, fc.S3Region)
	setString(&config.S3BaseEndpoint, fc.S3BaseEndpoint)

	if fc.StartActive != nil {
		config.StartActive = *fc.StartActive
	}
	if fc.RegistrationIdleTimeout != nil {
		config.RegistrationIdleTimeout = fc.RegistrationIdleTimeout.Duration
	}
	if fc.SweepInterval != nil {
		config.SweepInterval = fc.SweepInterval.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
