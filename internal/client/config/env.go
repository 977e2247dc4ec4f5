package config

import (
	"os"
	"time"
)

const EnvPrefix = "ROLLCALL_"

func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvPrefix + "SERVER_ENDPOINT_ADDR"); ok && v != "" {
		cfg.ServerEndpointAddr = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "ACCESS_TOKEN"); ok && v != "" {
		cfg.AccessToken = v
	}
	if v, ok := os.LookupEnv(EnvPrefix + "POLL_INTERVAL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.PollInterval = d
	}
}
