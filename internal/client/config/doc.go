// Package config loads runtime configuration for the rollcall console client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. ROLLCALL_SERVER_ENDPOINT_ADDR, ROLLCALL_ACCESS_TOKEN and
//     ROLLCALL_POLL_INTERVAL environment variables.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-k string   access token
//	-i int      notification poll interval (seconds)
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "access_token": "eyJ...",
//	  "poll_interval": "3s"
//	}
package config
