package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/rollcall/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     gRPC bind address (e.g., ":50051")
//	-w string     HTTP bind address (e.g., ":8080")
//	-r string     database driver ("sqlite" or "pgx")
//	-d string     database DSN
//	-m string     spreadsheet mirror directory
//	-i string     admin identity key
//	-s string     JWT HMAC secret key
//	-z string     time zone for calendar dates
//	-t duration   registration idle timeout (e.g., "15m"; 0 disables)
//	-l string     log level
//	-b string     S3 bucket name for published reports
//	-e string     S3 base endpoint
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-w", "-r", "-d", "-m", "-i", "-s", "-z", "-t", "-l", "-b", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.EndpointAddrHTTP, "w", config.EndpointAddrHTTP, "address and port to run HTTP server")
	fs.StringVar(&config.DatabaseDriver, "r", config.DatabaseDriver, "database driver (sqlite|pgx)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.MirrorDir, "m", config.MirrorDir, "spreadsheet mirror directory")
	fs.StringVar(&config.AdminID, "i", config.AdminID, "admin identity key")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.TimeZone, "z", config.TimeZone, "time zone for calendar dates")
	fs.DurationVar(&config.RegistrationIdleTimeout, "t", config.RegistrationIdleTimeout, "registration idle timeout")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket for reports")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
