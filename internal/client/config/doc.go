// Package config loads runtime configuration for the tripcal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Environment: TRIPCAL_SERVER, TRIPCAL_LANGUAGE.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend base URL, e.g. http://localhost:3133
//	-d string   data directory for the local database and device key
//	-l string   language sent with signup and verification emails
//	-r string   cron schedule of the background event refresh
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "24h" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:3133",
//	  "data_dir": "/home/ann/.config/tripcal",
//	  "language": "en",
//	  "log_level": "info",
//	  "inactivity_timeout": "24h",
//	  "request_timeout": "15s",
//	  "refresh_schedule": "@every 5m",
//	  "week_start": "monday"
//	}
package config
