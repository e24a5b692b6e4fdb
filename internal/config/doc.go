// Package config loads hydrant's TOML configuration.
//
// # Resolution
//
// Load reads ~/.config/hydrant/config.toml unless a path is given. A missing
// file is not an error: Default values are used. Empty or blank fields also
// keep their defaults. HYDRANT_API_URL and HYDRANT_ACCESS_KEY override the
// file, which lets scripts avoid writing the access key to disk.
//
// # Format
//
//	api_url = "127.0.0.1:45869"
//	access_key = "<64 hex characters>"
//	timeout = "10s"
//	log_level = "info"          # debug, info, warn, error
//	log_format = "console"      # console or json
//	log_file = "~/.local/state/hydrant/hydrant.log"
//	metrics_addr = ""           # host:port for /metrics; empty disables
//	poll_interval = "5s"        # page browser refresh, at least 1s
//
// Durations use time.ParseDuration syntax. Tilde paths are expanded.
//
// # Validation
//
// The loaded Config is checked with go-playground/validator. Errors name the
// first offending field, e.g. "invalid config: AccessKey fails \"len\"".
package config
