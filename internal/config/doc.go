// Package config loads skillshare client configuration.
//
// # Sources
//
// Load layers three sources with koanf, later ones winning:
//
//  1. Built-in defaults
//  2. The TOML file at the given path, or ~/.config/skillshare/config.toml
//  3. SKILLSHARE_* environment variables (SKILLSHARE_SERVER_URL -> server_url)
//
// A missing file is not an error. A file that exists but does not parse is.
//
// # Keys
//
//	server_url      = "http://localhost:8000"
//	poll_wait       = 90        # seconds, sent as Prefer: wait=N
//	poll_grace      = "30s"     # added to poll_wait for the poll transport timeout
//	retry_backoff   = "500ms"
//	request_timeout = "10s"     # mutations
//	prefs_path      = "~/.config/skillshare/prefs.toml"
//	log_level       = "info"
//	log_file        = "~/.local/state/skillshare/skillshare.log"
//	metrics_addr    = ""        # empty disables the Prometheus endpoint
//	rate_limit      = 5.0       # mutations per second
//	rate_burst      = 10
//
// Durations are Go duration strings. A bare integer would decode as
// nanoseconds, so values under 1ms are rejected. Blank or non-positive values
// fall back to their defaults and tilde paths are expanded.
package config
