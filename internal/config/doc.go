// Package config loads quill's configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. A .env file in the working directory is loaded into the environment
//     (existing variables win)
//  2. If a path is explicitly provided, use it
//  3. Otherwise, use ~/.config/quill/config.toml (default)
//  4. If the config file doesn't exist, fall back to defaults
//  5. ${VAR} references in the file are expanded from the environment
//  6. QUILL_API_URL, QUILL_LOG_LEVEL and QUILL_REQUEST_TIMEOUT override the file
//  7. Empty or unknown values fall back to defaults
//
// # Default Values
//
//   - Config file: ~/.config/quill/config.toml
//   - api_url: https://blog-api.srengchipor.dev
//   - request_timeout: 0 (requests are bounded only by the server and transport)
//   - log_level: info (debug, info, warn, error)
//   - log_file: ~/.local/state/quill/quill.log
//   - data_dir: ~/.local/share/quill (holds session.db)
//
// # Example
//
//	api_url = "https://blog-api.srengchipor.dev"
//	request_timeout = "30s"
//	log_level = "debug"
//	data_dir = "~/.local/share/quill"
//
// # Error Handling
//
//   - Missing file: defaults, no error
//   - Unreadable file: "open config" / "read config" errors
//   - Invalid TOML: "parse config" error
//   - Bad request_timeout: "parse request_timeout" error
package config
