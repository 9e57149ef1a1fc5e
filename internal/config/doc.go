// Package config loads the InLine client configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/inline/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. INLINE_API_URL and INLINE_LOG_LEVEL override whatever was loaded
//
// # Default Values
//
//   - API base URL: http://localhost:4100/api
//   - Public URL (customer links, QR codes): http://localhost:4200
//   - Session file: ~/.local/state/inline/session.toml
//   - Log file: ~/.local/state/inline/inline.log
//   - Dashboard poll interval: 15 seconds
//
// # TOML Format
//
//	api_url = "https://api.example.com/api"
//	public_url = "https://inline.example.com"
//	session_path = "~/.local/state/inline/session.toml"
//	log_path = "~/.local/state/inline/inline.log"
//	log_level = "info"
//	poll_seconds = 15
//
// Every field is optional. Tilde expansion is performed for path fields.
//
// Missing config files are NOT an error. InLine works against a local backend
// without any configuration file.
package config
