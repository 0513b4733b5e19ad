// Package config loads the backoffice TOML configuration.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/backoffice/config.toml
//  3. If the file doesn't exist, fall back to Default()
//  4. If the file exists but a field is missing or blank, keep its default
//
// # Fields
//
//	api_base                 = "http://localhost:5000/api"
//	page_size                = 5
//	request_timeout          = "5s"
//	close_delete_on_failure  = true
//	log_file                 = "~/.local/state/backoffice/backoffice.log"
//	metrics_addr             = ""            # e.g. "127.0.0.1:9464"; empty disables /metrics
//	resource                 = "team-members"
//
// page_size must be within 1..100 and request_timeout must be a positive Go
// duration; anything else is a load error rather than a silent default.
// resource must name a catalogued resource.
//
// Paths beginning with "~" are expanded against the user's home directory.
package config
