// Package cli defines the backoffice command tree. With no subcommand it
// starts the TUI; list, delete and resources are scriptable and share the
// TUI's config, store and syncer.
package cli
