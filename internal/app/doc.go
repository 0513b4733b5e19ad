// Package app provides the orchestration layer for backoffice.
//
// # Overview
//
// This package wires configuration, the API client, the validator and the UI
// together. It is the composition root: Run builds every dependency and
// hands the UI an Opener that creates one Syncer per resource view.
//
// # Components
//
//   - app.go: Run, Env (shared client, validator and metrics registry), logging and metrics server setup
//   - syncer.go: Syncer, the refetch-on-write bridge between a state.Store and the API
//   - retry.go: bounded exponential backoff for the first load
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read config.toml
//	       ├─────> prefs.Load()         Remembered theme and resource
//	       ├─────> setupLogging()       Point log at the log file
//	       ├─────> NewEnv()             API client, validator, metrics
//	       ├─────> serveMetrics()       Optional /metrics endpoint
//	       ├─────> LoadInitial()        First list, retried with backoff
//	       └─────> ui.Run()             Start TUI (blocks)
//
//	Submit:
//	┌─────────────────────────────────────────┐
//	│ Syncer.Submit()                         │
//	│  ├─> store.BeginSubmit(form) (in flight)│
//	│  ├─> validate.Submission()              │
//	│  ├─> client.Create() / client.Update()  │
//	│  ├─> store.Dispatch(CloseForm)          │
//	│  └─> Reload()  (refetch, never merge)   │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid configuration file
//   - Unknown --resource name
//   - Log file that cannot be opened
//
// Recoverable errors (logged, surfaced in the UI):
//   - Initial load failures after retries
//   - Reload, save and delete failures
//
// A failed reload keeps the last list. A failed save keeps the form open.
// A failed delete closes its dialog unless close_delete_on_failure is false.
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{Resource: "blogs"}); err != nil {
//		log.Fatalf("backoffice failed: %v", err)
//	}
package app
