package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/five82/backoffice/internal/api"
	"github.com/five82/backoffice/internal/config"
	"github.com/five82/backoffice/internal/prefs"
	"github.com/five82/backoffice/internal/resource"
	"github.com/five82/backoffice/internal/ui"
	"github.com/five82/backoffice/internal/validate"
)

const (
	initialLoadAttempts = 3
	shutdownTimeout     = 2 * time.Second
)

// Options configure the backoffice application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/backoffice/prefs.toml
	Resource   string // overrides the remembered and configured resource
}

// Env holds the services shared by every resource view.
type Env struct {
	Config    config.Config
	Client    *api.Client
	Validator *validate.UniquenessValidator
	Registry  *prometheus.Registry
}

// NewEnv builds the API client and validator for cfg, registering their
// metrics on a fresh registry.
func NewEnv(cfg config.Config) (*Env, error) {
	reg := prometheus.NewRegistry()
	client, err := api.NewClient(cfg.APIBase,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithMetrics(api.NewMetrics(reg)),
	)
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}
	v := validate.NewUniquenessValidator(client, validate.WithMetrics(validate.NewMetrics(reg)))
	return &Env{Config: cfg, Client: client, Validator: v, Registry: reg}, nil
}

// NewSyncer returns a syncer for r configured from the environment.
func (e *Env) NewSyncer(r resource.Resource) *Syncer {
	return NewSyncer(e.Client, r, e.Config.PageSize,
		WithTimeout(e.Config.RequestTimeout),
		WithValidator(e.Validator),
		WithCloseDeleteOnFailure(e.Config.CloseDeleteOnFailure),
	)
}

var _ ui.Session = (*Syncer)(nil)

// Open implements ui.Opener.
func (e *Env) Open(r resource.Resource) ui.Session {
	return e.NewSyncer(r)
}

// Run boots the backoffice TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	res, err := pickResource(opts.Resource, userPrefs.Resource, cfg.Resource)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	env, err := NewEnv(cfg)
	if err != nil {
		return err
	}
	if cfg.MetricsAddr != "" {
		go func() {
			if err := serveMetrics(ctx, cfg.MetricsAddr, env.Registry); err != nil {
				log.Printf("metrics server stopped: %v", err)
			}
		}()
	}

	log.Printf("backoffice starting: api=%s resource=%s", env.Client.BaseURL(), res.Name)

	// Populate the first view before the UI starts; the UI reports
	// a failure in its header.
	first := env.NewSyncer(res)
	if err := first.LoadInitial(ctx, initialLoadAttempts, defaultRetryBase); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("initial load of %s failed: %v", res.Name, err)
	}

	uiOpts := ui.Options{
		Context:   ctx,
		Open:      env.Open,
		Session:   first,
		Resource:  res,
		ThemeName: userPrefs.Theme,
		PrefsPath: prefsPath,
		LogPath:   cfg.LogFile,
	}
	return ui.Run(uiOpts)
}

// pickResource returns the first of the requested, remembered and configured
// resources that exists. An unknown requested resource is an error.
func pickResource(requested, remembered, configured string) (resource.Resource, error) {
	if requested != "" {
		return resource.Lookup(requested)
	}
	if remembered != "" {
		if r, err := resource.Lookup(remembered); err == nil {
			return r, nil
		}
	}
	if configured == "" {
		configured = resource.DefaultName
	}
	return resource.Lookup(configured)
}

// setupLogging points the standard logger at path, since the TUI owns the
// terminal. An empty path discards log output.
func setupLogging(path string) (func(), error) {
	restore := func() { log.SetOutput(os.Stderr) }
	if path == "" {
		log.SetOutput(io.Discard)
		return restore, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return func() {
		restore()
		_ = f.Close()
	}, nil
}

// serveMetrics exposes reg on addr until ctx ends.
func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return serveMetricsOn(ctx, ln, reg)
}

func serveMetricsOn(ctx context.Context, ln net.Listener, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("metrics listening on %s", ln.Addr())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
