package cli

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/backoffice/internal/app"
	"github.com/five82/backoffice/internal/config"
	"github.com/five82/backoffice/internal/resource"
)

// App holds the persistent flags shared by every command.
type App struct {
	ConfigPath string
	PrefsPath  string
	Resource   string
	Verbose    bool

	runTUI func(context.Context, app.Options) error
}

// NewRootCmd returns the backoffice command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(app.Run)
}

func newRootCmd(runTUI func(context.Context, app.Options) error) *cobra.Command {
	a := &App{runTUI: runTUI}

	cmd := &cobra.Command{
		Use:          "backoffice",
		Short:        "Terminal admin for the content API",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  backoffice

  # Open a specific resource
  backoffice --resource blogs

  # Scriptable commands
  backoffice list --resource team-members --query ada
  backoffice delete --resource blogs 65f1c2
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context(), app.Options{
				ConfigPath: a.ConfigPath,
				PrefsPath:  a.PrefsPath,
				Resource:   a.Resource,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&a.ConfigPath, "config", envOr("BACKOFFICE_CONFIG", ""), "Config file (default ~/.config/backoffice/config.toml)")
	cmd.PersistentFlags().StringVar(&a.PrefsPath, "prefs", envOr("BACKOFFICE_PREFS", ""), "Preferences file (default ~/.config/backoffice/prefs.toml)")
	cmd.PersistentFlags().StringVarP(&a.Resource, "resource", "r", envOr("BACKOFFICE_RESOURCE", ""), "Resource to open, e.g. team-members or blogs/categories")
	cmd.PersistentFlags().BoolVarP(&a.Verbose, "verbose", "v", false, "Log API activity to stderr")

	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newDeleteCmd(a))
	cmd.AddCommand(newResourcesCmd(a))

	return cmd
}

// openSyncer loads the config and returns a loaded syncer for the selected
// resource. Scripted commands skip the remembered TUI resource.
func (a *App) openSyncer(cmd *cobra.Command) (*app.Syncer, error) {
	if a.Verbose {
		log.SetOutput(cmd.ErrOrStderr())
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return nil, err
	}
	name := a.Resource
	if name == "" {
		name = cfg.Resource
	}
	res, err := resource.Lookup(name)
	if err != nil {
		return nil, err
	}
	env, err := app.NewEnv(cfg)
	if err != nil {
		return nil, err
	}
	s := env.NewSyncer(res)
	if err := s.Reload(cmd.Context()); err != nil {
		return nil, err
	}
	return s, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
