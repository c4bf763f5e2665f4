// Package appctx provides a shared bootstrap helper for CLI commands.
// It centralizes config loading, logger construction and connection
// acquisition, and guarantees the connection is closed when a command
// returns.
package appctx

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lherron/scomadm/internal/config"
	"github.com/lherron/scomadm/internal/db"
	"github.com/lherron/scomadm/internal/logging"
	"github.com/lherron/scomadm/internal/render"
	"github.com/lherron/scomadm/internal/store"
)

// App holds the shared application context for commands.
type App struct {
	// Config is the loaded configuration with flag overrides applied
	Config *config.Config

	// Log writes to the command's stderr
	Log *zap.Logger

	// DB is the opened connection (nil if NeedsDB is false)
	DB *db.DB

	// Store wraps DB (nil if NeedsDB is false)
	Store *store.Store
}

// Close releases resources held by the App.
// Safe to call multiple times.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
		a.DB = nil
		a.Store = nil
	}
}

// Renderer returns a renderer for w using the configured output format.
func (a *App) Renderer(w io.Writer) *render.Renderer {
	return render.NewRenderer(w, render.Options{Format: render.Format(a.Config.Output)})
}

// Options configures the bootstrap behavior.
type Options struct {
	// NeedsDB indicates whether to open the database connection.
	NeedsDB bool
}

// DefaultOptions returns default options (DB required).
func DefaultOptions() Options {
	return Options{NeedsDB: true}
}

// ConfigOnly returns options that load configuration without connecting.
func ConfigOnly() Options {
	return Options{NeedsDB: false}
}

// RunError marks a failure raised after argument parsing succeeded, while
// bootstrapping or running a command. The dispatcher maps it to a
// failure exit code rather than a usage error.
type RunError struct {
	Err error
}

func (e *RunError) Error() string {
	return e.Err.Error()
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// RunFunc is the signature for command run functions.
type RunFunc func(app *App, cmd *cobra.Command, args []string) error

// WithApp wraps a command's run function with shared bootstrap logic.
// It loads config and opens the database if requested. The database is
// closed when the wrapped function returns, whether or not it failed.
// Every error is returned as a *RunError.
func WithApp(opts Options, fn RunFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := Bootstrap(cmd, opts)
		if err != nil {
			return &RunError{Err: err}
		}
		defer app.Close()

		if err := fn(app, cmd, args); err != nil {
			return &RunError{Err: err}
		}
		return nil
	}
}

// Bootstrap initializes the App according to the given options.
// Callers are responsible for calling App.Close() when done.
func Bootstrap(cmd *cobra.Command, opts Options) (*App, error) {
	app := &App{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Flags win over every other configuration source
	if dsnFlag := cmd.Flag("dsn"); dsnFlag != nil {
		if dsn := dsnFlag.Value.String(); dsn != "" {
			app.Config.Database.DSN = dsn
		}
	}
	if outputFlag := cmd.Flag("output"); outputFlag != nil {
		if output := outputFlag.Value.String(); output != "" {
			app.Config.Output = output
		}
	}

	if err := app.Config.Validate(); err != nil {
		return nil, err
	}

	app.Log = logging.New(app.Config.Log, cmd.ErrOrStderr())

	if opts.NeedsDB {
		database, err := db.Open(commandContext(cmd), app.Config.Database, app.Log)
		if err != nil {
			return nil, err
		}
		app.DB = database
		app.Store = store.New(database)
	}

	return app, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
