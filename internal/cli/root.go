package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"itemedit/internal/format"
	"itemedit/internal/logging"
	"itemedit/internal/model"
	"itemedit/internal/store"
	"itemedit/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	DBPath     string
	User       string
	LogFile    string
	LogLevel   string
	PrettyJSON bool
	Format     string

	settings store.Settings
	log      *logging.Logger
	st       *store.Store
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "itemedit",
		Short:        "Item editor with comments (TUI + CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  itemedit

  # Scriptable commands
  itemedit items list --format text
  itemedit items comment item-1 "Looks good"

  # Direct edit (shortcut for: itemedit items edit <item-id>)
  itemedit item-1
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app, false, nil)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.teardown()
	}

	cmd.PersistentFlags().StringVar(&app.DBPath, "db", "", "Path to the SQLite database (default ~/.itemedit/items.sqlite)")
	cmd.PersistentFlags().StringVar(&app.User, "user", "", "Display name used as comment author (overrides config and ITEMEDIT_USER)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Log file (default ~/.itemedit/itemedit.log)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("ITEMEDIT_FORMAT", "json"), "Output format (json|text)")

	cmd.AddCommand(newItemsCmd(app))

	return cmd
}

// setup resolves settings (config file, env, then flags) and opens the logger.
func (app *App) setup(cmd *cobra.Command) error {
	cfg, err := store.LoadConfig()
	if err != nil {
		return writeErr(cmd, err)
	}
	s, err := cfg.Resolve()
	if err != nil {
		return writeErr(cmd, err)
	}
	if v := strings.TrimSpace(app.DBPath); v != "" {
		s.DBPath = v
	}
	if v := strings.TrimSpace(app.User); v != "" {
		s.CurrentUser = v
	}
	if v := strings.TrimSpace(app.LogFile); v != "" {
		s.LogFile = v
	}
	if v := strings.TrimSpace(app.LogLevel); v != "" {
		s.LogLevel = v
	}
	app.settings = s

	log, err := logging.Open(s.LogFile, s.LogLevel)
	if err != nil {
		return writeErr(cmd, err)
	}
	app.log = log
	log.WithField("command", cmd.CommandPath()).Debug("start")
	return nil
}

func (app *App) teardown() error {
	var firstErr error
	if app.st != nil {
		if err := app.st.Close(); err != nil {
			firstErr = err
		}
		app.st = nil
	}
	if err := app.log.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func openStore(ctx context.Context, app *App) (*store.Store, error) {
	if app.st != nil {
		return app.st, nil
	}
	st, err := store.Open(ctx, app.settings.DBPath)
	if err != nil {
		return nil, err
	}
	app.st = st
	return st, nil
}

func runTUI(cmd *cobra.Command, app *App, direct bool, item *model.Item) error {
	st, err := openStore(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	stateDir, err := store.ConfigDir()
	if err != nil {
		return writeErr(cmd, err)
	}
	err = tui.Run(tui.AppOptions{
		Store:    st,
		Settings: app.settings,
		Logger:   app.log.WithField("component", "tui"),
		Direct:   direct,
		Item:     item,
		StateDir: stateDir,
	})
	if err != nil {
		app.log.WithError(err).Error("tui exited with error")
		return writeErr(cmd, fmt.Errorf("tui: %w", err))
	}
	return nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// writeOut wraps JSON output in {"data": ...}; text output renders v directly.
func writeOut(cmd *cobra.Command, app *App, v any) error {
	if app.Format == "text" {
		return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
	}
	return format.Write(cmd.OutOrStdout(), map[string]any{"data": v}, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
