package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"kanban-cli/internal/api"
	"kanban-cli/internal/format"
	"kanban-cli/internal/forms"
	"kanban-cli/internal/mutate"
	"kanban-cli/internal/reconcile"
	"kanban-cli/internal/selection"
	"kanban-cli/internal/store"
	"kanban-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	APIURL     string
	PrettyJSON bool
	Format     string
	Verbose    bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "kanban",
		Short:        "Kanban board client (TUI + CLI) for a REST backend",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  kanban

  # Scriptable commands
  kanban boards list
  kanban boards create --name "Roadmap" --column Todo --column Doing --column Done
  kanban tasks create --board Roadmap --title "Ship it" --status Todo --subtask "Write" --subtask "Test"

  # Point at another backend
  kanban --api http://localhost:5000 boards show
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Best effort: a broken .env should not block the CLI, but it should be visible.
		if err := store.LoadDotEnv(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: .env: %v\n", err)
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.APIURL, "api", "", "REST backend URL (default: $KANBAN_API_URL, config apiUrl, then "+api.DefaultBaseURL+")")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("KANBAN_FORMAT", "json"), "Output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "Log API requests to stderr")

	cmd.AddCommand(newBoardsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newSubtasksCmd(app))
	cmd.AddCommand(newThemeCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// session is the per-invocation wiring shared by CLI commands and the TUI.
type session struct {
	cfg    *store.Config
	client *api.Client
	sel    *selection.Manager
	prefs  *store.Prefs
	opts   mutate.Options
	logger *log.Logger

	closers []io.Closer
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i].Close()
	}
}

func resolveAPIURL(app *App, cfg *store.Config) string {
	if v := strings.TrimSpace(app.APIURL); v != "" {
		return v
	}
	def := api.DefaultBaseURL
	if cfg != nil && strings.TrimSpace(cfg.APIURL) != "" {
		def = strings.TrimSpace(cfg.APIURL)
	}
	return store.Getenv(store.EnvAPIURL, def)
}

func newSession(ctx context.Context, app *App, logw io.Writer) (*session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	s := &session{cfg: cfg, opts: mutate.Options{Cascade: cfg.Cascade(), Limit: cfg.Concurrency()}}
	if logw == nil {
		logw = io.Discard
	}
	s.logger = log.New(logw, "kanban: ", log.LstdFlags)

	client, err := api.New(resolveAPIURL(app, cfg), api.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	s.client = client
	rec := reconcile.New(client, reconcile.WithLimit(cfg.Concurrency()), reconcile.WithLogger(s.logger))
	s.sel = selection.NewManager(client, rec, s.logger)

	prefs, err := store.OpenPrefs(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("open prefs: %w", err)
	}
	s.prefs = prefs
	s.closers = append(s.closers, prefs)
	return s, nil
}

func cliSession(cmd *cobra.Command, app *App) (*session, error) {
	var logw io.Writer
	if app.Verbose {
		logw = cmd.ErrOrStderr()
	}
	return newSession(cmd.Context(), app, logw)
}

func runTUI(cmd *cobra.Command, app *App) error {
	// The TUI owns the terminal; logs go to a file or nowhere.
	var logw io.Writer
	cfg, _ := store.LoadConfig()
	logPath := ""
	if cfg != nil {
		logPath = cfg.LogPath
	}
	if p := store.Getenv(store.EnvLog, logPath); p != "" {
		f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return writeErr(cmd, fmt.Errorf("open log: %w", err))
		}
		defer f.Close()
		logw = f
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := newSession(ctx, app, logw)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()

	return tui.Run(ctx, tui.Deps{
		Client:    s.client,
		Selection: s.sel,
		Prefs:     s.prefs,
		Options:   s.opts,
		Logger:    s.logger,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

// writeErr prints err to stderr (one line per invalid field for validation errors).
func writeErr(cmd *cobra.Command, err error) error {
	if ve, ok := forms.AsValidationError(err); ok {
		for _, line := range ve.Lines() {
			fmt.Fprintln(cmd.ErrOrStderr(), "invalid: "+line)
		}
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
