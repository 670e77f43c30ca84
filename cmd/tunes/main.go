package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/mmcdole/tunes/internal/adapter"
	"github.com/mmcdole/tunes/internal/adapter/source"
	"github.com/mmcdole/tunes/internal/catalog"
	"github.com/mmcdole/tunes/internal/history"
	"github.com/mmcdole/tunes/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{}
	err := newRootCmd(a).ExecuteContext(ctx)
	a.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the dependencies shared by every command. Fields already set
// (tests preset them) are left alone by setup.
type app struct {
	cfg     *adapter.Config
	logger  *slog.Logger
	catalog source.CatalogSource
	history *history.Store
	out     io.Writer

	configPath string // directory holding config.yaml, empty for the default
	noDetail   bool
	closers    []io.Closer
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tunes [term...]",
		Short: "Browse the iTunes catalog from the terminal",
		Long: `tunes searches the public iTunes catalog.

Run without a subcommand to open the interactive browser, optionally
starting with a search term.`,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(strings.Join(args, " "))
		},
	}
	cmd.SetVersionTemplate("tunes {{.Version}}\n")
	cmd.PersistentFlags().StringVar(&a.configPath, "config-dir", a.configPath, "directory holding config.yaml")
	cmd.Flags().BoolVar(&a.noDetail, "no-detail", false, "start with the side detail pane hidden")

	cmd.AddCommand(
		newSearchCmd(a),
		newShowCmd(a),
		newHistoryCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tunes %s\n", Version)
		},
	}
}

// setup loads config, logging and the catalog client
func (a *app) setup() error {
	if a.cfg == nil {
		cfg, err := adapter.LoadConfigFrom(viper.New(), a.configDir(), ".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		a.cfg = cfg
	}

	if a.logger == nil {
		logger, closer, err := adapter.SetupLogger(&a.cfg.Logging)
		if err != nil {
			// Fall back to null logger if file logging fails
			logger = adapter.NullLogger()
		} else {
			a.closers = append(a.closers, closer)
		}
		a.logger = logger
		slog.SetDefault(logger)
	}

	if a.out == nil {
		a.out = os.Stdout
	}

	if a.catalog == nil {
		client, err := source.NewClient(&source.SourceConfig{
			Type:    a.cfg.Catalog.Type,
			URL:     a.cfg.Catalog.URL,
			Timeout: a.cfg.Catalog.Timeout,
		}, a.logger)
		if err != nil {
			return fmt.Errorf("failed to create catalog client: %w", err)
		}
		a.catalog = client
	}

	a.logger.Info("starting tunes", "version", Version)
	return nil
}

func (a *app) configDir() string {
	if a.configPath != "" {
		return a.configPath
	}
	return adapter.ConfigPath()
}

// openHistory returns the history store, or nil when history is disabled
func (a *app) openHistory() (*history.Store, error) {
	if a.history != nil || !a.cfg.History.Enabled {
		return a.history, nil
	}

	path, err := adapter.ExpandPath(a.cfg.History.Path)
	if err != nil {
		return nil, err
	}
	store, err := history.Open(path, a.cfg.History.Limit, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	a.history = store
	a.closers = append(a.closers, store)
	return store, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && a.logger != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
}

func (a *app) controllerOptions() catalog.Options {
	return catalog.Options{
		PageSize: a.cfg.Catalog.PageSize,
		Media:    a.cfg.Catalog.Media,
		Country:  a.cfg.Catalog.Country,
	}
}

// runTUI starts the interactive browser
func (a *app) runTUI(initialQuery string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the browser needs a terminal, use 'tunes search' for scripted output")
	}

	// History is optional, the browser works without suggestions
	var hist tui.History
	if store, err := a.openHistory(); err != nil {
		a.logger.Warn("history unavailable", "error", err)
	} else if store != nil {
		hist = store
	}

	ctrl := catalog.NewController(a.catalog, a.controllerOptions(), a.logger)
	launcher := adapter.NewLauncher(a.cfg.Player.Command, a.cfg.Player.Args, a.logger)

	model := tui.NewModel(ctrl, launcher, hist, tui.Options{
		Debounce:     a.cfg.UI.Debounce,
		FetchTimeout: a.cfg.Catalog.Timeout,
		GridColumns:  a.cfg.UI.GridColumns,
		InitialQuery: initialQuery,
		HideDetail:   a.noDetail,
	}, a.logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	a.logger.Info("starting TUI", "initialQuery", initialQuery)

	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}
