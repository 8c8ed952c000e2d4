package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"moneybook/internal/backend"
	"moneybook/internal/cli"
	"moneybook/internal/config"
	applog "moneybook/internal/log"
	"moneybook/internal/services"
	"moneybook/internal/shell"
	"moneybook/internal/storage"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = newRootCmd()

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	file    string
	backend string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "moneybook",
		Short: "Track personal income and expenses",
		Long: `Moneybook records income and expense transactions, saves them to a
JSON file or a SQLite database, and offers filtering, category search,
sorting and a monthly spending bar chart.

Run without a command to open the interactive menu.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.file, "file", "", "ledger location (JSON file or SQLite database)")
	cmd.PersistentFlags().StringVar(&opts.backend, "backend", "", "storage backend: json or sqlite")

	cmd.AddCommand(
		newShellCmd(opts),
		newAddCmd(opts),
		newListCmd(opts),
		newFilterCmd(opts),
		newSearchCmd(opts),
		newSortCmd(opts),
		newChartCmd(opts),
		newWatchCmd(opts),
	)
	return cmd
}

// app is what every command needs once configuration and storage are open.
type app struct {
	cfg     *config.Config
	logger  *applog.Logger
	ledger  *services.LedgerService
	cleanup backend.CleanupFunc
}

func (a *app) Close() {
	if a.cleanup == nil {
		return
	}
	if err := a.cleanup(); err != nil {
		a.logger.Warn("Cleanup failed", applog.FieldError, err)
	}
}

func (a *app) printer(cmd *cobra.Command) *shell.Printer {
	return shell.NewPrinter(cmd.OutOrStdout(), a.cfg.OutputFormat == config.OutputMarkdown, 0, a.logger)
}

func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, *applog.Logger, error) {
	if err := cli.LoadEnvFile(); err != nil {
		return nil, nil, err
	}

	cfg, err := cli.LoadAndValidateConfig(func(c *config.Config) {
		if opts.backend != "" {
			c.DataBackend = opts.backend
		}
		if opts.file != "" {
			if c.DataBackend == config.BackendSQLite {
				c.SQLiteDBPath = opts.file
			} else {
				c.LedgerFile = opts.file
			}
		}
	})
	if err != nil {
		return nil, nil, err
	}

	return cfg, cli.SetupLogger(cfg.LogLevel, cmd.ErrOrStderr()), nil
}

func openApp(ctx context.Context, cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, logger, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}

	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	logger.Debug("Application started",
		applog.FieldOperation, applog.OpStartup,
		applog.FieldBackend, cfg.DataBackend,
		applog.FieldLocation, cfg.StorageLocation())

	return &app{cfg: cfg, logger: logger, ledger: result.Ledger, cleanup: result.Cleanup}, nil
}

// openLoaded opens the app and loads the ledger. A ledger that was never
// saved is an empty ledger here.
func openLoaded(ctx context.Context, cmd *cobra.Command, opts *rootOptions) (*app, error) {
	a, err := openApp(ctx, cmd, opts)
	if err != nil {
		return nil, err
	}
	if err := a.ledger.Load(ctx); err != nil && !errors.Is(err, storage.ErrNotFound) {
		a.Close()
		return nil, err
	}
	return a, nil
}

func runShell(cmd *cobra.Command, opts *rootOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx, cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	sh := shell.New(a.ledger, cmd.InOrStdin(), cmd.OutOrStdout(), shell.Options{
		Threshold: a.cfg.ExpenseThreshold,
		Markdown:  a.cfg.OutputFormat == config.OutputMarkdown,
	}, a.logger)

	return sh.Run(ctx)
}

func newShellCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Open the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, opts)
		},
	}
}
