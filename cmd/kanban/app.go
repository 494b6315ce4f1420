package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"kanban/internal/board"
	"kanban/internal/config"
	"kanban/internal/logging"
	"kanban/internal/persist"
	"kanban/internal/storage"
	"kanban/internal/storage/sqlite"
)

// logsToStdout marks commands whose log lines belong on stdout. Every other
// command logs to stderr so its stdout carries only data.
const logsToStdout = "kanban/logs-to-stdout"

// app bundles what every command needs: config, logger and an opened board.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	store   *board.Store
	adapter *persist.Adapter
	db      *sqlite.Store
	logs    io.Closer
}

func openApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(config.Options{ConfigFile: globalFlags.configFile, EnvFile: globalFlags.envFile})
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath = globalFlags.dbPath
	}
	if flags.Changed("flat") {
		cfg.Scoped = !globalFlags.flat
	}

	logger, logs, err := logging.New(cfg.Log, logConsole(cmd))
	if err != nil {
		return nil, err
	}

	db, err := sqlite.Open(cfg.DBPath, logger)
	if err != nil {
		_ = logs.Close()
		return nil, err
	}

	medium := storage.NewBreaker(db, storage.BreakerSettings{
		Name:        "sqlite",
		MaxFailures: cfg.Breaker.MaxFailures,
		Timeout:     cfg.Breaker.Timeout,
	}, logger)

	keys := persist.BoardKeys
	if !cfg.Scoped {
		keys = persist.ListKeys
	}
	adapter := persist.New(medium, keys, logger)
	store, err := board.Open(ctx, adapter, board.Options{
		Scoped: cfg.Scoped,
		Logger: logger,
	})
	if err != nil {
		_ = db.Close()
		_ = logs.Close()
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, store: store, adapter: adapter, db: db, logs: logs}, nil
}

func logConsole(cmd *cobra.Command) io.Writer {
	if cmd.Annotations[logsToStdout] != "" {
		return cmd.OutOrStdout()
	}
	return cmd.ErrOrStderr()
}

func (a *app) Close() error {
	return errors.Join(a.db.Close(), a.logs.Close())
}

// run calls fn and then fails if any change fn made could not be saved.
func (a *app) run(fn func(a *app) error) error {
	if err := fn(a); err != nil {
		return err
	}
	if err := a.store.Err(); err != nil {
		return fmt.Errorf("changes were not saved: %w", err)
	}
	return nil
}

// withApp opens the board for the duration of fn.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := openApp(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.run(fn)
}
