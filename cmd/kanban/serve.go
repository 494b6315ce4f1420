package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"kanban/internal/server"
)

var serveFlags struct {
	addr      string
	staticDir string
}

var serveCmd = &cobra.Command{
	Use:         "serve",
	Short:       "Serve the board API and web frontend",
	Annotations: map[string]string{logsToStdout: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = serveFlags.addr
			}
			if cmd.Flags().Changed("static") {
				a.cfg.StaticDir = serveFlags.staticDir
			}
			return serve(a)
		})
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveFlags.addr, "addr", "", "HTTP listen address")
	serveCmd.Flags().StringVar(&serveFlags.staticDir, "static", "", "directory with the built frontend")
}

func serve(a *app) error {
	logger := a.logger
	logger.Info("kanban board", slog.String("version", version))

	srv := server.New(a.store, logger, a.cfg.StaticDir)

	httpServer := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr), slog.String("db", a.cfg.DBPath))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-errCh:
		if ok {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
			return err
		}
		return nil
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
		return err
	}

	logger.Info("server stopped")
	return nil
}
