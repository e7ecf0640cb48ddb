package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/spf13/cobra"

	"github.com/vugu/vgroutes"
	"github.com/vugu/vgroutes/spa"
)

func serveCmd() *cobra.Command {
	var (
		dir        string
		addr       string
		tablePath  string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an application directory with history mode fallback",
		RunE: func(cmd *cobra.Command, args []string) error {

			cfg := &vgroutes.Config{}
			if configPath != "" {
				loaded, err := vgroutes.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if err := cfg.Finalize(); err != nil {
				return err
			}

			logger := vgroutes.NewLogger(&cfg.Logging)

			routes := vgroutes.BuildRoutes()
			if tablePath != "" {
				var err error
				routes, err = vgroutes.LoadTableFile(tablePath, vgroutes.ViewNames)
				if err != nil {
					return err
				}
			}

			router, err := vgroutes.CreateRouter(routes, cfg.Mode, cfg.BasePath, vgroutes.WithLogger(logger))
			if err != nil {
				return err
			}

			var h http.Handler = spa.New(router, os.DirFS(dir), spa.WithLogger(logger))
			h = handlers.CompressHandler(h)
			h = handlers.CombinedLoggingHandler(os.Stdout, h)

			srv := &http.Server{
				Addr:              addr,
				Handler:           h,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				logger.Info("serving", "addr", addr, "dir", dir, "base", cfg.BasePath, "mode", cfg.Mode)
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			logger.Info("shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory holding index.html and the application assets")
	cmd.Flags().StringVarP(&addr, "addr", "a", "127.0.0.1:8844", "Address to listen on")
	cmd.Flags().StringVarP(&tablePath, "table", "t", "", "TOML route table file (default: the built-in table)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")

	return cmd
}
