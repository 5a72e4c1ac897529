package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	lifeassist "github.com/MahidharReddy003/aislingshot-sub000"
	httpAdapter "github.com/MahidharReddy003/aislingshot-sub000/internal/adapters/http"
	"github.com/MahidharReddy003/aislingshot-sub000/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the flow layer as a JSON API over HTTP: one POST /flows/<name>
endpoint per flow, the assistant and profile routes, /metrics and an
OpenAPI document at /openapi.json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}

		rt, err := cli.BuildApp(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		handler := httpAdapter.NewHandler(httpAdapter.Config{
			Invoker:     rt.Invoker(),
			Catalog:     rt.Flows(),
			Assistant:   rt.Assistant(),
			Profiles:    rt.Profiles(),
			Metrics:     rt.Metrics().Handler(),
			Logger:      logger,
			Version:     lifeassist.Version,
			CORSOrigins: cfg.Server.CORSOrigins,
		})

		srv := &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting LifeAssist server", "address", srv.Addr, "flows", rt.Flows().Len())
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(shutdown)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", cfg.Server.ShutdownTimeout, "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("could not stop server: %w", err)
				}
			}
			logger.Info("LifeAssist server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
