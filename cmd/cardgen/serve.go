// cmd/cardgen/serve.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cardgen/internal/common/config"
	"cardgen/internal/common/logger"
	"cardgen/internal/common/observability"
	"cardgen/internal/server"
)

const shutdownTimeout = 30 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serve the generate-product function over HTTP on / and /generate-product,
with /health, /ready and /metrics alongside.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.address)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Address = serveAddr
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		log.Warn("observability disabled", map[string]interface{}{"error": err})
	}
	defer obs.Shutdown()

	tracing, err := observability.NewTracing(cfg.Tracing)
	if err != nil {
		log.Warn("tracing disabled", map[string]interface{}{"error": err})
	}
	defer tracing.Shutdown()

	if config.CredentialsFromConfig(cfg).OpenAIKey() == "" {
		log.Warn("OPENAI_API_KEY is not set, generation requests will fail until it is", nil)
	}

	srv := server.New(server.ConfigFrom(cfg), newHandler(cfg, log), obs, log)
	httpServer := srv.HTTPServer()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", map[string]interface{}{
			"addr":        httpServer.Addr,
			"environment": cfg.App.Environment,
			"model":       cfg.OpenAI.Model,
			"locale":      cfg.Generation.Locale,
		})
		serverErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", map[string]interface{}{"error": err})
			return err
		}
	case sig := <-shutdown:
		log.Info("shutdown signal received", map[string]interface{}{"signal": sig.String()})

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", map[string]interface{}{"error": err})
			return err
		}
		log.Info("server stopped gracefully", nil)
	}

	return nil
}
